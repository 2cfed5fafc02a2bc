package interceptor

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/logger"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Terminator ends the current session
type Terminator interface {
	Logout(ctx context.Context)
}

// Errors reduces every failure to *apiclient.NormalizedError. A 401 on an authenticated,
// still-live request also ends the session.
func Errors(sessions Terminator, log *logger.Logger) apiclient.Interceptor {
	return func(req *http.Request, next apiclient.Handler) (*http.Response, error) {
		resp, err := next(req)
		if err == nil {
			return resp, nil
		}

		ne := Normalize(err)
		log.Errorw("api request failed",
			"status", ne.Status,
			"message", ne.Message,
			"method", req.Method,
			"url", req.URL.String(),
		)

		if ne.Status == http.StatusUnauthorized &&
			req.Header.Get("Authorization") != "" &&
			req.Context().Err() == nil {
			log.Warnw("session rejected by api, signing out", "url", req.URL.Path)
			sessions.Logout(req.Context())
		}
		return nil, ne
	}
}

// Normalize maps a transport or HTTP failure to a NormalizedError.
// Errors that are already normalized are returned as they are.
func Normalize(err error) *apiclient.NormalizedError {
	if ne, ok := apiclient.AsNormalized(err); ok {
		return ne
	}
	he, ok := apiclient.AsHTTPError(err)
	if !ok {
		return apiclient.NewNormalizedError(0, "Network error: "+err.Error(), nil, err)
	}

	body := decodeBody(he.Body)
	serverMsg := serverMessage(body)
	orDefault := func(def string) string {
		if serverMsg != "" {
			return serverMsg
		}
		return def
	}

	var msg string
	switch he.StatusCode {
	case http.StatusBadRequest:
		msg = orDefault("Bad request")
	case http.StatusUnauthorized:
		msg = orDefault("Unauthorized. Please sign in again")
	case http.StatusForbidden:
		msg = "You do not have permission to perform this action"
	case http.StatusNotFound:
		msg = orDefault("Resource not found")
	case http.StatusUnprocessableEntity:
		if details := validationDetails(body); details != "" {
			msg = details
		} else {
			msg = orDefault("Validation error")
		}
	case http.StatusInternalServerError:
		msg = orDefault("Internal server error")
	case http.StatusServiceUnavailable:
		msg = "Service unavailable. Please try again later"
	default:
		msg = orDefault(fmt.Sprintf("Error %d: %s", he.StatusCode, he.Status))
	}
	return apiclient.NewNormalizedError(he.StatusCode, msg, body, err)
}

func decodeBody(raw []byte) interface{} {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// serverMessage picks the first string among mensaje, message and detail
func serverMessage(body interface{}) string {
	m, ok := body.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range []string{"mensaje", "message", "detail"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// validationDetails renders a {"detail": [{"loc": [...], "msg": "..."}]} body
func validationDetails(body interface{}) string {
	m, ok := body.(map[string]interface{})
	if !ok {
		return ""
	}
	items, ok := m["detail"].([]interface{})
	if !ok || len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		locs, _ := entry["loc"].([]interface{})
		path := make([]string, 0, len(locs))
		for _, l := range locs {
			path = append(path, cast.ToString(l))
		}
		parts = append(parts, strings.Join(path, ".")+": "+cast.ToString(entry["msg"]))
	}
	return strings.Join(parts, ", ")
}
