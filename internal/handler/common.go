package handler

import (
	"context"
	"net/http"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/middleware"
	"swiftpost/internal/model"
	"swiftpost/pkg/pagination"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
)

// Sessions is the slice of the session manager the handlers use
type Sessions interface {
	middleware.Sessions
	CurrentUser(ctx context.Context) *model.Usuario
}

// respondError maps a failed call to the envelope. Remote failures keep their status;
// a call that never got a response is a bad gateway.
func respondError(c *gin.Context, err error) {
	if ne, ok := apiclient.AsNormalized(err); ok {
		status := ne.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, response.ErrorWithDetails(status, ne.Message, ne.ErrorBody))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// actingUser is the id forwarded as creado_por/actualizado_por
func actingUser(c *gin.Context, s Sessions) string {
	if u := s.CurrentUser(c.Request.Context()); u != nil {
		return u.IDUsuario
	}
	return ""
}

func page(c *gin.Context) (apiclient.Page, pagination.Params) {
	p := pagination.Parse(c)
	return apiclient.Page{Skip: p.Skip, Limit: p.Limit}, p
}

func respondList[T any](c *gin.Context, items []T, p pagination.Params) {
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, items, p.Skip, p.Limit, len(items)))
}
