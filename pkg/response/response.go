package response

// Response represents the envelope every console endpoint answers with
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	// Details carries the upstream error body when the remote API sent one
	Details interface{} `json:"details,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta describes the page a list response covers
type Meta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithPagination wraps a page of results. The remote API reports no totals,
// so count is the size of this page.
func SuccessWithPagination(statusCode int, data interface{}, skip, limit, count int) Response {
	res := Success(statusCode, data)
	res.Meta = &Meta{Skip: skip, Limit: limit, Count: count}
	return res
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithDetails is Error plus the upstream error body
func ErrorWithDetails(statusCode int, err string, details interface{}) Response {
	res := Error(statusCode, err)
	res.Details = details
	return res
}
