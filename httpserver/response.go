package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Timestamp  string      `json:"timestamp"`
}

type ErrorResponse struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Timestamp  string         `json:"timestamp"`
	RequestCtx RequestContext `json:"requestCtx"`
}

// RequestContext echoes the request that failed.
type RequestContext struct {
	Method string                 `json:"method"`
	URL    string                 `json:"url"`
	Query  map[string]interface{} `json:"query"`
	Params map[string]string      `json:"params"`
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

func writeSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, APIResponse{
		StatusCode: status,
		Message:    http.StatusText(status),
		Data:       data,
		Timestamp:  now(),
	})
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Timestamp:  now(),
		RequestCtx: requestContext(c),
	})
}

// requestContext renders single query values as strings and repeated ones as
// arrays.
func requestContext(c echo.Context) RequestContext {
	q := map[string]interface{}{}
	for k, vs := range c.QueryParams() {
		if len(vs) == 1 {
			q[k] = vs[0]
			continue
		}
		q[k] = vs
	}

	params := map[string]string{}
	values := c.ParamValues()
	for i, name := range c.ParamNames() {
		if i < len(values) && name != "*" {
			params[name] = values[i]
		}
	}

	return RequestContext{
		Method: c.Request().Method,
		URL:    c.Request().URL.RequestURI(),
		Query:  q,
		Params: params,
	}
}
