package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"moviedb/httpserver"
	"moviedb/pkg/config"
)

// testConfig disables rate limiting so table tests are not throttled.
func testConfig() *config.Config {
	return &config.Config{}
}

type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	RequestCtx struct {
		Method string                 `json:"method"`
		URL    string                 `json:"url"`
		Query  map[string]interface{} `json:"query"`
		Params map[string]string      `json:"params"`
	} `json:"requestCtx"`
}

func serve(server *httpserver.Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func get(server *httpserver.Server, target string) *httptest.ResponseRecorder {
	return serve(server, http.MethodGet, target, nil)
}

func sendJSON(server *httpserver.Server, method, target, body string) *httptest.ResponseRecorder {
	return serve(server, method, target, strings.NewReader(body))
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Data, v), string(resp.Data))
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func jsonUnmarshal(data json.RawMessage, v interface{}) error {
	return json.Unmarshal(data, v)
}
