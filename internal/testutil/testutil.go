// Package testutil holds helpers shared by HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"bookcatalog/internal/book"
)

// TestBook is a valid create/update payload.
var TestBook = book.Book{
	Title:       "T",
	Author:      "A",
	Description: "D",
	Rating:      3,
	Published:   "2021-01-01",
}

// NewRequest creates a new HTTP request for testing, JSON-encoding body when non-nil.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse is a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse decodes the recorded response body as a JSON object, if any.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" member of the envelope.
func (rr RecordResponse) Data() any {
	return rr.Body["data"]
}

// ErrorCode returns error.code of a failure envelope, or "".
func (rr RecordResponse) ErrorCode() string {
	errBody, _ := rr.Body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}
