// Package testutil provides common helpers for client and fake API tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Call is one request observed by a RecordingServer.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// RecordingServer is an httptest.Server that records every request before
// handing it to the wrapped handler.
type RecordingServer struct {
	*httptest.Server

	mu    sync.Mutex
	calls []Call
}

// NewRecordingServer starts a server in front of handler and closes it when
// the test ends.
func NewRecordingServer(t *testing.T, handler http.Handler) *RecordingServer {
	t.Helper()
	rs := &RecordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rs.mu.Lock()
		rs.calls = append(rs.calls, Call{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		rs.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

// StaticJSON answers every request with status and body.
func StaticJSON(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// Calls returns a copy of the recorded requests.
func (rs *RecordingServer) Calls() []Call {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Call, len(rs.calls))
	copy(out, rs.calls)
	return out
}

// RequireSingleCall asserts exactly one request was made and returns it.
func (rs *RecordingServer) RequireSingleCall(t *testing.T) Call {
	t.Helper()
	calls := rs.Calls()
	require.Len(t, calls, 1, "expected exactly one HTTP call")
	return calls[0]
}

// AssertCall asserts method and escaped path of a recorded request.
func AssertCall(t *testing.T, call Call, method, path string) {
	t.Helper()
	assert.Equal(t, method, call.Method, "unexpected method")
	assert.Equal(t, path, call.Path, "unexpected path")
}

// AssertJSONBody asserts the recorded body is JSON-equal to expected.
func AssertJSONBody(t *testing.T, call Call, expected string) {
	t.Helper()
	require.NotEmpty(t, call.Body, "expected a request body")
	assert.JSONEq(t, expected, string(call.Body))
}

// AssertNoBody asserts the request carried no body.
func AssertNoBody(t *testing.T, call Call) {
	t.Helper()
	assert.Empty(t, call.Body, "expected no request body")
}

// MustMarshal marshals a value to JSON string, failing the test on error.
func MustMarshal(t *testing.T, v any) string {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal value")
	return string(body)
}

// MustUnmarshal decodes a JSON string into a fresh T.
func MustUnmarshal[T any](t *testing.T, data string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(data), &out), "failed to unmarshal value")
	return out
}
