package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icegreeen/workos-go/pkg/platform/sentinel"
)

type recorded struct {
	method string
	uri    string
	header http.Header
	body   []byte
}

func newTestServer(t *testing.T, status int, respBody string, headers map[string]string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, uri: r.URL.RequestURI(), header: r.Header.Clone(), body: body})
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_Get(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{"id":"user_123"}`, nil)
	c := New("sk_test", WithBaseURL(srv.URL+"/"))

	var out struct {
		ID string `json:"id"`
	}
	err := c.Get(context.Background(), "/users/user_123", nil, &out)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/users/user_123", call.uri)
	assert.Equal(t, "Bearer sk_test", call.header.Get("Authorization"))
	assert.Equal(t, DefaultUserAgent, call.header.Get("User-Agent"))
	assert.Empty(t, call.header.Get("Content-Type"))
	assert.Empty(t, call.body)
	assert.Equal(t, "user_123", out.ID)
}

func TestClient_GetWithQuery(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{}`, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	query := map[string][]string{"limit": {"10"}, "order": {"desc"}}
	require.NoError(t, c.Get(context.Background(), "/users", query, nil))

	require.Len(t, *calls, 1)
	assert.Equal(t, "/users?limit=10&order=desc", (*calls)[0].uri)
}

func TestClient_PostEncodesJSONBody(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusCreated, `{"id":"user_1","email":"a@b.com"}`, nil)
	c := New("sk_test", WithBaseURL(srv.URL), WithUserAgent("custom/1"))

	body := map[string]string{"email": "a@b.com"}
	var out map[string]string
	err := c.Post(context.Background(), "/users", body, &out, WithIdempotencyKey("idem-1"), WithHeader("X-Extra", "yes"))
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.JSONEq(t, `{"email":"a@b.com"}`, string(call.body))
	assert.Equal(t, "application/json", call.header.Get("Content-Type"))
	assert.Equal(t, "idem-1", call.header.Get("Idempotency-Key"))
	assert.Equal(t, "yes", call.header.Get("X-Extra"))
	assert.Equal(t, "custom/1", call.header.Get("User-Agent"))
	assert.Equal(t, "a@b.com", out["email"])
}

func TestClient_EmptyIdempotencyKeyIsNotSent(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{}`, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	require.NoError(t, c.Post(context.Background(), "/users", struct{}{}, nil, WithIdempotencyKey("")))
	_, ok := (*calls)[0].header["Idempotency-Key"]
	assert.False(t, ok)
}

func TestClient_PutAndDelete(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusNoContent, ``, nil)
	c := New("sk_test", WithBaseURL(srv.URL))
	ctx := context.Background()

	var out map[string]any
	require.NoError(t, c.Put(ctx, "/users/user_1", map[string]string{"first_name": "Ada"}, &out))
	require.NoError(t, c.Delete(ctx, "/users/user_1", nil))

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.JSONEq(t, `{"first_name":"Ada"}`, string((*calls)[0].body))
	assert.Nil(t, out, "empty body leaves out untouched")
	assert.Equal(t, http.MethodDelete, (*calls)[1].method)
	assert.Empty(t, (*calls)[1].body)
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusBadRequest, sentinel.ErrBadRequest},
		{http.StatusUnauthorized, sentinel.ErrUnauthorized},
		{http.StatusForbidden, sentinel.ErrForbidden},
		{http.StatusNotFound, sentinel.ErrNotFound},
		{http.StatusConflict, sentinel.ErrConflict},
		{http.StatusUnprocessableEntity, sentinel.ErrUnprocessable},
		{http.StatusTooManyRequests, sentinel.ErrRateLimited},
		{http.StatusInternalServerError, sentinel.ErrUnavailable},
		{http.StatusBadGateway, sentinel.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv, _ := newTestServer(t, tc.status, `{"message":"nope"}`, map[string]string{"X-Request-ID": "req_1"})
			c := New("sk_test", WithBaseURL(srv.URL))

			err := c.Get(context.Background(), "/users/user_1", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, "req_1", apiErr.RequestID)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestClient_UnprocessableCarriesFieldErrors(t *testing.T) {
	body := `{"code":"invalid_request_parameters","message":"Validation failed","errors":[{"field":"email","code":"email_required"}]}`
	srv, _ := newTestServer(t, http.StatusUnprocessableEntity, body, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	err := c.Post(context.Background(), "/users", map[string]string{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_request_parameters", apiErr.Code)
	assert.Equal(t, []FieldError{{Field: "email", Code: "email_required"}}, apiErr.Errors)
	assert.Contains(t, apiErr.Error(), "Validation failed")
}

func TestClient_RateLimitedReadsRetryAfter(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusTooManyRequests, ``, map[string]string{"Retry-After": "7"})
	c := New("sk_test", WithBaseURL(srv.URL))

	err := c.Get(context.Background(), "/users", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
	assert.Equal(t, "api error 429: Too Many Requests", apiErr.Error())
}

func TestClient_BadRequestOAuthEnvelope(t *testing.T) {
	body := `{"error":"invalid_grant","error_description":"The code has expired."}`
	srv, _ := newTestServer(t, http.StatusBadRequest, body, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	err := c.Post(context.Background(), "/users/sessions/token", map[string]string{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_grant", apiErr.ErrorCode)
	assert.Equal(t, "The code has expired.", apiErr.ErrorDescription)
	assert.Equal(t, "api error 400: The code has expired.", apiErr.Error())
}

func TestClient_MalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{not json`, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	var out map[string]any
	err := c.Get(context.Background(), "/users/user_1", nil, &out)
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestClient_NetworkErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New("sk_test", WithBaseURL(srv.URL))

	err := c.Get(context.Background(), "/users/user_1", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /users/user_1")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_ContextCancelled(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{}`, nil)
	c := New("sk_test", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/users/user_1", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *calls)
}

func TestClient_RecordsMetrics(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{}`, nil)
	reg := prometheus.NewRegistry()
	c := New("sk_test", WithBaseURL(srv.URL), WithMetrics(reg))

	_ = c.Get(context.Background(), "/users/missing", nil, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "404")))
	count, err := testutil.GatherAndCount(reg, "workos_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClient_Accessors(t *testing.T) {
	c := New("sk_test")
	assert.Equal(t, "sk_test", c.Key())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}
