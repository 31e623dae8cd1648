package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Icegreeen/workos-go/pkg/platform/sentinel"
)

const requestIDHeader = "X-Request-ID"

// FieldError is one entry of a 422 validation failure.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// APIError is returned for every non-2xx response. The body fields are copied
// verbatim from the backend's error envelope.
type APIError struct {
	StatusCode       int
	RequestID        string
	Code             string
	Message          string
	Errors           []FieldError
	ErrorCode        string
	ErrorDescription string
	RetryAfter       time.Duration
	RawBody          []byte
}

type errorEnvelope struct {
	Code             string       `json:"code"`
	Message          string       `json:"message"`
	Errors           []FieldError `json:"errors"`
	Error            string       `json:"error"`
	ErrorDescription string       `json:"error_description"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrorDescription
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("api error %d: %s (request_id=%s)", e.StatusCode, msg, e.RequestID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// Unwrap exposes the sentinel matching the status class so errors.Is works.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return sentinel.ErrBadRequest
	case e.StatusCode == http.StatusUnauthorized:
		return sentinel.ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return sentinel.ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return sentinel.ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return sentinel.ErrConflict
	case e.StatusCode == http.StatusUnprocessableEntity:
		return sentinel.ErrUnprocessable
	case e.StatusCode == http.StatusTooManyRequests:
		return sentinel.ErrRateLimited
	case e.StatusCode >= http.StatusInternalServerError:
		return sentinel.ErrUnavailable
	}
	return nil
}

// parseAPIError never fails: an unreadable body still yields the status.
func parseAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(requestIDHeader),
		RawBody:    body,
	}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Code = env.Code
		apiErr.Message = env.Message
		apiErr.Errors = env.Errors
		apiErr.ErrorCode = env.Error
		apiErr.ErrorDescription = env.ErrorDescription
	}
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(seconds) * time.Second
	}
	return apiErr
}
