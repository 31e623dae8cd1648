package sentinel

import "errors"

// Sentinel errors for the classes of failure the user-management API reports.
// The shared HTTP client returns an *APIError that matches one of these via
// errors.Is, so callers can branch on the class without inspecting status codes.
//
//   - ErrBadRequest: request rejected as malformed (400)
//   - ErrUnauthorized: API key missing or invalid (401)
//   - ErrForbidden: key lacks access to the resource (403)
//   - ErrNotFound: user, organization or challenge does not exist (404)
//   - ErrConflict: resource already exists, e.g. duplicate email (409)
//   - ErrUnprocessable: payload failed backend validation (422)
//   - ErrRateLimited: too many requests (429)
//   - ErrUnavailable: backend failed or is unreachable (5xx)
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrRateLimited   = errors.New("rate limited")
	ErrUnavailable   = errors.New("unavailable")
)
