// Package fakeapi is an in-memory stand-in for the user-management REST API.
//
// It speaks the same wire format as the real service (it reuses the users
// package serializers in the inverse direction) so the SDK can be exercised
// end to end in tests and locally through the CLI's serve-fake command.
// State lives in process memory and is lost on restart.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/platform/middleware"
	"github.com/Icegreeen/workos-go/pkg/users"
)

const (
	defaultPageSize       = 10
	maxPageSize           = 100
	defaultSessionMinutes = 24 * 60
)

type magicAuthChallenge struct {
	email string
	code  string
}

// Server holds fake API state. The zero value is not usable; call New.
type Server struct {
	apiKey string
	logger *slog.Logger
	now    func() time.Time

	mu                 sync.Mutex
	users              map[string]users.User
	order              []string
	passwords          map[string]string
	memberships        map[string][]string
	organizations      map[string]users.Organization
	verificationCodes  map[string]string
	magicAuth          map[string]magicAuthChallenge
	authorizationCodes map[string]string
	resetTokens        map[string]string
	factors            map[string][]mfa.Factor
	codeSeq            int
}

type Option func(s *Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock pins timestamps for deterministic responses.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New constructs a fake API that accepts apiKey as bearer token and client secret.
func New(apiKey string, opts ...Option) *Server {
	s := &Server{
		apiKey:             apiKey,
		logger:             slog.New(slog.DiscardHandler),
		now:                func() time.Time { return time.Now().UTC() },
		users:              make(map[string]users.User),
		passwords:          make(map[string]string),
		memberships:        make(map[string][]string),
		organizations:      make(map[string]users.Organization),
		verificationCodes:  make(map[string]string),
		magicAuth:          make(map[string]magicAuthChallenge),
		authorizationCodes: make(map[string]string),
		resetTokens:        make(map[string]string),
		factors:            make(map[string][]mfa.Factor),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router wires every user-management route behind bearer authentication.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestContext(s.now))
	r.Use(middleware.AccessLog(s.logger))
	r.Use(s.requireAPIKey)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Post("/sessions/token", s.handleAuthenticate)
		r.Post("/magic_auth/send", s.handleSendMagicAuthCode)
		r.Post("/password_reset_challenge", s.handleCreatePasswordResetChallenge)
		r.Post("/password_reset", s.handleCompletePasswordReset)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetUser)
			r.Put("/", s.handleUpdateUser)
			r.Delete("/", s.handleDeleteUser)
			r.Put("/password", s.handleUpdateUserPassword)
			r.Post("/email_verification_challenge", s.handleCreateEmailVerificationChallenge)
			r.Post("/verify_email", s.handleVerifyEmail)
			r.Post("/organizations", s.handleAddUserToOrganization)
			r.Delete("/organizations/{orgID}", s.handleRemoveUserFromOrganization)
			r.Post("/auth/factors", s.handleEnrollFactor)
		})
	})
	return r
}

// SeedOrganization registers an organization name so sessions can report it.
func (s *Server) SeedOrganization(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.organizations[id] = users.Organization{ID: id, Name: name}
}

// VerificationCode returns the latest email verification code issued for a user.
func (s *Server) VerificationCode(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verificationCodes[userID]
}

// MagicAuthCode returns the code sent with a magic-auth challenge.
func (s *Server) MagicAuthCode(challengeID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.magicAuth[challengeID].code
}

// IssueAuthorizationCode mints a single-use OAuth code for userID, standing in
// for the hosted sign-in redirect.
func (s *Server) IssueAuthorizationCode(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.nextCode()
	s.authorizationCodes[code] = userID
	return code
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) nextCode() string {
	s.codeSeq++
	return fmt.Sprintf("%06d", s.codeSeq)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Errors  []fieldErrorDetail `json:"errors,omitempty"`
}

type fieldErrorDetail struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, field, code string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{
		Code:    "invalid_request_parameters",
		Message: "Validation failed",
		Errors:  []fieldErrorDetail{{Field: field, Code: code}},
	})
}
