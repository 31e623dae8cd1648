package fakeapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"github.com/Icegreeen/workos-go/pkg/requestcontext"
	"github.com/Icegreeen/workos-go/pkg/users"
)

// grant is the credential exchange decoded from a token request.
type grant struct {
	clientSecret string
	expiresIn    int
	userAgent    string
	// resolve finds the authenticating user. Callers hold s.mu.
	resolve func() (users.User, bool)
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	var head struct {
		GrantType string `json:"grant_type"`
	}
	_ = json.Unmarshal(raw, &head)

	g, err := s.parseGrant(head.GrantType, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if g.clientSecret != s.apiKey {
		writeError(w, http.StatusUnauthorized, "invalid_client", "Invalid client secret.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := g.resolve()
	if !ok {
		s.logger.Warn("rejected grant",
			"grant_type", head.GrantType,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		writeError(w, http.StatusBadRequest, "invalid_grant", "The credentials could not be verified.")
		return
	}

	session := s.newSessionLocked(requestcontext.Now(r.Context()), u.ID, g.expiresIn)
	s.logger.Info("session created",
		"grant_type", head.GrantType,
		"user_id", u.ID,
		"session_id", session.ID,
		"client", describeUserAgent(g.userAgent),
	)
	writeJSON(w, http.StatusOK, users.SerializeAuthenticationResponse(users.AuthenticationResponse{
		User:    u,
		Session: session,
	}))
}

// describeUserAgent renders a short "browser on os" label for session logs.
func describeUserAgent(raw string) string {
	if raw == "" {
		return "unknown"
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		name, _ := ua.Browser()
		return "bot " + name
	}
	name, version := ua.Browser()
	label := name
	if version != "" {
		label += " " + version
	}
	if platform := ua.OS(); platform != "" {
		label += " on " + platform
	}
	if ua.Mobile() {
		label += " (mobile)"
	}
	return label
}

type unsupportedGrantError string

func (e unsupportedGrantError) Error() string {
	return "unsupported grant_type '" + string(e) + "'"
}

func (s *Server) parseGrant(grantType string, raw json.RawMessage) (grant, error) {
	switch grantType {
	case users.GrantTypePassword:
		var body users.SerializedAuthenticateUserWithPasswordOptions
		if err := json.Unmarshal(raw, &body); err != nil {
			return grant{}, err
		}
		opts, secret := users.DeserializeAuthenticateUserWithPasswordOptions(body)
		return grant{clientSecret: secret, expiresIn: opts.ExpiresIn, userAgent: opts.UserAgent, resolve: func() (users.User, bool) {
			u, ok := s.userByEmailLocked(opts.Email)
			if !ok || !passwordMatches(s.passwords[u.ID], opts.Password) {
				return users.User{}, false
			}
			return u, true
		}}, nil

	case users.GrantTypeMagicAuthCode:
		var body users.SerializedAuthenticateUserWithMagicAuthOptions
		if err := json.Unmarshal(raw, &body); err != nil {
			return grant{}, err
		}
		opts, secret := users.DeserializeAuthenticateUserWithMagicAuthOptions(body)
		return grant{clientSecret: secret, expiresIn: opts.ExpiresIn, userAgent: opts.UserAgent, resolve: func() (users.User, bool) {
			challenge, ok := s.magicAuth[opts.MagicAuthChallengeID]
			if !ok || challenge.code != opts.Code {
				return users.User{}, false
			}
			delete(s.magicAuth, opts.MagicAuthChallengeID)
			return s.userByEmailLocked(challenge.email)
		}}, nil

	case users.GrantTypeAuthorizationCode:
		var body users.SerializedAuthenticateUserWithCodeOptions
		if err := json.Unmarshal(raw, &body); err != nil {
			return grant{}, err
		}
		opts, secret := users.DeserializeAuthenticateUserWithCodeOptions(body)
		return grant{clientSecret: secret, expiresIn: opts.ExpiresIn, userAgent: opts.UserAgent, resolve: func() (users.User, bool) {
			userID, ok := s.authorizationCodes[opts.Code]
			if !ok {
				return users.User{}, false
			}
			delete(s.authorizationCodes, opts.Code)
			u, ok := s.users[userID]
			return u, ok
		}}, nil
	}
	return grant{}, unsupportedGrantError(grantType)
}

func (s *Server) newSessionLocked(now time.Time, userID string, expiresIn int) users.Session {
	if expiresIn <= 0 {
		expiresIn = defaultSessionMinutes
	}
	session := users.Session{
		ID:        "session_" + uuid.NewString(),
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(expiresIn) * time.Minute),
	}
	for _, orgID := range s.memberships[userID] {
		org, ok := s.organizations[orgID]
		if !ok {
			org = users.Organization{ID: orgID}
		}
		session.AuthorizedOrganizations = append(session.AuthorizedOrganizations, users.AuthorizedOrganization{Organization: org})
	}
	return session
}
