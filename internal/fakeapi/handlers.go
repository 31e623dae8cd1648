package fakeapi

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/Icegreeen/workos-go/pkg/email"
	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/pagination"
	"github.com/Icegreeen/workos-go/pkg/requestcontext"
	"github.com/Icegreeen/workos-go/pkg/users"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// userLocked fetches a user or writes 404. Callers hold s.mu.
func (s *Server) userLocked(w http.ResponseWriter, id string) (users.User, bool) {
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "entity_not_found", "User not found: '"+id+"'")
	}
	return u, ok
}

func (s *Server) userByEmailLocked(email string) (users.User, bool) {
	for _, id := range s.order {
		if u := s.users[id]; strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return users.User{}, false
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var query users.SerializedListUsersOptions
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_request_parameters", err.Error())
		return
	}
	opts := users.DeserializeListUsersOptions(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []users.User
	for _, id := range s.order {
		u := s.users[id]
		if opts.Email != "" && !strings.EqualFold(u.Email, opts.Email) {
			continue
		}
		if opts.Organization != "" && !slices.Contains(s.memberships[id], opts.Organization) {
			continue
		}
		matched = append(matched, u)
	}
	if opts.Order != pagination.OrderAsc {
		slices.Reverse(matched)
	}

	writeJSON(w, http.StatusOK, pagination.SerializeList(paginate(matched, opts.Options), users.SerializeUser))
}

// paginate slices an ordered result set with user IDs as cursors.
func paginate(all []users.User, opts pagination.Options) pagination.List[users.User] {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)

	indexOf := func(id string) int {
		return slices.IndexFunc(all, func(u users.User) bool { return u.ID == id })
	}

	start, end := 0, len(all)
	switch {
	case opts.After != "":
		start = indexOf(opts.After) + 1
		end = min(start+limit, len(all))
	case opts.Before != "":
		end = max(indexOf(opts.Before), 0)
		start = max(end-limit, 0)
	default:
		end = min(limit, len(all))
	}

	list := pagination.List[users.User]{Object: "list", Data: all[start:end]}
	if start > 0 && end > start {
		list.ListMetadata.Before = all[start].ID
	}
	if end < len(all) && end > start {
		list.ListMetadata.After = all[end-1].ID
	}
	return list
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedCreateUserOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeCreateUserOptions(body)
	opts.Email = email.Normalize(opts.Email)
	switch {
	case opts.Email == "":
		writeValidationError(w, "email", "email_required")
		return
	case !email.Valid(opts.Email):
		writeValidationError(w, "email", "email_invalid")
		return
	}
	var hashed string
	if opts.Password != "" {
		var ok bool
		if hashed, ok = hashPasswordOrReject(w, "password", opts.Password); !ok {
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.userByEmailLocked(opts.Email); exists {
		writeError(w, http.StatusConflict, "user_creation_error", "A user with this email already exists.")
		return
	}

	now := requestcontext.Now(r.Context())
	u := users.User{
		Object:        "user",
		ID:            "user_" + uuid.NewString(),
		Email:         opts.Email,
		EmailVerified: opts.EmailVerified,
		FirstName:     opts.FirstName,
		LastName:      opts.LastName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	if hashed != "" {
		s.passwords[u.ID] = hashed
	}
	writeJSON(w, http.StatusCreated, users.SerializeUser(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedUpdateUserOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeUpdateUserOptions(chi.URLParam(r, "id"), body)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	if opts.FirstName != "" {
		u.FirstName = opts.FirstName
	}
	if opts.LastName != "" {
		u.LastName = opts.LastName
	}
	if opts.EmailVerified != nil {
		u.EmailVerified = *opts.EmailVerified
	}
	u.UpdatedAt = requestcontext.Now(r.Context())
	s.users[u.ID] = u
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userLocked(w, id); !ok {
		return
	}
	delete(s.users, id)
	delete(s.passwords, id)
	delete(s.memberships, id)
	delete(s.factors, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedUpdateUserPasswordOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeUpdateUserPasswordOptions(chi.URLParam(r, "id"), body)
	if opts.Password == "" {
		writeValidationError(w, "password", "password_required")
		return
	}
	hashed, ok := hashPasswordOrReject(w, "password", opts.Password)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	s.passwords[u.ID] = hashed
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleAddUserToOrganization(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedAddUserToOrganizationOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeAddUserToOrganizationOptions(chi.URLParam(r, "id"), body)
	if opts.OrganizationID == "" {
		writeValidationError(w, "organization_id", "organization_id_required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	if !slices.Contains(s.memberships[u.ID], opts.OrganizationID) {
		s.memberships[u.ID] = append(s.memberships[u.ID], opts.OrganizationID)
	}
	writeJSON(w, http.StatusCreated, users.SerializeUser(u))
}

func (s *Server) handleRemoveUserFromOrganization(w http.ResponseWriter, r *http.Request) {
	userID, orgID := chi.URLParam(r, "id"), chi.URLParam(r, "orgID")

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, userID)
	if !ok {
		return
	}
	if !slices.Contains(s.memberships[userID], orgID) {
		writeError(w, http.StatusNotFound, "entity_not_found", "Organization membership not found")
		return
	}
	s.memberships[userID] = slices.DeleteFunc(s.memberships[userID], func(v string) bool { return v == orgID })
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleCreateEmailVerificationChallenge(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedCreateEmailVerificationChallengeOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeCreateEmailVerificationChallengeOptions(chi.URLParam(r, "id"), body)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	s.verificationCodes[u.ID] = s.nextCode()
	writeJSON(w, http.StatusCreated, users.SerializeCreateEmailVerificationChallengeResponse(users.CreateEmailVerificationChallengeResponse{
		Message: "Email verification challenge created",
		User:    u,
	}))
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedVerifyEmailOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeVerifyEmailOptions(chi.URLParam(r, "id"), body)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	want, issued := s.verificationCodes[u.ID]
	if !issued || want != opts.Code {
		writeError(w, http.StatusBadRequest, "email_verification_code_incorrect", "Email verification code is incorrect.")
		return
	}
	delete(s.verificationCodes, u.ID)
	u.EmailVerified = true
	u.UpdatedAt = requestcontext.Now(r.Context())
	s.users[u.ID] = u
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleSendMagicAuthCode(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedSendMagicAuthCodeOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeSendMagicAuthCodeOptions(body)
	if !email.Valid(email.Normalize(opts.EmailAddress)) {
		writeValidationError(w, "email_address", "email_address_invalid")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	challenge := users.MagicAuthChallenge{ID: "magic_auth_challenge_" + uuid.NewString()}
	s.magicAuth[challenge.ID] = magicAuthChallenge{email: opts.EmailAddress, code: s.nextCode()}
	writeJSON(w, http.StatusCreated, challenge)
}

func (s *Server) handleCreatePasswordResetChallenge(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedCreatePasswordResetChallengeOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeCreatePasswordResetChallengeOptions(body)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userByEmailLocked(opts.Email)
	if !ok {
		writeError(w, http.StatusNotFound, "entity_not_found", "User not found: '"+opts.Email+"'")
		return
	}
	token := uuid.NewString()
	s.resetTokens[token] = u.ID
	writeJSON(w, http.StatusCreated, users.SerializeCreatePasswordResetChallengeResponse(users.CreatePasswordResetChallengeResponse{
		Token: token,
		User:  u,
	}))
}

func (s *Server) handleCompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedCompletePasswordResetOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeCompletePasswordResetOptions(body)
	hashed, ok := hashPasswordOrReject(w, "new_password", opts.NewPassword)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.resetTokens[opts.Token]
	if !ok {
		writeError(w, http.StatusBadRequest, "password_reset_token_invalid", "Password reset token is invalid or expired.")
		return
	}
	u, ok := s.userLocked(w, userID)
	if !ok {
		return
	}
	delete(s.resetTokens, opts.Token)
	s.passwords[u.ID] = hashed
	writeJSON(w, http.StatusOK, users.SerializeUser(u))
}

func (s *Server) handleEnrollFactor(w http.ResponseWriter, r *http.Request) {
	var body users.SerializedEnrollUserInMfaFactorOptions
	if !decodeJSON(w, r, &body) {
		return
	}
	opts := users.DeserializeEnrollUserInMfaFactorOptions(chi.URLParam(r, "id"), body)
	if opts.Type != mfa.FactorTypeTOTP {
		writeValidationError(w, "type", "type_must_be_totp")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userLocked(w, opts.UserID)
	if !ok {
		return
	}
	issuer := opts.TOTPIssuer
	account := opts.TOTPUser
	if account == "" {
		account = u.Email
	}
	now := requestcontext.Now(r.Context())
	secret := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	factor := mfa.Factor{
		Object:    "authentication_factor",
		ID:        "auth_factor_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Type:      mfa.FactorTypeTOTP,
		TOTP: &mfa.TOTP{
			Issuer: issuer,
			User:   account,
			Secret: secret,
			URI:    "otpauth://totp/" + issuer + ":" + account + "?secret=" + secret + "&issuer=" + issuer,
			QRCode: "data:image/png;base64,",
		},
		UserID: u.ID,
	}
	expires := now.Add(10 * time.Minute)
	challenge := mfa.Challenge{
		Object:                 "authentication_challenge",
		ID:                     "auth_challenge_" + uuid.NewString(),
		CreatedAt:              now,
		UpdatedAt:              now,
		ExpiresAt:              &expires,
		AuthenticationFactorID: factor.ID,
	}
	s.factors[u.ID] = append(s.factors[u.ID], factor)
	writeJSON(w, http.StatusCreated, users.SerializeEnrollUserInMfaFactorResponse(users.EnrollUserInMfaFactorResponse{
		AuthenticationFactor:    factor,
		AuthenticationChallenge: challenge,
	}))
}
