package users

import (
	"time"

	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/pagination"
)

// Grant types accepted by the session token endpoint.
const (
	GrantTypeMagicAuthCode     = "urn:workos:oauth:grant-type:magic-auth:code"
	GrantTypePassword          = "password"
	GrantTypeAuthorizationCode = "authorization_code"
)

// User is an identity record owned by the backend.
type User struct {
	Object        string
	ID            string
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type UserResponse struct {
	Object        string    `json:"object"`
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Organization struct {
	ID   string
	Name string
}

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AuthorizedOrganization struct {
	Organization Organization
}

type AuthorizedOrganizationResponse struct {
	Organization OrganizationResponse `json:"organization"`
}

// UnauthorizedOrganizationReason explains why a session may not act on an
// organization, e.g. "authentication_method_not_allowed".
type UnauthorizedOrganizationReason struct {
	Type string
}

type UnauthorizedOrganizationReasonResponse struct {
	Type string `json:"type"`
}

type UnauthorizedOrganization struct {
	Organization Organization
	Reasons      []UnauthorizedOrganizationReason
}

type UnauthorizedOrganizationResponse struct {
	Organization OrganizationResponse                     `json:"organization"`
	Reasons      []UnauthorizedOrganizationReasonResponse `json:"reasons"`
}

// Session is issued by a successful authentication. Token is the bearer
// credential; the client never stores it.
//
// A nil and an empty organization or reason list mean the same thing. The
// wire always carries an array and deserialization always yields nil for an
// empty one, so serializer round trips are exact up to that distinction.
type Session struct {
	ID                        string
	Token                     string
	CreatedAt                 time.Time
	ExpiresAt                 time.Time
	AuthorizedOrganizations   []AuthorizedOrganization
	UnauthorizedOrganizations []UnauthorizedOrganization
}

type SessionResponse struct {
	ID                        string                             `json:"id"`
	Token                     string                             `json:"token"`
	CreatedAt                 time.Time                          `json:"created_at"`
	ExpiresAt                 time.Time                          `json:"expires_at"`
	AuthorizedOrganizations   []AuthorizedOrganizationResponse   `json:"authorized_organizations"`
	UnauthorizedOrganizations []UnauthorizedOrganizationResponse `json:"unauthorized_organizations"`
}

type AuthenticationResponse struct {
	User    User
	Session Session
}

type AuthenticationResponseResponse struct {
	User    UserResponse    `json:"user"`
	Session SessionResponse `json:"session"`
}

// ListUsersOptions filters GET /users. Zero values are omitted from the query.
type ListUsersOptions struct {
	Email        string
	Organization string
	pagination.Options
}

type SerializedListUsersOptions struct {
	Email        string `schema:"email,omitempty"`
	Organization string `schema:"organization,omitempty"`
	Limit        int    `schema:"limit,omitempty"`
	Before       string `schema:"before,omitempty"`
	After        string `schema:"after,omitempty"`
	Order        string `schema:"order,omitempty"`
}

type CreateUserOptions struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	EmailVerified bool
}

type SerializedCreateUserOptions struct {
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// AuthenticateUserWithMagicAuthOptions exchanges a magic-auth code for a
// session. ExpiresIn is the session lifetime in minutes; zero leaves it to
// the backend default.
type AuthenticateUserWithMagicAuthOptions struct {
	ClientID             string
	Code                 string
	MagicAuthChallengeID string
	IPAddress            string
	UserAgent            string
	ExpiresIn            int
}

type SerializedAuthenticateUserWithMagicAuthOptions struct {
	GrantType            string `json:"grant_type"`
	ClientID             string `json:"client_id"`
	ClientSecret         string `json:"client_secret"`
	Code                 string `json:"code"`
	MagicAuthChallengeID string `json:"magic_auth_challenge_id"`
	IPAddress            string `json:"ip_address,omitempty"`
	UserAgent            string `json:"user_agent,omitempty"`
	ExpiresIn            int    `json:"expires_in,omitempty"`
}

type AuthenticateUserWithPasswordOptions struct {
	ClientID  string
	Email     string
	Password  string
	IPAddress string
	UserAgent string
	ExpiresIn int
}

type SerializedAuthenticateUserWithPasswordOptions struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	IPAddress    string `json:"ip_address,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// AuthenticateUserWithCodeOptions exchanges an OAuth authorization code.
type AuthenticateUserWithCodeOptions struct {
	ClientID  string
	Code      string
	IPAddress string
	UserAgent string
	ExpiresIn int
}

type SerializedAuthenticateUserWithCodeOptions struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	IPAddress    string `json:"ip_address,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

type CreateEmailVerificationChallengeOptions struct {
	UserID          string
	VerificationURL string
}

type SerializedCreateEmailVerificationChallengeOptions struct {
	VerificationURL string `json:"verification_url"`
}

type CreateEmailVerificationChallengeResponse struct {
	Message string
	User    User
}

type CreateEmailVerificationChallengeResponseResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type SendMagicAuthCodeOptions struct {
	EmailAddress string
}

type SerializedSendMagicAuthCodeOptions struct {
	EmailAddress string `json:"email_address"`
}

// MagicAuthChallenge is returned as-is from the wire; it has no field that
// needs renaming.
type MagicAuthChallenge struct {
	ID string `json:"id"`
}

type VerifyEmailOptions struct {
	UserID string
	Code   string
}

type SerializedVerifyEmailOptions struct {
	Code string `json:"code"`
}

type CreatePasswordResetChallengeOptions struct {
	Email            string
	PasswordResetURL string
}

type SerializedCreatePasswordResetChallengeOptions struct {
	Email            string `json:"email"`
	PasswordResetURL string `json:"password_reset_url"`
}

type CreatePasswordResetChallengeResponse struct {
	Token string
	User  User
}

type CreatePasswordResetChallengeResponseResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CompletePasswordResetOptions struct {
	Token       string
	NewPassword string
}

type SerializedCompletePasswordResetOptions struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type AddUserToOrganizationOptions struct {
	UserID         string
	OrganizationID string
}

type SerializedAddUserToOrganizationOptions struct {
	OrganizationID string `json:"organization_id"`
}

type RemoveUserFromOrganizationOptions struct {
	UserID         string
	OrganizationID string
}

// UpdateUserOptions updates only the fields that are set. EmailVerified is a
// pointer so that false can be sent explicitly.
type UpdateUserOptions struct {
	UserID        string
	FirstName     string
	LastName      string
	EmailVerified *bool
}

type SerializedUpdateUserOptions struct {
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
}

type UpdateUserPasswordOptions struct {
	UserID   string
	Password string
}

type SerializedUpdateUserPasswordOptions struct {
	Password string `json:"password"`
}

type EnrollUserInMfaFactorOptions struct {
	UserID     string
	Type       mfa.FactorType
	TOTPIssuer string
	TOTPUser   string
}

type SerializedEnrollUserInMfaFactorOptions struct {
	Type       string `json:"type"`
	TOTPIssuer string `json:"totp_issuer,omitempty"`
	TOTPUser   string `json:"totp_user,omitempty"`
}

type EnrollUserInMfaFactorResponse struct {
	AuthenticationFactor    mfa.Factor
	AuthenticationChallenge mfa.Challenge
}

type EnrollUserInMfaFactorResponseResponse struct {
	AuthenticationFactor    mfa.FactorResponse    `json:"authentication_factor"`
	AuthenticationChallenge mfa.ChallengeResponse `json:"authentication_challenge"`
}

type DeleteUserOptions struct {
	UserID string
}
