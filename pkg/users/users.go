// Package users is the user-management resource of the SDK.
//
// Each method maps to exactly one endpoint: it serializes its options into the
// wire shape, makes a single call through the shared client and deserializes
// the response. Validation, retries and error mapping are left to the backend
// and to the shared client; errors are returned unchanged.
package users

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Icegreeen/workos-go/pkg/pagination"
	"github.com/Icegreeen/workos-go/pkg/platform/httpclient"
)

//go:generate mockgen -source=users.go -destination=mocks/mocks.go -package=mocks Requester

// Requester is the shared HTTP client as seen by this resource.
type Requester interface {
	Key() string
	Get(ctx context.Context, path string, query url.Values, out any, opts ...httpclient.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...httpclient.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...httpclient.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...httpclient.RequestOption) error
}

// Users exposes the /users endpoints.
type Users struct {
	client Requester
}

// New constructs the resource on top of the SDK's shared client.
func New(client Requester) *Users {
	return &Users{client: client}
}

func userPath(userID string, segments ...string) string {
	path := "/users/" + url.PathEscape(userID)
	for _, s := range segments {
		path += "/" + s
	}
	return path
}

func (u *Users) GetUser(ctx context.Context, userID string, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	if err := u.client.Get(ctx, userPath(userID), nil, &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

// ListUsers returns a lazy sequence over GET /users. Nothing is requested until
// the result is iterated; each page is one call.
func (u *Users) ListUsers(options ListUsersOptions, opts ...httpclient.RequestOption) *pagination.AutoPaginatable[User] {
	fetch := func(ctx context.Context, page pagination.Options) (pagination.List[User], error) {
		params := options
		params.Options = page

		query := url.Values{}
		if err := pagination.EncodeQuery(query, SerializeListUsersOptions(params)); err != nil {
			return pagination.List[User]{}, fmt.Errorf("list users: %w", err)
		}
		return pagination.FetchAndDeserialize(ctx, u.client, "/users", query, DeserializeUser, opts...)
	}
	return pagination.New(fetch, options.Options)
}

func (u *Users) CreateUser(ctx context.Context, payload CreateUserOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	if err := u.client.Post(ctx, "/users", SerializeCreateUserOptions(payload), &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) AuthenticateUserWithMagicAuth(ctx context.Context, payload AuthenticateUserWithMagicAuthOptions, opts ...httpclient.RequestOption) (AuthenticationResponse, error) {
	body := SerializeAuthenticateUserWithMagicAuthOptions(payload, u.client.Key())
	return u.authenticate(ctx, body, opts)
}

func (u *Users) AuthenticateUserWithPassword(ctx context.Context, payload AuthenticateUserWithPasswordOptions, opts ...httpclient.RequestOption) (AuthenticationResponse, error) {
	body := SerializeAuthenticateUserWithPasswordOptions(payload, u.client.Key())
	return u.authenticate(ctx, body, opts)
}

func (u *Users) AuthenticateUserWithCode(ctx context.Context, payload AuthenticateUserWithCodeOptions, opts ...httpclient.RequestOption) (AuthenticationResponse, error) {
	body := SerializeAuthenticateUserWithCodeOptions(payload, u.client.Key())
	return u.authenticate(ctx, body, opts)
}

func (u *Users) authenticate(ctx context.Context, body any, opts []httpclient.RequestOption) (AuthenticationResponse, error) {
	var resp AuthenticationResponseResponse
	if err := u.client.Post(ctx, "/users/sessions/token", body, &resp, opts...); err != nil {
		return AuthenticationResponse{}, err
	}
	return DeserializeAuthenticationResponse(resp), nil
}

func (u *Users) CreateEmailVerificationChallenge(ctx context.Context, payload CreateEmailVerificationChallengeOptions, opts ...httpclient.RequestOption) (CreateEmailVerificationChallengeResponse, error) {
	var resp CreateEmailVerificationChallengeResponseResponse
	path := userPath(payload.UserID, "email_verification_challenge")
	if err := u.client.Post(ctx, path, SerializeCreateEmailVerificationChallengeOptions(payload), &resp, opts...); err != nil {
		return CreateEmailVerificationChallengeResponse{}, err
	}
	return DeserializeCreateEmailVerificationChallengeResponse(resp), nil
}

func (u *Users) SendMagicAuthCode(ctx context.Context, payload SendMagicAuthCodeOptions, opts ...httpclient.RequestOption) (MagicAuthChallenge, error) {
	var resp MagicAuthChallenge
	if err := u.client.Post(ctx, "/users/magic_auth/send", SerializeSendMagicAuthCodeOptions(payload), &resp, opts...); err != nil {
		return MagicAuthChallenge{}, err
	}
	return resp, nil
}

func (u *Users) VerifyEmail(ctx context.Context, payload VerifyEmailOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	if err := u.client.Post(ctx, userPath(payload.UserID, "verify_email"), SerializeVerifyEmailOptions(payload), &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) CreatePasswordResetChallenge(ctx context.Context, payload CreatePasswordResetChallengeOptions, opts ...httpclient.RequestOption) (CreatePasswordResetChallengeResponse, error) {
	var resp CreatePasswordResetChallengeResponseResponse
	body := SerializeCreatePasswordResetChallengeOptions(payload)
	if err := u.client.Post(ctx, "/users/password_reset_challenge", body, &resp, opts...); err != nil {
		return CreatePasswordResetChallengeResponse{}, err
	}
	return DeserializeCreatePasswordResetChallengeResponse(resp), nil
}

func (u *Users) CompletePasswordReset(ctx context.Context, payload CompletePasswordResetOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	if err := u.client.Post(ctx, "/users/password_reset", SerializeCompletePasswordResetOptions(payload), &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) AddUserToOrganization(ctx context.Context, payload AddUserToOrganizationOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	body := SerializeAddUserToOrganizationOptions(payload)
	if err := u.client.Post(ctx, userPath(payload.UserID, "organizations"), body, &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) RemoveUserFromOrganization(ctx context.Context, payload RemoveUserFromOrganizationOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	path := userPath(payload.UserID, "organizations", url.PathEscape(payload.OrganizationID))
	if err := u.client.Delete(ctx, path, &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) UpdateUser(ctx context.Context, payload UpdateUserOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	if err := u.client.Put(ctx, userPath(payload.UserID), SerializeUpdateUserOptions(payload), &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

func (u *Users) UpdateUserPassword(ctx context.Context, payload UpdateUserPasswordOptions, opts ...httpclient.RequestOption) (User, error) {
	var resp UserResponse
	body := SerializeUpdateUserPasswordOptions(payload)
	if err := u.client.Put(ctx, userPath(payload.UserID, "password"), body, &resp, opts...); err != nil {
		return User{}, err
	}
	return DeserializeUser(resp), nil
}

// EnrollUserInMfaFactor enrolls a factor and returns it together with the
// first challenge issued against it.
func (u *Users) EnrollUserInMfaFactor(ctx context.Context, payload EnrollUserInMfaFactorOptions, opts ...httpclient.RequestOption) (EnrollUserInMfaFactorResponse, error) {
	var resp EnrollUserInMfaFactorResponseResponse
	body := SerializeEnrollUserInMfaFactorOptions(payload)
	if err := u.client.Post(ctx, userPath(payload.UserID, "auth", "factors"), body, &resp, opts...); err != nil {
		return EnrollUserInMfaFactorResponse{}, err
	}
	return DeserializeEnrollUserInMfaFactorResponse(resp), nil
}

// DeleteUser resolves to no value; the endpoint answers with no content.
func (u *Users) DeleteUser(ctx context.Context, payload DeleteUserOptions, opts ...httpclient.RequestOption) error {
	return u.client.Delete(ctx, userPath(payload.UserID), nil, opts...)
}
