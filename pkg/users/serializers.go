package users

import (
	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/pagination"
)

// Every DTO has a serializer/deserializer pair built field by field. Option
// serializers are what the client sends; their inverses are used by the fake
// API to read requests back. Response deserializers are what the client
// returns; their inverses let the fake API answer in wire shape.

func DeserializeUser(r UserResponse) User {
	return User{
		Object:        r.Object,
		ID:            r.ID,
		Email:         r.Email,
		EmailVerified: r.EmailVerified,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func SerializeUser(u User) UserResponse {
	return UserResponse{
		Object:        u.Object,
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func deserializeOrganization(r OrganizationResponse) Organization {
	return Organization{ID: r.ID, Name: r.Name}
}

func serializeOrganization(o Organization) OrganizationResponse {
	return OrganizationResponse{ID: o.ID, Name: o.Name}
}

// DeserializeSession maps empty organization and reason lists to nil.
func DeserializeSession(r SessionResponse) Session {
	s := Session{
		ID:        r.ID,
		Token:     r.Token,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
	for _, ao := range r.AuthorizedOrganizations {
		s.AuthorizedOrganizations = append(s.AuthorizedOrganizations, AuthorizedOrganization{
			Organization: deserializeOrganization(ao.Organization),
		})
	}
	for _, uo := range r.UnauthorizedOrganizations {
		org := UnauthorizedOrganization{Organization: deserializeOrganization(uo.Organization)}
		for _, reason := range uo.Reasons {
			org.Reasons = append(org.Reasons, UnauthorizedOrganizationReason{Type: reason.Type})
		}
		s.UnauthorizedOrganizations = append(s.UnauthorizedOrganizations, org)
	}
	return s
}

// SerializeSession always emits arrays, never null, for the organization and
// reason lists.
func SerializeSession(s Session) SessionResponse {
	r := SessionResponse{
		ID:                        s.ID,
		Token:                     s.Token,
		CreatedAt:                 s.CreatedAt,
		ExpiresAt:                 s.ExpiresAt,
		AuthorizedOrganizations:   []AuthorizedOrganizationResponse{},
		UnauthorizedOrganizations: []UnauthorizedOrganizationResponse{},
	}
	for _, ao := range s.AuthorizedOrganizations {
		r.AuthorizedOrganizations = append(r.AuthorizedOrganizations, AuthorizedOrganizationResponse{
			Organization: serializeOrganization(ao.Organization),
		})
	}
	for _, uo := range s.UnauthorizedOrganizations {
		org := UnauthorizedOrganizationResponse{
			Organization: serializeOrganization(uo.Organization),
			Reasons:      []UnauthorizedOrganizationReasonResponse{},
		}
		for _, reason := range uo.Reasons {
			org.Reasons = append(org.Reasons, UnauthorizedOrganizationReasonResponse{Type: reason.Type})
		}
		r.UnauthorizedOrganizations = append(r.UnauthorizedOrganizations, org)
	}
	return r
}

func DeserializeAuthenticationResponse(r AuthenticationResponseResponse) AuthenticationResponse {
	return AuthenticationResponse{
		User:    DeserializeUser(r.User),
		Session: DeserializeSession(r.Session),
	}
}

func SerializeAuthenticationResponse(a AuthenticationResponse) AuthenticationResponseResponse {
	return AuthenticationResponseResponse{
		User:    SerializeUser(a.User),
		Session: SerializeSession(a.Session),
	}
}

func SerializeListUsersOptions(o ListUsersOptions) SerializedListUsersOptions {
	page := pagination.SerializeOptions(o.Options)
	return SerializedListUsersOptions{
		Email:        o.Email,
		Organization: o.Organization,
		Limit:        page.Limit,
		Before:       page.Before,
		After:        page.After,
		Order:        page.Order,
	}
}

func DeserializeListUsersOptions(s SerializedListUsersOptions) ListUsersOptions {
	return ListUsersOptions{
		Email:        s.Email,
		Organization: s.Organization,
		Options: pagination.DeserializeOptions(pagination.SerializedOptions{
			Limit:  s.Limit,
			Before: s.Before,
			After:  s.After,
			Order:  s.Order,
		}),
	}
}

func SerializeCreateUserOptions(o CreateUserOptions) SerializedCreateUserOptions {
	return SerializedCreateUserOptions{
		Email:         o.Email,
		Password:      o.Password,
		FirstName:     o.FirstName,
		LastName:      o.LastName,
		EmailVerified: o.EmailVerified,
	}
}

func DeserializeCreateUserOptions(s SerializedCreateUserOptions) CreateUserOptions {
	return CreateUserOptions{
		Email:         s.Email,
		Password:      s.Password,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		EmailVerified: s.EmailVerified,
	}
}

// SerializeAuthenticateUserWithMagicAuthOptions adds the grant type and the
// client secret, which always comes from the SDK's API key.
func SerializeAuthenticateUserWithMagicAuthOptions(o AuthenticateUserWithMagicAuthOptions, clientSecret string) SerializedAuthenticateUserWithMagicAuthOptions {
	return SerializedAuthenticateUserWithMagicAuthOptions{
		GrantType:            GrantTypeMagicAuthCode,
		ClientID:             o.ClientID,
		ClientSecret:         clientSecret,
		Code:                 o.Code,
		MagicAuthChallengeID: o.MagicAuthChallengeID,
		IPAddress:            o.IPAddress,
		UserAgent:            o.UserAgent,
		ExpiresIn:            o.ExpiresIn,
	}
}

func DeserializeAuthenticateUserWithMagicAuthOptions(s SerializedAuthenticateUserWithMagicAuthOptions) (AuthenticateUserWithMagicAuthOptions, string) {
	return AuthenticateUserWithMagicAuthOptions{
		ClientID:             s.ClientID,
		Code:                 s.Code,
		MagicAuthChallengeID: s.MagicAuthChallengeID,
		IPAddress:            s.IPAddress,
		UserAgent:            s.UserAgent,
		ExpiresIn:            s.ExpiresIn,
	}, s.ClientSecret
}

func SerializeAuthenticateUserWithPasswordOptions(o AuthenticateUserWithPasswordOptions, clientSecret string) SerializedAuthenticateUserWithPasswordOptions {
	return SerializedAuthenticateUserWithPasswordOptions{
		GrantType:    GrantTypePassword,
		ClientID:     o.ClientID,
		ClientSecret: clientSecret,
		Email:        o.Email,
		Password:     o.Password,
		IPAddress:    o.IPAddress,
		UserAgent:    o.UserAgent,
		ExpiresIn:    o.ExpiresIn,
	}
}

func DeserializeAuthenticateUserWithPasswordOptions(s SerializedAuthenticateUserWithPasswordOptions) (AuthenticateUserWithPasswordOptions, string) {
	return AuthenticateUserWithPasswordOptions{
		ClientID:  s.ClientID,
		Email:     s.Email,
		Password:  s.Password,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		ExpiresIn: s.ExpiresIn,
	}, s.ClientSecret
}

func SerializeAuthenticateUserWithCodeOptions(o AuthenticateUserWithCodeOptions, clientSecret string) SerializedAuthenticateUserWithCodeOptions {
	return SerializedAuthenticateUserWithCodeOptions{
		GrantType:    GrantTypeAuthorizationCode,
		ClientID:     o.ClientID,
		ClientSecret: clientSecret,
		Code:         o.Code,
		IPAddress:    o.IPAddress,
		UserAgent:    o.UserAgent,
		ExpiresIn:    o.ExpiresIn,
	}
}

func DeserializeAuthenticateUserWithCodeOptions(s SerializedAuthenticateUserWithCodeOptions) (AuthenticateUserWithCodeOptions, string) {
	return AuthenticateUserWithCodeOptions{
		ClientID:  s.ClientID,
		Code:      s.Code,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		ExpiresIn: s.ExpiresIn,
	}, s.ClientSecret
}

func SerializeCreateEmailVerificationChallengeOptions(o CreateEmailVerificationChallengeOptions) SerializedCreateEmailVerificationChallengeOptions {
	return SerializedCreateEmailVerificationChallengeOptions{VerificationURL: o.VerificationURL}
}

// DeserializeCreateEmailVerificationChallengeOptions takes the user ID from the
// request path since it is not part of the body.
func DeserializeCreateEmailVerificationChallengeOptions(userID string, s SerializedCreateEmailVerificationChallengeOptions) CreateEmailVerificationChallengeOptions {
	return CreateEmailVerificationChallengeOptions{UserID: userID, VerificationURL: s.VerificationURL}
}

func DeserializeCreateEmailVerificationChallengeResponse(r CreateEmailVerificationChallengeResponseResponse) CreateEmailVerificationChallengeResponse {
	return CreateEmailVerificationChallengeResponse{
		Message: r.Message,
		User:    DeserializeUser(r.User),
	}
}

func SerializeCreateEmailVerificationChallengeResponse(c CreateEmailVerificationChallengeResponse) CreateEmailVerificationChallengeResponseResponse {
	return CreateEmailVerificationChallengeResponseResponse{
		Message: c.Message,
		User:    SerializeUser(c.User),
	}
}

func SerializeSendMagicAuthCodeOptions(o SendMagicAuthCodeOptions) SerializedSendMagicAuthCodeOptions {
	return SerializedSendMagicAuthCodeOptions{EmailAddress: o.EmailAddress}
}

func DeserializeSendMagicAuthCodeOptions(s SerializedSendMagicAuthCodeOptions) SendMagicAuthCodeOptions {
	return SendMagicAuthCodeOptions{EmailAddress: s.EmailAddress}
}

func SerializeVerifyEmailOptions(o VerifyEmailOptions) SerializedVerifyEmailOptions {
	return SerializedVerifyEmailOptions{Code: o.Code}
}

func DeserializeVerifyEmailOptions(userID string, s SerializedVerifyEmailOptions) VerifyEmailOptions {
	return VerifyEmailOptions{UserID: userID, Code: s.Code}
}

func SerializeCreatePasswordResetChallengeOptions(o CreatePasswordResetChallengeOptions) SerializedCreatePasswordResetChallengeOptions {
	return SerializedCreatePasswordResetChallengeOptions{
		Email:            o.Email,
		PasswordResetURL: o.PasswordResetURL,
	}
}

func DeserializeCreatePasswordResetChallengeOptions(s SerializedCreatePasswordResetChallengeOptions) CreatePasswordResetChallengeOptions {
	return CreatePasswordResetChallengeOptions{
		Email:            s.Email,
		PasswordResetURL: s.PasswordResetURL,
	}
}

func DeserializeCreatePasswordResetChallengeResponse(r CreatePasswordResetChallengeResponseResponse) CreatePasswordResetChallengeResponse {
	return CreatePasswordResetChallengeResponse{
		Token: r.Token,
		User:  DeserializeUser(r.User),
	}
}

func SerializeCreatePasswordResetChallengeResponse(c CreatePasswordResetChallengeResponse) CreatePasswordResetChallengeResponseResponse {
	return CreatePasswordResetChallengeResponseResponse{
		Token: c.Token,
		User:  SerializeUser(c.User),
	}
}

func SerializeCompletePasswordResetOptions(o CompletePasswordResetOptions) SerializedCompletePasswordResetOptions {
	return SerializedCompletePasswordResetOptions{
		Token:       o.Token,
		NewPassword: o.NewPassword,
	}
}

func DeserializeCompletePasswordResetOptions(s SerializedCompletePasswordResetOptions) CompletePasswordResetOptions {
	return CompletePasswordResetOptions{
		Token:       s.Token,
		NewPassword: s.NewPassword,
	}
}

func SerializeAddUserToOrganizationOptions(o AddUserToOrganizationOptions) SerializedAddUserToOrganizationOptions {
	return SerializedAddUserToOrganizationOptions{OrganizationID: o.OrganizationID}
}

func DeserializeAddUserToOrganizationOptions(userID string, s SerializedAddUserToOrganizationOptions) AddUserToOrganizationOptions {
	return AddUserToOrganizationOptions{UserID: userID, OrganizationID: s.OrganizationID}
}

func SerializeUpdateUserOptions(o UpdateUserOptions) SerializedUpdateUserOptions {
	return SerializedUpdateUserOptions{
		FirstName:     o.FirstName,
		LastName:      o.LastName,
		EmailVerified: o.EmailVerified,
	}
}

func DeserializeUpdateUserOptions(userID string, s SerializedUpdateUserOptions) UpdateUserOptions {
	return UpdateUserOptions{
		UserID:        userID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		EmailVerified: s.EmailVerified,
	}
}

func SerializeUpdateUserPasswordOptions(o UpdateUserPasswordOptions) SerializedUpdateUserPasswordOptions {
	return SerializedUpdateUserPasswordOptions{Password: o.Password}
}

func DeserializeUpdateUserPasswordOptions(userID string, s SerializedUpdateUserPasswordOptions) UpdateUserPasswordOptions {
	return UpdateUserPasswordOptions{UserID: userID, Password: s.Password}
}

func SerializeEnrollUserInMfaFactorOptions(o EnrollUserInMfaFactorOptions) SerializedEnrollUserInMfaFactorOptions {
	return SerializedEnrollUserInMfaFactorOptions{
		Type:       string(o.Type),
		TOTPIssuer: o.TOTPIssuer,
		TOTPUser:   o.TOTPUser,
	}
}

func DeserializeEnrollUserInMfaFactorOptions(userID string, s SerializedEnrollUserInMfaFactorOptions) EnrollUserInMfaFactorOptions {
	return EnrollUserInMfaFactorOptions{
		UserID:     userID,
		Type:       mfa.FactorType(s.Type),
		TOTPIssuer: s.TOTPIssuer,
		TOTPUser:   s.TOTPUser,
	}
}

func DeserializeEnrollUserInMfaFactorResponse(r EnrollUserInMfaFactorResponseResponse) EnrollUserInMfaFactorResponse {
	return EnrollUserInMfaFactorResponse{
		AuthenticationFactor:    mfa.DeserializeFactor(r.AuthenticationFactor),
		AuthenticationChallenge: mfa.DeserializeChallenge(r.AuthenticationChallenge),
	}
}

func SerializeEnrollUserInMfaFactorResponse(e EnrollUserInMfaFactorResponse) EnrollUserInMfaFactorResponseResponse {
	return EnrollUserInMfaFactorResponseResponse{
		AuthenticationFactor:    mfa.SerializeFactor(e.AuthenticationFactor),
		AuthenticationChallenge: mfa.SerializeChallenge(e.AuthenticationChallenge),
	}
}
