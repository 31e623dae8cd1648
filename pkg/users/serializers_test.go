package users

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/pagination"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
}

func sampleUser() User {
	return DeserializeUser(userResponse("user_123"))
}

func TestSerializeUser_Golden(t *testing.T) {
	newGoldie(t).AssertJson(t, "user", SerializeUser(sampleUser()))
}

func TestSerializeAuthenticateUserWithMagicAuthOptions_Golden(t *testing.T) {
	body := SerializeAuthenticateUserWithMagicAuthOptions(AuthenticateUserWithMagicAuthOptions{
		ClientID:             "client_123",
		Code:                 "123456",
		MagicAuthChallengeID: "magic_auth_challenge_1",
		IPAddress:            "192.0.2.1",
	}, "sk_test_123")

	newGoldie(t).AssertJson(t, "authenticate_magic_auth", body)
}

func TestSerializeAuthenticationResponse_Golden(t *testing.T) {
	resp := AuthenticationResponse{
		User: sampleUser(),
		Session: Session{
			ID:        "session_1",
			Token:     "tok_1",
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(24 * time.Hour),
			UnauthorizedOrganizations: []UnauthorizedOrganization{{
				Organization: Organization{ID: "org_2", Name: "Bar Corp"},
				Reasons:      []UnauthorizedOrganizationReason{{Type: "authentication_method_not_allowed"}},
			}},
		},
	}

	newGoldie(t).AssertJson(t, "authentication_response", SerializeAuthenticationResponse(resp))
}

func TestSerializeUpdateUserOptions(t *testing.T) {
	verified := false
	tests := []struct {
		name string
		opts UpdateUserOptions
		want SerializedUpdateUserOptions
	}{
		{"empty", UpdateUserOptions{UserID: "user_1"}, SerializedUpdateUserOptions{}},
		{"explicit false survives", UpdateUserOptions{UserID: "user_1", EmailVerified: &verified}, SerializedUpdateUserOptions{EmailVerified: &verified}},
		{"names only", UpdateUserOptions{UserID: "user_1", FirstName: "A", LastName: "B"}, SerializedUpdateUserOptions{FirstName: "A", LastName: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SerializeUpdateUserOptions(tt.opts))
		})
	}
}

func TestSerializeListUsersOptions_DefaultsOrder(t *testing.T) {
	got := SerializeListUsersOptions(ListUsersOptions{Email: "a@b.com", Options: pagination.Options{Limit: 5}})

	assert.Equal(t, SerializedListUsersOptions{Email: "a@b.com", Limit: 5, Order: "desc"}, got)
}

// Each option type must come back unchanged through its inverse, with
// path-carried IDs and the injected secret supplied separately.
func TestOptionRoundTrips(t *testing.T) {
	t.Run("create user", func(t *testing.T) {
		in := CreateUserOptions{Email: "a@b.com", Password: "pw", FirstName: "A", LastName: "B", EmailVerified: true}
		assert.Equal(t, in, DeserializeCreateUserOptions(SerializeCreateUserOptions(in)))
	})

	t.Run("list users", func(t *testing.T) {
		in := ListUsersOptions{Email: "a@b.com", Organization: "org_1", Options: pagination.Options{Limit: 3, After: "user_1", Order: pagination.OrderAsc}}
		assert.Equal(t, in, DeserializeListUsersOptions(SerializeListUsersOptions(in)))
	})

	t.Run("password grant", func(t *testing.T) {
		in := AuthenticateUserWithPasswordOptions{ClientID: "c", Email: "a@b.com", Password: "pw", UserAgent: "ua", ExpiresIn: 60}
		out, secret := DeserializeAuthenticateUserWithPasswordOptions(SerializeAuthenticateUserWithPasswordOptions(in, "sk"))
		assert.Equal(t, in, out)
		assert.Equal(t, "sk", secret)
	})

	t.Run("magic auth grant", func(t *testing.T) {
		in := AuthenticateUserWithMagicAuthOptions{ClientID: "c", Code: "1", MagicAuthChallengeID: "m", IPAddress: "ip"}
		out, secret := DeserializeAuthenticateUserWithMagicAuthOptions(SerializeAuthenticateUserWithMagicAuthOptions(in, "sk"))
		assert.Equal(t, in, out)
		assert.Equal(t, "sk", secret)
	})

	t.Run("code grant", func(t *testing.T) {
		in := AuthenticateUserWithCodeOptions{ClientID: "c", Code: "1", ExpiresIn: 5}
		out, secret := DeserializeAuthenticateUserWithCodeOptions(SerializeAuthenticateUserWithCodeOptions(in, "sk"))
		assert.Equal(t, in, out)
		assert.Equal(t, "sk", secret)
	})

	t.Run("path carried", func(t *testing.T) {
		ev := CreateEmailVerificationChallengeOptions{UserID: "user_1", VerificationURL: "https://x"}
		assert.Equal(t, ev, DeserializeCreateEmailVerificationChallengeOptions("user_1", SerializeCreateEmailVerificationChallengeOptions(ev)))

		ve := VerifyEmailOptions{UserID: "user_1", Code: "123"}
		assert.Equal(t, ve, DeserializeVerifyEmailOptions("user_1", SerializeVerifyEmailOptions(ve)))

		add := AddUserToOrganizationOptions{UserID: "user_1", OrganizationID: "org_1"}
		assert.Equal(t, add, DeserializeAddUserToOrganizationOptions("user_1", SerializeAddUserToOrganizationOptions(add)))

		pw := UpdateUserPasswordOptions{UserID: "user_1", Password: "pw"}
		assert.Equal(t, pw, DeserializeUpdateUserPasswordOptions("user_1", SerializeUpdateUserPasswordOptions(pw)))

		enroll := EnrollUserInMfaFactorOptions{UserID: "user_1", Type: mfa.FactorTypeTOTP, TOTPIssuer: "i", TOTPUser: "u"}
		assert.Equal(t, enroll, DeserializeEnrollUserInMfaFactorOptions("user_1", SerializeEnrollUserInMfaFactorOptions(enroll)))
	})

	t.Run("password reset", func(t *testing.T) {
		ch := CreatePasswordResetChallengeOptions{Email: "a@b.com", PasswordResetURL: "https://x"}
		assert.Equal(t, ch, DeserializeCreatePasswordResetChallengeOptions(SerializeCreatePasswordResetChallengeOptions(ch)))

		done := CompletePasswordResetOptions{Token: "t", NewPassword: "pw"}
		assert.Equal(t, done, DeserializeCompletePasswordResetOptions(SerializeCompletePasswordResetOptions(done)))
	})
}

func TestResponseRoundTrips(t *testing.T) {
	user := sampleUser()

	t.Run("user", func(t *testing.T) {
		assert.Equal(t, user, DeserializeUser(SerializeUser(user)))
	})

	t.Run("session with organizations", func(t *testing.T) {
		session := Session{
			ID:                      "session_1",
			Token:                   "tok",
			CreatedAt:               createdAt,
			ExpiresAt:               createdAt.Add(time.Hour),
			AuthorizedOrganizations: []AuthorizedOrganization{{Organization: Organization{ID: "org_1", Name: "Foo"}}},
		}
		assert.Equal(t, session, DeserializeSession(SerializeSession(session)))
	})

	t.Run("session empty lists come back nil", func(t *testing.T) {
		session := Session{
			ID:                      "session_1",
			AuthorizedOrganizations: []AuthorizedOrganization{},
			UnauthorizedOrganizations: []UnauthorizedOrganization{
				{Organization: Organization{ID: "org_2"}, Reasons: []UnauthorizedOrganizationReason{}},
			},
		}

		wire := SerializeSession(session)
		assert.Equal(t, []AuthorizedOrganizationResponse{}, wire.AuthorizedOrganizations)
		assert.Equal(t, []UnauthorizedOrganizationReasonResponse{}, wire.UnauthorizedOrganizations[0].Reasons)

		got := DeserializeSession(wire)
		assert.Nil(t, got.AuthorizedOrganizations)
		assert.Nil(t, got.UnauthorizedOrganizations[0].Reasons)
		assert.Equal(t, got, DeserializeSession(SerializeSession(got)), "canonical form round-trips exactly")
	})

	t.Run("challenges", func(t *testing.T) {
		ev := CreateEmailVerificationChallengeResponse{Message: "ok", User: user}
		assert.Equal(t, ev, DeserializeCreateEmailVerificationChallengeResponse(SerializeCreateEmailVerificationChallengeResponse(ev)))

		pr := CreatePasswordResetChallengeResponse{Token: "t", User: user}
		assert.Equal(t, pr, DeserializeCreatePasswordResetChallengeResponse(SerializeCreatePasswordResetChallengeResponse(pr)))
	})

	t.Run("mfa enrollment", func(t *testing.T) {
		expires := createdAt.Add(10 * time.Minute)
		in := EnrollUserInMfaFactorResponse{
			AuthenticationFactor: mfa.Factor{
				Object: "authentication_factor",
				ID:     "auth_factor_1",
				Type:   mfa.FactorTypeTOTP,
				TOTP:   &mfa.TOTP{Issuer: "Foo", User: "a@b.com", Secret: "S"},
				UserID: "user_123",
			},
			AuthenticationChallenge: mfa.Challenge{
				Object:                 "authentication_challenge",
				ID:                     "auth_challenge_1",
				ExpiresAt:              &expires,
				AuthenticationFactorID: "auth_factor_1",
			},
		}
		assert.Equal(t, in, DeserializeEnrollUserInMfaFactorResponse(SerializeEnrollUserInMfaFactorResponse(in)))
	})
}
