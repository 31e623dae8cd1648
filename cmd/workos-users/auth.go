package main

import (
	"context"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Icegreeen/workos-go/pkg/users"
)

// sessionFlags are shared by every authenticate subcommand.
type sessionFlags struct {
	clientID  *string
	ipAddress *string
	userAgent *string
	expiresIn *int
}

func addSessionFlags(cmd *kingpin.CmdClause) sessionFlags {
	return sessionFlags{
		clientID:  cmd.Flag("client-id", "OAuth client ID; defaults to WORKOS_CLIENT_ID.").String(),
		ipAddress: cmd.Flag("ip-address", "Client IP address recorded on the session.").String(),
		userAgent: cmd.Flag("user-agent", "Client user agent recorded on the session.").String(),
		expiresIn: cmd.Flag("expires-in", "Session lifetime in minutes.").Int(),
	}
}

func (f sessionFlags) clientIDOr(fallback string) string {
	if *f.clientID != "" {
		return *f.clientID
	}
	return fallback
}

func authOutput(resp users.AuthenticationResponse, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return users.SerializeAuthenticationResponse(resp), nil
}

func registerAuthCommands(app *kingpin.Application, handlers map[string]handler) {
	auth := app.Command("authenticate", "Exchange credentials for a session.")

	password := auth.Command("password", "Authenticate with email and password.")
	passwordSession := addSessionFlags(password)
	passwordEmail := password.Flag("email", "Email address.").Required().String()
	passwordValue := password.Flag("password", "Password.").Required().String()
	handlers[password.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return authOutput(e.sdk.Users.AuthenticateUserWithPassword(ctx, users.AuthenticateUserWithPasswordOptions{
			ClientID:  passwordSession.clientIDOr(e.cfg.ClientID),
			Email:     *passwordEmail,
			Password:  *passwordValue,
			IPAddress: *passwordSession.ipAddress,
			UserAgent: *passwordSession.userAgent,
			ExpiresIn: *passwordSession.expiresIn,
		}))
	}

	code := auth.Command("code", "Authenticate with an OAuth authorization code.")
	codeSession := addSessionFlags(code)
	codeValue := code.Flag("code", "Authorization code.").Required().String()
	handlers[code.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return authOutput(e.sdk.Users.AuthenticateUserWithCode(ctx, users.AuthenticateUserWithCodeOptions{
			ClientID:  codeSession.clientIDOr(e.cfg.ClientID),
			Code:      *codeValue,
			IPAddress: *codeSession.ipAddress,
			UserAgent: *codeSession.userAgent,
			ExpiresIn: *codeSession.expiresIn,
		}))
	}

	magic := auth.Command("magic-auth", "Authenticate with a magic-auth code.")
	magicSession := addSessionFlags(magic)
	magicCode := magic.Flag("code", "Code from the magic-auth email.").Required().String()
	magicChallenge := magic.Flag("challenge-id", "Challenge ID returned by send-magic-auth.").Required().String()
	handlers[magic.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return authOutput(e.sdk.Users.AuthenticateUserWithMagicAuth(ctx, users.AuthenticateUserWithMagicAuthOptions{
			ClientID:             magicSession.clientIDOr(e.cfg.ClientID),
			Code:                 *magicCode,
			MagicAuthChallengeID: *magicChallenge,
			IPAddress:            *magicSession.ipAddress,
			UserAgent:            *magicSession.userAgent,
			ExpiresIn:            *magicSession.expiresIn,
		}))
	}

	send := app.Command("send-magic-auth", "Email a magic-auth code.")
	sendEmail := send.Arg("email", "Recipient email address.").Required().String()
	sendKey := send.Flag("idempotency-key", "Idempotency key; a random one is used when empty.").String()
	handlers[send.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		challenge, err := e.sdk.Users.SendMagicAuthCode(ctx, users.SendMagicAuthCodeOptions{EmailAddress: *sendEmail}, idempotencyKey(*sendKey))
		if err != nil {
			return nil, err
		}
		return challenge, nil
	}

	emailVerification := app.Command("email-verification", "Send an email verification challenge.")
	evID := emailVerification.Arg("id", "User ID.").Required().String()
	evURL := emailVerification.Flag("url", "Verification URL embedded in the email.").Required().String()
	handlers[emailVerification.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		resp, err := e.sdk.Users.CreateEmailVerificationChallenge(ctx, users.CreateEmailVerificationChallengeOptions{
			UserID:          *evID,
			VerificationURL: *evURL,
		})
		if err != nil {
			return nil, err
		}
		return users.SerializeCreateEmailVerificationChallengeResponse(resp), nil
	}

	verify := app.Command("verify-email", "Complete email verification with a code.")
	verifyID := verify.Arg("id", "User ID.").Required().String()
	verifyCode := verify.Flag("code", "Verification code.").Required().String()
	handlers[verify.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return userOutput(e.sdk.Users.VerifyEmail(ctx, users.VerifyEmailOptions{UserID: *verifyID, Code: *verifyCode}))
	}

	reset := app.Command("password-reset", "Reset a forgotten password.")
	resetChallenge := reset.Command("challenge", "Email a password reset link.")
	resetEmail := resetChallenge.Flag("email", "Email address.").Required().String()
	resetURL := resetChallenge.Flag("url", "Reset URL embedded in the email.").Required().String()
	handlers[resetChallenge.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		resp, err := e.sdk.Users.CreatePasswordResetChallenge(ctx, users.CreatePasswordResetChallengeOptions{
			Email:            *resetEmail,
			PasswordResetURL: *resetURL,
		})
		if err != nil {
			return nil, err
		}
		return users.SerializeCreatePasswordResetChallengeResponse(resp), nil
	}
	resetComplete := reset.Command("complete", "Set a new password with a reset token.")
	resetToken := resetComplete.Flag("token", "Reset token.").Required().String()
	resetPassword := resetComplete.Flag("new-password", "New password.").Required().String()
	handlers[resetComplete.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return userOutput(e.sdk.Users.CompletePasswordReset(ctx, users.CompletePasswordResetOptions{
			Token:       *resetToken,
			NewPassword: *resetPassword,
		}))
	}
}
