package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Icegreeen/workos-go/pkg/mfa"
	"github.com/Icegreeen/workos-go/pkg/pagination"
	"github.com/Icegreeen/workos-go/pkg/platform/httpclient"
	platformstrings "github.com/Icegreeen/workos-go/pkg/platform/strings"
	"github.com/Icegreeen/workos-go/pkg/users"
)

// getConcurrency bounds parallel lookups for `get` with several IDs.
const getConcurrency = 4

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// idempotencyKey returns key, or a fresh random key when none was given.
func idempotencyKey(key string) httpclient.RequestOption {
	if key == "" {
		key = uuid.NewString()
	}
	return httpclient.WithIdempotencyKey(key)
}

func registerUserCommands(app *kingpin.Application, handlers map[string]handler) {
	get := app.Command("get", "Fetch one or more users by ID.")
	getIDs := get.Arg("id", "User IDs.").Required().Strings()
	handlers[get.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return getUsers(ctx, e.sdk.Users, platformstrings.DedupeAndTrim(*getIDs))
	}

	list := app.Command("list", "List users, following cursors until exhausted.")
	listEmail := list.Flag("email", "Only users with this email.").String()
	listOrg := list.Flag("organization", "Only members of this organization.").String()
	listLimit := list.Flag("limit", "Return a single page of at most this many users.").Int()
	listOrder := list.Flag("order", "Sort order by creation time.").Default(string(pagination.DefaultOrder)).Enum("asc", "desc")
	listBefore := list.Flag("before", "Cursor to page backwards from.").String()
	listAfter := list.Flag("after", "Cursor to page forwards from.").String()
	handlers[list.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		all, err := e.sdk.Users.ListUsers(users.ListUsersOptions{
			Email:        *listEmail,
			Organization: *listOrg,
			Options: pagination.Options{
				Limit:  *listLimit,
				Before: *listBefore,
				After:  *listAfter,
				Order:  pagination.Order(*listOrder),
			},
		}).AutoPagination(ctx)
		if err != nil {
			return nil, err
		}
		return serializeUsers(all), nil
	}

	create := app.Command("create", "Create a user.")
	createEmail := create.Flag("email", "Email address.").Required().String()
	createPassword := create.Flag("password", "Initial password.").String()
	createFirst := create.Flag("first-name", "First name.").String()
	createLast := create.Flag("last-name", "Last name.").String()
	createVerified := create.Flag("email-verified", "Mark the email as already verified.").Bool()
	createKey := create.Flag("idempotency-key", "Idempotency key; a random one is used when empty.").String()
	handlers[create.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		u, err := e.sdk.Users.CreateUser(ctx, users.CreateUserOptions{
			Email:         *createEmail,
			Password:      *createPassword,
			FirstName:     *createFirst,
			LastName:      *createLast,
			EmailVerified: *createVerified,
		}, idempotencyKey(*createKey))
		return userOutput(u, err)
	}

	update := app.Command("update", "Update a user's profile.")
	updateID := update.Arg("id", "User ID.").Required().String()
	updateFirst := update.Flag("first-name", "First name.").String()
	updateLast := update.Flag("last-name", "Last name.").String()
	updateVerified := update.Flag("email-verified", "Set the verified flag explicitly.").Enum("true", "false")
	handlers[update.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		opts := users.UpdateUserOptions{UserID: *updateID, FirstName: *updateFirst, LastName: *updateLast}
		if *updateVerified != "" {
			v := *updateVerified == "true"
			opts.EmailVerified = &v
		}
		return userOutput(e.sdk.Users.UpdateUser(ctx, opts))
	}

	updatePassword := app.Command("update-password", "Set a user's password.")
	updatePasswordID := updatePassword.Arg("id", "User ID.").Required().String()
	updatePasswordValue := updatePassword.Flag("password", "New password.").Required().String()
	handlers[updatePassword.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return userOutput(e.sdk.Users.UpdateUserPassword(ctx, users.UpdateUserPasswordOptions{
			UserID:   *updatePasswordID,
			Password: *updatePasswordValue,
		}))
	}

	del := app.Command("delete", "Delete a user.")
	delID := del.Arg("id", "User ID.").Required().String()
	handlers[del.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		if err := e.sdk.Users.DeleteUser(ctx, users.DeleteUserOptions{UserID: *delID}); err != nil {
			return nil, err
		}
		e.log.Info("user deleted", "user_id", *delID)
		return nil, nil
	}

	org := app.Command("org", "Manage organization memberships.")
	orgAdd := org.Command("add", "Add a user to an organization.")
	orgAddUser := orgAdd.Arg("user-id", "User ID.").Required().String()
	orgAddOrg := orgAdd.Arg("organization-id", "Organization ID.").Required().String()
	handlers[orgAdd.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return userOutput(e.sdk.Users.AddUserToOrganization(ctx, users.AddUserToOrganizationOptions{
			UserID:         *orgAddUser,
			OrganizationID: *orgAddOrg,
		}))
	}
	orgRemove := org.Command("remove", "Remove a user from an organization.")
	orgRemoveUser := orgRemove.Arg("user-id", "User ID.").Required().String()
	orgRemoveOrg := orgRemove.Arg("organization-id", "Organization ID.").Required().String()
	handlers[orgRemove.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		return userOutput(e.sdk.Users.RemoveUserFromOrganization(ctx, users.RemoveUserFromOrganizationOptions{
			UserID:         *orgRemoveUser,
			OrganizationID: *orgRemoveOrg,
		}))
	}

	enroll := app.Command("enroll-mfa", "Enroll a user in a TOTP factor.")
	enrollID := enroll.Arg("id", "User ID.").Required().String()
	enrollType := enroll.Flag("type", "Factor type.").Default(string(mfa.FactorTypeTOTP)).Enum(string(mfa.FactorTypeTOTP))
	enrollIssuer := enroll.Flag("issuer", "TOTP issuer shown in authenticator apps.").String()
	enrollUser := enroll.Flag("user", "TOTP account name; defaults to the user's email.").String()
	handlers[enroll.FullCommand()] = func(ctx context.Context, e *env) (any, error) {
		resp, err := e.sdk.Users.EnrollUserInMfaFactor(ctx, users.EnrollUserInMfaFactorOptions{
			UserID:     *enrollID,
			Type:       mfa.FactorType(*enrollType),
			TOTPIssuer: *enrollIssuer,
			TOTPUser:   *enrollUser,
		})
		if err != nil {
			return nil, err
		}
		return users.SerializeEnrollUserInMfaFactorResponse(resp), nil
	}
}

// getUsers fetches ids concurrently and returns them in argument order. The
// first failure cancels the remaining lookups.
func getUsers(ctx context.Context, u *users.Users, ids []string) ([]users.UserResponse, error) {
	out := make([]users.UserResponse, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(getConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			user, err := u.GetUser(ctx, id)
			if err != nil {
				return fmt.Errorf("get %s: %w", id, err)
			}
			out[i] = users.SerializeUser(user)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func userOutput(u users.User, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return users.SerializeUser(u), nil
}

func serializeUsers(all []users.User) []users.UserResponse {
	out := make([]users.UserResponse, 0, len(all))
	for _, u := range all {
		out = append(out, users.SerializeUser(u))
	}
	return out
}
