package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for an access token and stores it in the local slot.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(ctx); err != nil {
		return err
	}

	username := cmd.String("username")
	r.logger.Info("logging in", "username", username)

	return r.report(r.provider.Session.Login(ctx, username, cmd.String("password")))
}

// AuthRegister creates an account and logs in with it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(ctx); err != nil {
		return err
	}

	req := models.RegisterRequest{
		Username:  cmd.String("username"),
		Password:  cmd.String("password"),
		Email:     cmd.String("email"),
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
	}
	r.logger.Info("registering", "username", req.Username)

	return r.report(r.provider.Session.Register(ctx, req))
}

// AuthLogout forgets the stored token. The server keeps no session, so no call is made.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.provider == nil {
		return fmt.Errorf("%w: stores not initialized", shared.ErrServiceUnavailable)
	}

	r.provider.Session.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports the restored session, if any.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.start(ctx); err != nil {
		return err
	}

	session := r.provider.Session
	profile := session.Profile()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"authenticated": session.Authenticated(),
			"profile":       profile,
		}, true)
	}

	if profile == nil {
		return r.writePlain("Not logged in\n")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Logged in as %s (%s)\n", profile.Username, profile.DisplayName())
	if profile.Email != "" {
		fmt.Fprintf(&buf, "Email: %s\n", profile.Email)
	}
	if exp, ok := session.ExpiresAt(); ok {
		fmt.Fprintf(&buf, "Token expires: %s (in %s)\n", exp.Local().Format(time.RFC1123), time.Until(exp).Round(time.Minute))
	}
	fmt.Fprintf(&buf, "Wishlist: %d car(s)\n", r.provider.Wishlist.Len())
	return r.writeBytes(buf.Bytes())
}

// AuthProfileUpdate changes the profile fields given as flags.
func (r *Runner) AuthProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	update := models.ProfileUpdate{
		Email:     cmd.String("email"),
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
	}
	if update.Empty() {
		return fmt.Errorf("%w: pass at least one of --email, --first-name, --last-name", shared.ErrMissingArgument)
	}

	if err := r.report(r.provider.Session.UpdateProfile(ctx, update)); err != nil {
		return err
	}

	profile := r.provider.Session.Profile()
	return r.writePlain("%s <%s>\n", profile.DisplayName(), profile.Email)
}

// AuthPassword changes the account password. The stored token stays valid.
func (r *Runner) AuthPassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	r.logger.Info("changing password", "username", r.provider.Session.Profile().Username)
	return r.report(r.provider.Session.ChangePassword(ctx, cmd.String("old"), cmd.String("new")))
}
