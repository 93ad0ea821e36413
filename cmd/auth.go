package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and starts a session for it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	identity, err := r.sessions.Register(name, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.logger.Info("registered account", "email", identity.Email)
	return r.writePlain("✓ Registered and logged in as %s <%s>\n", identity.Name, identity.Email)
}

// AuthLogin starts a session with existing credentials.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	identity, err := r.sessions.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("logged in", "email", identity.Email)
	return r.writePlain("✓ Logged in as %s <%s>\n", identity.Name, identity.Email)
}

// AuthLogout ends the active session. Logging out while anonymous is a no-op.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.sessions.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami shows the active session.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	identity, ok := r.sessions.Current()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"authenticated": ok,
			"identity":      identity,
		}, true)
	}

	if !ok {
		return r.writePlain("Not logged in\n")
	}
	return r.writePlain("Logged in as %s <%s>\n", identity.Name, identity.Email)
}

// AuthUsers lists registered accounts.
func (r *Runner) AuthUsers(ctx context.Context, cmd *cli.Command) error {
	users := r.sessions.Directory()

	if cmd.Bool("json") {
		return r.writeJSON(users, true)
	}

	if len(users) == 0 {
		return r.writePlain("No registered accounts, run 'streamhub auth register' first\n")
	}

	r.writePlainHeader(fmt.Sprintf("Registered Accounts (%d)", len(users)))
	for _, user := range users {
		if err := r.writePlain("%s <%s>\n", user.Name, user.Email); err != nil {
			return err
		}
	}
	return nil
}
