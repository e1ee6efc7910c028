package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for account details and attempts to create a new
// account. A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	organization, err := getSimpleText(a.reader, "Enter organization (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	params := models.RegisterRequest{
		FullName:     fullName,
		Email:        email,
		Password:     password,
		Organization: organization,
	}

	if err := a.session.Register(ctx, params); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Account created. You are now logged in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Logout clears the in-memory session and the locally stored credentials.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Whoami prints the currently authenticated user.
func (a *App) Whoami(ctx context.Context) error {
	state := a.session.State()
	if !state.IsAuthenticated || state.User == nil {
		printlnFn("Not logged in")
		return nil
	}

	u := state.User
	printlnFn(fmt.Sprintf("%s <%s> role=%s", u.FullName, u.Email, u.Role))
	if u.Organization != "" {
		printlnFn("Organization:", u.Organization)
	}
	if expiresAt, ok := a.session.TokenExpiresAt(); ok {
		printlnFn("Token expires:", expiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// Refresh forces an immediate token refresh.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.RefreshToken(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Token refreshed")
	return nil
}
