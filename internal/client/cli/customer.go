package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

// prompt reads one answer per label, in order.
func (a *App) prompt(labels ...string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		v, err := getSimpleText(a.reader, l, a.out)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// readSecret reads a password and returns it as a string, wiping the
// terminal buffer.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) Signup(ctx context.Context) error {
	v, err := a.prompt("First name", "Last name (optional)", "Email address", "Contact number")
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	res, err := a.api.Signup(ctx, shared.SignupCustomerRequest{
		FirstName:     v[0],
		LastName:      v[1],
		EmailAddress:  v[2],
		ContactNumber: v[3],
		Password:      password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (id %s)\n", res.Status, res.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	v, err := a.prompt("Email address")
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, v[0], password)
	if err != nil {
		return err
	}

	a.userName = res.FirstName
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	res, err := a.api.Logout(ctx)
	if err != nil {
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	v, err := a.prompt("First name", "Last name (optional)")
	if err != nil {
		return err
	}

	res, err := a.api.UpdateProfile(ctx, v[0], v[1])
	if err != nil {
		return err
	}

	a.userName = res.FirstName
	fmt.Fprintln(a.out, res.Status)
	return nil
}

func (a *App) Password(ctx context.Context) error {
	oldPassword, err := a.readSecret("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.readSecret("New password")
	if err != nil {
		return err
	}

	res, err := a.api.UpdatePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.Status)
	return nil
}

// WhoAmI describes the current session through the introspection service.
func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	info, err := a.sessions.Introspect(ctx, a.api.Token())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "customer %s, session %s\nlogged in %s, expires %s\n",
		info.CustomerID, info.SessionID,
		info.LoginAt.Local().Format(time.DateTime), info.ExpiresAt.Local().Format(time.DateTime))
	return nil
}
