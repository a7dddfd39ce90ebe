package cli

import (
	"context"
	"fmt"
)

// Indirections over the interactive helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) credentials(args []string) (string, []byte, error) {
	email, err := a.arg(args, 0, "Enter email")
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	email, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.auth.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.email = u.Email
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.Email)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	email, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.email = u.Email
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.auth.Logout(ctx)
	a.email = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %s, member since %s)\n", u.Email, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

// arg returns args[i] or prompts for it.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) && args[i] != "" {
		return args[i], nil
	}
	return requiredText(a.reader, prompt, a.out)
}
