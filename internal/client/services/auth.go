package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
	"github.com/dmitrijs2005/autokeeper/internal/client/models"
)

// AuthAPI is the part of client.APIClient the auth flow needs.
type AuthAPI interface {
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	Health(ctx context.Context) error
}

type AuthService struct {
	api     AuthAPI
	session *SessionStore
}

func NewAuthService(api AuthAPI, session *SessionStore) *AuthService {
	return &AuthService{api: api, session: session}
}

func (a *AuthService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.api.Register(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	return res.User, a.session.Save(ctx, res.User.Email, res.Tokens)
}

func (a *AuthService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.api.Login(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	return res.User, a.session.Save(ctx, res.User.Email, res.Tokens)
}

// Logout revokes the refresh token on the server when it can and always
// forgets the local session. An unreachable server is not an error.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	if cerr := a.session.Clear(ctx); cerr != nil {
		return cerr
	}
	if err != nil && !errors.Is(err, client.ErrUnavailable) && !errors.Is(err, client.ErrNotLoggedIn) {
		return err
	}
	return nil
}

// CurrentEmail reports who is signed in, or "".
func (a *AuthService) CurrentEmail(ctx context.Context) (string, error) {
	return a.session.Email(ctx)
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.api.Health(ctx)
}
