package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/autokeeper/internal/client/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *APIClient) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	res := &models.AuthResult{}
	if _, err := c.call(ctx, http.MethodPost, "/api/auth/register", credentials{email, password}, false, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	res := &models.AuthResult{}
	if _, err := c.call(ctx, http.MethodPost, "/api/auth/login", credentials{email, password}, false, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Logout revokes the stored refresh token on the server.
func (c *APIClient) Logout(ctx context.Context) error {
	pair, err := c.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	if pair == nil {
		return ErrNotLoggedIn
	}
	_, err = c.call(ctx, http.MethodPost, "/api/auth/logout", map[string]string{"refreshToken": pair.RefreshToken}, true, nil)
	return err
}

func (c *APIClient) Me(ctx context.Context) (*models.User, error) {
	var data struct {
		User *models.User `json:"user"`
	}
	if _, err := c.call(ctx, http.MethodGet, "/api/auth/me", nil, true, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Health reports whether the server and its database are up. /health is
// not wrapped in the usual envelope, so only the status code is checked.
func (c *APIClient) Health(ctx context.Context) error {
	status, _, err := c.send(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status, Message: "server degraded"}
	}
	return nil
}
