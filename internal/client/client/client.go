// Package client talks to the AutoKeeper HTTP API and keeps the CLI's local
// session database.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/client/models"
)

// TokenStore persists the current token pair between runs.
type TokenStore interface {
	// Tokens returns nil when no session is stored.
	Tokens(ctx context.Context) (*models.TokenPair, error)
	SaveTokens(ctx context.Context, t models.TokenPair) error
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Message    string             `json:"message"`
}

// APIClient is safe for concurrent use; token refreshes are serialized.
type APIClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	mu      sync.Mutex
}

func NewAPIClient(baseURL string, timeout time.Duration, tokens TokenStore) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// call performs one API request. Authenticated calls that come back 401 are
// retried once after exchanging the stored refresh token.
func (c *APIClient) call(ctx context.Context, method, path string, body any, authed bool, out any) (*models.Pagination, error) {
	var access string
	if authed {
		pair, err := c.tokens.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		if pair == nil {
			return nil, ErrNotLoggedIn
		}
		access = pair.AccessToken
	}

	status, env, err := c.send(ctx, method, path, body, access)
	if err != nil {
		return nil, err
	}

	if authed && status == http.StatusUnauthorized {
		pair, rerr := c.refresh(ctx, access)
		if rerr != nil {
			return nil, rerr
		}
		if status, env, err = c.send(ctx, method, path, body, pair.AccessToken); err != nil {
			return nil, err
		}
	}

	if status >= http.StatusBadRequest || !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return env.Pagination, nil
}

func (c *APIClient) send(ctx context.Context, method, path string, body any, access string) (int, *envelope, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil && !errors.Is(err, io.EOF) {
		return resp.StatusCode, nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, env, nil
}

// refresh exchanges the stored refresh token unless another call already
// did so while this one waited for the lock.
func (c *APIClient) refresh(ctx context.Context, staleAccess string) (*models.TokenPair, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pair, err := c.tokens.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, ErrNotLoggedIn
	}
	if pair.AccessToken != staleAccess {
		return pair, nil
	}

	var data struct {
		Tokens models.TokenPair `json:"tokens"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": pair.RefreshToken}, false, &data); err != nil {
		return nil, err
	}
	if err := c.tokens.SaveTokens(ctx, data.Tokens); err != nil {
		return nil, err
	}
	return &data.Tokens, nil
}
