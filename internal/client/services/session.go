// Package services holds the CLI's application services: the persisted
// session and the authentication flow built on top of it.
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/autokeeper/internal/client/models"
	"github.com/dmitrijs2005/autokeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
)

const (
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SessionStore keeps the signed-in email and token pair in the metadata
// table. It implements client.TokenStore.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save replaces the whole session in one transaction.
func (s *SessionStore) Save(ctx context.Context, email string, t models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyEmail, []byte(email)); err != nil {
			return err
		}
		return setTokens(ctx, repo, t)
	})
}

func (s *SessionStore) SaveTokens(ctx context.Context, t models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return setTokens(ctx, metadata.NewSQLiteRepository(tx), t)
	})
}

func setTokens(ctx context.Context, repo metadata.Repository, t models.TokenPair) error {
	if err := repo.Set(ctx, keyAccessToken, []byte(t.AccessToken)); err != nil {
		return err
	}
	return repo.Set(ctx, keyRefreshToken, []byte(t.RefreshToken))
}

// Tokens returns nil when either token is missing.
func (s *SessionStore) Tokens(ctx context.Context) (*models.TokenPair, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	if len(access) == 0 || len(refresh) == 0 {
		return nil, nil
	}
	return &models.TokenPair{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

// Email is "" when nobody is signed in.
func (s *SessionStore) Email(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyEmail)
	return string(v), err
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}
