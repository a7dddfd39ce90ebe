// Package services holds the server's business logic. Services are
// stateless: they are built once at startup around the database handle and
// a repomanager.RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/auth"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the account and refresh-token lifecycle.
//
// Every change to a user's refresh-token list happens in one transaction
// that first locks the user row, so concurrent logins and refreshes for
// the same user are serialized and a refresh token can be redeemed once.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	bcryptCost  int
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, bcryptCost int, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		logger:      l.With("module", "auth_service"),
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	email = models.NormalizeEmail(email)

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, errEmailTaken
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var result *models.AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
		if err != nil {
			if errors.Is(err, common.ErrConflict) {
				return errEmailTaken
			}
			return err
		}

		pair, err := s.issueInto(ctx, tx, user)
		if err != nil {
			return err
		}
		result = &models.AuthResult{User: user, Tokens: pair}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", result.User.ID)
	return result, nil
}

// Login checks credentials and issues a new token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	email = models.NormalizeEmail(email)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login failed", "reason", "unknown email")
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn(ctx, "login failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, errInvalidCredentials
	}

	var pair models.TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		locked, err := s.repomanager.Users(tx).LockByID(ctx, user.ID)
		if err != nil {
			return err
		}
		pair, err = s.issueInto(ctx, tx, locked)
		if err != nil {
			return err
		}
		user = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{User: user, Tokens: pair}, nil
}

// Refresh redeems a refresh token for a new pair. The presented token is
// removed, so a second redemption fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, errInvalidRefresh
	}

	var pair models.TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).LockByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return errInvalidRefresh
			}
			return err
		}

		rt := s.repomanager.RefreshTokens(tx)
		active, err := rt.ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if !slices.Contains(active, refreshToken) {
			s.logger.Warn(ctx, "refresh token not recognised", "user_id", user.ID)
			return errInvalidRefresh
		}
		removed, err := rt.Delete(ctx, user.ID, refreshToken)
		if err != nil {
			return err
		}
		if !removed {
			s.logger.Warn(ctx, "refresh token already redeemed", "user_id", user.ID)
			return errInvalidRefresh
		}

		pair, err = s.issueInto(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &pair, nil
}

// Logout revokes refreshToken for userID. It never fails because of an
// unknown user or token.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).LockByID(ctx, userID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}

		removed, err := s.repomanager.RefreshTokens(tx).Delete(ctx, userID, refreshToken)
		if err != nil {
			return err
		}
		s.logger.Debug(ctx, "logout", "user_id", userID, "revoked", removed)
		return nil
	})
}

// Me returns the public record of the signed-in user.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

// VerifyAccess validates an access token for the HTTP middleware.
func (s *AuthService) VerifyAccess(token string) (*auth.Claims, error) {
	return s.tokens.VerifyAccess(token)
}

// issueInto signs a new pair, appends its refresh token to the user's list
// and trims the list to the newest MaxRefreshTokens entries. tx must hold
// the user's row lock.
func (s *AuthService) issueInto(ctx context.Context, tx dbx.DBTX, user *models.User) (models.TokenPair, error) {
	pair, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.TokenPair{}, err
	}

	rt := s.repomanager.RefreshTokens(tx)
	if err := rt.Append(ctx, user.ID, pair.RefreshToken); err != nil {
		return models.TokenPair{}, err
	}
	if err := rt.TrimToLatest(ctx, user.ID, models.MaxRefreshTokens); err != nil {
		return models.TokenPair{}, err
	}
	if user.RefreshTokens, err = rt.ListByUser(ctx, user.ID); err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}
