// Package users declares the credential store: user accounts keyed by id
// and by normalized email.
package users

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

// Repository persists user accounts. Lookups return common.ErrNotFound for
// absent users; Create returns common.ErrConflict when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// LockByID loads the user and holds a row lock until the enclosing
	// transaction ends. It must run on a transactional DBTX.
	LockByID(ctx context.Context, id string) (*models.User, error)
}
