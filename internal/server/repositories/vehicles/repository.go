// Package vehicles stores vehicles. Every query is scoped by owner.
package vehicles

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

type Repository interface {
	// ListByUser returns the owner's vehicles, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Vehicle, error)
	Get(ctx context.Context, userID, id string) (*models.Vehicle, error)
	Exists(ctx context.Context, userID, id string) (bool, error)
	Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	// Delete removes the vehicle; dependent logs and reminders cascade.
	Delete(ctx context.Context, userID, id string) error
}
