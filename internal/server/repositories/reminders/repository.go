// Package reminders stores maintenance reminders scoped by vehicle.
package reminders

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

type Repository interface {
	// ListByVehicle returns one filtered page. Open reminders come before
	// completed ones, newest first; the completed filter orders by
	// completion time instead.
	ListByVehicle(ctx context.Context, vehicleID string, filter models.ReminderFilter, limit, offset int) ([]*models.Reminder, error)
	CountByVehicle(ctx context.Context, vehicleID string, filter models.ReminderFilter) (int, error)
	Get(ctx context.Context, vehicleID, id string) (*models.Reminder, error)
	Create(ctx context.Context, r *models.Reminder) (*models.Reminder, error)
	Update(ctx context.Context, r *models.Reminder) (*models.Reminder, error)
	Delete(ctx context.Context, vehicleID, id string) error
}
