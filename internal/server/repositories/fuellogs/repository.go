// Package fuellogs stores fuel fill-ups. Callers establish vehicle
// ownership before calling; queries are scoped by vehicle.
package fuellogs

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

type Repository interface {
	// ListByVehicle returns one page of logs, most recent date first.
	ListByVehicle(ctx context.Context, vehicleID string, limit, offset int) ([]*models.FuelLog, error)
	CountByVehicle(ctx context.Context, vehicleID string) (int, error)
	Get(ctx context.Context, vehicleID, id string) (*models.FuelLog, error)
	Create(ctx context.Context, l *models.FuelLog) (*models.FuelLog, error)
	Update(ctx context.Context, l *models.FuelLog) (*models.FuelLog, error)
	Delete(ctx context.Context, vehicleID, id string) error
}
