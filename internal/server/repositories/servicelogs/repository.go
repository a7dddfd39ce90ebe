// Package servicelogs stores maintenance records, including the object
// key of an uploaded receipt.
package servicelogs

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

type Repository interface {
	ListByVehicle(ctx context.Context, vehicleID string, limit, offset int) ([]*models.ServiceLog, error)
	CountByVehicle(ctx context.Context, vehicleID string) (int, error)
	Get(ctx context.Context, vehicleID, id string) (*models.ServiceLog, error)
	Create(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error)
	Update(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error)
	Delete(ctx context.Context, vehicleID, id string) error
	SetReceiptKey(ctx context.Context, vehicleID, id, key string) error
}
