package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// VehicleOwnership answers whether a user owns a vehicle. Every
// vehicle-scoped operation calls Require before touching child records.
type VehicleOwnership struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewVehicleOwnership(db *sql.DB, m repomanager.RepositoryManager) *VehicleOwnership {
	return &VehicleOwnership{db: db, repomanager: m}
}

// Owns reports whether userID owns vehicleID. Malformed ids own nothing.
func (o *VehicleOwnership) Owns(ctx context.Context, userID, vehicleID string) (bool, error) {
	if uuid.Validate(vehicleID) != nil {
		return false, nil
	}
	ok, err := o.repomanager.Vehicles(o.db).Exists(ctx, userID, vehicleID)
	if err != nil {
		return false, fmt.Errorf("error checking vehicle ownership: %w", err)
	}
	return ok, nil
}

// Require fails with NotFound when userID does not own vehicleID, so
// foreign vehicles are indistinguishable from missing ones.
func (o *VehicleOwnership) Require(ctx context.Context, userID, vehicleID string) error {
	ok, err := o.Owns(ctx, userID, vehicleID)
	if err != nil {
		return err
	}
	if !ok {
		return errVehicleNotFound
	}
	return nil
}
