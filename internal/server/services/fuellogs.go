package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
)

type FuelLogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ownership   *VehicleOwnership
	logger      logging.Logger
	now         func() time.Time
}

func NewFuelLogService(db *sql.DB, m repomanager.RepositoryManager, o *VehicleOwnership, l logging.Logger) *FuelLogService {
	return &FuelLogService{
		db:          db,
		repomanager: m,
		ownership:   o,
		logger:      l.With("module", "fuel_log_service"),
		now:         time.Now,
	}
}

// List returns one page of the vehicle's fuel logs, most recent first.
func (s *FuelLogService) List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.FuelLog], error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	res, err := paginate(ctx, page,
		func(ctx context.Context) ([]*models.FuelLog, error) {
			return s.repomanager.FuelLogs(s.db).ListByVehicle(ctx, vehicleID, page.Limit, page.Offset())
		},
		func(ctx context.Context) (int, error) {
			return s.repomanager.FuelLogs(s.db).CountByVehicle(ctx, vehicleID)
		})
	if err != nil {
		return nil, fmt.Errorf("error listing fuel logs: %w", err)
	}
	return res, nil
}

func (s *FuelLogService) Get(ctx context.Context, userID, vehicleID, id string) (*models.FuelLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	l, err := s.repomanager.FuelLogs(s.db).Get(ctx, vehicleID, id)
	if err != nil {
		return nil, notFoundAs(err, errFuelLogNotFound, "error loading fuel log")
	}
	return l, nil
}

// Create records a fill-up. A zero date means now.
func (s *FuelLogService) Create(ctx context.Context, userID, vehicleID string, l *models.FuelLog) (*models.FuelLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	l.VehicleID = vehicleID
	if l.Date.IsZero() {
		l.Date = s.now().UTC()
	}

	created, err := s.repomanager.FuelLogs(s.db).Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("error creating fuel log: %w", err)
	}
	return created, nil
}

func (s *FuelLogService) Update(ctx context.Context, userID, vehicleID, id string, patch models.FuelLogPatch) (*models.FuelLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	repo := s.repomanager.FuelLogs(s.db)
	l, err := repo.Get(ctx, vehicleID, id)
	if err != nil {
		return nil, notFoundAs(err, errFuelLogNotFound, "error loading fuel log")
	}

	patch.Apply(l)

	updated, err := repo.Update(ctx, l)
	if err != nil {
		return nil, notFoundAs(err, errFuelLogNotFound, "error updating fuel log")
	}
	return updated, nil
}

func (s *FuelLogService) Delete(ctx context.Context, userID, vehicleID, id string) error {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return err
	}

	if err := s.repomanager.FuelLogs(s.db).Delete(ctx, vehicleID, id); err != nil {
		return notFoundAs(err, errFuelLogNotFound, "error deleting fuel log")
	}
	return nil
}
