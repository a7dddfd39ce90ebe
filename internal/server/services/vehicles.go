package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
)

type VehicleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewVehicleService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *VehicleService {
	return &VehicleService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "vehicle_service"),
		now:         time.Now,
	}
}

// List returns the user's vehicles, newest first.
func (s *VehicleService) List(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	vs, err := s.repomanager.Vehicles(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return vs, nil
}

func (s *VehicleService) Get(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	v, err := s.repomanager.Vehicles(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, errVehicleNotFound, "error loading vehicle")
	}
	return v, nil
}

func (s *VehicleService) Create(ctx context.Context, userID string, v *models.Vehicle) (*models.Vehicle, error) {
	if err := s.checkYear(v.Year); err != nil {
		return nil, err
	}

	v.UserID = userID
	created, err := s.repomanager.Vehicles(s.db).Create(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("error creating vehicle: %w", err)
	}

	s.logger.Info(ctx, "vehicle created", "user_id", userID, "vehicle_id", created.ID)
	return created, nil
}

func (s *VehicleService) Update(ctx context.Context, userID, id string, patch models.VehiclePatch) (*models.Vehicle, error) {
	repo := s.repomanager.Vehicles(s.db)

	v, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, errVehicleNotFound, "error loading vehicle")
	}

	patch.Apply(v)
	if patch.Year != nil {
		if err := s.checkYear(v.Year); err != nil {
			return nil, err
		}
	}

	updated, err := repo.Update(ctx, v)
	if err != nil {
		return nil, notFoundAs(err, errVehicleNotFound, "error updating vehicle")
	}
	return updated, nil
}

// Delete removes the vehicle together with its logs and reminders.
func (s *VehicleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Vehicles(s.db).Delete(ctx, userID, id); err != nil {
		return notFoundAs(err, errVehicleNotFound, "error deleting vehicle")
	}
	s.logger.Info(ctx, "vehicle deleted", "user_id", userID, "vehicle_id", id)
	return nil
}

func (s *VehicleService) checkYear(year int) error {
	maxYear := models.MaxVehicleYear(s.now())
	if year < models.MinVehicleYear || year > maxYear {
		return common.Errorf(common.ErrValidation, "Validation error: year must be between %d and %d", models.MinVehicleYear, maxYear)
	}
	return nil
}

// notFoundAs maps a repository not-found to the domain error nf and wraps
// anything else with op.
func notFoundAs(err error, nf *common.Error, op string) error {
	if errors.Is(err, common.ErrNotFound) {
		return nf
	}
	return fmt.Errorf("%s: %w", op, err)
}
