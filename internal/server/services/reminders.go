package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
)

type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ownership   *VehicleOwnership
	logger      logging.Logger
	now         func() time.Time
}

func NewReminderService(db *sql.DB, m repomanager.RepositoryManager, o *VehicleOwnership, l logging.Logger) *ReminderService {
	return &ReminderService{
		db:          db,
		repomanager: m,
		ownership:   o,
		logger:      l.With("module", "reminder_service"),
		now:         time.Now,
	}
}

func (s *ReminderService) List(ctx context.Context, userID, vehicleID string, page models.Page, filter models.ReminderFilter) (*models.PageOf[*models.Reminder], error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	res, err := paginate(ctx, page,
		func(ctx context.Context) ([]*models.Reminder, error) {
			return s.repomanager.Reminders(s.db).ListByVehicle(ctx, vehicleID, filter, page.Limit, page.Offset())
		},
		func(ctx context.Context) (int, error) {
			return s.repomanager.Reminders(s.db).CountByVehicle(ctx, vehicleID, filter)
		})
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	return res, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	return s.load(ctx, vehicleID, id)
}

// Create adds an open reminder. A date reminder needs dueDate, a mileage
// reminder needs dueMileage.
func (s *ReminderService) Create(ctx context.Context, userID, vehicleID string, r *models.Reminder) (*models.Reminder, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	if err := checkDueField(r); err != nil {
		return nil, err
	}

	r.VehicleID = vehicleID
	r.Reopen()

	created, err := s.repomanager.Reminders(s.db).Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("error creating reminder: %w", err)
	}
	return created, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, vehicleID, id string, patch models.ReminderPatch) (*models.Reminder, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	r, err := s.load(ctx, vehicleID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(r, s.now().UTC())
	// A type switch must bring its companion due field.
	if err := checkDueField(r); err != nil {
		return nil, err
	}

	return s.save(ctx, r)
}

func (s *ReminderService) Delete(ctx context.Context, userID, vehicleID, id string) error {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return err
	}

	if err := s.repomanager.Reminders(s.db).Delete(ctx, vehicleID, id); err != nil {
		return notFoundAs(err, errReminderNotFound, "error deleting reminder")
	}
	return nil
}

// MarkCompleted completes an open reminder; completing twice is a conflict.
func (s *ReminderService) MarkCompleted(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	r, err := s.load(ctx, vehicleID, id)
	if err != nil {
		return nil, err
	}
	if r.IsCompleted {
		return nil, errAlreadyCompleted
	}

	r.Complete(s.now().UTC())
	return s.save(ctx, r)
}

// MarkIncomplete reopens a completed reminder.
func (s *ReminderService) MarkIncomplete(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	r, err := s.load(ctx, vehicleID, id)
	if err != nil {
		return nil, err
	}
	if !r.IsCompleted {
		return nil, errNotCompleted
	}

	r.Reopen()
	return s.save(ctx, r)
}

func (s *ReminderService) load(ctx context.Context, vehicleID, id string) (*models.Reminder, error) {
	r, err := s.repomanager.Reminders(s.db).Get(ctx, vehicleID, id)
	if err != nil {
		return nil, notFoundAs(err, errReminderNotFound, "error loading reminder")
	}
	return r, nil
}

func (s *ReminderService) save(ctx context.Context, r *models.Reminder) (*models.Reminder, error) {
	updated, err := s.repomanager.Reminders(s.db).Update(ctx, r)
	if err != nil {
		return nil, notFoundAs(err, errReminderNotFound, "error updating reminder")
	}
	return updated, nil
}

func checkDueField(r *models.Reminder) error {
	if r.Type != models.ReminderByDate && r.Type != models.ReminderByMileage {
		return common.Errorf(common.ErrValidation, "Validation error: type must be one of date, mileage")
	}
	if f := r.MissingDueField(); f != "" {
		return common.Errorf(common.ErrValidation, "Validation error: %s is required for %s reminders", f, r.Type)
	}
	return nil
}
