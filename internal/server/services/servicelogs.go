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

type ServiceLogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ownership   *VehicleOwnership
	receipts    ReceiptSigner
	logger      logging.Logger
	now         func() time.Time
}

func NewServiceLogService(db *sql.DB, m repomanager.RepositoryManager, o *VehicleOwnership, receipts ReceiptSigner, l logging.Logger) *ServiceLogService {
	return &ServiceLogService{
		db:          db,
		repomanager: m,
		ownership:   o,
		receipts:    receipts,
		logger:      l.With("module", "service_log_service"),
		now:         time.Now,
	}
}

func (s *ServiceLogService) List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.ServiceLog], error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	res, err := paginate(ctx, page,
		func(ctx context.Context) ([]*models.ServiceLog, error) {
			return s.repomanager.ServiceLogs(s.db).ListByVehicle(ctx, vehicleID, page.Limit, page.Offset())
		},
		func(ctx context.Context) (int, error) {
			return s.repomanager.ServiceLogs(s.db).CountByVehicle(ctx, vehicleID)
		})
	if err != nil {
		return nil, fmt.Errorf("error listing service logs: %w", err)
	}
	return res, nil
}

func (s *ServiceLogService) Get(ctx context.Context, userID, vehicleID, id string) (*models.ServiceLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	l, err := s.repomanager.ServiceLogs(s.db).Get(ctx, vehicleID, id)
	if err != nil {
		return nil, notFoundAs(err, errServiceLogNotFound, "error loading service log")
	}
	return l, nil
}

func (s *ServiceLogService) Create(ctx context.Context, userID, vehicleID string, l *models.ServiceLog) (*models.ServiceLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	l.VehicleID = vehicleID
	l.ReceiptKey = nil
	if l.Date.IsZero() {
		l.Date = s.now().UTC()
	}

	created, err := s.repomanager.ServiceLogs(s.db).Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("error creating service log: %w", err)
	}
	return created, nil
}

func (s *ServiceLogService) Update(ctx context.Context, userID, vehicleID, id string, patch models.ServiceLogPatch) (*models.ServiceLog, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	repo := s.repomanager.ServiceLogs(s.db)
	l, err := repo.Get(ctx, vehicleID, id)
	if err != nil {
		return nil, notFoundAs(err, errServiceLogNotFound, "error loading service log")
	}

	patch.Apply(l)

	updated, err := repo.Update(ctx, l)
	if err != nil {
		return nil, notFoundAs(err, errServiceLogNotFound, "error updating service log")
	}
	return updated, nil
}

func (s *ServiceLogService) Delete(ctx context.Context, userID, vehicleID, id string) error {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return err
	}

	if err := s.repomanager.ServiceLogs(s.db).Delete(ctx, vehicleID, id); err != nil {
		return notFoundAs(err, errServiceLogNotFound, "error deleting service log")
	}
	return nil
}

// ReceiptUploadURL assigns a fresh receipt key to the log and returns a
// presigned PUT URL for it. A previous receipt object is orphaned, not
// deleted.
func (s *ServiceLogService) ReceiptUploadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error) {
	if err := s.ownership.Require(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	repo := s.repomanager.ServiceLogs(s.db)
	if _, err := repo.Get(ctx, vehicleID, id); err != nil {
		return nil, notFoundAs(err, errServiceLogNotFound, "error loading service log")
	}

	key := NewReceiptKey(id, s.now())
	u, err := s.receipts.PresignPut(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := repo.SetReceiptKey(ctx, vehicleID, id, key); err != nil {
		return nil, notFoundAs(err, errServiceLogNotFound, "error saving receipt key")
	}

	s.logger.Info(ctx, "receipt upload url issued", "service_log_id", id, "key", key)
	return u, nil
}

// ReceiptDownloadURL returns a presigned GET URL for the log's receipt.
func (s *ServiceLogService) ReceiptDownloadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error) {
	l, err := s.Get(ctx, userID, vehicleID, id)
	if err != nil {
		return nil, err
	}
	if l.ReceiptKey == nil || *l.ReceiptKey == "" {
		return nil, errReceiptNotFound
	}
	return s.receipts.PresignGet(ctx, *l.ReceiptKey)
}
