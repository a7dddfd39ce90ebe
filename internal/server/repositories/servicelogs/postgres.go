package servicelogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

const columns = `id, vehicle_id, date, mileage, service_type, description, mechanic, total_cost, notes, receipt_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.ServiceLog, error) {
	l := &models.ServiceLog{}
	err := s.Scan(&l.ID, &l.VehicleID, &l.Date, &l.Mileage, &l.ServiceType, &l.Description,
		&l.Mechanic, &l.TotalCost, &l.Notes, &l.ReceiptKey, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *PostgresRepository) ListByVehicle(ctx context.Context, vehicleID string, limit, offset int) ([]*models.ServiceLog, error) {
	query := `SELECT ` + columns + ` FROM service_logs
		 WHERE vehicle_id = $1
		 ORDER BY date DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.ServiceLog{}
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByVehicle(ctx context.Context, vehicleID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_logs WHERE vehicle_id = $1`, vehicleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Get(ctx context.Context, vehicleID, id string) (*models.ServiceLog, error) {
	query := `SELECT ` + columns + ` FROM service_logs
		 WHERE id = $1 AND vehicle_id = $2`

	l, err := scan(r.db.QueryRowContext(ctx, query, id, vehicleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error) {
	query :=
		`INSERT INTO service_logs (vehicle_id, date, mileage, service_type, description, mechanic, total_cost, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, l.VehicleID, l.Date, l.Mileage, l.ServiceType,
		l.Description, l.Mechanic, l.TotalCost, l.Notes).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error) {
	query :=
		`UPDATE service_logs
		 SET date = $3, mileage = $4, service_type = $5, description = $6, mechanic = $7,
		     total_cost = $8, notes = $9, updated_at = now()
		 WHERE id = $1 AND vehicle_id = $2
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, l.ID, l.VehicleID, l.Date, l.Mileage, l.ServiceType,
		l.Description, l.Mechanic, l.TotalCost, l.Notes).
		Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, vehicleID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_logs WHERE id = $1 AND vehicle_id = $2`, id, vehicleID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return requireOne(res)
}

func (r *PostgresRepository) SetReceiptKey(ctx context.Context, vehicleID, id, key string) error {
	query :=
		`UPDATE service_logs
		 SET receipt_key = $3, updated_at = now()
		 WHERE id = $1 AND vehicle_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, vehicleID, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOne(res)
}

func requireOne(res sql.Result) error {
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
