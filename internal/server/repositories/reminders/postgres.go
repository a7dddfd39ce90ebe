package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

const columns = `id, vehicle_id, title, type, due_date, due_mileage, is_completed, completed_at, notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Reminder, error) {
	r := &models.Reminder{}
	var typ string
	err := s.Scan(&r.ID, &r.VehicleID, &r.Title, &typ, &r.DueDate, &r.DueMileage,
		&r.IsCompleted, &r.CompletedAt, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	r.Type = models.ReminderType(typ)
	return r, err
}

// filterClause returns the extra WHERE condition and ORDER BY for filter.
func filterClause(filter models.ReminderFilter) (where string, order string) {
	switch filter {
	case models.ReminderFilterActive:
		return ` AND is_completed = FALSE`, `created_at DESC`
	case models.ReminderFilterCompleted:
		return ` AND is_completed = TRUE`, `completed_at DESC NULLS LAST, created_at DESC`
	default:
		return ``, `is_completed ASC, created_at DESC`
	}
}

func (r *PostgresRepository) ListByVehicle(ctx context.Context, vehicleID string, filter models.ReminderFilter, limit, offset int) ([]*models.Reminder, error) {
	where, order := filterClause(filter)
	query := `SELECT ` + columns + ` FROM reminders
		 WHERE vehicle_id = $1` + where + `
		 ORDER BY ` + order + `
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Reminder{}
	for rows.Next() {
		rem, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByVehicle(ctx context.Context, vehicleID string, filter models.ReminderFilter) (int, error) {
	where, _ := filterClause(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reminders WHERE vehicle_id = $1`+where, vehicleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Get(ctx context.Context, vehicleID, id string) (*models.Reminder, error) {
	query := `SELECT ` + columns + ` FROM reminders
		 WHERE id = $1 AND vehicle_id = $2`

	rem, err := scan(r.db.QueryRowContext(ctx, query, id, vehicleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rem, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {
	query :=
		`INSERT INTO reminders (vehicle_id, title, type, due_date, due_mileage, is_completed, completed_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, rem.VehicleID, rem.Title, string(rem.Type), rem.DueDate,
		rem.DueMileage, rem.IsCompleted, rem.CompletedAt, rem.Notes).
		Scan(&rem.ID, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rem, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {
	query :=
		`UPDATE reminders
		 SET title = $3, type = $4, due_date = $5, due_mileage = $6, is_completed = $7,
		     completed_at = $8, notes = $9, updated_at = now()
		 WHERE id = $1 AND vehicle_id = $2
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, rem.ID, rem.VehicleID, rem.Title, string(rem.Type), rem.DueDate,
		rem.DueMileage, rem.IsCompleted, rem.CompletedAt, rem.Notes).
		Scan(&rem.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rem, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, vehicleID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND vehicle_id = $2`, id, vehicleID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
