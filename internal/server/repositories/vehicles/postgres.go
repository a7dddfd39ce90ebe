package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

const columns = `id, user_id, name, make, vehicle_model, year, mileage, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := s.Scan(&v.ID, &v.UserID, &v.Name, &v.Make, &v.VehicleModel, &v.Year, &v.Mileage, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	query := `SELECT ` + columns + ` FROM vehicles
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Vehicle{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	query := `SELECT ` + columns + ` FROM vehicles
		 WHERE id = $1 AND user_id = $2`

	v, err := scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = $1 AND user_id = $2)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&ok); err != nil {
		if dbx.IsInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	query :=
		`INSERT INTO vehicles (user_id, name, make, vehicle_model, year, mileage)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, v.UserID, v.Name, v.Make, v.VehicleModel, v.Year, v.Mileage).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Update(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	query :=
		`UPDATE vehicles
		 SET name = $3, make = $4, vehicle_model = $5, year = $6, mileage = $7, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, v.ID, v.UserID, v.Name, v.Make, v.VehicleModel, v.Year, v.Mileage).
		Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM vehicles WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
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
