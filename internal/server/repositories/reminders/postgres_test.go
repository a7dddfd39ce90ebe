package reminders

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "vehicle_id", "title", "type", "due_date", "due_mileage", "is_completed",
	"completed_at", "notes", "created_at", "updated_at"}

func TestListByVehicle_FilterClauses(t *testing.T) {
	tests := []struct {
		filter models.ReminderFilter
		query  string
	}{
		{models.ReminderFilterAll, `(?s)WHERE vehicle_id = \$1\s+ORDER BY is_completed ASC, created_at DESC`},
		{models.ReminderFilterActive, `(?s)WHERE vehicle_id = \$1 AND is_completed = FALSE\s+ORDER BY created_at DESC`},
		{models.ReminderFilterCompleted, `(?s)WHERE vehicle_id = \$1 AND is_completed = TRUE\s+ORDER BY completed_at DESC NULLS LAST`},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			now := time.Now()

			mock.ExpectQuery(tt.query).
				WithArgs("v1", 20, 0).
				WillReturnRows(sqlmock.NewRows(cols).
					AddRow("r1", "v1", "Oil", "mileage", nil, 60000, false, nil, nil, now, now))

			got, err := repo.ListByVehicle(context.Background(), "v1", tt.filter, 20, 0)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, models.ReminderByMileage, got[0].Type)
			assert.Equal(t, 60000, *got[0].DueMileage)
			assert.Nil(t, got[0].DueDate)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCountByVehicle_Completed(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders WHERE vehicle_id = \$1 AND is_completed = TRUE`).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByVehicle(context.Background(), "v1", models.ReminderFilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM reminders`).WithArgs("r1", "v1").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "v1", "r1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateAndUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	due := now.Add(24 * time.Hour)

	mock.ExpectQuery(`(?s)INSERT INTO reminders`).
		WithArgs("v1", "Inspection", "date", due, nil, false, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("r1", now, now))
	mock.ExpectQuery(`(?s)UPDATE reminders\s+SET .*completed_at = \$8`).
		WithArgs("r1", "v1", "Inspection", "date", due, nil, true, now, nil).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	rem := &models.Reminder{VehicleID: "v1", Title: "Inspection", Type: models.ReminderByDate, DueDate: &due}
	rem, err := repo.Create(context.Background(), rem)
	require.NoError(t, err)
	assert.Equal(t, "r1", rem.ID)

	rem.Complete(now)
	_, err = repo.Update(context.Background(), rem)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM reminders`).WithArgs("r1", "v1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "v1", "r1"), common.ErrNotFound)
}
