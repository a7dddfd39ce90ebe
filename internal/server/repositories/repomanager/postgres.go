package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/migrations"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/fuellogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/servicelogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/vehicles"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and runs
// the embedded schema migrations.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Vehicles(db dbx.DBTX) vehicles.Repository {
	return vehicles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) FuelLogs(db dbx.DBTX) fuellogs.Repository {
	return fuellogs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ServiceLogs(db dbx.DBTX) servicelogs.Repository {
	return servicelogs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reminders(db dbx.DBTX) reminders.Repository {
	return reminders.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations with goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
