// Package repomanager vends repositories bound to a database handle, so
// services can run the same repositories on *sql.DB or inside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/fuellogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/servicelogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/vehicles"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Vehicles(db dbx.DBTX) vehicles.Repository
	FuelLogs(db dbx.DBTX) fuellogs.Repository
	ServiceLogs(db dbx.DBTX) servicelogs.Repository
	Reminders(db dbx.DBTX) reminders.Repository
}
