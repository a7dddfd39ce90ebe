package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
	"github.com/dmitrijs2005/autokeeper/internal/client/config"
	"github.com/dmitrijs2005/autokeeper/internal/client/models"
	"github.com/dmitrijs2005/autokeeper/internal/client/services"
	"github.com/dmitrijs2005/autokeeper/internal/filex"
)

type authService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentEmail(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

// garageAPI is the subset of client.APIClient the commands call.
type garageAPI interface {
	Me(ctx context.Context) (*models.User, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, in client.VehicleInput) (*models.Vehicle, error)
	ListFuelLogs(ctx context.Context, vehicleID string, page, limit int) ([]models.FuelLog, *models.Pagination, error)
	CreateFuelLog(ctx context.Context, vehicleID string, in client.FuelLogInput) (*models.FuelLog, error)
	ListServiceLogs(ctx context.Context, vehicleID string, page, limit int) ([]models.ServiceLog, *models.Pagination, error)
	CreateServiceLog(ctx context.Context, vehicleID string, in client.ServiceLogInput) (*models.ServiceLog, error)
	ReceiptUploadURL(ctx context.Context, vehicleID, serviceLogID string) (*models.ReceiptURL, error)
	ReceiptDownloadURL(ctx context.Context, vehicleID, serviceLogID string) (*models.ReceiptURL, error)
	UploadReceipt(ctx context.Context, presignedURL string, body io.Reader, size int64, contentType string) error
	ListReminders(ctx context.Context, vehicleID string, filter models.ReminderFilter, page, limit int) ([]models.Reminder, *models.Pagination, error)
	CreateReminder(ctx context.Context, vehicleID string, in client.ReminderInput) (*models.Reminder, error)
	CompleteReminder(ctx context.Context, vehicleID, id string) (*models.Reminder, error)
}

type App struct {
	config *config.Config
	db     *sql.DB
	auth   authService
	api    garageAPI
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := filex.EnsureParentDir(c.SessionDB); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	store := services.NewSessionStore(db)
	api := client.NewAPIClient(c.ServerURL, c.RequestTimeout, store)

	return &App{
		config: c,
		db:     db,
		auth:   services.NewAuthService(api, store),
		api:    api,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) status() string {
	if a.email == "" {
		return "(guest)"
	}
	return "(" + a.email + ")"
}

// Run restores any saved session, reports server reachability and runs the
// REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	email, err := a.auth.CurrentEmail(ctx)
	if err != nil {
		return err
	}
	a.email = email

	fmt.Fprintln(a.out, "Welcome to AutoKeeper CLI (type 'help' for commands)")

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := a.auth.Ping(pingCtx); err != nil {
		fmt.Fprintf(a.out, "Warning: server at %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	cancel()

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}
