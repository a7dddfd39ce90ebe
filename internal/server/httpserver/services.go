package httpserver

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/auth"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

// The interfaces below are what the handlers need from the service layer;
// *services.XService values satisfy them.

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	Me(ctx context.Context, userID string) (*models.User, error)
	VerifyAccess(token string) (*auth.Claims, error)
}

type VehicleService interface {
	List(ctx context.Context, userID string) ([]*models.Vehicle, error)
	Get(ctx context.Context, userID, id string) (*models.Vehicle, error)
	Create(ctx context.Context, userID string, v *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, userID, id string, patch models.VehiclePatch) (*models.Vehicle, error)
	Delete(ctx context.Context, userID, id string) error
}

type FuelLogService interface {
	List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.FuelLog], error)
	Get(ctx context.Context, userID, vehicleID, id string) (*models.FuelLog, error)
	Create(ctx context.Context, userID, vehicleID string, l *models.FuelLog) (*models.FuelLog, error)
	Update(ctx context.Context, userID, vehicleID, id string, patch models.FuelLogPatch) (*models.FuelLog, error)
	Delete(ctx context.Context, userID, vehicleID, id string) error
}

type ServiceLogService interface {
	List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.ServiceLog], error)
	Get(ctx context.Context, userID, vehicleID, id string) (*models.ServiceLog, error)
	Create(ctx context.Context, userID, vehicleID string, l *models.ServiceLog) (*models.ServiceLog, error)
	Update(ctx context.Context, userID, vehicleID, id string, patch models.ServiceLogPatch) (*models.ServiceLog, error)
	Delete(ctx context.Context, userID, vehicleID, id string) error
	ReceiptUploadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error)
	ReceiptDownloadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error)
}

type ReminderService interface {
	List(ctx context.Context, userID, vehicleID string, page models.Page, filter models.ReminderFilter) (*models.PageOf[*models.Reminder], error)
	Get(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error)
	Create(ctx context.Context, userID, vehicleID string, r *models.Reminder) (*models.Reminder, error)
	Update(ctx context.Context, userID, vehicleID, id string, patch models.ReminderPatch) (*models.Reminder, error)
	Delete(ctx context.Context, userID, vehicleID, id string) error
	MarkCompleted(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error)
	MarkIncomplete(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error)
}

// Pinger reports database reachability; *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the dependencies of the HTTP API.
type Services struct {
	Auth        AuthService
	Vehicles    VehicleService
	FuelLogs    FuelLogService
	ServiceLogs ServiceLogService
	Reminders   ReminderService
	DB          Pinger
}
