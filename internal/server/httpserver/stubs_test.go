package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/auth"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

const (
	testToken  = "good-token"
	testUserID = "11111111-1111-1111-1111-111111111111"
)

var errStub = errors.New("not stubbed")

type stubAuth struct {
	register func(ctx context.Context, email, password string) (*models.AuthResult, error)
	login    func(ctx context.Context, email, password string) (*models.AuthResult, error)
	refresh  func(ctx context.Context, token string) (*models.TokenPair, error)
	logout   func(ctx context.Context, userID, token string) error
}

func (s *stubAuth) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if s.register == nil {
		return nil, errStub
	}
	return s.register(ctx, email, password)
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if s.login == nil {
		return nil, errStub
	}
	return s.login(ctx, email, password)
}

func (s *stubAuth) Refresh(ctx context.Context, token string) (*models.TokenPair, error) {
	if s.refresh == nil {
		return nil, errStub
	}
	return s.refresh(ctx, token)
}

func (s *stubAuth) Logout(ctx context.Context, userID, token string) error {
	if s.logout == nil {
		return errStub
	}
	return s.logout(ctx, userID, token)
}

func (s *stubAuth) Me(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID, Email: "me@example.com"}, nil
}

func (s *stubAuth) VerifyAccess(token string) (*auth.Claims, error) {
	if token != testToken {
		return nil, common.ErrInvalidToken
	}
	return &auth.Claims{UserID: testUserID, Email: "me@example.com"}, nil
}

type stubVehicles struct {
	list   func(ctx context.Context, userID string) ([]*models.Vehicle, error)
	create func(ctx context.Context, userID string, v *models.Vehicle) (*models.Vehicle, error)
	get    func(ctx context.Context, userID, id string) (*models.Vehicle, error)
}

func (s *stubVehicles) List(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	if s.list == nil {
		return nil, errStub
	}
	return s.list(ctx, userID)
}

func (s *stubVehicles) Get(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	if s.get == nil {
		return nil, errStub
	}
	return s.get(ctx, userID, id)
}

func (s *stubVehicles) Create(ctx context.Context, userID string, v *models.Vehicle) (*models.Vehicle, error) {
	if s.create == nil {
		return nil, errStub
	}
	return s.create(ctx, userID, v)
}

func (s *stubVehicles) Update(ctx context.Context, userID, id string, patch models.VehiclePatch) (*models.Vehicle, error) {
	return nil, errStub
}

func (s *stubVehicles) Delete(ctx context.Context, userID, id string) error {
	return errStub
}

type stubFuelLogs struct {
	list   func(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.FuelLog], error)
	create func(ctx context.Context, userID, vehicleID string, l *models.FuelLog) (*models.FuelLog, error)
	update func(ctx context.Context, userID, vehicleID, id string, patch models.FuelLogPatch) (*models.FuelLog, error)
}

func (s *stubFuelLogs) List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.FuelLog], error) {
	if s.list == nil {
		return nil, errStub
	}
	return s.list(ctx, userID, vehicleID, page)
}

func (s *stubFuelLogs) Get(ctx context.Context, userID, vehicleID, id string) (*models.FuelLog, error) {
	return nil, errStub
}

func (s *stubFuelLogs) Create(ctx context.Context, userID, vehicleID string, l *models.FuelLog) (*models.FuelLog, error) {
	if s.create == nil {
		return nil, errStub
	}
	return s.create(ctx, userID, vehicleID, l)
}

func (s *stubFuelLogs) Update(ctx context.Context, userID, vehicleID, id string, patch models.FuelLogPatch) (*models.FuelLog, error) {
	if s.update == nil {
		return nil, errStub
	}
	return s.update(ctx, userID, vehicleID, id, patch)
}

func (s *stubFuelLogs) Delete(ctx context.Context, userID, vehicleID, id string) error {
	return errStub
}

type stubServiceLogs struct {
	upload func(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error)
}

func (s *stubServiceLogs) List(ctx context.Context, userID, vehicleID string, page models.Page) (*models.PageOf[*models.ServiceLog], error) {
	return nil, errStub
}

func (s *stubServiceLogs) Get(ctx context.Context, userID, vehicleID, id string) (*models.ServiceLog, error) {
	return nil, errStub
}

func (s *stubServiceLogs) Create(ctx context.Context, userID, vehicleID string, l *models.ServiceLog) (*models.ServiceLog, error) {
	return nil, errStub
}

func (s *stubServiceLogs) Update(ctx context.Context, userID, vehicleID, id string, patch models.ServiceLogPatch) (*models.ServiceLog, error) {
	return nil, errStub
}

func (s *stubServiceLogs) Delete(ctx context.Context, userID, vehicleID, id string) error {
	return errStub
}

func (s *stubServiceLogs) ReceiptUploadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error) {
	if s.upload == nil {
		return nil, errStub
	}
	return s.upload(ctx, userID, vehicleID, id)
}

func (s *stubServiceLogs) ReceiptDownloadURL(ctx context.Context, userID, vehicleID, id string) (*models.ReceiptURL, error) {
	return nil, common.NewError(common.ErrNotFound, "Receipt not found")
}

type stubReminders struct {
	list     func(ctx context.Context, userID, vehicleID string, page models.Page, filter models.ReminderFilter) (*models.PageOf[*models.Reminder], error)
	create   func(ctx context.Context, userID, vehicleID string, r *models.Reminder) (*models.Reminder, error)
	complete func(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error)
}

func (s *stubReminders) List(ctx context.Context, userID, vehicleID string, page models.Page, filter models.ReminderFilter) (*models.PageOf[*models.Reminder], error) {
	if s.list == nil {
		return nil, errStub
	}
	return s.list(ctx, userID, vehicleID, page, filter)
}

func (s *stubReminders) Get(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	return nil, errStub
}

func (s *stubReminders) Create(ctx context.Context, userID, vehicleID string, r *models.Reminder) (*models.Reminder, error) {
	if s.create == nil {
		return nil, errStub
	}
	return s.create(ctx, userID, vehicleID, r)
}

func (s *stubReminders) Update(ctx context.Context, userID, vehicleID, id string, patch models.ReminderPatch) (*models.Reminder, error) {
	return nil, errStub
}

func (s *stubReminders) Delete(ctx context.Context, userID, vehicleID, id string) error {
	return errStub
}

func (s *stubReminders) MarkCompleted(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	if s.complete == nil {
		return nil, errStub
	}
	return s.complete(ctx, userID, vehicleID, id)
}

func (s *stubReminders) MarkIncomplete(ctx context.Context, userID, vehicleID, id string) (*models.Reminder, error) {
	return nil, errStub
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func newStubServices() (Services, *stubAuth, *stubVehicles, *stubFuelLogs, *stubServiceLogs, *stubReminders) {
	a, v, f, s, r := &stubAuth{}, &stubVehicles{}, &stubFuelLogs{}, &stubServiceLogs{}, &stubReminders{}
	return Services{Auth: a, Vehicles: v, FuelLogs: f, ServiceLogs: s, Reminders: r, DB: stubPinger{}}, a, v, f, s, r
}

func newTestHandler(svc Services) http.Handler {
	return NewHandler(svc, Options{CORSOrigins: []string{"http://localhost:3000"}}, logging.NewNop())
}

// do sends a request through h; a non-empty token is sent as a bearer.
func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
