package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
	"github.com/dmitrijs2005/autokeeper/internal/client/config"
	"github.com/dmitrijs2005/autokeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	email     string
	err       error
	pingErr   error
	gotEmail  string
	gotPass   string
	logoutErr error
}

func (f *fakeAuth) Register(_ context.Context, email string, pw []byte) (*models.User, error) {
	return f.login(email, pw)
}

func (f *fakeAuth) Login(_ context.Context, email string, pw []byte) (*models.User, error) {
	return f.login(email, pw)
}

func (f *fakeAuth) login(email string, pw []byte) (*models.User, error) {
	f.gotEmail, f.gotPass = email, string(pw)
	if f.err != nil {
		return nil, f.err
	}
	f.email = email
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.email = ""
	return f.logoutErr
}

func (f *fakeAuth) CurrentEmail(context.Context) (string, error) { return f.email, nil }
func (f *fakeAuth) Ping(context.Context) error                   { return f.pingErr }

type fakeAPI struct {
	vehicles   []models.Vehicle
	vehicleIn  client.VehicleInput
	fuelIn     client.FuelLogInput
	serviceIn  client.ServiceLogInput
	reminderIn client.ReminderInput
	vehicleID  string
	filter     models.ReminderFilter
	uploaded   string
	uploadURL  string
	err        error
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	return &models.User{ID: "u1", Email: "driver@example.com", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, f.err
}

func (f *fakeAPI) ListVehicles(context.Context) ([]models.Vehicle, error) { return f.vehicles, f.err }

func (f *fakeAPI) CreateVehicle(_ context.Context, in client.VehicleInput) (*models.Vehicle, error) {
	f.vehicleIn = in
	return &models.Vehicle{ID: "v1"}, f.err
}

func (f *fakeAPI) ListFuelLogs(_ context.Context, vehicleID string, _, _ int) ([]models.FuelLog, *models.Pagination, error) {
	f.vehicleID = vehicleID
	logs := []models.FuelLog{{ID: "f1", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Mileage: 1000, FuelAmount: 40, TotalCost: 60}}
	return logs, &models.Pagination{Page: 1, Limit: 1, Total: 2, TotalPages: 2}, f.err
}

func (f *fakeAPI) CreateFuelLog(_ context.Context, vehicleID string, in client.FuelLogInput) (*models.FuelLog, error) {
	f.vehicleID, f.fuelIn = vehicleID, in
	return &models.FuelLog{ID: "f1"}, f.err
}

func (f *fakeAPI) ListServiceLogs(_ context.Context, vehicleID string, _, _ int) ([]models.ServiceLog, *models.Pagination, error) {
	f.vehicleID = vehicleID
	return nil, &models.Pagination{Page: 1, Limit: 20}, f.err
}

func (f *fakeAPI) CreateServiceLog(_ context.Context, vehicleID string, in client.ServiceLogInput) (*models.ServiceLog, error) {
	f.vehicleID, f.serviceIn = vehicleID, in
	return &models.ServiceLog{ID: "s1"}, f.err
}

func (f *fakeAPI) ReceiptUploadURL(context.Context, string, string) (*models.ReceiptURL, error) {
	return &models.ReceiptURL{URL: "http://minio/put", Key: "receipts/s1/2025/01/02/abc"}, f.err
}

func (f *fakeAPI) ReceiptDownloadURL(context.Context, string, string) (*models.ReceiptURL, error) {
	return &models.ReceiptURL{URL: "http://minio/get", ExpiresAt: time.Now().Add(15 * time.Minute)}, f.err
}

func (f *fakeAPI) UploadReceipt(_ context.Context, url string, body io.Reader, _ int64, _ string) error {
	b, _ := io.ReadAll(body)
	f.uploadURL, f.uploaded = url, string(b)
	return f.err
}

func (f *fakeAPI) ListReminders(_ context.Context, vehicleID string, filter models.ReminderFilter, _, _ int) ([]models.Reminder, *models.Pagination, error) {
	f.vehicleID, f.filter = vehicleID, filter
	due := 15000
	return []models.Reminder{{ID: "r1", Title: "Oil change", Type: models.ReminderByMileage, DueMileage: &due}}, nil, f.err
}

func (f *fakeAPI) CreateReminder(_ context.Context, vehicleID string, in client.ReminderInput) (*models.Reminder, error) {
	f.vehicleID, f.reminderIn = vehicleID, in
	return &models.Reminder{ID: "r1"}, f.err
}

func (f *fakeAPI) CompleteReminder(_ context.Context, vehicleID, id string) (*models.Reminder, error) {
	f.vehicleID = vehicleID
	return &models.Reminder{ID: id, Title: "Oil change"}, f.err
}

func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeAPI, *bytes.Buffer) {
	t.Helper()

	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret1"), nil }

	auth, api, out := &fakeAuth{}, &fakeAPI{}, &bytes.Buffer{}
	a := &App{
		config: &config.Config{ServerURL: "http://127.0.0.1:3000"},
		auth:   auth,
		api:    api,
		reader: rdr(input),
		out:    out,
	}
	return a, auth, api, out
}

func TestLogin_SetsStatus(t *testing.T) {
	a, auth, _, out := newTestApp(t, "driver@example.com\n")
	ctx := context.Background()

	assert.Equal(t, "(guest)", a.status())
	require.NoError(t, a.Login(ctx, nil))

	assert.Equal(t, "driver@example.com", auth.gotEmail)
	assert.Equal(t, "secret1", auth.gotPass)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(driver@example.com)", a.status())
	assert.Contains(t, out.String(), "Logged in as driver@example.com")

	require.NoError(t, a.Logout(ctx, nil))
	assert.False(t, a.isLoggedIn())
}

func TestRegister_UsesArgumentAndReportsFailure(t *testing.T) {
	a, auth, _, _ := newTestApp(t, "")
	auth.err = &client.APIError{StatusCode: 409, Message: "Email already registered"}

	err := a.Register(context.Background(), []string{"driver@example.com"})
	assert.EqualError(t, err, "Email already registered")
	assert.Equal(t, "driver@example.com", auth.gotEmail)
	assert.False(t, a.isLoggedIn())
}

func TestVehicles(t *testing.T) {
	a, _, api, out := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Vehicles(ctx, nil))
	assert.Contains(t, out.String(), "No vehicles yet")

	miles := 120000
	api.vehicles = []models.Vehicle{{ID: "v1", Name: "Daily", Make: "Toyota", VehicleModel: "Corolla", Year: 2015, Mileage: &miles}}
	out.Reset()
	require.NoError(t, a.Vehicles(ctx, nil))
	assert.Contains(t, out.String(), "Corolla")
	assert.Contains(t, out.String(), "120000")
}

func TestAddVehicle(t *testing.T) {
	a, _, api, out := newTestApp(t, "Daily\nToyota\nCorolla\n2015\n\n")

	require.NoError(t, a.AddVehicle(context.Background(), nil))
	assert.Equal(t, client.VehicleInput{Name: "Daily", Make: "Toyota", VehicleModel: "Corolla", Year: 2015}, api.vehicleIn)
	assert.Contains(t, out.String(), "Vehicle added: v1")
}

func TestAddVehicle_BadYear(t *testing.T) {
	a, _, _, _ := newTestApp(t, "Daily\nToyota\nCorolla\nsoon\n")
	assert.EqualError(t, a.AddVehicle(context.Background(), nil), "Year must be a whole number")
}

func TestFuel(t *testing.T) {
	a, _, api, out := newTestApp(t, "")
	require.NoError(t, a.Fuel(context.Background(), []string{"v1"}))

	assert.Equal(t, "v1", api.vehicleID)
	assert.Contains(t, out.String(), "2025-01-02")
	assert.Contains(t, out.String(), "page 1 of 2")
}

func TestAddFuel_PromptsForVehicle(t *testing.T) {
	a, _, api, _ := newTestApp(t, "v9\n\n1200\n40.5\n61.2\nfull tank\n")

	require.NoError(t, a.AddFuel(context.Background(), nil))
	assert.Equal(t, "v9", api.vehicleID)
	assert.Nil(t, api.fuelIn.Date)
	assert.Equal(t, 1200, api.fuelIn.Mileage)
	assert.InDelta(t, 40.5, api.fuelIn.FuelAmount, 1e-9)
	require.NotNil(t, api.fuelIn.Notes)
	assert.Equal(t, "full tank", *api.fuelIn.Notes)
}

func TestServices_Empty(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	require.NoError(t, a.Services(context.Background(), []string{"v1"}))
	assert.Contains(t, out.String(), "No service logs")
}

func TestAddService(t *testing.T) {
	a, _, api, _ := newTestApp(t, "2025-02-01\n50000\nOil change\n\nJoe's\n89.99\n\n")

	require.NoError(t, a.AddService(context.Background(), []string{"v1"}))
	require.NotNil(t, api.serviceIn.Date)
	assert.Equal(t, "2025-02-01", *api.serviceIn.Date)
	assert.Equal(t, "Oil change", api.serviceIn.ServiceType)
	assert.Nil(t, api.serviceIn.Description)
	require.NotNil(t, api.serviceIn.TotalCost)
	assert.InDelta(t, 89.99, *api.serviceIn.TotalCost, 1e-9)
}

func TestReceipt_UploadAndDownload(t *testing.T) {
	a, _, api, out := newTestApp(t, "")
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))

	require.NoError(t, a.Receipt(ctx, []string{"v1", "s1", path}))
	assert.Equal(t, "http://minio/put", api.uploadURL)
	assert.Equal(t, "%PDF", api.uploaded)
	assert.Contains(t, out.String(), "Receipt uploaded: receipts/s1/2025/01/02/abc")

	out.Reset()
	require.NoError(t, a.Receipt(ctx, []string{"v1", "s1"}))
	assert.Contains(t, out.String(), "http://minio/get")
}

func TestReceipt_MissingFile(t *testing.T) {
	a, _, api, _ := newTestApp(t, "")
	err := a.Receipt(context.Background(), []string{"v1", "s1", filepath.Join(t.TempDir(), "nope.pdf")})
	assert.Error(t, err)
	assert.Empty(t, api.uploadURL)
}

func TestReminders(t *testing.T) {
	a, _, api, out := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Reminders(ctx, []string{"v1"}))
	assert.Equal(t, models.ReminderFilterActive, api.filter)
	assert.Contains(t, out.String(), "15000 km")

	require.NoError(t, a.Reminders(ctx, []string{"v1", "completed"}))
	assert.Equal(t, models.ReminderFilterCompleted, api.filter)
}

func TestAddReminder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, in client.ReminderInput)
	}{
		{
			name:  "by date",
			input: "Inspection\ndate\n2026-05-01\n\n",
			check: func(t *testing.T, in client.ReminderInput) {
				require.NotNil(t, in.DueDate)
				assert.Equal(t, "2026-05-01", *in.DueDate)
				assert.Nil(t, in.DueMileage)
			},
		},
		{
			name:  "by mileage",
			input: "Oil\nmileage\n15000\nsynthetic\n",
			check: func(t *testing.T, in client.ReminderInput) {
				require.NotNil(t, in.DueMileage)
				assert.Equal(t, 15000, *in.DueMileage)
				require.NotNil(t, in.Notes)
				assert.Equal(t, "synthetic", *in.Notes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, api, _ := newTestApp(t, tt.input)
			require.NoError(t, a.AddReminder(context.Background(), []string{"v1"}))
			tt.check(t, api.reminderIn)
		})
	}
}

func TestComplete(t *testing.T) {
	a, _, api, out := newTestApp(t, "")
	require.NoError(t, a.Complete(context.Background(), []string{"v1", "r1"}))
	assert.Equal(t, "v1", api.vehicleID)
	assert.Contains(t, out.String(), `Reminder "Oil change" marked as completed`)

	api.err = &client.APIError{StatusCode: 409, Message: "Reminder is already completed"}
	assert.EqualError(t, a.Complete(context.Background(), []string{"v1", "r1"}), "Reminder is already completed")
}

func TestMe(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	require.NoError(t, a.Me(context.Background(), nil))
	assert.Contains(t, out.String(), "member since 2024-03-01")
}

func TestRun_WarnsWhenServerDown(t *testing.T) {
	a, auth, _, out := newTestApp(t, "exit\n")
	auth.pingErr = errors.New("connection refused")
	auth.email = "driver@example.com"

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	a.db = db

	require.NoError(t, a.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, "not reachable")
	assert.True(t, strings.Contains(s, "ak (driver@example.com)> "))
	assert.Contains(t, s, "Bye!")
}
