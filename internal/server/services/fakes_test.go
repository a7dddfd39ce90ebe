package services

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/dbx"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/fuellogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/servicelogs"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/vehicles"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// memStore is an in-memory RepositoryManager. Every repository it vends
// shares the same state, whatever DBTX it is bound to; returned records
// are copies.
type memStore struct {
	mu sync.Mutex

	users    map[string]*models.User
	tokens   map[string][]string
	vehicles map[string]*models.Vehicle
	fuel     map[string]*models.FuelLog
	service  map[string]*models.ServiceLog
	remind   map[string]*models.Reminder

	seq int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		tokens:   map[string][]string{},
		vehicles: map[string]*models.Vehicle{},
		fuel:     map[string]*models.FuelLog{},
		service:  map[string]*models.ServiceLog{},
		remind:   map[string]*models.Reminder{},
	}
}

// tick returns a strictly increasing timestamp so ordering by creation
// time is deterministic.
func (m *memStore) tick() time.Time {
	m.seq++
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *memStore) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *memStore) Users(dbx.DBTX) users.Repository                 { return memUsers{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m} }
func (m *memStore) Vehicles(dbx.DBTX) vehicles.Repository           { return memVehicles{m} }
func (m *memStore) FuelLogs(dbx.DBTX) fuellogs.Repository           { return memFuel{m} }
func (m *memStore) ServiceLogs(dbx.DBTX) servicelogs.Repository     { return memService{m} }
func (m *memStore) Reminders(dbx.DBTX) reminders.Repository         { return memReminders{m} }

// newTestDB opens an empty in-memory SQLite database; services only need
// it to begin and commit transactions.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	return items[offset:min(offset+limit, len(items))]
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, common.ErrConflict
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = r.m.tick()
	r.m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r memUsers) LockByID(ctx context.Context, id string) (*models.User, error) {
	return r.GetByID(ctx, id)
}

type memTokens struct{ m *memStore }

func (r memTokens) Append(ctx context.Context, userID, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[userID] = append(r.m.tokens[userID], token)
	return nil
}

func (r memTokens) ListByUser(ctx context.Context, userID string) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]string{}, r.m.tokens[userID]...), nil
}

func (r memTokens) Delete(ctx context.Context, userID, token string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	list := r.m.tokens[userID]
	i := slices.Index(list, token)
	if i < 0 {
		return false, nil
	}
	r.m.tokens[userID] = slices.Delete(list, i, i+1)
	return true, nil
}

func (r memTokens) TrimToLatest(ctx context.Context, userID string, keep int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if list := r.m.tokens[userID]; len(list) > keep {
		r.m.tokens[userID] = append([]string{}, list[len(list)-keep:]...)
	}
	return nil
}

// racedTokensStore vends token repositories whose Delete behaves as if a
// concurrent transaction redeemed the token between the list and the delete.
type racedTokensStore struct{ *memStore }

func (s racedTokensStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return racedTokens{memTokens{s.memStore}}
}

type racedTokens struct{ memTokens }

func (r racedTokens) Delete(ctx context.Context, userID, token string) (bool, error) {
	if _, err := r.memTokens.Delete(ctx, userID, token); err != nil {
		return false, err
	}
	return false, nil
}

type memVehicles struct{ m *memStore }

func (r memVehicles) ListByUser(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.Vehicle{}
	for _, v := range r.m.vehicles {
		if v.UserID == userID {
			c := *v
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Vehicle) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r memVehicles) Get(ctx context.Context, userID, id string) (*models.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.vehicles[id]
	if !ok || v.UserID != userID {
		return nil, common.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (r memVehicles) Exists(ctx context.Context, userID, id string) (bool, error) {
	_, err := r.Get(ctx, userID, id)
	return err == nil, nil
}

func (r memVehicles) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *v
	c.ID = uuid.NewString()
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	r.m.vehicles[c.ID] = &c
	out := c
	return &out, nil
}

func (r memVehicles) Update(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	old, ok := r.m.vehicles[v.ID]
	if !ok || old.UserID != v.UserID {
		return nil, common.ErrNotFound
	}
	c := *v
	c.UpdatedAt = r.m.tick()
	r.m.vehicles[c.ID] = &c
	out := c
	return &out, nil
}

func (r memVehicles) Delete(ctx context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.vehicles[id]
	if !ok || v.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.m.vehicles, id)
	return nil
}

type memFuel struct{ m *memStore }

func (r memFuel) byVehicle(vehicleID string) []*models.FuelLog {
	out := []*models.FuelLog{}
	for _, l := range r.m.fuel {
		if l.VehicleID == vehicleID {
			c := *l
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.FuelLog) int { return b.Date.Compare(a.Date) })
	return out
}

func (r memFuel) ListByVehicle(ctx context.Context, vehicleID string, limit, offset int) ([]*models.FuelLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return slicePage(r.byVehicle(vehicleID), limit, offset), nil
}

func (r memFuel) CountByVehicle(ctx context.Context, vehicleID string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.byVehicle(vehicleID)), nil
}

func (r memFuel) Get(ctx context.Context, vehicleID, id string) (*models.FuelLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.fuel[id]
	if !ok || l.VehicleID != vehicleID {
		return nil, common.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r memFuel) Create(ctx context.Context, l *models.FuelLog) (*models.FuelLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *l
	c.ID = uuid.NewString()
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	r.m.fuel[c.ID] = &c
	out := c
	return &out, nil
}

func (r memFuel) Update(ctx context.Context, l *models.FuelLog) (*models.FuelLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if old, ok := r.m.fuel[l.ID]; !ok || old.VehicleID != l.VehicleID {
		return nil, common.ErrNotFound
	}
	c := *l
	c.UpdatedAt = r.m.tick()
	r.m.fuel[c.ID] = &c
	out := c
	return &out, nil
}

func (r memFuel) Delete(ctx context.Context, vehicleID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if l, ok := r.m.fuel[id]; !ok || l.VehicleID != vehicleID {
		return common.ErrNotFound
	}
	delete(r.m.fuel, id)
	return nil
}

type memService struct{ m *memStore }

func (r memService) byVehicle(vehicleID string) []*models.ServiceLog {
	out := []*models.ServiceLog{}
	for _, l := range r.m.service {
		if l.VehicleID == vehicleID {
			c := *l
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.ServiceLog) int { return b.Date.Compare(a.Date) })
	return out
}

func (r memService) ListByVehicle(ctx context.Context, vehicleID string, limit, offset int) ([]*models.ServiceLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return slicePage(r.byVehicle(vehicleID), limit, offset), nil
}

func (r memService) CountByVehicle(ctx context.Context, vehicleID string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.byVehicle(vehicleID)), nil
}

func (r memService) Get(ctx context.Context, vehicleID, id string) (*models.ServiceLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.service[id]
	if !ok || l.VehicleID != vehicleID {
		return nil, common.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r memService) Create(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *l
	c.ID = uuid.NewString()
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	r.m.service[c.ID] = &c
	out := c
	return &out, nil
}

func (r memService) Update(ctx context.Context, l *models.ServiceLog) (*models.ServiceLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	old, ok := r.m.service[l.ID]
	if !ok || old.VehicleID != l.VehicleID {
		return nil, common.ErrNotFound
	}
	c := *l
	c.ReceiptKey = old.ReceiptKey
	c.UpdatedAt = r.m.tick()
	r.m.service[c.ID] = &c
	out := c
	return &out, nil
}

func (r memService) Delete(ctx context.Context, vehicleID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if l, ok := r.m.service[id]; !ok || l.VehicleID != vehicleID {
		return common.ErrNotFound
	}
	delete(r.m.service, id)
	return nil
}

func (r memService) SetReceiptKey(ctx context.Context, vehicleID, id, key string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.service[id]
	if !ok || l.VehicleID != vehicleID {
		return common.ErrNotFound
	}
	l.ReceiptKey = &key
	return nil
}

type memReminders struct{ m *memStore }

func (r memReminders) filtered(vehicleID string, f models.ReminderFilter) []*models.Reminder {
	out := []*models.Reminder{}
	for _, rem := range r.m.remind {
		if rem.VehicleID != vehicleID {
			continue
		}
		if f == models.ReminderFilterActive && rem.IsCompleted || f == models.ReminderFilterCompleted && !rem.IsCompleted {
			continue
		}
		c := *rem
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *models.Reminder) int {
		if f == models.ReminderFilterCompleted {
			return cmp.Or(b.CompletedAt.Compare(*a.CompletedAt), b.CreatedAt.Compare(a.CreatedAt))
		}
		if a.IsCompleted != b.IsCompleted {
			if a.IsCompleted {
				return 1
			}
			return -1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (r memReminders) ListByVehicle(ctx context.Context, vehicleID string, f models.ReminderFilter, limit, offset int) ([]*models.Reminder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return slicePage(r.filtered(vehicleID, f), limit, offset), nil
}

func (r memReminders) CountByVehicle(ctx context.Context, vehicleID string, f models.ReminderFilter) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.filtered(vehicleID, f)), nil
}

func (r memReminders) Get(ctx context.Context, vehicleID, id string) (*models.Reminder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rem, ok := r.m.remind[id]
	if !ok || rem.VehicleID != vehicleID {
		return nil, common.ErrNotFound
	}
	c := *rem
	return &c, nil
}

func (r memReminders) Create(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *rem
	c.ID = uuid.NewString()
	c.CreatedAt = r.m.tick()
	c.UpdatedAt = c.CreatedAt
	r.m.remind[c.ID] = &c
	out := c
	return &out, nil
}

func (r memReminders) Update(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if old, ok := r.m.remind[rem.ID]; !ok || old.VehicleID != rem.VehicleID {
		return nil, common.ErrNotFound
	}
	c := *rem
	c.UpdatedAt = r.m.tick()
	r.m.remind[c.ID] = &c
	out := c
	return &out, nil
}

func (r memReminders) Delete(ctx context.Context, vehicleID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if rem, ok := r.m.remind[id]; !ok || rem.VehicleID != vehicleID {
		return common.ErrNotFound
	}
	delete(r.m.remind, id)
	return nil
}
