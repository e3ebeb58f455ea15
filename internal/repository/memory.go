package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fleet_desk/internal/models"
)

// The Memory* stores back STORE_BACKEND=memory, a throwaway mode for demos
// and tests. They mirror the gorm repositories' error contract.

type MemoryTechnicians struct {
	mu    sync.RWMutex
	items map[string]models.Technician
}

func NewMemoryTechnicians(seed ...models.Technician) *MemoryTechnicians {
	m := &MemoryTechnicians{items: make(map[string]models.Technician)}
	for _, t := range seed {
		t := t
		m.Create(context.Background(), &t)
	}
	return m
}

func (m *MemoryTechnicians) List(ctx context.Context) ([]models.Technician, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Technician, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemoryTechnicians) Get(ctx context.Context, id string) (*models.Technician, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("get technician %s: %w", id, ErrNotFound)
	}
	return &t, nil
}

func (m *MemoryTechnicians) Create(ctx context.Context, t *models.Technician) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = models.NewID()
	}
	if _, ok := m.items[t.ID]; ok {
		return fmt.Errorf("create technician: %w", ErrConflict)
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	m.items[t.ID] = *t
	return nil
}

func (m *MemoryTechnicians) Update(ctx context.Context, t *models.Technician) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.items[t.ID]
	if !ok {
		return fmt.Errorf("update technician %s: %w", t.ID, ErrNotFound)
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	m.items[t.ID] = *t
	return nil
}

func (m *MemoryTechnicians) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("delete technician %s: %w", id, ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

type MemoryVehicles struct {
	mu    sync.RWMutex
	items []models.Vehicle
}

func NewMemoryVehicles(seed ...models.Vehicle) *MemoryVehicles {
	m := &MemoryVehicles{}
	for _, v := range seed {
		v := v
		m.Create(context.Background(), &v)
	}
	return m
}

func (m *MemoryVehicles) ListByPurpose(ctx context.Context, purpose models.Purpose) ([]models.Vehicle, error) {
	if purpose != models.PurposeSell && purpose != models.PurposeRent {
		return nil, fmt.Errorf("unknown vehicle purpose %q", purpose)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Vehicle{}
	for _, v := range m.items {
		if (purpose == models.PurposeSell && v.IsForSell) || (purpose == models.PurposeRent && v.IsForRent) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MemoryVehicles) Create(ctx context.Context, v *models.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if strings.EqualFold(existing.Number, v.Number) {
			return fmt.Errorf("create vehicle %s: %w", v.Number, ErrConflict)
		}
	}
	if v.ID == "" {
		v.ID = models.NewID()
	}
	m.items = append(m.items, *v)
	return nil
}

type MemoryBookings struct {
	mu    sync.RWMutex
	items map[string]models.PackageBooking
}

func NewMemoryBookings(seed ...models.PackageBooking) *MemoryBookings {
	m := &MemoryBookings{items: make(map[string]models.PackageBooking)}
	for _, b := range seed {
		b := b
		m.Create(context.Background(), &b)
	}
	return m
}

func (m *MemoryBookings) Get(ctx context.Context, id string) (*models.PackageBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("get package booking %s: %w", id, ErrNotFound)
	}
	return &b, nil
}

func (m *MemoryBookings) List(ctx context.Context) ([]models.PackageBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.PackageBooking, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureDate.After(out[j].DepartureDate) })
	return out, nil
}

func (m *MemoryBookings) Create(ctx context.Context, b *models.PackageBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = models.NewID()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	m.items[b.ID] = *b
	return nil
}

type MemoryUsers struct {
	mu      sync.RWMutex
	nextID  uint
	users   map[string]models.User
	drivers []models.Driver
}

func NewMemoryUsers(seed ...models.User) *MemoryUsers {
	m := &MemoryUsers{users: make(map[string]models.User)}
	for _, u := range seed {
		u := u
		m.Create(context.Background(), &u)
	}
	return m
}

func (m *MemoryUsers) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userName]
	if !ok {
		return nil, fmt.Errorf("find user %q: %w", userName, ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(u)
}

func (m *MemoryUsers) createLocked(u *models.User) error {
	if _, ok := m.users[u.UserName]; ok {
		return fmt.Errorf("create user %q: %w", u.UserName, ErrConflict)
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	m.users[u.UserName] = *u
	return nil
}

func (m *MemoryUsers) CreateDriver(ctx context.Context, u *models.User, d *models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createLocked(u); err != nil {
		return err
	}
	d.ID = uint(len(m.drivers) + 1)
	d.UserID = u.ID
	d.CreatedAt = time.Now().UTC()
	m.drivers = append(m.drivers, *d)
	u.Driver = d
	return nil
}

func (m *MemoryUsers) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Driver{}, m.drivers...), nil
}
