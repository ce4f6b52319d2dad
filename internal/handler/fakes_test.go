package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
	"github.com/iliyamo/agri-supply-ledger/internal/queue"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type memSupplies struct {
	mu    sync.Mutex
	rows  map[string]model.Supply
	names map[string]string
}

func newMemSupplies() *memSupplies {
	return &memSupplies{rows: map[string]model.Supply{}, names: map[string]string{}}
}

func (m *memSupplies) List(context.Context) ([]model.Supply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Supply
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSupplies) GetByID(_ context.Context, id string) (*model.Supply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memSupplies) Create(_ context.Context, s *model.Supply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := m.names[s.Name]; ok {
		return repository.ErrDuplicate
	}
	s.ApplyStatus()
	s.CreatedAt = fixedNow
	m.rows[s.ID] = *s
	m.names[s.Name] = s.ID
	return nil
}

func (m *memSupplies) Update(_ context.Context, s *model.Supply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.names, old.Name)
	s.ApplyStatus()
	ts := fixedNow.Add(time.Hour)
	s.UpdatedAt = &ts
	m.rows[s.ID] = *s
	m.names[s.Name] = s.ID
	return nil
}

func (m *memSupplies) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.names, s.Name)
	delete(m.rows, id)
	return nil
}

func (m *memSupplies) DeleteAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.rows))
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	m.rows = map[string]model.Supply{}
	m.names = map[string]string{}
	return n, nil
}

type memProductions struct {
	supplies *memSupplies
	rows     map[string]model.Production
}

func (m *memProductions) List(context.Context) ([]model.Production, error) {
	var out []model.Production
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductions) GetByID(_ context.Context, id string) (*model.Production, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProductions) Create(ctx context.Context, p *model.Production) error {
	if _, err := m.supplies.GetByID(ctx, p.SupplyID); err != nil {
		return repository.ErrReferenceNotFound
	}
	if _, ok := m.rows[p.ID]; ok {
		return repository.ErrDuplicate
	}
	p.ProducedAt = fixedNow
	m.rows[p.ID] = *p
	return nil
}

func (m *memProductions) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memProductions) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.rows))
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	m.rows = map[string]model.Production{}
	return n, nil
}

type memSales struct {
	rows map[string]model.Sale
}

func (m *memSales) List(context.Context) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range m.rows {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSales) GetByID(_ context.Context, id string) (*model.Sale, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memSales) Create(_ context.Context, s *model.Sale) error {
	if _, ok := m.rows[s.ID]; ok {
		return repository.ErrDuplicate
	}
	s.SoldAt = fixedNow
	m.rows[s.ID] = *s
	return nil
}

func (m *memSales) Update(_ context.Context, s *model.Sale) error {
	old, ok := m.rows[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.SoldAt = old.SoldAt
	shipped := fixedNow.Add(24 * time.Hour)
	s.ShippedAt = &shipped
	m.rows[s.ID] = *s
	return nil
}

func (m *memSales) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memSales) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.rows))
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	m.rows = map[string]model.Sale{}
	return n, nil
}

type memBuyers struct {
	rows map[string]model.Buyer
}

func (m *memBuyers) List(context.Context) ([]model.Buyer, error) {
	var out []model.Buyer
	for _, b := range m.rows {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBuyers) GetByID(_ context.Context, id string) (*model.Buyer, error) {
	b, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (m *memBuyers) Create(_ context.Context, b *model.Buyer) error {
	if _, ok := m.rows[b.ID]; ok {
		return repository.ErrDuplicate
	}
	b.CreatedAt = fixedNow
	m.rows[b.ID] = *b
	return nil
}

func (m *memBuyers) Update(_ context.Context, b *model.Buyer) error {
	old, ok := m.rows[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	b.CreatedAt = old.CreatedAt
	m.rows[b.ID] = *b
	return nil
}

func (m *memBuyers) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memBuyers) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.rows))
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	m.rows = map[string]model.Buyer{}
	return n, nil
}

type memUsers struct {
	rows map[string]model.User
}

func (m *memUsers) List(context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.rows {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.rows[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := m.rows[u.Username]; ok {
		return repository.ErrDuplicate
	}
	u.CreatedAt = fixedNow
	m.rows[u.Username] = *u
	return nil
}

type recordingPublisher struct {
	events []queue.SupplyStatusChangedEvent
	err    error
}

func (r *recordingPublisher) PublishSupplyStatusChanged(_ context.Context, ev queue.SupplyStatusChangedEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

// failingSales answers every call with err.
type failingSales struct{ err error }

func (f failingSales) List(context.Context) ([]model.Sale, error) { return nil, f.err }

func (f failingSales) GetByID(context.Context, string) (*model.Sale, error) { return nil, f.err }

func (f failingSales) Create(context.Context, *model.Sale) error { return f.err }

func (f failingSales) Update(context.Context, *model.Sale) error { return f.err }

func (f failingSales) Delete(context.Context, string) error { return f.err }

func (f failingSales) DeleteAll(context.Context) (int64, error) { return 0, f.err }
