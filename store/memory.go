package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pkg/conv"
)

// MemoryStore 是内存实现的 InventoryStore，用于测试/开发/原型。
// 进程重启后数据丢失。返回值均为副本，调用方修改不会影响存储。
type MemoryStore struct {
	mu           sync.RWMutex
	companies    map[int64]core.Company
	branches     map[int64]core.Branch
	cars         map[int64]core.Car
	users        map[int64]core.User
	interactions map[int64]core.Interaction
	seq          map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		companies:    make(map[int64]core.Company),
		branches:     make(map[int64]core.Branch),
		cars:         make(map[int64]core.Car),
		users:        make(map[int64]core.User),
		interactions: make(map[int64]core.Interaction),
		seq:          make(map[string]int64),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// nextID 分配或登记 ID，必须持有写锁。显式写入的 ID 会推高序列，避免后续冲突。
func (m *MemoryStore) nextID(kind string, id int64) int64 {
	if id == 0 {
		m.seq[kind]++
		return m.seq[kind]
	}
	if id > m.seq[kind] {
		m.seq[kind] = id
	}
	return id
}

func (m *MemoryStore) GetCompany(_ context.Context, id int64) (*core.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return &c, nil
}

func (m *MemoryStore) GetBranch(_ context.Context, id int64) (*core.Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.branches[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return &b, nil
}

func (m *MemoryStore) GetCar(_ context.Context, id int64) (*core.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cars[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return &c, nil
}

func (m *MemoryStore) GetUser(_ context.Context, id int64) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return &u, nil
}

func (m *MemoryStore) SaveCompany(_ context.Context, c *core.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID(kindCompany, c.ID)
	m.companies[c.ID] = *c
	return nil
}

func (m *MemoryStore) SaveBranch(_ context.Context, b *core.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID(kindBranch, b.ID)
	m.branches[b.ID] = *b
	return nil
}

func (m *MemoryStore) SaveCar(_ context.Context, c *core.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID(kindCar, c.ID)
	m.cars[c.ID] = *c
	return nil
}

func (m *MemoryStore) SaveUser(_ context.Context, u *core.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID(kindUser, u.ID)
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) DeleteCompany(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[id]; !ok {
		return core.ErrStoreNotFound
	}
	delete(m.companies, id)
	return nil
}

func (m *MemoryStore) DeleteBranch(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.branches[id]; !ok {
		return core.ErrStoreNotFound
	}
	delete(m.branches, id)
	return nil
}

func (m *MemoryStore) ListCompanies(_ context.Context) ([]core.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListBranches(_ context.Context, companyID int64) ([]core.Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Branch, 0)
	for _, b := range m.branches {
		if companyID == 0 || b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) DeleteCar(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cars[id]; !ok {
		return core.ErrStoreNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *MemoryStore) ListCars(_ context.Context, companyID, branchID int64) ([]core.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Car, 0)
	for _, c := range m.cars {
		if c.CompanyID == companyID && c.BranchID == branchID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CountCars(_ context.Context, companyID, branchID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.cars {
		if c.CompanyID == companyID && c.BranchID == branchID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) SaveInteraction(_ context.Context, in *core.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.ID = m.nextID(kindInteraction, in.ID)
	m.interactions[in.ID] = *in
	return nil
}

func (m *MemoryStore) GetInteraction(_ context.Context, id int64) (*core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.interactions[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return &in, nil
}

func (m *MemoryStore) DeleteInteraction(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.interactions[id]; !ok {
		return core.ErrStoreNotFound
	}
	delete(m.interactions, id)
	return nil
}

func (m *MemoryStore) ListInteractions(_ context.Context, q core.InteractionQuery) ([]core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Interaction, 0)
	for _, in := range m.interactions {
		if q.Match(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return conv.Paginate(out, q.Offset, q.Limit), nil
}

func (m *MemoryStore) Close() error { return nil }

// 确保 MemoryStore 实现了 core.InventoryStore 接口
var _ core.InventoryStore = (*MemoryStore)(nil)
