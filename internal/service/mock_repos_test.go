package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"cosmoport/internal/model"
	"cosmoport/internal/repository"
)

// ── Mock ShipRepository ──
//
// 按值保存副本，模拟数据库：调用方拿到的指针被修改不会影响已保存的数据。

type mockShipRepo struct {
	ships  map[int64]model.Ship
	nextID int64

	saveErr    error
	findAllErr error

	saveCalls    int
	findAllCalls int
	deleteCalls  int
}

func newMockShipRepo() *mockShipRepo {
	return &mockShipRepo{ships: make(map[int64]model.Ship), nextID: 1}
}

func (m *mockShipRepo) Save(_ context.Context, ship *model.Ship) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	if ship.ID == 0 {
		ship.ID = m.nextID
		m.nextID++
	}
	m.ships[ship.ID] = *ship
	return nil
}

func (m *mockShipRepo) FindByID(_ context.Context, id int64) (*model.Ship, error) {
	if s, ok := m.ships[id]; ok {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShipRepo) FindAll(_ context.Context) ([]model.Ship, error) {
	m.findAllCalls++
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	result := make([]model.Ship, 0, len(m.ships))
	for _, s := range m.ships {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockShipRepo) Delete(_ context.Context, ship *model.Ship) error {
	m.deleteCalls++
	delete(m.ships, ship.ID)
	return nil
}

// put 直接写入一条记录（跳过业务校验），返回分配的 ID
func (m *mockShipRepo) put(ship model.Ship) int64 {
	_ = m.Save(context.Background(), &ship)
	m.saveCalls--
	return ship.ID
}

func newTestRepository() (*repository.Repository, *mockShipRepo) {
	shipRepo := newMockShipRepo()
	return &repository.Repository{Ship: shipRepo}, shipRepo
}
