package roster

import "sync"

// Mock is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	Players map[int64]*Player

	RegisterCalls []struct {
		UserID int64
		Name   string
	}
	SetCoachCalls []int64

	RegisterErr error
	SetCoachErr error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{Players: map[int64]*Player{}}
}

func (m *Mock) Register(userID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, struct {
		UserID int64
		Name   string
	}{userID, name})
	if m.RegisterErr != nil {
		return m.RegisterErr
	}
	if _, ok := m.Players[userID]; !ok {
		m.Players[userID] = &Player{ID: userID, Name: name}
	}
	return nil
}

func (m *Mock) IsCoach(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Players[userID]
	return ok && p.IsCoach
}

func (m *Mock) SetCoach(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCoachCalls = append(m.SetCoachCalls, userID)
	if m.SetCoachErr != nil {
		return m.SetCoachErr
	}
	if p, ok := m.Players[userID]; ok {
		p.IsCoach = true
	}
	return nil
}

func (m *Mock) Get(userID int64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Players[userID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Mock) List() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var players []Player
	for _, p := range m.Players {
		players = append(players, *p)
	}
	return players, nil
}
