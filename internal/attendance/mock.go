package attendance

import "sync"

type pair struct {
	EventID int64
	UserID  int64
}

// Mock is a mock implementation of the Ledger interface for testing.
type Mock struct {
	mu sync.Mutex

	marks map[pair]bool
	Names map[int64]string // user id -> display name for Participants

	SetErr error

	SetCalls []struct {
		EventID   int64
		UserID    int64
		Attending bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		marks: map[pair]bool{},
		Names: map[int64]string{},
	}
}

func (m *Mock) Set(eventID, userID int64, attending bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, struct {
		EventID   int64
		UserID    int64
		Attending bool
	}{eventID, userID, attending})
	if m.SetErr != nil {
		return m.SetErr
	}
	if attending {
		m.marks[pair{eventID, userID}] = true
	} else {
		delete(m.marks, pair{eventID, userID})
	}
	return nil
}

func (m *Mock) Participants(eventID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for p := range m.marks {
		if p.EventID == eventID {
			names = append(names, m.Names[p.UserID])
		}
	}
	return names, nil
}

func (m *Mock) ParticipantIDs(eventID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for p := range m.marks {
		if p.EventID == eventID {
			ids = append(ids, p.UserID)
		}
	}
	return ids, nil
}
