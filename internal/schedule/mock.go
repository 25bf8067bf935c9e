package schedule

import (
	"database/sql"
	"sync"
)

// Mock is a mock implementation of the Store interface for testing.
type Mock struct {
	mu sync.Mutex

	Events []Event
	nextID int64

	CreateErr          error
	SetAnnouncementErr error

	SetAnnouncementCalls []struct {
		EventID   int64
		MessageID int64
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{nextID: 1}
}

func (m *Mock) Create(date, eventType string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.nextID
	m.nextID++
	m.Events = append(m.Events, Event{ID: id, Date: date, Type: eventType, Status: StatusOpen})
	return id, nil
}

func (m *Mock) SetAnnouncement(eventID int64, messageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetAnnouncementCalls = append(m.SetAnnouncementCalls, struct {
		EventID   int64
		MessageID int64
	}{eventID, messageID})
	if m.SetAnnouncementErr != nil {
		return m.SetAnnouncementErr
	}
	for i := range m.Events {
		if m.Events[i].ID == eventID {
			m.Events[i].AnnouncementID = &messageID
		}
	}
	return nil
}

func (m *Mock) Get(eventID int64) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.Events {
		if ev.ID == eventID {
			cp := ev
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *Mock) ListOpen() ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var open []Event
	for _, ev := range m.Events {
		if ev.Status == StatusOpen {
			open = append(open, ev)
		}
	}
	return open, nil
}

func (m *Mock) LatestOpen() (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Events) - 1; i >= 0; i-- {
		if m.Events[i].Status == StatusOpen {
			cp := m.Events[i]
			return &cp, nil
		}
	}
	return nil, ErrNoOpenEvent
}
