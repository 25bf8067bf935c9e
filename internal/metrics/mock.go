package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
type Mock struct {
	mu sync.Mutex

	UpdatesHandledCount         int
	EventsCreatedCount          int
	AttendanceMarksCount        int
	TeamsFormedCount            int
	AnnouncementEditFailedCount int
	StartupTime                 float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncUpdatesHandled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatesHandledCount++
}

func (m *Mock) IncEventsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsCreatedCount++
}

func (m *Mock) IncAttendanceMarks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AttendanceMarksCount++
}

func (m *Mock) IncTeamsFormed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamsFormedCount++
}

func (m *Mock) IncAnnouncementEditFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnnouncementEditFailedCount++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
