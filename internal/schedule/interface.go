package schedule

// Store defines the interface for interacting with the event schedule.
type Store interface {
	Create(date, eventType string) (int64, error)
	SetAnnouncement(eventID int64, messageID int64) error
	Get(eventID int64) (*Event, error)
	ListOpen() ([]Event, error)
	LatestOpen() (*Event, error)
}
