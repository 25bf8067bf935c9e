package lineup

// Store defines the interface for persisting formed teams.
type Store interface {
	Save(team *Team) error
	ListByEvent(eventID int64) ([]Team, error)
}
