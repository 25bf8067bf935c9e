package attendance

// Ledger defines the interface for recording attendance confirmations.
type Ledger interface {
	Set(eventID, userID int64, attending bool) error
	Participants(eventID int64) ([]string, error)
	ParticipantIDs(eventID int64) ([]int64, error)
}
