package roster

// Store defines the interface for interacting with the team's membership data.
type Store interface {
	Register(userID int64, name string) error
	IsCoach(userID int64) bool
	SetCoach(userID int64) error
	Get(userID int64) (*Player, error)
	List() ([]Player, error)
}
