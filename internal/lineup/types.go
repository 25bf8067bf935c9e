package lineup

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// TeamSize is the number of players in one line.
const TeamSize = 5

// ColorRed is the only line color the single-team flow produces.
const ColorRed = "Red"

// ErrNotCoach is returned when a non-coach attempts team formation.
var ErrNotCoach = errors.New("только тренер может формировать пятёрки")

// InsufficientPlayersError reports how many players have confirmed so far.
type InsufficientPlayersError struct {
	Confirmed int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("недостаточно игроков: отметилось %d, нужно %d", e.Confirmed, TeamSize)
}

// Team is one formed line for an event. Players are kept in sampled order.
type Team struct {
	ID      string   `json:"id"`
	EventID int64    `json:"event_id"`
	Color   string   `json:"color"`
	Players []string `json:"players"`
}

// store handles database operations for formed teams.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
