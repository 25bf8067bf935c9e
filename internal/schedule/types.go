package schedule

import (
	"database/sql"
	"errors"
	"sync"
)

// EventStatus represents the lifecycle status of an event. Only StatusOpen is
// ever assigned today; the column exists so a closing transition can be added
// without a schema change.
type EventStatus string

const (
	StatusOpen EventStatus = "open"
)

// ErrNoOpenEvent is returned when an operation needs an open event and none exists.
var ErrNoOpenEvent = errors.New("нет активного события")

// store handles all database operations for events.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Event represents a practice or a game.
type Event struct {
	ID             int64       `json:"id"`
	Date           string      `json:"date"` // ДД.ММ, kept as entered
	Type           string      `json:"type"`
	Status         EventStatus `json:"status"`
	AnnouncementID *int64      `json:"announcement_id,omitempty"`
}
