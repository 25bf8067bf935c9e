package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrPlayerNotFound is returned when a lookup misses.
var ErrPlayerNotFound = errors.New("игрок не найден")

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player represents a registered team member.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsCoach bool   `json:"is_coach"`
}
