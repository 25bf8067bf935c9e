package attendance

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles all database operations for the attendance ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new attendance Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// Set records a confirmation (insert, deduplicated by the primary key) or a
// decline (delete). Both directions are idempotent; a decline is
// indistinguishable from never having responded. The event is not checked for
// existence.
func (s *store) Set(eventID, userID int64, attending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attending {
		_, err := s.db.Exec(
			"INSERT INTO participants (event_id, user_id) VALUES (?, ?) ON CONFLICT (event_id, user_id) DO NOTHING",
			eventID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to confirm attendance: %w", err)
		}
	} else {
		_, err := s.db.Exec("DELETE FROM participants WHERE event_id = ? AND user_id = ?", eventID, userID)
		if err != nil {
			return fmt.Errorf("failed to decline attendance: %w", err)
		}
	}
	log.Debug("Recorded attendance", "eventID", eventID, "userID", userID, "attending", attending)
	return nil
}

// Participants returns the display names of everyone confirmed for the event.
func (s *store) Participants(eventID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT u.name FROM participants p
		JOIN users u ON p.user_id = u.user_id
		WHERE p.event_id = ?
	`, eventID)
	if err != nil {
		log.Error("Failed to query participants", "error", err, "eventID", eventID)
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			log.Error("Failed to scan participant row", "error", err)
			continue
		}
		names = append(names, name.String)
	}
	return names, nil
}

// ParticipantIDs returns the user ids of everyone confirmed for the event.
func (s *store) ParticipantIDs(eventID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT user_id FROM participants WHERE event_id = ?", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("Failed to scan participant id", "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
