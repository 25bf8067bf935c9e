package lineup

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new team Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Save persists one formed team. Nothing prevents multiple teams per event;
// repeated formation simply adds another record.
func (s *store) Save(team *Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.New().String()
	}

	// The roster is stored as a comma-joined name list, not a relation.
	_, err := s.db.Exec(
		"INSERT INTO teams (id, event_id, color, players) VALUES (?, ?, ?, ?)",
		team.ID, team.EventID, team.Color, strings.Join(team.Players, ","),
	)
	if err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}
	log.Info("Saved team", "teamID", team.ID, "eventID", team.EventID, "color", team.Color)
	return nil
}

// ListByEvent returns all teams formed for the event, oldest first.
func (s *store) ListByEvent(eventID int64) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, event_id, color, players FROM teams WHERE event_id = ? ORDER BY rowid", eventID)
	if err != nil {
		log.Error("Failed to query teams", "error", err, "eventID", eventID)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		var players sql.NullString
		if err := rows.Scan(&t.ID, &t.EventID, &t.Color, &players); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		if players.String != "" {
			t.Players = strings.Split(players.String, ",")
		}
		teams = append(teams, t)
	}
	return teams, nil
}
