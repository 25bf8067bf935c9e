package roster

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new roster Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Register adds a player on first contact. It is a no-op when the id is
// already known: the stored name and coach flag are never overwritten.
func (s *store) Register(userID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT OR IGNORE INTO users (user_id, name) VALUES (?, ?)", userID, name)
	if err != nil {
		return fmt.Errorf("failed to register player: %w", err)
	}
	log.Debug("Registered player", "userID", userID, "name", name)
	return nil
}

// IsCoach reports whether the player carries the coach flag. Unknown players
// are simply not coaches.
func (s *store) IsCoach(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var isCoach bool
	err := s.db.QueryRow("SELECT is_coach FROM users WHERE user_id = ?", userID).Scan(&isCoach)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to check coach flag", "error", err, "userID", userID)
		}
		return false
	}
	return isCoach
}

// SetCoach marks the player as coach. The flag is monotonic: there is no
// demotion operation. The chat-administrator gate lives with the caller.
func (s *store) SetCoach(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE users SET is_coach = 1 WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to set coach flag: %w", err)
	}
	log.Info("Promoted player to coach", "userID", userID)
	return nil
}

func (s *store) Get(userID int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	var name sql.NullString
	err := s.db.QueryRow("SELECT user_id, name, is_coach FROM users WHERE user_id = ?", userID).
		Scan(&p.ID, &name, &p.IsCoach)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	p.Name = name.String
	return &p, nil
}

func (s *store) List() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT user_id, name, is_coach FROM users ORDER BY name")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var name sql.NullString
		if err := rows.Scan(&p.ID, &name, &p.IsCoach); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		players = append(players, p)
	}
	return players, nil
}
