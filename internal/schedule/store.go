package schedule

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new schedule Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Create persists a new event. Every event starts open; no code path closes it.
func (s *store) Create(date, eventType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO events (date, type, status) VALUES (?, ?, ?)", date, eventType, string(StatusOpen))
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read event id: %w", err)
	}
	log.Info("Created event", "eventID", id, "date", date, "type", eventType)
	return id, nil
}

// SetAnnouncement records the chat message id of the announcement post, so the
// post can be edited when the participant list changes.
func (s *store) SetAnnouncement(eventID int64, messageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE events SET group_msg_id = ? WHERE event_id = ?", messageID, eventID)
	if err != nil {
		return fmt.Errorf("failed to set announcement message: %w", err)
	}
	return nil
}

func (s *store) Get(eventID int64) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT event_id, date, type, status, group_msg_id FROM events WHERE event_id = ?", eventID)
	return scanEvent(row)
}

// ListOpen returns all open events, most recent date first. Dates in the ДД.ММ
// form are compared as calendar values; anything unparseable falls back to
// plain string comparison.
func (s *store) ListOpen() ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT event_id, date, type, status, group_msg_id FROM events WHERE status = ?", string(StatusOpen))
	if err != nil {
		log.Error("Failed to query open events", "error", err)
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			log.Error("Failed to scan event row", "error", err)
			continue
		}
		events = append(events, *ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return dateLess(events[j].Date, events[i].Date)
	})
	return events, nil
}

// LatestOpen returns the most recently created open event, by id.
func (s *store) LatestOpen() (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT event_id, date, type, status, group_msg_id FROM events WHERE status = ? ORDER BY event_id DESC LIMIT 1", string(StatusOpen))
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNoOpenEvent
	}
	return ev, err
}

func scanEvent(scanner interface{ Scan(...any) error }) (*Event, error) {
	var ev Event
	var status string
	var msgID sql.NullInt64
	err := scanner.Scan(&ev.ID, &ev.Date, &ev.Type, &status, &msgID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	ev.Status = EventStatus(status)
	if msgID.Valid {
		ev.AnnouncementID = &msgID.Int64
	}
	return &ev, nil
}

// dateLess orders ДД.ММ dates by (month, day) so that "9.10" sorts before
// "25.10". Unparseable dates sort below every parseable one and fall back to
// string ordering among themselves, keeping the comparison transitive.
func dateLess(a, b string) bool {
	ka, oka := dateKey(a)
	kb, okb := dateKey(b)
	if oka != okb {
		return okb
	}
	if oka {
		return ka < kb
	}
	return a < b
}

func dateKey(date string) (int, bool) {
	parts := strings.SplitN(date, ".", 2)
	if len(parts) != 2 {
		return 0, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return month*100 + day, true
}
