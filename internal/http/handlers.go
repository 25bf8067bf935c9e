package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
)

// HealthCheckHandler answers the hosting platform's liveness probe.
func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Бот работает!")
	}
}

// ListEventsHandler returns the open events as JSON.
func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Events.ListOpen()
		if err != nil {
			log.Error("Failed to list open events", "error", err)
			http.Error(w, "Failed to list events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, events)
	}
}

// ListPlayersHandler returns the registered players as JSON.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.List()
		if err != nil {
			log.Error("Failed to list players", "error", err)
			http.Error(w, "Failed to list players", http.StatusInternalServerError)
			return
		}
		writeJSON(w, players)
	}
}

// ListParticipantsHandler returns the confirmed names for ?event_id=N.
func (s *Server) ListParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := strconv.ParseInt(r.URL.Query().Get("event_id"), 10, 64)
		if err != nil {
			http.Error(w, "event_id required", http.StatusBadRequest)
			return
		}
		names, err := s.Ledger.Participants(eventID)
		if err != nil {
			log.Error("Failed to list participants", "error", err, "eventID", eventID)
			http.Error(w, "Failed to list participants", http.StatusInternalServerError)
			return
		}
		writeJSON(w, names)
	}
}

// ListTeamsHandler returns the formed teams for ?event_id=N.
func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := strconv.ParseInt(r.URL.Query().Get("event_id"), 10, 64)
		if err != nil {
			http.Error(w, "event_id required", http.StatusBadRequest)
			return
		}
		teams, err := s.Teams.ListByEvent(eventID)
		if err != nil {
			log.Error("Failed to list teams", "error", err, "eventID", eventID)
			http.Error(w, "Failed to list teams", http.StatusInternalServerError)
			return
		}
		writeJSON(w, teams)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
