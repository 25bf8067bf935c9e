package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the bot from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncUpdatesHandled()
	IncEventsCreated()
	IncAttendanceMarks()
	IncTeamsFormed()
	IncAnnouncementEditFailed()
	SetStartupTime(duration float64)
}
