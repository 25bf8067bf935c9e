package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	UpdatesHandled         prometheus.Counter
	EventsCreated          prometheus.Counter
	AttendanceMarks        prometheus.Counter
	TeamsFormed            prometheus.Counter
	AnnouncementEditFailed prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		UpdatesHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hockey_updates_handled_total",
			Help: "The total number of Telegram updates handled.",
		}),
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hockey_events_created_total",
			Help: "The total number of events created by the coach.",
		}),
		AttendanceMarks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hockey_attendance_marks_total",
			Help: "The total number of attendance button presses processed.",
		}),
		TeamsFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hockey_teams_formed_total",
			Help: "The total number of five-player lines formed.",
		}),
		AnnouncementEditFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hockey_announcement_edit_failed_total",
			Help: "The total number of best-effort announcement edits that failed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hockey_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.UpdatesHandled,
		s.EventsCreated,
		s.AttendanceMarks,
		s.TeamsFormed,
		s.AnnouncementEditFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncUpdatesHandled() {
	s.UpdatesHandled.Inc()
}

func (s *Service) IncEventsCreated() {
	s.EventsCreated.Inc()
}

func (s *Service) IncAttendanceMarks() {
	s.AttendanceMarks.Inc()
}

func (s *Service) IncTeamsFormed() {
	s.TeamsFormed.Inc()
}

func (s *Service) IncAnnouncementEditFailed() {
	s.AnnouncementEditFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
