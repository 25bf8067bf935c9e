package lineup

import (
	"math/rand"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/charmbracelet/log"
)

// Former assembles a random five-player line from the confirmed attendees of
// the latest open event.
type Former struct {
	roster     roster.Store
	schedule   schedule.Store
	attendance attendance.Ledger
	teams      Store
	rng        *rand.Rand
}

// NewFormer creates a Former. The rand source is injected so tests can be
// deterministic.
func NewFormer(players roster.Store, events schedule.Store, ledger attendance.Ledger, teams Store, rng *rand.Rand) *Former {
	return &Former{
		roster:     players,
		schedule:   events,
		attendance: ledger,
		teams:      teams,
		rng:        rng,
	}
}

// Form picks five confirmed players at random for the latest open event and
// persists them as one Red team. Only a coach may form teams. Forming again
// for the same event creates another team record.
func (f *Former) Form(actorID int64) (*Team, error) {
	if !f.roster.IsCoach(actorID) {
		return nil, ErrNotCoach
	}

	event, err := f.schedule.LatestOpen()
	if err != nil {
		return nil, err
	}

	names, err := f.attendance.Participants(event.ID)
	if err != nil {
		return nil, err
	}
	if len(names) < TeamSize {
		return nil, &InsufficientPlayersError{Confirmed: len(names)}
	}

	picked := make([]string, 0, TeamSize)
	for _, i := range f.rng.Perm(len(names))[:TeamSize] {
		picked = append(picked, names[i])
	}

	team := &Team{
		EventID: event.ID,
		Color:   ColorRed,
		Players: picked,
	}
	if err := f.teams.Save(team); err != nil {
		return nil, err
	}
	log.Info("Formed team", "eventID", event.ID, "players", picked)
	return team, nil
}
