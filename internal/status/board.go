package status

import (
	"time"

	"github.com/rogersnm/launchpad/internal/model"
)

// Entry is a project together with everything derived for display at one instant.
type Entry struct {
	Project      model.Project `json:"project"`
	Status       model.Status  `json:"status"`
	Countdown    Countdown     `json:"countdown"`
	JustLaunched bool          `json:"justLaunched"`
}

// Evaluate derives the display entry for p at now.
func Evaluate(p model.Project, now time.Time) Entry {
	st := Classify(&p, now)
	return Entry{
		Project:      p,
		Status:       st,
		Countdown:    CountdownFor(&p, st, now),
		JustLaunched: justLaunched(&p, st, now),
	}
}

// Board groups projects into the sections shown on the home page.
type Board struct {
	Live     []Entry `json:"live"`
	Upcoming []Entry `json:"upcoming"`
	Previews []Entry `json:"previews"`
	Archive  []Entry `json:"archive"`
}

// NewBoard classifies every project at now and orders each section:
// live ending soonest first, upcoming launching soonest first, previews in
// input order, archive by continuation offer then most recently ended.
func NewBoard(projects []model.Project, now time.Time) Board {
	s := NewSorter(now.Location())
	var live, upcoming, previews, archive []model.Project
	for _, p := range projects {
		switch Classify(&p, now) {
		case model.StatusLive, model.StatusPromo:
			live = append(live, p)
		case model.StatusUpcoming:
			upcoming = append(upcoming, p)
		case model.StatusPreview:
			previews = append(previews, p)
		default:
			archive = append(archive, p)
		}
	}
	return Board{
		Live:     evaluateAll(Sorted(live, s.ByEndAsc), now),
		Upcoming: evaluateAll(Sorted(upcoming, s.ByLaunchAsc), now),
		Previews: evaluateAll(previews, now),
		Archive:  evaluateAll(Sorted(archive, s.ByArchivePriority), now),
	}
}

func evaluateAll(projects []model.Project, now time.Time) []Entry {
	out := make([]Entry, 0, len(projects))
	for _, p := range projects {
		out = append(out, Evaluate(p, now))
	}
	return out
}

// Count returns the number of entries in all sections.
func (b Board) Count() int {
	return len(b.Live) + len(b.Upcoming) + len(b.Previews) + len(b.Archive)
}
