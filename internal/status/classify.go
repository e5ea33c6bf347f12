package status

import (
	"time"

	"github.com/rogersnm/launchpad/internal/model"
)

// Classify returns the status of p at now. First matching rule wins:
// preview, upcoming, closed window (late-pledge, pre-order, archived),
// live window (promo, live).
//
// A missing or unparseable date fails its comparison: without a launch
// date a project is never upcoming, without an end date it never closes.
// Only when neither date is a real ISO day is the project a preview;
// a YYYY-MM-DD string naming a day that does not exist counts as absent.
func Classify(p *model.Project, now time.Time) model.Status {
	loc := now.Location()
	if p.IsPreview || (!validISO(p.LaunchDate, loc) && !validISO(p.EndDate, loc)) {
		return model.StatusPreview
	}

	if launch, ok := ParseDate(p.LaunchDate, loc); ok && AtDayStart(launch).After(now) {
		return model.StatusUpcoming
	}

	if end, ok := ParseDate(p.EndDate, loc); ok && AtDayEnd(end).Before(now) {
		switch {
		case p.LatePledgeAvailable():
			return model.StatusLatePledge
		case p.PreOrderAvailable():
			return model.StatusPreOrder
		default:
			return model.StatusArchived
		}
	}

	if p.IsPromo {
		return model.StatusPromo
	}
	return model.StatusLive
}

// JustLaunched reports whether p is live or promo and launched on now's
// calendar day. It is a badge on top of the status, not a status.
func JustLaunched(p *model.Project, now time.Time) bool {
	return justLaunched(p, Classify(p, now), now)
}

func justLaunched(p *model.Project, st model.Status, now time.Time) bool {
	if !st.InLiveWindow() || !validISO(p.LaunchDate, now.Location()) {
		return false
	}
	launch, ok := ParseDate(p.LaunchDate, now.Location())
	return ok && SameDay(now, launch)
}

func validISO(v string, loc *time.Location) bool {
	if !HasISODate(v) {
		return false
	}
	_, ok := ParseDate(v, loc)
	return ok
}
