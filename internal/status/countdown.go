package status

import (
	"fmt"
	"time"

	"github.com/rogersnm/launchpad/internal/model"
)

// CountdownKind names which countdown phrase applies to a project.
type CountdownKind string

const (
	CountdownNone          CountdownKind = "none"
	CountdownDatesUnknown  CountdownKind = "dates-unknown"
	CountdownLaunchingSoon CountdownKind = "launching-soon"
	CountdownLaunchesIn    CountdownKind = "launches-in"
	CountdownEnded         CountdownKind = "ended"
	CountdownEndsToday     CountdownKind = "ends-today"
	CountdownEndsIn        CountdownKind = "ends-in"
)

// Countdown is the user-facing time remaining for a project.
type Countdown struct {
	Kind CountdownKind `json:"kind"`
	Days int           `json:"days,omitempty"`
}

// Text renders the countdown as the phrase shown on a project card.
func (c Countdown) Text() string {
	switch c.Kind {
	case CountdownDatesUnknown:
		return "Dates to be announced"
	case CountdownLaunchingSoon:
		return "Launching any moment"
	case CountdownLaunchesIn:
		return "Launches in " + plural(c.Days, "day")
	case CountdownEnded:
		return "Campaign ended"
	case CountdownEndsToday:
		return "Ends today"
	case CountdownEndsIn:
		return "Ends in " + plural(c.Days, "day")
	default:
		return ""
	}
}

func (c Countdown) String() string { return c.Text() }

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// CountdownFor computes the countdown for p given its already classified
// status. Days are counted between calendar days, so the end day itself
// reads "Ends today" and the day before reads "Ends in 1 day".
func CountdownFor(p *model.Project, st model.Status, now time.Time) Countdown {
	loc := now.Location()
	today := AtDayStart(now)

	switch st {
	case model.StatusPreview:
		return Countdown{Kind: CountdownDatesUnknown}
	case model.StatusUpcoming:
		if !HasISODate(p.LaunchDate) {
			return Countdown{Kind: CountdownNone}
		}
		launch, ok := ParseDate(p.LaunchDate, loc)
		if !ok {
			return Countdown{Kind: CountdownNone}
		}
		days := DayDiff(today, AtDayStart(launch))
		if days <= 0 {
			return Countdown{Kind: CountdownLaunchingSoon}
		}
		return Countdown{Kind: CountdownLaunchesIn, Days: days}
	case model.StatusLive, model.StatusPromo, model.StatusLatePledge, model.StatusPreOrder:
		if !HasISODate(p.EndDate) {
			return Countdown{Kind: CountdownNone}
		}
		end, ok := ParseDate(p.EndDate, loc)
		if !ok {
			return Countdown{Kind: CountdownNone}
		}
		days := DayDiff(today, AtDayStart(end))
		switch {
		case days < 0:
			return Countdown{Kind: CountdownEnded}
		case days == 0:
			return Countdown{Kind: CountdownEndsToday}
		default:
			return Countdown{Kind: CountdownEndsIn, Days: days}
		}
	default:
		return Countdown{Kind: CountdownNone}
	}
}
