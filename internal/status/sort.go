package status

import (
	"cmp"
	"slices"
	"time"

	"github.com/rogersnm/launchpad/internal/model"
)

// Sorter holds the location used to interpret date fields while ordering.
// All comparators are suitable for slices.SortStableFunc and put records
// with a missing or unparseable date after every valid one.
type Sorter struct {
	Loc *time.Location
}

func NewSorter(loc *time.Location) Sorter {
	if loc == nil {
		loc = time.Local
	}
	return Sorter{Loc: loc}
}

// compareDates orders valid dates with less and sends invalid ones last.
func compareDates(at time.Time, aok bool, bt time.Time, bok bool, desc bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	if desc {
		return bt.Compare(at)
	}
	return at.Compare(bt)
}

func (s Sorter) parse(v string) (time.Time, bool) {
	return ParseDate(v, s.Loc)
}

// ByWeekDesc orders issues by week start, most recent first.
func (s Sorter) ByWeekDesc(a, b model.Issue) int {
	at, aok := s.parse(a.WeekStart)
	bt, bok := s.parse(b.WeekStart)
	return compareDates(at, aok, bt, bok, true)
}

// ByEndAsc orders projects soonest-ending first.
func (s Sorter) ByEndAsc(a, b model.Project) int {
	at, aok := s.parse(a.EndDate)
	bt, bok := s.parse(b.EndDate)
	return compareDates(at, aok, bt, bok, false)
}

// ByLaunchDesc orders projects most recently launched first.
func (s Sorter) ByLaunchDesc(a, b model.Project) int {
	at, aok := s.parse(a.LaunchDate)
	bt, bok := s.parse(b.LaunchDate)
	return compareDates(at, aok, bt, bok, true)
}

// ByLaunchAsc orders projects soonest-launching first.
func (s Sorter) ByLaunchAsc(a, b model.Project) int {
	at, aok := s.parse(a.LaunchDate)
	bt, bok := s.parse(b.LaunchDate)
	return compareDates(at, aok, bt, bok, false)
}

// ArchiveRank is 0 for late pledges, 1 for pre-orders, 2 otherwise.
func ArchiveRank(p *model.Project) int {
	switch {
	case p.LatePledgeAvailable():
		return 0
	case p.PreOrderAvailable():
		return 1
	default:
		return 2
	}
}

// ByArchivePriority orders closed campaigns by continuation offer first,
// then most recently ended first within the same rank.
func (s Sorter) ByArchivePriority(a, b model.Project) int {
	if c := cmp.Compare(ArchiveRank(&a), ArchiveRank(&b)); c != 0 {
		return c
	}
	at, aok := s.parse(a.EndDate)
	bt, bok := s.parse(b.EndDate)
	return compareDates(at, aok, bt, bok, true)
}

// Sorted returns a stably sorted copy of items.
func Sorted[T any](items []T, less func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, less)
	return out
}
