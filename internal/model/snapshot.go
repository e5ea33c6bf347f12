package model

import (
	"errors"
	"fmt"
)

// Snapshot is the whole content document served to the site.
type Snapshot struct {
	Projects   []Project `json:"projects"`
	Designers  []Person  `json:"designers"`
	Publishers []Person  `json:"publishers"`
	Issues     []Issue   `json:"issues,omitempty"`
}

// Project returns the project with the given slug.
func (s *Snapshot) Project(slug string) (*Project, bool) {
	for i := range s.Projects {
		if s.Projects[i].Slug == slug {
			return &s.Projects[i], true
		}
	}
	return nil, false
}

// Issue returns the issue with the given slug.
func (s *Snapshot) Issue(slug string) (*Issue, bool) {
	for i := range s.Issues {
		if s.Issues[i].Slug == slug {
			return &s.Issues[i], true
		}
	}
	return nil, false
}

// Validate checks every project and rejects duplicate slugs.
func (s *Snapshot) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i := range s.Projects {
		p := &s.Projects[i]
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if p.Slug == "" {
			continue
		}
		if seen[p.Slug] {
			errs = append(errs, fmt.Errorf("%w: duplicate project slug %q", ErrInvalid, p.Slug))
		}
		seen[p.Slug] = true
	}
	for _, is := range s.Issues {
		if is.WeekStart != "" && !isoDay.MatchString(is.WeekStart) {
			errs = append(errs, fmt.Errorf("%w: issue %q: weekStart %q is not YYYY-MM-DD", ErrInvalid, is.Slug, is.WeekStart))
		}
	}
	return errors.Join(errs...)
}
