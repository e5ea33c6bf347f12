// Package people resolves designer and publisher names to registry entries.
package people

import (
	"strings"

	"github.com/rogersnm/launchpad/internal/model"
)

// Kind selects a people registry.
type Kind string

const (
	Designers  Kind = "designers"
	Publishers Kind = "publishers"
)

// Directory is an immutable case-insensitive name index over the people
// registries. Build one per enrichment pass.
type Directory struct {
	byKind map[Kind]map[string]model.Person
}

// NewDirectory indexes both registries by trimmed, lowercased name.
func NewDirectory(designers, publishers []model.Person) *Directory {
	return &Directory{byKind: map[Kind]map[string]model.Person{
		Designers:  index(designers),
		Publishers: index(publishers),
	}}
}

func index(people []model.Person) map[string]model.Person {
	m := make(map[string]model.Person, len(people))
	for _, p := range people {
		key := nameKey(p.Name)
		if key == "" {
			continue
		}
		// First entry wins on duplicate names.
		if _, ok := m[key]; !ok {
			m[key] = p
		}
	}
	return m
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a registry entry by exact name, ignoring case.
func (d *Directory) Lookup(kind Kind, name string) (model.Person, bool) {
	if d == nil {
		return model.Person{}, false
	}
	p, ok := d.byKind[kind][nameKey(name)]
	return p, ok
}

// Credit is a name as shown on a project together with its resolved slug.
type Credit struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Resolved bool   `json:"resolved"`
}

// Resolve returns the credit for name, preferring the registry slug over a
// derived one.
func (d *Directory) Resolve(kind Kind, name string) Credit {
	name = strings.TrimSpace(name)
	if p, ok := d.Lookup(kind, name); ok && p.Slug != "" {
		return Credit{Name: name, Slug: p.Slug, Resolved: true}
	}
	return Credit{Name: name, Slug: Slugify(name)}
}
