package people

import "github.com/rogersnm/launchpad/internal/model"

// EnrichedProject is a project with its credits resolved to slugs.
type EnrichedProject struct {
	model.Project
	DesignerCredits []Credit `json:"designerCredits"`
	PublisherCredit *Credit  `json:"publisherCredit,omitempty"`
}

// Enrich resolves designer and publisher credits for every project in the
// snapshot. Inputs are not modified.
func Enrich(s *model.Snapshot) []EnrichedProject {
	dir := NewDirectory(s.Designers, s.Publishers)
	out := make([]EnrichedProject, 0, len(s.Projects))
	for _, p := range s.Projects {
		out = append(out, dir.EnrichProject(p))
	}
	return out
}

// EnrichProject resolves credits for one project. A single legacy designer
// becomes a one-element credit list.
func (d *Directory) EnrichProject(p model.Project) EnrichedProject {
	p.Designers = append([]string(nil), p.Designers...)
	p.Tags = append([]string(nil), p.Tags...)
	ep := EnrichedProject{Project: p}
	for _, name := range p.DesignerNames() {
		ep.DesignerCredits = append(ep.DesignerCredits, d.Resolve(Designers, name))
	}
	if c := d.Resolve(Publishers, p.Publisher); c.Name != "" {
		ep.PublisherCredit = &c
	}
	return ep
}

// Summary is a registry entry together with the projects that credit it.
type Summary struct {
	model.Person
	Kind     Kind     `json:"kind"`
	Projects []string `json:"projects"`
}

// Index lists every credited person, registry entries first in registry
// order and unregistered names after them in first-seen order.
func Index(s *model.Snapshot, kind Kind) []Summary {
	registry := s.Designers
	if kind == Publishers {
		registry = s.Publishers
	}
	enriched := Enrich(s)

	var out []Summary
	pos := make(map[string]int)
	add := func(p model.Person) int {
		if i, ok := pos[p.Slug]; ok {
			return i
		}
		pos[p.Slug] = len(out)
		out = append(out, Summary{Person: p, Kind: kind})
		return len(out) - 1
	}
	for _, p := range registry {
		if p.Slug == "" {
			p.Slug = Slugify(p.Name)
		}
		add(p)
	}
	for _, ep := range enriched {
		credits := ep.DesignerCredits
		if kind == Publishers {
			credits = nil
			if ep.PublisherCredit != nil {
				credits = []Credit{*ep.PublisherCredit}
			}
		}
		for _, c := range credits {
			if c.Slug == "" {
				continue
			}
			i := add(model.Person{Name: c.Name, Slug: c.Slug})
			out[i].Projects = append(out[i].Projects, ep.Slug)
		}
	}
	return out
}
