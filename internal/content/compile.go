package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/model"
)

// Source directory layout under a content root.
const (
	ProjectsDir   = "projects"
	DesignersDir  = "designers"
	PublishersDir = "publishers"
	IssuesDir     = "issues"
)

// Compile assembles a snapshot from markdown sources: one file per record
// under projects/, designers/, publishers/ and issues/, ordered by file
// name. The markdown body fills the record's long-text field when the
// frontmatter leaves it empty, and a missing slug defaults to the file
// name without extension.
func Compile(dir string) (*model.Snapshot, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	snap := &model.Snapshot{Projects: []model.Project{}}

	err := eachSource(filepath.Join(dir, ProjectsDir), func(path, stem string) error {
		p, body, err := markdown.ParseFile[model.Project](path)
		if err != nil {
			return err
		}
		if p.Slug == "" {
			p.Slug = stem
		}
		if p.Summary == "" {
			p.Summary = body
		}
		snap.Projects = append(snap.Projects, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, kind := range []string{DesignersDir, PublishersDir} {
		var list []model.Person
		err := eachSource(filepath.Join(dir, kind), func(path, stem string) error {
			p, body, err := markdown.ParseFile[model.Person](path)
			if err != nil {
				return err
			}
			if p.Slug == "" {
				p.Slug = stem
			}
			if p.Bio == "" {
				p.Bio = body
			}
			list = append(list, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if kind == DesignersDir {
			snap.Designers = list
		} else {
			snap.Publishers = list
		}
	}

	err = eachSource(filepath.Join(dir, IssuesDir), func(path, stem string) error {
		is, body, err := markdown.ParseFile[model.Issue](path)
		if err != nil {
			return err
		}
		if is.Slug == "" {
			is.Slug = stem
		}
		if is.Intro == "" {
			is.Intro = body
		}
		snap.Issues = append(snap.Issues, is)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// eachSource calls fn for every .md file in dir. A missing dir is empty.
func eachSource(dir string, fn func(path, stem string) error) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return fmt.Errorf("globbing %s: %w", dir, err)
	}
	for _, path := range matches {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := fn(path, stem); err != nil {
			return err
		}
	}
	return nil
}

// ProjectSourcePath is where Compile expects the markdown for slug.
func ProjectSourcePath(dir, slug string) string {
	return filepath.Join(dir, ProjectsDir, slug+".md")
}
