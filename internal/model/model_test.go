package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() Project {
	return Project{
		Slug: "tiny-dungeon", Title: "Tiny Dungeon", Summary: "A wallet game.",
		Image: "img/tiny.jpg", Platform: "Kickstarter", PrimaryURL: "https://example.com/tiny",
		LaunchDate: "2025-03-10", EndDate: "2025-03-17",
	}
}

func TestProject_Validate_Valid(t *testing.T) {
	p := validProject()
	assert.NoError(t, p.Validate())
}

func TestProject_Validate_MissingDatesAllowed(t *testing.T) {
	p := validProject()
	p.LaunchDate, p.EndDate = "", ""
	assert.NoError(t, p.Validate())
}

func TestProject_Validate_MissingRequired(t *testing.T) {
	p := validProject()
	p.Title = ""
	p.PrimaryURL = ""
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "primaryUrl is required")
}

func TestProject_Validate_BadDateFormat(t *testing.T) {
	p := validProject()
	p.EndDate = "March 17"
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endDate")
}

func TestProject_LatePledgeAvailable(t *testing.T) {
	assert.False(t, (&Project{}).LatePledgeAvailable())
	assert.True(t, (&Project{IsLatePledge: true}).LatePledgeAvailable())
	assert.True(t, (&Project{HasLatePledge: true}).LatePledgeAvailable())
	assert.True(t, (&Project{LatePledgeURL: "https://x"}).LatePledgeAvailable())
	assert.False(t, (&Project{LatePledgeURL: "  "}).LatePledgeAvailable())
}

func TestProject_PreOrderAvailable(t *testing.T) {
	assert.False(t, (&Project{}).PreOrderAvailable())
	assert.True(t, (&Project{IsPreOrder: true}).PreOrderAvailable())
	assert.True(t, (&Project{HasPreOrder: true}).PreOrderAvailable())
	assert.True(t, (&Project{PreOrderURL: "https://x"}).PreOrderAvailable())
}

func TestProject_DesignerNames(t *testing.T) {
	assert.Nil(t, (&Project{}).DesignerNames())
	assert.Equal(t, []string{"Ada"}, (&Project{Designer: "Ada"}).DesignerNames())
	p := &Project{Designer: "Legacy", Designers: []string{"B", " ", "A"}}
	assert.Equal(t, []string{"B", "A"}, p.DesignerNames())
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseStatus(" Late-Pledge ")
	require.NoError(t, err)
	assert.Equal(t, StatusLatePledge, got)

	_, err = ParseStatus("funded")
	assert.Error(t, err)
}

func TestStatus_Windows(t *testing.T) {
	assert.True(t, StatusPromo.InLiveWindow())
	assert.False(t, StatusUpcoming.InLiveWindow())
	assert.True(t, StatusPreOrder.Closed())
	assert.False(t, StatusLive.Closed())
}

func TestSnapshot_Validate_DuplicateSlug(t *testing.T) {
	s := &Snapshot{Projects: []Project{validProject(), validProject()}}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate project slug")
}

func TestSnapshot_Lookup(t *testing.T) {
	s := &Snapshot{
		Projects: []Project{validProject()},
		Issues:   []Issue{{Slug: "week-1", WeekStart: "2025-03-10"}},
	}
	p, ok := s.Project("tiny-dungeon")
	require.True(t, ok)
	assert.Equal(t, "Tiny Dungeon", p.Title)
	_, ok = s.Project("missing")
	assert.False(t, ok)

	is, ok := s.Issue("week-1")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", is.WeekStart)
	assert.NoError(t, s.Validate())
}
