package model

// Person is a designer or publisher registry entry.
type Person struct {
	Name   string `json:"name" yaml:"name"`
	Slug   string `json:"slug" yaml:"slug"`
	BGGURL string `json:"bggUrl,omitempty" yaml:"bgg_url,omitempty"`
	Bio    string `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// Issue is a weekly editorial digest.
type Issue struct {
	Slug      string   `json:"slug" yaml:"slug"`
	Title     string   `json:"title" yaml:"title"`
	Intro     string   `json:"intro" yaml:"intro,omitempty"`
	WeekStart string   `json:"weekStart" yaml:"week_start"`
	WeekEnd   string   `json:"weekEnd" yaml:"week_end"`
	Projects  []string `json:"projects,omitempty" yaml:"projects,omitempty"`
}
