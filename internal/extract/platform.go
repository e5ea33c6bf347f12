// Package extract pulls campaign links out of raw page dumps and weekly
// curation notes.
package extract

import (
	"net/url"
	"strings"
)

const (
	Kickstarter = "Kickstarter"
	Gamefound   = "Gamefound"
	Itch        = "Itch.io"
	Etsy        = "Etsy"
	YouTube     = "YouTube"
	Drive       = "Google Drive"
	Other       = "Other"
)

// Platform names the storefront a URL belongs to, judged on the host.
func Platform(rawURL string) string {
	return platformFor(host(rawURL))
}

// platformFor matches by substring so both hosts and whole URLs work.
func platformFor(v string) string {
	switch {
	case strings.Contains(v, "kickstarter.com"):
		return Kickstarter
	case strings.Contains(v, "gamefound.com"):
		return Gamefound
	case strings.Contains(v, "itch.io"):
		return Itch
	case strings.Contains(v, "etsy.com"):
		return Etsy
	case strings.Contains(v, "youtube.com"), strings.Contains(v, "youtu.be"):
		return YouTube
	case strings.Contains(v, "drive.google.com"):
		return Drive
	}
	return Other
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
