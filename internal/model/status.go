package model

import (
	"fmt"
	"strings"
)

// Status is the temporal phase of a project listing.
type Status string

const (
	StatusPreview    Status = "preview"
	StatusUpcoming   Status = "upcoming"
	StatusLive       Status = "live"
	StatusPromo      Status = "promo"
	StatusLatePledge Status = "late-pledge"
	StatusPreOrder   Status = "pre-order"
	StatusArchived   Status = "archived"
)

var validStatuses = []Status{
	StatusPreview, StatusUpcoming, StatusLive, StatusPromo,
	StatusLatePledge, StatusPreOrder, StatusArchived,
}

// Statuses returns every status in display order.
func Statuses() []Status {
	out := make([]Status, len(validStatuses))
	copy(out, validStatuses)
	return out
}

func ParseStatus(s string) (Status, error) {
	norm := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range validStatuses {
		if norm == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: must be one of preview, upcoming, live, promo, late-pledge, pre-order, archived", s)
}

// InLiveWindow reports whether the campaign is currently taking pledges.
func (s Status) InLiveWindow() bool {
	return s == StatusLive || s == StatusPromo
}

// Closed reports whether the official campaign window has ended.
func (s Status) Closed() bool {
	return s == StatusLatePledge || s == StatusPreOrder || s == StatusArchived
}
