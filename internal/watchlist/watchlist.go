// Package watchlist keeps the user's saved project slugs in a single
// key-value slot. Storage problems are logged and never surface to the
// caller: an unreadable slot is an empty list and a failed write is a no-op.
package watchlist

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/rogersnm/launchpad/internal/logging"
)

// DefaultKey is the slot name shared with the browser front end.
const DefaultKey = "pnp-launchpad-watchlist"

// Change reports what a mutation did to the list.
type Change string

const (
	Added     Change = "added"
	Removed   Change = "removed"
	Unchanged Change = "unchanged"
)

type Watchlist struct {
	kv  KV
	key string
}

// New returns a watchlist stored under key in kv.
func New(kv KV, key string) *Watchlist {
	if key == "" {
		key = DefaultKey
	}
	return &Watchlist{kv: kv, key: key}
}

// List returns the saved slugs in insertion order without duplicates.
func (w *Watchlist) List() []string {
	raw, ok, err := w.kv.Get(w.key)
	if err != nil {
		logging.WithError(err).WithField("key", w.key).Warn("watchlist read failed")
		return []string{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.WithError(err).WithField("key", w.key).Warn("watchlist data is corrupt, treating as empty")
		return []string{}
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Set returns the saved slugs as a set.
func (w *Watchlist) Set() map[string]bool {
	m := make(map[string]bool)
	for _, s := range w.List() {
		m[s] = true
	}
	return m
}

func (w *Watchlist) Has(slug string) bool {
	return slices.Contains(w.List(), strings.TrimSpace(slug))
}

func (w *Watchlist) save(items []string) {
	data, err := json.Marshal(items)
	if err != nil {
		logging.WithError(err).Warn("watchlist encode failed")
		return
	}
	if err := w.kv.Set(w.key, string(data)); err != nil {
		logging.WithError(err).WithField("key", w.key).Warn("watchlist write failed")
	}
}

// Add saves slug. It reports Unchanged for a blank or already saved slug.
func (w *Watchlist) Add(slug string) Change {
	slug = strings.TrimSpace(slug)
	items := w.List()
	if slug == "" || slices.Contains(items, slug) {
		return Unchanged
	}
	w.save(append(items, slug))
	return Added
}

// Remove drops slug. It reports Unchanged when slug was not saved.
func (w *Watchlist) Remove(slug string) Change {
	slug = strings.TrimSpace(slug)
	items := w.List()
	i := slices.Index(items, slug)
	if slug == "" || i < 0 {
		return Unchanged
	}
	w.save(slices.Delete(items, i, i+1))
	return Removed
}

// Toggle adds slug when absent and removes it when present.
func (w *Watchlist) Toggle(slug string) Change {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Unchanged
	}
	if slices.Contains(w.List(), slug) {
		return w.Remove(slug)
	}
	return w.Add(slug)
}

// Clear empties the slot.
func (w *Watchlist) Clear() {
	if err := w.kv.Clear(w.key); err != nil {
		logging.WithError(err).WithField("key", w.key).Warn("watchlist clear failed")
	}
}
