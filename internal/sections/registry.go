// Package sections declares the ordered page sections that navigation,
// URL fragments, rendered anchors and the viewport tracker all agree on.
//
// The registry is immutable after construction. Its order is the visual
// top-to-bottom order of the page and is also the tie-break order used when
// section bounds overlap.
package sections

import (
	"fmt"
	"regexp"
	"strings"
)

// Section identifiers rendered on the landing page.
const (
	Home         = "home"
	WhyUs        = "whyus"
	Portfolio    = "portfolio"
	Services     = "services"
	Technologies = "technologies"
)

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Entry is one navigable section: its anchor id and the catalog key of its
// navigation label.
type Entry struct {
	ID       string
	LabelKey string
}

// Registry is a fixed, ordered list of section entries.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New builds a registry from entries in visual order. Ids must be unique,
// non-empty and usable as URL fragments.
func New(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("registry needs at least one section")
	}

	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if !idPattern.MatchString(e.ID) {
			return nil, fmt.Errorf("invalid section id %q", e.ID)
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", e.ID)
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	return r, nil
}

var defaultRegistry = MustNew(
	Entry{ID: Home, LabelKey: "menu.home"},
	Entry{ID: WhyUs, LabelKey: "menu.whyus"},
	Entry{ID: Portfolio, LabelKey: "menu.portfolio"},
	Entry{ID: Services, LabelKey: "menu.solutions"},
	Entry{ID: Technologies, LabelKey: "menu.stack"},
)

// Default returns the landing page registry.
func Default() *Registry {
	return defaultRegistry
}

// MustNew is like New but panics on invalid input.
func MustNew(entries ...Entry) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Entries returns a copy of the entries in declared order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns the section ids in declared order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Has reports whether id is a registered section.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// First returns the top-most section id. An empty fragment refers to it.
func (r *Registry) First() string {
	return r.entries[0].ID
}

// Normalize maps a URL fragment ("#whyus", "whyus", "", "#") to a section id.
// The empty fragment means the first section. Unknown fragments return false.
func (r *Registry) Normalize(fragment string) (string, bool) {
	id := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if id == "" {
		return r.First(), true
	}
	if !r.Has(id) {
		return "", false
	}
	return id, true
}

// Fragment renders a section id as a URL fragment.
func Fragment(id string) string {
	return "#" + id
}
