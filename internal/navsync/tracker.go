// Package navsync keeps the highlighted navigation item and the URL
// fragment consistent with the section at the centre of the viewport.
//
// Tracker owns the single NavigationState. HashSync projects it onto a
// Location and feeds external fragment changes back into the Tracker, so
// the two can never disagree or ping-pong.
package navsync

import (
	"sync"

	"github.com/byteik/site/internal/sections"
)

// scrolledThreshold is the scroll offset past which the page header switches
// to its solid style.
const scrolledThreshold = 10

// Viewport is the visible window at the moment of a tracking tick.
type Viewport struct {
	ScrollY float64 `json:"scrollY"`
	Height  float64 `json:"height"`
}

// Midpoint returns the document coordinate of the viewport's vertical centre.
func (v Viewport) Midpoint() float64 {
	return v.ScrollY + v.Height/2
}

// Cause records what moved the active section.
type Cause int

const (
	CauseScroll Cause = iota
	CauseFragment
)

// String returns the string representation of the cause
func (c Cause) String() string {
	switch c {
	case CauseScroll:
		return "scroll"
	case CauseFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Change is emitted once per NavigationState transition.
type Change struct {
	Previous string
	Active   string
	Cause    Cause
}

// Listener receives NavigationState changes.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Tracker determines the active section from viewport ticks and notifies
// listeners only when it changes.
type Tracker struct {
	registry *sections.Registry

	mu        sync.Mutex
	active    string
	scrolled  bool
	listeners []subscription
	nextID    int
}

// NewTracker creates a tracker with no active section.
func NewTracker(registry *sections.Registry) *Tracker {
	if registry == nil {
		registry = sections.Default()
	}
	return &Tracker{registry: registry}
}

// Registry returns the registry the tracker iterates.
func (t *Tracker) Registry() *sections.Registry {
	return t.registry
}

// Active returns the current active section id, or "" before the first match.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Scrolled reports whether the last tick was past the header threshold.
func (t *Tracker) Scrolled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrolled
}

// Locate returns the first section in registry order whose bounds contain
// the midpoint. Sections the bounds source does not know are skipped.
func Locate(registry *sections.Registry, midpoint float64, bounds sections.BoundsSource) (string, bool) {
	if bounds == nil {
		return "", false
	}
	for _, id := range registry.IDs() {
		s, ok := bounds.Bounds(id)
		if !ok {
			continue
		}
		if s.Contains(midpoint) {
			return id, true
		}
	}
	return "", false
}

// Tick recomputes the active section for a scroll, fragment or load event.
// It reports whether NavigationState changed. When no section contains the
// midpoint the previous value is kept.
func (t *Tracker) Tick(vp Viewport, bounds sections.BoundsSource) bool {
	id, found := Locate(t.registry, vp.Midpoint(), bounds)

	t.mu.Lock()
	t.scrolled = vp.ScrollY > scrolledThreshold
	if !found || id == t.active {
		t.mu.Unlock()
		return false
	}
	change := Change{Previous: t.active, Active: id, Cause: CauseScroll}
	t.active = id
	listeners := t.snapshotLocked()
	t.mu.Unlock()

	notify(listeners, change)
	return true
}

// Set moves NavigationState to id on behalf of an external navigation (a
// clicked link, back/forward). Unknown ids and the current id are no-ops.
func (t *Tracker) Set(id string, cause Cause) bool {
	if !t.registry.Has(id) {
		return false
	}

	t.mu.Lock()
	if id == t.active {
		t.mu.Unlock()
		return false
	}
	change := Change{Previous: t.active, Active: id, Cause: cause}
	t.active = id
	listeners := t.snapshotLocked()
	t.mu.Unlock()

	notify(listeners, change)
	return true
}

// Subscribe registers a listener. The returned func removes it and is safe to
// call more than once.
func (t *Tracker) Subscribe(fn Listener) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.listeners {
				if s.id == id {
					t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (t *Tracker) snapshotLocked() []Listener {
	out := make([]Listener, len(t.listeners))
	for i, s := range t.listeners {
		out[i] = s.fn
	}
	return out
}

func notify(listeners []Listener, change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
