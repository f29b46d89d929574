package navsync

import (
	"sync"

	"github.com/byteik/site/internal/sections"
)

// Location is the address bar as seen by the synchronizer.
type Location interface {
	// Fragment returns the current fragment including the leading '#', or "".
	Fragment() string
	// ReplaceFragment swaps the fragment in place: no new history entry and
	// no scroll jump.
	ReplaceFragment(fragment string)
}

// HashSync mirrors the tracker's active section into a Location and feeds
// externally driven fragment changes back into the tracker.
type HashSync struct {
	tracker  *Tracker
	location Location
}

// NewHashSync binds a tracker to a location. Call Attach to start projecting.
func NewHashSync(tracker *Tracker, location Location) *HashSync {
	return &HashSync{tracker: tracker, location: location}
}

// Attach subscribes to the tracker and projects every change onto the
// location. The returned func detaches.
func (h *HashSync) Attach() func() {
	return h.tracker.Subscribe(func(c Change) {
		h.Project(c.Active)
	})
}

// Project writes #id unless the location already points at id. An empty
// fragment counts as pointing at the first section. It reports whether the
// location was written.
func (h *HashSync) Project(id string) bool {
	registry := h.tracker.Registry()
	if !registry.Has(id) {
		return false
	}
	if current, ok := registry.Normalize(h.location.Fragment()); ok && current == id {
		return false
	}
	h.location.ReplaceFragment(sections.Fragment(id))
	return true
}

// FragmentChanged handles a fragment the user produced (link click,
// back/forward, typed URL). Known fragments become the active section;
// unknown ones are ignored. It reports whether NavigationState changed.
func (h *HashSync) FragmentChanged(fragment string) bool {
	id, ok := h.tracker.Registry().Normalize(fragment)
	if !ok {
		return false
	}
	return h.tracker.Set(id, CauseFragment)
}

// MemoryLocation is a Location that only remembers the fragment. It backs
// the terminal preview and tests.
type MemoryLocation struct {
	mu       sync.Mutex
	fragment string
	writes   int
}

// NewMemoryLocation starts at the given fragment.
func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{fragment: fragment}
}

// Fragment implements Location.
func (m *MemoryLocation) Fragment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fragment
}

// ReplaceFragment implements Location.
func (m *MemoryLocation) ReplaceFragment(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragment = fragment
	m.writes++
}

// Navigate simulates the user changing the fragment; it does not count as a
// replace.
func (m *MemoryLocation) Navigate(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragment = fragment
}

// Writes returns how many times ReplaceFragment was called.
func (m *MemoryLocation) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
