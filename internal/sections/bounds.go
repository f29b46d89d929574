package sections

// Section is the current vertical extent of a rendered section. Units are
// whatever the viewport uses (CSS pixels in the browser, lines in the
// terminal preview).
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom returns the lower edge of the section.
func (s Section) Bottom() float64 {
	return s.Top + s.Height
}

// Contains reports whether y lies in the closed range [Top, Top+Height].
func (s Section) Contains(y float64) bool {
	return y >= s.Top && y <= s.Bottom()
}

// BoundsSource reports the live bounds of a section. ok is false when the
// section is not currently rendered.
type BoundsSource interface {
	Bounds(id string) (Section, bool)
}

// BoundsMap is a BoundsSource backed by a snapshot keyed by section id.
type BoundsMap map[string]Section

// Bounds implements BoundsSource.
func (m BoundsMap) Bounds(id string) (Section, bool) {
	s, ok := m[id]
	return s, ok
}

// NewBoundsMap indexes a list of measured sections. Later duplicates win.
func NewBoundsMap(list []Section) BoundsMap {
	m := make(BoundsMap, len(list))
	for _, s := range list {
		m[s.ID] = s
	}
	return m
}

// Stack lays sections out top to bottom starting at zero, using the given
// heights in registry order. Ids without a height are skipped.
func Stack(r *Registry, heights map[string]float64) BoundsMap {
	m := make(BoundsMap, r.Len())
	var top float64
	for _, id := range r.IDs() {
		h, ok := heights[id]
		if !ok {
			continue
		}
		m[id] = Section{ID: id, Top: top, Height: h}
		top += h
	}
	return m
}
