package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryOrder(t *testing.T) {
	r := Default()

	assert.Equal(t, []string{Home, WhyUs, Portfolio, Services, Technologies}, r.IDs())
	assert.Equal(t, Home, r.First())
	assert.Equal(t, 5, r.Len())

	entries := r.Entries()
	entries[0].ID = "mutated"
	assert.Equal(t, Home, r.First(), "Entries must return a copy")
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"blank id", []Entry{{ID: ""}}},
		{"hash prefix", []Entry{{ID: "#home"}}},
		{"whitespace", []Entry{{ID: "why us"}}},
		{"duplicate", []Entry{{ID: "home"}, {ID: "home"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries...)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { MustNew() })
}

func TestNormalize(t *testing.T) {
	r := Default()

	tests := []struct {
		fragment string
		want     string
		ok       bool
	}{
		{"", Home, true},
		{"#", Home, true},
		{"#home", Home, true},
		{"#whyus", WhyUs, true},
		{"technologies", Technologies, true},
		{" #services ", Services, true},
		{"#contact-form", "", false},
		{"#WHYUS", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, ok := r.Normalize(tt.fragment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionContains(t *testing.T) {
	s := Section{ID: Home, Top: 100, Height: 50}

	assert.True(t, s.Contains(100))
	assert.True(t, s.Contains(125))
	assert.True(t, s.Contains(150))
	assert.False(t, s.Contains(99.9))
	assert.False(t, s.Contains(150.1))
	assert.Equal(t, 150.0, s.Bottom())
}

func TestStack(t *testing.T) {
	r := Default()
	m := Stack(r, map[string]float64{Home: 800, WhyUs: 600, Services: 400})

	home, ok := m.Bounds(Home)
	require.True(t, ok)
	assert.Equal(t, Section{ID: Home, Top: 0, Height: 800}, home)

	why, ok := m.Bounds(WhyUs)
	require.True(t, ok)
	assert.Equal(t, 800.0, why.Top)

	services, ok := m.Bounds(Services)
	require.True(t, ok)
	assert.Equal(t, 1400.0, services.Top, "missing portfolio must not leave a gap")

	_, ok = m.Bounds(Portfolio)
	assert.False(t, ok)
}

func TestNewBoundsMap(t *testing.T) {
	m := NewBoundsMap([]Section{
		{ID: Home, Top: 0, Height: 10},
		{ID: Home, Top: 5, Height: 10},
	})
	got, ok := m.Bounds(Home)
	require.True(t, ok)
	assert.Equal(t, 5.0, got.Top)
}
