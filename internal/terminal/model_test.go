package terminal

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/page"
	"github.com/byteik/site/internal/sections"
)

type recordingSubmitter struct {
	mu    sync.Mutex
	forms []contact.Form
	err   error
}

func (r *recordingSubmitter) Submit(ctx context.Context, form contact.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = append(r.forms, form)
	return r.err
}

func (r *recordingSubmitter) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func newTestModel(t *testing.T, submitter contact.Submitter) *Model {
	t.Helper()
	m := New(Config{Submitter: submitter})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLayoutStacksSections(t *testing.T) {
	m := newTestModel(t, nil)
	bounds := m.Bounds()

	ids := sections.Default().IDs()
	require.Len(t, bounds, len(ids))

	var top float64
	for _, id := range ids {
		b, ok := bounds[id]
		require.True(t, ok, id)
		assert.Equal(t, top, b.Top, id)
		assert.Greater(t, b.Height, float64(0), id)
		top = b.Bottom()
	}
	assert.GreaterOrEqual(t, bounds[sections.Home].Height, float64(m.viewport.Height), "hero fills the screen")
}

func TestStartsOnHome(t *testing.T) {
	m := newTestModel(t, nil)

	assert.Equal(t, sections.Home, m.Active())
	assert.Equal(t, "", m.Fragment(), "home needs no fragment")
	assert.Contains(t, m.View(), "Home")
}

func TestScrollingVisitsSectionsInOrder(t *testing.T) {
	m := newTestModel(t, nil)

	seen := []string{m.Active()}
	for i := 0; i < 500; i++ {
		before := m.viewport.YOffset
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		if active := m.Active(); active != seen[len(seen)-1] {
			seen = append(seen, active)
			assert.Equal(t, sections.Fragment(active), m.Fragment())
		}
		if m.viewport.YOffset == before {
			break
		}
	}

	assert.Equal(t, sections.Default().IDs(), seen)
	assert.True(t, m.tracker.Scrolled())
}

func TestActiveMatchesMidpoint(t *testing.T) {
	m := newTestModel(t, nil)

	for offset := 0; offset < int(m.Bounds()[sections.Services].Top); offset += 3 {
		m.viewport.SetYOffset(offset)
		m.tick()

		mid := float64(m.viewport.YOffset) + float64(m.viewport.Height)/2
		want := ""
		for _, id := range sections.Default().IDs() {
			if m.Bounds()[id].Contains(mid) {
				want = id
				break
			}
		}
		assert.Equal(t, want, m.Active(), "offset %d", offset)
	}
}

func TestJumpKeys(t *testing.T) {
	m := newTestModel(t, nil)

	press(m, runes("4"))
	assert.Equal(t, sections.Services, m.Active())
	assert.Equal(t, "#services", m.Fragment())
	assert.Contains(t, m.View(), "#services")

	press(m, runes("p"))
	assert.Equal(t, sections.Portfolio, m.Active())
	assert.Equal(t, "#portfolio", m.Fragment())

	press(m, runes("1"))
	assert.Equal(t, sections.Home, m.Active())
	assert.Equal(t, 0, m.viewport.YOffset)

	press(m, runes("p"))
	assert.Equal(t, sections.Home, m.Active(), "no section before home")

	press(m, runes("9"))
	assert.Equal(t, sections.Home, m.Active())
}

func TestContactFormSuccess(t *testing.T) {
	sub := &recordingSubmitter{}
	m := newTestModel(t, sub)

	press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("Ana"),
		tea.KeyMsg{Type: tea.KeyTab}, runes("ana@x.com"),
		tea.KeyMsg{Type: tea.KeyTab}, runes("Hello"))

	assert.Equal(t, contact.Form{Name: "Ana", Email: "ana@x.com", Message: "Hello"}, m.Contact().Form)
	assert.True(t, contact.SubmitEnabled(m.Contact()))

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Wait()
	m.Update(formUpdatedMsg{})

	require.Equal(t, 1, sub.calls())
	assert.Equal(t, contact.AlertSuccess, m.Contact().Alert.Kind)
	for _, in := range m.inputs {
		assert.Empty(t, in.Value())
	}
	assert.Contains(t, m.View(), "Thank you! Your message has been sent.")
}

func TestContactFormValidation(t *testing.T) {
	sub := &recordingSubmitter{}
	m := newTestModel(t, sub)

	press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("Ana"),
		tea.KeyMsg{Type: tea.KeyEnter}, runes("nope"),
		tea.KeyMsg{Type: tea.KeyEnter}, runes("Hi"),
		tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, sub.calls())
	assert.Equal(t, contact.AlertError, m.Contact().Alert.Kind)
	assert.Contains(t, m.View(), "Please enter a valid email address.")
	assert.Equal(t, "Ana", m.inputs[0].Value(), "input is kept")
}

func TestContactFormFailureKeepsInput(t *testing.T) {
	sub := &recordingSubmitter{err: assert.AnError}
	m := newTestModel(t, sub)

	press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("Ana"),
		tea.KeyMsg{Type: tea.KeyTab}, runes("ana@x.com"),
		tea.KeyMsg{Type: tea.KeyTab}, runes("Hello"),
		tea.KeyMsg{Type: tea.KeyCtrlS})
	m.Wait()
	m.Update(formUpdatedMsg{})

	assert.Equal(t, 1, sub.calls())
	assert.Equal(t, contact.AlertError, m.Contact().Alert.Kind)
	assert.Equal(t, "Hello", m.inputs[2].Value())
	assert.Contains(t, m.View(), "Something went wrong")
}

func TestFocusCycles(t *testing.T) {
	m := newTestModel(t, nil)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusName, m.focus)
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusMessage, m.focus)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusName, m.focus)
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusBrowse, m.focus)

	// Letters typed while browsing do not reach the form.
	press(m, runes("x"))
	assert.True(t, m.Contact().Form.IsZero())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLocalizedPreview(t *testing.T) {
	m := New(Config{Translator: i18n.Default().Translator("id")})
	defer m.Close()

	view := m.View()
	assert.Contains(t, view, "Beranda")
	assert.Contains(t, view, "ID")
}

func TestRenderSectionsHeights(t *testing.T) {
	contents := page.AllContent(i18n.Default().Translator("en"), sections.Default())

	out, heights := renderSections(contents, 40, 5)
	var total float64
	for _, h := range heights {
		total += h
	}
	assert.Equal(t, float64(strings.Count(out, "\n")+1), total)
}
