// Package terminal renders the landing page in a terminal. Scrolling drives
// the same section tracker the browser session uses, with lines as the unit,
// and the contact form runs the same submission controller.
package terminal

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/navsync"
	"github.com/byteik/site/internal/page"
	"github.com/byteik/site/internal/sections"
)

// Config wires runtime options into the preview.
type Config struct {
	Registry   *sections.Registry
	Translator *i18n.Translator
	Submitter  contact.Submitter
	Timeout    time.Duration
	Logger     logging.Logger
}

type focus int

const (
	focusBrowse focus = iota
	focusName
	focusEmail
	focusMessage
)

var formFields = []contact.Field{contact.FieldName, contact.FieldEmail, contact.FieldMessage}

const (
	minViewportWidth  = 20
	minViewportHeight = 3
	headerLines       = 3
	// panel title, alert, three inputs, button and help
	formLines = 7
)

// formUpdatedMsg reports that the contact controller changed state,
// possibly from its dispatch goroutine.
type formUpdatedMsg struct{}

// Model is the bubbletea model of the preview.
type Model struct {
	registry *sections.Registry
	t        *i18n.Translator
	tracker  *navsync.Tracker
	location *navsync.MemoryLocation
	hash     *navsync.HashSync
	form     *contact.Controller
	updates  chan struct{}
	stops    []func()

	viewport viewport.Model
	inputs   []textinput.Model
	focus    focus
	bounds   sections.BoundsMap
	width    int
	height   int
}

// New returns a Model ready to be mounted into a Program.
func New(cfg Config) *Model {
	if cfg.Registry == nil {
		cfg.Registry = sections.Default()
	}
	if cfg.Translator == nil {
		cfg.Translator = i18n.Default().Translator("")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	tracker := navsync.NewTracker(cfg.Registry)
	location := navsync.NewMemoryLocation("")
	m := &Model{
		registry: cfg.Registry,
		t:        cfg.Translator,
		tracker:  tracker,
		location: location,
		hash:     navsync.NewHashSync(tracker, location),
		form: contact.NewController(cfg.Submitter,
			contact.WithMessages(contact.MessagesFrom(cfg.Translator.T)),
			contact.WithLogger(cfg.Logger.WithComponent("preview")),
			contact.WithTimeout(cfg.Timeout)),
		updates:  make(chan struct{}, 1),
		viewport: viewport.New(80, 20),
	}
	m.viewport.MouseWheelEnabled = true

	placeholders := []string{"", "name@example.com", cfg.Translator.T("cta.form.field3placeholder")}
	for i := range formFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 500
		in.Placeholder = placeholders[i]
		m.inputs = append(m.inputs, in)
	}

	m.stops = append(m.stops,
		m.hash.Attach(),
		m.form.Observe(func(contact.Update) { m.notify() }),
	)
	m.layout(80, 24)
	return m
}

// Close detaches the model from its tracker and controller.
func (m *Model) Close() {
	for _, stop := range m.stops {
		stop()
	}
	m.stops = nil
}

// Active returns the highlighted section.
func (m *Model) Active() string { return m.tracker.Active() }

// Fragment returns the fragment the preview would show in an address bar.
func (m *Model) Fragment() string { return m.location.Fragment() }

// Contact returns the contact form state.
func (m *Model) Contact() contact.State { return m.form.State() }

// Bounds returns the line ranges of the rendered sections.
func (m *Model) Bounds() sections.BoundsMap { return m.bounds }

// Wait blocks until the contact form has no submission in flight.
func (m *Model) Wait() { m.form.Wait() }

// notify wakes the program without blocking the controller. One pending
// wake-up is enough since the view re-reads the whole state.
func (m *Model) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

func waitForUpdate(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return formUpdatedMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil
	case formUpdatedMsg:
		m.syncInputs()
		return m, waitForUpdate(m.updates)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusBrowse {
			return m.handleBrowseKey(msg)
		}
		return m.handleFormKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.tick()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "c":
		return m, m.setFocus(focusName)
	case "n", "right":
		m.jumpBy(1)
		return m, nil
	case "p", "left":
		m.jumpBy(-1)
		return m, nil
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= m.registry.Len() {
			m.JumpTo(m.registry.IDs()[n-1])
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.tick()
	return m, cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.setFocus(focusBrowse)
	case "tab", "down":
		return m, m.setFocus(m.focus%focusMessage + 1)
	case "shift+tab", "up":
		prev := m.focus - 1
		if prev < focusName {
			prev = focusMessage
		}
		return m, m.setFocus(prev)
	case "ctrl+s":
		m.submit()
		return m, nil
	case "enter":
		if m.focus == focusMessage {
			m.submit()
			return m, nil
		}
		return m, m.setFocus(m.focus + 1)
	}

	idx := int(m.focus) - 1
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	m.form.SetField(formFields[idx], m.inputs[idx].Value())
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if int(f)-1 == i {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) submit() {
	m.form.Submit(context.Background())
}

// syncInputs copies the controller's form into the inputs, which matters
// after a successful submission clears it.
func (m *Model) syncInputs() {
	form := m.form.State().Form
	for i, field := range formFields {
		if v := form.Get(field); m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
}

// JumpTo navigates to a section the way a clicked nav link does: the
// fragment changes first and the tracker follows it.
func (m *Model) JumpTo(id string) {
	if !m.registry.Has(id) {
		return
	}
	m.location.Navigate(sections.Fragment(id))
	m.hash.FragmentChanged(m.location.Fragment())
	if b, ok := m.bounds[id]; ok {
		m.viewport.SetYOffset(int(b.Top))
	}
}

func (m *Model) jumpBy(delta int) {
	ids := m.registry.IDs()
	current := 0
	for i, id := range ids {
		if id == m.tracker.Active() {
			current = i
		}
	}
	next := current + delta
	if next < 0 || next >= len(ids) {
		return
	}
	m.JumpTo(ids[next])
}

func (m *Model) tick() {
	m.tracker.Tick(navsync.Viewport{
		ScrollY: float64(m.viewport.YOffset),
		Height:  float64(m.viewport.Height),
	}, m.bounds)
}

// layout sizes the viewport and re-renders the sections, keeping the line
// bounds the tracker measures against in step with the wrapped text.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height

	vw := width
	if vw < minViewportWidth {
		vw = minViewportWidth
	}
	vh := height - headerLines - formLines
	if vh < minViewportHeight {
		vh = minViewportHeight
	}
	m.viewport.Width = vw
	m.viewport.Height = vh

	for i := range m.inputs {
		m.inputs[i].Width = vw - 12
	}

	content, heights := renderSections(page.AllContent(m.t, m.registry), vw, vh)
	m.viewport.SetContent(content)
	m.bounds = sections.Stack(m.registry, heights)
	m.tick()
}

// renderSections lays the sections out as lines and reports how many lines
// each one takes. The hero fills at least one screen, as it does in the
// browser.
func renderSections(contents []page.Content, width, screen int) (string, map[string]float64) {
	wrap := width - 4
	if wrap < 10 {
		wrap = 10
	}

	var all []string
	heights := make(map[string]float64, len(contents))
	for _, c := range contents {
		var lines []string
		lines = append(lines, sectionTitleStyle.Render(strings.ToUpper(c.Title)))
		if c.Subtitle != "" {
			lines = append(lines, splitLines(subtitleStyle.Render(wordwrap.String(c.Subtitle, wrap)))...)
		}
		for _, item := range c.Items {
			lines = append(lines, itemTitleStyle.Render("• "+item.Title))
			if item.Body != "" {
				lines = append(lines, splitLines(indent(wordwrap.String(item.Body, wrap-2), "  "))...)
			}
		}
		lines = append(lines, "")
		if c.ID == sections.Home {
			for len(lines) < screen {
				lines = append(lines, "")
			}
		}

		heights[c.ID] = float64(len(lines))
		all = append(all, lines...)
	}
	return strings.Join(all, "\n"), heights
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func indent(s, prefix string) string {
	lines := splitLines(s)
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
