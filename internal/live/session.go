package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/navsync"
	"github.com/byteik/site/internal/page"
	"github.com/byteik/site/internal/sections"
)

const defaultBuffer = 64

// Config configures a Session.
type Config struct {
	Registry   *sections.Registry
	Translator *i18n.Translator
	Submitter  contact.Submitter
	Timeout    time.Duration
	Logger     logging.Logger
	// Buffer is the number of patches queued before new ones are dropped.
	Buffer int
}

// Session is the state of one open page: its navigation tracker, fragment
// synchronizer, contact form and mobile menu. Patches describing every
// visible change are delivered on Patches until Close.
type Session struct {
	translator *i18n.Translator
	tracker    *navsync.Tracker
	hash       *navsync.HashSync
	location   *patchLocation
	form       *contact.Controller
	logger     logging.Logger

	mu       sync.Mutex
	closed   bool
	menuOpen bool
	scrolled bool
	out      chan Patch
	stops    []func()
}

// NewSession wires a tracker, hash synchronizer and contact controller and
// subscribes to all three. Call Close to release the subscriptions.
func NewSession(cfg Config) *Session {
	if cfg.Translator == nil {
		cfg.Translator = i18n.Default().Translator("")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}

	s := &Session{
		translator: cfg.Translator,
		tracker:    navsync.NewTracker(cfg.Registry),
		logger:     cfg.Logger.WithComponent("live"),
		out:        make(chan Patch, cfg.Buffer),
	}
	s.location = &patchLocation{emit: s.emit}
	s.hash = navsync.NewHashSync(s.tracker, s.location)
	s.form = contact.NewController(cfg.Submitter,
		contact.WithMessages(contact.MessagesFrom(cfg.Translator.T)),
		contact.WithLogger(cfg.Logger),
		contact.WithTimeout(cfg.Timeout),
	)

	s.stops = append(s.stops,
		s.tracker.Subscribe(s.onNavigation),
		s.hash.Attach(),
		s.form.Observe(s.onForm),
	)
	return s
}

// Patches delivers updates for the browser. The channel is closed by Close.
func (s *Session) Patches() <-chan Patch {
	return s.out
}

// Mount initializes the session from the fragment the page was loaded with
// and sends the submit button state. The server-rendered button is enabled
// so that the form can be posted without the script.
func (s *Session) Mount(fragment string) {
	s.location.Navigate(fragment)
	s.hash.FragmentChanged(fragment)
	s.emit(s.formPatch(s.form.State(), false))
}

// Handle applies one browser event.
func (s *Session) Handle(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventScroll:
		s.tracker.Tick(ev.Viewport, sections.NewBoundsMap(ev.Sections))
		s.syncScrolled()
		return nil

	case EventHashChange:
		s.location.Navigate(ev.Fragment)
		s.hash.FragmentChanged(ev.Fragment)
		s.setMenu(false)
		return nil

	case EventInput:
		field, ok := contact.ParseField(ev.Field)
		if !ok {
			return errors.NewValidationError(errors.ErrCodeMalformedRequest,
				fmt.Sprintf("unknown form field %q", ev.Field))
		}
		s.form.SetField(field, ev.Value)
		return nil

	case EventSubmit:
		s.form.Submit(ctx)
		return nil

	case EventMenu:
		s.setMenu(ev.Open)
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeMalformedRequest,
		fmt.Sprintf("unknown event type %q", ev.Type))
}

// Active returns the active section id.
func (s *Session) Active() string {
	return s.tracker.Active()
}

// Fragment returns the fragment the browser currently shows.
func (s *Session) Fragment() string {
	return s.location.Fragment()
}

// Contact returns the contact form state.
func (s *Session) Contact() contact.State {
	return s.form.State()
}

// MenuOpen reports whether the mobile menu is open.
func (s *Session) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

// Wait blocks until no contact submission is in flight.
func (s *Session) Wait() {
	s.form.Wait()
}

// Close unsubscribes from every source and closes Patches. Updates that
// arrive afterwards, such as a submission completing, are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stops := s.stops
	s.stops = nil
	close(s.out)
	s.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}

func (s *Session) onNavigation(c navsync.Change) {
	s.emit(Patch{Op: OpNav, Active: c.Active})
}

// onForm patches the button on every form change. Field values are only
// sent when the server replaced them itself, as on the reset after a
// successful submission; echoing typed input back would race the keyboard.
func (s *Session) onForm(u contact.Update) {
	if u.From.Form != u.To.Form || u.From.Status != u.To.Status {
		reset := u.From.Status != u.To.Status && u.From.Form != u.To.Form
		s.emit(s.formPatch(u.To, reset))
	}
	if u.From.Alert != u.To.Alert {
		banner := contact.Present(u.To.Alert)
		s.emit(Patch{Op: OpAlert, Alert: &banner})
	}
}

func (s *Session) formPatch(state contact.State, withValues bool) Patch {
	p := Patch{
		Op:            OpForm,
		SubmitEnabled: contact.SubmitEnabled(state),
		SubmitLabel:   page.SubmitLabel(s.translator, state),
	}
	if withValues {
		form := state.Form
		p.Form = &form
	}
	return p
}

func (s *Session) syncScrolled() {
	scrolled := s.tracker.Scrolled()
	s.mu.Lock()
	changed := scrolled != s.scrolled
	s.scrolled = scrolled
	s.mu.Unlock()
	if changed {
		s.emit(Patch{Op: OpHeader, Scrolled: scrolled})
	}
}

func (s *Session) setMenu(open bool) {
	s.mu.Lock()
	changed := open != s.menuOpen
	s.menuOpen = open
	s.mu.Unlock()
	if changed {
		s.emit(Patch{Op: OpMenu, Open: open})
	}
}

func (s *Session) emit(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.out <- p:
	default:
		s.logger.Warn(context.Background(), nil, "Dropping patch, client is not reading", "op", p.Op)
	}
}

// patchLocation is the browser's address bar as seen from the server.
// ReplaceFragment is forwarded as a fragment patch that the script applies
// with history.replaceState.
type patchLocation struct {
	mu       sync.Mutex
	fragment string
	emit     func(Patch)
}

// Fragment implements navsync.Location.
func (l *patchLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

// ReplaceFragment implements navsync.Location.
func (l *patchLocation) ReplaceFragment(fragment string) {
	l.mu.Lock()
	l.fragment = fragment
	l.mu.Unlock()
	l.emit(Patch{Op: OpFragment, Fragment: fragment})
}

// Navigate records a fragment the browser changed on its own.
func (l *patchLocation) Navigate(fragment string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fragment = fragment
}
