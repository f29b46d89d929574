package contact

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/logging"
)

// Submitter delivers a validated form to the persistence endpoint. Any
// returned error is a failed submission.
type Submitter interface {
	Submit(ctx context.Context, form Form) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, form Form) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, form Form) error {
	return f(ctx, form)
}

// Update is delivered to observers after every state change.
type Update struct {
	From    State
	To      State
	Outcome Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithMessages sets the alert texts.
func WithMessages(m Messages) Option {
	return func(c *Controller) { c.messages = m }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l.WithComponent("contact") }
}

// WithTimeout bounds each submission call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

type observer struct {
	id int
	fn func(Update)
}

// Controller runs Reduce against a Submitter. It guarantees at most one
// submission in flight: the sending status is checked and set under one
// lock, so concurrent Submit calls dispatch exactly once.
type Controller struct {
	submitter Submitter
	messages  Messages
	logger    logging.Logger
	timeout   time.Duration

	mu        sync.Mutex
	state     State
	observers []observer
	nextID    int
	inflight  sync.WaitGroup
}

// NewController creates an idle controller with an empty form.
func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter: submitter,
		messages:  DefaultMessages(),
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitEnabled evaluates the submit button predicate on the current state.
func (c *Controller) SubmitEnabled() bool {
	return SubmitEnabled(c.State())
}

// SetField records user input.
func (c *Controller) SetField(field Field, value string) {
	c.apply(Event{Kind: EventInput, Field: field, Value: value})
}

// Submit validates and, if allowed, dispatches the current form
// asynchronously. It reports whether a request was dispatched.
//
// The request outlives ctx cancellation: callers that go away only stop
// observing; the outcome is still applied to the controller.
func (c *Controller) Submit(ctx context.Context) bool {
	effect := c.apply(Event{Kind: EventSubmit})
	if !effect.Dispatch {
		return false
	}

	go c.dispatch(context.WithoutCancel(ctx), effect.Snapshot)
	return true
}

// Wait blocks until no submission is in flight.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Observe registers fn for every state change. The returned func removes it.
func (c *Controller) Observe(fn func(Update)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, o := range c.observers {
				if o.id == id {
					c.observers = append(c.observers[:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Controller) apply(ev Event) Effect {
	c.mu.Lock()
	from := c.state
	to, effect := Reduce(from, ev, c.messages)
	c.state = to
	if effect.Dispatch {
		c.inflight.Add(1)
	}
	var fns []func(Update)
	if to != from {
		fns = make([]func(Update), len(c.observers))
		for i, o := range c.observers {
			fns[i] = o.fn
		}
	}
	c.mu.Unlock()

	update := Update{From: from, To: to, Outcome: Outcome(ev)}
	for _, fn := range fns {
		fn(update)
	}
	return effect
}

func (c *Controller) dispatch(ctx context.Context, form Form) {
	defer c.inflight.Done()

	err := c.call(ctx, form)
	if err != nil {
		c.logger.Warn(ctx, err, "Contact submission failed")
		c.apply(Event{Kind: EventFailed, Err: err})
		return
	}

	c.logger.Info(ctx, "Contact submission delivered")
	c.apply(Event{Kind: EventSucceeded})
}

// call invokes the submitter and converts every failure, including a
// panic, into a submission error.
func (c *Controller) call(ctx context.Context, form Form) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "contact submission panicked",
				fmt.Errorf("%v", r))
		}
	}()

	if c.submitter == nil {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "no submitter configured", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.submitter.Submit(ctx, form); err != nil {
		return errors.Wrap(err, errors.ErrorTypeNetwork, errors.ErrCodeSubmissionFailed, "contact submission failed")
	}
	return nil
}
