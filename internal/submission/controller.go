package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tturner/formfill/internal/logging"
)

var (
	// ErrBusy is returned for edits or submits while a submission is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("controller is closed")
)

// Generator sends one request to the automation service and returns the
// message it answered with.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock used for simulated progress.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithLogger sets the logger for submission events.
func WithLogger(l *logging.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// WithObserver registers fn to receive every new State, in order. fn runs
// on the controller's goroutines and must not call back into the controller.
func WithObserver(fn func(State)) Option {
	return func(ctl *Controller) { ctl.observe = fn }
}

// Controller owns the pending request and the state of the current
// submission. A submission sends exactly one request; while it waits, a
// timer advances a simulated counter that the real response overwrites.
type Controller struct {
	gen     Generator
	clock   Clock
	logger  *logging.Logger
	observe func(State)

	mu     sync.Mutex
	req    Request
	state  State
	done   chan struct{}
	stop   chan struct{}
	closed bool
}

type outcome struct {
	message string
	err     error
}

// NewController returns an idle controller holding initial.
func NewController(gen Generator, initial Request, opts ...Option) *Controller {
	c := &Controller{
		gen:    gen,
		clock:  realClock{},
		logger: logging.NewNopLogger(),
		req:    initial,
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Request returns the pending request.
func (c *Controller) Request() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req
}

// UpdateField changes one field of the pending request. Inputs are frozen
// while a submission is in flight.
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	if c.state.Submitting() {
		c.mu.Unlock()
		return ErrBusy
	}
	req, err := c.req.With(field, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.req = req
	next := c.transition(Edited{})
	c.mu.Unlock()

	c.logger.Debug("field %s = %q", field, value)
	c.notify(next)
	return nil
}

// SetRequest replaces the whole pending request.
func (c *Controller) SetRequest(req Request) error {
	c.mu.Lock()
	if c.state.Submitting() {
		c.mu.Unlock()
		return ErrBusy
	}
	c.req = req
	next := c.transition(Edited{})
	c.mu.Unlock()

	c.notify(next)
	return nil
}

// Submit validates the pending request and starts a submission. It returns
// once the request has been handed to the generator; use Wait or an
// observer to follow progress. ctx bounds the network call only.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Submitting() {
		c.mu.Unlock()
		return ErrBusy
	}
	req := c.req
	if err := req.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}
	next := c.transition(Started{Total: req.Responses})
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	c.logger.LogSubmission(req.FormURL, req.Responses, req.Interval(), string(req.Tone))
	c.notify(next)

	results := make(chan outcome, 1)
	go func() {
		msg, err := c.gen.Generate(ctx, req)
		results <- outcome{message: msg, err: err}
	}()
	go c.run(req, results, done)
	return nil
}

// run is the single reducer for one submission: it owns the progress timer
// and applies the network outcome.
func (c *Controller) run(req Request, results <-chan outcome, done chan struct{}) {
	defer close(done)
	started := time.Now()

	timer := c.clock.NewTimer(req.Interval())
	tick := timer.C()
	defer func() { timer.Stop() }()

	for {
		select {
		case <-tick:
			s := c.apply(Ticked{})
			if s.Completed < s.Total {
				timer = c.clock.NewTimer(req.Interval())
				tick = timer.C()
			} else {
				tick = nil
			}
		case o := <-results:
			timer.Stop()
			var s State
			if o.err != nil {
				c.logger.Error("generate: %v", o.err)
				s = c.apply(Failed{})
			} else {
				s = c.apply(Succeeded{Message: o.message})
			}
			c.logger.LogOutcome(s.Phase.String(), s.Completed, s.Total, s.Message, time.Since(started))
			return
		case <-c.stop:
			return
		}
	}
}

// Wait blocks until the current submission, if any, is no longer in
// flight and returns the resulting state.
func (c *Controller) Wait(ctx context.Context) (State, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return c.State(), nil
	}
	select {
	case <-done:
		return c.State(), nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

// Close tears the controller down. The progress timer is stopped and no
// further state changes are published; an in-flight request is left to
// its context.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.stop)
}

func (c *Controller) apply(e Event) State {
	c.mu.Lock()
	next := c.transition(e)
	c.mu.Unlock()
	c.notify(next)
	return next
}

// transition must be called with c.mu held.
func (c *Controller) transition(e Event) State {
	c.state = Reduce(c.state, e)
	return c.state
}

func (c *Controller) notify(s State) {
	if c.observe != nil {
		c.observe(s)
	}
}
