//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Producer writes the content of the artifact to the given Channel. A
// non-nil error marks the download as failed (or cancelled if it matches
// ErrCancelled or context.Canceled). Anything written before the error has
// already been sent to the client.
type Producer func(ch *Channel) error

// FileNamer computes the artifact name at the start of each activation.
type FileNamer func(r *http.Request) string

// Dispatcher runs a function with exclusive access to the UI state. It is
// used to deliver listener notifications on the UI's own goroutine.
type Dispatcher interface {
	Access(fn func())
}

// FinishedEvent is delivered when a producer returns without error.
type FinishedEvent struct {
	Trigger *Trigger
	Result  Result
}

// FailedEvent is delivered when a producer fails or is cancelled.
type FailedEvent struct {
	Trigger *Trigger
	Result  Result
}

// Err returns the error that made the download fail.
func (e FailedEvent) Err() error {
	return e.Result.Err
}

// Cancelled reports whether the download was cancelled rather than failed.
func (e FailedEvent) Cancelled() bool {
	return e.Result.Outcome == OutcomeCancelled
}

// Registration removes a listener added to a Trigger.
type Registration struct {
	remove func()
}

// Remove unregisters the listener. It is safe to call more than once.
func (r Registration) Remove() {
	if r.remove != nil {
		r.remove()
	}
}

type finishedListener struct{ fn func(FinishedEvent) }
type failedListener struct{ fn func(FailedEvent) }

// Trigger is a control that, when activated, streams the output of a
// Producer to the client.
type Trigger struct {
	lock           sync.Mutex
	label          string
	fileName       string
	namer          FileNamer
	path           string
	producer       Producer
	disableOnClick bool
	enabled        bool
	button         bool
	finished       []*finishedListener
	failed         []*failedListener
	dispatcher     Dispatcher
	config         Config
	running        map[string]*Activation
}

// New returns a Trigger labelled label that downloads fileName using the
// default configuration.
func New(label, fileName string, producer Producer) *Trigger {
	return NewWithConfig(label, fileName, producer, GetDefaultConfig())
}

// NewWithConfig returns a Trigger with the given configuration.
func NewWithConfig(label, fileName string, producer Producer, config Config) *Trigger {
	return &Trigger{
		label:    label,
		fileName: fileName,
		producer: producer,
		enabled:  true,
		config:   config,
		running:  map[string]*Activation{},
	}
}

// Label returns the text shown on the control.
func (t *Trigger) Label() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.label
}

// SetLabel sets the text shown on the control.
func (t *Trigger) SetLabel(label string) {
	t.lock.Lock()
	t.label = label
	t.lock.Unlock()
}

// FileName returns the static artifact name.
func (t *Trigger) FileName() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.fileName
}

// SetFileName sets the static artifact name. It is ignored when a
// FileNamer is set.
func (t *Trigger) SetFileName(name string) {
	t.lock.Lock()
	t.fileName = name
	t.lock.Unlock()
}

// WithFileName is the chainable form of SetFileName.
func (t *Trigger) WithFileName(name string) *Trigger {
	t.SetFileName(name)
	return t
}

// SetFileNamer makes the artifact name computed at each activation.
func (t *Trigger) SetFileNamer(namer FileNamer) {
	t.lock.Lock()
	t.namer = namer
	t.lock.Unlock()
}

// WithFileNamer is the chainable form of SetFileNamer.
func (t *Trigger) WithFileNamer(namer FileNamer) *Trigger {
	t.SetFileNamer(namer)
	return t
}

// SetDisableOnClick makes the trigger disable itself when activated. It
// stays disabled until SetEnabled(true) is called by the host.
func (t *Trigger) SetDisableOnClick(disable bool) {
	t.lock.Lock()
	t.disableOnClick = disable
	t.lock.Unlock()
}

// WithDisableOnClick is the chainable form of SetDisableOnClick.
func (t *Trigger) WithDisableOnClick(disable bool) *Trigger {
	t.SetDisableOnClick(disable)
	return t
}

// IsEnabled reports whether the trigger accepts activations.
func (t *Trigger) IsEnabled() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.enabled
}

// SetEnabled enables or disables the trigger. When called from a goroutine
// other than the UI's, it should be run through the UI hand-off so that the
// change is serialized with rendering.
func (t *Trigger) SetEnabled(enabled bool) {
	t.lock.Lock()
	t.enabled = enabled
	t.lock.Unlock()
}

// WithEnabled is the chainable form of SetEnabled.
func (t *Trigger) WithEnabled(enabled bool) *Trigger {
	t.SetEnabled(enabled)
	return t
}

// AsButton makes the trigger render as a click-only button instead of a
// link and returns it.
func (t *Trigger) AsButton() *Trigger {
	t.lock.Lock()
	t.button = true
	t.lock.Unlock()
	return t
}

// IsButton reports whether AsButton has been called.
func (t *Trigger) IsButton() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.button
}

// Path returns the URL path the trigger is served at.
func (t *Trigger) Path() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.path
}

// SetPath sets the URL path the trigger is served at, used when rendering.
func (t *Trigger) SetPath(path string) {
	t.lock.Lock()
	t.path = path
	t.lock.Unlock()
}

// SetDispatcher sets the Dispatcher used to deliver listener notifications.
// With no dispatcher, listeners run on the goroutine that ran the producer.
func (t *Trigger) SetDispatcher(d Dispatcher) {
	t.lock.Lock()
	t.dispatcher = d
	t.lock.Unlock()
}

// Config returns a copy of the trigger configuration.
func (t *Trigger) Config() Config {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.config
}

// AddDownloadFinishedListener registers fn to be called after a producer
// returns without error. Listeners are called in registration order.
func (t *Trigger) AddDownloadFinishedListener(fn func(FinishedEvent)) Registration {
	l := &finishedListener{fn: fn}
	t.lock.Lock()
	t.finished = append(t.finished, l)
	t.lock.Unlock()
	return Registration{remove: func() {
		t.lock.Lock()
		defer t.lock.Unlock()
		for i, x := range t.finished {
			if x == l {
				t.finished = append(t.finished[:i:i], t.finished[i+1:]...)
				return
			}
		}
	}}
}

// AddDownloadFailedListener registers fn to be called after a producer
// fails or is cancelled. Listeners are called in registration order.
func (t *Trigger) AddDownloadFailedListener(fn func(FailedEvent)) Registration {
	l := &failedListener{fn: fn}
	t.lock.Lock()
	t.failed = append(t.failed, l)
	t.lock.Unlock()
	return Registration{remove: func() {
		t.lock.Lock()
		defer t.lock.Unlock()
		for i, x := range t.failed {
			if x == l {
				t.failed = append(t.failed[:i:i], t.failed[i+1:]...)
				return
			}
		}
	}}
}

// Start opens a new activation on the given transport. The artifact name is
// resolved before the transport is opened. The returned Activation has not
// run the producer yet: call Run on it.
func (t *Trigger) Start(ctx context.Context, r *http.Request, tr Transport) (*Activation, error) {
	t.lock.Lock()
	if !t.enabled {
		t.lock.Unlock()
		return nil, ErrDisabled
	}
	if t.disableOnClick {
		t.enabled = false
	}
	name, namer, producer, config := t.fileName, t.namer, t.producer, t.config
	t.lock.Unlock()

	if namer != nil {
		name = namer(r)
	}
	id := uuid.NewString()
	log := config.logger()

	out, err := tr.Open(name)
	if err != nil {
		err = fmt.Errorf("opening output channel for %s: %w", name, err)
		log.Warn("download not opened", zap.String("activation", id), zap.String("file", name), zap.Error(err))
		t.notify(Result{ActivationID: id, Name: name, Outcome: OutcomeFailed, Err: err})
		return nil, err
	}

	actx, wd := newWatchdog(ctx, config.InactivityTimeout)
	a := &Activation{
		ID:       id,
		Name:     name,
		Done:     make(chan struct{}),
		trigger:  t,
		producer: producer,
		wd:       wd,
		config:   config,
		log:      log,
		state:    StateOpened,
	}
	a.ch = &Channel{a: a, out: out, ctx: actx}

	t.lock.Lock()
	t.running[id] = a
	t.lock.Unlock()
	log.Debug("download opened", zap.String("activation", id), zap.String("file", name))
	return a, nil
}

// Activate starts an activation and runs its producer to completion.
func (t *Trigger) Activate(ctx context.Context, r *http.Request, tr Transport) (Result, error) {
	a, err := t.Start(ctx, r, tr)
	if err != nil {
		return Result{}, err
	}
	return a.Run(), nil
}

// Cancel asks every running activation to stop. Cancellation is
// cooperative: producers see it through their Channel context and through
// failing writes.
func (t *Trigger) Cancel(cause error) {
	if cause == nil {
		cause = ErrCancelled
	} else if !errors.Is(cause, ErrCancelled) {
		cause = fmt.Errorf("%w: %w", ErrCancelled, cause)
	}
	t.lock.Lock()
	running := make([]*Activation, 0, len(t.running))
	for _, a := range t.running {
		running = append(running, a)
	}
	t.lock.Unlock()
	for _, a := range running {
		a.wd.Abort(cause)
	}
}

// Running returns the number of activations whose producer has not
// completed yet.
func (t *Trigger) Running() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.running)
}

// ServeHTTP activates the trigger and streams the artifact in the response.
// A disabled trigger answers 409 Conflict.
func (t *Trigger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	config := t.Config()
	res, err := t.Activate(r.Context(), r, &HTTPTransport{
		W:            w,
		ContentType:  config.contentType(),
		ExtraHeaders: config.ExtraHeaders,
	})
	if errors.Is(err, ErrDisabled) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Outcome != OutcomeFinished {
		config.logger().Info("download did not finish",
			zap.String("activation", res.ActivationID),
			zap.String("file", res.Name),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(res.Err))
	}
}

func (t *Trigger) finish(a *Activation, res Result) {
	t.lock.Lock()
	delete(t.running, a.ID)
	t.lock.Unlock()
	t.notify(res)
}

func (t *Trigger) notify(res Result) {
	t.lock.Lock()
	dispatcher := t.dispatcher
	var deliver func()
	if res.Outcome == OutcomeFinished {
		listeners := append([]*finishedListener(nil), t.finished...)
		deliver = func() {
			ev := FinishedEvent{Trigger: t, Result: res}
			for _, l := range listeners {
				l.fn(ev)
			}
		}
	} else {
		listeners := append([]*failedListener(nil), t.failed...)
		deliver = func() {
			ev := FailedEvent{Trigger: t, Result: res}
			for _, l := range listeners {
				l.fn(ev)
			}
		}
	}
	t.lock.Unlock()

	if dispatcher != nil {
		dispatcher.Access(deliver)
		return
	}
	deliver()
}
