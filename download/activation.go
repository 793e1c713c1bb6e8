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
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when a disabled Trigger is activated.
	ErrDisabled = errors.New("download trigger is disabled")
	// ErrCancelled marks an activation that was stopped before the producer
	// completed.
	ErrCancelled = errors.New("download cancelled")
	// ErrProducerPanic wraps a panic raised by a Producer.
	ErrProducerPanic = errors.New("producer panicked")
)

// State is the state of an Activation.
type State int

const (
	StateIdle State = iota
	StateOpened
	StateWriting
	StateClosed
	StateFinished
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpened:
		return "opened"
	case StateWriting:
		return "writing"
	case StateClosed:
		return "closed"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome is the terminal result of an activation.
type Outcome int

const (
	OutcomeFinished Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) state() State {
	switch o {
	case OutcomeFinished:
		return StateFinished
	case OutcomeCancelled:
		return StateCancelled
	}
	return StateFailed
}

// Result is the outcome of a single activation.
type Result struct {
	ActivationID string
	Name         string
	Outcome      Outcome
	BytesWritten int64
	// Err is nil for OutcomeFinished. For OutcomeCancelled it always
	// matches ErrCancelled with errors.Is.
	Err error
}

// Channel is the output channel of an activation. It is owned by the
// activation that opened it and must not be used after the Producer
// returns.
type Channel struct {
	a   *Activation
	out io.Writer
	ctx context.Context
}

// Name returns the artifact name resolved for this activation.
func (c *Channel) Name() string {
	return c.a.Name
}

// Context is cancelled when the activation is cancelled, when the client
// goes away or when the inactivity timeout expires. Long running producers
// should check it between writes.
func (c *Channel) Context() context.Context {
	return c.ctx
}

// Written returns the bytes written so far.
func (c *Channel) Written() int64 {
	return c.a.Written()
}

// Write sends p to the client.
func (c *Channel) Write(p []byte) (int, error) {
	if err := context.Cause(c.ctx); err != nil {
		return 0, err
	}
	c.a.setState(StateWriting)
	n, err := c.out.Write(p)
	if n > 0 {
		c.a.addWritten(int64(n))
		c.a.wd.Kick()
	}
	return n, err
}

// Activation is a single run of a Trigger. It is created by Trigger.Start
// with its output channel already opened.
type Activation struct {
	ID   string
	Name string
	// Done is closed when the activation reached a terminal state and the
	// listeners have been dispatched.
	Done chan struct{}

	trigger  *Trigger
	producer Producer
	ch       *Channel
	wd       *watchdog
	config   Config
	log      *zap.Logger

	lock    sync.Mutex
	state   State
	written int64
	result  Result
	started bool
}

// State returns the current state of the activation.
func (a *Activation) State() State {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.state
}

// Written returns the bytes sent to the client so far.
func (a *Activation) Written() int64 {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.written
}

// Result returns the result of the activation. It is meaningful only after
// Done has been closed.
func (a *Activation) Result() Result {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.result
}

func (a *Activation) setState(s State) {
	a.lock.Lock()
	a.state = s
	a.lock.Unlock()
}

func (a *Activation) addWritten(n int64) {
	a.lock.Lock()
	a.written += n
	a.lock.Unlock()
}

// Run runs the producer and waits until it completes. The producer is run
// only once: further calls wait for the first run and return its result.
// If the configuration has a PollInterval and a PollFunction, progress is
// reported while the producer runs.
func (a *Activation) Run() Result {
	if a.config.PollInterval > 0 && a.config.PollFunction != nil {
		return a.RunAndPoll(func(written int64) {
			a.config.PollFunction(a.Name, written)
		}, a.config.PollInterval)
	}
	return a.run()
}

// RunAndPoll starts the producer and calls the poll function every
// interval time to update progress.
func (a *Activation) RunAndPoll(poll func(written int64), interval time.Duration) Result {
	t := time.NewTicker(interval)
	defer t.Stop()

	go a.run()
	for {
		select {
		case <-t.C:
			poll(a.Written())
		case <-a.Done:
			poll(a.Written())
			return a.Result()
		}
	}
}

func (a *Activation) run() Result {
	a.lock.Lock()
	if a.started {
		a.lock.Unlock()
		<-a.Done
		return a.Result()
	}
	a.started = true
	a.lock.Unlock()
	defer close(a.Done)

	err := a.produce()
	a.wd.Stop()
	a.setState(StateClosed)

	res := a.classify(err)
	a.lock.Lock()
	a.result = res
	a.state = res.Outcome.state()
	a.lock.Unlock()

	a.log.Debug("download closed",
		zap.String("activation", a.ID),
		zap.String("file", a.Name),
		zap.Int64("bytes", res.BytesWritten),
		zap.Stringer("outcome", res.Outcome),
		zap.Error(res.Err))
	a.trigger.finish(a, res)
	return res
}

func (a *Activation) produce() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProducerPanic, r)
		}
	}()
	return a.producer(a.ch)
}

func (a *Activation) classify(err error) Result {
	res := Result{
		ActivationID: a.ID,
		Name:         a.Name,
		BytesWritten: a.Written(),
	}
	if errors.Is(err, context.Canceled) && !errors.Is(err, ErrCancelled) {
		// A producer returning ctx.Err() hides why the context was
		// cancelled: an inactivity timeout is a failure, not a cancel.
		cause := context.Cause(a.ch.ctx)
		if cause != nil && !errors.Is(cause, context.Canceled) {
			err = fmt.Errorf("%w: %w", err, cause)
		}
	}
	switch {
	case err == nil:
		res.Outcome = OutcomeFinished
	case errors.Is(err, os.ErrDeadlineExceeded):
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("producing %s: %w", a.Name, err)
	case errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled):
		res.Outcome = OutcomeCancelled
		if !errors.Is(err, ErrCancelled) {
			err = fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		res.Err = fmt.Errorf("producing %s: %w", a.Name, err)
	default:
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("producing %s: %w", a.Name, err)
	}
	return res
}
