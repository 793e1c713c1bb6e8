//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package ui is a minimal host for the widgets: it serializes changes to
// the UI state on a single goroutine and lets the browser poll for
// notifications and open confirmation dialogs.
package ui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned when a closure is handed to a closed UI.
var ErrClosed = errors.New("ui is closed")

// UI owns the state of one browser session. Every change to that state
// should go through Access, from any goroutine.
type UI struct {
	log *zap.Logger

	queueLock sync.Mutex
	queue     []func()
	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	lock          sync.Mutex
	pollInterval  time.Duration
	notifications []string
	dialogs       []*DialogService
}

// New starts a UI. Close must be called to release its goroutine.
func New(log *zap.Logger) *UI {
	if log == nil {
		log = zap.NewNop()
	}
	u := &UI{
		log:  log,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go u.loop()
	return u
}

func (u *UI) loop() {
	defer close(u.done)
	for {
		select {
		case <-u.wake:
			u.drain()
		case <-u.quit:
			return
		}
	}
}

func (u *UI) drain() {
	for {
		u.queueLock.Lock()
		if len(u.queue) == 0 {
			u.queueLock.Unlock()
			return
		}
		fn := u.queue[0]
		u.queue[0] = nil
		u.queue = u.queue[1:]
		u.queueLock.Unlock()
		u.run(fn)
	}
}

func (u *UI) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			u.log.Error("ui access panicked", zap.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}

func (u *UI) enqueue(fn func()) error {
	select {
	case <-u.quit:
		return ErrClosed
	default:
	}
	u.queueLock.Lock()
	u.queue = append(u.queue, fn)
	u.queueLock.Unlock()
	select {
	case u.wake <- struct{}{}:
	default:
	}
	return nil
}

// Access schedules fn to run on the UI goroutine. Closures run one at a
// time in the order they were handed over. It never blocks, so it can be
// called from within another closure.
func (u *UI) Access(fn func()) {
	if err := u.enqueue(fn); err != nil {
		u.log.Debug("ui access dropped", zap.Error(err))
	}
}

// AccessSync runs fn on the UI goroutine and waits for it. It must not be
// called from the UI goroutine itself.
func (u *UI) AccessSync(fn func()) error {
	finished := make(chan struct{})
	if err := u.enqueue(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-u.done:
		return ErrClosed
	}
}

// Close stops the UI goroutine and waits for it. Closures still queued are
// dropped.
func (u *UI) Close() {
	u.closeOnce.Do(func() { close(u.quit) })
	<-u.done
}

// SetPollInterval sets how often the browser should poll for updates. A
// zero interval disables polling.
func (u *UI) SetPollInterval(d time.Duration) {
	u.lock.Lock()
	u.pollInterval = d
	u.lock.Unlock()
}

// PollInterval returns the poll interval.
func (u *UI) PollInterval() time.Duration {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.pollInterval
}

// Notify queues a notification for the browser.
func (u *UI) Notify(msg string) {
	u.lock.Lock()
	u.notifications = append(u.notifications, msg)
	u.lock.Unlock()
}

// DialogView is an open dialog as seen by the browser.
type DialogView struct {
	ID     string `json:"id"`
	Header string `json:"header"`
	Prompt string `json:"prompt"`
	OK     string `json:"ok"`
	Cancel string `json:"cancel"`
}

// PollResponse is the state the browser picks up at each poll.
type PollResponse struct {
	PollIntervalMillis int64        `json:"pollIntervalMillis"`
	Notifications      []string     `json:"notifications"`
	Dialogs            []DialogView `json:"dialogs"`
}

// Poll returns the pending notifications, removing them from the queue,
// and the dialogs currently open.
func (u *UI) Poll() PollResponse {
	u.lock.Lock()
	res := PollResponse{
		PollIntervalMillis: u.pollInterval.Milliseconds(),
		Notifications:      u.notifications,
	}
	u.notifications = nil
	dialogs := append([]*DialogService(nil), u.dialogs...)
	u.lock.Unlock()

	if res.Notifications == nil {
		res.Notifications = []string{}
	}
	res.Dialogs = []DialogView{}
	for _, d := range dialogs {
		res.Dialogs = append(res.Dialogs, d.openViews()...)
	}
	return res
}

func (u *UI) register(d *DialogService) {
	u.lock.Lock()
	u.dialogs = append(u.dialogs, d)
	u.lock.Unlock()
}
