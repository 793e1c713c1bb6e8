//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package ui

import "time"

// Delayed is a closure scheduled by After.
type Delayed struct {
	timer *time.Timer
}

// Stop prevents the closure from being handed to the UI. It returns false
// if it was already handed over.
func (d *Delayed) Stop() bool {
	return d.timer.Stop()
}

// After hands fn to u.Access once delay has elapsed. It is the way to run
// host-driven state changes later, such as re-enabling a control after a
// cooldown.
func After(u *UI, delay time.Duration, fn func()) *Delayed {
	return &Delayed{timer: time.AfterFunc(delay, func() {
		u.Access(fn)
	})}
}

// Enabler is a control that can be re-enabled by the host.
type Enabler interface {
	SetEnabled(enabled bool)
}

// ReenableAfter re-enables c on the UI goroutine after delay.
func ReenableAfter(u *UI, delay time.Duration, c Enabler) *Delayed {
	return After(u, delay, func() { c.SetEnabled(true) })
}
