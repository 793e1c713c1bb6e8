//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package ui

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go.bug.st/widgets/confirm"
)

var (
	// ErrUnknownDialog is returned when deciding on a dialog that was never
	// created.
	ErrUnknownDialog = errors.New("unknown dialog")
	// ErrDialogNotOpen is returned when deciding on a dialog that is not
	// waiting for a decision.
	ErrDialogNotOpen = errors.New("dialog is not open")
)

// DialogService builds confirmation surfaces shown in the browser. The
// browser discovers open dialogs through UI.Poll and answers with Decide.
type DialogService struct {
	ui *UI

	lock     sync.Mutex
	order    []string
	surfaces map[string]*dialog
}

type dialog struct {
	id       string
	d        confirm.Descriptor
	open     bool
	deciding bool
	svc      *DialogService
}

// NewDialogService returns a DialogService attached to u.
func NewDialogService(u *UI) *DialogService {
	s := &DialogService{
		ui:       u,
		surfaces: map[string]*dialog{},
	}
	u.register(s)
	return s
}

// Create implements confirm.Service.
func (s *DialogService) Create(d confirm.Descriptor) confirm.Surface {
	dl := &dialog{id: uuid.NewString(), d: d, svc: s}
	s.lock.Lock()
	s.surfaces[dl.id] = dl
	s.order = append(s.order, dl.id)
	s.lock.Unlock()
	s.ui.log.Debug("dialog created", zap.String("dialog", dl.id), zap.String("header", d.Header))
	return dl
}

// Open shows the dialog. Opening an open dialog does nothing.
func (dl *dialog) Open() {
	dl.svc.lock.Lock()
	dl.open = true
	dl.svc.lock.Unlock()
}

// IsOpen reports whether the dialog with the given ID waits for a decision.
func (s *DialogService) IsOpen(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	dl, ok := s.surfaces[id]
	return ok && dl.open && !dl.deciding
}

// Decide runs the confirm or cancel handler of an open dialog on the UI
// goroutine, then closes the dialog. Each opening accepts one decision.
func (s *DialogService) Decide(id string, confirmed bool) error {
	s.lock.Lock()
	dl, ok := s.surfaces[id]
	if !ok {
		s.lock.Unlock()
		return ErrUnknownDialog
	}
	if !dl.open || dl.deciding {
		s.lock.Unlock()
		return ErrDialogNotOpen
	}
	dl.deciding = true
	s.lock.Unlock()

	opt := dl.d.Cancel
	if confirmed {
		opt = dl.d.OK
	}
	err := s.ui.AccessSync(opt.Run)

	s.lock.Lock()
	dl.open = false
	dl.deciding = false
	s.lock.Unlock()
	s.ui.log.Debug("dialog decided", zap.String("dialog", id), zap.Bool("confirmed", confirmed))
	return err
}

func (s *DialogService) openViews() []DialogView {
	s.lock.Lock()
	defer s.lock.Unlock()
	var res []DialogView
	for _, id := range s.order {
		dl := s.surfaces[id]
		if !dl.open || dl.deciding {
			continue
		}
		res = append(res, DialogView{
			ID:     dl.id,
			Header: dl.d.Header,
			Prompt: dl.d.Prompt,
			OK:     dl.d.OK.Caption,
			Cancel: dl.d.Cancel.Caption,
		})
	}
	return res
}
