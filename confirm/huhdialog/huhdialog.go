//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package huhdialog implements confirmation surfaces as terminal forms.
package huhdialog

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"go.bug.st/widgets/confirm"
)

// Service builds confirmation surfaces that ask on the terminal.
type Service struct {
	theme *huh.Theme
	width int
	log   *zap.Logger
	// ask runs the form and returns the user choice. Replaced in tests.
	ask func(form *huh.Form, confirmed *bool) error
}

// New returns a Service using the default theme.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		theme: Theme(),
		width: 80,
		log:   log,
		ask: func(form *huh.Form, _ *bool) error {
			return form.Run()
		},
	}
}

// Create implements confirm.Service.
func (s *Service) Create(d confirm.Descriptor) confirm.Surface {
	return &surface{s: s, d: d}
}

type surface struct {
	s *Service
	d confirm.Descriptor
}

func (f *surface) form(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(f.d.Header).
				Description(f.d.Prompt).
				Value(confirmed).
				Affirmative(f.d.OK.Caption).
				Negative(f.d.Cancel.Caption),
		),
	).
		WithTheme(f.s.theme).
		WithWidth(f.s.width).
		WithShowHelp(false).
		WithShowErrors(false)
}

// Open asks the question and runs the chosen handler. An aborted form
// counts as cancel.
func (f *surface) Open() {
	confirmed := false
	if err := f.s.ask(f.form(&confirmed), &confirmed); err != nil {
		f.s.log.Debug("confirmation aborted", zap.String("header", f.d.Header), zap.Error(err))
		f.d.Cancel.Run()
		return
	}
	if confirmed {
		f.d.OK.Run()
		return
	}
	f.d.Cancel.Run()
}

// Theme returns the form theme: the affirmative button takes the error
// color of a delete button.
func Theme() *huh.Theme {
	errorColor := lipgloss.Color("#bf5d47")
	fg := lipgloss.Color("#dddddd")
	fgMuted := lipgloss.Color("#7f7f7f")
	bg := lipgloss.Color("#101012")

	theme := huh.ThemeBase16()
	base := lipgloss.NewStyle().Foreground(fg)

	theme.Focused.Title = base.Foreground(errorColor).Bold(true)
	theme.Focused.Description = base
	theme.Focused.FocusedButton = base.Background(errorColor).Foreground(bg).Bold(true).Padding(0, 2)
	theme.Focused.BlurredButton = base.Foreground(fgMuted).Padding(0, 2)
	theme.Blurred.Title = base.Foreground(fgMuted)
	theme.Blurred.Description = base
	return theme
}
