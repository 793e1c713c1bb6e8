//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package confirm provides a button that asks the user for confirmation
// before running its action.
package confirm

import (
	"sync"

	"go.uber.org/zap"
)

// Option is one of the two buttons of a confirmation surface.
type Option struct {
	Caption string
	Handler func()
	Themes  []string
	// Icon is the icon name shown next to the caption, empty for none.
	Icon string
}

// Run calls the handler, if any.
func (o Option) Run() {
	if o.Handler != nil {
		o.Handler()
	}
}

// Descriptor is the finalized configuration of a confirmation surface.
type Descriptor struct {
	Header string
	Prompt string
	OK     Option
	Cancel Option
}

// Surface is a confirmation prompt built by a Service. The surface runs the
// handler of the option chosen by the user and then closes itself.
type Surface interface {
	Open()
}

// Service builds confirmation surfaces.
type Service interface {
	Create(d Descriptor) Surface
}

// Defaults of a new Button.
const (
	DefaultPromptText  = "Are you sure?"
	DefaultConfirmText = "OK"
	DefaultCancelText  = "Cancel"
)

// Button asks for confirmation when activated and runs the confirm or the
// cancel handler depending on the user choice.
//
// The confirmation surface is built on the first activation from the
// configuration at that moment. Later changes to header, prompt, captions
// or handlers are kept on the button but do not affect the surface.
type Button struct {
	lock    sync.Mutex
	service Service
	log     *zap.Logger

	text    string
	icon    string
	themes  themeSet
	enabled bool

	headerText     string
	promptText     string
	confirmText    string
	cancelText     string
	confirmHandler func()
	cancelHandler  func()

	descriptor *Descriptor
	surface    Surface
}

// New returns a Button whose surfaces are built by svc. The button carries
// the error color.
func New(svc Service) *Button {
	b := &Button{
		service:     svc,
		log:         zap.NewNop(),
		themes:      themeSet{},
		enabled:     true,
		promptText:  DefaultPromptText,
		confirmText: DefaultConfirmText,
		cancelText:  DefaultCancelText,
	}
	b.themes.apply(ColorError)
	return b
}

// SetLogger sets the logger of the button.
func (b *Button) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	b.lock.Lock()
	b.log = log
	b.lock.Unlock()
}

// Activate shows the confirmation surface, building it on the first call.
// A disabled button ignores activations.
func (b *Button) Activate() {
	b.lock.Lock()
	if !b.enabled {
		b.lock.Unlock()
		return
	}
	if b.surface == nil {
		d := b.finalize()
		b.descriptor = &d
		b.surface = b.service.Create(d)
		b.log.Debug("confirmation surface built", zap.String("header", d.Header))
	}
	s := b.surface
	b.lock.Unlock()
	s.Open()
}

func (b *Button) finalize() Descriptor {
	dialogButton := func(caption string, handler func()) Option {
		return Option{
			Caption: caption,
			Handler: handler,
			Themes:  []string{SizeSmall.Name()},
		}
	}
	return Descriptor{
		Header: b.headerText,
		Prompt: b.promptText,
		OK:     dialogButton(b.confirmText, b.confirmHandler),
		Cancel: dialogButton(b.cancelText, b.cancelHandler),
	}
}

// Finalized reports whether the confirmation surface has been built.
func (b *Button) Finalized() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.descriptor != nil
}

// Descriptor returns the descriptor the surface was built from and true, or
// false if the button has never been activated.
func (b *Button) Descriptor() (Descriptor, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.descriptor == nil {
		return Descriptor{}, false
	}
	return *b.descriptor, true
}

// setDialog changes a setting that ends up in the descriptor.
func (b *Button) setDialog(field string, set func()) {
	b.lock.Lock()
	defer b.lock.Unlock()
	set()
	if b.descriptor != nil {
		b.log.Debug("confirmation surface already built, change not applied", zap.String("field", field))
	}
}

// Text returns the caption of the button.
func (b *Button) Text() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.text
}

// SetText sets the caption of the button.
func (b *Button) SetText(text string) {
	b.lock.Lock()
	b.text = text
	b.lock.Unlock()
}

// WithText is the chainable form of SetText.
func (b *Button) WithText(text string) *Button {
	b.SetText(text)
	return b
}

// Icon returns the icon name of the button.
func (b *Button) Icon() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.icon
}

// SetIcon sets the icon name of the button.
func (b *Button) SetIcon(icon string) {
	b.lock.Lock()
	b.icon = icon
	b.lock.Unlock()
}

// WithIcon is the chainable form of SetIcon.
func (b *Button) WithIcon(icon string) *Button {
	b.SetIcon(icon)
	return b
}

// Themes returns the theme names of the button, color first, then variant
// and size.
func (b *Button) Themes() []string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.themes.names()
}

// SetTheme applies a theme, replacing the one of the same group.
func (b *Button) SetTheme(t Theme) {
	b.lock.Lock()
	b.themes.apply(t)
	b.lock.Unlock()
}

// WithTheme is the chainable form of SetTheme.
func (b *Button) WithTheme(t Theme) *Button {
	b.SetTheme(t)
	return b
}

// IsEnabled reports whether the button accepts activations.
func (b *Button) IsEnabled() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.enabled
}

// SetEnabled enables or disables the button.
func (b *Button) SetEnabled(enabled bool) {
	b.lock.Lock()
	b.enabled = enabled
	b.lock.Unlock()
}

// WithEnabled is the chainable form of SetEnabled.
func (b *Button) WithEnabled(enabled bool) *Button {
	b.SetEnabled(enabled)
	return b
}

// SetHeaderText sets the header of the confirmation surface.
func (b *Button) SetHeaderText(text string) {
	b.setDialog("header", func() { b.headerText = text })
}

// WithHeaderText is the chainable form of SetHeaderText.
func (b *Button) WithHeaderText(text string) *Button {
	b.SetHeaderText(text)
	return b
}

// SetPromptText sets the question asked by the confirmation surface.
func (b *Button) SetPromptText(text string) {
	b.setDialog("prompt", func() { b.promptText = text })
}

// WithPromptText is the chainable form of SetPromptText.
func (b *Button) WithPromptText(text string) *Button {
	b.SetPromptText(text)
	return b
}

// SetConfirmText sets the caption of the confirm option.
func (b *Button) SetConfirmText(text string) {
	b.setDialog("confirmText", func() { b.confirmText = text })
}

// WithConfirmText is the chainable form of SetConfirmText.
func (b *Button) WithConfirmText(text string) *Button {
	b.SetConfirmText(text)
	return b
}

// SetCancelText sets the caption of the cancel option.
func (b *Button) SetCancelText(text string) {
	b.setDialog("cancelText", func() { b.cancelText = text })
}

// WithCancelText is the chainable form of SetCancelText.
func (b *Button) WithCancelText(text string) *Button {
	b.SetCancelText(text)
	return b
}

// WithRejectText is an alias of WithCancelText.
func (b *Button) WithRejectText(text string) *Button {
	return b.WithCancelText(text)
}

// SetConfirmHandler sets the function run when the user confirms.
func (b *Button) SetConfirmHandler(handler func()) {
	b.setDialog("confirmHandler", func() { b.confirmHandler = handler })
}

// WithConfirmHandler is the chainable form of SetConfirmHandler.
func (b *Button) WithConfirmHandler(handler func()) *Button {
	b.SetConfirmHandler(handler)
	return b
}

// SetCancelHandler sets the function run when the user cancels.
func (b *Button) SetCancelHandler(handler func()) {
	b.setDialog("cancelHandler", func() { b.cancelHandler = handler })
}

// WithCancelHandler is the chainable form of SetCancelHandler.
func (b *Button) WithCancelHandler(handler func()) *Button {
	b.SetCancelHandler(handler)
	return b
}
