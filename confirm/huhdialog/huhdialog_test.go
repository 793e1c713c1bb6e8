//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package huhdialog

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/require"

	"go.bug.st/widgets/confirm"
)

func answering(answer bool, err error) func(*huh.Form, *bool) error {
	return func(form *huh.Form, confirmed *bool) error {
		if form == nil {
			return errors.New("no form")
		}
		*confirmed = answer
		return err
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name      string
		answer    bool
		err       error
		confirmed int
		cancelled int
	}{
		{"confirm", true, nil, 1, 0},
		{"cancel", false, nil, 0, 1},
		{"aborted", true, errors.New("user aborted"), 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(nil)
			svc.ask = answering(tt.answer, tt.err)

			confirmed, cancelled := 0, 0
			b := confirm.New(svc).
				WithHeaderText("Delete").
				WithConfirmHandler(func() { confirmed++ }).
				WithCancelHandler(func() { cancelled++ })
			b.Activate()

			require.Equal(t, tt.confirmed, confirmed)
			require.Equal(t, tt.cancelled, cancelled)
		})
	}
}

func TestSurfaceIsReused(t *testing.T) {
	svc := New(nil)
	forms := 0
	svc.ask = func(form *huh.Form, confirmed *bool) error {
		forms++
		return nil
	}
	b := confirm.New(svc)
	b.Activate()
	b.Activate()
	require.Equal(t, 2, forms)
	require.True(t, b.Finalized())
}

func TestTheme(t *testing.T) {
	require.NotNil(t, Theme())
}
