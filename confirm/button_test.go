//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package confirm

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	d     Descriptor
	opens int
}

func (s *fakeSurface) Open() { s.opens++ }

func (s *fakeSurface) confirm() { s.d.OK.Run() }
func (s *fakeSurface) cancel()  { s.d.Cancel.Run() }

type fakeService struct {
	lock     sync.Mutex
	surfaces []*fakeSurface
}

func (f *fakeService) Create(d Descriptor) Surface {
	f.lock.Lock()
	defer f.lock.Unlock()
	s := &fakeSurface{d: d}
	f.surfaces = append(f.surfaces, s)
	return s
}

func TestDefaults(t *testing.T) {
	svc := &fakeService{}
	b := New(svc)
	require.Equal(t, []string{"error"}, b.Themes())
	require.True(t, b.IsEnabled())
	require.False(t, b.Finalized())
	_, ok := b.Descriptor()
	require.False(t, ok)

	b.Activate()
	d, ok := b.Descriptor()
	require.True(t, ok)
	want := Descriptor{
		Header: "",
		Prompt: "Are you sure?",
		OK:     Option{Caption: "OK", Themes: []string{"small"}},
		Cancel: Option{Caption: "Cancel", Themes: []string{"small"}},
	}
	if diff := cmp.Diff(want, d, cmpopts.IgnoreFields(Option{}, "Handler")); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestLazySurfaceIsBuiltOnce(t *testing.T) {
	svc := &fakeService{}
	b := New(svc).WithHeaderText("Delete").WithPromptText("Delete the file?")
	require.Empty(t, svc.surfaces)

	b.Activate()
	b.Activate()
	require.Len(t, svc.surfaces, 1)
	require.Equal(t, 2, svc.surfaces[0].opens)
}

func TestConcurrentActivation(t *testing.T) {
	svc := &fakeService{}
	b := New(svc)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Activate()
		}()
	}
	wg.Wait()
	require.Len(t, svc.surfaces, 1)
}

func TestConfirmAndCancelHandlers(t *testing.T) {
	svc := &fakeService{}
	confirmed, cancelled := 0, 0
	b := New(svc).
		WithConfirmHandler(func() { confirmed++ }).
		WithCancelHandler(func() { cancelled++ })
	b.Activate()
	s := svc.surfaces[0]

	s.confirm()
	require.Equal(t, 1, confirmed)
	require.Equal(t, 0, cancelled)

	s.cancel()
	require.Equal(t, 1, confirmed)
	require.Equal(t, 1, cancelled)
}

func TestMissingHandlersAreNoop(t *testing.T) {
	svc := &fakeService{}
	New(svc).Activate()
	s := svc.surfaces[0]
	require.NotPanics(t, s.confirm)
	require.NotPanics(t, s.cancel)
}

func TestChangesAfterFirstActivation(t *testing.T) {
	svc := &fakeService{}
	first, second := 0, 0
	b := New(svc).
		WithHeaderText("Delete").
		WithPromptText("Really?").
		WithConfirmText("Yes").
		WithRejectText("No").
		WithConfirmHandler(func() { first++ })
	b.Activate()

	b.SetPromptText("Changed")
	b.SetConfirmHandler(func() { second++ })
	b.Activate()

	d, _ := b.Descriptor()
	require.Equal(t, "Delete", d.Header)
	require.Equal(t, "Really?", d.Prompt)
	require.Equal(t, "Yes", d.OK.Caption)
	require.Equal(t, "No", d.Cancel.Caption)

	svc.surfaces[0].confirm()
	require.Equal(t, 1, first)
	require.Equal(t, 0, second)
	require.Len(t, svc.surfaces, 1)
}

func TestDisabledButtonIgnoresActivation(t *testing.T) {
	svc := &fakeService{}
	b := New(svc).WithEnabled(false)
	b.Activate()
	require.Empty(t, svc.surfaces)
	b.SetEnabled(true)
	b.Activate()
	require.Len(t, svc.surfaces, 1)
}

func TestThemes(t *testing.T) {
	b := New(&fakeService{}).
		WithText("Delete").
		WithIcon("trash").
		WithTheme(SizeSmall).
		WithTheme(VariantTertiary)
	require.Equal(t, "Delete", b.Text())
	require.Equal(t, "trash", b.Icon())
	require.Equal(t, []string{"error", "tertiary", "small"}, b.Themes())

	b.SetTheme(ColorSuccess)
	b.SetTheme(VariantSecondary)
	b.SetTheme(SizeLarge)
	require.Equal(t, []string{"success", "large"}, b.Themes())
}
