//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package download

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderLink(t *testing.T) {
	d := New("Get <it>", "foobar.txt", writeString("x"))
	d.SetPath("/download/static")

	html := string(d.Render())
	require.Contains(t, html, `<a class="download"`)
	require.Contains(t, html, `href="/download/static"`)
	require.Contains(t, html, `download="foobar.txt"`)
	require.Contains(t, html, "Get &lt;it&gt;")

	d.SetEnabled(false)
	html = string(d.Render())
	require.Contains(t, html, `aria-disabled="true"`)
	require.NotContains(t, html, "href=")
}

func TestRenderButton(t *testing.T) {
	d := New("Get it", "foobar.txt", writeString("x")).AsButton()
	d.SetPath("/download/button")

	html := string(d.Render())
	require.Contains(t, html, `<button type="button" class="download"`)
	require.Contains(t, html, `data-href="/download/button"`)
	require.Contains(t, html, "onclick=")

	d.SetEnabled(false)
	html = string(d.Render())
	require.Contains(t, html, " disabled")
	require.NotContains(t, html, "onclick=")
}

func TestRenderOmitsComputedFileName(t *testing.T) {
	d := New("Get it", "foobar.txt", writeString("x")).
		WithFileNamer(func(*http.Request) string { return "computed.txt" })
	d.SetPath("/download/named")

	html := string(d.Render())
	require.Contains(t, html, `download=""`)
	require.NotContains(t, html, "foobar.txt")
}
