//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package download

import (
	"bytes"
	"html/template"
)

var controlTemplate = template.Must(template.New("control").Parse(
	`{{if .Button}}<button type="button" class="download"` +
		`{{if .Enabled}} onclick="window.location.href=this.dataset.href"{{else}} disabled{{end}}` +
		` data-href="{{.Path}}">{{.Label}}</button>` +
		`{{else}}<a class="download"` +
		`{{if .Enabled}} href="{{.Path}}" download="{{.FileName}}"{{else}} aria-disabled="true"{{end}}` +
		`>{{.Label}}</a>{{end}}`))

type controlView struct {
	Label    string
	Path     string
	FileName string
	Enabled  bool
	Button   bool
}

// Render returns the HTML of the control: a download link, or a button when
// AsButton has been called. A computed file name is left to the response
// headers.
func (t *Trigger) Render() template.HTML {
	t.lock.Lock()
	v := controlView{
		Label:   t.label,
		Path:    t.path,
		Enabled: t.enabled,
		Button:  t.button,
	}
	if t.namer == nil {
		v.FileName = t.fileName
	}
	t.lock.Unlock()

	var buf bytes.Buffer
	if err := controlTemplate.Execute(&buf, v); err != nil {
		return template.HTML(template.HTMLEscapeString(v.Label))
	}
	return template.HTML(buf.String())
}
