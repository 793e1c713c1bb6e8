//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package download

import (
	"io"
	"mime"
	"net/http"
)

// Transport opens the output channel of an activation. The name is final:
// once Open returns, the artifact name can no longer change.
type Transport interface {
	Open(name string) (io.Writer, error)
}

// HTTPTransport sends the artifact as an attachment of an HTTP response.
type HTTPTransport struct {
	W            http.ResponseWriter
	ContentType  string
	ExtraHeaders map[string]string
}

// Open writes the response headers and returns a writer that flushes
// every chunk to the client.
func (t *HTTPTransport) Open(name string) (io.Writer, error) {
	h := t.W.Header()
	contentType := t.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}
	h.Set("Content-Type", contentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if disposition == "" {
		disposition = "attachment"
	}
	h.Set("Content-Disposition", disposition)
	h.Set("Cache-Control", "no-store")
	for k, v := range t.ExtraHeaders {
		h.Set(k, v)
	}
	t.W.WriteHeader(http.StatusOK)

	flusher, _ := t.W.(http.Flusher)
	return &flushWriter{w: t.W, f: flusher}, nil
}

type flushWriter struct {
	w io.Writer
	f http.Flusher
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.f != nil && n > 0 {
		fw.f.Flush()
	}
	return n, err
}
