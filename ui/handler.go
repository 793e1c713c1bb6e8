//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Problem is a JSON error response (RFC 7807).
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// NewHandler returns the HTTP endpoints the browser uses to talk to u:
//
//	GET  /poll                  PollResponse as JSON
//	POST /dialogs/{id}/confirm  confirm an open dialog
//	POST /dialogs/{id}/cancel   cancel an open dialog
func NewHandler(u *UI, dialogs *DialogService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /poll", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(u.Poll())
	})
	mux.HandleFunc("POST /dialogs/{id}/{decision}", func(w http.ResponseWriter, r *http.Request) {
		var confirmed bool
		switch decision := r.PathValue("decision"); decision {
		case "confirm":
			confirmed = true
		case "cancel":
		default:
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown decision %q", decision))
			return
		}
		err := dialogs.Decide(r.PathValue("id"), confirmed)
		switch {
		case errors.Is(err, ErrUnknownDialog):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrDialogNotOpen):
			writeError(w, http.StatusConflict, err.Error())
		case err != nil:
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}
