//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package download provides a download trigger: a link or button that,
// when activated, streams content generated on the fly by a Producer to
// the client and notifies listeners when the generation finishes or fails.
package download
