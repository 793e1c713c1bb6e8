//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package download

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultContentType is used when Config.ContentType is empty.
const DefaultContentType = "application/octet-stream"

// Config contains the configuration for a download Trigger
type Config struct {
	// ContentType of the produced artifact, DefaultContentType if empty.
	ContentType string
	// ExtraHeaders to add to the HTTP response.
	ExtraHeaders map[string]string
	// InactivityTimeout is the duration after which, if the producer does
	// not write anything, the activation context is cancelled. If set to 0,
	// no timeout is applied.
	InactivityTimeout time.Duration
	// PollInterval is the interval at which PollFunction is called while
	// the producer runs. If set to 0 no polling happens.
	PollInterval time.Duration
	// PollFunction is called every PollInterval with the artifact name and
	// the number of bytes written so far.
	PollFunction func(name string, written int64)
	// Logger used to report activations. A nop logger is used if nil.
	Logger *zap.Logger
}

func (c Config) contentType() string {
	if c.ContentType == "" {
		return DefaultContentType
	}
	return c.ContentType
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the New
// function.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	res := defaultConfig
	if defaultConfig.ExtraHeaders != nil {
		res.ExtraHeaders = make(map[string]string, len(defaultConfig.ExtraHeaders))
		for k, v := range defaultConfig.ExtraHeaders {
			res.ExtraHeaders[k] = v
		}
	}
	return res
}
