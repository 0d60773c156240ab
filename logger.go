// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger. Block allocations, reallocations
// and releases are reported at debug level.
// This must be called before any vector is used.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
