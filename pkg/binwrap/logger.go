// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file integrates the logger with retryablehttp.LeveledLogger

package binwrap

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// newRetryableHTTPLogger returns a logger that implements the
// retryablehttp.LeveledLogger interface on top of log.
func newRetryableHTTPLogger(log logrus.FieldLogger) retryablehttp.LeveledLogger {
	return &retryableHTTPLogger{log}
}

// retryableHTTPLogger implements retryablehttp.LeveledLogger
type retryableHTTPLogger struct {
	log logrus.FieldLogger
}

// Debug wraps logrus Debug
func (l retryableHTTPLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(listToFields(keysAndValues...)).Debug(msg)
}

// Error wraps logrus Error
func (l retryableHTTPLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(listToFields(keysAndValues...)).Error(msg)
}

// Info wraps logrus Info
func (l retryableHTTPLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(listToFields(keysAndValues...)).Info(msg)
}

// Warn wraps logrus Warn
func (l retryableHTTPLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(listToFields(keysAndValues...)).Warn(msg)
}

// listToFields converts alternating keys and values into logrus.Fields. A
// trailing key without a value is kept with a nil value.
func listToFields(keysAndValues ...interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])

		var value interface{}
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		f[key] = value
	}
	return f
}
