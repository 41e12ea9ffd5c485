// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package clog

import "github.com/sirupsen/logrus"

// logrusProvider adapts a *logrus.Entry to LogProvider. CRITICAL maps to
// logrus' Fatal level's sibling, Error — logrus has no level above Error
// short of Fatal/Panic, which this package must not trigger on a single
// protocol session's behalf.
type logrusProvider struct {
	entry *logrus.Entry
}

var _ LogProvider = logrusProvider{}

// NewLogrusLogger returns a Clog backed by logrus, with prefix carried as
// a structured "component" field rather than a literal string prefix.
func NewLogrusLogger(prefix string) Clog {
	l := logrus.StandardLogger()
	return Clog{
		provider: logrusProvider{entry: l.WithField("component", prefix)},
		has:      1,
	}
}

// NewLogrusLoggerWithFields returns a Clog backed by logrus, pre-populated
// with the given structured fields (e.g. "conn", "station").
func NewLogrusLoggerWithFields(logger *logrus.Logger, fields logrus.Fields) Clog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return Clog{
		provider: logrusProvider{entry: logger.WithFields(fields)},
		has:      1,
	}
}

func (sf logrusProvider) Critical(format string, v ...interface{}) {
	sf.entry.Errorf("[C] "+format, v...)
}

func (sf logrusProvider) Error(format string, v ...interface{}) {
	sf.entry.Errorf(format, v...)
}

func (sf logrusProvider) Warn(format string, v ...interface{}) {
	sf.entry.Warnf(format, v...)
}

func (sf logrusProvider) Debug(format string, v ...interface{}) {
	sf.entry.Debugf(format, v...)
}
