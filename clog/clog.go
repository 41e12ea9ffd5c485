// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package clog is a thin, swappable logging facade used throughout the
// protocol stack: stations, connections and servers embed a Clog rather
// than depending on a concrete logging library directly.
package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider is the backend a Clog writes through. Only four levels
// exist: there is no Info, since everything this package logs is either
// routine protocol chatter (Debug) or something an operator should see
// (Warn/Error/Critical).
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Clog is an embeddable logger that no-ops until LogMode(true) is
// called, so a caller that never wires a provider gets silence rather
// than a nil-pointer panic.
type Clog struct {
	provider LogProvider
	has      uint32 // 1 once logging is enabled, 0 otherwise
}

// NewLogger returns a Clog backed by the standard library logger,
// writing to stdout with the given line prefix. Logging starts
// disabled; call LogMode(true) to turn it on.
func NewLogger(prefix string) Clog {
	return Clog{
		provider: stdLogger{log.New(os.Stdout, prefix, log.LstdFlags)},
	}
}

// LogMode enables or disables output. A Clog with no provider set and
// LogMode(true) called will panic on first use; set the provider first.
func (sf *Clog) LogMode(enable bool) {
	v := uint32(0)
	if enable {
		v = 1
	}
	atomic.StoreUint32(&sf.has, v)
}

// SetLogProvider swaps the backend. A nil provider is ignored.
func (sf *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

func (sf Clog) enabled() bool {
	return atomic.LoadUint32(&sf.has) == 1
}

// Critical logs a message that indicates the station or connection
// cannot continue operating correctly.
func (sf Clog) Critical(format string, v ...interface{}) {
	if sf.enabled() {
		sf.provider.Critical(format, v...)
	}
}

// Error logs a message about a failed operation that does not by
// itself require tearing down the connection.
func (sf Clog) Error(format string, v ...interface{}) {
	if sf.enabled() {
		sf.provider.Error(format, v...)
	}
}

// Warn logs a message about a recoverable or expected anomaly.
func (sf Clog) Warn(format string, v ...interface{}) {
	if sf.enabled() {
		sf.provider.Warn(format, v...)
	}
}

// Debug logs routine protocol trace messages.
func (sf Clog) Debug(format string, v ...interface{}) {
	if sf.enabled() {
		sf.provider.Debug(format, v...)
	}
}

// stdLogger adapts *log.Logger to LogProvider, tagging each line with a
// single-letter level marker.
type stdLogger struct {
	*log.Logger
}

var _ LogProvider = stdLogger{}

func (sf stdLogger) Critical(format string, v ...interface{}) { sf.Printf("[C]: "+format, v...) }
func (sf stdLogger) Error(format string, v ...interface{})    { sf.Printf("[E]: "+format, v...) }
func (sf stdLogger) Warn(format string, v ...interface{})     { sf.Printf("[W]: "+format, v...) }
func (sf stdLogger) Debug(format string, v ...interface{})    { sf.Printf("[D]: "+format, v...) }
