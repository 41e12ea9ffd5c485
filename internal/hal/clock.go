// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package hal collects the small platform-collaborator interfaces the
// protocol stack is built against: a clock, an installable allocator
// hook, a serial port, and a byte-stream transport. None of them carry
// protocol logic. The CS104 sessions read their timers from SystemClock
// and allocate receive buffers through Alloc; they still hold a concrete
// net.Conn, and the CS101 master reads time.Now for its reply deadline.
package hal

import "time"

// Clock is a source of monotonic and wall-clock time. The default,
// SystemClock, wraps the Go runtime clock directly.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
	// MonotonicMs returns a monotonically increasing millisecond counter,
	// suitable only for measuring elapsed durations.
	MonotonicMs() int64
}

// systemClock is the default Clock, backed by time.Now's monotonic
// reading (Go's time.Time already carries a monotonic component since
// Go 1.9; MonotonicMs derives it via time.Since against process start).
type systemClock struct {
	start time.Time
}

var processStart = time.Now()

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{start: processStart}

func (systemClock) Now() time.Time { return time.Now() }

func (sf systemClock) MonotonicMs() int64 {
	return time.Since(sf.start).Milliseconds()
}
