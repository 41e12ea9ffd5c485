// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import "errors"

// sentinel errors returned by the cs101 package
var (
	ErrLinkParam       = errors.New("cs101: invalid link layer parameters")
	ErrFrameKind       = errors.New("cs101: unknown frame kind")
	ErrFrameLength     = errors.New("cs101: frame length out of range")
	ErrFrameIncomplete = errors.New("cs101: incomplete frame, need more bytes")
	ErrFrameFraming    = errors.New("cs101: bad start/end octet or length mismatch")
	ErrFrameChecksum   = errors.New("cs101: checksum mismatch")
	ErrNotConnected    = errors.New("cs101: not connected")
	ErrQueueFull       = errors.New("cs101: send queue full")
	ErrInvalidArgument = errors.New("cs101: invalid argument")
	ErrLinkBroken      = errors.New("cs101: link broken after exceeding retry count")
)
