// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import "errors"

// sentinel errors of the cs104 package. ErrNotConnected, ErrQueueFull and
// ErrInvalidArgs are not returned by any function of this package:
// Client.Send reports ErrUseClosedConnection, ErrNotActive or
// ErrBufferFulled, SlaveConn.Send reports ErrBufferFulled, and both also
// pass on ASDU encoding errors. Protocol failures on a running connection
// are reported through ConnectionEventHandler.
var (
	ErrNotConnected = errors.New("cs104: not connected")
	ErrQueueFull    = errors.New("cs104: send queue full")
	ErrInvalidArgs  = errors.New("cs104: invalid argument")

	ErrUseClosedConnection = errors.New("cs104: use of closed connection")
	ErrNotActive           = errors.New("cs104: connection not activated")
	ErrBufferFulled        = errors.New("cs104: send buffer is full")
)
