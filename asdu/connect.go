// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// Connect is the capability an encode/send helper needs from a session:
// the application layer parameters in force and a way to hand a built
// ASDU to the transport below. *cs101.Master, *cs101.Slave, *cs104.Client
// and *cs104.SlaveConn all satisfy it.
type Connect interface {
	Params() *Params
	Send(a *ASDU) error
}
