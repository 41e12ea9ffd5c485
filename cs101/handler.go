// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
)

// Connect is the per-connection object handed to every handler, mirroring
// cs104.Connect so CS101 slaves expose the same handler capability set as
// CS104 servers.
type Connect interface {
	Params() *asdu.Params
	Send(a *asdu.ASDU) error
	SendACT_CON(a *asdu.ASDU, negative bool) error
	SendACT_TERM(a *asdu.ASDU) error
	PeerAddr() string
}

// ConnectionEventKind tags why a connectionEventHandler fired.
type ConnectionEventKind int

const (
	EventConnected ConnectionEventKind = iota
	EventDisconnected
	EventActivated
	EventDeactivated
	EventSequenceError
	EventTimeout
	EventLinkReset
	EventLinkBroken
)

func (k ConnectionEventKind) String() string {
	switch k {
	case EventConnected:
		return "Connected"
	case EventDisconnected:
		return "Disconnected"
	case EventActivated:
		return "Activated"
	case EventDeactivated:
		return "Deactivated"
	case EventSequenceError:
		return "SequenceError"
	case EventTimeout:
		return "Timeout"
	case EventLinkReset:
		return "LinkReset"
	case EventLinkBroken:
		return "LinkBroken"
	default:
		return "Unknown"
	}
}

// ASDUHandler handles any ASDU not claimed by one of the more specific
// handlers below.
type ASDUHandler func(conn Connect, a *asdu.ASDU) error

// InterrogationHandler handles C_IC_NA_1.
type InterrogationHandler func(conn Connect, a *asdu.ASDU, qoi asdu.QualifierOfInterrogation) error

// CounterInterrogationHandler handles C_CI_NA_1.
type CounterInterrogationHandler func(conn Connect, a *asdu.ASDU, qcc asdu.QualifierCountCall) error

// ReadHandler handles C_RD_NA_1.
type ReadHandler func(conn Connect, a *asdu.ASDU, ioa asdu.InfoObjAddr) error

// ClockSyncHandler handles C_CS_NA_1.
type ClockSyncHandler func(conn Connect, a *asdu.ASDU, t time.Time) error

// ResetProcessHandler handles C_RP_NA_1.
type ResetProcessHandler func(conn Connect, a *asdu.ASDU, qrp asdu.QualifierOfResetProcessCmd) error

// DelayAcquisitionHandler handles C_CD_NA_1.
type DelayAcquisitionHandler func(conn Connect, a *asdu.ASDU, msec uint16) error

// RawMessageHandler observes every raw FT1.2 frame, before ASDU decoding.
type RawMessageHandler func(conn Connect, raw []byte, sending bool)

// ConnectionEventHandler reports link lifecycle and protocol errors.
type ConnectionEventHandler func(conn Connect, event ConnectionEventKind)

// Handler is the full set of callbacks a CS101 station dispatches received
// ASDUs and link events to. Any nil field is replaced by a no-op default.
type Handler struct {
	ASDUHandler                 ASDUHandler
	InterrogationHandler        InterrogationHandler
	CounterInterrogationHandler CounterInterrogationHandler
	ReadHandler                 ReadHandler
	ClockSyncHandler            ClockSyncHandler
	ResetProcessHandler         ResetProcessHandler
	DelayAcquisitionHandler     DelayAcquisitionHandler
	RawMessageHandler           RawMessageHandler
	ConnectionEventHandler      ConnectionEventHandler
}

func (h *Handler) setDefaults() {
	if h.ASDUHandler == nil {
		h.ASDUHandler = func(Connect, *asdu.ASDU) error { return nil }
	}
	if h.InterrogationHandler == nil {
		h.InterrogationHandler = func(Connect, *asdu.ASDU, asdu.QualifierOfInterrogation) error { return nil }
	}
	if h.CounterInterrogationHandler == nil {
		h.CounterInterrogationHandler = func(Connect, *asdu.ASDU, asdu.QualifierCountCall) error { return nil }
	}
	if h.ReadHandler == nil {
		h.ReadHandler = func(Connect, *asdu.ASDU, asdu.InfoObjAddr) error { return nil }
	}
	if h.ClockSyncHandler == nil {
		h.ClockSyncHandler = func(Connect, *asdu.ASDU, time.Time) error { return nil }
	}
	if h.ResetProcessHandler == nil {
		h.ResetProcessHandler = func(Connect, *asdu.ASDU, asdu.QualifierOfResetProcessCmd) error { return nil }
	}
	if h.DelayAcquisitionHandler == nil {
		h.DelayAcquisitionHandler = func(Connect, *asdu.ASDU, uint16) error { return nil }
	}
	if h.RawMessageHandler == nil {
		h.RawMessageHandler = func(Connect, []byte, bool) {}
	}
	if h.ConnectionEventHandler == nil {
		h.ConnectionEventHandler = func(Connect, ConnectionEventKind) {}
	}
}

func dispatch(conn Connect, h *Handler, a *asdu.ASDU) error {
	switch a.Type {
	case asdu.C_IC_NA_1:
		ioa, qoi := a.GetInterrogationCmd()
		_ = ioa
		return h.InterrogationHandler(conn, a, qoi)
	case asdu.C_CI_NA_1:
		ioa, qcc := a.GetCounterInterrogationCmd()
		_ = ioa
		return h.CounterInterrogationHandler(conn, a, qcc)
	case asdu.C_RD_NA_1:
		ioa := a.GetReadCmd()
		return h.ReadHandler(conn, a, ioa)
	case asdu.C_CS_NA_1:
		_, t := a.GetClockSynchronizationCmd()
		return h.ClockSyncHandler(conn, a, t)
	case asdu.C_RP_NA_1:
		_, qrp := a.GetResetProcessCmd()
		return h.ResetProcessHandler(conn, a, qrp)
	case asdu.C_CD_NA_1:
		_, msec := a.GetDelayAcquireCommand()
		return h.DelayAcquisitionHandler(conn, a, msec)
	default:
		return h.ASDUHandler(conn, a)
	}
}
