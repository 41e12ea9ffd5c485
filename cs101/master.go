// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
)

// stationFSM is a master's view of one polled slave (§4.3, unbalanced mode).
type stationFSM int

const (
	stationIdle stationFSM = iota
	stationExpectingAck
	stationRequestingClass1
	stationRequestingClass2
	stationLinkReset
)

type station struct {
	addr      uint16
	state     stationFSM
	fcb       bool // next FCB this master will send to this station
	acdSeen   bool // slave signalled pending class-1 data (ACD bit)
	resetDone bool

	mu        sync.Mutex
	sendQueue [][]byte // user data with confirmation, pending delivery
}

// PollTiming controls how a Master paces its polling cycle.
type PollTiming struct {
	// ResponseTimeout bounds how long the master waits for a secondary
	// station's reply before treating it as lost.
	ResponseTimeout time.Duration
	// CycleDelay is the pause between successive poll cycles across all
	// configured stations, once every station has been serviced once.
	CycleDelay time.Duration
	// MaxRetries bounds the attempts of each link reset, confirmed send
	// and class poll. An exhausted link reset fires EventLinkBroken; an
	// exhausted confirmed send fires EventTimeout, and a poll fires
	// EventTimeout for every unanswered attempt.
	MaxRetries int
}

// DefaultPollTiming returns conservative FT1.2 polling timing.
func DefaultPollTiming() PollTiming {
	return PollTiming{
		ResponseTimeout: 500 * time.Millisecond,
		CycleDelay:      100 * time.Millisecond,
		MaxRetries:      3,
	}
}

// Master is a CS101 primary station (unbalanced mode): it cyclically
// polls one or more secondary stations over one shared half-duplex
// transport, requesting class-2 (background/cyclic) data and, when a
// station has signalled pending class-1 (high priority/spontaneous)
// data via the ACD bit, class-1 data ahead of it.
type Master struct {
	transport io.ReadWriter
	link      LinkLayerParams
	params    asdu.Params
	timing    PollTiming
	handler   Handler

	mu       sync.Mutex
	stations map[uint16]*station
	order    []uint16

	rbuf []byte

	clog.Clog
}

// NewMaster returns a Master polling over transport.
func NewMaster(handler Handler, transport io.ReadWriter, link LinkLayerParams, params asdu.Params, timing PollTiming) *Master {
	handler.setDefaults()
	return &Master{
		transport: transport,
		link:      link,
		params:    params,
		timing:    timing,
		handler:   handler,
		stations:  make(map[uint16]*station),
		Clog:      clog.NewLogger("cs101 master => "),
	}
}

// AddStation registers a secondary station address to poll.
func (sf *Master) AddStation(addr uint16) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if _, ok := sf.stations[addr]; ok {
		return
	}
	sf.stations[addr] = &station{addr: addr, state: stationLinkReset}
	sf.order = append(sf.order, addr)
}

// Run drives the polling cycle until ctx is cancelled.
func (sf *Master) Run(ctx context.Context) error {
	sf.handler.ConnectionEventHandler(sf, EventConnected)
	defer sf.handler.ConnectionEventHandler(sf, EventDisconnected)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sf.mu.Lock()
		addrs := append([]uint16(nil), sf.order...)
		sf.mu.Unlock()

		if len(addrs) == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sf.timing.CycleDelay):
			}
			continue
		}

		for _, addr := range addrs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			sf.pollOnce(addr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sf.timing.CycleDelay):
		}
	}
}

func (sf *Master) getStation(addr uint16) *station {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.stations[addr]
}

func (sf *Master) pollOnce(addr uint16) {
	st := sf.getStation(addr)
	if st == nil {
		return
	}

	if st.state == stationLinkReset {
		if !sf.resetLink(st) {
			return
		}
		st.state = stationIdle
	}

	st.mu.Lock()
	pending := len(st.sendQueue) > 0
	var userData []byte
	if pending {
		userData = st.sendQueue[0]
	}
	st.mu.Unlock()

	if pending {
		if sf.sendUserData(st, userData) {
			st.mu.Lock()
			st.sendQueue = st.sendQueue[1:]
			st.mu.Unlock()
		}
		return
	}

	if st.acdSeen {
		sf.requestClass(st, true)
		return
	}
	sf.requestClass(st, false)
}

// resetLink sends Reset Remote Link and waits for acknowledgement, up to
// MaxRetries attempts before declaring the link to this station broken.
func (sf *Master) resetLink(st *station) bool {
	for attempt := 0; attempt < sf.timing.MaxRetries; attempt++ {
		sf.write(frame{kind: frameFixed, addr: st.addr, control: primaryControl(FccResetRemoteLink, false, false)})
		f, ok := sf.awaitReply()
		if ok && f.kind == frameFixed {
			c := parseControl(f.control)
			if !c.isPrimary && c.function == FcsConfirmed {
				st.fcb = true
				return true
			}
		}
	}
	sf.handler.ConnectionEventHandler(sf, EventLinkBroken)
	return false
}

func (sf *Master) sendUserData(st *station, user []byte) bool {
	for attempt := 0; attempt < sf.timing.MaxRetries; attempt++ {
		fcb := st.fcb
		sf.write(frame{kind: frameVariable, addr: st.addr, control: primaryControl(FccUserDataWithConfirmed, fcb, true), user: user})
		f, ok := sf.awaitReply()
		if ok && f.kind == frameFixed {
			c := parseControl(f.control)
			if !c.isPrimary && c.function == FcsConfirmed {
				st.fcb = !fcb
				return true
			}
		}
	}
	sf.handler.ConnectionEventHandler(sf, EventTimeout)
	return false
}

func (sf *Master) requestClass(st *station, class1 bool) {
	fc := byte(FccUnbalanceLevel2UserData)
	if class1 {
		fc = FccUnbalanceLevel1UserData
	}
	for attempt := 0; attempt < sf.timing.MaxRetries; attempt++ {
		fcb := st.fcb
		sf.write(frame{kind: frameFixed, addr: st.addr, control: primaryControl(fc, fcb, true)})
		f, ok := sf.awaitReply()
		if !ok {
			sf.handler.ConnectionEventHandler(sf, EventTimeout)
			continue
		}
		st.fcb = !fcb
		c := parseControl(f.control)
		st.acdSeen = c.isPrimary == false && c.fcvOrACD && sf.link.AddrSize != LinkAddrSize0
		switch {
		case f.kind == frameVariable && c.function == FcsUnbalanceResponse:
			asduPack := asdu.NewEmptyASDU(&sf.params)
			if err := asduPack.UnmarshalBinary(f.user); err == nil {
				if err := dispatch(sf, &sf.handler, asduPack); err != nil {
					sf.Warn("handler failed: %v", err)
				}
			}
		case f.kind == frameFixed && c.function == FcsUnbalanceNegativeResponse:
			// no data available, nothing to do
		}
		return
	}
}

func (sf *Master) write(f frame) {
	b, err := serialize(f, sf.link)
	if err != nil {
		sf.Warn("serialize failed: %v", err)
		return
	}
	sf.handler.RawMessageHandler(sf, b, true)
	if _, err := sf.transport.Write(b); err != nil {
		sf.Warn("write failed: %v", err)
	}
}

// awaitReply blocks until one complete frame is parsed from the transport
// or ResponseTimeout elapses.
func (sf *Master) awaitReply() (frame, bool) {
	deadline := time.Now().Add(sf.timing.ResponseTimeout)
	chunk := make([]byte, 256)
	for {
		f, consumed, err := parseFrame(sf.rbuf, sf.link)
		if err == nil {
			raw := sf.rbuf[:consumed]
			sf.rbuf = sf.rbuf[consumed:]
			sf.handler.RawMessageHandler(sf, raw, false)
			return f, true
		}
		if time.Now().After(deadline) {
			return frame{}, false
		}
		n, err := sf.transport.Read(chunk)
		if err != nil {
			return frame{}, false
		}
		if n > 0 {
			sf.rbuf = append(sf.rbuf, chunk[:n]...)
		}
	}
}

// Params returns the application layer parameters in force.
func (sf *Master) Params() *asdu.Params { return &sf.params }

// PeerAddr is meaningless for a multi-drop master; returns the shared
// transport's description is not available, so the empty string.
func (sf *Master) PeerAddr() string { return "" }

// Send queues a to the confirmed-delivery queue of the station identified
// by a.CommonAddr's low 16 bits, to be sent on the station's next poll turn.
func (sf *Master) Send(a *asdu.ASDU) error {
	addr := uint16(a.CommonAddr)
	st := sf.getStation(addr)
	if st == nil {
		return ErrInvalidArgument
	}
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	st.mu.Lock()
	st.sendQueue = append(st.sendQueue, data)
	st.mu.Unlock()
	return nil
}

// SendACT_CON mirrors a back with IsNegative set per negative.
func (sf *Master) SendACT_CON(a *asdu.ASDU, negative bool) error {
	r := a.Clone()
	r.Coa.IsNegative = negative
	return sf.Send(r)
}

// SendACT_TERM mirrors a with cause ActivationTerm.
func (sf *Master) SendACT_TERM(a *asdu.ASDU) error {
	return a.SendReplyMirror(sf, asdu.ActivationTerm)
}
