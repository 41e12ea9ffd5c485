// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"context"
	"io"
	"sync"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
)

// Slave is a CS101 secondary station (unbalanced mode): it answers a
// primary station's class-1/class-2 polls and user-data sends over one
// shared half-duplex transport (typically a serial line).
type Slave struct {
	transport io.ReadWriter
	link      LinkLayerParams
	params    asdu.Params
	addr      uint16
	handler   Handler

	mu          sync.Mutex
	class1Queue [][]byte
	class2Queue [][]byte

	expectFCB    bool // FCB expected on the next Send/Confirm frame
	fcbKnown     bool // false until the first frame is seen (reset state)
	lastSent     []byte
	lastSentKind byte // frame control byte of lastSent, for ACD bookkeeping

	clog.Clog
}

// NewSlave returns a Slave at link address addr, talking FT1.2 over
// transport, dispatching decoded ASDUs to handler.
func NewSlave(handler Handler, transport io.ReadWriter, link LinkLayerParams, params asdu.Params, addr uint16) *Slave {
	handler.setDefaults()
	return &Slave{
		transport: transport,
		link:      link,
		params:    params,
		addr:      addr,
		handler:   handler,
		Clog:      clog.NewLogger("cs101 slave => "),
	}
}

// Params returns the application layer parameters in force.
func (sf *Slave) Params() *asdu.Params { return &sf.params }

// PeerAddr returns the configured link address, as a decimal string.
func (sf *Slave) PeerAddr() string {
	return fmtUint(sf.addr)
}

// Send queues a spontaneous ASDU for delivery on the next class-1 poll.
func (sf *Slave) Send(a *asdu.ASDU) error {
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	sf.mu.Lock()
	sf.class1Queue = append(sf.class1Queue, data)
	sf.mu.Unlock()
	return nil
}

// SendACT_CON mirrors a back with IsNegative set per negative, queued
// like any other spontaneous ASDU.
func (sf *Slave) SendACT_CON(a *asdu.ASDU, negative bool) error {
	r := a.Clone()
	r.Coa.IsNegative = negative
	return sf.Send(r)
}

// SendACT_TERM mirrors a with cause ActivationTerm.
func (sf *Slave) SendACT_TERM(a *asdu.ASDU) error {
	return a.SendReplyMirror(sf, asdu.ActivationTerm)
}

// Run reads frames from the transport until ctx is cancelled.
func (sf *Slave) Run(ctx context.Context) error {
	sf.handler.ConnectionEventHandler(sf, EventConnected)
	defer sf.handler.ConnectionEventHandler(sf, EventDisconnected)

	buf := make([]byte, 0, 512)
	chunk := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := sf.transport.Read(chunk)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		buf = append(buf, chunk[:n]...)
		for {
			f, consumed, err := parseFrame(buf, sf.link)
			if err == ErrFrameIncomplete {
				break
			}
			if err != nil {
				sf.Warn("frame error: %v", err)
				buf = buf[:0]
				break
			}
			raw := buf[:consumed]
			buf = buf[consumed:]
			sf.handler.RawMessageHandler(sf, raw, false)
			if sf.link.AddrSize != LinkAddrSize0 && f.addr != sf.addr {
				continue
			}
			sf.handleFrame(f)
		}
	}
}

func (sf *Slave) write(f frame) {
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

func (sf *Slave) handleFrame(f frame) {
	if f.kind != frameFixed && f.kind != frameVariable {
		return
	}
	c := parseControl(f.control)

	switch c.function {
	case FccResetRemoteLink:
		sf.mu.Lock()
		sf.fcbKnown = false
		sf.mu.Unlock()
		sf.handler.ConnectionEventHandler(sf, EventLinkReset)
		sf.write(frame{kind: frameFixed, addr: sf.addr, control: secondaryControl(FcsConfirmed, false)})

	case FccUserDataWithConfirmed:
		sf.mu.Lock()
		duplicate := sf.fcbKnown && c.fcb != sf.expectFCB
		sf.fcbKnown = true
		sf.expectFCB = !c.fcb
		sf.mu.Unlock()
		if !duplicate {
			asduPack := asdu.NewEmptyASDU(&sf.params)
			if err := asduPack.UnmarshalBinary(f.user); err == nil {
				if err := dispatch(sf, &sf.handler, asduPack); err != nil {
					sf.Warn("handler failed: %v", err)
				}
			}
		}
		sf.write(frame{kind: frameFixed, addr: sf.addr, control: secondaryControl(FcsConfirmed, false)})

	case FccUserDataWithUnconfirmed:
		asduPack := asdu.NewEmptyASDU(&sf.params)
		if err := asduPack.UnmarshalBinary(f.user); err == nil {
			if err := dispatch(sf, &sf.handler, asduPack); err != nil {
				sf.Warn("handler failed: %v", err)
			}
		}

	case FccUnbalanceLevel1UserData:
		sf.respondToPoll(c.fcb, true)

	case FccUnbalanceLevel2UserData:
		sf.respondToPoll(c.fcb, false)

	case FccLinkStatus:
		sf.write(frame{kind: frameFixed, addr: sf.addr, control: secondaryControl(FcsStatus, false)})

	default:
		sf.Warn("unhandled function code %d", c.function)
	}
}

// respondToPoll answers a class-1 or class-2 data request, honoring FCB
// toggle semantics: an unchanged FCB means the master never saw our last
// answer, so we retransmit it unchanged rather than popping the queue.
func (sf *Slave) respondToPoll(fcb bool, class1 bool) {
	sf.mu.Lock()
	if sf.fcbKnown && fcb != sf.expectFCB {
		last := sf.lastSent
		sf.mu.Unlock()
		if last != nil {
			if _, err := sf.transport.Write(last); err != nil {
				sf.Warn("retransmit failed: %v", err)
			}
		}
		return
	}
	sf.fcbKnown = true
	sf.expectFCB = !fcb

	var queue *[][]byte
	if class1 {
		queue = &sf.class1Queue
	} else {
		queue = &sf.class2Queue
	}
	var user []byte
	hasMore := false
	if len(*queue) > 0 {
		user = (*queue)[0]
		*queue = (*queue)[1:]
		hasMore = len(sf.class1Queue) > 0
	}
	sf.mu.Unlock()

	var f frame
	if user == nil {
		f = frame{kind: frameFixed, addr: sf.addr, control: secondaryControl(FcsUnbalanceNegativeResponse, false)}
	} else {
		ctrl := secondaryControl(FcsUnbalanceResponse, false)
		if hasMore {
			ctrl |= ACD_RES
		}
		f = frame{kind: frameVariable, addr: sf.addr, control: ctrl, user: user}
	}
	b, err := serialize(f, sf.link)
	if err != nil {
		sf.Warn("serialize failed: %v", err)
		return
	}
	sf.mu.Lock()
	sf.lastSent = b
	sf.mu.Unlock()
	sf.handler.RawMessageHandler(sf, b, true)
	if _, err := sf.transport.Write(b); err != nil {
		sf.Warn("write failed: %v", err)
	}
}

func fmtUint(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
