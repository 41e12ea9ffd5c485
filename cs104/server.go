// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
	"github.com/mz-automation/lib60870-sub002/internal/hal"
)

// RedundancyMode selects how accepted connections are grouped.
type RedundancyMode int

const (
	// SingleRedundancy puts every accepted connection in one group: only
	// one connection carries data transfer at a time, matching a classic
	// single controlled-station CS104 server.
	SingleRedundancy RedundancyMode = iota
	// MultiRedundancy gives every accepted connection its own group, so
	// every connection that activates carries its own data transfer
	// independent of the others.
	MultiRedundancy
)

// ServerOption configures a Server.
type ServerOption struct {
	config         Config
	params         asdu.Params
	TLSConfig      *tls.Config
	RedundancyMode RedundancyMode
}

// NewServerOption returns a ServerOption with the IEC defaults and
// SingleRedundancy applied.
func NewServerOption(opts ...func(*ServerOption)) *ServerOption {
	o := &ServerOption{
		config:         DefaultConfig(),
		params:         *asdu.ParamsWide,
		RedundancyMode: SingleRedundancy,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithServerConfig overrides the t0-t3/k/w configuration.
func WithServerConfig(cfg Config) func(*ServerOption) {
	return func(o *ServerOption) { o.config = cfg }
}

// WithServerParams overrides the application layer parameters.
func WithServerParams(p asdu.Params) func(*ServerOption) {
	return func(o *ServerOption) { o.params = p }
}

// WithServerTLSConfig makes the server accept over TLS.
func WithServerTLSConfig(tc *tls.Config) func(*ServerOption) {
	return func(o *ServerOption) { o.TLSConfig = tc }
}

// WithRedundancyMode selects single- or multi-redundancy grouping.
func WithRedundancyMode(m RedundancyMode) func(*ServerOption) {
	return func(o *ServerOption) { o.RedundancyMode = m }
}

// Server is an IEC 60870-5-104 controlled station listening for masters.
type Server struct {
	option   ServerOption
	handler  Handler
	listener net.Listener

	mu     sync.Mutex
	group  *RedundancyGroup // used when RedundancyMode == SingleRedundancy
	groups map[*SlaveConn]*RedundancyGroup

	clog.Clog
}

// NewServer returns a Server dispatching accepted connections to handler.
func NewServer(handler Handler, o *ServerOption) *Server {
	if err := o.config.Valid(); err != nil {
		o.config = DefaultConfig()
	}
	handler.setDefaults()
	return &Server{
		option: *o,
		handler: handler,
		group:   NewRedundancyGroup(),
		groups:  make(map[*SlaveConn]*RedundancyGroup),
		Clog:    clog.NewLogger("cs104 server => "),
	}
}

// ListenAndServe opens addr and serves until ctx is cancelled or a listen
// error occurs.
func (sf *Server) ListenAndServe(ctx context.Context, addr string) error {
	var ln net.Listener
	var err error
	if sf.option.TLSConfig != nil {
		ln, err = tls.Listen("tcp", addr, sf.option.TLSConfig)
	} else {
		ln, err = net.Listen("tcp", addr)
	}
	if err != nil {
		return err
	}
	sf.listener = ln
	sf.Debug("listening on %s", addr)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			sf.Error("accept failed, %v", err)
			return err
		}
		sc := sf.newSlaveConn(conn)
		go sc.run(ctx)
	}
}

// Close stops accepting new connections.
func (sf *Server) Close() error {
	if sf.listener != nil {
		return sf.listener.Close()
	}
	return nil
}

func (sf *Server) newSlaveConn(conn net.Conn) *SlaveConn {
	var group *RedundancyGroup
	if sf.option.RedundancyMode == SingleRedundancy {
		group = sf.group
	} else {
		group = NewRedundancyGroup()
	}
	sc := &SlaveConn{
		server:   sf,
		conn:     conn,
		group:    group,
		params:   sf.option.params,
		config:   sf.option.config,
		sendASDU: make(chan []byte, uint32(sf.option.config.SendUnAckLimitK)<<4),
		rcvASDU:  make(chan []byte, uint32(sf.option.config.RecvUnAckLimitW)<<4),
		rcvRaw:   make(chan []byte, uint32(sf.option.config.RecvUnAckLimitW)<<5),
		sendRaw:  make(chan []byte, uint32(sf.option.config.SendUnAckLimitK)<<5),
		Clog:     clog.NewLogger("cs104 server conn => "),
	}
	group.add(sc)
	sf.mu.Lock()
	sf.groups[sc] = group
	sf.mu.Unlock()
	return sc
}

// SlaveConn is one accepted master connection on a Server: the secondary
// side of the I/S/U-frame window protocol, responding to STARTDT/STOPDT/
// TESTFR rather than initiating them.
type SlaveConn struct {
	server *Server
	conn   net.Conn
	group  *RedundancyGroup
	params asdu.Params
	config Config

	rcvASDU  chan []byte
	sendASDU chan []byte
	rcvRaw   chan []byte
	sendRaw  chan []byte

	seqNoSend uint16
	ackNoSend uint16
	seqNoRcv  uint16
	ackNoRcv  uint16
	pending   []seqPending

	state    int32 // connState
	rwMux    sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	clog.Clog
}

func (sf *SlaveConn) run(parent context.Context) {
	sf.ctx, sf.cancel = context.WithCancel(parent)
	defer func() {
		sf.group.remove(sf)
		sf.server.mu.Lock()
		delete(sf.server.groups, sf)
		sf.server.mu.Unlock()
		_ = sf.conn.Close()
		sf.server.handler.ConnectionEventHandler(sf, EventDisconnected)
	}()

	sf.wg.Add(2)
	go sf.recvLoop()
	go sf.sendLoop()

	sf.server.handler.ConnectionEventHandler(sf, EventConnected)

	checkTicker := time.NewTicker(timeoutResolution)
	defer checkTicker.Stop()
	willNotTimeout := hal.SystemClock.Now().Add(time.Hour * 24 * 365 * 100)
	unAckRcvSince := willNotTimeout
	idleTimeout3Since := hal.SystemClock.Now()

	sendSFrame := func(rcvSN uint16) {
		sf.sendRaw <- newSFrame(rcvSN)
	}

	for {
		select {
		case <-sf.ctx.Done():
			sf.wg.Wait()
			return
		case o := <-sf.sendASDU:
			if atomic.LoadInt32(&sf.state) == int32(connInactive) {
				continue
			}
			seqNo := sf.seqNoSend
			iframe, err := newIFrame(seqNo, sf.seqNoRcv, o)
			if err != nil {
				continue
			}
			sf.ackNoRcv = sf.seqNoRcv
			sf.seqNoSend = (seqNo + 1) & 32767
			sf.pending = append(sf.pending, seqPending{seqNo & 32767, hal.SystemClock.Now()})
			sf.sendRaw <- iframe
			idleTimeout3Since = hal.SystemClock.Now()

		case now := <-checkTicker.C:
			if sf.ackNoSend != sf.seqNoSend && len(sf.pending) > 0 &&
				now.Sub(sf.pending[0].sendTime) >= sf.config.SendUnAckTimeout1 {
				sf.server.handler.ConnectionEventHandler(sf, EventTimeout)
				sf.wg.Wait()
				return
			}
			if sf.ackNoRcv != sf.seqNoRcv &&
				(now.Sub(unAckRcvSince) >= sf.config.RecvUnAckTimeout2 ||
					now.Sub(idleTimeout3Since) >= timeoutResolution) {
				sendSFrame(sf.seqNoRcv)
				sf.ackNoRcv = sf.seqNoRcv
			}
			if now.Sub(idleTimeout3Since) >= sf.config.IdleTimeout3 {
				sf.sendRaw <- newUFrame(uTestFrActive)
				idleTimeout3Since = hal.SystemClock.Now()
			}

		case apdu, ok := <-sf.rcvRaw:
			if !ok {
				sf.wg.Wait()
				return
			}
			idleTimeout3Since = hal.SystemClock.Now()
			apci, asduVal := parse(apdu)
			switch head := apci.(type) {
			case sAPCI:
				sf.updateAckNoOut(head.rcvSN)

			case iAPCI:
				if atomic.LoadInt32(&sf.state) == int32(connInactive) {
					continue
				}
				if head.sendSN != sf.seqNoRcv {
					sf.server.handler.ConnectionEventHandler(sf, EventSequenceError)
					sf.wg.Wait()
					return
				}
				sf.updateAckNoOut(head.rcvSN)

				asduPack := asdu.NewEmptyASDU(&sf.params)
				if err := asduPack.UnmarshalBinary(asduVal); err == nil {
					if err := dispatch(sf, &sf.server.handler, asduPack); err != nil {
						sf.Warn("handler failed, %v", err)
					}
				}
				if sf.ackNoRcv == sf.seqNoRcv {
					unAckRcvSince = hal.SystemClock.Now()
				}
				sf.seqNoRcv = (sf.seqNoRcv + 1) & 32767
				atomic.StoreInt32(&sf.state, int32(connActiveAndOpen))
				if seqNoCount(sf.ackNoRcv, sf.seqNoRcv) >= sf.config.RecvUnAckLimitW {
					sendSFrame(sf.seqNoRcv)
					sf.ackNoRcv = sf.seqNoRcv
				}

			case uAPCI:
				switch head.function {
				case uStartDtActive:
					sf.sendRaw <- newUFrame(uStartDtConfirm)
					atomic.StoreInt32(&sf.state, int32(connActive))
					sf.group.activate(sf)
					sf.server.handler.ConnectionEventHandler(sf, EventActivated)
				case uStopDtActive:
					sf.sendRaw <- newUFrame(uStopDtConfirm)
					atomic.StoreInt32(&sf.state, int32(connInactive))
					sf.group.deactivate(sf)
					sf.server.handler.ConnectionEventHandler(sf, EventDeactivated)
				case uTestFrActive:
					sf.sendRaw <- newUFrame(uTestFrConfirm)
				default:
					sf.Warn("illegal U-frame function 0x%02x ignored", head.function)
				}
			}
		}
	}
}

func (sf *SlaveConn) recvLoop() {
	defer func() {
		sf.cancel()
		sf.wg.Done()
	}()
	for {
		rawData := hal.Alloc(APDUSizeMax)
		for rdCnt, length := 0, 2; rdCnt < length; {
			byteCount, err := io.ReadFull(sf.conn, rawData[rdCnt:length])
			if err != nil {
				if err != io.EOF && err != io.ErrClosedPipe ||
					strings.Contains(err.Error(), "use of closed network connection") {
					return
				}
				if e, ok := err.(net.Error); ok && !e.Temporary() {
					return
				}
				if rdCnt == 0 && err == io.EOF {
					return
				}
			}
			rdCnt += byteCount
			if rdCnt == 0 {
				continue
			} else if rdCnt == 1 {
				if rawData[0] != startFrame {
					rdCnt = 0
					continue
				}
			} else {
				if rawData[0] != startFrame {
					rdCnt, length = 0, 2
					continue
				}
				length = int(rawData[1]) + 2
				if length < APCICtlFiledSize+2 || length > APDUSizeMax {
					rdCnt, length = 0, 2
					continue
				}
				if rdCnt == length {
					select {
					case sf.rcvRaw <- rawData[:length]:
					case <-sf.ctx.Done():
						return
					}
				}
			}
		}
	}
}

func (sf *SlaveConn) sendLoop() {
	defer func() {
		sf.cancel()
		sf.wg.Done()
	}()
	for {
		select {
		case <-sf.ctx.Done():
			return
		case apdu := <-sf.sendRaw:
			for wrCnt := 0; len(apdu) > wrCnt; {
				byteCount, err := sf.conn.Write(apdu[wrCnt:])
				if err != nil {
					return
				}
				wrCnt += byteCount
			}
		}
	}
}

func (sf *SlaveConn) updateAckNoOut(ackNo uint16) {
	if ackNo == sf.ackNoSend {
		return
	}
	for i, v := range sf.pending {
		if v.seq == (ackNo - 1) {
			sf.pending = sf.pending[i+1:]
			break
		}
	}
	sf.ackNoSend = ackNo
}

// forceDeactivate is called by RedundancyGroup.activate on the previously
// active member when another connection takes over.
func (sf *SlaveConn) forceDeactivate() {
	atomic.StoreInt32(&sf.state, int32(connInactive))
	sf.sendRaw <- newUFrame(uStopDtConfirm)
}

func (sf *SlaveConn) enqueueASDU(raw []byte) error {
	select {
	case sf.sendASDU <- raw:
		return nil
	default:
		return ErrBufferFulled
	}
}

// Params returns the application layer parameters in force.
func (sf *SlaveConn) Params() *asdu.Params { return &sf.params }

// Send hands a built ASDU to the connection's outbound queue, routed
// through the redundancy group so only the active member actually emits
// it; with no member active the group queues a clone of a and marshals
// it lazily on replay, so its cause of transmission can still be
// rewritten at that point.
func (sf *SlaveConn) Send(a *asdu.ASDU) error {
	return sf.group.send(a)
}

// SendACT_CON mirrors a back with IsNegative set per negative.
func (sf *SlaveConn) SendACT_CON(a *asdu.ASDU, negative bool) error {
	r := a.Clone()
	r.Coa.IsNegative = negative
	return sf.Send(r)
}

// SendACT_TERM mirrors a with cause ActivationTerm.
func (sf *SlaveConn) SendACT_TERM(a *asdu.ASDU) error {
	return a.SendReplyMirror(sf, asdu.ActivationTerm)
}

// PeerAddr returns the remote address of the underlying connection.
func (sf *SlaveConn) PeerAddr() string {
	return sf.conn.RemoteAddr().String()
}

// IsActive reports whether this connection is the redundancy group's
// current active member.
func (sf *SlaveConn) IsActive() bool {
	return sf.group.isActive(sf)
}
