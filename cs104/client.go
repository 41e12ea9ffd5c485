// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"context"
	"errors"
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

const (
	initial uint32 = iota
	disconnected
	connected
)

const (
	inactive uint32 = iota
	active
)

type seqPending struct {
	seq      uint16
	sendTime time.Time
}

func seqNoCount(from, to uint16) uint16 {
	return (to - from) & 32767
}

// Client is an IEC 60870-5-104 master: one TCP connection to a single
// controlled station, carrying the I/S/U-frame window protocol and
// dispatching decoded ASDUs to a Handler.
type Client struct {
	option  ClientOption
	conn    net.Conn
	handler Handler

	rcvASDU  chan []byte
	sendASDU chan []byte
	rcvRaw   chan []byte
	sendRaw  chan []byte

	seqNoSend uint16
	ackNoSend uint16
	seqNoRcv  uint16
	ackNoRcv  uint16

	pending []seqPending

	startDtActiveSendSince atomic.Value
	stopDtActiveSendSince  atomic.Value

	status   uint32
	rwMux    sync.RWMutex
	isActive uint32

	clog.Clog

	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeCancel context.CancelFunc

	onConnect        func(c *Client)
	onConnectionLost func(c *Client)
}

// NewClient returns a CS104 master using o, dispatching to handler.
func NewClient(handler Handler, o *ClientOption) *Client {
	if err := o.config.Valid(); err != nil {
		o.config = DefaultConfig()
	}
	handler.setDefaults()
	return &Client{
		option:           *o,
		handler:          handler,
		rcvASDU:          make(chan []byte, uint32(o.config.RecvUnAckLimitW)<<4),
		sendASDU:         make(chan []byte, uint32(o.config.SendUnAckLimitK)<<4),
		rcvRaw:           make(chan []byte, uint32(o.config.RecvUnAckLimitW)<<5),
		sendRaw:          make(chan []byte, uint32(o.config.SendUnAckLimitK)<<5),
		Clog:             clog.NewLogger("cs104 client => "),
		onConnect:        func(*Client) {},
		onConnectionLost: func(*Client) {},
	}
}

// SetOnConnectHandler sets the callback fired once the TCP connection
// has been accepted, before STARTDT is sent.
func (sf *Client) SetOnConnectHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onConnect = f
	}
	return sf
}

// SetConnectionLostHandler sets the callback fired once run() returns.
func (sf *Client) SetConnectionLostHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onConnectionLost = f
	}
	return sf
}

// Start dials the server and runs the session until ctx is cancelled,
// Close is called, or a fatal protocol error occurs.
func (sf *Client) Start(ctx context.Context) error {
	sf.rwMux.Lock()
	if !atomic.CompareAndSwapUint32(&sf.status, initial, disconnected) {
		sf.rwMux.Unlock()
		return errors.New("cs104: client already started")
	}
	ctx, sf.closeCancel = context.WithCancel(ctx)
	sf.rwMux.Unlock()
	defer sf.setConnectStatus(initial)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sf.Debug("connecting server %s", sf.option.server)
	conn, err := openConnection(ctx, sf.option.server, sf.option.TLSConfig, sf.option.config.ConnectTimeout0, sf.option.DialContext)
	if err != nil {
		sf.Error("connect failed, %v", err)
		return err
	}
	sf.Debug("connect success")
	sf.conn = conn
	err = sf.run(ctx)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		sf.Debug("disconnected, %v", err)
	} else if err != nil {
		sf.Error("run failed, %v", err)
	}
	return err
}

func (sf *Client) recvLoop() {
	sf.Debug("recvLoop started")
	defer func() {
		sf.cancel()
		sf.wg.Done()
		sf.Debug("recvLoop stopped")
	}()

	for {
		rawData := hal.Alloc(APDUSizeMax)
		for rdCnt, length := 0, 2; rdCnt < length; {
			byteCount, err := io.ReadFull(sf.conn, rawData[rdCnt:length])
			if err != nil {
				if err != io.EOF && err != io.ErrClosedPipe ||
					strings.Contains(err.Error(), "use of closed network connection") {
					sf.Error("receive failed, %v", err)
					return
				}
				if e, ok := err.(net.Error); ok && !e.Temporary() {
					sf.Error("receive failed, %v", err)
					return
				}
				if rdCnt == 0 && err == io.EOF {
					sf.Error("remote connect closed, %v", err)
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
					apdu := rawData[:length]
					sf.Debug("RX Raw[% x]", apdu)
					sf.handler.RawMessageHandler(sf, apdu, false)
					sf.rcvRaw <- apdu
				}
			}
		}
	}
}

func (sf *Client) sendLoop() {
	sf.Debug("sendLoop started")
	defer func() {
		sf.cancel()
		sf.wg.Done()
		sf.Debug("sendLoop stopped")
	}()
	for {
		select {
		case <-sf.ctx.Done():
			return
		case apdu := <-sf.sendRaw:
			sf.Debug("TX Raw[% x]", apdu)
			sf.handler.RawMessageHandler(sf, apdu, true)
			for wrCnt := 0; len(apdu) > wrCnt; {
				byteCount, err := sf.conn.Write(apdu[wrCnt:])
				if err != nil {
					if err != io.EOF && err != io.ErrClosedPipe ||
						strings.Contains(err.Error(), "use of closed network connection") {
						sf.Error("sendRaw failed, %v", err)
						return
					}
					if e, ok := err.(net.Error); !ok || !e.Temporary() {
						sf.Error("sendRaw failed, %v", err)
						return
					}
				}
				wrCnt += byteCount
			}
		}
	}
}

// run is the state machine driving one connection's lifetime: window
// bookkeeping, t1-t3 timers and the STARTDT/STOPDT/TESTFR handshake.
func (sf *Client) run(ctx context.Context) error {
	sf.Debug("run started")
	sf.cleanUp()

	sf.ctx, sf.cancel = context.WithCancel(ctx)
	sf.setConnectStatus(connected)
	sf.wg.Add(3)
	go sf.recvLoop()
	go sf.sendLoop()
	go sf.handlerLoop()

	checkTicker := time.NewTicker(timeoutResolution)
	willNotTimeout := hal.SystemClock.Now().Add(time.Hour * 24 * 365 * 100)

	unAckRcvSince := willNotTimeout
	idleTimeout3Since := hal.SystemClock.Now()
	testFrAliveSendSince := willNotTimeout

	sf.startDtActiveSendSince.Store(willNotTimeout)
	sf.stopDtActiveSendSince.Store(willNotTimeout)

	sendSFrame := func(rcvSN uint16) {
		sf.Debug("TX sFrame %v", sAPCI{rcvSN})
		sf.sendRaw <- newSFrame(rcvSN)
	}

	sendIFrame := func(asdu1 []byte) {
		seqNo := sf.seqNoSend

		iframe, err := newIFrame(seqNo, sf.seqNoRcv, asdu1)
		if err != nil {
			return
		}
		sf.ackNoRcv = sf.seqNoRcv
		sf.seqNoSend = (seqNo + 1) & 32767
		sf.pending = append(sf.pending, seqPending{seqNo & 32767, hal.SystemClock.Now()})

		sf.Debug("TX iFrame %v", iAPCI{seqNo, sf.seqNoRcv})
		sf.sendRaw <- iframe
	}

	defer func() {
		atomic.StoreUint32(&sf.isActive, inactive)
		sf.setConnectStatus(disconnected)
		checkTicker.Stop()
		_ = sf.conn.Close()
		sf.wg.Wait()
		sf.handler.ConnectionEventHandler(sf, EventDisconnected)
		sf.onConnectionLost(sf)
		sf.Debug("run stopped")
	}()

	sf.onConnect(sf)
	sf.handler.ConnectionEventHandler(sf, EventConnected)
	for {
		if atomic.LoadUint32(&sf.isActive) == active && seqNoCount(sf.ackNoSend, sf.seqNoSend) <= sf.option.config.SendUnAckLimitK {
			select {
			case o := <-sf.sendASDU:
				sendIFrame(o)
				idleTimeout3Since = hal.SystemClock.Now()
				continue
			case <-sf.ctx.Done():
				return sf.ctx.Err()
			default:
			}
		}
		select {
		case <-sf.ctx.Done():
			return sf.ctx.Err()
		case now := <-checkTicker.C:
			if now.Sub(testFrAliveSendSince) >= sf.option.config.SendUnAckTimeout1 ||
				now.Sub(sf.startDtActiveSendSince.Load().(time.Time)) >= sf.option.config.SendUnAckTimeout1 ||
				now.Sub(sf.stopDtActiveSendSince.Load().(time.Time)) >= sf.option.config.SendUnAckTimeout1 {
				sf.handler.ConnectionEventHandler(sf, EventTimeout)
				return errors.New("cs104: test frame alive confirm timeout t1")
			}
			if sf.ackNoSend != sf.seqNoSend &&
				now.Sub(sf.pending[0].sendTime) >= sf.option.config.SendUnAckTimeout1 {
				sf.handler.ConnectionEventHandler(sf, EventTimeout)
				return errors.New("cs104: fatal transmission timeout t1")
			}

			if sf.ackNoRcv != sf.seqNoRcv &&
				(now.Sub(unAckRcvSince) >= sf.option.config.RecvUnAckTimeout2 ||
					now.Sub(idleTimeout3Since) >= timeoutResolution) {
				sendSFrame(sf.seqNoRcv)
				sf.ackNoRcv = sf.seqNoRcv
			}

			if now.Sub(idleTimeout3Since) >= sf.option.config.IdleTimeout3 {
				sf.sendUFrame(uTestFrActive)
				testFrAliveSendSince = hal.SystemClock.Now()
				idleTimeout3Since = testFrAliveSendSince
			}

		case apdu := <-sf.rcvRaw:
			idleTimeout3Since = hal.SystemClock.Now()
			apci, asduVal := parse(apdu)
			switch head := apci.(type) {
			case sAPCI:
				sf.Debug("RX sFrame %v", head)
				if !sf.updateAckNoOut(head.rcvSN) {
					sf.handler.ConnectionEventHandler(sf, EventSequenceError)
					return errors.New("cs104: acknowledge either earlier than previous or later than sent")
				}

			case iAPCI:
				sf.Debug("RX iFrame %v", head)
				if atomic.LoadUint32(&sf.isActive) == inactive {
					sf.Warn("station not active")
					break
				}
				if !sf.updateAckNoOut(head.rcvSN) || head.sendSN != sf.seqNoRcv {
					sf.handler.ConnectionEventHandler(sf, EventSequenceError)
					return errors.New("cs104: sequence error on received I-frame")
				}

				sf.rcvASDU <- asduVal
				if sf.ackNoRcv == sf.seqNoRcv {
					unAckRcvSince = hal.SystemClock.Now()
				}

				sf.seqNoRcv = (sf.seqNoRcv + 1) & 32767
				if seqNoCount(sf.ackNoRcv, sf.seqNoRcv) >= sf.option.config.RecvUnAckLimitW {
					sendSFrame(sf.seqNoRcv)
					sf.ackNoRcv = sf.seqNoRcv
				}

			case uAPCI:
				sf.Debug("RX uFrame %v", head)
				switch head.function {
				case uStartDtConfirm:
					atomic.StoreUint32(&sf.isActive, active)
					sf.startDtActiveSendSince.Store(willNotTimeout)
					sf.handler.ConnectionEventHandler(sf, EventActivated)
				case uStopDtConfirm:
					atomic.StoreUint32(&sf.isActive, inactive)
					sf.stopDtActiveSendSince.Store(willNotTimeout)
					sf.handler.ConnectionEventHandler(sf, EventDeactivated)
				case uTestFrActive:
					sf.sendUFrame(uTestFrConfirm)
				case uTestFrConfirm:
					testFrAliveSendSince = willNotTimeout
				default:
					sf.Error("illegal U-frame function 0x%02x ignored", head.function)
				}
			}
		}
	}
}

func (sf *Client) handlerLoop() {
	sf.Debug("handlerLoop started")
	defer func() {
		sf.wg.Done()
		sf.Debug("handlerLoop stopped")
	}()

	for {
		select {
		case <-sf.ctx.Done():
			return
		case rawAsdu := <-sf.rcvASDU:
			asduPack := asdu.NewEmptyASDU(&sf.option.params)
			if err := asduPack.UnmarshalBinary(rawAsdu); err != nil {
				sf.Warn("asdu UnmarshalBinary failed, %v", err)
				continue
			}
			if err := dispatch(sf, &sf.handler, asduPack); err != nil {
				sf.Warn("handler failed, %v", err)
			}
		}
	}
}

func (sf *Client) setConnectStatus(status uint32) {
	sf.rwMux.Lock()
	atomic.StoreUint32(&sf.status, status)
	sf.rwMux.Unlock()
}

func (sf *Client) connectStatus() uint32 {
	sf.rwMux.RLock()
	status := atomic.LoadUint32(&sf.status)
	sf.rwMux.RUnlock()
	return status
}

func (sf *Client) cleanUp() {
	sf.ackNoRcv = 0
	sf.ackNoSend = 0
	sf.seqNoRcv = 0
	sf.seqNoSend = 0
	sf.pending = nil
loop:
	for {
		select {
		case <-sf.sendRaw:
		case <-sf.rcvRaw:
		case <-sf.rcvASDU:
		case <-sf.sendASDU:
		default:
			break loop
		}
	}
}

func (sf *Client) sendUFrame(which byte) {
	sf.Debug("TX uFrame %v", uAPCI{which})
	sf.sendRaw <- newUFrame(which)
}

func (sf *Client) updateAckNoOut(ackNo uint16) (ok bool) {
	if ackNo == sf.ackNoSend {
		return true
	}
	if seqNoCount(sf.ackNoSend, sf.seqNoSend) < seqNoCount(ackNo, sf.seqNoSend) {
		return false
	}
	for i, v := range sf.pending {
		if v.seq == (ackNo - 1) {
			sf.pending = sf.pending[i+1:]
			break
		}
	}
	sf.ackNoSend = ackNo
	return true
}

// IsConnected reports whether the TCP connection is up.
func (sf *Client) IsConnected() bool {
	return sf.connectStatus() == connected
}

// IsActive reports whether data transfer is active (STARTDT confirmed).
func (sf *Client) IsActive() bool {
	return atomic.LoadUint32(&sf.isActive) == active
}

// Params returns the application layer parameters in force.
func (sf *Client) Params() *asdu.Params {
	return &sf.option.params
}

// Send hands a built ASDU to the connection's outbound queue.
func (sf *Client) Send(a *asdu.ASDU) error {
	if !sf.IsConnected() {
		return ErrUseClosedConnection
	}
	if atomic.LoadUint32(&sf.isActive) == inactive {
		return ErrNotActive
	}
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	select {
	case sf.sendASDU <- data:
	default:
		return ErrBufferFulled
	}
	return nil
}

// SendACT_CON mirrors a back with Coa.Cause unchanged and IsNegative set
// per negative; used by masters answering a command originated elsewhere.
func (sf *Client) SendACT_CON(a *asdu.ASDU, negative bool) error {
	r := a.Clone()
	r.Coa.IsNegative = negative
	return sf.Send(r)
}

// SendACT_TERM mirrors a with cause ActivationTerm.
func (sf *Client) SendACT_TERM(a *asdu.ASDU) error {
	return a.SendReplyMirror(sf, asdu.ActivationTerm)
}

// PeerAddr returns the remote address of the underlying connection.
func (sf *Client) PeerAddr() string {
	if sf.conn == nil {
		return ""
	}
	return sf.conn.RemoteAddr().String()
}

// UnderlyingConn returns the underlying net.Conn.
func (sf *Client) UnderlyingConn() net.Conn {
	return sf.conn
}

// Close ends the session.
func (sf *Client) Close() error {
	sf.rwMux.Lock()
	if sf.closeCancel != nil {
		sf.closeCancel()
	}
	sf.rwMux.Unlock()
	return nil
}

// SendStartDt starts data transmission on this connection.
func (sf *Client) SendStartDt() {
	sf.startDtActiveSendSince.Store(hal.SystemClock.Now())
	sf.sendUFrame(uStartDtActive)
}

// SendStopDt stops data transmission on this connection.
func (sf *Client) SendStopDt() {
	sf.stopDtActiveSendSince.Store(hal.SystemClock.Now())
	sf.sendUFrame(uStopDtActive)
}

// InterrogationCmd sends C_IC_NA_1.
func (sf *Client) InterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qoi asdu.QualifierOfInterrogation) error {
	return asdu.InterrogationCmd(sf, coa, ca, qoi)
}

// CounterInterrogationCmd sends C_CI_NA_1.
func (sf *Client) CounterInterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qcc asdu.QualifierCountCall) error {
	return asdu.CounterInterrogationCmd(sf, coa, ca, qcc)
}

// ReadCmd sends C_RD_NA_1.
func (sf *Client) ReadCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, ioa asdu.InfoObjAddr) error {
	return asdu.ReadCmd(sf, coa, ca, ioa)
}

// ClockSynchronizationCmd sends C_CS_NA_1.
func (sf *Client) ClockSynchronizationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, t time.Time) error {
	return asdu.ClockSynchronizationCmd(sf, coa, ca, t)
}

// ResetProcessCmd sends C_RP_NA_1.
func (sf *Client) ResetProcessCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qrp asdu.QualifierOfResetProcessCmd) error {
	return asdu.ResetProcessCmd(sf, coa, ca, qrp)
}

// DelayAcquireCommand sends C_CD_NA_1.
func (sf *Client) DelayAcquireCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, msec uint16) error {
	return asdu.DelayAcquireCommand(sf, coa, ca, msec)
}

// TestCommand sends C_TS_NA_1.
func (sf *Client) TestCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr) error {
	return asdu.TestCommand(sf, coa, ca)
}
