// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Command iec104-server runs a CS104 slave with a small simulated process
// image: one single point that flips on a timer and reports itself on
// interrogation, plus a single command handler that accepts C_SC_NA_1.
package main

import (
	"context"
	"flag"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
	"github.com/mz-automation/lib60870-sub002/cs104"
)

const (
	commonAddr asdu.CommonAddr = 1
	pointAddr                  = asdu.InfoObjAddr(1000)
)

type processImage struct {
	mu    sync.Mutex
	value bool
}

func (p *processImage) toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = !p.value
	return p.value
}

func (p *processImage) get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// activeConn tracks the single connection currently allowed to receive
// spontaneous traffic; set/cleared from ConnectionEventHandler.
type activeConn struct {
	mu   sync.Mutex
	conn cs104.Connect
}

func (a *activeConn) set(c cs104.Connect) {
	a.mu.Lock()
	a.conn = c
	a.mu.Unlock()
}

func (a *activeConn) clear(c cs104.Connect) {
	a.mu.Lock()
	if a.conn == c {
		a.conn = nil
	}
	a.mu.Unlock()
}

func (a *activeConn) get() cs104.Connect {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn
}

func main() {
	addr := flag.String("addr", ":2404", "listen address")
	flag.Parse()

	log := clog.NewLogrusLogger("iec104-server")
	image := &processImage{}
	active := &activeConn{}

	handler := cs104.Handler{
		ConnectionEventHandler: func(conn cs104.Connect, event cs104.ConnectionEventKind) {
			log.Debug("%s: %s", conn.PeerAddr(), event)
			switch event {
			case cs104.EventActivated:
				active.set(conn)
				if err := asdu.EndOfInitialization(conn, asdu.CauseOfTransmission{}, commonAddr, 0,
					asdu.CauseOfInitial{Cause: asdu.COILocalPowerOn}); err != nil {
					log.Warn("end-of-initialization send failed: %v", err)
				}
			case cs104.EventDeactivated, cs104.EventDisconnected:
				active.clear(conn)
			}
		},
		InterrogationHandler: func(conn cs104.Connect, a *asdu.ASDU, qoi asdu.QualifierOfInterrogation) error {
			if err := conn.SendACT_CON(a, false); err != nil {
				return err
			}
			if err := asdu.Single(conn, false,
				asdu.CauseOfTransmission{Cause: asdu.InterrogatedByStation},
				commonAddr,
				asdu.SinglePointInfo{Ioa: pointAddr, Value: image.get(), Qds: asdu.QDSGood}); err != nil {
				return err
			}
			return conn.SendACT_TERM(a)
		},
		ASDUHandler: func(conn cs104.Connect, a *asdu.ASDU) error {
			if a.Type != asdu.C_SC_NA_1 {
				return nil
			}
			cmd := a.GetSingleCmd()
			log.Debug("%s: single command ioa=%d value=%v", conn.PeerAddr(), cmd.Ioa, cmd.Value)
			image.mu.Lock()
			image.value = cmd.Value
			image.mu.Unlock()
			return conn.SendACT_CON(a, false)
		},
	}

	server := cs104.NewServer(handler, cs104.NewServerOption())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				conn := active.get()
				if conn == nil {
					continue
				}
				value := image.toggle()
				if err := asdu.Single(conn, false,
					asdu.CauseOfTransmission{Cause: asdu.Spontaneous},
					commonAddr,
					asdu.SinglePointInfo{Ioa: pointAddr, Value: value, Qds: asdu.QDSGood, Time: time.Now()}); err != nil {
					log.Warn("spontaneous send failed: %v", err)
				}
			}
		}
	}()

	log.Debug("listening on %s", *addr)
	if err := server.ListenAndServe(ctx, *addr); err != nil && ctx.Err() == nil {
		log.Error("serve failed: %v", err)
	}
}
