// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Command iec101-master runs a CS101 unbalanced master polling two
// simulated slaves, each on its own pty pair standing in for an RS-485
// line, and logs every ASDU the slaves return.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/daedaluz/goserial"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
	"github.com/mz-automation/lib60870-sub002/cs101"
	"github.com/mz-automation/lib60870-sub002/internal/hal"
)

const linkAddr1, linkAddr2 uint16 = 1, 2

func runSlave(ctx context.Context, log clog.Clog, port hal.SerialPort, addr uint16, commonAddr asdu.CommonAddr) {
	count := 0
	handler := cs101.Handler{
		ConnectionEventHandler: func(conn cs101.Connect, event cs101.ConnectionEventKind) {
			log.Debug("slave %d: %s", addr, event)
		},
	}
	transport := hal.NewSerialTransport(port)
	slave := cs101.NewSlave(handler, transport, cs101.LinkLayerParams{AddrSize: cs101.LinkAddrSize1}, *asdu.ParamsWide, addr)

	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count++
				_ = asdu.Single(slave, false,
					asdu.CauseOfTransmission{Cause: asdu.Spontaneous},
					commonAddr,
					asdu.SinglePointInfo{Ioa: asdu.InfoObjAddr(1), Value: count%2 == 0, Qds: asdu.QDSGood})
			}
		}
	}()

	if err := slave.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("slave %d stopped: %v", addr, err)
	}
}

func main() {
	log := clog.NewLogrusLogger("iec101-master")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	masterPort1, slavePort1, err := serial.OpenPTY(nil, nil)
	if err != nil {
		log.Error("open pty 1: %v", err)
		return
	}
	defer masterPort1.Close()
	defer slavePort1.Close()

	masterPort2, slavePort2, err := serial.OpenPTY(nil, nil)
	if err != nil {
		log.Error("open pty 2: %v", err)
		return
	}
	defer masterPort2.Close()
	defer slavePort2.Close()

	go runSlave(ctx, log, slavePort1, linkAddr1, asdu.CommonAddr(1))
	go runSlave(ctx, log, slavePort2, linkAddr2, asdu.CommonAddr(2))

	handler := cs101.Handler{
		ConnectionEventHandler: func(conn cs101.Connect, event cs101.ConnectionEventKind) {
			log.Debug("master: %s", event)
		},
		ASDUHandler: func(conn cs101.Connect, a *asdu.ASDU) error {
			log.Debug("ca=%d type=%v: %+v", a.CommonAddr, a.Type, a.GetSinglePoint())
			return nil
		},
	}

	link1 := cs101.NewMaster(handler, hal.NewSerialTransport(masterPort1), cs101.LinkLayerParams{AddrSize: cs101.LinkAddrSize1}, *asdu.ParamsWide, cs101.DefaultPollTiming())
	link1.AddStation(linkAddr1)

	link2 := cs101.NewMaster(handler, hal.NewSerialTransport(masterPort2), cs101.LinkLayerParams{AddrSize: cs101.LinkAddrSize1}, *asdu.ParamsWide, cs101.DefaultPollTiming())
	link2.AddStation(linkAddr2)

	go func() {
		if err := link2.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("master link 2 stopped: %v", err)
		}
	}()

	if err := link1.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("master link 1 stopped: %v", err)
	}
}
