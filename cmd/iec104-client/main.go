// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Command iec104-client runs a CS104 master that connects to a single
// slave, starts data transfer, issues a station interrogation, and logs
// every monitoring-direction ASDU it receives.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
	"github.com/mz-automation/lib60870-sub002/cs104"
)

const commonAddr asdu.CommonAddr = 1

func main() {
	server := flag.String("server", "127.0.0.1:2404", "server address")
	flag.Parse()

	log := clog.NewLogrusLogger("iec104-client")

	handler := cs104.Handler{
		ConnectionEventHandler: func(conn cs104.Connect, event cs104.ConnectionEventKind) {
			log.Debug("%s: %s", conn.PeerAddr(), event)
		},
		ASDUHandler: func(conn cs104.Connect, a *asdu.ASDU) error {
			switch a.Type {
			case asdu.M_SP_NA_1, asdu.M_SP_TA_1, asdu.M_SP_TB_1:
				log.Debug("single point: %+v", a.GetSinglePoint())
			case asdu.M_EI_NA_1:
				ioa, coi := a.GetEndOfInitialization()
				log.Debug("end of initialization: ioa=%d cause=%v local-change=%v", ioa, coi.Cause, coi.IsLocalChange)
			default:
				log.Debug("unhandled asdu type %v", a.Type)
			}
			return nil
		},
	}

	client := cs104.NewClient(handler, cs104.NewClientOption(*server))
	client.SetOnConnectHandler(func(c *cs104.Client) {
		c.SendStartDt()
		go func() {
			time.Sleep(2 * time.Second)
			if err := c.InterrogationCmd(asdu.CauseOfTransmission{Cause: asdu.Activation}, commonAddr, asdu.QOIStation); err != nil {
				log.Warn("interrogation failed: %v", err)
			}
		}()
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Start(ctx); err != nil && ctx.Err() == nil {
		log.Error("client stopped: %v", err)
	}
}
