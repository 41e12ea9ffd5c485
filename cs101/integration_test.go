// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mz-automation/lib60870-sub002/asdu"
)

// TestMasterPollsSlaveSpontaneousData drives a real Master/Slave pair over
// an in-memory duplex pipe: the master resets the link, polls for class-1
// data, and must see the single point the slave queued before the poll.
func TestMasterPollsSlaveSpontaneousData(t *testing.T) {
	masterConn, slaveConn := net.Pipe()
	defer masterConn.Close()
	defer slaveConn.Close()

	link := LinkLayerParams{AddrSize: LinkAddrSize1}
	params := *asdu.ParamsWide

	received := make(chan asdu.SinglePointInfo, 1)
	masterHandler := Handler{
		ASDUHandler: func(_ Connect, a *asdu.ASDU) error {
			infos := a.GetSinglePoint()
			if len(infos) == 0 {
				return nil
			}
			received <- infos[0]
			return nil
		},
	}

	slave := NewSlave(Handler{}, slaveConn, link, params, 3)
	require.NoError(t, asdu.Single(slave, false,
		asdu.CauseOfTransmission{Cause: asdu.Spontaneous}, 1,
		asdu.SinglePointInfo{Ioa: 100, Value: true, Qds: asdu.QDSGood}))

	master := NewMaster(masterHandler, masterConn, link, params, PollTiming{
		ResponseTimeout: 2 * time.Second,
		CycleDelay:      20 * time.Millisecond,
		MaxRetries:      3,
	})
	master.AddStation(3)
	// a fresh station only requests class-2, and the slave sets ACD only on
	// a data response; seed acdSeen so the first poll after the link reset
	// requests the class-1 data queued above.
	master.getStation(3).acdSeen = true

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go slave.Run(ctx)
	go master.Run(ctx)

	select {
	case info := <-received:
		assert.EqualValues(t, 100, info.Ioa)
		assert.True(t, info.Value)
	case <-time.After(2 * time.Second):
		t.Fatal("master never received the slave's queued single point")
	}
}

// TestMasterDeliversConfirmedSendToSlave exercises the master's confirmed
// send path: a queued ASDU is dispatched to the slave's ASDUHandler on the
// station's next poll turn, with the FCB toggling correctly.
func TestMasterDeliversConfirmedSendToSlave(t *testing.T) {
	masterConn, slaveConn := net.Pipe()
	defer masterConn.Close()
	defer slaveConn.Close()

	link := LinkLayerParams{AddrSize: LinkAddrSize1}
	params := *asdu.ParamsWide

	received := make(chan asdu.CommonAddr, 1)
	slaveHandler := Handler{
		ASDUHandler: func(_ Connect, a *asdu.ASDU) error {
			received <- a.CommonAddr
			return nil
		},
	}

	slave := NewSlave(slaveHandler, slaveConn, link, params, 3)
	master := NewMaster(Handler{}, masterConn, link, params, PollTiming{
		ResponseTimeout: 2 * time.Second,
		CycleDelay:      20 * time.Millisecond,
		MaxRetries:      3,
	})
	master.AddStation(3)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go slave.Run(ctx)
	go master.Run(ctx)

	require.NoError(t, asdu.Single(master, false,
		asdu.CauseOfTransmission{Cause: asdu.Spontaneous}, 3,
		asdu.SinglePointInfo{Ioa: 5, Value: true, Qds: asdu.QDSGood}))

	select {
	case ca := <-received:
		assert.EqualValues(t, 3, ca)
	case <-time.After(2 * time.Second):
		t.Fatal("slave never received the master's confirmed send")
	}
}
