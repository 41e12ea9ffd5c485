// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mz-automation/lib60870-sub002/clog"
)

func TestUpdateAckNoOutTrimsAcknowledgedPending(t *testing.T) {
	sf := &SlaveConn{
		pending: []seqPending{
			{seq: 0, sendTime: time.Now()},
			{seq: 1, sendTime: time.Now()},
			{seq: 2, sendTime: time.Now()},
		},
		Clog: clog.NewLogger("test"),
	}

	sf.updateAckNoOut(2) // peer has seen seq 0 and 1

	require.Len(t, sf.pending, 1)
	assert.EqualValues(t, 2, sf.pending[0].seq)
	assert.EqualValues(t, 2, sf.ackNoSend)
}

func TestUpdateAckNoOutNoopWhenUnchanged(t *testing.T) {
	sf := &SlaveConn{
		ackNoSend: 3,
		pending:   []seqPending{{seq: 3, sendTime: time.Now()}},
		Clog:      clog.NewLogger("test"),
	}

	sf.updateAckNoOut(3)

	assert.Len(t, sf.pending, 1, "pending must be untouched when the ack number hasn't advanced")
}

func TestEnqueueASDURejectsWhenBufferFull(t *testing.T) {
	sf := &SlaveConn{sendASDU: make(chan []byte, 1)}

	require.NoError(t, sf.enqueueASDU([]byte{1}))
	assert.ErrorIs(t, sf.enqueueASDU([]byte{2}), ErrBufferFulled)
}
