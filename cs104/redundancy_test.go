// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/clog"
)

func newTestSlaveConn(g *RedundancyGroup) *SlaveConn {
	sc := &SlaveConn{
		group:    g,
		sendASDU: make(chan []byte, maxQueuedASDUs+4),
		sendRaw:  make(chan []byte, 4),
		Clog:     clog.NewLogger("test"),
	}
	g.add(sc)
	return sc
}

// testSpontASDU builds a minimal single-point spontaneous ASDU addressed
// to common address 1, information object address ioa.
func testSpontASDU(t *testing.T, ioa asdu.InfoObjAddr) *asdu.ASDU {
	t.Helper()
	u := asdu.NewASDU(asdu.ParamsWide, asdu.Identifier{
		Type:       asdu.M_SP_NA_1,
		Variable:   asdu.VariableStruct{IsSequence: false, Number: 1},
		Coa:        asdu.CauseOfTransmission{Cause: asdu.Spontaneous},
		CommonAddr: asdu.CommonAddr(1),
	})
	require.NoError(t, u.AppendInfoObjAddr(ioa))
	u.AppendBytes(0x01)
	return u
}

func TestRedundancyGroupActivateDeactivatesPrevious(t *testing.T) {
	g := NewRedundancyGroup()
	a := newTestSlaveConn(g)
	b := newTestSlaveConn(g)

	g.activate(a)
	assert.True(t, g.isActive(a))
	assert.False(t, g.isActive(b))

	g.activate(b)
	assert.True(t, g.isActive(b))
	assert.False(t, g.isActive(a))

	select {
	case raw := <-a.sendRaw:
		assert.Equal(t, newUFrame(uStopDtConfirm), raw)
	default:
		t.Fatal("expected forceDeactivate to queue a STOPDT confirmation on the demoted connection")
	}
}

func TestRedundancyGroupSendQueuesWithNoActiveMember(t *testing.T) {
	g := NewRedundancyGroup()
	require.NoError(t, g.send(testSpontASDU(t, 1)))

	a := newTestSlaveConn(g)
	g.activate(a)

	select {
	case raw := <-a.sendASDU:
		got := asdu.NewEmptyASDU(asdu.ParamsWide)
		require.NoError(t, got.UnmarshalBinary(raw))
		assert.Equal(t, asdu.M_SP_NA_1, got.Type)
	default:
		t.Fatal("expected the queued ASDU to replay to the newly activated connection")
	}
}

// TestRedundancyGroupReplayRewritesCause checks that a spontaneous ASDU
// queued while no member was active is replayed with cause
// asdu.StoredData rather than its original asdu.Spontaneous, per the
// redundancy group's reactivation contract.
func TestRedundancyGroupReplayRewritesCause(t *testing.T) {
	g := NewRedundancyGroup()
	sent := testSpontASDU(t, 7)
	require.NoError(t, g.send(sent))
	require.Equal(t, asdu.Spontaneous, sent.Coa.Cause, "send must not mutate the caller's ASDU")

	a := newTestSlaveConn(g)
	g.activate(a)

	raw := <-a.sendASDU
	got := asdu.NewEmptyASDU(asdu.ParamsWide)
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Equal(t, asdu.StoredData, got.Coa.Cause)
	assert.Equal(t, asdu.InfoObjAddr(7), got.GetSinglePoint()[0].Ioa)
}

// TestRedundancyGroupQueueIsBounded checks that queuing more than
// maxQueuedASDUs spontaneous ASDUs while inactive evicts the oldest
// ones instead of growing without bound.
func TestRedundancyGroupQueueIsBounded(t *testing.T) {
	g := NewRedundancyGroup()
	for i := 0; i < maxQueuedASDUs+10; i++ {
		require.NoError(t, g.send(testSpontASDU(t, asdu.InfoObjAddr(i))))
	}
	assert.Len(t, g.queue, maxQueuedASDUs)

	a := newTestSlaveConn(g)
	g.activate(a)

	first := <-a.sendASDU
	got := asdu.NewEmptyASDU(asdu.ParamsWide)
	require.NoError(t, got.UnmarshalBinary(first))
	assert.Equal(t, asdu.InfoObjAddr(10), got.GetSinglePoint()[0].Ioa,
		"the oldest 10 entries should have been evicted, leaving ioa=10 first")
}

func TestRedundancyGroupRemoveClearsActive(t *testing.T) {
	g := NewRedundancyGroup()
	a := newTestSlaveConn(g)
	g.activate(a)
	require.True(t, g.isActive(a))

	g.remove(a)
	assert.False(t, g.isActive(a))
	assert.Equal(t, 0, g.memberCount())
}
