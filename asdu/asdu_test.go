// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is a minimal Connect that records the last ASDU handed to Send.
type fakeConn struct {
	params *Params
	last   *ASDU
}

func (c *fakeConn) Params() *Params   { return c.params }
func (c *fakeConn) Send(a *ASDU) error {
	c.last = a
	return nil
}

func TestSingleRoundTrip(t *testing.T) {
	conn := &fakeConn{params: ParamsWide}
	err := Single(conn, false,
		CauseOfTransmission{Cause: Spontaneous},
		CommonAddr(1),
		SinglePointInfo{Ioa: InfoObjAddr(1000), Value: true, Qds: QDSGood})
	require.NoError(t, err)

	raw, err := conn.last.MarshalBinary()
	require.NoError(t, err)

	got := NewEmptyASDU(ParamsWide)
	require.NoError(t, got.UnmarshalBinary(raw))

	assert.Equal(t, M_SP_NA_1, got.Type)
	assert.Equal(t, CommonAddr(1), got.CommonAddr)
	infos := got.GetSinglePoint()
	require.Len(t, infos, 1)
	assert.Equal(t, InfoObjAddr(1000), infos[0].Ioa)
	assert.True(t, infos[0].Value)
	assert.Equal(t, QDSGood, infos[0].Qds)
}

func TestSingleCmdRoundTrip(t *testing.T) {
	conn := &fakeConn{params: ParamsNarrow}
	err := SingleCmd(conn, C_SC_NA_1,
		CauseOfTransmission{Cause: Activation},
		CommonAddr(3),
		SingleCommandInfo{Ioa: InfoObjAddr(7), Value: true, Qoc: QualifierOfCommand{Qual: QOCNoAdditionalDefinition}})
	require.NoError(t, err)

	raw, err := conn.last.MarshalBinary()
	require.NoError(t, err)

	got := NewEmptyASDU(ParamsNarrow)
	require.NoError(t, got.UnmarshalBinary(raw))
	cmd := got.GetSingleCmd()
	assert.Equal(t, InfoObjAddr(7), cmd.Ioa)
	assert.True(t, cmd.Value)
}

func TestMarshalBinaryRejectsUnusedCause(t *testing.T) {
	a := NewASDU(ParamsWide, Identifier{Type: M_SP_NA_1, CommonAddr: 1})
	_, err := a.MarshalBinary()
	assert.ErrorIs(t, err, ErrCauseZero)
}

func TestCloneIsIndependent(t *testing.T) {
	conn := &fakeConn{params: ParamsWide}
	require.NoError(t, Single(conn, false,
		CauseOfTransmission{Cause: Spontaneous}, CommonAddr(1),
		SinglePointInfo{Ioa: InfoObjAddr(1), Value: false, Qds: QDSGood}))

	clone := conn.last.Clone()
	clone.CommonAddr = 2
	assert.Equal(t, CommonAddr(1), conn.last.CommonAddr)
	assert.Equal(t, CommonAddr(2), clone.CommonAddr)
}
