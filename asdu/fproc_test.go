// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReadyRoundTrip(t *testing.T) {
	conn := &fakeConn{params: ParamsWide}
	require.NoError(t, FileReady(conn, CauseOfTransmission{Cause: FileTransfer}, CommonAddr(1),
		FileReadyInfo{Ioa: 1, Qualifer: FileReadyQualifier{NameOfFile: 42, LengthOfFile: 123456, NotReady: false}}))

	raw, err := conn.last.MarshalBinary()
	require.NoError(t, err)

	got := NewEmptyASDU(ParamsWide)
	require.NoError(t, got.UnmarshalBinary(raw))
	info := got.GetFileReady()
	assert.EqualValues(t, 42, info.Qualifer.NameOfFile)
	assert.EqualValues(t, 123456, info.Qualifer.LengthOfFile)
	assert.False(t, info.Qualifer.NotReady)
}

func TestSegmentRoundTripVariableLength(t *testing.T) {
	conn := &fakeConn{params: ParamsWide}
	payload := make([]byte, 200)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, Segment(conn, CauseOfTransmission{Cause: FileTransfer}, CommonAddr(1),
		SegmentInfo{Ioa: 5, NameOfFile: 1, NameOfSection: 2, Data: payload}))

	raw, err := conn.last.MarshalBinary()
	require.NoError(t, err)

	got := NewEmptyASDU(ParamsWide)
	require.NoError(t, got.UnmarshalBinary(raw))
	info := got.GetSegment()
	assert.Equal(t, InfoObjAddr(5), info.Ioa)
	assert.Equal(t, payload, info.Data)
}

func TestSegmentRejectsOversizeData(t *testing.T) {
	conn := &fakeConn{params: ParamsWide}
	err := Segment(conn, CauseOfTransmission{Cause: FileTransfer}, CommonAddr(1),
		SegmentInfo{Ioa: 5, NameOfFile: 1, NameOfSection: 2, Data: make([]byte, 256)})
	assert.ErrorIs(t, err, ErrLengthOutOfRange)
}

func TestFileCallRoundTrip(t *testing.T) {
	conn := &fakeConn{params: ParamsNarrow}
	require.NoError(t, FileCall(conn, CauseOfTransmission{Cause: Request}, CommonAddr(9),
		FileCallInfo{Ioa: 3, NameOfFile: 7, NameOfSection: 1, Scq: RequestFile}))

	raw, err := conn.last.MarshalBinary()
	require.NoError(t, err)

	got := NewEmptyASDU(ParamsNarrow)
	require.NoError(t, got.UnmarshalBinary(raw))
	info := got.GetFileCall()
	assert.Equal(t, RequestFile, info.Scq)
	assert.EqualValues(t, 7, info.NameOfFile)
}
