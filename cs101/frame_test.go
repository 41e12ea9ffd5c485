// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedFrameRoundTrip(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize1}
	f := frame{kind: frameFixed, control: primaryControl(FccResetRemoteLink, false, false), addr: 5}

	b, err := serialize(f, p)
	require.NoError(t, err)
	assert.Equal(t, startFixFrame, b[0])
	assert.Equal(t, endFrame, b[len(b)-1])

	got, n, err := parseFrame(b, p)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, frameFixed, got.kind)
	assert.Equal(t, f.control, got.control)
	assert.EqualValues(t, 5, got.addr)
}

func TestVariableFrameRoundTrip(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize1}
	user := []byte{1, 2, 3, 4, 5}
	f := frame{kind: frameVariable, control: primaryControl(FccUserDataWithConfirmed, true, true), addr: 7, user: user}

	b, err := serialize(f, p)
	require.NoError(t, err)

	got, n, err := parseFrame(b, p)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, frameVariable, got.kind)
	assert.EqualValues(t, 7, got.addr)
	assert.Equal(t, user, got.user)
}

func TestVariableFrameChecksumMismatch(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize1}
	f := frame{kind: frameVariable, control: primaryControl(FccUserDataWithConfirmed, true, true), addr: 7, user: []byte{9, 9}}

	b, err := serialize(f, p)
	require.NoError(t, err)
	b[len(b)-2] ^= 0xff // corrupt checksum octet

	_, _, err = parseFrame(b, p)
	assert.ErrorIs(t, err, ErrFrameChecksum)
}

func TestParseFrameIncomplete(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize1}
	f := frame{kind: frameVariable, control: primaryControl(FccUserDataWithConfirmed, true, true), addr: 1, user: []byte{1, 2, 3}}
	b, err := serialize(f, p)
	require.NoError(t, err)

	_, _, err = parseFrame(b[:len(b)-1], p)
	assert.ErrorIs(t, err, ErrFrameIncomplete)
}

func TestSingleCharFrames(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize0}
	b, err := serialize(frame{kind: frameSingleCharAck}, p)
	require.NoError(t, err)
	got, n, err := parseFrame(b, p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, frameSingleCharAck, got.kind)

	b, err = serialize(frame{kind: frameSingleCharNack}, p)
	require.NoError(t, err)
	got, _, err = parseFrame(b, p)
	require.NoError(t, err)
	assert.Equal(t, frameSingleCharNack, got.kind)
}

func TestAddrSize0EncodesNoAddress(t *testing.T) {
	p := LinkLayerParams{AddrSize: LinkAddrSize0}
	f := frame{kind: frameFixed, control: primaryControl(FccResetRemoteLink, false, false)}
	b, err := serialize(f, p)
	require.NoError(t, err)
	// start, ctrl, cs, end — no address octet
	assert.Len(t, b, 4)
}
