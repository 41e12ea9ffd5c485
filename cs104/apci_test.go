// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIFrameRoundTrip(t *testing.T) {
	asduBytes := []byte{1, 2, 3, 4, 5}
	apdu, err := newIFrame(12, 34, asduBytes)
	require.NoError(t, err)

	got, rest := parse(apdu)
	i, ok := got.(iAPCI)
	require.True(t, ok)
	assert.EqualValues(t, 12, i.sendSN)
	assert.EqualValues(t, 34, i.rcvSN)
	assert.Equal(t, asduBytes, rest)
}

func TestIFrameRejectsOversizeASDU(t *testing.T) {
	_, err := newIFrame(0, 0, make([]byte, 300))
	assert.Error(t, err)
}

func TestSFrameRoundTrip(t *testing.T) {
	apdu := newSFrame(99)
	got, _ := parse(apdu)
	s, ok := got.(sAPCI)
	require.True(t, ok)
	assert.EqualValues(t, 99, s.rcvSN)
}

func TestUFrameRoundTrip(t *testing.T) {
	apdu := newUFrame(uStartDtActive)
	got, _ := parse(apdu)
	u, ok := got.(uAPCI)
	require.True(t, ok)
	assert.Equal(t, byte(uStartDtActive), u.function)
}

func TestSeqNoCountWraps(t *testing.T) {
	assert.EqualValues(t, 0, seqNoCount(5, 5))
	assert.EqualValues(t, 3, seqNoCount(5, 8))
	// sequence numbers are 15-bit (mod 32768); wrap-around must count forward.
	assert.EqualValues(t, 2, seqNoCount(32767, 1))
}
