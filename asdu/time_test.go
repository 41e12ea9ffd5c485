// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCP56Time2aRoundTrip(t *testing.T) {
	want := time.Date(2026, time.July, 29, 14, 37, 12, 250*1e6, time.UTC)
	b := CP56Time2a(want, time.UTC)
	require := assert.New(t)
	require.Len(b, 7)

	got := ParseCP56Time2a(b, time.UTC)
	require.Equal(want.Year(), got.Year())
	require.Equal(want.Month(), got.Month())
	require.Equal(want.Day(), got.Day())
	require.Equal(want.Hour(), got.Hour())
	require.Equal(want.Minute(), got.Minute())
	require.Equal(want.Second(), got.Second())
	require.Equal(want.Nanosecond(), got.Nanosecond())
}

func TestCP56Time2aLeavesDayOfWeekUnset(t *testing.T) {
	sunday := time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)
	b := CP56Time2a(sunday, time.UTC)
	assert.Zero(t, (b[4]>>5)&0x07)
}

func TestCP56Time2aMatchesDocumentedVector(t *testing.T) {
	want := []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x01, 0x18}
	got := CP56Time2a(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, want, got)
}

func TestCP24Time2aRoundTrip(t *testing.T) {
	b := CP24Time2a(time.Date(2026, time.July, 29, 14, 37, 12, 500*1e6, time.UTC), time.UTC)
	assert.Len(t, b, 3)
	got := ParseCP24Time2a(b, time.UTC)
	assert.Equal(t, 37, got.Minute())
	assert.Equal(t, 12, got.Second())
}

func TestCP16Time2aRoundTrip(t *testing.T) {
	b := CP16Time2a(54321)
	assert.Equal(t, uint16(54321), ParseCP16Time2a(b))
}
