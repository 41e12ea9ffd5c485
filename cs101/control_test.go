// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryControlRoundTrip(t *testing.T) {
	c := primaryControl(FccUserDataWithConfirmed, true, true)
	d := parseControl(c)
	assert.True(t, d.isPrimary)
	assert.True(t, d.fcv)
	assert.True(t, d.fcb)
	assert.EqualValues(t, FccUserDataWithConfirmed, d.function)
}

func TestPrimaryControlWithoutFCV(t *testing.T) {
	// FCB only means something when FCV is set (e.g. Reset Remote Link carries neither).
	c := primaryControl(FccResetRemoteLink, true, false)
	d := parseControl(c)
	assert.True(t, d.isPrimary)
	assert.False(t, d.fcv)
	assert.False(t, d.fcb)
}

func TestSecondaryControlRoundTrip(t *testing.T) {
	c := secondaryControl(FcsUnbalanceResponse, true)
	d := parseControl(c)
	assert.False(t, d.isPrimary)
	assert.True(t, d.dfc)
	assert.EqualValues(t, FcsUnbalanceResponse, d.function)
}

func TestSecondaryControlACDBit(t *testing.T) {
	// unbalanced secondary stations reuse the FCB bit position (bit5) to signal ACD.
	c := secondaryControl(FcsUnbalanceResponse, false) | ACD_RES
	d := parseControl(c)
	assert.True(t, d.fcvOrACD)
}
