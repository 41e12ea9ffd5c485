// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mz-automation/lib60870-sub002/cs101"
)

func TestLoadOverridesDefaults(t *testing.T) {
	src := []byte(`
[application]
CauseSize=1
CommonAddrSize=1
InfoObjAddrSize=2

[link]
AddrSize=2

[apci]
T0=10
T1=5
T2=3
K=5
W=3
`)
	cfg, err := Load(src)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.AppLayer.CauseSize)
	assert.Equal(t, 1, cfg.AppLayer.CommonAddrSize)
	assert.Equal(t, 2, cfg.AppLayer.InfoObjAddrSize)
	assert.Equal(t, cs101.LinkAddrSize2, cfg.LinkLayer.AddrSize)
	assert.Equal(t, 10*time.Second, cfg.APCI.ConnectTimeout0)
	assert.EqualValues(t, 5, cfg.APCI.SendUnAckLimitK)
	assert.EqualValues(t, 3, cfg.APCI.RecvUnAckLimitW)
}

func TestLoadAppliesDefaultsWhenEmpty(t *testing.T) {
	cfg, err := Load([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.AppLayer.CauseSize)
	assert.Equal(t, 30*time.Second, cfg.APCI.ConnectTimeout0)
	assert.EqualValues(t, 12, cfg.APCI.SendUnAckLimitK)
}

func TestLoadRejectsInvalidLinkParams(t *testing.T) {
	src := []byte(`
[link]
AddrSize=9
`)
	_, err := Load(src)
	assert.Error(t, err)
}
