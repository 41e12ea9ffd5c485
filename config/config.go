// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package config loads IEC 60870-5 application, link and APCI layer
// parameters from an ini-format file, e.g.:
//
//	[application]
//	CauseSize=2
//	CommonAddrSize=2
//	InfoObjAddrSize=3
//
//	[link]
//	AddrSize=1
//
//	[apci]
//	T0=30
//	T1=15
//	T2=10
//	T3=20
//	K=12
//	W=8
package config

import (
	"time"

	"gopkg.in/ini.v1"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/cs101"
	"github.com/mz-automation/lib60870-sub002/cs104"
)

// Config is every parameter set a station needs, as loaded from one file.
type Config struct {
	AppLayer  asdu.Params
	LinkLayer cs101.LinkLayerParams
	APCI      cs104.Config
}

// Load reads file (path, []byte, or io.Reader, per ini.Load) and returns
// a Config seeded with asdu.ParamsWide/cs104.DefaultConfig for anything
// left unset.
func Load(file interface{}) (Config, error) {
	cfg := Config{
		AppLayer:  *asdu.ParamsWide,
		LinkLayer: cs101.LinkLayerParams{AddrSize: cs101.LinkAddrSize1},
		APCI:      cs104.DefaultConfig(),
	}

	f, err := ini.Load(file)
	if err != nil {
		return cfg, err
	}

	if sec, err := f.GetSection("application"); err == nil {
		if sec.HasKey("CauseSize") {
			cfg.AppLayer.CauseSize = sec.Key("CauseSize").MustInt(cfg.AppLayer.CauseSize)
		}
		if sec.HasKey("CommonAddrSize") {
			cfg.AppLayer.CommonAddrSize = sec.Key("CommonAddrSize").MustInt(cfg.AppLayer.CommonAddrSize)
		}
		if sec.HasKey("InfoObjAddrSize") {
			cfg.AppLayer.InfoObjAddrSize = sec.Key("InfoObjAddrSize").MustInt(cfg.AppLayer.InfoObjAddrSize)
		}
		if sec.HasKey("OrigAddress") {
			cfg.AppLayer.OrigAddress = asdu.OriginAddr(sec.Key("OrigAddress").MustInt(0))
		}
	}

	if sec, err := f.GetSection("link"); err == nil {
		if sec.HasKey("AddrSize") {
			cfg.LinkLayer.AddrSize = cs101.LinkAddrSize(sec.Key("AddrSize").MustInt(int(cfg.LinkLayer.AddrSize)))
		}
	}

	if sec, err := f.GetSection("apci"); err == nil {
		if sec.HasKey("T0") {
			cfg.APCI.ConnectTimeout0 = time.Duration(sec.Key("T0").MustInt(30)) * time.Second
		}
		if sec.HasKey("T1") {
			cfg.APCI.SendUnAckTimeout1 = time.Duration(sec.Key("T1").MustInt(15)) * time.Second
		}
		if sec.HasKey("T2") {
			cfg.APCI.RecvUnAckTimeout2 = time.Duration(sec.Key("T2").MustInt(10)) * time.Second
		}
		if sec.HasKey("T3") {
			cfg.APCI.IdleTimeout3 = time.Duration(sec.Key("T3").MustInt(20)) * time.Second
		}
		if sec.HasKey("K") {
			cfg.APCI.SendUnAckLimitK = uint16(sec.Key("K").MustInt(12))
		}
		if sec.HasKey("W") {
			cfg.APCI.RecvUnAckLimitW = uint16(sec.Key("W").MustInt(8))
		}
	}

	if err := cfg.AppLayer.Valid(); err != nil {
		return cfg, err
	}
	if err := cfg.LinkLayer.Valid(); err != nil {
		return cfg, err
	}
	if err := cfg.APCI.Valid(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
