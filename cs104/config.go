// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
	"time"
)

const (
	// Port is the IANA registered port for a plaintext CS104 connection.
	Port = 2404

	// PortSecure is the IANA registered port for CS104 over TLS.
	PortSecure = 19998
)

// Allowed ranges for the tunable CS104 timers and window sizes, per
// IEC 60870-5-104 subclauses 5.2 and 5.5.
const (
	ConnectTimeout0Min = 1 * time.Second   // t0 lower bound
	ConnectTimeout0Max = 255 * time.Second // t0 upper bound

	SendUnAckTimeout1Min = 1 * time.Second // t1 lower bound
	SendUnAckTimeout1Max = 255 * time.Second

	RecvUnAckTimeout2Min = 1 * time.Second // t2 lower bound
	RecvUnAckTimeout2Max = 255 * time.Second

	IdleTimeout3Min = 1 * time.Second // t3 lower bound
	IdleTimeout3Max = 48 * time.Hour

	SendUnAckLimitKMin = 1 // k lower bound
	SendUnAckLimitKMax = 32767

	RecvUnAckLimitWMin = 1 // w lower bound
	RecvUnAckLimitWMax = 32767
)

// Config holds the negotiable timers and window sizes of a CS104
// connection. Any field left at its zero value takes the IEC default
// once Valid runs.
type Config struct {
	// ConnectTimeout0 ("t0") bounds how long a TCP dial may take.
	ConnectTimeout0 time.Duration

	// SendUnAckLimitK ("k") is the send-window size: the sender must
	// stop once this many I-frames are outstanding unacknowledged.
	SendUnAckLimitK uint16

	// SendUnAckTimeout1 ("t1") is how long an unacknowledged I-frame
	// may go unconfirmed before the connection is torn down.
	SendUnAckTimeout1 time.Duration

	// RecvUnAckLimitW ("w") caps how many received I-frames may pass
	// before an S-frame acknowledgement is due; kept at or below 2k/3.
	RecvUnAckLimitW uint16

	// RecvUnAckTimeout2 ("t2") is the latest an acknowledgement may be
	// delayed once something is owed.
	RecvUnAckTimeout2 time.Duration

	// IdleTimeout3 ("t3") is the quiet period after which a TESTFR
	// keepalive is sent.
	IdleTimeout3 time.Duration
}

// Valid fills in IEC defaults for zero fields and rejects anything
// outside its documented range.
func (sf *Config) Valid() error {
	if sf == nil {
		return errors.New("invalid pointer")
	}

	type bound struct {
		name     string
		dur      *time.Duration
		deflt    time.Duration
		min, max time.Duration
		label    string
	}
	durs := []bound{
		{"ConnectTimeout0", &sf.ConnectTimeout0, 30 * time.Second, ConnectTimeout0Min, ConnectTimeout0Max, "t₀"},
		{"SendUnAckTimeout1", &sf.SendUnAckTimeout1, 15 * time.Second, SendUnAckTimeout1Min, SendUnAckTimeout1Max, "t₁"},
		{"RecvUnAckTimeout2", &sf.RecvUnAckTimeout2, 10 * time.Second, RecvUnAckTimeout2Min, RecvUnAckTimeout2Max, "t₂"},
		{"IdleTimeout3", &sf.IdleTimeout3, 20 * time.Second, IdleTimeout3Min, IdleTimeout3Max, "t₃"},
	}
	for _, b := range durs {
		if *b.dur == 0 {
			*b.dur = b.deflt
			continue
		}
		if *b.dur < b.min || *b.dur > b.max {
			return errors.New(b.name + ` "` + b.label + `" out of range`)
		}
	}

	if sf.SendUnAckLimitK == 0 {
		sf.SendUnAckLimitK = 12
	} else if sf.SendUnAckLimitK < SendUnAckLimitKMin || sf.SendUnAckLimitK > SendUnAckLimitKMax {
		return errors.New(`SendUnAckLimitK "k" not in [1, 32767]`)
	}

	if sf.RecvUnAckLimitW == 0 {
		sf.RecvUnAckLimitW = 8
	} else if sf.RecvUnAckLimitW < RecvUnAckLimitWMin || sf.RecvUnAckLimitW > RecvUnAckLimitWMax {
		return errors.New(`RecvUnAckLimitW "w" not in [1, 32767]`)
	}

	return nil
}

// DefaultConfig returns the IEC-recommended timer and window values.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout0:   30 * time.Second,
		SendUnAckLimitK:   12,
		SendUnAckTimeout1: 15 * time.Second,
		RecvUnAckLimitW:   8,
		RecvUnAckTimeout2: 10 * time.Second,
		IdleTimeout3:      20 * time.Second,
	}
}
