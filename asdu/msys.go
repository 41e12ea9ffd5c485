// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// System-information ASDUs in the monitoring direction.

// EndOfInitialization announces M_EI_NA_1: the station has finished (re)
// starting, per companion standard 101 subclass 7.3.3.1. Always a single
// information object; coa.Cause is forced to Initialized regardless of
// what the caller passed in.
func EndOfInitialization(c Connect, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr, coi CauseOfInitial) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}

	coa.Cause = Initialized
	u := NewASDU(c.Params(), Identifier{
		M_EI_NA_1,
		VariableStruct{IsSequence: false, Number: 1},
		coa,
		0,
		ca,
	})

	if err := u.AppendInfoObjAddr(ioa); err != nil {
		return err
	}
	u.AppendBytes(coi.Value())
	return c.Send(u)
}

// GetEndOfInitialization decodes an M_EI_NA_1 ASDU's information object
// address and cause-of-initialization octet.
func (sf *ASDU) GetEndOfInitialization() (InfoObjAddr, CauseOfInitial) {
	return sf.DecodeInfoObjAddr(), ParseCauseOfInitial(sf.infoObj[0])
}
