// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// System commands in the control direction (companion standard 101,
// subclass 7.3.4): station interrogation, counter interrogation,
// read-on-demand, clock sync, link test, process reset and delay
// measurement. Each carries exactly one information object (SQ = 0).

// newSystemCmd builds the common single-object ASDU shell these
// commands send.
func newSystemCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) (*ASDU, error) {
	if err := c.Params().Valid(); err != nil {
		return nil, err
	}
	u := NewASDU(c.Params(), Identifier{
		typeID,
		VariableStruct{IsSequence: false, Number: 1},
		coa,
		0,
		ca,
	})
	if err := u.AppendInfoObjAddr(ioa); err != nil {
		return nil, err
	}
	return u, nil
}

// InterrogationCmd sends C_IC_NA_1, a station (or group) interrogation
// request. coa.Cause must be Activation or Deactivation; the addressed
// station replies with ActivationCon, the interrogated data, and
// finally ActivationTerm. See companion standard 101, subclass 7.3.4.1.
func InterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qoi QualifierOfInterrogation) error {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return ErrCmdCause
	}
	u, err := newSystemCmd(c, C_IC_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qoi))
	return c.Send(u)
}

// CounterInterrogationCmd sends C_CI_NA_1, requesting a counter freeze
// and/or read. Always sent with cause Activation.
// See companion standard 101, subclass 7.3.4.2.
func CounterInterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qcc QualifierCountCall) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_CI_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(qcc.Value())
	return c.Send(u)
}

// ReadCmd sends C_RD_NA_1, requesting the current value of ioa on
// demand. Always sent with cause Request.
// See companion standard 101, subclass 7.3.4.3.
func ReadCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) error {
	coa.Cause = Request
	u, err := newSystemCmd(c, C_RD_NA_1, coa, ca, ioa)
	if err != nil {
		return err
	}
	return c.Send(u)
}

// ClockSynchronizationCmd sends C_CS_NA_1, setting the outstation's
// clock to t. Always sent with cause Activation.
// See companion standard 101, subclass 7.3.4.4.
func ClockSynchronizationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, t time.Time) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_CS_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(CP56Time2a(t, u.InfoObjTimeZone)...)
	return c.Send(u)
}

// TestCommand sends C_TS_NA_1, a link test carrying the fixed test
// word FBPTestWord. Always sent with cause Activation.
// See companion standard 101, subclass 7.3.4.5.
func TestCommand(c Connect, coa CauseOfTransmission, ca CommonAddr) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_TS_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(FBPTestWord&0xff), byte(FBPTestWord>>8))
	return c.Send(u)
}

// ResetProcessCmd sends C_RP_NA_1, resetting the outstation's process
// per qrp. Always sent with cause Activation.
// See companion standard 101, subclass 7.3.4.6.
func ResetProcessCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qrp QualifierOfResetProcessCmd) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_RP_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qrp))
	return c.Send(u)
}

// DelayAcquireCommand sends C_CD_NA_1, announcing a transmission delay
// of msec milliseconds. coa.Cause must be Spontaneous or Activation.
// See companion standard 101, subclass 7.3.4.7.
func DelayAcquireCommand(c Connect, coa CauseOfTransmission, ca CommonAddr, msec uint16) error {
	if coa.Cause != Spontaneous && coa.Cause != Activation {
		return ErrCmdCause
	}
	u, err := newSystemCmd(c, C_CD_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendCP16Time2a(msec)
	return c.Send(u)
}

// TestCommandCP56Time2a sends C_TS_TA_1, a link test carrying the fixed
// test word alongside a CP56Time2a time tag.
func TestCommandCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, t time.Time) error {
	u, err := newSystemCmd(c, C_TS_TA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendUint16(FBPTestWord)
	u.AppendCP56Time2a(t, u.InfoObjTimeZone)
	return c.Send(u)
}

// GetInterrogationCmd decodes a C_IC_NA_1 information object.
func (sf *ASDU) GetInterrogationCmd() (InfoObjAddr, QualifierOfInterrogation) {
	return sf.DecodeInfoObjAddr(), QualifierOfInterrogation(sf.infoObj[0])
}

// GetCounterInterrogationCmd decodes a C_CI_NA_1 information object.
func (sf *ASDU) GetCounterInterrogationCmd() (InfoObjAddr, QualifierCountCall) {
	return sf.DecodeInfoObjAddr(), ParseQualifierCountCall(sf.infoObj[0])
}

// GetReadCmd decodes a C_RD_NA_1 information object's address.
func (sf *ASDU) GetReadCmd() InfoObjAddr {
	return sf.DecodeInfoObjAddr()
}

// GetClockSynchronizationCmd decodes a C_CS_NA_1 information object.
func (sf *ASDU) GetClockSynchronizationCmd() (InfoObjAddr, time.Time) {
	return sf.DecodeInfoObjAddr(), sf.DecodeCP56Time2a()
}

// GetTestCommand decodes a C_TS_NA_1 information object, reporting
// whether the received test word matched FBPTestWord.
func (sf *ASDU) GetTestCommand() (InfoObjAddr, bool) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16() == FBPTestWord
}

// GetResetProcessCmd decodes a C_RP_NA_1 information object.
func (sf *ASDU) GetResetProcessCmd() (InfoObjAddr, QualifierOfResetProcessCmd) {
	return sf.DecodeInfoObjAddr(), QualifierOfResetProcessCmd(sf.infoObj[0])
}

// GetDelayAcquireCommand decodes a C_CD_NA_1 information object.
func (sf *ASDU) GetDelayAcquireCommand() (InfoObjAddr, uint16) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16()
}

// GetTestCommandCP56Time2a decodes a C_TS_TA_1 information object.
func (sf *ASDU) GetTestCommandCP56Time2a() (InfoObjAddr, bool, time.Time) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16() == FBPTestWord, sf.DecodeCP56Time2a()
}
