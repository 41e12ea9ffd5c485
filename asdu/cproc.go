// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// Commands in the control direction (companion standard 101, subclass
// 7.3.2): each carries exactly one information object (SQ = 0) and is
// only valid with coa.Cause of Activation or Deactivation — the station
// replies with ActivationCon/DeactivationCon/ActivationTerm, or one of
// the Unknown* causes, on its own ASDU.

// newSingleObjectCmd builds the common ASDU shell a control-direction
// command sends: a single information object addressed by ioa, under an
// activation or deactivation cause.
func newSingleObjectCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) (*ASDU, error) {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return nil, ErrCmdCause
	}
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

// appendCmdTime appends a CP56Time2a tag when typeID is the timed
// variant, and rejects any typeID that is neither form.
func appendCmdTime(u *ASDU, typeID, untimed, timed TypeID, t time.Time) error {
	switch typeID {
	case untimed:
	case timed:
		u.AppendBytes(CP56Time2a(t, u.InfoObjTimeZone)...)
	default:
		return ErrTypeIDNotMatch
	}
	return nil
}

// cmdTimeOrPanic is the decode-side counterpart of appendCmdTime: it
// reads the CP56Time2a off the wire for the timed variant, or nothing
// for the untimed one, panicking on any other type.
func cmdTimeOrPanic(sf *ASDU, untimed, timed TypeID) time.Time {
	switch sf.Type {
	case untimed:
		return time.Time{}
	case timed:
		return sf.DecodeCP56Time2a()
	default:
		panic(ErrTypeIDNotMatch)
	}
}

// SingleCommandInfo is a single command's information object.
type SingleCommandInfo struct {
	Ioa   InfoObjAddr
	Value bool
	Qoc   QualifierOfCommand
	Time  time.Time
}

// SingleCmd sends C_SC_NA_1 or C_SC_TA_1, a single on/off command.
// See companion standard 101, subclass 7.3.2.1.
func SingleCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SingleCommandInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	value := cmd.Qoc.Value()
	if cmd.Value {
		value |= 0x01
	}
	u.AppendBytes(value)
	if err := appendCmdTime(u, typeID, C_SC_NA_1, C_SC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// DoubleCommandInfo is a double command's information object.
type DoubleCommandInfo struct {
	Ioa   InfoObjAddr
	Value DoubleCommand
	Qoc   QualifierOfCommand
	Time  time.Time
}

// DoubleCmd sends C_DC_NA_1 or C_DC_TA_1, a double command.
// See companion standard 101, subclass 7.3.2.2.
func DoubleCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd DoubleCommandInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | byte(cmd.Value&0x03))
	if err := appendCmdTime(u, typeID, C_DC_NA_1, C_DC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// StepCommandInfo is a step command's information object.
type StepCommandInfo struct {
	Ioa   InfoObjAddr
	Value StepCommand
	Qoc   QualifierOfCommand
	Time  time.Time
}

// StepCmd sends C_RC_NA_1 or C_RC_TA_1, a step (raise/lower) command.
// See companion standard 101, subclass 7.3.2.3.
func StepCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd StepCommandInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | byte(cmd.Value&0x03))
	if err := appendCmdTime(u, typeID, C_RC_NA_1, C_RC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// SetpointCommandNormalInfo is a normalized-value set-point command's
// information object.
type SetpointCommandNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdNormal sends C_SE_NA_1 or C_SE_TA_1, a normalized-value
// set-point command. See companion standard 101, subclass 7.3.2.4.
func SetpointCmdNormal(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandNormalInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendNormalize(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTime(u, typeID, C_SE_NA_1, C_SE_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// SetpointCommandScaledInfo is a scaled-value set-point command's
// information object.
type SetpointCommandScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdScaled sends C_SE_NB_1 or C_SE_TB_1, a scaled-value
// set-point command. See companion standard 101, subclass 7.3.2.5.
func SetpointCmdScaled(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandScaledInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendScaled(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTime(u, typeID, C_SE_NB_1, C_SE_TB_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// SetpointCommandFloatInfo is a short-floating-point set-point
// command's information object.
type SetpointCommandFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdFloat sends C_SE_NC_1 or C_SE_TC_1, a short-floating-point
// set-point command. See companion standard 101, subclass 7.3.2.6.
func SetpointCmdFloat(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandFloatInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendFloat32(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTime(u, typeID, C_SE_NC_1, C_SE_TC_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// BitsString32CommandInfo is a 32-bit bitstring command's information object.
type BitsString32CommandInfo struct {
	Ioa   InfoObjAddr
	Value uint32
	Time  time.Time
}

// BitsString32Cmd sends C_BO_NA_1 or C_BO_TA_1, a 32-bit bitstring
// command. See companion standard 101, subclass 7.3.2.7.
func BitsString32Cmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd BitsString32CommandInfo) error {
	u, err := newSingleObjectCmd(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBitsString32(cmd.Value)
	if err := appendCmdTime(u, typeID, C_BO_NA_1, C_BO_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetSingleCmd decodes a C_SC_NA_1 or C_SC_TA_1 information object.
func (sf *ASDU) GetSingleCmd() SingleCommandInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	return SingleCommandInfo{
		Ioa:   ioa,
		Value: value&0x01 == 0x01,
		Qoc:   ParseQualifierOfCommand(value & 0xfe),
		Time:  cmdTimeOrPanic(sf, C_SC_NA_1, C_SC_TA_1),
	}
}

// GetDoubleCmd decodes a C_DC_NA_1 or C_DC_TA_1 information object.
func (sf *ASDU) GetDoubleCmd() DoubleCommandInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	return DoubleCommandInfo{
		Ioa:   ioa,
		Value: DoubleCommand(value & 0x03),
		Qoc:   ParseQualifierOfCommand(value & 0xfc),
		Time:  cmdTimeOrPanic(sf, C_DC_NA_1, C_DC_TA_1),
	}
}

// GetStepCmd decodes a C_RC_NA_1 or C_RC_TA_1 information object.
func (sf *ASDU) GetStepCmd() StepCommandInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	return StepCommandInfo{
		Ioa:   ioa,
		Value: StepCommand(value & 0x03),
		Qoc:   ParseQualifierOfCommand(value & 0xfc),
		Time:  cmdTimeOrPanic(sf, C_RC_NA_1, C_RC_TA_1),
	}
}

// GetSetpointNormalCmd decodes a C_SE_NA_1 or C_SE_TA_1 information object.
func (sf *ASDU) GetSetpointNormalCmd() SetpointCommandNormalInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeNormalize()
	qos := ParseQualifierOfSetpointCmd(sf.DecodeByte())
	return SetpointCommandNormalInfo{
		Ioa:   ioa,
		Value: value,
		Qos:   qos,
		Time:  cmdTimeOrPanic(sf, C_SE_NA_1, C_SE_TA_1),
	}
}

// GetSetpointCmdScaled decodes a C_SE_NB_1 or C_SE_TB_1 information object.
func (sf *ASDU) GetSetpointCmdScaled() SetpointCommandScaledInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeScaled()
	qos := ParseQualifierOfSetpointCmd(sf.DecodeByte())
	return SetpointCommandScaledInfo{
		Ioa:   ioa,
		Value: value,
		Qos:   qos,
		Time:  cmdTimeOrPanic(sf, C_SE_NB_1, C_SE_TB_1),
	}
}

// GetSetpointFloatCmd decodes a C_SE_NC_1 or C_SE_TC_1 information object.
func (sf *ASDU) GetSetpointFloatCmd() SetpointCommandFloatInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeFloat32()
	qos := ParseQualifierOfSetpointCmd(sf.DecodeByte())
	return SetpointCommandFloatInfo{
		Ioa:   ioa,
		Value: value,
		Qos:   qos,
		Time:  cmdTimeOrPanic(sf, C_SE_NC_1, C_SE_TC_1),
	}
}

// GetBitsString32Cmd decodes a C_BO_NA_1 or C_BO_TA_1 information object.
func (sf *ASDU) GetBitsString32Cmd() BitsString32CommandInfo {
	ioa := sf.DecodeInfoObjAddr()
	value := sf.DecodeBitsString32()
	return BitsString32CommandInfo{
		Ioa:   ioa,
		Value: value,
		Time:  cmdTimeOrPanic(sf, C_BO_NA_1, C_BO_TA_1),
	}
}
