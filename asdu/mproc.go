// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// Process information in the monitoring direction (companion standard
// 101, subclass 7.3.1). These ASDUs report measured and status values
// from the controlled station; each may carry a single information
// object or, with SQ = 1, a consecutive run sharing one address.

// checkValid checks that infos is non-empty and that the resulting
// ASDU would not exceed the maximum APDU size.
func checkValid(c Connect, typeID TypeID, isSequence bool, infosLen int) error {
	if infosLen == 0 {
		return ErrNotAnyObjInfo
	}
	objSize, err := GetInfoObjSize(typeID)
	if err != nil {
		return err
	}
	param := c.Params()
	if err := param.Valid(); err != nil {
		return err
	}

	var asduLen int
	if isSequence {
		asduLen = param.IdentifierSize() + infosLen*objSize + param.InfoObjAddrSize
	} else {
		asduLen = param.IdentifierSize() + infosLen*(objSize+param.InfoObjAddrSize)
	}

	if asduLen > ASDUSizeMax {
		return ErrLengthOutOfRange
	}
	return nil
}

// newMonitorASDU validates infosLen and builds the ASDU shell shared by
// every monitor-direction sender below: identifier, variable-struct
// number, nothing appended yet.
func newMonitorASDU(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infosLen int) (*ASDU, error) {
	if err := checkValid(c, typeID, isSequence, infosLen); err != nil {
		return nil, err
	}
	u := NewASDU(c.Params(), Identifier{
		typeID,
		VariableStruct{IsSequence: isSequence},
		coa,
		0,
		ca,
	})
	if err := u.SetVariableNumber(infosLen); err != nil {
		return nil, err
	}
	return u, nil
}

// nextAddr advances the address cursor for SQ-encoded runs: the
// address is read once for a sequence and incremented implicitly for
// every following object, or read for every object when SQ = 0.
func nextAddr(sf *ASDU, cur InfoObjAddr, once *bool) InfoObjAddr {
	if !sf.Variable.IsSequence || !*once {
		*once = true
		return sf.DecodeInfoObjAddr()
	}
	return cur + 1
}

// appendAddrOnce appends ioa to u on the first object of a run, or on
// every object when the run is not SQ-encoded.
func appendAddrOnce(u *ASDU, ioa InfoObjAddr, isSequence bool, once *bool) error {
	if !isSequence || !*once {
		*once = true
		return u.AppendInfoObjAddr(ioa)
	}
	return nil
}

// monitorCauseMask reports, through its test method, whether coa.Cause is
// one of the causes it accepts, used by the exported senders below to gate the
// reason for transmission before building the frame.
type monitorCauseMask struct {
	causes []CauseOfTransmission
	ranges [][2]CauseOfTransmission
}

func (m monitorCauseMask) test(coa CauseOfTransmission) bool {
	for _, c := range m.causes {
		if coa.Cause == c.Cause {
			return true
		}
	}
	for _, r := range m.ranges {
		if coa.Cause >= r[0].Cause && coa.Cause <= r[1].Cause {
			return true
		}
	}
	return false
}

func cause(c Cause) CauseOfTransmission { return CauseOfTransmission{Cause: c} }

// periodicBackgroundSpontRequestGroup is the cause set shared by
// MeasuredValueNormal, MeasuredValueNormalNoQuality, MeasuredValueScaled
// and MeasuredValueFloat: periodic,
// background scan, spontaneous, request, or any of the 16 group
// interrogation responses.
var periodicBackgroundSpontRequestGroup = monitorCauseMask{
	causes: []CauseOfTransmission{cause(Periodic), cause(Background), cause(Spontaneous), cause(Request)},
	ranges: [][2]CauseOfTransmission{{cause(InterrogatedByStation), cause(InterrogatedByGroup16)}},
}

// backgroundSpontRequestReturnGroup adds the two return-by-command
// causes to the above set, used by Single, Double, Step and
// PackedSinglePointWithSCD (no <1> periodic for these types).
var backgroundSpontRequestReturnGroup = monitorCauseMask{
	causes: []CauseOfTransmission{cause(Background), cause(Spontaneous), cause(Request), cause(ReturnInfoRemote), cause(ReturnInfoLocal)},
	ranges: [][2]CauseOfTransmission{{cause(InterrogatedByStation), cause(InterrogatedByGroup16)}},
}

// spontRequest is the narrow cause set for the CP24/CP56-tagged
// single-element variants: spontaneous or request only.
var spontRequest = monitorCauseMask{causes: []CauseOfTransmission{cause(Spontaneous), cause(Request)}}

// spontRequestReturn adds the two return-by-command causes to
// spontRequest, used by the single/double/step time-tagged variants.
var spontRequestReturn = monitorCauseMask{
	causes: []CauseOfTransmission{cause(Spontaneous), cause(Request), cause(ReturnInfoRemote), cause(ReturnInfoLocal)},
}

// bitString32Group is BitString32's cause set: no <1> periodic and no
// return-by-command causes, per 7.3.1.7.
var bitString32Group = monitorCauseMask{
	causes: []CauseOfTransmission{cause(Background), cause(Spontaneous), cause(Request)},
	ranges: [][2]CauseOfTransmission{{cause(InterrogatedByStation), cause(InterrogatedByGroup16)}},
}

// integratedTotalsGroup is IntegratedTotals' cause set: spontaneous or
// one of the five counter-interrogation responses, per 7.3.1.15.
var integratedTotalsGroup = monitorCauseMask{
	causes: []CauseOfTransmission{cause(Spontaneous)},
	ranges: [][2]CauseOfTransmission{{cause(RequestByGeneralCounter), cause(RequestByGroup4Counter)}},
}

// SinglePointInfo is a single-point information object.
type SinglePointInfo struct {
	Ioa InfoObjAddr
	// value of single point
	Value bool
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// single sends a type identification [M_SP_NA_1], [M_SP_TA_1] or [M_SP_TB_1].
// [M_SP_NA_1] See companion standard 101,subclass 7.3.1.1
// [M_SP_TA_1] See companion standard 101,subclass 7.3.1.2
// [M_SP_TB_1] See companion standard 101,subclass 7.3.1.22
func single(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}

		value := byte(0)
		if v.Value {
			value = 0x01
		}
		u.AppendBytes(value | byte(v.Qds&0xf0))
		switch typeID {
		case M_SP_NA_1:
		case M_SP_TA_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_SP_TB_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// Single sends a type identification [M_SP_NA_1], single-point
// information without a time tag. See companion standard 101,
// subclass 7.3.1.1.
func Single(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	if !backgroundSpontRequestReturnGroup.test(coa) {
		return ErrCmdCause
	}
	return single(c, M_SP_NA_1, isSequence, coa, ca, infos...)
}

// SingleCP24Time2a sends a type identification [M_SP_TA_1], single-point
// information with a CP24Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.2.
func SingleCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return single(c, M_SP_TA_1, false, coa, ca, infos...)
}

// SingleCP56Time2a sends a type identification [M_SP_TB_1], single-point
// information with a CP56Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.22.
func SingleCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return single(c, M_SP_TB_1, false, coa, ca, infos...)
}

// DoublePointInfo is a double-point information object.
type DoublePointInfo struct {
	Ioa   InfoObjAddr
	Value DoublePoint
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// double sends a type identification [M_DP_NA_1], [M_DP_TA_1] or [M_DP_TB_1].
// [M_DP_NA_1] See companion standard 101,subclass 7.3.1.3
// [M_DP_TA_1] See companion standard 101,subclass 7.3.1.4
// [M_DP_TB_1] See companion standard 101,subclass 7.3.1.23
func double(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...DoublePointInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}

		u.AppendBytes(byte(v.Value&0x03) | byte(v.Qds&0xf0))
		switch typeID {
		case M_DP_NA_1:
		case M_DP_TA_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_DP_TB_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// Double sends a type identification [M_DP_NA_1], double-point
// information without a time tag. See companion standard 101,
// subclass 7.3.1.3.
func Double(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...DoublePointInfo) error {
	if !backgroundSpontRequestReturnGroup.test(coa) {
		return ErrCmdCause
	}
	return double(c, M_DP_NA_1, isSequence, coa, ca, infos...)
}

// DoubleCP24Time2a sends a type identification [M_DP_TA_1], double-point
// information with a CP24Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.4.
func DoubleCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...DoublePointInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return double(c, M_DP_TA_1, false, coa, ca, infos...)
}

// DoubleCP56Time2a sends a type identification [M_DP_TB_1], double-point
// information with a CP56Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.23.
func DoubleCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...DoublePointInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return double(c, M_DP_TB_1, false, coa, ca, infos...)
}

// StepPositionInfo is a step-position information object.
type StepPositionInfo struct {
	Ioa   InfoObjAddr
	Value StepPosition
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// step sends a type identification [M_ST_NA_1], [M_ST_TA_1] or [M_ST_TB_1].
// [M_ST_NA_1] See companion standard 101, subclass 7.3.1.5
// [M_ST_TA_1] See companion standard 101, subclass 7.3.1.6
// [M_ST_TB_1] See companion standard 101, subclass 7.3.1.24
func step(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...StepPositionInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}

		u.AppendBytes(v.Value.Value(), byte(v.Qds))
		switch typeID {
		case M_ST_NA_1:
		case M_ST_TA_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_ST_TB_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// Step sends a type identification [M_ST_NA_1], step-position
// information without a time tag. See companion standard 101,
// subclass 7.3.1.5.
func Step(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...StepPositionInfo) error {
	if !backgroundSpontRequestReturnGroup.test(coa) {
		return ErrCmdCause
	}
	return step(c, M_ST_NA_1, isSequence, coa, ca, infos...)
}

// StepCP24Time2a sends a type identification [M_ST_TA_1], step-position
// information with a CP24Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.6.
func StepCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...StepPositionInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return step(c, M_ST_TA_1, false, coa, ca, infos...)
}

// StepCP56Time2a sends a type identification [M_ST_TB_1], step-position
// information with a CP56Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.24.
func StepCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...StepPositionInfo) error {
	if !spontRequestReturn.test(coa) {
		return ErrCmdCause
	}
	return step(c, M_ST_TB_1, false, coa, ca, infos...)
}

// BitString32Info is a 32-bit bitstring information object.
type BitString32Info struct {
	Ioa   InfoObjAddr
	Value uint32
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// bitString32 sends a type identification [M_BO_NA_1], [M_BO_TA_1] or [M_BO_TB_1].
// [M_BO_NA_1] See companion standard 101, subclass 7.3.1.7
// [M_BO_TA_1] See companion standard 101, subclass 7.3.1.8
// [M_BO_TB_1] See companion standard 101, subclass 7.3.1.25
func bitString32(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...BitString32Info) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}
		u.AppendBitsString32(v.Value).AppendBytes(byte(v.Qds))

		switch typeID {
		case M_BO_NA_1:
		case M_BO_TA_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_BO_TB_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// BitString32 sends a type identification [M_BO_NA_1], a bitstring
// without a time tag. See companion standard 101, subclass 7.3.1.7.
func BitString32(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...BitString32Info) error {
	if !bitString32Group.test(coa) {
		return ErrCmdCause
	}
	return bitString32(c, M_BO_NA_1, isSequence, coa, ca, infos...)
}

// BitString32CP24Time2a sends a type identification [M_BO_TA_1], a
// bitstring with a CP24Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.8.
func BitString32CP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...BitString32Info) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return bitString32(c, M_BO_TA_1, false, coa, ca, infos...)
}

// BitString32CP56Time2a sends a type identification [M_BO_TB_1], a
// bitstring with a CP56Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.25.
func BitString32CP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...BitString32Info) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return bitString32(c, M_BO_TB_1, false, coa, ca, infos...)
}

// MeasuredValueNormalInfo is a normalized measured-value information
// object.
type MeasuredValueNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// measuredValueNormal sends a type identification [M_ME_NA_1], [M_ME_TA_1],
// [M_ME_TD_1] or [M_ME_ND_1], normalized measured values.
// [M_ME_NA_1] See companion standard 101, subclass 7.3.1.9
// [M_ME_TA_1] See companion standard 101, subclass 7.3.1.10
// [M_ME_TD_1] See companion standard 101, subclass 7.3.1.26
// [M_ME_ND_1] See companion standard 101, subclass 7.3.1.21; quality
// descriptor defaults to asdu.QDSGood since none is transmitted.
func measuredValueNormal(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, attrs ...MeasuredValueNormalInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(attrs))
	if err != nil {
		return err
	}
	once := false
	for _, v := range attrs {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}
		u.AppendNormalize(v.Value)
		switch typeID {
		case M_ME_NA_1:
			u.AppendBytes(byte(v.Qds))
		case M_ME_TA_1:
			u.AppendBytes(byte(v.Qds)).AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_ME_TD_1:
			u.AppendBytes(byte(v.Qds)).AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_ME_ND_1: // no quality descriptor transmitted
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// MeasuredValueNormal sends a type identification [M_ME_NA_1],
// normalized measured value without a time tag.
// See companion standard 101, subclass 7.3.1.9.
func MeasuredValueNormal(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueNormalInfo) error {
	if !periodicBackgroundSpontRequestGroup.test(coa) {
		return ErrCmdCause
	}
	return measuredValueNormal(c, M_ME_NA_1, isSequence, coa, ca, infos...)
}

// MeasuredValueNormalCP24Time2a sends a type identification [M_ME_TA_1],
// normalized measured value with a CP24Time2a time tag; only SQ = 0 is
// valid. See companion standard 101, subclass 7.3.1.10.
func MeasuredValueNormalCP24Time2a(c Connect, coa CauseOfTransmission,
	ca CommonAddr, infos ...MeasuredValueNormalInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueNormal(c, M_ME_TA_1, false, coa, ca, infos...)
}

// MeasuredValueNormalCP56Time2a sends a type identification [M_ME_TD_1],
// normalized measured value with a CP56Time2a time tag; only SQ = 0 is
// valid. See companion standard 101, subclass 7.3.1.26.
func MeasuredValueNormalCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueNormalInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueNormal(c, M_ME_TD_1, false, coa, ca, infos...)
}

// MeasuredValueNormalNoQuality sends a type identification [M_ME_ND_1],
// normalized measured value without a quality descriptor. See companion
// standard 101, subclass 7.3.1.21.
func MeasuredValueNormalNoQuality(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueNormalInfo) error {
	if !periodicBackgroundSpontRequestGroup.test(coa) {
		return ErrCmdCause
	}
	return measuredValueNormal(c, M_ME_ND_1, isSequence, coa, ca, infos...)
}

// MeasuredValueScaledInfo is a scaled measured-value information
// object.
type MeasuredValueScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// measuredValueScaled sends a type identification [M_ME_NB_1], [M_ME_TB_1]
// or [M_ME_TE_1], scaled measured values.
// [M_ME_NB_1] See companion standard 101, subclass 7.3.1.11
// [M_ME_TB_1] See companion standard 101, subclass 7.3.1.12
// [M_ME_TE_1] See companion standard 101, subclass 7.3.1.27
func measuredValueScaled(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueScaledInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}
		u.AppendScaled(v.Value).AppendBytes(byte(v.Qds))
		switch typeID {
		case M_ME_NB_1:
		case M_ME_TB_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_ME_TE_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// MeasuredValueScaled sends a type identification [M_ME_NB_1], scaled
// measured value without a time tag.
// See companion standard 101, subclass 7.3.1.11.
func MeasuredValueScaled(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueScaledInfo) error {
	if !periodicBackgroundSpontRequestGroup.test(coa) {
		return ErrCmdCause
	}
	return measuredValueScaled(c, M_ME_NB_1, isSequence, coa, ca, infos...)
}

// MeasuredValueScaledCP24Time2a sends a type identification [M_ME_TB_1],
// scaled measured value with a CP24Time2a time tag; only SQ = 0 is
// valid. See companion standard 101, subclass 7.3.1.12.
func MeasuredValueScaledCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueScaledInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueScaled(c, M_ME_TB_1, false, coa, ca, infos...)
}

// MeasuredValueScaledCP56Time2a sends a type identification [M_ME_TE_1],
// scaled measured value with a CP56Time2a time tag; only SQ = 0 is
// valid. See companion standard 101, subclass 7.3.1.27.
func MeasuredValueScaledCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueScaledInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueScaled(c, M_ME_TE_1, false, coa, ca, infos...)
}

// MeasuredValueFloatInfo is a short-floating-point measured-value
// information object.
type MeasuredValueFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	// Quality descriptor asdu.QDSGood means no remarks.
	Qds QualityDescriptor
	// the type does not include timing will ignore
	Time time.Time
}

// measuredValueFloat sends a type identification [M_ME_NC_1], [M_ME_TC_1]
// or [M_ME_TF_1], short-floating-point measured values.
// [M_ME_NC_1] See companion standard 101, subclass 7.3.1.13
// [M_ME_TC_1] See companion standard 101, subclass 7.3.1.14
// [M_ME_TF_1] See companion standard 101, subclass 7.3.1.28
func measuredValueFloat(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}

		u.AppendFloat32(v.Value).AppendBytes(byte(v.Qds & 0xf1))
		switch typeID {
		case M_ME_NC_1:
		case M_ME_TC_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_ME_TF_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// MeasuredValueFloat sends a type identification [M_ME_NC_1],
// short-floating-point measured value without a time tag.
// See companion standard 101, subclass 7.3.1.13.
func MeasuredValueFloat(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	if !periodicBackgroundSpontRequestGroup.test(coa) {
		return ErrCmdCause
	}
	return measuredValueFloat(c, M_ME_NC_1, isSequence, coa, ca, infos...)
}

// MeasuredValueFloatCP24Time2a sends a type identification [M_ME_TC_1],
// short-floating-point measured value with a CP24Time2a time tag; only
// SQ = 0 is valid. See companion standard 101, subclass 7.3.1.14.
func MeasuredValueFloatCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueFloat(c, M_ME_TC_1, false, coa, ca, infos...)
}

// MeasuredValueFloatCP56Time2a sends a type identification [M_ME_TF_1],
// short-floating-point measured value with a CP56Time2a time tag; only
// SQ = 0 is valid. See companion standard 101, subclass 7.3.1.28.
func MeasuredValueFloatCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	if !spontRequest.test(coa) {
		return ErrCmdCause
	}
	return measuredValueFloat(c, M_ME_TF_1, false, coa, ca, infos...)
}

// BinaryCounterReadingInfo is an integrated-totals (binary counter
// reading) information object.
type BinaryCounterReadingInfo struct {
	Ioa   InfoObjAddr
	Value BinaryCounterReading
	// the type does not include timing will ignore
	Time time.Time
}

// integratedTotals sends a type identification [M_IT_NA_1], [M_IT_TA_1]
// or [M_IT_TB_1], integrated totals (binary counter readings).
// [M_IT_NA_1] See companion standard 101, subclass 7.3.1.15
// [M_IT_TA_1] See companion standard 101, subclass 7.3.1.16
// [M_IT_TB_1] See companion standard 101, subclass 7.3.1.29
func integratedTotals(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...BinaryCounterReadingInfo) error {
	u, err := newMonitorASDU(c, typeID, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}
		u.AppendBinaryCounterReading(v.Value)
		switch typeID {
		case M_IT_NA_1:
		case M_IT_TA_1:
			u.AppendBytes(CP24Time2a(v.Time, u.InfoObjTimeZone)...)
		case M_IT_TB_1:
			u.AppendBytes(CP56Time2a(v.Time, u.InfoObjTimeZone)...)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// IntegratedTotals sends a type identification [M_IT_NA_1], integrated
// totals without a time tag. The valid causes are spontaneous or one
// of the five counter-interrogation responses.
// See companion standard 101, subclass 7.3.1.15.
func IntegratedTotals(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...BinaryCounterReadingInfo) error {
	if !integratedTotalsGroup.test(coa) {
		return ErrCmdCause
	}
	return integratedTotals(c, M_IT_NA_1, isSequence, coa, ca, infos...)
}

// IntegratedTotalsCP24Time2a sends a type identification [M_IT_TA_1],
// integrated totals with a CP24Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.16.
func IntegratedTotalsCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...BinaryCounterReadingInfo) error {
	if !integratedTotalsGroup.test(coa) {
		return ErrCmdCause
	}
	return integratedTotals(c, M_IT_TA_1, false, coa, ca, infos...)
}

// IntegratedTotalsCP56Time2a sends a type identification [M_IT_TB_1],
// integrated totals with a CP56Time2a time tag; only SQ = 0 is valid.
// See companion standard 101, subclass 7.3.1.29.
func IntegratedTotalsCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...BinaryCounterReadingInfo) error {
	if !integratedTotalsGroup.test(coa) {
		return ErrCmdCause
	}
	return integratedTotals(c, M_IT_TB_1, false, coa, ca, infos...)
}

// EventOfProtectionEquipmentInfo is a protection-equipment single-event
// information object.
type EventOfProtectionEquipmentInfo struct {
	Ioa   InfoObjAddr
	Event SingleEvent
	Qdp   QualityDescriptorProtection
	Msec  uint16
	// the type does not include timing will ignore
	Time time.Time
}

// eventOfProtectionEquipment sends a type identification [M_EP_TA_1] or
// [M_EP_TD_1], protection-equipment events. Always sent with cause
// Spontaneous.
// [M_EP_TA_1] See companion standard 101, subclass 7.3.1.17
// [M_EP_TD_1] See companion standard 101, subclass 7.3.1.30
func eventOfProtectionEquipment(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, infos ...EventOfProtectionEquipmentInfo) error {
	if coa.Cause != Spontaneous {
		return ErrCmdCause
	}
	u, err := newMonitorASDU(c, typeID, false, coa, ca, len(infos))
	if err != nil {
		return err
	}
	for _, v := range infos {
		if err := u.AppendInfoObjAddr(v.Ioa); err != nil {
			return err
		}
		u.AppendBytes(byte(v.Event&0x03) | byte(v.Qdp&0xf8))
		u.AppendCP16Time2a(v.Msec)
		switch typeID {
		case M_EP_TA_1:
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		case M_EP_TD_1:
			u.AppendCP56Time2a(v.Time, u.InfoObjTimeZone)
		default:
			return ErrTypeIDNotMatch
		}
	}
	return c.Send(u)
}

// EventOfProtectionEquipmentCP24Time2a sends a type identification
// [M_EP_TA_1], a protection-equipment event with a CP24Time2a time tag.
// See companion standard 101, subclass 7.3.1.17.
func EventOfProtectionEquipmentCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...EventOfProtectionEquipmentInfo) error {
	return eventOfProtectionEquipment(c, M_EP_TA_1, coa, ca, infos...)
}

// EventOfProtectionEquipmentCP56Time2a sends a type identification
// [M_EP_TD_1], a protection-equipment event with a CP56Time2a time tag.
// See companion standard 101, subclass 7.3.1.30.
func EventOfProtectionEquipmentCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, infos ...EventOfProtectionEquipmentInfo) error {
	return eventOfProtectionEquipment(c, M_EP_TD_1, coa, ca, infos...)
}

// PackedStartEventsOfProtectionEquipmentInfo is a grouped
// protection-equipment start-event information object.
type PackedStartEventsOfProtectionEquipmentInfo struct {
	Ioa   InfoObjAddr
	Event StartEvent
	Qdp   QualityDescriptorProtection
	Msec  uint16
	// the type does not include timing will ignore
	Time time.Time
}

// packedStartEventsOfProtectionEquipment sends a type identification
// [M_EP_TB_1] or [M_EP_TE_1], packed protection-equipment start events.
// Always sent with cause Spontaneous.
// [M_EP_TB_1] See companion standard 101, subclass 7.3.1.18
// [M_EP_TE_1] See companion standard 101, subclass 7.3.1.31
func packedStartEventsOfProtectionEquipment(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, info PackedStartEventsOfProtectionEquipmentInfo) error {
	if coa.Cause != Spontaneous {
		return ErrCmdCause
	}
	u, err := newMonitorASDU(c, typeID, false, coa, ca, 1)
	if err != nil {
		return err
	}

	if err := u.AppendInfoObjAddr(info.Ioa); err != nil {
		return err
	}
	u.AppendBytes(byte(info.Event), byte(info.Qdp)&0xf8)
	u.AppendCP16Time2a(info.Msec)
	switch typeID {
	case M_EP_TB_1:
		u.AppendCP24Time2a(info.Time, u.InfoObjTimeZone)
	case M_EP_TE_1:
		u.AppendCP56Time2a(info.Time, u.InfoObjTimeZone)
	default:
		return ErrTypeIDNotMatch
	}

	return c.Send(u)
}

// PackedStartEventsOfProtectionEquipmentCP24Time2a sends a type
// identification [M_EP_TB_1], a packed protection-equipment start
// event with a CP24Time2a time tag.
// See companion standard 101, subclass 7.3.1.18.
func PackedStartEventsOfProtectionEquipmentCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, info PackedStartEventsOfProtectionEquipmentInfo) error {
	return packedStartEventsOfProtectionEquipment(c, M_EP_TB_1, coa, ca, info)
}

// PackedStartEventsOfProtectionEquipmentCP56Time2a sends a type
// identification [M_EP_TE_1], a packed protection-equipment start
// event with a CP56Time2a time tag.
// See companion standard 101, subclass 7.3.1.31.
func PackedStartEventsOfProtectionEquipmentCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, info PackedStartEventsOfProtectionEquipmentInfo) error {
	return packedStartEventsOfProtectionEquipment(c, M_EP_TE_1, coa, ca, info)
}

// PackedOutputCircuitInfoInfo is a grouped protection-equipment
// output-circuit information object.
type PackedOutputCircuitInfoInfo struct {
	Ioa  InfoObjAddr
	Oci  OutputCircuitInfo
	Qdp  QualityDescriptorProtection
	Msec uint16
	// the type does not include timing will ignore
	Time time.Time
}

// packedOutputCircuitInfo sends a type identification [M_EP_TC_1] or
// [M_EP_TF_1], packed protection-equipment output-circuit information.
// Always sent with cause Spontaneous.
// [M_EP_TC_1] See companion standard 101, subclass 7.3.1.19
// [M_EP_TF_1] See companion standard 101, subclass 7.3.1.32
func packedOutputCircuitInfo(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, info PackedOutputCircuitInfoInfo) error {
	if coa.Cause != Spontaneous {
		return ErrCmdCause
	}
	u, err := newMonitorASDU(c, typeID, false, coa, ca, 1)
	if err != nil {
		return err
	}

	if err := u.AppendInfoObjAddr(info.Ioa); err != nil {
		return err
	}
	u.AppendBytes(byte(info.Oci), byte(info.Qdp)&0xf8)
	u.AppendCP16Time2a(info.Msec)
	switch typeID {
	case M_EP_TC_1:
		u.AppendCP24Time2a(info.Time, u.InfoObjTimeZone)
	case M_EP_TF_1:
		u.AppendCP56Time2a(info.Time, u.InfoObjTimeZone)
	default:
		return ErrTypeIDNotMatch
	}

	return c.Send(u)
}

// PackedOutputCircuitInfoCP24Time2a sends a type identification
// [M_EP_TC_1], packed protection-equipment output-circuit information
// with a CP24Time2a time tag. See companion standard 101, subclass
// 7.3.1.19.
func PackedOutputCircuitInfoCP24Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, info PackedOutputCircuitInfoInfo) error {
	return packedOutputCircuitInfo(c, M_EP_TC_1, coa, ca, info)
}

// PackedOutputCircuitInfoCP56Time2a sends a type identification
// [M_EP_TF_1], packed protection-equipment output-circuit information
// with a CP56Time2a time tag. See companion standard 101, subclass
// 7.3.1.32.
func PackedOutputCircuitInfoCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, info PackedOutputCircuitInfoInfo) error {
	return packedOutputCircuitInfo(c, M_EP_TF_1, coa, ca, info)
}

// PackedSinglePointWithSCDInfo is a grouped single-point information
// object with status-change detection.
type PackedSinglePointWithSCDInfo struct {
	Ioa InfoObjAddr
	Scd StatusAndStatusChangeDetection
	Qds QualityDescriptor
}

// PackedSinglePointWithSCD sends a type identification [M_PS_NA_1],
// packed single-point information with status-change detection.
// See companion standard 101, subclass 7.3.1.20.
func PackedSinglePointWithSCD(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...PackedSinglePointWithSCDInfo) error {
	if !backgroundSpontRequestReturnGroup.test(coa) {
		return ErrCmdCause
	}
	u, err := newMonitorASDU(c, M_PS_NA_1, isSequence, coa, ca, len(infos))
	if err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if err := appendAddrOnce(u, v.Ioa, isSequence, &once); err != nil {
			return err
		}
		u.AppendStatusAndStatusChangeDetection(v.Scd)
		u.AppendBytes(byte(v.Qds))
	}
	return c.Send(u)
}

// GetSinglePoint decodes a [M_SP_NA_1], [M_SP_TA_1] or [M_SP_TB_1]
// information object set.
func (sf *ASDU) GetSinglePoint() []SinglePointInfo {
	info := make([]SinglePointInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)
		value := sf.DecodeByte()

		var t time.Time
		switch sf.Type {
		case M_SP_NA_1:
		case M_SP_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_SP_TB_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, SinglePointInfo{
			Ioa:   addr,
			Value: value&0x01 == 0x01,
			Qds:   QualityDescriptor(value & 0xf0),
			Time:  t})
	}
	return info
}

// GetDoublePoint decodes a [M_DP_NA_1], [M_DP_TA_1] or [M_DP_TB_1]
// information object set.
func (sf *ASDU) GetDoublePoint() []DoublePointInfo {
	info := make([]DoublePointInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)
		value := sf.DecodeByte()

		var t time.Time
		switch sf.Type {
		case M_DP_NA_1:
		case M_DP_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_DP_TB_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, DoublePointInfo{
			Ioa:   addr,
			Value: DoublePoint(value & 0x03),
			Qds:   QualityDescriptor(value & 0xf0),
			Time:  t})
	}
	return info
}

// GetStepPosition decodes a [M_ST_NA_1], [M_ST_TA_1] or [M_ST_TB_1]
// information object set.
func (sf *ASDU) GetStepPosition() []StepPositionInfo {
	info := make([]StepPositionInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)
		value := ParseStepPosition(sf.DecodeByte())
		qds := QualityDescriptor(sf.DecodeByte())

		var t time.Time
		switch sf.Type {
		case M_ST_NA_1:
		case M_ST_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_ST_TB_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, StepPositionInfo{
			Ioa:   addr,
			Value: value,
			Qds:   qds,
			Time:  t})
	}
	return info
}

// GetBitString32 decodes a [M_BO_NA_1], [M_BO_TA_1] or [M_BO_TB_1]
// information object set.
func (sf *ASDU) GetBitString32() []BitString32Info {
	info := make([]BitString32Info, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)

		value := sf.DecodeBitsString32()
		qds := QualityDescriptor(sf.DecodeByte())

		var t time.Time
		switch sf.Type {
		case M_BO_NA_1:
		case M_BO_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_BO_TB_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, BitString32Info{
			Ioa:   addr,
			Value: value,
			Qds:   qds,
			Time:  t})
	}
	return info
}

// GetMeasuredValueNormal decodes a [M_ME_NA_1], [M_ME_TA_1], [M_ME_TD_1]
// or [M_ME_ND_1] information object set.
func (sf *ASDU) GetMeasuredValueNormal() []MeasuredValueNormalInfo {
	info := make([]MeasuredValueNormalInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)
		value := sf.DecodeNormalize()

		var t time.Time
		var qds QualityDescriptor
		switch sf.Type {
		case M_ME_NA_1:
			qds = QualityDescriptor(sf.DecodeByte())
		case M_ME_TA_1:
			qds = QualityDescriptor(sf.DecodeByte())
			t = sf.DecodeCP24Time2a()
		case M_ME_TD_1:
			qds = QualityDescriptor(sf.DecodeByte())
			t = sf.DecodeCP56Time2a()
		case M_ME_ND_1: // no quality descriptor transmitted
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, MeasuredValueNormalInfo{
			Ioa:   addr,
			Value: value,
			Qds:   qds,
			Time:  t})
	}
	return info
}

// GetMeasuredValueScaled decodes a [M_ME_NB_1], [M_ME_TB_1] or
// [M_ME_TE_1] information object set.
func (sf *ASDU) GetMeasuredValueScaled() []MeasuredValueScaledInfo {
	info := make([]MeasuredValueScaledInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)

		value := sf.DecodeScaled()
		qds := QualityDescriptor(sf.DecodeByte())

		var t time.Time
		switch sf.Type {
		case M_ME_NB_1:
		case M_ME_TB_1:
			t = sf.DecodeCP24Time2a()
		case M_ME_TE_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}

		info = append(info, MeasuredValueScaledInfo{
			Ioa:   addr,
			Value: value,
			Qds:   qds,
			Time:  t})
	}
	return info
}

// GetMeasuredValueFloat decodes a [M_ME_NC_1], [M_ME_TC_1] or
// [M_ME_TF_1] information object set.
func (sf *ASDU) GetMeasuredValueFloat() []MeasuredValueFloatInfo {
	info := make([]MeasuredValueFloatInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)

		value := sf.DecodeFloat32()
		qua := sf.DecodeByte() & 0xf1

		var t time.Time
		switch sf.Type {
		case M_ME_NC_1:
		case M_ME_TC_1:
			t = sf.DecodeCP24Time2a()
		case M_ME_TF_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}
		info = append(info, MeasuredValueFloatInfo{
			Ioa:   addr,
			Value: value,
			Qds:   QualityDescriptor(qua),
			Time:  t})
	}
	return info
}

// GetIntegratedTotals decodes a [M_IT_NA_1], [M_IT_TA_1] or [M_IT_TB_1]
// information object set.
func (sf *ASDU) GetIntegratedTotals() []BinaryCounterReadingInfo {
	info := make([]BinaryCounterReadingInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)

		value := sf.DecodeBinaryCounterReading()

		var t time.Time
		switch sf.Type {
		case M_IT_NA_1:
		case M_IT_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_IT_TB_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}
		info = append(info, BinaryCounterReadingInfo{
			Ioa:   addr,
			Value: value,
			Time:  t})
	}
	return info
}

// GetEventOfProtectionEquipment decodes a [M_EP_TA_1] or [M_EP_TD_1]
// information object set.
func (sf *ASDU) GetEventOfProtectionEquipment() []EventOfProtectionEquipmentInfo {
	info := make([]EventOfProtectionEquipmentInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)

		value := sf.DecodeByte()
		msec := sf.DecodeCP16Time2a()
		var t time.Time
		switch sf.Type {
		case M_EP_TA_1:
			t = sf.DecodeCP24Time2a()
		case M_EP_TD_1:
			t = sf.DecodeCP56Time2a()
		default:
			panic(ErrTypeIDNotMatch)
		}
		info = append(info, EventOfProtectionEquipmentInfo{
			Ioa:   addr,
			Event: SingleEvent(value & 0x03),
			Qdp:   QualityDescriptorProtection(value & 0xf8),
			Msec:  msec,
			Time:  t})
	}
	return info
}

// GetPackedStartEventsOfProtectionEquipment decodes a [M_EP_TB_1] or
// [M_EP_TE_1] information object.
func (sf *ASDU) GetPackedStartEventsOfProtectionEquipment() PackedStartEventsOfProtectionEquipmentInfo {
	info := PackedStartEventsOfProtectionEquipmentInfo{}

	if sf.Variable.IsSequence || sf.Variable.Number != 1 {
		return info
	}

	info.Ioa = sf.DecodeInfoObjAddr()
	info.Event = StartEvent(sf.DecodeByte())
	info.Qdp = QualityDescriptorProtection(sf.DecodeByte() & 0xf8)
	info.Msec = sf.DecodeCP16Time2a()
	switch sf.Type {
	case M_EP_TB_1:
		info.Time = sf.DecodeCP24Time2a()
	case M_EP_TE_1:
		info.Time = sf.DecodeCP56Time2a()
	default:
		panic(ErrTypeIDNotMatch)
	}
	return info
}

// GetPackedOutputCircuitInfo decodes a [M_EP_TC_1] or [M_EP_TF_1]
// information object.
func (sf *ASDU) GetPackedOutputCircuitInfo() PackedOutputCircuitInfoInfo {
	info := PackedOutputCircuitInfoInfo{}

	if sf.Variable.IsSequence || sf.Variable.Number != 1 {
		return info
	}

	info.Ioa = sf.DecodeInfoObjAddr()
	info.Oci = OutputCircuitInfo(sf.DecodeByte())
	info.Qdp = QualityDescriptorProtection(sf.DecodeByte() & 0xf8)
	info.Msec = sf.DecodeCP16Time2a()
	switch sf.Type {
	case M_EP_TC_1:
		info.Time = sf.DecodeCP24Time2a()
	case M_EP_TF_1:
		info.Time = sf.DecodeCP56Time2a()
	default:
		panic(ErrTypeIDNotMatch)
	}
	return info
}

// GetPackedSinglePointWithSCD decodes a [M_PS_NA_1] information object
// set.
func (sf *ASDU) GetPackedSinglePointWithSCD() []PackedSinglePointWithSCDInfo {
	info := make([]PackedSinglePointWithSCDInfo, 0, sf.Variable.Number)
	addr := InfoObjAddr(0)
	once := false
	for i := 0; i < int(sf.Variable.Number); i++ {
		addr = nextAddr(sf, addr, &once)
		scd := sf.DecodeStatusAndStatusChangeDetection()
		qds := QualityDescriptor(sf.DecodeByte())
		info = append(info, PackedSinglePointWithSCDInfo{
			Ioa: addr,
			Scd: scd,
			Qds: qds})
	}
	return info
}
