// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// Parameter loading/activation in the control direction (companion
// standard 101, subclass 7.3.5). Each carries exactly one information
// object (SQ = 0) under cause Activation (P_AC_NA_1 additionally allows
// Deactivation).

// newParamCmd builds the common single-object ASDU shell a parameter
// command sends, after checking coa carries an allowed cause.
func newParamCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr, allowDeactivation bool) (*ASDU, error) {
	if coa.Cause != Activation && !(allowDeactivation && coa.Cause == Deactivation) {
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

// ParameterNormalInfo is a normalized measured-value parameter's
// information object.
type ParameterNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	Qpm   QualifierOfParameterMV
}

// ParameterNormal sends P_ME_NA_1, loading a normalized-value
// parameter. See companion standard 101, subclass 7.3.5.1.
func ParameterNormal(c Connect, coa CauseOfTransmission, ca CommonAddr, p ParameterNormalInfo) error {
	u, err := newParamCmd(c, P_ME_NA_1, coa, ca, p.Ioa, false)
	if err != nil {
		return err
	}
	u.AppendNormalize(p.Value)
	u.AppendBytes(p.Qpm.Value())
	return c.Send(u)
}

// ParameterScaledInfo is a scaled measured-value parameter's
// information object.
type ParameterScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	Qpm   QualifierOfParameterMV
}

// ParameterScaled sends P_ME_NB_1, loading a scaled-value parameter.
// See companion standard 101, subclass 7.3.5.2.
func ParameterScaled(c Connect, coa CauseOfTransmission, ca CommonAddr, p ParameterScaledInfo) error {
	u, err := newParamCmd(c, P_ME_NB_1, coa, ca, p.Ioa, false)
	if err != nil {
		return err
	}
	u.AppendScaled(p.Value).AppendBytes(p.Qpm.Value())
	return c.Send(u)
}

// ParameterFloatInfo is a short-floating-point measured-value
// parameter's information object.
type ParameterFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	Qpm   QualifierOfParameterMV
}

// ParameterFloat sends P_ME_NC_1, loading a short-floating-point
// parameter. See companion standard 101, subclass 7.3.5.3.
func ParameterFloat(c Connect, coa CauseOfTransmission, ca CommonAddr, p ParameterFloatInfo) error {
	u, err := newParamCmd(c, P_ME_NC_1, coa, ca, p.Ioa, false)
	if err != nil {
		return err
	}
	u.AppendFloat32(p.Value).AppendBytes(p.Qpm.Value())
	return c.Send(u)
}

// ParameterActivationInfo is a parameter activation's information object.
type ParameterActivationInfo struct {
	Ioa InfoObjAddr
	Qpa QualifierOfParameterAct
}

// ParameterActivation sends P_AC_NA_1, (de)activating a previously
// loaded parameter set or object. See companion standard 101, subclass
// 7.3.5.4.
func ParameterActivation(c Connect, coa CauseOfTransmission, ca CommonAddr, p ParameterActivationInfo) error {
	u, err := newParamCmd(c, P_AC_NA_1, coa, ca, p.Ioa, true)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(p.Qpa))
	return c.Send(u)
}

// GetParameterNormal decodes a P_ME_NA_1 information object.
func (sf *ASDU) GetParameterNormal() ParameterNormalInfo {
	return ParameterNormalInfo{
		sf.DecodeInfoObjAddr(),
		sf.DecodeNormalize(),
		ParseQualifierOfParamMV(sf.infoObj[0]),
	}
}

// GetParameterScaled decodes a P_ME_NB_1 information object.
func (sf *ASDU) GetParameterScaled() ParameterScaledInfo {
	return ParameterScaledInfo{
		sf.DecodeInfoObjAddr(),
		sf.DecodeScaled(),
		ParseQualifierOfParamMV(sf.infoObj[0]),
	}
}

// GetParameterFloat decodes a P_ME_NC_1 information object.
func (sf *ASDU) GetParameterFloat() ParameterFloatInfo {
	return ParameterFloatInfo{
		sf.DecodeInfoObjAddr(),
		sf.DecodeFloat32(),
		ParseQualifierOfParamMV(sf.infoObj[0]),
	}
}

// GetParameterActivation decodes a P_AC_NA_1 information object.
func (sf *ASDU) GetParameterActivation() ParameterActivationInfo {
	return ParameterActivationInfo{
		sf.DecodeInfoObjAddr(),
		QualifierOfParameterAct(sf.infoObj[0]),
	}
}
