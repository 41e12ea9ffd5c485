// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// File transfer, companion standard 101, subclass 7.3.6.

// FileReadyQualifier carries the NOF (name of file) together with a
// not-ready indication, as used by F_FR_NA_1.
type FileReadyQualifier struct {
	NameOfFile    uint16
	LengthOfFile  uint32 // 3 octets on the wire
	NotReady      bool
}

// FileReadyInfo is the information object of F_FR_NA_1 (file ready).
type FileReadyInfo struct {
	Ioa      InfoObjAddr
	Qualifer FileReadyQualifier
}

// FileReady sends F_FR_NA_1.
func FileReady(c Connect, coa CauseOfTransmission, ca CommonAddr, p FileReadyInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{F_FR_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.Qualifer.NameOfFile)
	u.AppendBytes(byte(p.Qualifer.LengthOfFile), byte(p.Qualifer.LengthOfFile>>8), byte(p.Qualifer.LengthOfFile>>16))
	var frq byte
	if p.Qualifer.NotReady {
		frq = 0x80
	}
	u.AppendBytes(frq)
	return c.Send(u)
}

// GetFileReady decodes F_FR_NA_1.
func (sf *ASDU) GetFileReady() FileReadyInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	lof := uint32(sf.DecodeByte()) | uint32(sf.DecodeByte())<<8 | uint32(sf.DecodeByte())<<16
	frq := sf.DecodeByte()
	return FileReadyInfo{ioa, FileReadyQualifier{nof, lof, frq&0x80 != 0}}
}

// SectionReadyInfo is the information object of F_SR_NA_1 (section ready).
type SectionReadyInfo struct {
	Ioa              InfoObjAddr
	NameOfFile       uint16
	NameOfSection    byte
	LengthOfSection  uint32 // 3 octets on the wire
	NotReady         bool
}

// SectionReady sends F_SR_NA_1.
func SectionReady(c Connect, coa CauseOfTransmission, ca CommonAddr, p SectionReadyInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{F_SR_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.NameOfFile)
	u.AppendBytes(p.NameOfSection)
	u.AppendBytes(byte(p.LengthOfSection), byte(p.LengthOfSection>>8), byte(p.LengthOfSection>>16))
	var srq byte
	if p.NotReady {
		srq = 0x80
	}
	u.AppendBytes(srq)
	return c.Send(u)
}

// GetSectionReady decodes F_SR_NA_1.
func (sf *ASDU) GetSectionReady() SectionReadyInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	nos := sf.DecodeByte()
	los := uint32(sf.DecodeByte()) | uint32(sf.DecodeByte())<<8 | uint32(sf.DecodeByte())<<16
	srq := sf.DecodeByte()
	return SectionReadyInfo{ioa, nof, nos, los, srq&0x80 != 0}
}

// FileCmdQualifier is the SCQ octet selecting one of the five F_SC_NA_1
// sub-functions: select file, request file, deactivate file, request
// section, deactivate section.
type FileCmdQualifier byte

// recognized FileCmdQualifier values, companion standard 101 table 39.
const (
	SelectFile      FileCmdQualifier = 1
	RequestFile     FileCmdQualifier = 2
	DeactivateFile  FileCmdQualifier = 3
	RequestSection  FileCmdQualifier = 4
	DeactivateSect  FileCmdQualifier = 5
)

// FileCallInfo is the information object of F_SC_NA_1 (call directory,
// select file, call file, call section).
type FileCallInfo struct {
	Ioa           InfoObjAddr
	NameOfFile    uint16
	NameOfSection byte
	Scq           FileCmdQualifier
}

// FileCall sends F_SC_NA_1.
func FileCall(c Connect, coa CauseOfTransmission, ca CommonAddr, p FileCallInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{F_SC_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.NameOfFile)
	u.AppendBytes(p.NameOfSection)
	u.AppendBytes(byte(p.Scq))
	return c.Send(u)
}

// GetFileCall decodes F_SC_NA_1.
func (sf *ASDU) GetFileCall() FileCallInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	nos := sf.DecodeByte()
	scq := FileCmdQualifier(sf.DecodeByte())
	return FileCallInfo{ioa, nof, nos, scq}
}

// LastSectionInfo is the information object of F_LS_NA_1 (last section,
// last segment).
type LastSectionInfo struct {
	Ioa           InfoObjAddr
	NameOfFile    uint16
	NameOfSection byte
	Lsq           byte // last section/segment qualifier, companion standard 101 table 40
	Chs           byte // checksum over all segments of the section
}

// LastSection sends F_LS_NA_1.
func LastSection(c Connect, coa CauseOfTransmission, ca CommonAddr, p LastSectionInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{F_LS_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.NameOfFile)
	u.AppendBytes(p.NameOfSection)
	u.AppendBytes(p.Lsq)
	u.AppendBytes(p.Chs)
	return c.Send(u)
}

// GetLastSection decodes F_LS_NA_1.
func (sf *ASDU) GetLastSection() LastSectionInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	nos := sf.DecodeByte()
	lsq := sf.DecodeByte()
	chs := sf.DecodeByte()
	return LastSectionInfo{ioa, nof, nos, lsq, chs}
}

// AckFileInfo is the information object of F_AF_NA_1 (ack file, ack section).
type AckFileInfo struct {
	Ioa           InfoObjAddr
	NameOfFile    uint16
	NameOfSection byte
	Afq           byte // ack qualifier, companion standard 101 table 41
}

// AckFile sends F_AF_NA_1.
func AckFile(c Connect, coa CauseOfTransmission, ca CommonAddr, p AckFileInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{F_AF_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.NameOfFile)
	u.AppendBytes(p.NameOfSection)
	u.AppendBytes(p.Afq)
	return c.Send(u)
}

// GetAckFile decodes F_AF_NA_1.
func (sf *ASDU) GetAckFile() AckFileInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	nos := sf.DecodeByte()
	afq := sf.DecodeByte()
	return AckFileInfo{ioa, nof, nos, afq}
}

// SegmentInfo is the information object of F_SG_NA_1 (segment): a chunk
// of file data, length variable per ASDU (no fixed GetInfoObjSize entry).
type SegmentInfo struct {
	Ioa           InfoObjAddr
	NameOfFile    uint16
	NameOfSection byte
	Data          []byte
}

// Segment sends F_SG_NA_1.
func Segment(c Connect, coa CauseOfTransmission, ca CommonAddr, p SegmentInfo) error {
	if err := c.Params().Valid(); err != nil {
		return err
	}
	// identifier + IOA + NameOfFile(2) + NameOfSection(1) + LOS(1) + data
	if c.Params().IdentifierSize()+c.Params().InfoObjAddrSize+4+len(p.Data) > ASDUSizeMax {
		return ErrLengthOutOfRange
	}
	u := NewASDU(c.Params(), Identifier{F_SG_NA_1, VariableStruct{IsSequence: false, Number: 1}, coa, 0, ca})
	if err := u.AppendInfoObjAddr(p.Ioa); err != nil {
		return err
	}
	u.AppendUint16(p.NameOfFile)
	u.AppendBytes(p.NameOfSection)
	u.AppendBytes(byte(len(p.Data)))
	u.AppendBytes(p.Data...)
	return c.Send(u)
}

// GetSegment decodes F_SG_NA_1.
func (sf *ASDU) GetSegment() SegmentInfo {
	ioa := sf.DecodeInfoObjAddr()
	nof := sf.DecodeUint16()
	nos := sf.DecodeByte()
	los := sf.DecodeByte()
	data := make([]byte, los)
	for i := range data {
		data[i] = sf.DecodeByte()
	}
	return SegmentInfo{ioa, nof, nos, data}
}

// DirectoryInfo is the information object of F_DR_TA_1 (directory): file
// name, length and status. The entry's CP56Time2a creation timestamp
// follows immediately on the wire — call DecodeCP56Time2a right after
// GetDirectory to read it.
type DirectoryInfo struct {
	Ioa   InfoObjAddr
	Entry struct {
		NameOfFile   uint16
		LengthOfFile uint32
		Sof          byte
	}
}

// GetDirectory decodes F_DR_TA_1, leaving the trailing CP56Time2a to the
// caller via DecodeCP56Time2a immediately after calling this.
func (sf *ASDU) GetDirectory() DirectoryInfo {
	var d DirectoryInfo
	d.Ioa = sf.DecodeInfoObjAddr()
	d.Entry.NameOfFile = sf.DecodeUint16()
	d.Entry.LengthOfFile = uint32(sf.DecodeByte()) | uint32(sf.DecodeByte())<<8 | uint32(sf.DecodeByte())<<16
	d.Entry.Sof = sf.DecodeByte()
	return d
}
