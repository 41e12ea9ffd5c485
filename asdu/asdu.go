// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package asdu provides the application service data unit codec: the
// information-object zoo and the ASDU container that carries it, shared
// by the cs101 and cs104 transports.
package asdu

import (
	"fmt"
	"io"
	"time"
)

// ASDUSizeMax is the largest encoded ASDU, fixed by companion standard 101.
const ASDUSizeMax = 249

// ASDU format
//       | data unit identification | information object <1..n> |
//       | <------------  data unit identification ------------>|
//       | typeID | variable struct | cause  |  common address  |
// bytes |    1   |      1          | [1,2]  |      [1,2]       |
//       | <------------  information object ------------------>|
//       | object address | element set  |  object time scale   |
// bytes |     [1,2,3]    |              |                      |

var (
	// ParamsNarrow is the smallest valid configuration: 1-byte cause,
	// 1-byte common address, 1-byte information object address.
	ParamsNarrow = &Params{CauseSize: 1, CommonAddrSize: 1, InfoObjAddrSize: 1, InfoObjTimeZone: time.UTC}
	// ParamsWide is the largest valid configuration.
	ParamsWide = &Params{CauseSize: 2, CommonAddrSize: 2, InfoObjAddrSize: 3, InfoObjTimeZone: time.UTC}
)

// Params holds the application layer parameters that control how an
// ASDU's identifier section is encoded: the width of the cause,
// common address and information object address fields.
// See companion standard 101, subclass 7.1.
type Params struct {
	// CauseSize is the octet width of the cause of transmission field.
	// The standard requires it in [1, 2]; 2 activates the originator
	// address sub-field.
	CauseSize int
	// OrigAddress is the default originator address used when building
	// outgoing ASDUs, [1, 255] or 0 for none. Only meaningful when
	// CauseSize == 2.
	OrigAddress OriginAddr
	// CommonAddrSize is the octet width of the common (station) address.
	// The standard requires it in [1, 2].
	CommonAddrSize int
	// InfoObjAddrSize is the octet width of the information object
	// address. The standard requires it in [1, 3].
	InfoObjAddrSize int
	// InfoObjTimeZone controls how CP24Time2a/CP56Time2a fields are
	// interpreted; the standard itself is silent on time zone.
	InfoObjTimeZone *time.Location
}

// Valid reports whether the parameter widths are within the range the
// standard allows.
func (sf Params) Valid() error {
	if (sf.CauseSize < 1 || sf.CauseSize > 2) ||
		(sf.CommonAddrSize < 1 || sf.CommonAddrSize > 2) ||
		(sf.InfoObjAddrSize < 1 || sf.InfoObjAddrSize > 3) ||
		sf.InfoObjTimeZone == nil {
		return ErrParam
	}
	return nil
}

// ValidCommonAddr reports whether addr is usable as a station address
// under these parameters.
func (sf Params) ValidCommonAddr(addr CommonAddr) error {
	if addr == InvalidCommonAddr {
		return ErrCommonAddrZero
	}
	if sf.CommonAddrSize == 1 && addr != GlobalCommonAddr && addr > 254 {
		return ErrCommonAddrFit
	}
	if sf.CommonAddrSize == 2 && addr > 65535 {
		return ErrCommonAddrFit
	}
	return nil
}

// IdentifierSize returns the encoded size of the data unit identifier
// section: type (1) + variable structure qualifier (1) + cause +
// common address.
func (sf Params) IdentifierSize() int {
	return 2 + sf.CauseSize + sf.CommonAddrSize
}

// Identifier is the application service data unit identifier: the
// fixed header shared by every information object in the ASDU.
type Identifier struct {
	// Type is the type identification.
	Type TypeID
	// Variable is the variable structure qualifier (SQ bit + count).
	Variable VariableStruct
	// Coa is the cause of transmission.
	Coa CauseOfTransmission
	// OrigAddr is the originator address; only encoded when
	// Params.CauseSize == 2.
	OrigAddr OriginAddr
	// CommonAddr is the station address this ASDU addresses.
	CommonAddr CommonAddr
}

// String returns "TID<..> COT<..> [orig]@addr".
func (id Identifier) String() string {
	if id.OrigAddr == 0 {
		return fmt.Sprintf("%s %s @%d", id.Type, id.Coa, id.CommonAddr)
	}
	return fmt.Sprintf("%s %s %d@%d", id.Type, id.Coa, id.OrigAddr, id.CommonAddr)
}

// ASDU (Application Service Data Unit) is one application layer message:
// an identifier followed by zero or more information objects.
type ASDU struct {
	*Params
	Identifier
	infoObj   []byte
	bootstrap [ASDUSizeMax]byte // backs infoObj, avoids a heap alloc per ASDU
}

// NewEmptyASDU returns an ASDU with no identifier set, ready to be filled
// in and sent, or to receive UnmarshalBinary.
func NewEmptyASDU(p *Params) *ASDU {
	a := &ASDU{Params: p}
	lenDUI := a.IdentifierSize()
	a.infoObj = a.bootstrap[lenDUI:lenDUI]
	return a
}

// NewASDU returns an ASDU with the given identifier and an empty
// information object section.
func NewASDU(p *Params, identifier Identifier) *ASDU {
	a := NewEmptyASDU(p)
	a.Identifier = identifier
	return a
}

// Clone returns a deep copy of sf.
func (sf *ASDU) Clone() *ASDU {
	r := NewASDU(sf.Params, sf.Identifier)
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return r
}

// SetVariableNumber sets the information object count of the variable
// structure qualifier. See companion standard 101, subclass 7.2.2.
func (sf *ASDU) SetVariableNumber(n int) error {
	if n >= 128 {
		return ErrInfoObjIndexFit
	}
	sf.Variable.Number = byte(n)
	return nil
}

// Reply returns a new ASDU addressed to addr, with cause c and a copy of
// sf's information objects — used to answer an incoming command.
func (sf *ASDU) Reply(c Cause, addr CommonAddr) *ASDU {
	r := NewASDU(sf.Params, sf.Identifier)
	r.CommonAddr = addr
	r.Coa.Cause = c
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return r
}

// SendReplyMirror sends a reply to the mirrored request with cause
// changed to cause, over connection c.
func (sf *ASDU) SendReplyMirror(c Connect, cause Cause) error {
	r := NewASDU(sf.Params, sf.Identifier)
	r.Coa.Cause = cause
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return c.Send(r)
}

// String returns a human-readable header; it never dumps the raw
// information object bytes.
func (sf *ASDU) String() string {
	if sf == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s VSQ<%s> len(info)=%d", sf.Identifier, sf.Variable, len(sf.infoObj))
}

// MarshalBinary honors encoding.BinaryMarshaler.
func (sf *ASDU) MarshalBinary() (data []byte, err error) {
	switch {
	case sf.Coa.Cause == Unused:
		return nil, ErrCauseZero
	case !(sf.CauseSize == 1 || sf.CauseSize == 2):
		return nil, ErrParam
	case sf.CauseSize == 1 && sf.OrigAddr != 0:
		return nil, ErrOriginAddrFit
	case sf.CommonAddr == InvalidCommonAddr:
		return nil, ErrCommonAddrZero
	case !(sf.CommonAddrSize == 1 || sf.CommonAddrSize == 2):
		return nil, ErrParam
	case sf.CommonAddrSize == 1 && sf.CommonAddr != GlobalCommonAddr && sf.CommonAddr >= 255:
		return nil, ErrParam
	}

	raw := sf.bootstrap[:sf.IdentifierSize()+len(sf.infoObj)]
	raw[0] = byte(sf.Type)
	raw[1] = sf.Variable.Value()
	raw[2] = sf.Coa.Value()
	offset := 3
	if sf.CauseSize == 2 {
		raw[offset] = byte(sf.OrigAddr)
		offset++
	}
	if sf.CommonAddrSize == 1 {
		if sf.CommonAddr == GlobalCommonAddr {
			raw[offset] = 255
		} else {
			raw[offset] = byte(sf.CommonAddr)
		}
	} else {
		raw[offset] = byte(sf.CommonAddr)
		offset++
		raw[offset] = byte(sf.CommonAddr >> 8)
	}
	return raw, nil
}

// UnmarshalBinary honors encoding.BinaryUnmarshaler. sf.Params must
// already be set; every other field is overwritten.
func (sf *ASDU) UnmarshalBinary(rawAsdu []byte) error {
	if !(sf.CauseSize == 1 || sf.CauseSize == 2) ||
		!(sf.CommonAddrSize == 1 || sf.CommonAddrSize == 2) {
		return ErrParam
	}

	lenDUI := sf.IdentifierSize()
	if lenDUI > len(rawAsdu) {
		return io.EOF
	}

	sf.Type = TypeID(rawAsdu[0])
	sf.Variable = ParseVariableStruct(rawAsdu[1])
	sf.Coa = ParseCauseOfTransmission(rawAsdu[2])
	if sf.CauseSize == 1 {
		sf.OrigAddr = 0
	} else {
		sf.OrigAddr = OriginAddr(rawAsdu[3])
	}
	if sf.CommonAddrSize == 1 {
		sf.CommonAddr = CommonAddr(rawAsdu[lenDUI-1])
		if sf.CommonAddr == 255 {
			sf.CommonAddr = GlobalCommonAddr
		}
	} else {
		sf.CommonAddr = CommonAddr(rawAsdu[lenDUI-2]) | CommonAddr(rawAsdu[lenDUI-1])<<8
	}
	sf.infoObj = append(sf.bootstrap[lenDUI:lenDUI], rawAsdu[lenDUI:]...)
	return sf.fixInfoObjSize()
}

// fixInfoObjSize trims infoObj to the size implied by TypeID and the
// variable structure qualifier, or reports an error if what's present
// doesn't cover it.
func (sf *ASDU) fixInfoObjSize() error {
	if sf.Type == F_SG_NA_1 {
		// segment length is carried in-band (a length octet ahead of the
		// data itself); the wire framing already bounds infoObj exactly.
		if len(sf.infoObj) == 0 {
			return ErrInfoObjIndexFit
		}
		return nil
	}

	objSize, err := GetInfoObjSize(sf.Type)
	if err != nil {
		return err
	}

	var size int
	if sf.Variable.IsSequence {
		size = sf.InfoObjAddrSize + int(sf.Variable.Number)*objSize
	} else {
		size = int(sf.Variable.Number) * (sf.InfoObjAddrSize + objSize)
	}

	switch {
	case size == 0:
		return ErrInfoObjIndexFit
	case size > len(sf.infoObj):
		return io.EOF
	case size < len(sf.infoObj):
		sf.infoObj = sf.infoObj[:size]
	}
	return nil
}
