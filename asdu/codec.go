// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"math"
	"time"
)

// AppendBytes appends raw bytes to the information object section.
func (sf *ASDU) AppendBytes(b ...byte) *ASDU {
	sf.infoObj = append(sf.infoObj, b...)
	return sf
}

// DecodeByte consumes one byte from the information object section.
func (sf *ASDU) DecodeByte() byte {
	v := sf.infoObj[0]
	sf.infoObj = sf.infoObj[1:]
	return v
}

// AppendUint16 appends a little-endian uint16.
func (sf *ASDU) AppendUint16(v uint16) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8))
	return sf
}

// DecodeUint16 consumes a little-endian uint16.
func (sf *ASDU) DecodeUint16() uint16 {
	v := binary.LittleEndian.Uint16(sf.infoObj)
	sf.infoObj = sf.infoObj[2:]
	return v
}

// AppendInfoObjAddr appends an information object address at the
// configured InfoObjAddrSize.
func (sf *ASDU) AppendInfoObjAddr(addr InfoObjAddr) error {
	switch sf.InfoObjAddrSize {
	case 1:
		if addr > 255 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr))
	case 2:
		if addr > 65535 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr), byte(addr>>8))
	case 3:
		if addr > 16777215 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr), byte(addr>>8), byte(addr>>16))
	default:
		return ErrParam
	}
	return nil
}

// DecodeInfoObjAddr consumes an information object address at the
// configured InfoObjAddrSize.
func (sf *ASDU) DecodeInfoObjAddr() InfoObjAddr {
	var ioa InfoObjAddr
	switch sf.InfoObjAddrSize {
	case 1:
		ioa = InfoObjAddr(sf.infoObj[0])
		sf.infoObj = sf.infoObj[1:]
	case 2:
		ioa = InfoObjAddr(sf.infoObj[0]) | InfoObjAddr(sf.infoObj[1])<<8
		sf.infoObj = sf.infoObj[2:]
	case 3:
		ioa = InfoObjAddr(sf.infoObj[0]) | InfoObjAddr(sf.infoObj[1])<<8 | InfoObjAddr(sf.infoObj[2])<<16
		sf.infoObj = sf.infoObj[3:]
	default:
		panic(ErrParam)
	}
	return ioa
}

// AppendNormalize appends a 16-bit normalized value.
func (sf *ASDU) AppendNormalize(n Normalize) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(n), byte(n>>8))
	return sf
}

// DecodeNormalize consumes a 16-bit normalized value.
func (sf *ASDU) DecodeNormalize() Normalize {
	n := Normalize(binary.LittleEndian.Uint16(sf.infoObj))
	sf.infoObj = sf.infoObj[2:]
	return n
}

// AppendScaled appends a 16-bit scaled value.
func (sf *ASDU) AppendScaled(i int16) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(i), byte(i>>8))
	return sf
}

// DecodeScaled consumes a 16-bit scaled value.
func (sf *ASDU) DecodeScaled() int16 {
	s := int16(binary.LittleEndian.Uint16(sf.infoObj))
	sf.infoObj = sf.infoObj[2:]
	return s
}

// AppendFloat32 appends an IEEE 754 single precision float.
func (sf *ASDU) AppendFloat32(f float32) *ASDU {
	bits := math.Float32bits(f)
	sf.infoObj = append(sf.infoObj, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	return sf
}

// DecodeFloat32 consumes an IEEE 754 single precision float.
func (sf *ASDU) DecodeFloat32() float32 {
	f := math.Float32frombits(binary.LittleEndian.Uint32(sf.infoObj))
	sf.infoObj = sf.infoObj[4:]
	return f
}

// AppendBitsString32 appends a 32-bit bitstring.
func (sf *ASDU) AppendBitsString32(v uint32) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return sf
}

// DecodeBitsString32 consumes a 32-bit bitstring.
func (sf *ASDU) DecodeBitsString32() uint32 {
	v := binary.LittleEndian.Uint32(sf.infoObj)
	sf.infoObj = sf.infoObj[4:]
	return v
}

// AppendBinaryCounterReading appends a 5-octet binary counter reading:
// a 32-bit counter value followed by sequence number (bit0-4), carry
// (bit5), adjusted (bit6) and invalid (bit7).
func (sf *ASDU) AppendBinaryCounterReading(r BinaryCounterReading) *ASDU {
	v := uint32(r.CounterReading)
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	b := r.SeqNumber & 0x1f
	if r.HasCarry {
		b |= 0x20
	}
	if r.IsAdjusted {
		b |= 0x40
	}
	if r.IsInvalid {
		b |= 0x80
	}
	sf.infoObj = append(sf.infoObj, b)
	return sf
}

// DecodeBinaryCounterReading consumes a 5-octet binary counter reading.
func (sf *ASDU) DecodeBinaryCounterReading() BinaryCounterReading {
	v := int32(binary.LittleEndian.Uint32(sf.infoObj))
	b := sf.infoObj[4]
	sf.infoObj = sf.infoObj[5:]
	return BinaryCounterReading{
		CounterReading: v,
		SeqNumber:      b & 0x1f,
		HasCarry:       b&0x20 == 0x20,
		IsAdjusted:     b&0x40 == 0x40,
		IsInvalid:      b&0x80 == 0x80,
	}
}

// AppendStatusAndStatusChangeDetection appends a 4-octet packed single
// point status with change-detection field.
func (sf *ASDU) AppendStatusAndStatusChangeDetection(s StatusAndStatusChangeDetection) *ASDU {
	v := uint32(s)
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return sf
}

// DecodeStatusAndStatusChangeDetection consumes a 4-octet packed single
// point status with change-detection field.
func (sf *ASDU) DecodeStatusAndStatusChangeDetection() StatusAndStatusChangeDetection {
	v := binary.LittleEndian.Uint32(sf.infoObj)
	sf.infoObj = sf.infoObj[4:]
	return StatusAndStatusChangeDetection(v)
}

// AppendCP56Time2a appends a 7-octet binary time.
func (sf *ASDU) AppendCP56Time2a(t time.Time, loc *time.Location) *ASDU {
	sf.infoObj = append(sf.infoObj, CP56Time2a(t, loc)...)
	return sf
}

// DecodeCP56Time2a consumes a 7-octet binary time.
func (sf *ASDU) DecodeCP56Time2a() time.Time {
	t := ParseCP56Time2a(sf.infoObj, sf.Params.InfoObjTimeZone)
	sf.infoObj = sf.infoObj[7:]
	return t
}

// AppendCP24Time2a appends a 3-octet binary time.
func (sf *ASDU) AppendCP24Time2a(t time.Time, loc *time.Location) *ASDU {
	sf.infoObj = append(sf.infoObj, CP24Time2a(t, loc)...)
	return sf
}

// DecodeCP24Time2a consumes a 3-octet binary time.
func (sf *ASDU) DecodeCP24Time2a() time.Time {
	t := ParseCP24Time2a(sf.infoObj, sf.Params.InfoObjTimeZone)
	sf.infoObj = sf.infoObj[3:]
	return t
}

// AppendCP16Time2a appends a 2-octet elapsed-time-in-milliseconds field.
func (sf *ASDU) AppendCP16Time2a(msec uint16) *ASDU {
	sf.infoObj = append(sf.infoObj, CP16Time2a(msec)...)
	return sf
}

// DecodeCP16Time2a consumes a 2-octet elapsed-time-in-milliseconds field.
func (sf *ASDU) DecodeCP16Time2a() uint16 {
	msec := ParseCP16Time2a(sf.infoObj)
	sf.infoObj = sf.infoObj[2:]
	return msec
}
