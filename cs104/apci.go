// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"fmt"

	"github.com/mz-automation/lib60870-sub002/asdu"
)

const startFrame byte = 0x68 // APDU start octet

// APDU layout, 6-octet APCI header followed by an optional ASDU:
//
//	| start | length | control(4) | asdu ... |
//
// length counts everything after itself, so the whole APDU is at most
// 2 + APDUFieldSizeMax bytes.
const (
	apciHeaderSize = 6 // start(1) + length(1) + control(4)

	APCICtlFiledSize = 4 // control field width

	APDUSizeMax      = 255
	APDUFieldSizeMax = APCICtlFiledSize + asdu.ASDUSizeMax
)

// U-frame control-field function bits.
const (
	uStartDtActive  byte = 4 << iota // start data transfer
	uStartDtConfirm                  // confirm start
	uStopDtActive                    // stop data transfer
	uStopDtConfirm                   // confirm stop
	uTestFrActive                    // link test
	uTestFrConfirm                   // confirm link test
)

// iAPCI is a numbered information frame header: carries an ASDU and the
// send/receive sequence counters used for the sliding-window protocol.
type iAPCI struct {
	sendSN, rcvSN uint16
}

func (sf iAPCI) String() string {
	return fmt.Sprintf("I[sendNO: %d, recvNO: %d]", sf.sendSN, sf.rcvSN)
}

// sAPCI is a supervisory frame: acknowledges received I-frames without
// carrying any ASDU of its own.
type sAPCI struct {
	rcvSN uint16
}

func (sf sAPCI) String() string {
	return fmt.Sprintf("S[recvNO: %d]", sf.rcvSN)
}

// uAPCI is an unnumbered control frame: STARTDT/STOPDT/TESTFR and their
// confirmations.
type uAPCI struct {
	function byte
}

func (sf uAPCI) String() string {
	names := map[byte]string{
		uStartDtActive:  "StartDtActive",
		uStartDtConfirm: "StartDtConfirm",
		uStopDtActive:   "StopDtActive",
		uStopDtConfirm:  "StopDtConfirm",
		uTestFrActive:   "TestFrActive",
		uTestFrConfirm:  "TestFrConfirm",
	}
	name, ok := names[sf.function]
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("U[function: %s]", name)
}

// packSeqNo lays a 15-bit sequence number across two control octets,
// shifted left one bit to leave the low type bit free.
func packSeqNo(sn uint16) (byte, byte) {
	return byte(sn << 1), byte(sn >> 7)
}

func unpackSeqNo(lo, hi byte) uint16 {
	return uint16(lo)>>1 + uint16(hi)<<7
}

// newIFrame builds an I-frame carrying asdus, failing if the payload
// would overflow the single-APDU size limit.
func newIFrame(sendSN, rcvSN uint16, asdus []byte) ([]byte, error) {
	if len(asdus) > asdu.ASDUSizeMax {
		return nil, fmt.Errorf("ASDU filed large than max %d", asdu.ASDUSizeMax)
	}

	b := make([]byte, len(asdus)+apciHeaderSize)
	b[0] = startFrame
	b[1] = byte(len(asdus) + 4)
	b[2], b[3] = packSeqNo(sendSN)
	b[4], b[5] = packSeqNo(rcvSN)
	copy(b[6:], asdus)
	return b, nil
}

// newSFrame builds a bare acknowledgement frame for rcvSN.
func newSFrame(rcvSN uint16) []byte {
	lo, hi := packSeqNo(rcvSN)
	return []byte{startFrame, 4, 0x01, 0x00, lo, hi}
}

// newUFrame builds an unnumbered control frame requesting which.
func newUFrame(which byte) []byte {
	return []byte{startFrame, 4, which | 0x03, 0x00, 0x00, 0x00}
}

// parse splits a raw APDU into its decoded control-field header and the
// remaining ASDU payload. apdu must be at least apciHeaderSize long;
// callers read the length octet off the wire before slicing it off.
func parse(apdu []byte) (interface{}, []byte) {
	ctr1, ctr2, ctr3, ctr4 := apdu[2], apdu[3], apdu[4], apdu[5]
	payload := apdu[apciHeaderSize:]

	switch {
	case ctr1&0x01 == 0:
		return iAPCI{
			sendSN: unpackSeqNo(ctr1, ctr2),
			rcvSN:  unpackSeqNo(ctr3, ctr4),
		}, payload
	case ctr1&0x03 == 0x01:
		return sAPCI{rcvSN: unpackSeqNo(ctr3, ctr4)}, payload
	default:
		return uAPCI{function: ctr1 & 0xfc}, payload
	}
}
