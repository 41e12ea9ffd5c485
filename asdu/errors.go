// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import "errors"

// sentinel errors returned by the asdu package
var (
	ErrParam             = errors.New("asdu: invalid parameter")
	ErrCauseZero         = errors.New("asdu: cause of transmission is zero")
	ErrCommonAddrZero    = errors.New("asdu: common address is zero")
	ErrCommonAddrFit     = errors.New("asdu: common address does not fit configured width")
	ErrOriginAddrFit     = errors.New("asdu: originator address requires cause size 2")
	ErrInfoObjAddrFit    = errors.New("asdu: information object address does not fit configured width")
	ErrInfoObjIndexFit   = errors.New("asdu: information object index out of range")
	ErrLengthOutOfRange  = errors.New("asdu: encoded length exceeds ASDUSizeMax")
	ErrNotAnyObjInfo     = errors.New("asdu: no information object given")
	ErrTypeIDNotMatch    = errors.New("asdu: type identification does not match requested decode")
	ErrTypeIdentifier    = errors.New("asdu: unknown type identification")
	ErrCmdCause          = errors.New("asdu: cause of transmission not valid for this command")
)
