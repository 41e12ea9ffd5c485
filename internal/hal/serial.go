// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package hal

import (
	"time"

	"github.com/daedaluz/goserial"
)

// Parity selects the line's parity bit generation/checking.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// SerialConfig describes the line settings an FT1.2 link runs over.
type SerialConfig struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   Parity
	// ReadTimeout bounds a single Read call; zero means block indefinitely.
	ReadTimeout time.Duration
}

// DefaultSerialConfig is 9600-8-N-1, the typical CS101 line setting.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: ParityNone}
}

// SerialPort is the physical-layer surface an unbalanced or balanced
// link layer reads and writes frames over.
type SerialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(timeout time.Duration)
	Close() error
}

func baudConst(rate int) serial.CFlag {
	switch {
	case rate >= 115200:
		return serial.B115200
	case rate >= 57600:
		return serial.B57600
	case rate >= 38400:
		return serial.B38400
	case rate >= 19200:
		return serial.B19200
	default:
		return serial.B9600
	}
}

func dataBitsConst(bits int) serial.CFlag {
	switch bits {
	case 5:
		return serial.CS5
	case 6:
		return serial.CS6
	case 7:
		return serial.CS7
	default:
		return serial.CS8
	}
}

// OpenSerialPort opens name (e.g. "/dev/ttyUSB0") and configures it per
// cfg: baud rate, character size, parity, one stop bit, receiver
// enabled, modem control lines ignored, raw (non-canonical) mode.
func OpenSerialPort(name string, cfg SerialConfig) (SerialPort, error) {
	opts := serial.NewOptions().SetReadTimeout(cfg.ReadTimeout)
	port, err := serial.Open(name, opts)
	if err != nil {
		return nil, err
	}

	attrs, err := port.GetAttr()
	if err != nil {
		port.Close()
		return nil, err
	}

	attrs.Cflag &= ^(serial.CBAUD | serial.CSIZE | serial.PARENB | serial.PARODD)
	attrs.Cflag |= baudConst(cfg.BaudRate) | dataBitsConst(cfg.DataBits) | serial.CREAD | serial.CLOCAL
	switch cfg.Parity {
	case ParityEven:
		attrs.Cflag |= serial.PARENB
	case ParityOdd:
		attrs.Cflag |= serial.PARENB | serial.PARODD
	}
	attrs.Iflag = 0
	attrs.Oflag = 0
	attrs.Lflag = 0
	attrs.Cc[serial.VMIN] = 0
	attrs.Cc[serial.VTIME] = 0

	if err := port.SetAttr(serial.TCSANOW, attrs); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}
