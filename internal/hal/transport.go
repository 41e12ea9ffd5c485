// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package hal

import (
	"context"
	"crypto/tls"
	"net"
	"time"
)

// Transport is the byte-stream surface the application/transport layer
// is built against. Both a TCP net.Conn (optionally TLS-wrapped, for
// CS104) and a SerialPort (for CS101) satisfy it.
type Transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// netTransport adapts a net.Conn to Transport; net.Conn already has the
// exact method set, so this is just a documented type assertion point.
type netTransport struct {
	net.Conn
}

// NewNetTransport wraps conn, dialed plain or already TLS-wrapped via
// tls.Client/tls.Server, as a Transport.
func NewNetTransport(conn net.Conn) Transport {
	return netTransport{conn}
}

// serialTransport adapts a SerialPort, which has no deadline of its own
// (only a blocking read timeout), to Transport.
type serialTransport struct {
	port SerialPort
}

// NewSerialTransport wraps an open SerialPort as a Transport. Since the
// physical layer only supports a read timeout rather than an absolute
// deadline, SetReadDeadline is translated to a relative timeout against
// the call time.
func NewSerialTransport(port SerialPort) Transport {
	return serialTransport{port: port}
}

func (t serialTransport) Read(p []byte) (int, error)  { return t.port.Read(p) }
func (t serialTransport) Write(p []byte) (int, error) { return t.port.Write(p) }
func (t serialTransport) Close() error                { return t.port.Close() }

func (t serialTransport) SetReadDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		t.port.SetReadTimeout(-1)
		return nil
	}
	d := time.Until(deadline)
	if d < 0 {
		d = 0
	}
	t.port.SetReadTimeout(d)
	return nil
}

// DialTLS dials addr over TCP, transparently upgrading to TLS when tc is
// non-nil, returning a Transport either way.
func DialTLS(network, addr string, tc *tls.Config) (Transport, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, err
	}
	if tc != nil {
		return NewNetTransport(tls.Client(conn, tc)), nil
	}
	return NewNetTransport(conn), nil
}

// DialContextTLS dials addr over network (normally "tcp") with ctx and
// timeout governing the attempt, transparently upgrading to TLS when tc
// is non-nil. dial overrides how the raw connection is established (e.g.
// to route through a proxy); nil uses a plain net.Dialer. Unlike DialTLS,
// this returns the concrete net.Conn (a *tls.Conn satisfies it too) for
// callers, such as cs104.Client, that still need RemoteAddr/SetDeadline.
func DialContextTLS(ctx context.Context, network, addr string, timeout time.Duration, tc *tls.Config, dial func(ctx context.Context, network, addr string) (net.Conn, error)) (net.Conn, error) {
	if dial == nil {
		d := &net.Dialer{Timeout: timeout}
		dial = d.DialContext
	}
	conn, err := dial(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if tc != nil {
		return tls.Client(conn, tc), nil
	}
	return conn, nil
}
