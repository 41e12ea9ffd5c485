// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/mz-automation/lib60870-sub002/asdu"
	"github.com/mz-automation/lib60870-sub002/internal/hal"
)

const timeoutResolution = 100 * time.Millisecond

// ClientOption configures a Client. Build one with NewClientOption and
// zero or more Option functions.
type ClientOption struct {
	server      string
	config      Config
	params      asdu.Params
	TLSConfig   *tls.Config
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)
}

// Option mutates a ClientOption; see WithConfig, WithParams, WithTLSConfig,
// WithDialContext.
type Option func(*ClientOption)

// NewClientOption returns a ClientOption dialing server ("host:port"),
// with the IEC default Config and asdu.ParamsWide applied.
func NewClientOption(server string, opts ...Option) *ClientOption {
	o := &ClientOption{
		server: server,
		config: DefaultConfig(),
		params: *asdu.ParamsWide,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfig overrides the t0-t3/k/w configuration.
func WithConfig(cfg Config) Option {
	return func(o *ClientOption) { o.config = cfg }
}

// WithParams overrides the application layer parameters.
func WithParams(p asdu.Params) Option {
	return func(o *ClientOption) { o.params = p }
}

// WithTLSConfig makes the client dial over TLS.
func WithTLSConfig(tc *tls.Config) Option {
	return func(o *ClientOption) { o.TLSConfig = tc }
}

// WithDialContext overrides how the underlying net.Conn is established,
// e.g. to route through a custom dialer or proxy.
func WithDialContext(fn func(ctx context.Context, network, addr string) (net.Conn, error)) Option {
	return func(o *ClientOption) { o.DialContext = fn }
}

// openConnection dials server, transparently wrapping the connection in
// TLS when tc is non-nil. The actual dial goes through hal.DialContextTLS
// so the client never touches net.Dialer/tls.Client directly.
func openConnection(ctx context.Context, server string, tc *tls.Config, timeout time.Duration, dial func(ctx context.Context, network, addr string) (net.Conn, error)) (net.Conn, error) {
	return hal.DialContextTLS(ctx, "tcp", server, timeout, tc, dial)
}
