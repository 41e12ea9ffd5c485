// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"sync"

	"github.com/mz-automation/lib60870-sub002/asdu"
)

// maxQueuedASDUs bounds the number of spontaneous ASDUs a redundancy
// group holds while no member is active. Once full, enqueuing a new
// ASDU drops the oldest queued one (FIFO eviction) rather than growing
// without bound.
const maxQueuedASDUs = 100

// connState is a connection's position in its redundancy group.
type connState int

const (
	// connInactive: connected, STARTDT not confirmed. Commands are refused,
	// spontaneous data is not sent.
	connInactive connState = iota
	// connActive: STARTDT confirmed, this connection is the group's single
	// data-transfer path.
	connActive
	// connActiveAndOpen: connActive, and at least one I-frame has been
	// received since activation — distinguishes a freshly-activated
	// connection from one that has actually carried traffic.
	connActiveAndOpen
)

// RedundancyGroup holds every connection sharing one common address space.
// In single-redundancy mode a Server runs exactly one group for all its
// connections; in multi-redundancy mode every accepted connection gets a
// group of its own. At most one member
// connection is ever connActive/connActiveAndOpen at a time — activating
// a new one deactivates whichever was active before.
type RedundancyGroup struct {
	mu     sync.Mutex
	conns  map[*SlaveConn]struct{}
	active *SlaveConn
	queue  []*asdu.ASDU // spontaneous ASDUs sent while no member was active
}

// NewRedundancyGroup returns an empty group.
func NewRedundancyGroup() *RedundancyGroup {
	return &RedundancyGroup{conns: make(map[*SlaveConn]struct{})}
}

func (g *RedundancyGroup) add(c *SlaveConn) {
	g.mu.Lock()
	g.conns[c] = struct{}{}
	g.mu.Unlock()
}

func (g *RedundancyGroup) remove(c *SlaveConn) {
	g.mu.Lock()
	delete(g.conns, c)
	if g.active == c {
		g.active = nil
	}
	g.mu.Unlock()
}

// activate makes c the group's sole active connection, deactivating the
// previous one (if any) and replaying queued spontaneous ASDUs to c. Each
// replayed ASDU has its cause of transmission rewritten to
// asdu.StoredData so the peer can distinguish it from live spontaneous
// data, per companion standard 101, subclass 7.2.3's vendor-specific
// cause range.
func (g *RedundancyGroup) activate(c *SlaveConn) {
	g.mu.Lock()
	prev := g.active
	g.active = c
	queued := g.queue
	g.queue = nil
	g.mu.Unlock()

	if prev != nil && prev != c {
		prev.forceDeactivate()
	}
	for _, a := range queued {
		r := a.Clone()
		r.Coa.Cause = asdu.StoredData
		raw, err := r.MarshalBinary()
		if err != nil {
			continue
		}
		_ = c.enqueueASDU(raw)
	}
}

func (g *RedundancyGroup) deactivate(c *SlaveConn) {
	g.mu.Lock()
	if g.active == c {
		g.active = nil
	}
	g.mu.Unlock()
}

// isActive reports whether c is currently the group's active connection.
func (g *RedundancyGroup) isActive(c *SlaveConn) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active == c
}

// send delivers a to the active connection; with none active, it is
// queued (bounded by maxQueuedASDUs, oldest dropped first) and replayed
// to whichever connection activates next.
func (g *RedundancyGroup) send(a *asdu.ASDU) error {
	raw, err := a.MarshalBinary()
	if err != nil {
		return err
	}

	g.mu.Lock()
	active := g.active
	if active == nil {
		g.queue = append(g.queue, a.Clone())
		if len(g.queue) > maxQueuedASDUs {
			g.queue = g.queue[len(g.queue)-maxQueuedASDUs:]
		}
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()
	return active.enqueueASDU(raw)
}

// memberCount reports how many connections the group currently holds.
func (g *RedundancyGroup) memberCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.conns)
}
