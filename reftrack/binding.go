// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"sync"
	"sync/atomic"
)

// Binding designates the active tracker for one module.
//
// Objects keep a reference to their module's Binding, never to a Tracker,
// and resolve the tracker on every notification. After Link rebinds the
// module, later notifications from already registered objects reach the
// new tracker.
//
// Binding is safe for concurrent use.
type Binding struct {
	name string

	active atomic.Pointer[Tracker]

	// linkMu serializes Link calls on this binding.
	linkMu sync.Mutex
}

// NewBinding creates a binding with a fresh tracker and registers it for
// the exit dump.
func NewBinding(name string) *Binding {
	b := &Binding{name: name}
	b.active.Store(New())
	registerExitDump(b)
	return b
}

// Name returns the module name given to NewBinding.
func (b *Binding) Name() string { return b.name }

// Tracker returns the live tracker currently bound to b.
func (b *Binding) Tracker() *Tracker {
	return b.active.Load().live()
}

// Create forwards to the active tracker.
func (b *Binding) Create(id Identity, category Category, typeName string) {
	b.active.Load().Create(id, category, typeName)
}

// UpdateRefCount forwards to the active tracker.
func (b *Binding) UpdateRefCount(id Identity, typeName string, count uint32) {
	b.active.Load().UpdateRefCount(id, typeName, count)
}

// Destroy forwards to the active tracker.
func (b *Binding) Destroy(id Identity) {
	b.active.Load().Destroy(id)
}

// Link makes candidate the active tracker of b.
//
// If candidate already is the active tracker, Link does nothing and
// returns false. Otherwise the records of the current tracker are merged
// into candidate, the old tracker is retired and forwards to candidate,
// and b is rebound. Link is idempotent: calling it again with the same
// candidate is a no-op.
func (b *Binding) Link(candidate *Tracker) bool {
	if candidate == nil {
		return false
	}

	b.linkMu.Lock()
	defer b.linkMu.Unlock()

	for {
		target := candidate.live()
		current := b.active.Load().live()
		if target == current {
			b.active.Store(current)
			return false
		}
		if current.retireInto(target) {
			b.active.Store(target)
			logMoveBanners()
			slogger().Debug("reftrack: linked tracker", "binding", b.name)
			return true
		}
		// Another binding retired one side first; resolve again.
	}
}
