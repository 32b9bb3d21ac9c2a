// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"os"
	"sync"
)

// exitHook holds every binding created by NewBinding. Go has no static
// destructors; command mains run the dump with defer DumpAtExit() or exit
// through Exit.
var exitHook struct {
	mu       sync.Mutex
	bindings []*Binding
	once     sync.Once
}

func registerExitDump(b *Binding) {
	exitHook.mu.Lock()
	exitHook.bindings = append(exitHook.bindings, b)
	exitHook.mu.Unlock()
}

// DumpAtExit dumps every distinct live tracker reachable from a registered
// binding, reporting the objects that were never released. Linked bindings
// share one tracker, which is dumped once. Only the first call has any
// effect.
func DumpAtExit() {
	exitHook.once.Do(func() {
		for _, t := range liveTrackers() {
			t.Dump()
		}
	})
}

// Exit runs DumpAtExit and terminates the process with the given code.
func Exit(code int) {
	DumpAtExit()
	os.Exit(code)
}

// liveTrackers returns the distinct live trackers of all bindings in
// registration order.
func liveTrackers() []*Tracker {
	exitHook.mu.Lock()
	bindings := append([]*Binding(nil), exitHook.bindings...)
	exitHook.mu.Unlock()

	seen := make(map[*Tracker]bool, len(bindings))
	out := make([]*Tracker, 0, len(bindings))
	for _, b := range bindings {
		t := b.Tracker()
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
