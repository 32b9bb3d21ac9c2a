// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package reftrack records the lifetime of reference-counted objects.
//
// A Tracker keeps one Record per object it believes alive: its type, the
// goroutine that created it, its last reported reference count and whether
// its creation was ever observed. Objects report to a Tracker through the
// Binding of the module that created them.
//
// # Linking
//
// Every module lazily creates its own Binding, and with it its own Tracker.
// When two modules start sharing objects, the module that notices calls
// Link with the other module's tracker:
//
//	d3d11Binding.Link(adapter.RefTracker())
//
// Link folds the current records into the other tracker and rebinds the
// module, so the process again has a single view of what is alive. The old
// tracker is retired and forwards anything still addressed to it.
//
// # Unknown origin
//
// A reference count update for an object the tracker never saw created
// produces a record flagged as unknown origin. This is expected when an
// object's first AddRef on one goroutine races its constructor on another,
// or when objects were created before two trackers were linked.
//
// # Exit dump
//
// DumpAtExit logs whatever is still alive, once, at the end of the process:
//
//	func main() {
//	    defer reftrack.DumpAtExit()
//	    ...
//	}
//
// Nothing is logged when every object was released.
package reftrack
