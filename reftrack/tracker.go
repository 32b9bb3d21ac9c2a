// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Identity is the address of a tracked object. It is unique while the
// object is alive and may be reused once it has been destroyed.
type Identity uintptr

// String renders the identity as a hex address.
func (id Identity) String() string {
	return fmt.Sprintf("%#x", uintptr(id))
}

// Category is a caller-supplied tag classifying the kind of object
// (factory, adapter, device, context, ...).
type Category uint16

// Record is the bookkeeping kept for one object the tracker believes alive.
type Record struct {
	Identity Identity

	// TypeName is the raw type descriptor; empty when unknown.
	TypeName string

	Category Category

	// CreatingThread is the id of the goroutine that registered the object.
	CreatingThread int64

	// RefCount is the most recently reported reference count.
	RefCount uint32

	// UnknownOrigin is set when a count update arrived before any creation
	// record. It stays set until a merge supplies the missing provenance.
	UnknownOrigin bool
}

// trackerSeq orders lock acquisition between trackers.
var trackerSeq atomic.Uint64

// Tracker is a thread-safe registry of live reference-counted objects.
//
// A single mutex covers the whole registry, so all operations serialize.
// This is a diagnostic path, not a hot path.
//
// A tracker that has been linked away (see Binding.Link) is retired: it is
// empty and forwards every later Create, UpdateRefCount and Destroy to its
// successor, so objects holding a stale reference never write into it.
type Tracker struct {
	seq uint64

	mu      sync.Mutex
	records map[Identity]Record

	// successor is written with mu held.
	successor atomic.Pointer[Tracker]
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		seq:     trackerSeq.Add(1),
		records: make(map[Identity]Record),
	}
}

// lock locks and returns the live tracker at the end of t's forwarding chain.
func (t *Tracker) lock() *Tracker {
	for {
		t.mu.Lock()
		next := t.successor.Load()
		if next == nil {
			return t
		}
		t.mu.Unlock()
		t = next
	}
}

// live returns the end of t's forwarding chain without locking it.
func (t *Tracker) live() *Tracker {
	for {
		next := t.successor.Load()
		if next == nil {
			return t
		}
		t = next
	}
}

// Retired reports whether t has been linked away into another tracker.
func (t *Tracker) Retired() bool {
	return t.successor.Load() != nil
}

// Create records the birth of an object. An existing record for the same
// identity is discarded: the address has been reused.
func (t *Tracker) Create(id Identity, category Category, typeName string) {
	tid := currentGoroutineID()

	lt := t.lock()
	defer lt.mu.Unlock()

	lt.records[id] = Record{
		Identity:       id,
		TypeName:       typeName,
		Category:       category,
		CreatingThread: tid,
	}
}

// UpdateRefCount records a reference count transition. If the object was
// never created in this tracker, a record flagged UnknownOrigin is
// synthesized from typeName.
func (t *Tracker) UpdateRefCount(id Identity, typeName string, count uint32) {
	lt := t.lock()
	defer lt.mu.Unlock()

	rec, ok := lt.records[id]
	if !ok {
		lt.records[id] = Record{
			Identity:      id,
			TypeName:      typeName,
			RefCount:      count,
			UnknownOrigin: true,
		}
		return
	}
	rec.RefCount = count
	if rec.TypeName == "" {
		rec.TypeName = typeName
	}
	lt.records[id] = rec
}

// Destroy removes the record for id. Unknown identities are ignored.
func (t *Tracker) Destroy(id Identity) {
	lt := t.lock()
	defer lt.mu.Unlock()

	delete(lt.records, id)
}

// Len returns the number of records held by t itself.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Lookup returns the record for id held by t itself.
func (t *Tracker) Lookup(id Identity) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[id]
	return rec, ok
}

// Records returns a copy of all records sorted by identity.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	out := make([]Record, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	t.mu.Unlock()

	slices.SortFunc(out, func(a, b Record) int {
		switch {
		case a.Identity < b.Identity:
			return -1
		case a.Identity > b.Identity:
			return 1
		}
		return 0
	})
	return out
}

// Dump logs every surviving record at info level, bracketed by banner
// lines. An empty tracker logs nothing at all.
//
// The records are snapshotted under the lock and logged outside it.
func (t *Tracker) Dump() {
	records := t.Records()
	if len(records) == 0 {
		return
	}

	l := slogger()
	l.Info("=== REACHABLE OBJECT LIST ===")
	for _, rec := range records {
		name, ok := DisplayName(rec.TypeName)
		if !ok {
			name = "UNKNOWN"
		}
		l.Info("R",
			"ptr", rec.Identity.String(),
			"name", name,
			"type", rec.Category,
			"ref_count", rec.RefCount,
			"unknown", rec.UnknownOrigin,
		)
	}
	l.Info("=== REACHABLE OBJECT LIST END ===")
}

// MergeInto moves every record of t into other and leaves t empty.
//
// Identities missing from other are copied verbatim. For identities other
// already holds, the type name is taken from t and UnknownOrigin is
// cleared, on the assumption that t supplies the provenance other missed.
// This also clears the flag when t's own record was synthesized; the merge
// cannot tell the difference.
func (t *Tracker) MergeInto(other *Tracker) {
	if other == nil {
		return
	}
	for {
		dst := other.live()
		if t == dst {
			return
		}
		// dst may be retired by a concurrent link before it is locked.
		if t.mergeLocked(dst, false) {
			logMoveBanners()
			return
		}
	}
}

// retireInto merges t into other and makes t forward to other. It fails
// when either side has already been retired by a concurrent link.
func (t *Tracker) retireInto(other *Tracker) bool {
	return t.mergeLocked(other, true)
}

func logMoveBanners() {
	l := slogger()
	l.Info("=== REF TRACKER MOVE ===")
	l.Info("=== REF TRACKER MOVE END ===")
}

// mergeLocked moves t's records into other with both locks held. It fails
// without touching either tracker when other has been retired, or, when
// retiring, when t has been.
func (t *Tracker) mergeLocked(other *Tracker, retire bool) bool {
	first, second := t, other
	if second.seq < first.seq {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if other.successor.Load() != nil {
		return false
	}
	if retire && t.successor.Load() != nil {
		return false
	}

	for id, rec := range t.records {
		dst, ok := other.records[id]
		if !ok {
			other.records[id] = rec
			continue
		}
		dst.TypeName = rec.TypeName
		dst.UnknownOrigin = false
		other.records[id] = dst
	}
	clear(t.records)

	if retire {
		t.successor.Store(other)
	}
	return true
}
