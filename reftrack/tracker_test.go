// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"log/slog"
	"sync"
	"testing"
)

func TestIdentityString(t *testing.T) {
	tests := []struct {
		id   Identity
		want string
	}{
		{0x1, "0x1"},
		{0xc000012345, "0xc000012345"},
		{0, "0x0"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("Identity(%d).String() = %q, want %q", uintptr(tt.id), got, tt.want)
		}
	}
}

func TestTracker_Create(t *testing.T) {
	tr := New()
	tr.Create(0x10, 3, "*pkg.Device")

	rec, ok := tr.Lookup(0x10)
	if !ok {
		t.Fatal("Lookup() found no record after Create")
	}
	if rec.TypeName != "*pkg.Device" {
		t.Errorf("TypeName = %q, want %q", rec.TypeName, "*pkg.Device")
	}
	if rec.Category != 3 {
		t.Errorf("Category = %d, want 3", rec.Category)
	}
	if rec.RefCount != 0 {
		t.Errorf("RefCount = %d, want 0", rec.RefCount)
	}
	if rec.UnknownOrigin {
		t.Error("UnknownOrigin should be false after Create")
	}
	if rec.CreatingThread != currentGoroutineID() {
		t.Errorf("CreatingThread = %d, want %d", rec.CreatingThread, currentGoroutineID())
	}
}

func TestTracker_CreateOverwrites(t *testing.T) {
	tr := New()
	tr.Create(0x10, 1, "*pkg.Old")
	tr.UpdateRefCount(0x10, "*pkg.Old", 7)

	// Address reuse: the old record is discarded entirely.
	tr.Create(0x10, 2, "*pkg.New")

	rec, _ := tr.Lookup(0x10)
	if rec.TypeName != "*pkg.New" || rec.Category != 2 || rec.RefCount != 0 {
		t.Errorf("record after reuse = %+v, want fresh *pkg.New record", rec)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestTracker_UpdateRefCount(t *testing.T) {
	tr := New()
	tr.Create(0x20, 1, "*pkg.Device")
	tr.UpdateRefCount(0x20, "*pkg.Other", 3)

	rec, _ := tr.Lookup(0x20)
	if rec.RefCount != 3 {
		t.Errorf("RefCount = %d, want 3", rec.RefCount)
	}
	if rec.TypeName != "*pkg.Device" {
		t.Errorf("TypeName = %q, should keep the name given at Create", rec.TypeName)
	}
	if rec.UnknownOrigin {
		t.Error("UnknownOrigin should stay false for a created object")
	}
}

func TestTracker_UpdateRefCountFillsMissingName(t *testing.T) {
	tr := New()
	tr.Create(0x20, 1, "")
	tr.UpdateRefCount(0x20, "*pkg.Device", 3)

	rec, _ := tr.Lookup(0x20)
	if rec.TypeName != "*pkg.Device" {
		t.Errorf("TypeName = %q, want %q", rec.TypeName, "*pkg.Device")
	}
	if rec.UnknownOrigin {
		t.Error("a created record without a name is not of unknown origin")
	}
}

func TestTracker_UnknownOrigin(t *testing.T) {
	tr := New()
	tr.UpdateRefCount(0x30, "*pkg.Texture", 5)

	rec, ok := tr.Lookup(0x30)
	if !ok {
		t.Fatal("UpdateRefCount without Create should synthesize a record")
	}
	if !rec.UnknownOrigin {
		t.Error("UnknownOrigin = false, want true")
	}
	if rec.TypeName != "*pkg.Texture" || rec.RefCount != 5 {
		t.Errorf("synthesized record = %+v", rec)
	}

	// The flag is sticky across further updates.
	tr.UpdateRefCount(0x30, "*pkg.Texture", 4)
	rec, _ = tr.Lookup(0x30)
	if !rec.UnknownOrigin {
		t.Error("UnknownOrigin should be sticky")
	}
}

func TestTracker_Destroy(t *testing.T) {
	tr := New()
	tr.Create(0x40, 1, "*pkg.Device")
	tr.Destroy(0x40)

	if _, ok := tr.Lookup(0x40); ok {
		t.Error("record still present after Destroy")
	}

	// Misses and double notifications are tolerated.
	tr.Destroy(0x40)
	tr.Destroy(0x41)
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
}

func TestTracker_RecordsSorted(t *testing.T) {
	tr := New()
	for _, id := range []Identity{0x50, 0x10, 0x30, 0x20} {
		tr.Create(id, 1, "*pkg.T")
	}

	recs := tr.Records()
	if len(recs) != 4 {
		t.Fatalf("len(Records()) = %d, want 4", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Identity >= recs[i].Identity {
			t.Errorf("Records() not sorted: %v before %v", recs[i-1].Identity, recs[i].Identity)
		}
	}
}

func TestTracker_DumpEmptyIsSilent(t *testing.T) {
	logs := captureLogs(t, slog.LevelDebug)

	New().Dump()

	if got := logs(); len(got) != 0 {
		t.Errorf("Dump() on empty tracker logged %d lines, want none: %+v", len(got), got)
	}
}

func TestTracker_Dump(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)

	tr := New()
	tr.Create(0x200, 4, "*github.com/gogpu/d3dshim/d3d11.Device")
	tr.UpdateRefCount(0x200, "", 3)
	tr.UpdateRefCount(0x100, "", 1)

	tr.Dump()

	got := logs()
	if len(got) != 4 {
		t.Fatalf("Dump() logged %d lines, want 4 (2 banners + 2 records): %+v", len(got), got)
	}
	if got[0].msg != "=== REACHABLE OBJECT LIST ===" {
		t.Errorf("first line = %q, want start banner", got[0].msg)
	}
	if got[3].msg != "=== REACHABLE OBJECT LIST END ===" {
		t.Errorf("last line = %q, want end banner", got[3].msg)
	}

	unknown := got[1].attrs
	wantUnknown := map[string]string{
		"ptr": "0x100", "name": "UNKNOWN", "type": "0", "ref_count": "1", "unknown": "true",
	}
	for k, v := range wantUnknown {
		if unknown[k] != v {
			t.Errorf("record 0x100: %s = %q, want %q", k, unknown[k], v)
		}
	}

	device := got[2].attrs
	wantDevice := map[string]string{
		"ptr": "0x200", "name": "d3d11.Device", "type": "4", "ref_count": "3", "unknown": "false",
	}
	for k, v := range wantDevice {
		if device[k] != v {
			t.Errorf("record 0x200: %s = %q, want %q", k, device[k], v)
		}
	}

	// Dump does not mutate the registry.
	if tr.Len() != 2 {
		t.Errorf("Len() after Dump = %d, want 2", tr.Len())
	}
}

func TestTracker_MergeInto(t *testing.T) {
	a, b := New(), New()
	a.Create(0x1, 1, "*pkg.A1")
	a.Create(0x2, 1, "*pkg.Shared")
	b.Create(0x2, 2, "*pkg.SharedB")
	b.Create(0x3, 2, "*pkg.B3")

	a.MergeInto(b)

	if a.Len() != 0 {
		t.Errorf("source Len() = %d after merge, want 0", a.Len())
	}
	if b.Len() != 3 {
		t.Fatalf("target Len() = %d after merge, want 3", b.Len())
	}
	for _, id := range []Identity{0x1, 0x2, 0x3} {
		if _, ok := b.Lookup(id); !ok {
			t.Errorf("identity %v missing after merge", id)
		}
	}

	shared, _ := b.Lookup(0x2)
	if shared.TypeName != "*pkg.Shared" {
		t.Errorf("shared TypeName = %q, want name from source", shared.TypeName)
	}
	if shared.Category != 2 {
		t.Errorf("shared Category = %d, want target's category kept", shared.Category)
	}
	if a.Retired() {
		t.Error("MergeInto must not retire the source")
	}
}

func TestTracker_MergeClearsUnknownOrigin(t *testing.T) {
	src, dst := New(), New()
	src.Create(0x7, 2, "*pkg.Y")
	dst.UpdateRefCount(0x7, "", 3)

	src.MergeInto(dst)

	rec, _ := dst.Lookup(0x7)
	if rec.UnknownOrigin {
		t.Error("merge should clear UnknownOrigin on the destination record")
	}
	if rec.TypeName != "*pkg.Y" {
		t.Errorf("TypeName = %q, want %q", rec.TypeName, "*pkg.Y")
	}
	if rec.RefCount != 3 {
		t.Errorf("RefCount = %d, want destination's 3", rec.RefCount)
	}
}

// The merge clears the flag even when the source record was itself
// synthesized, so an unknown-origin record can come out looking known.
// This pins the current behavior.
func TestTracker_MergeLaundersUnknownOrigin(t *testing.T) {
	src, dst := New(), New()
	src.UpdateRefCount(0x8, "*pkg.Z", 2)
	dst.UpdateRefCount(0x8, "*pkg.Z", 2)

	src.MergeInto(dst)

	rec, _ := dst.Lookup(0x8)
	if rec.UnknownOrigin {
		t.Error("UnknownOrigin = true; merge is expected to clear it regardless of source provenance")
	}
}

func TestTracker_MergeKeepsUnknownForNewIdentities(t *testing.T) {
	src, dst := New(), New()
	src.UpdateRefCount(0x9, "*pkg.Z", 2)

	src.MergeInto(dst)

	rec, ok := dst.Lookup(0x9)
	if !ok || !rec.UnknownOrigin {
		t.Errorf("record copied verbatim should keep UnknownOrigin, got %+v (found=%v)", rec, ok)
	}
}

func TestTracker_MergeIntoSelf(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)

	tr := New()
	tr.Create(0x1, 1, "*pkg.T")
	tr.MergeInto(tr)
	tr.MergeInto(nil)

	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
	if got := logs(); len(got) != 0 {
		t.Errorf("self merge logged %d lines, want none", len(got))
	}
}

func TestTracker_MergeLogsBanners(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)

	New().MergeInto(New())

	got := logs()
	if len(got) != 2 {
		t.Fatalf("empty merge logged %d lines, want 2 banners", len(got))
	}
	if got[0].msg != "=== REF TRACKER MOVE ===" || got[1].msg != "=== REF TRACKER MOVE END ===" {
		t.Errorf("banners = %q, %q", got[0].msg, got[1].msg)
	}
}

func TestTracker_ConcurrentBidirectionalMerge(t *testing.T) {
	a, b := New(), New()
	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		for range rounds {
			a.MergeInto(b)
		}
	}()
	go func() {
		defer wg.Done()
		for range rounds {
			b.MergeInto(a)
		}
	}()
	go func() {
		defer wg.Done()
		for i := range rounds {
			a.Create(Identity(0x1000+i), 1, "*pkg.A")
		}
	}()
	go func() {
		defer wg.Done()
		for i := range rounds {
			b.Create(Identity(0x2000+i), 1, "*pkg.B")
		}
	}()
	wg.Wait()

	if got := a.Len() + b.Len(); got != 2*rounds {
		t.Errorf("records across both trackers = %d, want %d", got, 2*rounds)
	}
}

func TestTracker_ConcurrentOperations(t *testing.T) {
	tr := New()
	const (
		goroutines = 16
		perG       = 100
	)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perG {
				id := Identity(g*perG + i + 1)
				tr.Create(id, 1, "*pkg.T")
				tr.UpdateRefCount(id, "*pkg.T", 3)
				if i%2 == 0 {
					tr.Destroy(id)
				}
			}
		}()
	}
	wg.Wait()

	if got, want := tr.Len(), goroutines*perG/2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	for _, rec := range tr.Records() {
		if rec.RefCount != 3 || rec.UnknownOrigin {
			t.Errorf("record %v = %+v, want RefCount 3 and known origin", rec.Identity, rec)
		}
	}
}

func BenchmarkTracker_UpdateRefCount(b *testing.B) {
	tr := New()
	tr.Create(0x1, 1, "*pkg.T")
	b.ReportAllocs()
	var n uint32
	for b.Loop() {
		n++
		tr.UpdateRefCount(0x1, "*pkg.T", n)
	}
}
