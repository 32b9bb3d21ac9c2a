// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dxgi

import (
	"sync"

	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/d3dshim/reftrack"
	"github.com/google/uuid"
)

// Tracker categories of dxgi objects.
const (
	CategoryFactory reftrack.Category = 1
	CategoryAdapter reftrack.Category = 2
)

// Interface ids.
var (
	IIDObject         = uuid.MustParse("aec22fb8-76f3-4639-9be0-28eb43a67a2e")
	IIDFactory        = uuid.MustParse("7b7166ec-21c7-44ae-b21a-c9ae321ae369")
	IIDAdapter        = uuid.MustParse("2411e7e1-12ac-4ccf-bd14-9798e8534dc0")
	IIDAdapterPrivate = uuid.MustParse("907bf281-ea3c-43b4-a8e4-9f231107b4ff")
)

// moduleBinding is the dxgi module's tracker binding, created on first use.
var moduleBinding = sync.OnceValue(func() *reftrack.Binding {
	return reftrack.NewBinding("dxgi")
})

// RefTracker returns the tracker dxgi objects currently report to.
func RefTracker() *reftrack.Tracker {
	return moduleBinding().Tracker()
}

var _ com.Unknown = (*Factory)(nil)
var _ com.Unknown = (*Adapter)(nil)
