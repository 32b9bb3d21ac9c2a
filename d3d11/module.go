// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"sync"

	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/d3dshim/reftrack"
	"github.com/google/uuid"
)

// Tracker categories of d3d11 objects.
const (
	CategoryDevice  reftrack.Category = 3
	CategoryContext reftrack.Category = 4
)

// Interface ids.
var (
	IIDDevice        = uuid.MustParse("db6f6ddb-ac77-4e88-8253-819df9bbf140")
	IIDDeviceChild   = uuid.MustParse("1841e5c8-16b0-489b-bcc8-44cfb0d5deae")
	IIDDeviceContext = uuid.MustParse("c0bfa96c-e089-44fb-8eaf-26f8796190da")
)

// moduleBinding is the d3d11 module's tracker binding, created on first
// use. CreateDevice links it to the tracker of the adapter it is given.
var moduleBinding = sync.OnceValue(func() *reftrack.Binding {
	return reftrack.NewBinding("d3d11")
})

// RefTracker returns the tracker d3d11 objects currently report to.
func RefTracker() *reftrack.Tracker {
	return moduleBinding().Tracker()
}

var _ com.Unknown = (*Device)(nil)
var _ com.Unknown = (*DeviceContext)(nil)
