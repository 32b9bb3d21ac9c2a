// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dxgi

import (
	"fmt"

	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/d3dshim/reftrack"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AdapterDesc describes an adapter.
type AdapterDesc struct {
	// Description is the adapter name reported by the driver.
	Description string

	DeviceType gputypes.DeviceType

	// Index is the position passed to Factory.EnumAdapters.
	Index uint32
}

// Adapter is one physical (or software) GPU exposed by a factory.
// It holds a reference to its factory.
type Adapter struct {
	com.Object

	factory *Factory
	index   uint32
	exposed hal.ExposedAdapter
}

func newAdapter(f *Factory, index uint32, exposed hal.ExposedAdapter) *Adapter {
	f.AddRef()
	a := &Adapter{
		factory: f,
		index:   index,
		exposed: exposed,
	}
	a.Init(a, moduleBinding(), CategoryAdapter)
	return a
}

// QueryInterface implements com.Unknown.
func (a *Adapter) QueryInterface(riid com.IID) (com.Unknown, error) {
	return com.QueryInterface(a, riid, IIDObject, IIDAdapter, IIDAdapterPrivate)
}

// GetParent returns the factory that enumerated a, with a new reference.
func (a *Adapter) GetParent() *Factory {
	a.factory.AddRef()
	return a.factory
}

// Desc returns the adapter description.
func (a *Adapter) Desc() AdapterDesc {
	return AdapterDesc{
		Description: a.exposed.Info.Name,
		DeviceType:  a.exposed.Info.DeviceType,
		Index:       a.index,
	}
}

// RefTracker returns the tracker that objects of the adapter's module
// report to. A module receiving the adapter links to it so both modules
// share one tracker.
func (a *Adapter) RefTracker() *reftrack.Tracker {
	return moduleBinding().Tracker()
}

// Open opens a hal device on the adapter with default limits.
func (a *Adapter) Open() (hal.Device, hal.Queue, error) {
	openDev, err := a.exposed.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, nil, fmt.Errorf("dxgi: open device on %q: %w", a.exposed.Info.Name, err)
	}
	return openDev.Device, openDev.Queue, nil
}

// FinalRelease drops the reference on the factory.
func (a *Adapter) FinalRelease() {
	a.factory.Release()
	a.factory = nil
}
