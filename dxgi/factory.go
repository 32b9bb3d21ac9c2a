// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dxgi

import (
	"errors"
	"fmt"

	"github.com/gogpu/d3dshim"
	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNotFound is returned when an adapter index is out of range.
	ErrNotFound = errors.New("dxgi: not found")

	// ErrBackendUnavailable is returned when the requested hal backend is
	// not compiled in.
	ErrBackendUnavailable = errors.New("dxgi: backend not available")
)

// FactoryOption configures CreateFactory.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	backend gputypes.Backend
}

func defaultFactoryOptions() factoryOptions {
	return factoryOptions{backend: gputypes.BackendVulkan}
}

// WithBackend selects the hal backend adapters are enumerated from.
// The default is Vulkan.
func WithBackend(b gputypes.Backend) FactoryOption {
	return func(o *factoryOptions) {
		o.backend = b
	}
}

// Factory enumerates adapters of one hal instance.
type Factory struct {
	com.Object

	instance hal.Instance
	adapters []hal.ExposedAdapter
}

// CreateFactory creates a hal instance for the configured backend and
// returns a factory over it. The caller owns one reference.
func CreateFactory(opts ...FactoryOption) (*Factory, error) {
	o := defaultFactoryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	backend, ok := hal.GetBackend(o.backend)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, o.backend)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("dxgi: create instance: %w", err)
	}
	return NewFactory(instance), nil
}

// NewFactory wraps an existing hal instance. The factory takes ownership of
// the instance and destroys it with its last reference. The caller owns
// one reference.
func NewFactory(instance hal.Instance) *Factory {
	var local com.Ptr[*Factory]
	local.Attach(newFactory(instance))
	defer local.Release()
	return local.Get()
}

func newFactory(instance hal.Instance) *Factory {
	f := &Factory{
		instance: instance,
		adapters: instance.EnumerateAdapters(nil),
	}
	f.Init(f, moduleBinding(), CategoryFactory)
	d3dshim.Logger().Debug("dxgi: factory created", "adapters", len(f.adapters))
	return f
}

// QueryInterface implements com.Unknown.
func (f *Factory) QueryInterface(riid com.IID) (com.Unknown, error) {
	return com.QueryInterface(f, riid, IIDObject, IIDFactory)
}

// AdapterCount returns the number of adapters the instance exposes.
func (f *Factory) AdapterCount() int {
	return len(f.adapters)
}

// EnumAdapters returns the adapter at index, or ErrNotFound. The caller
// owns one reference to the returned adapter.
func (f *Factory) EnumAdapters(index uint32) (*Adapter, error) {
	if int(index) >= len(f.adapters) {
		return nil, ErrNotFound
	}

	var local com.Ptr[*Adapter]
	local.Attach(newAdapter(f, index, f.adapters[index]))
	defer local.Release()
	return local.Get(), nil
}

// FinalRelease destroys the hal instance.
func (f *Factory) FinalRelease() {
	if f.instance != nil {
		f.instance.Destroy()
		f.instance = nil
	}
}
