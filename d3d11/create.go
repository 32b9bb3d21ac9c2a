// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"errors"
	"fmt"

	"github.com/gogpu/d3dshim"
	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/d3dshim/dxgi"
)

var (
	// ErrInvalidArg is returned for arguments CreateDevice cannot honor.
	ErrInvalidArg = errors.New("d3d11: invalid argument")

	// ErrFail is returned when the underlying device cannot be created.
	ErrFail = errors.New("d3d11: device creation failed")
)

// DriverType mirrors D3D_DRIVER_TYPE.
type DriverType uint32

// Driver types.
const (
	DriverTypeUnknown DriverType = iota
	DriverTypeHardware
	DriverTypeReference
	DriverTypeNull
	DriverTypeSoftware
	DriverTypeWarp
)

// DeviceDesc configures CreateDevice.
type DeviceDesc struct {
	// DriverType must be DriverTypeUnknown when an adapter is passed.
	DriverType DriverType

	Flags CreateDeviceFlag

	// FeatureLevels lists acceptable levels from most to least preferred.
	// Empty means 11_0 down to 9_1.
	FeatureLevels []FeatureLevel
}

// CreateDevice creates a device and its immediate context on adapter, which
// must be a dxgi adapter. A nil adapter selects adapter 0 of a new default
// factory.
//
// The d3d11 module links its tracker to the adapter's before any d3d11
// object is created, so both modules report to one tracker from then on.
// The caller owns one reference to each returned object.
func CreateDevice(adapter com.Unknown, desc DeviceDesc) (*Device, *DeviceContext, FeatureLevel, error) {
	var dxgiAdapter com.Ptr[*dxgi.Adapter]
	defer dxgiAdapter.Release()

	if adapter == nil {
		a, err := defaultAdapter()
		if err != nil {
			return nil, nil, 0, err
		}
		dxgiAdapter.Attach(a)
		if desc.DriverType != DriverTypeHardware {
			d3dshim.Logger().Warn("d3d11: unsupported driver type, using hardware adapter",
				"driver_type", desc.DriverType)
		}
	} else {
		if desc.DriverType != DriverTypeUnknown {
			return nil, nil, 0, fmt.Errorf("%w: driver type %d with explicit adapter", ErrInvalidArg, desc.DriverType)
		}
		obj, err := adapter.QueryInterface(dxgi.IIDAdapterPrivate)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("%w: adapter is not a dxgi adapter", ErrInvalidArg)
		}
		a, ok := obj.(*dxgi.Adapter)
		if !ok {
			obj.Release()
			return nil, nil, 0, fmt.Errorf("%w: adapter is not a dxgi adapter", ErrInvalidArg)
		}
		dxgiAdapter.Attach(a)
	}

	private := dxgiAdapter.Get()
	moduleBinding().Link(private.RefTracker())

	fl, ok := selectFeatureLevel(desc.FeatureLevels)
	if !ok {
		return nil, nil, 0, fmt.Errorf("%w: no supported feature level in %v", ErrInvalidArg, desc.FeatureLevels)
	}

	halDevice, halQueue, err := private.Open()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %w", ErrFail, err)
	}

	var device com.Ptr[*Device]
	device.Attach(newDevice(private, halDevice, halQueue, fl, desc.Flags))
	defer device.Release()

	d3dshim.Logger().Debug("d3d11: device created",
		"adapter", private.Desc().Description, "feature_level", fl)

	return device.Get(), device.Get().ImmediateContext(), fl, nil
}

func defaultAdapter() (*dxgi.Adapter, error) {
	factory, err := dxgi.CreateFactory()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFail, err)
	}
	defer factory.Release()

	a, err := factory.EnumAdapters(0)
	if err != nil {
		return nil, fmt.Errorf("%w: no adapter: %w", ErrFail, err)
	}
	return a, nil
}
