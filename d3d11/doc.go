// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 creates devices and immediate contexts on dxgi adapters.
//
// The package has its own tracker binding. CreateDevice links that binding
// to the tracker of the adapter's module, after which live d3d11 and dxgi
// objects are listed together in one dump:
//
//	device, ctx, fl, err := d3d11.CreateDevice(adapter, d3d11.DeviceDesc{})
//	if err != nil {
//		return err
//	}
//	defer device.Release()
//	defer ctx.Release()
//	// d3d11.RefTracker() == dxgi.RefTracker()
//
// Device.Provider exposes the underlying wgpu hal device through
// gpucontext.DeviceProvider.
package d3d11
