// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"github.com/gogpu/d3dshim/com"
	"github.com/gogpu/d3dshim/dxgi"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// CreateDeviceFlag mirrors D3D11_CREATE_DEVICE_FLAG. The flags are recorded
// and reported back; the hal device does not depend on them.
type CreateDeviceFlag uint32

// Creation flags.
const (
	CreateDeviceSingleThreaded CreateDeviceFlag = 0x1
	CreateDeviceDebug          CreateDeviceFlag = 0x2
	CreateDeviceBGRASupport    CreateDeviceFlag = 0x20
)

// Device is a logical device on a dxgi adapter.
//
// A Device holds references to its adapter and its immediate context and
// owns the hal device and queue, which are destroyed with its last
// reference.
type Device struct {
	com.Object

	adapter *dxgi.Adapter
	device  hal.Device
	queue   hal.Queue

	featureLevel FeatureLevel
	flags        CreateDeviceFlag

	context *DeviceContext
}

func newDevice(adapter *dxgi.Adapter, device hal.Device, queue hal.Queue, fl FeatureLevel, flags CreateDeviceFlag) *Device {
	adapter.AddRef()
	d := &Device{
		adapter:      adapter,
		device:       device,
		queue:        queue,
		featureLevel: fl,
		flags:        flags,
	}
	d.Init(d, moduleBinding(), CategoryDevice)

	var ctx com.Ptr[*DeviceContext]
	ctx.Attach(newDeviceContext(d))
	defer ctx.Release()
	d.context = ctx.Get()
	return d
}

// QueryInterface implements com.Unknown.
func (d *Device) QueryInterface(riid com.IID) (com.Unknown, error) {
	return com.QueryInterface(d, riid, IIDDevice)
}

// FeatureLevel returns the level the device was created with.
func (d *Device) FeatureLevel() FeatureLevel {
	return d.featureLevel
}

// CreationFlags returns the flags passed to CreateDevice.
func (d *Device) CreationFlags() CreateDeviceFlag {
	return d.flags
}

// ImmediateContext returns the immediate context with a new reference.
func (d *Device) ImmediateContext() *DeviceContext {
	d.context.AddRef()
	return d.context
}

// Adapter returns the adapter the device was created on, with a new
// reference.
func (d *Device) Adapter() *dxgi.Adapter {
	d.adapter.AddRef()
	return d.adapter
}

// Provider exposes the device's hal device and queue to gpucontext
// consumers such as gg renderers. The provider does not hold a reference;
// it is valid while d is.
func (d *Device) Provider() gpucontext.DeviceProvider {
	return deviceProvider{d: d}
}

// FinalRelease drops the immediate context, destroys the hal device and
// releases the adapter.
func (d *Device) FinalRelease() {
	d.context.Release()
	d.context = nil
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
	}
	d.adapter.Release()
	d.adapter = nil
}

// DeviceContext is the immediate context of a Device. It refers back to its
// device without holding a reference and must not be used after the device
// has been destroyed.
type DeviceContext struct {
	com.Object

	device *Device
}

func newDeviceContext(d *Device) *DeviceContext {
	c := &DeviceContext{device: d}
	c.Init(c, moduleBinding(), CategoryContext)
	return c
}

// QueryInterface implements com.Unknown.
func (c *DeviceContext) QueryInterface(riid com.IID) (com.Unknown, error) {
	return com.QueryInterface(c, riid, IIDDeviceChild, IIDDeviceContext)
}

// Device returns the owning device with a new reference.
func (c *DeviceContext) Device() *Device {
	c.device.AddRef()
	return c.device
}

// deviceProvider implements gpucontext.DeviceProvider over a Device.
// Device and Queue return the hal objects themselves; the Device keeps
// ownership of both.
type deviceProvider struct {
	d *Device
}

func (p deviceProvider) Device() gpucontext.Device   { return p.d.device }
func (p deviceProvider) Queue() gpucontext.Queue     { return p.d.queue }
func (p deviceProvider) Adapter() gpucontext.Adapter { return p.d.adapter }

func (p deviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	desc := p.d.adapter.Desc()
	return gpucontext.AdapterInfo{
		Name: desc.Description,
		Type: adapterType(desc.DeviceType),
	}
}
func (p deviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// HalDevice returns the underlying hal.Device.
func (p deviceProvider) HalDevice() any { return p.d.device }

// HalQueue returns the underlying hal.Queue.
func (p deviceProvider) HalQueue() any { return p.d.queue }

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}
