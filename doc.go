// Package d3dshim implements a Direct3D 11 style object model on top of
// WebGPU (gogpu/wgpu).
//
// # Overview
//
// Every object the shim hands out (factories, adapters, devices, device
// contexts) is intrusively reference counted and reports its lifetime to a
// live-object tracker. At process exit the tracker reports every object
// that was never released, which is how reference leaks in applications
// (and in the shim itself) are found.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/d3dshim"
//	    "github.com/gogpu/d3dshim/d3d11"
//	    "github.com/gogpu/d3dshim/reftrack"
//	)
//
//	func main() {
//	    d3dshim.SetLogger(slog.Default())
//	    defer reftrack.DumpAtExit()
//
//	    dev, ctx, fl, err := d3d11.CreateDevice(nil, d3d11.DeviceDesc{
//	        DriverType: d3d11.DriverTypeHardware,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer dev.Release()
//	    defer ctx.Release()
//	    log.Printf("feature level %v", fl)
//	}
//
// # Architecture
//
// The library is organized into:
//   - reftrack: the live-object tracker, module bindings and the exit dump
//   - com: the reference-counted object base, interface ids, owning handles
//   - dxgi: factories and adapters over wgpu hal instances
//   - d3d11: device creation, devices and immediate contexts
//
// # Modules and linking
//
// The dxgi and d3d11 packages each lazily create their own tracker, the
// way two separately loaded libraries would. When d3d11.CreateDevice is
// handed a dxgi adapter it links its tracker to the adapter's, so one
// tracker sees the whole object graph.
package d3dshim

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"
)
