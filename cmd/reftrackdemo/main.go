// Command reftrackdemo creates a device, stresses its reference counts from
// several goroutines and optionally leaks references, then prints the
// reachable object list at exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/d3dshim"
	"github.com/gogpu/d3dshim/d3d11"
	"github.com/gogpu/d3dshim/dxgi"
	"github.com/gogpu/d3dshim/internal/parallel"
	"github.com/gogpu/d3dshim/reftrack"
	"github.com/gogpu/wgpu/hal/noop"
)

func main() {
	var (
		useNoop    = flag.Bool("noop", false, "use the noop hal backend instead of Vulkan")
		workers    = flag.Int("workers", 0, "stress workers (0 = GOMAXPROCS)")
		iterations = flag.Int("iterations", 10000, "AddRef/Release round trips")
		leak       = flag.Int("leak", 1, "device references to leak")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	d3dshim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*useNoop, *workers, *iterations, *leak); err != nil {
		fmt.Fprintf(os.Stderr, "reftrackdemo: %v\n", err)
		reftrack.Exit(1)
	}
	reftrack.Exit(0)
}

func run(useNoop bool, workers, iterations, leak int) error {
	factory, err := newFactory(useNoop)
	if err != nil {
		return err
	}
	adapter, err := factory.EnumAdapters(0)
	factory.Release()
	if err != nil {
		return fmt.Errorf("enumerate adapters: %w", err)
	}
	defer adapter.Release()

	desc := adapter.Desc()
	d3dshim.Logger().Info("adapter", "name", desc.Description, "type", desc.DeviceType)

	device, ctx, fl, err := d3d11.CreateDevice(adapter, d3d11.DeviceDesc{})
	if err != nil {
		return err
	}
	defer device.Release()
	defer ctx.Release()
	d3dshim.Logger().Info("device created", "feature_level", fl,
		"shared_tracker", d3d11.RefTracker() == dxgi.RefTracker())

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	pool.Repeat(iterations, func(_, _ int) {
		c := device.ImmediateContext()
		a := device.Adapter()
		a.Release()
		c.Release()
	})
	d3dshim.Logger().Info("stress done", "workers", pool.Workers(), "iterations", iterations,
		"device_refs", device.RefCount(), "tracked", d3d11.RefTracker().Len())

	for range leak {
		device.AddRef()
	}
	return nil
}

func newFactory(useNoop bool) (*dxgi.Factory, error) {
	if !useNoop {
		f, err := dxgi.CreateFactory()
		if err == nil && f.AdapterCount() > 0 {
			return f, nil
		}
		if f != nil {
			f.Release()
		}
		d3dshim.Logger().Warn("vulkan unavailable, falling back to noop backend", "err", err)
	}
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create noop instance: %w", err)
	}
	return dxgi.NewFactory(instance), nil
}
