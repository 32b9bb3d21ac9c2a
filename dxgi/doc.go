// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dxgi provides factories and adapters over wgpu hal instances.
//
// dxgi objects report to their own tracker binding, created the first time
// a dxgi object is constructed. Adapter.RefTracker exposes that tracker so
// that other modules can link to it.
//
// Build with -tags nogpu to leave out the Vulkan backend; CreateFactory
// then returns ErrBackendUnavailable and callers use NewFactory with an
// instance of their own.
package dxgi
