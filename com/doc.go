// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package com provides reference-counted objects for the d3dshim API
// surface.
//
// Every exposed object embeds Object, which counts references atomically
// and mirrors every transition into the reftrack.Binding of the module
// that created it. Objects start with InitialRefCount (2) references; see
// its documentation for the convention.
//
// Ptr is an owning handle for code that holds references across calls.
//
// Build with -tags comdebug to turn a Release on a destroyed object into a
// panic.
package com
