// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !comdebug

package com

// assertf is a no-op without the comdebug build tag.
func assertf(string, ...any) {}
