// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build comdebug

package com

import "fmt"

// assertf panics; comdebug builds treat contract violations as fatal.
func assertf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
