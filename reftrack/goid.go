// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import "runtime"

// currentGoroutineID returns the id of the calling goroutine, or 0 if it
// cannot be determined.
//
// Go exposes no thread identity for goroutines, so the id is parsed from
// the header of the current stack trace: "goroutine 123 [running]:".
// This costs a microsecond or so, which is fine on a diagnostic path.
func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGoroutineID(buf[:n])
}

// parseGoroutineID extracts the numeric id from a stack trace header.
func parseGoroutineID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
