// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import (
	"reflect"
	"strings"
)

// TypeNamer lets an object supply its own type descriptor.
type TypeNamer interface {
	TypeName() string
}

// TypeName returns a best-effort descriptor for the dynamic type of obj.
//
// The descriptor is package-qualified by import path, e.g.
// "*github.com/gogpu/d3dshim/d3d11.Device". It is meant for display only;
// use DisplayName to shorten it. A nil obj yields "".
func TypeName(obj any) string {
	if n, ok := obj.(TypeNamer); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(obj)
	if t == nil {
		return ""
	}

	var prefix strings.Builder
	for t.Kind() == reflect.Pointer {
		prefix.WriteByte('*')
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		// Unnamed or predeclared: reflect's own spelling is as good as it gets.
		return prefix.String() + t.String()
	}
	return prefix.String() + t.PkgPath() + "." + t.Name()
}

// DisplayName shortens a raw descriptor for diagnostics by dropping pointer
// markers and the import path: "*github.com/x/d3d11.Device" becomes
// "d3d11.Device". It reports false when raw is empty.
func DisplayName(raw string) (string, bool) {
	name := strings.TrimLeft(strings.TrimSpace(raw), "*")
	if name == "" {
		return "", false
	}
	// Generic instantiations carry import paths inside the brackets too;
	// only the part before the bracket is shortened.
	base, args, generic := strings.Cut(name, "[")
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if base == "" {
		return "", false
	}
	if generic {
		return base + "[" + args, true
	}
	return base, true
}
