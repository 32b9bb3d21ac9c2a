// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reftrack

import "testing"

type sampleObject struct{}

type namedObject struct{}

func (namedObject) TypeName() string { return "custom.Name" }

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		obj  any
		want string
	}{
		{"nil", nil, ""},
		{"pointer", &sampleObject{}, "*github.com/gogpu/d3dshim/reftrack.sampleObject"},
		{"value", sampleObject{}, "github.com/gogpu/d3dshim/reftrack.sampleObject"},
		{"builtin", 42, "int"},
		{"unnamed", []string{}, "[]string"},
		{"namer", namedObject{}, "custom.Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.obj); got != tt.want {
				t.Errorf("TypeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"*github.com/gogpu/d3dshim/d3d11.Device", "d3d11.Device", true},
		{"github.com/gogpu/d3dshim/dxgi.Adapter", "dxgi.Adapter", true},
		{"**pkg.T", "pkg.T", true},
		{"int", "int", true},
		{"*github.com/gogpu/d3dshim/com.Ptr[*github.com/gogpu/d3dshim/d3d11.Device]",
			"com.Ptr[*github.com/gogpu/d3dshim/d3d11.Device]", true},
		{"", "", false},
		{"*", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		got, ok := DisplayName(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DisplayName(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
