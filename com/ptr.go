// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

// Ptr owns one reference to an object and gives it back on Release.
//
// Go has no destructors, so a Ptr is released explicitly, usually with
// defer:
//
//	var dev com.Ptr[*d3d11.Device]
//	dev.Attach(device)
//	defer dev.Release()
//
// The zero Ptr holds nothing. A Ptr must not be copied after use; use
// Clone to share the object.
type Ptr[T Unknown] struct {
	obj   T
	valid bool
}

// Attach takes over a reference the caller already owns. A previously
// held reference is released first.
func (p *Ptr[T]) Attach(obj T) {
	p.Release()
	p.obj = obj
	p.valid = true
}

// Get returns the object without adding a reference.
func (p *Ptr[T]) Get() T {
	return p.obj
}

// IsNil reports whether p holds no object.
func (p *Ptr[T]) IsNil() bool {
	return !p.valid
}

// Ref returns the object with a new reference for the caller, typically to
// hand it out through a return value while p keeps its own.
func (p *Ptr[T]) Ref() T {
	if p.valid {
		p.obj.AddRef()
	}
	return p.obj
}

// Clone returns a second Ptr holding its own reference.
func (p *Ptr[T]) Clone() Ptr[T] {
	if !p.valid {
		return Ptr[T]{}
	}
	p.obj.AddRef()
	return Ptr[T]{obj: p.obj, valid: true}
}

// Release drops the held reference. Releasing an empty Ptr does nothing,
// so calling Release twice is safe.
func (p *Ptr[T]) Release() {
	if !p.valid {
		return
	}
	obj := p.obj
	var zero T
	p.obj = zero
	p.valid = false
	obj.Release()
}
