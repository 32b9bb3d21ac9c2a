// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gogpu/d3dshim/reftrack"
)

// InitialRefCount is the reference count of a freshly initialized Object.
//
// An object starts with two owners: the creating function's local handle
// and the out-slot it hands the object to. The creating function releases
// its local handle before returning, leaving the caller with one reference.
const InitialRefCount = 2

// Finalizer is implemented by objects that release resources of their own
// when the last reference goes away.
type Finalizer interface {
	FinalRelease()
}

// Object provides intrusive, atomic reference counting mirrored into a
// reftrack.Binding. Embed it in every exposed object and call Init from the
// constructor:
//
//	type Device struct {
//	    com.Object
//	    ...
//	}
//
//	func newDevice() *Device {
//	    d := &Device{}
//	    d.Init(d, moduleBinding(), CategoryDevice)
//	    return d
//	}
//
// The object is destroyed synchronously by the Release that drops the count
// to zero: FinalRelease runs, then the tracker is told. Releasing a
// destroyed object is a caller bug; with the comdebug build tag it panics.
type Object struct {
	// mu orders count transitions with their tracker reports, so a report
	// for a count never reaches the tracker after the object's Destroy.
	mu   sync.Mutex
	refs atomic.Uint32

	id       reftrack.Identity
	typeName string
	owner    any
	binding  *reftrack.Binding
}

// Init sets the count to InitialRefCount and registers self with binding.
// self must be a pointer to the struct embedding o; anything else has no
// identity and is a caller bug.
func (o *Object) Init(self any, binding *reftrack.Binding, category reftrack.Category) {
	o.owner = self
	o.binding = binding
	o.typeName = reftrack.TypeName(self)
	if v := reflect.ValueOf(self); v.Kind() == reflect.Pointer && !v.IsNil() {
		o.id = reftrack.Identity(v.Pointer())
	} else {
		assertf("com: Init with non-pointer %s", o.typeName)
	}
	o.refs.Store(InitialRefCount)

	binding.Create(o.id, category, o.typeName)
	binding.UpdateRefCount(o.id, o.typeName, InitialRefCount)
}

// AddRef adds a reference and returns the new count.
func (o *Object) AddRef() uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := o.refs.Add(1)
	o.binding.UpdateRefCount(o.id, o.typeName, n)
	return n
}

// Release drops a reference and returns the new count. The call that
// returns zero destroys the object; it must not be used afterwards.
func (o *Object) Release() uint32 {
	o.mu.Lock()
	n := o.refs.Add(^uint32(0))
	if n == ^uint32(0) {
		o.mu.Unlock()
		assertf("com: Release on destroyed %s at %v", o.typeName, o.id)
		return n
	}
	if n != 0 {
		o.binding.UpdateRefCount(o.id, o.typeName, n)
		o.mu.Unlock()
		return n
	}
	o.mu.Unlock()

	if f, ok := o.owner.(Finalizer); ok {
		f.FinalRelease()
	}
	o.binding.Destroy(o.id)
	return 0
}

// RefCount returns the current count. It is a snapshot for diagnostics.
func (o *Object) RefCount() uint32 {
	return o.refs.Load()
}

// Identity returns the address the object is tracked under.
func (o *Object) Identity() reftrack.Identity {
	return o.id
}
