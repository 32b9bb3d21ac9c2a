// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"errors"

	"github.com/google/uuid"
)

// IID identifies an interface an object can be queried for.
type IID = uuid.UUID

// IIDUnknown is the interface id of Unknown, supported by every object.
var IIDUnknown = uuid.MustParse("00000000-0000-0000-c000-000000000046")

// ErrNoInterface is returned by QueryInterface for unsupported interfaces.
var ErrNoInterface = errors.New("com: no such interface supported")

// Unknown is the base interface of every exposed object.
type Unknown interface {
	AddRef() uint32
	Release() uint32

	// QueryInterface returns the object with an added reference if it
	// supports riid, or ErrNoInterface.
	QueryInterface(riid IID) (Unknown, error)
}

// QueryInterface implements the common case of Unknown.QueryInterface:
// obj is returned with an added reference when riid is IIDUnknown or one
// of supported.
//
//	func (a *Adapter) QueryInterface(riid com.IID) (com.Unknown, error) {
//	    return com.QueryInterface(a, riid, IIDAdapter, IIDAdapterPrivate)
//	}
func QueryInterface(obj Unknown, riid IID, supported ...IID) (Unknown, error) {
	if riid == IIDUnknown {
		obj.AddRef()
		return obj, nil
	}
	for _, iid := range supported {
		if riid == iid {
			obj.AddRef()
			return obj, nil
		}
	}
	return nil, ErrNoInterface
}
