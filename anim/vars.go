// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"fmt"

	"mgrl.dev/core/base/ordmap"
)

// anySetter is implemented by slots that accept untyped writes.
type anySetter interface {
	SetAny(v any) error
}

// Vars is an ordered table of named animatable slots, such as the
// shader variables of a node that are uploaded to the bound program
// before each draw call. Names keep the order in which they were added.
type Vars struct {
	table ordmap.Map[string, Value]
}

// Bind adds or replaces the slot for the given name.
func (vs *Vars) Bind(name string, v Value) {
	vs.table.Add(name, v)
}

// Set writes v to the named slot, which may be a constant or a driver
// (func() any, or func() T for a typed slot). A new untyped slot is
// created for an unknown name.
func (vs *Vars) Set(name string, v any) error {
	slot, ok := vs.table.ValueByKeyTry(name)
	if !ok {
		p := &Property[any]{}
		vs.table.Add(name, p)
		slot = p
	}
	st, ok := slot.(anySetter)
	if !ok {
		return fmt.Errorf("anim.Vars: variable %q is read-only", name)
	}
	return st.SetAny(v)
}

// SetDriver installs an untyped driver on the named slot.
func (vs *Vars) SetDriver(name string, fun func() any) error {
	return vs.Set(name, fun)
}

// Get returns the current value of the named slot, or nil if there is none.
func (vs *Vars) Get(name string) any {
	slot, ok := vs.table.ValueByKeyTry(name)
	if !ok {
		return nil
	}
	return slot.Any()
}

// Slot returns the slot for the given name, or nil.
func (vs *Vars) Slot(name string) Value {
	return vs.table.ValueByKey(name)
}

// Has returns whether there is a slot with the given name.
func (vs *Vars) Has(name string) bool {
	return vs.table.IndexByKey(name) >= 0
}

// Names returns the slot names in order.
func (vs *Vars) Names() []string {
	return vs.table.Keys()
}

// Len returns the number of slots.
func (vs *Vars) Len() int {
	return vs.table.Len()
}

// Evaluate reads every slot, so that all drivers are resolved and
// memoized for the current frame.
func (vs *Vars) Evaluate() {
	for _, kv := range vs.table.Order {
		kv.Value.Any()
	}
}

// Invalidate implements [Invalidator] for the whole table.
func (vs *Vars) Invalidate() {
	for _, kv := range vs.table.Order {
		kv.Value.Invalidate()
	}
}

// InvalidateVar invalidates the named slot only.
// It returns false if there is no such slot.
func (vs *Vars) InvalidateVar(name string) bool {
	slot, ok := vs.table.ValueByKeyTry(name)
	if !ok {
		return false
	}
	slot.Invalidate()
	return true
}
