// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim provides animatable values: slots that hold either a
// constant or a zero-argument producer function (a "driver"), with the
// driver result memoized until the slot is invalidated. Scene graph
// nodes invalidate all of their slots once per tick, so a driver is
// evaluated at most once per frame no matter how often it is read.
package anim

import (
	"fmt"
)

// Value is the untyped view of an animatable slot, used by
// tables such as [Vars] that hold slots of different types.
type Value interface {

	// Any returns the current value, evaluating the driver if needed.
	Any() any

	// Invalidate drops any memoized driver result.
	Invalidate()
}

// Invalidator is anything with a memo that can be dropped.
type Invalidator interface {
	Invalidate()
}

// Property is a single animatable slot of type T. The zero value is a
// usable constant slot holding the zero value of T.
type Property[T any] struct {
	value  T
	driver func() T
	cached T
	valid  bool

	// onSet is called before every user-visible write.
	onSet func()
}

// NewProperty returns a new constant [Property] holding v.
func NewProperty[T any](v T) *Property[T] {
	return &Property[T]{value: v}
}

// NewDriven returns a new [Property] driven by fun.
func NewDriven[T any](fun func() T) *Property[T] {
	return &Property[T]{driver: fun}
}

// OnSet sets a function that is called before every write through
// [Property.Set] or [Property.SetDriver]. Quiet writes skip it.
func (p *Property[T]) OnSet(fun func()) {
	p.onSet = fun
}

// Get returns the current value. A driver is evaluated on the first
// read after an invalidation and its result is returned unchanged
// until the next invalidation.
func (p *Property[T]) Get() T {
	if p.driver == nil {
		return p.value
	}
	if !p.valid {
		p.cached = p.driver()
		p.valid = true
	}
	return p.cached
}

// Any implements [Value].
func (p *Property[T]) Any() any {
	return p.Get()
}

// Set replaces the source with the constant v. The memo is cleared
// immediately so the write is visible to the next read, even mid-frame.
func (p *Property[T]) Set(v T) {
	if p.onSet != nil {
		p.onSet()
	}
	p.SetQuiet(v)
}

// SetDriver replaces the source with the driver fun.
func (p *Property[T]) SetDriver(fun func() T) {
	if p.onSet != nil {
		p.onSet()
	}
	p.SetDriverQuiet(fun)
}

// SetQuiet is [Property.Set] without calling the OnSet function.
func (p *Property[T]) SetQuiet(v T) {
	p.driver = nil
	p.value = v
	p.Invalidate()
}

// SetDriverQuiet is [Property.SetDriver] without calling the OnSet function.
// A nil fun makes the property a constant holding the zero value.
func (p *Property[T]) SetDriverQuiet(fun func() T) {
	var zv T
	p.driver = fun
	p.value = zv
	p.Invalidate()
}

// SetAny sets the property from an untyped value, which may be a T,
// a func() T driver or a func() any driver whose results must be T.
func (p *Property[T]) SetAny(v any) error {
	switch vt := v.(type) {
	case nil:
		var zv T
		p.Set(zv)
	case func() T:
		p.SetDriver(vt)
	case func() any:
		p.SetDriver(func() T {
			r := vt()
			if r == nil {
				var zv T
				return zv
			}
			return r.(T)
		})
	case T:
		p.Set(vt)
	default:
		var zv T
		return fmt.Errorf("anim.Property: cannot set %T property from %T", zv, v)
	}
	return nil
}

// IsDriver returns whether the property is currently driven by a function.
func (p *Property[T]) IsDriver() bool {
	return p.driver != nil
}

// IsCached returns whether a driver result is currently memoized.
func (p *Property[T]) IsCached() bool {
	return p.valid
}

// Invalidate implements [Invalidator]. The memo is zeroed so that it
// does not keep the previous result alive.
func (p *Property[T]) Invalidate() {
	var zv T
	p.cached = zv
	p.valid = false
}

// Freeze replaces a driver with its current result as a constant,
// without calling the OnSet function.
func (p *Property[T]) Freeze() {
	if p.driver == nil {
		return
	}
	p.SetQuiet(p.Get())
}

// Cache is a set of slots that are invalidated together, typically
// every slot belonging to one scene graph node.
type Cache struct {
	items []Invalidator
}

// Add registers slots with the cache.
func (c *Cache) Add(items ...Invalidator) {
	c.items = append(c.items, items...)
}

// Clear invalidates every registered slot in one pass.
func (c *Cache) Clear() {
	for _, it := range c.items {
		it.Invalidate()
	}
}

// Len returns the number of registered slots.
func (c *Cache) Len() int {
	return len(c.items)
}
