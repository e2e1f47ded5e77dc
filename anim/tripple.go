// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"github.com/go-gl/mathgl/mgl64"
)

// channels is the shared implementation of [Tripple] and [Quad]:
// a fixed number of scalar slots plus an optional aggregate driver
// whose result is memoized once for all channels.
type channels struct {
	ch []*Property[float64]

	// shared memoizes the aggregate driver, so that it is called
	// once per invalidation however many channels are read.
	shared Property[[]float64]

	onSet func()
}

func (c *channels) init(vals ...float64) {
	c.ch = make([]*Property[float64], len(vals))
	for i, v := range vals {
		p := NewProperty(v)
		p.OnSet(c.changed)
		c.ch[i] = p
	}
}

func (c *channels) changed() {
	if c.onSet != nil {
		c.onSet()
	}
}

func (c *channels) get(dst []float64) {
	for i, p := range c.ch {
		dst[i] = p.Get()
	}
}

func (c *channels) set(vals []float64, quiet bool) {
	if !quiet {
		c.changed()
	}
	c.shared.SetDriverQuiet(nil)
	for i, p := range c.ch {
		p.SetQuiet(vals[i])
	}
}

func (c *channels) setDriver(fun func() []float64, quiet bool) {
	if !quiet {
		c.changed()
	}
	c.shared.SetDriverQuiet(fun)
	for i, p := range c.ch {
		p.SetDriverQuiet(func() float64 {
			v := c.shared.Get()
			if i < len(v) {
				return v[i]
			}
			return 0
		})
	}
}

func (c *channels) isDriver() bool {
	for _, p := range c.ch {
		if p.IsDriver() {
			return true
		}
	}
	return false
}

func (c *channels) invalidate() {
	c.shared.Invalidate()
	for _, p := range c.ch {
		p.Invalidate()
	}
}

// freeze replaces every channel by its current value, quietly.
func (c *channels) freeze() {
	vals := make([]float64, len(c.ch))
	c.get(vals)
	c.set(vals, true)
}

// Tripple is three related animatable scalars (x, y, z) with a virtual
// aggregate accessor that reads and writes all three as a vector.
// Each channel can also be read, set or driven on its own.
type Tripple struct {
	c channels
}

// NewTripple returns a new [Tripple] holding the given constants.
func NewTripple(x, y, z float64) *Tripple {
	t := &Tripple{}
	t.c.init(x, y, z)
	return t
}

// X returns the x channel.
func (t *Tripple) X() *Property[float64] { return t.c.ch[0] }

// Y returns the y channel.
func (t *Tripple) Y() *Property[float64] { return t.c.ch[1] }

// Z returns the z channel.
func (t *Tripple) Z() *Property[float64] { return t.c.ch[2] }

// OnSet sets a function called before any write to the tripple
// or one of its channels.
func (t *Tripple) OnSet(fun func()) {
	t.c.onSet = fun
}

// Get returns the three channels as a vector.
func (t *Tripple) Get() mgl64.Vec3 {
	var v mgl64.Vec3
	t.c.get(v[:])
	return v
}

// Any implements [Value].
func (t *Tripple) Any() any {
	return t.Get()
}

// Set sets each channel to the corresponding component of v.
func (t *Tripple) Set(v mgl64.Vec3) {
	t.c.set(v[:], false)
}

// SetDriver installs one driver shared by all three channels.
// Each channel pulls its component lazily; fun is called at most
// once per invalidation.
func (t *Tripple) SetDriver(fun func() mgl64.Vec3) {
	t.c.setDriver(vec3Slice(fun), false)
}

// Derive is [Tripple.SetDriver] without calling the OnSet function.
// It is used to install read-only views computed from other state.
func (t *Tripple) Derive(fun func() mgl64.Vec3) {
	t.c.setDriver(vec3Slice(fun), true)
}

// IsDriver returns whether any channel is driven.
func (t *Tripple) IsDriver() bool {
	return t.c.isDriver()
}

// Freeze replaces all drivers by their current results.
func (t *Tripple) Freeze() {
	t.c.freeze()
}

// Invalidate implements [Invalidator].
func (t *Tripple) Invalidate() {
	t.c.invalidate()
}

func vec3Slice(fun func() mgl64.Vec3) func() []float64 {
	if fun == nil {
		return nil
	}
	return func() []float64 {
		v := fun()
		return v[:]
	}
}

// Quad is the four channel counterpart of [Tripple], used for
// quaternions (x, y, z, w).
type Quad struct {
	c channels
}

// NewQuad returns a new [Quad] holding the given constants.
func NewQuad(x, y, z, w float64) *Quad {
	q := &Quad{}
	q.c.init(x, y, z, w)
	return q
}

// X returns the x channel.
func (q *Quad) X() *Property[float64] { return q.c.ch[0] }

// Y returns the y channel.
func (q *Quad) Y() *Property[float64] { return q.c.ch[1] }

// Z returns the z channel.
func (q *Quad) Z() *Property[float64] { return q.c.ch[2] }

// W returns the w channel.
func (q *Quad) W() *Property[float64] { return q.c.ch[3] }

// OnSet sets a function called before any write to the quad
// or one of its channels.
func (q *Quad) OnSet(fun func()) {
	q.c.onSet = fun
}

// Get returns the four channels as a vector.
func (q *Quad) Get() mgl64.Vec4 {
	var v mgl64.Vec4
	q.c.get(v[:])
	return v
}

// Any implements [Value].
func (q *Quad) Any() any {
	return q.Get()
}

// Set sets each channel to the corresponding component of v.
func (q *Quad) Set(v mgl64.Vec4) {
	q.c.set(v[:], false)
}

// SetDriver installs one driver shared by all four channels.
func (q *Quad) SetDriver(fun func() mgl64.Vec4) {
	q.c.setDriver(vec4Slice(fun), false)
}

// Derive is [Quad.SetDriver] without calling the OnSet function.
func (q *Quad) Derive(fun func() mgl64.Vec4) {
	q.c.setDriver(vec4Slice(fun), true)
}

// IsDriver returns whether any channel is driven.
func (q *Quad) IsDriver() bool {
	return q.c.isDriver()
}

// Freeze replaces all drivers by their current results.
func (q *Quad) Freeze() {
	q.c.freeze()
}

// Invalidate implements [Invalidator].
func (q *Quad) Invalidate() {
	q.c.invalidate()
}

func vec4Slice(fun func() mgl64.Vec4) func() []float64 {
	if fun == nil {
		return nil
	}
	return func() []float64 {
		v := fun()
		return v[:]
	}
}
