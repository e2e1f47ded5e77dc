// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyConstant(t *testing.T) {
	p := NewProperty(3.5)
	assert.Equal(t, 3.5, p.Get())
	assert.False(t, p.IsDriver())
	p.Set(4)
	assert.Equal(t, 4.0, p.Get())
}

func TestPropertyDriverMemoized(t *testing.T) {
	calls := 0
	p := NewDriven(func() float64 {
		calls++
		return rand.Float64()
	})
	a := p.Get()
	b := p.Get()
	assert.Equal(t, a, b)
	assert.Equal(t, 1, calls)
	assert.True(t, p.IsCached())

	p.Invalidate()
	assert.False(t, p.IsCached())
	p.Get()
	assert.Equal(t, 2, calls)
}

func TestPropertySetClearsMemo(t *testing.T) {
	n := 1
	p := NewDriven(func() int { return n })
	assert.Equal(t, 1, p.Get())
	n = 2
	assert.Equal(t, 1, p.Get())
	p.SetDriver(func() int { return n * 10 })
	assert.Equal(t, 20, p.Get())
	p.Set(7)
	assert.Equal(t, 7, p.Get())
}

func TestPropertyOnSet(t *testing.T) {
	hooks := 0
	p := NewProperty("a")
	p.OnSet(func() { hooks++ })
	p.Set("b")
	p.SetDriver(func() string { return "c" })
	p.SetQuiet("d")
	p.SetDriverQuiet(func() string { return "e" })
	assert.Equal(t, 2, hooks)
	assert.Equal(t, "e", p.Get())
}

func TestPropertyFreeze(t *testing.T) {
	n := 1
	p := NewDriven(func() int { return n })
	p.Freeze()
	n = 5
	p.Invalidate()
	assert.False(t, p.IsDriver())
	assert.Equal(t, 1, p.Get())
}

func TestPropertySetAny(t *testing.T) {
	p := NewProperty(1.0)
	require.NoError(t, p.SetAny(2.0))
	assert.Equal(t, 2.0, p.Get())
	require.NoError(t, p.SetAny(func() float64 { return 3 }))
	assert.Equal(t, 3.0, p.Get())
	require.NoError(t, p.SetAny(func() any { return 4.0 }))
	assert.Equal(t, 4.0, p.Get())
	assert.Error(t, p.SetAny("nope"))

	var a Property[any]
	require.NoError(t, a.SetAny(func() any { return nil }))
	assert.Nil(t, a.Get())
}

func TestTrippleVector(t *testing.T) {
	tr := NewTripple(1, 2, 3)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Get())
	tr.Set(mgl64.Vec3{4, 5, 6})
	assert.Equal(t, 5.0, tr.Y().Get())
	tr.Z().SetDriver(func() float64 { return 9 })
	assert.Equal(t, mgl64.Vec3{4, 5, 9}, tr.Get())
	assert.True(t, tr.IsDriver())
}

func TestTrippleSharedDriverCalledOnce(t *testing.T) {
	calls := 0
	tr := NewTripple(0, 0, 0)
	tr.SetDriver(func() mgl64.Vec3 {
		calls++
		return mgl64.Vec3{float64(calls), 2, 3}
	})
	x := tr.X().Get()
	y := tr.Y().Get()
	z := tr.Z().Get()
	v := tr.Get()
	assert.Equal(t, 1, calls)
	assert.Equal(t, mgl64.Vec3{x, y, z}, v)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, v)

	tr.Invalidate()
	assert.Equal(t, 2.0, tr.X().Get())
	assert.Equal(t, 2, calls)
}

func TestTrippleChannelOverridesShared(t *testing.T) {
	tr := NewTripple(0, 0, 0)
	tr.SetDriver(func() mgl64.Vec3 { return mgl64.Vec3{1, 2, 3} })
	tr.X().Set(10)
	assert.Equal(t, mgl64.Vec3{10, 2, 3}, tr.Get())
}

func TestTrippleHooks(t *testing.T) {
	hooks := 0
	tr := NewTripple(0, 0, 0)
	tr.OnSet(func() { hooks++ })
	tr.Set(mgl64.Vec3{1, 1, 1})
	tr.X().Set(2)
	tr.SetDriver(func() mgl64.Vec3 { return mgl64.Vec3{} })
	tr.Derive(func() mgl64.Vec3 { return mgl64.Vec3{7, 8, 9} })
	assert.Equal(t, 3, hooks)
	tr.Freeze()
	assert.False(t, tr.IsDriver())
	assert.Equal(t, mgl64.Vec3{7, 8, 9}, tr.Get())
	assert.Equal(t, 3, hooks)
}

func TestQuad(t *testing.T) {
	q := NewQuad(0, 0, 0, 1)
	assert.Equal(t, mgl64.Vec4{0, 0, 0, 1}, q.Get())
	calls := 0
	q.SetDriver(func() mgl64.Vec4 {
		calls++
		return mgl64.Vec4{1, 2, 3, 4}
	})
	assert.Equal(t, 4.0, q.W().Get())
	assert.Equal(t, mgl64.Vec4{1, 2, 3, 4}, q.Get())
	assert.Equal(t, 1, calls)
}

func TestCache(t *testing.T) {
	calls := 0
	a := NewDriven(func() int { calls++; return calls })
	tr := NewTripple(0, 0, 0)
	tr.SetDriver(func() mgl64.Vec3 { calls++; return mgl64.Vec3{} })

	var c Cache
	c.Add(a, tr)
	assert.Equal(t, 2, c.Len())
	a.Get()
	tr.Get()
	assert.Equal(t, 2, calls)
	a.Get()
	tr.Get()
	assert.Equal(t, 2, calls)
	c.Clear()
	a.Get()
	tr.Get()
	assert.Equal(t, 4, calls)
}

func TestVars(t *testing.T) {
	var vs Vars
	world := NewProperty(mgl64.Ident4())
	vs.Bind("world_matrix", world)
	require.NoError(t, vs.Set("alpha", 1.0))
	calls := 0
	require.NoError(t, vs.SetDriver("phase", func() any {
		calls++
		return 0.25
	}))

	assert.Equal(t, []string{"world_matrix", "alpha", "phase"}, vs.Names())
	assert.Equal(t, mgl64.Ident4(), vs.Get("world_matrix"))
	assert.Equal(t, 1.0, vs.Get("alpha"))
	assert.Nil(t, vs.Get("missing"))
	assert.True(t, vs.Has("phase"))

	vs.Evaluate()
	vs.Evaluate()
	assert.Equal(t, 1, calls)
	assert.True(t, vs.InvalidateVar("phase"))
	assert.False(t, vs.InvalidateVar("missing"))
	vs.Evaluate()
	assert.Equal(t, 2, calls)

	require.NoError(t, vs.Set("world_matrix", mgl64.Translate3D(1, 2, 3)))
	assert.Equal(t, mgl64.Translate3D(1, 2, 3), world.Get())
	assert.Error(t, vs.Set("world_matrix", "bad"))

	vs.Bind("view", NewTripple(1, 2, 3))
	assert.Error(t, vs.Set("view", 1.0))
	assert.Equal(t, 4, vs.Len())
}
