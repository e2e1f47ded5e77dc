// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mgrl.dev/core/base/errors"
)

func panicErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

func approxVec3(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-6), "want %v, got %v", want, got)
}

func TestWorldComposition(t *testing.T) {
	a := NewNode("a")
	a.Location.Set(mgl64.Vec3{1, 0, 0})
	b := NewNode("b")
	b.Location.Set(mgl64.Vec3{0, 2, 0})
	b.Rotation.Set(mgl64.Vec3{0, 0, 90})
	c := NewNode("c")
	c.Location.Set(mgl64.Vec3{3, 0, 0})
	a.Add(b)
	b.Add(c)

	want := a.LocalMatrix().Mul4(b.LocalMatrix()).Mul4(c.LocalMatrix())
	assert.True(t, want.ApproxEqualThreshold(c.WorldMatrix.Get(), 1e-9))
	approxVec3(t, mgl64.Vec3{1, 5, 0}, c.WorldLocation.Get())

	nm := c.NormalMatrix.Get()
	assert.True(t, c.WorldMatrix.Get().Mat3().Inv().Transpose().ApproxEqualThreshold(nm, 1e-9))
}

func TestScaleInWorld(t *testing.T) {
	a := NewNode("a")
	a.Scale.Set(mgl64.Vec3{2, 2, 2})
	b := NewNode("b")
	b.Location.Set(mgl64.Vec3{1, 1, 1})
	a.Add(b)
	approxVec3(t, mgl64.Vec3{2, 2, 2}, b.WorldLocation.Get())
}

func TestWorldMemoizedPerTick(t *testing.T) {
	sc := NewScene("memo")
	defer sc.Destroy()
	clk := &FrameClock{}
	sc.Clock = clk

	calls := 0
	a := NewNode("a")
	a.Location.SetDriver(func() mgl64.Vec3 {
		calls++
		return mgl64.Vec3{float64(clk.Frame()), 0, 0}
	})
	b := NewNode("b")
	a.Add(b)
	sc.Add(a)

	require.True(t, sc.Tick())
	assert.Equal(t, 1, calls)
	for range 3 {
		a.WorldMatrix.Get()
		b.WorldMatrix.Get()
		b.WorldLocation.Get()
	}
	assert.Equal(t, 1, calls)
	assert.False(t, sc.Tick())

	clk.Advance()
	require.True(t, sc.Tick())
	assert.Equal(t, 2, calls)
	approxVec3(t, mgl64.Vec3{1, 0, 0}, b.WorldLocation.Get())
}

func TestRotationRoundTrip(t *testing.T) {
	n := NewNode("rot")
	assert.Equal(t, EulerMode, n.RotationMode())
	n.Rotation.Set(mgl64.Vec3{10, 20, 30})
	q := n.Quaternion.Get()
	assert.True(t, QuatVec4(EulerToQuat(mgl64.Vec3{10, 20, 30})).ApproxEqualThreshold(q, 1e-9))

	n.SetRotationMode(QuaternionMode)
	approxVec3(t, mgl64.Vec3{10, 20, 30}, n.Rotation.Get())
	assert.True(t, q.ApproxEqualThreshold(n.Quaternion.Get(), 1e-9))

	n.Quaternion.Set(QuatVec4(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})))
	assert.Equal(t, QuaternionMode, n.RotationMode())
	approxVec3(t, mgl64.Vec3{0, 0, 90}, n.Rotation.Get())

	n.Rotation.Set(mgl64.Vec3{0, 0, 45})
	assert.Equal(t, EulerMode, n.RotationMode())
	want := QuatVec4(mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}))
	assert.True(t, want.ApproxEqualThreshold(n.Quaternion.Get(), 1e-9))

	assert.Panics(t, func() { n.SetRotationMode(RotationMode(7)) })
}

func TestQuatToEulerGimbal(t *testing.T) {
	for _, e := range []mgl64.Vec3{{0, 0, 0}, {-45, 10, 170}, {30, -60, -90}} {
		approxVec3(t, e, QuatToEuler(EulerToQuat(e)))
	}
	r := QuatToEuler(EulerToQuat(mgl64.Vec3{0, 90, 30}))
	assert.InDelta(t, 90, r[1], 1e-6)
	assert.InDelta(t, 0, r[0], 1e-6)
}

func TestAddRemoveSymmetry(t *testing.T) {
	sc := NewScene("sym")
	defer sc.Destroy()
	a := NewNode("a")
	b := NewNode("b")
	a.Add(b)
	sc.Add(a)
	assert.Equal(t, []Node{a, b}, sc.Flat())
	assert.Equal(t, sc, b.GraphRoot())

	assert.True(t, sc.Remove(a))
	assert.False(t, sc.Remove(a))
	assert.Empty(t, sc.Flat())
	assert.Nil(t, a.GraphRoot())
	assert.Nil(t, b.GraphRoot())
	assert.Equal(t, a, b.Parent())

	sc.Add(a)
	assert.Equal(t, []Node{a, b}, sc.Flat())

	st := sc.AddStatic(a)
	assert.NotEqual(t, a.ID(), st.ID())
	assert.Len(t, sc.Flat(), 4)
	assert.Equal(t, Node(sc), a.Parent())
	assert.True(t, sc.Remove(st))
	assert.Equal(t, []Node{a, b}, sc.Flat())
}

func TestReparent(t *testing.T) {
	sc := NewScene("reparent")
	defer sc.Destroy()
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	c := NewNode("c")
	sc.Add(p1, p2)
	p1.Add(c)
	p2.Add(c)
	assert.False(t, p1.HasChild(c))
	assert.True(t, p2.HasChild(c))
	assert.Equal(t, 0, p1.NumChildren())
	assert.Len(t, sc.Flat(), 3)
	p2.Add(c)
	assert.Equal(t, 1, p2.NumChildren())
}

func TestAddPanics(t *testing.T) {
	cam := NewCamera("cam")
	assert.True(t, errors.Is(panicErr(func() { cam.Add(NewNode("x")) }), ErrCameraChild))

	sc := NewScene("inner")
	defer sc.Destroy()
	n := NewNode("n")
	assert.True(t, errors.Is(panicErr(func() { n.Add(sc) }), ErrSceneChild))

	c := NewNode("c")
	n.Add(c)
	assert.True(t, errors.Is(panicErr(func() { c.Add(n) }), ErrCycle))
	assert.True(t, errors.Is(panicErr(func() { n.Add(n) }), ErrCycle))
}

func TestDestroy(t *testing.T) {
	sc := NewScene("destroy")
	p := NewNode("p")
	c := NewNode("c")
	p.Add(c)
	sc.Add(p)
	id := p.ID()
	require.Equal(t, p, Lookup(id))

	p.Destroy()
	assert.True(t, p.IsDestroyed())
	assert.Nil(t, Lookup(id))
	assert.Nil(t, c.Parent())
	assert.Nil(t, c.GraphRoot())
	assert.Equal(t, c, Lookup(c.ID()))
	assert.Empty(t, sc.Flat())
	assert.True(t, errors.Is(panicErr(func() { sc.Add(p) }), ErrDestroyed))

	assert.Contains(t, Roots(), sc)
	sc.Destroy()
	assert.NotContains(t, Roots(), sc)
}

func TestPropagateRemove(t *testing.T) {
	root := NewNode("root")
	for range 4 {
		root.Add(NewNode("c"))
	}
	var seen int
	root.Propagate(func(n Node) {
		seen++
		root.Remove(n)
	}, true)
	assert.Equal(t, 4, seen)
	assert.Equal(t, 0, root.NumChildren())
}

func TestVisibilityAndSelection(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Add(b)
	b.Add(c)
	assert.True(t, c.IsVisible())
	a.Visible = false
	assert.False(t, c.IsVisible())

	assert.Nil(t, c.FindSelection())
	a.Selectable = true
	assert.Equal(t, a, c.FindSelection())
	c.Selectable = true
	assert.Equal(t, c, c.FindSelection())
}

func TestIndexColor(t *testing.T) {
	for _, i := range []int{1, 5, 255, 256, 70000, 1<<24 - 1} {
		assert.Equal(t, i, ColorIndex(IndexColor(i)))
	}
	assert.Equal(t, color.RGBA{1, 1, 0, 255}, IndexColor(257))
	assert.Equal(t, 0, ColorIndex(color.RGBA{A: 255}))
}

func TestEnumSetters(t *testing.T) {
	n := NewNode("n")
	n.SetSortMode(Alpha)
	n.SetDrawType(Sprite)
	n.SetBillboard(ParticleBillboard)
	assert.Equal(t, true, n.Shader.Get("is_transparent"))
	assert.Equal(t, true, n.Shader.Get("is_sprite"))
	assert.Equal(t, int(ParticleBillboard), n.Shader.Get("billboard_mode"))
	assert.Panics(t, func() { n.SetSortMode(SortMode(9)) })
	assert.Panics(t, func() { n.SetDrawType(DrawType(-1)) })
	assert.Panics(t, func() { n.SetBillboard(BillboardsN) })
}

func TestHandlers(t *testing.T) {
	n := NewNode("n")
	var got []string
	n.On("click", func(data any) { got = append(got, "a") }, func(data any) { got = append(got, "b") })
	n.On("click", func(data any) { got = append(got, "c") })
	assert.True(t, n.HasHandler("click"))
	n.Dispatch("click", nil)
	n.Dispatch("mousedown", nil)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	n.SetHandlers("click")
	assert.False(t, n.HasHandler("click"))
}

func TestManualCache(t *testing.T) {
	n := NewNode("n")
	calls := 0
	require.NoError(t, n.Shader.Set("time", func() any {
		calls++
		return calls
	}))
	n.UseManualCacheInvalidation()
	assert.True(t, n.IsManualCache())
	assert.Equal(t, 1, n.Shader.Get("time"))
	n.ClearCache()
	assert.Equal(t, 1, n.Shader.Get("time"))
	n.ManualCacheClear("time")
	assert.Equal(t, 2, n.Shader.Get("time"))
	n.UseAutomaticCacheInvalidation()
	n.ClearCache()
	assert.Equal(t, 3, n.Shader.Get("time"))
}

func TestStaticCopy(t *testing.T) {
	src := NewNode("src")
	src.Location.Set(mgl64.Vec3{1, 2, 3})
	src.Drawable = true
	src.AssetHint = "box"
	src.SetSortMode(Alpha)
	require.NoError(t, src.Shader.Set("color", mgl64.Vec4{1, 0, 0, 1}))
	clicks := 0
	src.On("click", func(data any) { clicks++ })
	child := NewNode("child")
	src.Add(child, NewCamera("cam"))

	cp := StaticCopy(src)
	assert.NotSame(t, src, cp)
	assert.NotEqual(t, src.ID(), cp.ID())
	assert.Equal(t, Node(cp), Lookup(cp.ID()))
	assert.NotSame(t, src.Alpha(), cp.Alpha())
	assert.Nil(t, src.Parent())
	assert.Equal(t, 2, src.NumChildren())
	assert.Equal(t, "src", cp.Name)
	assert.Equal(t, "box", cp.AssetHint)
	assert.True(t, cp.Drawable)
	assert.Equal(t, Alpha, cp.SortMode())
	assert.True(t, cp.IsManualCache())
	assert.Equal(t, mgl64.Vec4{1, 0, 0, 1}, cp.Shader.Get("color"))
	assert.Equal(t, 1, cp.NumChildren())
	assert.Equal(t, "child", cp.Children()[0].AsNode().Name)

	approxVec3(t, mgl64.Vec3{1, 2, 3}, cp.WorldLocation.Get())
	src.Location.Set(mgl64.Vec3{9, 9, 9})
	approxVec3(t, mgl64.Vec3{1, 2, 3}, cp.Location.Get())

	cp.Dispatch("click", nil)
	assert.Equal(t, 1, clicks)
}
