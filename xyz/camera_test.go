// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrthoExtents(t *testing.T) {
	c := NewCamera("ortho")
	l, r, b, tp := c.OrthoExtents(800, 600)
	assert.Equal(t, []float64{-400, 400, -300, 300}, []float64{l, r, b, tp})

	c.OriginX.Set(0)
	c.OriginY.Set(1)
	l, r, b, tp = c.OrthoExtents(800, 600)
	assert.Equal(t, []float64{0, 800, -600, 0}, []float64{l, r, b, tp})

	c.Left.Set(-1)
	c.Right.Set(1)
	c.Bottom.Set(-2)
	c.Top.Set(2)
	l, r, b, tp = c.OrthoExtents(800, 600)
	assert.Equal(t, []float64{-1, 1, -2, 2}, []float64{l, r, b, tp})

	c.Top.Set(math.NaN())
	l, _, _, _ = c.OrthoExtents(800, 600)
	assert.Equal(t, 0.0, l)
}

func TestOrthoProjection(t *testing.T) {
	c := NewCamera("ortho")
	c.SetOrthographic()
	assert.Equal(t, Orthographic, c.ProjectionMode())
	require.True(t, c.UpdateCamera(800, 600))
	want := mgl64.Ortho(-400.0/32, 400.0/32, -300.0/32, 300.0/32, 0.1, 100)
	assert.True(t, want.ApproxEqualThreshold(c.ProjectionMatrix(), 1e-12))
	assert.Equal(t, 1.0, c.OrthographicScale())

	c.OrthographicGrid.Set(16)
	assert.Equal(t, 2.0, c.OrthographicScale())
	assert.True(t, c.UpdateCamera(800, 600))

	c.SetPerspective()
	assert.Equal(t, 1.0, c.OrthographicScale())
}

func TestProjectionDirty(t *testing.T) {
	c := NewCamera("dirty")
	assert.False(t, c.ProjectionDirty())
	require.True(t, c.UpdateCamera(800, 600))
	assert.True(t, c.ProjectionDirty())
	want := mgl64.Perspective(mgl64.DegToRad(45), 800.0/600, 0.1, 100)
	assert.True(t, want.ApproxEqualThreshold(c.ProjectionMatrix(), 1e-12))

	c.ClearProjectionDirty()
	assert.False(t, c.UpdateCamera(800, 600))
	assert.False(t, c.UpdateCamera(800, 600))
	assert.False(t, c.ProjectionDirty())

	assert.True(t, c.UpdateCamera(1024, 600))
	assert.True(t, c.ProjectionDirty())
	c.ClearProjectionDirty()

	c.FOV.Set(60)
	assert.True(t, c.UpdateCamera(1024, 600))
	assert.False(t, c.UpdateCamera(1024, 600))

	// an explicit viewport overrides the target size
	c.Width.Set(100)
	c.Height.Set(100)
	assert.True(t, c.UpdateCamera(1024, 600))
	assert.False(t, c.UpdateCamera(640, 480))
	w, h := c.ViewportSize(640, 480)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)

	c.MarkDirty()
	assert.True(t, c.UpdateCamera(640, 480))
}

func TestFocalPoint(t *testing.T) {
	c := NewCamera("focus")
	c.Location.Set(mgl64.Vec3{0, -10, 0})
	fp, ok := c.FocalPoint()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, fp)
	assert.InDelta(t, 10, c.FocalDistance.Get(), 1e-9)
	want := mgl64.LookAtV(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	assert.True(t, want.ApproxEqualThreshold(c.ViewMatrix(), 1e-12))

	target := NewNode("target")
	target.Location.Set(mgl64.Vec3{0, 5, 0})
	c.SetLookAtNode(target)
	fp, ok = c.FocalPoint()
	require.True(t, ok)
	approxVec3(t, mgl64.Vec3{0, 5, 0}, fp)
	assert.InDelta(t, 15, c.FocalDistance.Get(), 1e-9)

	c.Unfocus()
	assert.False(t, c.HasFocalPoint())
	assert.Equal(t, 0.0, c.FocalDistance.Get())
	c.ClearCache()
	assert.Equal(t, c.WorldMatrix.Get(), c.ViewMatrix())

	c.LookAt.Set(mgl64.Vec3{1, 1, 1})
	assert.True(t, c.HasFocalPoint())
	fp, _ = c.FocalPoint()
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, fp)

	target.Destroy()
	c.SetLookAtNode(target)
	assert.False(t, c.HasFocalPoint())
}

func TestCameraMotion(t *testing.T) {
	c := NewCamera("motion")
	c.Location.Set(mgl64.Vec3{0, -10, 0})

	c.Zoom(0.5)
	approxVec3(t, mgl64.Vec3{0, -5, 0}, c.Location.Get())
	c.Zoom(-1)
	approxVec3(t, mgl64.Vec3{0, -10, 0}, c.Location.Get())

	c.Orbit(90, 0)
	approxVec3(t, mgl64.Vec3{10, 0, 0}, c.Location.Get())
	assert.InDelta(t, 10, c.Location.Get().Len(), 1e-9)

	c.ClearCache()
	c.Pan(0, 2)
	approxVec3(t, mgl64.Vec3{10, 0, 2}, c.Location.Get())
	approxVec3(t, mgl64.Vec3{0, 0, 2}, c.LookAt.Get())
}

func TestStereoRig(t *testing.T) {
	c := NewCamera("center")
	c.Location.Set(mgl64.Vec3{0, -10, 0})
	sr := NewStereoRig(c)
	assert.InDelta(t, -0.03115, sr.Left().Offset(), 1e-12)
	assert.InDelta(t, 0.03115, sr.Right().Offset(), 1e-12)

	center := c.ViewMatrix()
	want := mgl64.Translate3D(-0.03115, 0, 0).Mul4(center)
	assert.True(t, want.ApproxEqualThreshold(sr.Left().ViewMatrix(), 1e-12))
	assert.True(t, sr.Right().UpdateCamera(800, 600))
	assert.Equal(t, c.ProjectionMatrix(), sr.Left().ProjectionMatrix())

	prog := newTestProgram("view_matrix", "focal_distance")
	sr.Right().UploadView(prog)
	assert.Equal(t, sr.Right().ViewMatrix(), prog.values["view_matrix"])
	assert.InDelta(t, 10, prog.values["focal_distance"].(float64), 1e-9)

	sr.EyeDistance.Set(100)
	c.ClearCache()
	assert.InDelta(t, 0.05, sr.Right().Offset(), 1e-12)
	want = mgl64.Translate3D(0.05, 0, 0).Mul4(c.ViewMatrix())
	assert.True(t, want.ApproxEqualThreshold(sr.Right().ViewMatrix(), 1e-12))
}
