// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/anim"
	"mgrl.dev/core/events"
)

// View is a source of projection and view matrices that a scene can
// be drawn through: a [Camera] or one [Eye] of a [StereoRig].
type View interface {

	// UpdateCamera recomputes the projection for the given render
	// target size if any of its parameters changed.
	UpdateCamera(width, height int) bool

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl64.Mat4

	// UploadView uploads the view related variables to prog.
	UploadView(prog Program)
}

type focusMode int32

const (
	focusNone focusMode = iota
	focusPoint
	focusNode
)

// cameraParams are the resolved inputs of the last projection.
type cameraParams struct {
	mode                     ProjectionMode
	width, height, near, far float64
	fov                      float64
	left, right, bottom, top float64
	grid                     float64
}

// Camera is a node that produces projection and view matrices.
// Nearly all of its parameters are animatable. It cannot have children.
//
// When the camera has a focal point (LookAt, or a target node), the
// view matrix looks from the camera's world location at that point.
// Otherwise the camera's own world matrix is used as the view matrix,
// so it is oriented by its own transform (free-look).
type Camera struct {
	NodeBase

	// FOV is the vertical field of view in degrees, for perspective.
	FOV *anim.Property[float64]

	// Left, Right, Bottom and Top are the orthographic extents.
	// If any of them is NaN (the default), the extents are derived
	// from the viewport size and OriginX, OriginY.
	Left   *anim.Property[float64]
	Right  *anim.Property[float64]
	Bottom *anim.Property[float64]
	Top    *anim.Property[float64]

	// OriginX and OriginY in [0, 1] place the logical origin within
	// the derived orthographic viewport. 0.5 centers it.
	OriginX *anim.Property[float64]
	OriginY *anim.Property[float64]

	// Width and Height of the viewport. 0 means the render target size.
	Width  *anim.Property[float64]
	Height *anim.Property[float64]

	// Near and Far are the clipping planes.
	Near *anim.Property[float64]
	Far  *anim.Property[float64]

	// OrthographicGrid divides the orthographic extents, so that
	// it acts as a zoom factor.
	OrthographicGrid *anim.Property[float64]

	// FocalDistance defaults to the distance from the camera to its
	// focal point.
	FocalDistance *anim.Property[float64]

	// DepthOfField and DepthFalloff are passed on to shaders.
	DepthOfField *anim.Property[float64]
	DepthFalloff *anim.Property[float64]

	// LookAt is the focal point. Writing it gives the camera a
	// focal point again after [Camera.Unfocus].
	LookAt *anim.Tripple

	// UpVector is the up direction for the look-at view.
	UpVector *anim.Tripple

	mode       ProjectionMode
	focus      focusMode
	target     NodeID
	viewMatrix *anim.Property[mgl64.Mat4]
	projection mgl64.Mat4
	last       cameraParams
	hasLast    bool
	dirty      bool
}

// NewCamera returns a new perspective camera looking at the origin.
func NewCamera(name string) *Camera {
	c := &Camera{}
	c.Init(c, name)
	c.initCamera()
	return c
}

func (c *Camera) initCamera() {
	c.FOV = anim.NewProperty(45.0)
	c.Left = anim.NewProperty(math.NaN())
	c.Right = anim.NewProperty(math.NaN())
	c.Bottom = anim.NewProperty(math.NaN())
	c.Top = anim.NewProperty(math.NaN())
	c.OriginX = anim.NewProperty(0.5)
	c.OriginY = anim.NewProperty(0.5)
	c.Width = anim.NewProperty(0.0)
	c.Height = anim.NewProperty(0.0)
	c.Near = anim.NewProperty(0.1)
	c.Far = anim.NewProperty(100.0)
	c.OrthographicGrid = anim.NewProperty(32.0)
	c.DepthOfField = anim.NewProperty(0.5)
	c.DepthFalloff = anim.NewProperty(10.0)
	c.FocalDistance = anim.NewDriven(func() float64 {
		fp, ok := c.FocalPoint()
		if !ok {
			return 0
		}
		return c.WorldLocation.Get().Sub(fp).Len()
	})
	c.LookAt = anim.NewTripple(0, 0, 0)
	c.LookAt.OnSet(func() {
		c.focus = focusPoint
		c.target = 0
	})
	c.UpVector = anim.NewTripple(0, 0, 1)
	c.viewMatrix = anim.NewDriven(c.computeView)
	c.focus = focusPoint
	c.projection = mgl64.Ident4()

	c.Shader.Bind("view_matrix", c.viewMatrix)
	c.cache.Add(c.FOV, c.Left, c.Right, c.Bottom, c.Top, c.OriginX, c.OriginY,
		c.Width, c.Height, c.Near, c.Far, c.OrthographicGrid, c.FocalDistance,
		c.DepthOfField, c.DepthFalloff, c.LookAt, c.UpVector, c.viewMatrix)
}

// ProjectionMode returns the projection mode of the camera.
func (c *Camera) ProjectionMode() ProjectionMode {
	return c.mode
}

// SetPerspective switches to perspective projection.
func (c *Camera) SetPerspective() {
	c.mode = Perspective
	c.MarkDirty()
}

// SetOrthographic switches to orthographic projection.
func (c *Camera) SetOrthographic() {
	c.mode = Orthographic
	c.MarkDirty()
}

// MarkDirty forgets the last projection parameters, so that the next
// [Camera.UpdateCamera] recomputes the projection matrix.
func (c *Camera) MarkDirty() {
	c.hasLast = false
}

// ProjectionDirty returns whether the projection matrix changed since
// [Camera.ClearProjectionDirty] was last called.
func (c *Camera) ProjectionDirty() bool {
	return c.dirty
}

// ClearProjectionDirty acknowledges the current projection matrix.
func (c *Camera) ClearProjectionDirty() {
	c.dirty = false
}

// ProjectionMatrix returns the projection matrix computed by the last
// [Camera.UpdateCamera].
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// ViewMatrix returns the view matrix, memoized once per tick.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.viewMatrix.Get()
}

// ViewportSize returns the viewport size for a render target of the
// given size: Width and Height, or the target size where they are 0.
func (c *Camera) ViewportSize(width, height int) (w, h float64) {
	w, h = c.Width.Get(), c.Height.Get()
	if w == 0 {
		w = float64(width)
	}
	if h == 0 {
		h = float64(height)
	}
	return
}

// OrthoExtents returns the orthographic extents for a viewport of the
// given size, before division by OrthographicGrid. If any of Left,
// Right, Bottom, Top is unset, all four are derived so that the
// logical origin falls at OriginX, OriginY of the viewport.
func (c *Camera) OrthoExtents(width, height float64) (left, right, bottom, top float64) {
	left, right, bottom, top = c.Left.Get(), c.Right.Get(), c.Bottom.Get(), c.Top.Get()
	if math.IsNaN(left) || math.IsNaN(right) || math.IsNaN(bottom) || math.IsNaN(top) {
		left = mix(0, -width, c.OriginX.Get())
		bottom = mix(0, -height, c.OriginY.Get())
		right = width + left
		top = height + bottom
	}
	return
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// UpdateCamera recomputes the projection matrix for a render target of
// the given size, but only if a parameter that it depends on changed
// since the last call. It returns whether the matrix was recomputed,
// in which case [Camera.ProjectionDirty] becomes true.
func (c *Camera) UpdateCamera(width, height int) bool {
	p := cameraParams{mode: c.mode, near: c.Near.Get(), far: c.Far.Get()}
	p.width, p.height = c.ViewportSize(width, height)
	if c.mode == Perspective {
		p.fov = c.FOV.Get()
	} else {
		p.left, p.right, p.bottom, p.top = c.OrthoExtents(p.width, p.height)
		p.grid = c.OrthographicGrid.Get()
	}
	if c.hasLast && p == c.last {
		return false
	}
	c.last = p
	c.hasLast = true
	if p.mode == Perspective {
		aspect := 1.0
		if p.height != 0 {
			aspect = p.width / p.height
		}
		c.projection = mgl64.Perspective(mgl64.DegToRad(p.fov), aspect, p.near, p.far)
	} else {
		g := p.grid
		c.projection = mgl64.Ortho(p.left/g, p.right/g, p.bottom/g, p.top/g, p.near, p.far)
	}
	c.dirty = true
	return true
}

// OrthographicScale is the orthographic_scale shader variable:
// 32 over the grid in orthographic mode, and 1 otherwise.
func (c *Camera) OrthographicScale() float64 {
	if c.mode != Orthographic {
		return 1
	}
	return 32 / c.OrthographicGrid.Get()
}

// UploadView implements [View].
func (c *Camera) UploadView(prog Program) {
	uploadView(prog, c, c.ProjectionMatrix(), c.ViewMatrix())
}

func uploadView(prog Program, c *Camera, proj, view mgl64.Mat4) {
	set := func(name string, v any) {
		if prog.HasVar(name) {
			prog.SetVar(name, v)
		}
	}
	set("projection_matrix", proj)
	set("view_matrix", view)
	set("focal_distance", c.FocalDistance.Get())
	set("depth_of_field", c.DepthOfField.Get())
	set("depth_falloff", c.DepthFalloff.Get())
	set("orthographic_scale", c.OrthographicScale())
}

// SetLookAtNode makes the world location of n the focal point.
func (c *Camera) SetLookAtNode(n Node) {
	c.focus = focusNode
	c.target = n.AsNode().id
	c.viewMatrix.Invalidate()
	c.FocalDistance.Invalidate()
}

// FocalPoint returns the world position the camera looks at,
// and false if it has none.
func (c *Camera) FocalPoint() (mgl64.Vec3, bool) {
	switch c.focus {
	case focusPoint:
		return c.LookAt.Get(), true
	case focusNode:
		if n := Lookup(c.target); n != nil {
			return n.AsNode().WorldLocation.Get(), true
		}
	}
	return mgl64.Vec3{}, false
}

// HasFocalPoint returns whether the view matrix is a look-at view.
func (c *Camera) HasFocalPoint() bool {
	_, ok := c.FocalPoint()
	return ok
}

// Unfocus removes the focal point so that the camera can be oriented
// manually. The current view orientation is adopted as the quaternion.
func (c *Camera) Unfocus() {
	view := c.ViewMatrix()
	c.focus = focusNone
	c.target = 0
	c.Quaternion.Set(QuatVec4(mgl64.Mat4ToQuat(view)))
	c.viewMatrix.Invalidate()
	c.FocalDistance.Invalidate()
}

func (c *Camera) computeView() mgl64.Mat4 {
	target, ok := c.FocalPoint()
	if !ok {
		return c.WorldMatrix.Get()
	}
	up := c.UpVector.Get()
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 0, 1}
	}
	return mgl64.LookAtV(c.WorldLocation.Get(), target, up)
}

// Activate makes this the active camera of its scene. The previous
// camera receives an [events.Inactive] event first. It does nothing
// if the camera is not part of a scene.
func (c *Camera) Activate() {
	sc := c.GraphRoot()
	if sc == nil || sc.camera == c {
		return
	}
	if prev := sc.camera; prev != nil {
		prev.Dispatch(events.Inactive.String(), c)
	}
	sc.camera = c
}

// IsActive returns whether this is the active camera of its scene.
func (c *Camera) IsActive() bool {
	sc := c.GraphRoot()
	return sc != nil && sc.camera == c
}

// Orbit moves the camera around its focal point by the given angles in
// degrees: delX about the up vector and delY about the camera's right
// vector, keeping the same distance. The camera is assumed to sit
// directly in the scene, so that its location is in world space.
func (c *Camera) Orbit(delX, delY float64) {
	target, ok := c.FocalPoint()
	if !ok {
		return
	}
	ctdir := c.Location.Get().Sub(target)
	if ctdir.Len() == 0 {
		return
	}
	up := c.UpVector.Get()
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 0, 1}
	}
	up = up.Normalize()
	right := up.Cross(ctdir.Normalize())
	if right.Len() == 0 {
		right = mgl64.Vec3{1, 0, 0}
	}
	qx := mgl64.QuatRotate(mgl64.DegToRad(delX), up)
	qy := mgl64.QuatRotate(mgl64.DegToRad(delY), right.Normalize())
	c.Location.Set(target.Add(qy.Rotate(qx.Rotate(ctdir))))
}

// Pan moves the camera and its focal point together along the
// horizontal and vertical axes of the current view.
func (c *Camera) Pan(delX, delY float64) {
	view := c.ViewMatrix()
	right := view.Row(0).Vec3()
	up := view.Row(1).Vec3()
	td := right.Mul(delX).Add(up.Mul(delY))
	c.Location.Set(c.Location.Get().Add(td))
	if c.focus == focusPoint {
		c.LookAt.Set(c.LookAt.Get().Add(td))
	}
}

// Zoom moves the camera toward its focal point by the given fraction
// of the current distance. Negative values move away.
func (c *Camera) Zoom(frac float64) {
	target, ok := c.FocalPoint()
	if !ok {
		return
	}
	ctdir := c.Location.Get().Sub(target)
	c.Location.Set(target.Add(ctdir.Mul(1 - frac)))
}
