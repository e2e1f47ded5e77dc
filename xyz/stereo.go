// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/anim"
)

// StereoRig derives left and right eye views from a center [Camera],
// offset along the view X axis, for stereoscopic rendering.
// Each eye is a [View] that a scene can be drawn through with
// [Scene.DrawView].
type StereoRig struct {

	// Center is the camera that the eyes are derived from.
	Center *Camera

	// EyeDistance is the interpupillary distance in millimeters.
	EyeDistance *anim.Property[float64]

	// UnitConversion converts millimeters to scene units.
	// The default of 0.001 makes scene units meters.
	UnitConversion *anim.Property[float64]

	left, right *Eye
}

// NewStereoRig returns a new rig around the given center camera.
// The eye view matrices are cleared with the center camera's cache.
func NewStereoRig(center *Camera) *StereoRig {
	sr := &StereoRig{Center: center}
	sr.EyeDistance = anim.NewProperty(62.3)
	sr.UnitConversion = anim.NewProperty(0.001)
	sr.left = sr.newEye(-1)
	sr.right = sr.newEye(1)
	center.cache.Add(sr.EyeDistance, sr.UnitConversion, sr.left.view, sr.right.view)
	return sr
}

func (sr *StereoRig) newEye(side float64) *Eye {
	e := &Eye{rig: sr, side: side}
	e.view = anim.NewDriven(func() mgl64.Mat4 {
		return mgl64.Translate3D(e.Offset(), 0, 0).Mul4(sr.Center.ViewMatrix())
	})
	return e
}

// Left returns the left eye.
func (sr *StereoRig) Left() *Eye { return sr.left }

// Right returns the right eye.
func (sr *StereoRig) Right() *Eye { return sr.right }

// Eye is one view of a [StereoRig]. It shares the projection
// of the center camera.
type Eye struct {
	rig  *StereoRig
	side float64
	view *anim.Property[mgl64.Mat4]
}

// Offset returns the signed distance of the eye from the center,
// in scene units.
func (e *Eye) Offset() float64 {
	return e.side * e.rig.EyeDistance.Get() * 0.5 * e.rig.UnitConversion.Get()
}

// UpdateCamera implements [View].
func (e *Eye) UpdateCamera(width, height int) bool {
	return e.rig.Center.UpdateCamera(width, height)
}

// ProjectionMatrix implements [View].
func (e *Eye) ProjectionMatrix() mgl64.Mat4 {
	return e.rig.Center.ProjectionMatrix()
}

// ViewMatrix implements [View].
func (e *Eye) ViewMatrix() mgl64.Mat4 {
	return e.view.Get()
}

// UploadView implements [View].
func (e *Eye) UploadView(prog Program) {
	uploadView(prog, e.rig.Center, e.ProjectionMatrix(), e.ViewMatrix())
}
