// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package headless implements the graphics collaborators of package xyz
// in software: a [Renderer] that rasterizes flat quads into an image,
// supports picking readback, and records every draw call, and a
// [Library] of quad assets. It is used for tests and by tools that run
// scenes without a GPU.
package headless

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
	"mgrl.dev/core/xyz"
)

// DrawCall is the record of one draw.
type DrawCall struct {

	// Label names what was drawn.
	Label string

	// DepthMask is whether depth writes were enabled.
	DepthMask bool

	// Picking is whether the draw was part of a picking pass.
	Picking bool
}

// Renderer is a software [xyz.Renderer] and [xyz.PickTarget].
type Renderer struct {

	// Calls records every draw, in order, until [Renderer.Reset].
	Calls []DrawCall

	width, height int
	prog          *Program
	depthMask     bool
	frame         *image.RGBA
	picking       bool
	pickMode      xyz.PickMode
}

// NewRenderer returns a new renderer of the given size, with
// [NewDefaultProgram] bound.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:     width,
		height:    height,
		prog:      NewDefaultProgram(),
		depthMask: true,
		frame:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Program implements [xyz.Renderer].
func (r *Renderer) Program() xyz.Program {
	if r.prog == nil {
		return nil
	}
	return r.prog
}

// CurrentProgram returns the bound program as its concrete type.
func (r *Renderer) CurrentProgram() *Program {
	return r.prog
}

// UseProgram binds the given program.
func (r *Renderer) UseProgram(pr *Program) {
	r.prog = pr
}

// SetDepthMask implements [xyz.Renderer].
func (r *Renderer) SetDepthMask(on bool) {
	r.depthMask = on
}

// DepthMask returns whether depth writes are enabled.
func (r *Renderer) DepthMask() bool {
	return r.depthMask
}

// Size implements [xyz.Renderer].
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Frame returns the color buffer.
func (r *Renderer) Frame() *image.RGBA {
	return r.frame
}

// Clear fills the color buffer with transparent black.
func (r *Renderer) Clear() {
	draw.Draw(r.frame, r.frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Reset clears the color buffer and the recorded calls.
func (r *Renderer) Reset() {
	r.Clear()
	r.Calls = nil
}

// Labels returns the labels of the recorded calls that match picking.
func (r *Renderer) Labels(picking bool) []string {
	var ls []string
	for _, c := range r.Calls {
		if c.Picking == picking {
			ls = append(ls, c.Label)
		}
	}
	return ls
}

// BeginPick implements [xyz.PickTarget].
func (r *Renderer) BeginPick(mode xyz.PickMode) {
	r.picking = true
	r.pickMode = mode
	r.Clear()
}

// Pick implements [xyz.PickTarget].
func (r *Renderer) Pick(x, y float64) color.RGBA {
	px := min(int(x*float64(r.width)), r.width-1)
	py := min(int(y*float64(r.height)), r.height-1)
	return r.frame.RGBAAt(max(px, 0), max(py, 0))
}

// EndPick implements [xyz.PickTarget].
func (r *Renderer) EndPick() {
	r.picking = false
}

// DrawQuad rasterizes the rectangle from lo to hi in the local z = 0
// plane, transformed by the world, view and projection matrices last
// uploaded to the bound program. The color is the color variable in
// normal passes, the object_index in object picking passes, and the
// position within the rectangle in location picking passes.
func (r *Renderer) DrawQuad(label string, lo, hi mgl64.Vec2) {
	r.Calls = append(r.Calls, DrawCall{Label: label, DepthMask: r.depthMask, Picking: r.picking})
	if r.prog == nil {
		return
	}
	mvp := r.mat4("projection_matrix").Mul4(r.mat4("view_matrix")).Mul4(r.mat4("world_matrix"))
	corners := [4]mgl64.Vec3{{lo[0], lo[1], 0}, {hi[0], lo[1], 0}, {hi[0], hi[1], 0}, {lo[0], hi[1], 0}}

	ras := vector.NewRasterizer(r.width, r.height)
	for i, c := range corners {
		p := mgl64.TransformCoordinate(c, mvp)
		px := float32((p[0] + 1) / 2 * float64(r.width))
		py := float32((1 - p[1]) / 2 * float64(r.height))
		if i == 0 {
			ras.MoveTo(px, py)
		} else {
			ras.LineTo(px, py)
		}
	}
	ras.ClosePath()

	var src image.Image
	switch {
	case r.picking && r.pickMode == xyz.PickObject:
		src = image.NewUniform(r.indexColor())
	case r.picking && r.pickMode == xyz.PickLocation:
		src = newLocationImage(mvp, lo, hi, r.width, r.height)
	default:
		src = image.NewUniform(r.shadeColor())
	}
	if !r.picking {
		ras.Draw(r.frame, r.frame.Bounds(), src, image.Point{})
		return
	}
	// picking colors are ids, so edges must not blend with what is below
	mask := image.NewAlpha(r.frame.Bounds())
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
	draw.DrawMask(r.frame, r.frame.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

func (r *Renderer) mat4(name string) mgl64.Mat4 {
	if m, ok := r.prog.Var(name).(mgl64.Mat4); ok {
		return m
	}
	return mgl64.Ident4()
}

func (r *Renderer) indexColor() color.RGBA {
	v, _ := r.prog.Var("object_index").(mgl64.Vec3)
	return color.RGBA{unit8(v[0]), unit8(v[1]), unit8(v[2]), 255}
}

func (r *Renderer) shadeColor() color.RGBA {
	c := mgl64.Vec4{1, 1, 1, 1}
	if v, ok := r.prog.Var("color").(mgl64.Vec4); ok {
		c = v
	}
	if a, ok := r.prog.Var("alpha").(float64); ok {
		c[3] *= a
	}
	// premultiplied
	return color.RGBA{unit8(c[0] * c[3]), unit8(c[1] * c[3]), unit8(c[2] * c[3]), unit8(c[3])}
}

// unit8 converts a [0, 1] channel to a byte.
func unit8(v float64) uint8 {
	return uint8(math.Round(mgl64.Clamp(v, 0, 1) * 255))
}

// locationImage colors each pixel by the position, relative to the
// rectangle from lo to hi, of the point of the local z = 0 plane that
// projects onto it.
type locationImage struct {
	inv           mgl64.Mat3
	lo, size      mgl64.Vec2
	width, height int
}

func newLocationImage(mvp mgl64.Mat4, lo, hi mgl64.Vec2, width, height int) *locationImage {
	// homography from (u, v, 1) on the z = 0 plane to clip (x, y, w)
	h := mgl64.Mat3FromRows(
		mgl64.Vec3{mvp.At(0, 0), mvp.At(0, 1), mvp.At(0, 3)},
		mgl64.Vec3{mvp.At(1, 0), mvp.At(1, 1), mvp.At(1, 3)},
		mgl64.Vec3{mvp.At(3, 0), mvp.At(3, 1), mvp.At(3, 3)},
	)
	return &locationImage{inv: h.Inv(), lo: lo, size: hi.Sub(lo), width: width, height: height}
}

func (li *locationImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (li *locationImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, li.width, li.height)
}

func (li *locationImage) At(x, y int) color.Color {
	nx := (float64(x)+0.5)/float64(li.width)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(li.height)*2
	p := li.inv.Mul3x1(mgl64.Vec3{nx, ny, 1})
	if p[2] == 0 {
		return color.RGBA{}
	}
	u, v := p[0]/p[2], p[1]/p[2]
	var ru, rv float64
	if li.size[0] != 0 {
		ru = (u - li.lo[0]) / li.size[0]
	}
	if li.size[1] != 0 {
		rv = (v - li.lo[1]) / li.size[1]
	}
	return color.RGBA{unit8(ru), unit8(rv), 0, 255}
}
