// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Draw draws the scene through its active camera with [Scene.Renderer].
// Nodes for which exclude returns true are skipped; exclude may be nil.
// It ticks first if the clock advanced since the last tick, and returns
// [ErrNoCamera] if there is no active camera.
func (sc *Scene) Draw(exclude func(n Node) bool) error {
	return sc.DrawView(nil, exclude)
}

// DrawView is [Scene.Draw] through the given view, such as one
// eye of a [StereoRig]. A nil view means the active camera.
func (sc *Scene) DrawView(view View, exclude func(n Node) bool) error {
	if sc.Renderer == nil {
		return ErrNoRenderer
	}
	return sc.DrawTo(sc.Renderer, view, exclude)
}

// DrawTo is [Scene.DrawView] with the given renderer, which is used for
// off screen passes such as picking.
//
// Solid drawables are drawn first, bucket by bucket in the order the
// asset hints were first seen, each bucket in flat cache order. Alpha
// drawables are then sorted farthest first by the post projection depth
// of their local origin, and drawn with depth writes disabled.
func (sc *Scene) DrawTo(r Renderer, view View, exclude func(n Node) bool) error {
	sc.Tick()
	if view == nil {
		if sc.camera == nil {
			return ErrNoCamera
		}
		view = sc.camera
	}
	prog := r.Program()
	if prog == nil {
		return ErrNoProgram
	}
	view.UpdateCamera(r.Size())
	view.UploadView(prog)

	cur := prog
	draw := func(n Node) {
		if exclude != nil && exclude(n) {
			return
		}
		nb := n.AsNode()
		if !nb.Drawable || nb.DrawFunc == nil || !nb.IsVisible() {
			return
		}
		if nb.BindFunc != nil {
			nb.BindFunc(r)
		}
		p := r.Program()
		if p == nil {
			return
		}
		if p != cur {
			view.UploadView(p)
			cur = p
		}
		nb.uploadShader(p)
		nb.DrawFunc(r)
	}

	for _, kv := range sc.states.Order {
		for _, n := range kv.Value {
			draw(n)
		}
	}
	if len(sc.alpha) == 0 {
		return nil
	}
	r.SetDepthMask(false)
	for _, n := range sc.DepthOrder(view) {
		draw(n)
	}
	r.SetDepthMask(true)
	return nil
}

// uploadShader uploads the shader variables that prog declares.
// Nil values are skipped.
func (nb *NodeBase) uploadShader(prog Program) {
	for _, name := range prog.VarNames() {
		slot := nb.Shader.Slot(name)
		if slot == nil {
			continue
		}
		v := slot.Any()
		if v == nil {
			continue
		}
		if prog.IsSampler(name) {
			prog.SetSampler(name, v)
		} else {
			prog.SetVar(name, v)
		}
	}
}

type depthItem struct {
	node  Node
	depth float64
}

// sortFarthestFirst sorts items by descending depth.
// Items at equal depth keep their order.
func sortFarthestFirst(items []depthItem) {
	slices.SortStableFunc(items, func(a, b depthItem) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// Depth returns the post projection depth of the local origin of n
// through view, on the scene's [DepthAxis].
func (sc *Scene) Depth(view View, n Node) float64 {
	screen := view.ProjectionMatrix().Mul4(view.ViewMatrix())
	return sc.depth(screen, n)
}

func (sc *Scene) depth(screen mgl64.Mat4, n Node) float64 {
	p := mgl64.TransformCoordinate(mgl64.Vec3{}, screen.Mul4(n.AsNode().WorldMatrix.Get()))
	if sc.DepthAxis == DepthY {
		return p[1]
	}
	return p[2]
}

// DepthOrder returns the alpha bucket sorted farthest first for view.
func (sc *Scene) DepthOrder(view View) []Node {
	screen := view.ProjectionMatrix().Mul4(view.ViewMatrix())
	items := make([]depthItem, len(sc.alpha))
	for i, n := range sc.alpha {
		items[i] = depthItem{node: n, depth: sc.depth(screen, n)}
	}
	sortFarthestFirst(items)
	order := make([]Node, len(items))
	for i, it := range items {
		order[i] = it.node
	}
	return order
}
