// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"
	"slices"
	"time"

	"mgrl.dev/core/base/ordmap"
)

// DoubleClickWindow is the default maximum time between two clicks
// on the same node for them to make a double click.
const DoubleClickWindow = 500 * time.Millisecond

// Picking configures how a scene takes part in picking passes.
type Picking struct {

	// Enabled scenes are rendered in picking passes.
	Enabled bool

	// SkipLocationInfo skips the second pass that recovers the
	// position of a hit within the picked node.
	SkipLocationInfo bool

	// SkipOnMoveEvent skips picking for pointer moves.
	SkipOnMoveEvent bool

	// ClickWindow is the maximum time between a mouse down and the
	// mouse up that makes a click. 0 means no limit.
	ClickWindow time.Duration

	// DoubleClickWindow is the maximum time between two clicks
	// on the same node that make a double click.
	DoubleClickWindow time.Duration
}

// Defaults sets the default picking configuration: disabled,
// without location info or move events.
func (pk *Picking) Defaults() {
	pk.Enabled = false
	pk.SkipLocationInfo = true
	pk.SkipOnMoveEvent = true
	pk.ClickWindow = 0
	pk.DoubleClickWindow = DoubleClickWindow
}

// clickState tracks pointer events between picking passes, to
// synthesize clicks and double clicks.
type clickState struct {
	down          Node
	downTime      time.Time
	lastClick     Node
	lastClickTime time.Time
}

// Scene is the root of a scene graph. It keeps a flat cache of all the
// nodes under it, updated as the topology changes, and runs the per
// frame cycle: [Scene.Tick] resolves drivers, matrices and draw buckets
// once per frame, and [Scene.Draw] can then be called any number of
// times, for multi-pass rendering.
type Scene struct {
	NodeBase

	// Renderer is the graphics binding layer that [Scene.Draw] uses.
	Renderer Renderer

	// Clock decides when a new tick is needed.
	Clock Clock

	// DepthAxis is the post projection axis that orders the alpha pass.
	DepthAxis DepthAxis

	// Picking configures picking passes for this scene.
	Picking Picking

	camera  *Camera
	flat    []Node
	lights  []Node
	tracked map[NodeID]struct{}
	states  ordmap.Map[string, []Node]
	alpha   []Node
	frame   int64
	ticked  bool
	clicks  clickState
}

// NewScene returns a new scene, registered as a graph root.
func NewScene(name string) *Scene {
	sc := &Scene{}
	sc.Init(sc, name)
	sc.Clock = &FrameClock{}
	sc.Picking.Defaults()
	sc.tracked = map[NodeID]struct{}{}
	sc.rec().root = sc.id
	index.addRoot(sc)
	return sc
}

// release is called when the scene is destroyed.
func (sc *Scene) release() {
	sc.flat = nil
	sc.lights = nil
	clear(sc.tracked)
	sc.states.Reset()
	sc.alpha = nil
	sc.camera = nil
	sc.clicks = clickState{}
	index.deleteRoot(sc)
}

// track adds n and its descendants to the flat cache, in pre-order.
func (sc *Scene) track(n Node) {
	n.AsNode().Propagate(func(d Node) {
		db := d.AsNode()
		if _, has := sc.tracked[db.id]; has {
			return
		}
		sc.tracked[db.id] = struct{}{}
		if db.IsLight {
			sc.lights = append(sc.lights, d)
		} else {
			sc.flat = append(sc.flat, d)
		}
	}, false)
}

// ignore removes n and its descendants from the flat cache.
func (sc *Scene) ignore(n Node) {
	sc.untrack(n, false)
}

// untrack removes n and its descendants from the flat cache. Nodes
// that are moving within the scene keep the active camera and the
// pending click state.
func (sc *Scene) untrack(n Node, moving bool) {
	n.AsNode().Propagate(func(d Node) {
		db := d.AsNode()
		if _, has := sc.tracked[db.id]; !has {
			return
		}
		delete(sc.tracked, db.id)
		match := func(o Node) bool { return o.AsNode() == db }
		sc.lights = slices.DeleteFunc(sc.lights, match)
		sc.flat = slices.DeleteFunc(sc.flat, match)
		if moving {
			return
		}
		if sc.camera != nil && sc.camera.id == db.id {
			sc.camera = nil
		}
		if sc.clicks.down == d {
			sc.clicks.down = nil
		}
		if sc.clicks.lastClick == d {
			sc.clicks.lastClick = nil
		}
	}, false)
}

// Camera returns the active camera, or nil.
func (sc *Scene) Camera() *Camera {
	return sc.camera
}

// Flat returns a copy of the flat cache of non-light nodes, in the
// order that picking ids are assigned.
func (sc *Scene) Flat() []Node {
	return slices.Clone(sc.flat)
}

// Lights returns a copy of the light nodes in the scene.
func (sc *Scene) Lights() []Node {
	return slices.Clone(sc.lights)
}

// StateHints returns the asset hints of the state buckets, in draw order.
func (sc *Scene) StateHints() []string {
	return sc.states.Keys()
}

// StateBucket returns the solid drawables with the given asset hint,
// as of the last tick.
func (sc *Scene) StateBucket(hint string) []Node {
	return slices.Clone(sc.states.ValueByKey(hint))
}

// AlphaBucket returns the alpha drawables as of the last tick,
// in flat cache order.
func (sc *Scene) AlphaBucket() []Node {
	return slices.Clone(sc.alpha)
}

// Frame returns the clock frame of the last tick.
func (sc *Scene) Frame() int64 {
	return sc.frame
}

// Stale returns whether the clock has advanced since the last tick.
func (sc *Scene) Stale() bool {
	return !sc.ticked || sc.Clock.Frame() != sc.frame
}

// Tick runs the once per frame update. It does nothing and returns
// false if the scene was already ticked for the current clock frame.
// Otherwise it activates a camera if there is none, clears the caches
// of all nodes (except those with manual cache invalidation), assigns
// picking ids, resolves matrices and shader variables, and rebuilds
// the draw buckets from the flat cache.
func (sc *Scene) Tick() bool {
	if !sc.Stale() {
		return false
	}
	sc.frame = sc.Clock.Frame()
	sc.ticked = true

	if sc.camera == nil {
		sc.activateCamera()
	}
	sc.ClearCache()
	for _, n := range sc.lights {
		n.AsNode().ClearCache()
	}
	for _, n := range sc.flat {
		n.AsNode().ClearCache()
	}

	sc.alpha = nil
	sc.states.Reset()
	for i, n := range sc.flat {
		nb := n.AsNode()
		if nb.pickIndex != i+1 {
			nb.pickIndex = i + 1
			nb.Shader.InvalidateVar("object_index")
		}
		nb.Shader.Evaluate()
		if !nb.Drawable {
			continue
		}
		if nb.sortMode == Alpha {
			sc.alpha = append(sc.alpha, n)
			continue
		}
		hint := nb.AssetHint
		if hint == "" {
			hint = DefaultAssetHint
		}
		sc.states.Update(hint, func(b *[]Node) { *b = append(*b, n) })
	}
	for _, n := range sc.lights {
		n.AsNode().Shader.Evaluate()
	}
	slog.Debug("xyz.Scene: tick", "scene", sc.Name, "frame", sc.frame,
		"nodes", len(sc.flat), "lights", len(sc.lights),
		"states", sc.states.Len(), "alpha", len(sc.alpha))
	return true
}

// activateCamera activates the first camera among the immediate
// children, or else the first camera in the flat cache.
func (sc *Scene) activateCamera() {
	for _, c := range sc.Children() {
		if cam, ok := c.(*Camera); ok {
			cam.Activate()
			return
		}
	}
	for _, n := range sc.flat {
		if cam, ok := n.(*Camera); ok {
			cam.Activate()
			return
		}
	}
}
