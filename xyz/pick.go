// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/events"
)

// PickInfo is the result of picking one pointer event in one scene.
// It is the data passed to the handlers of pointer events.
type PickInfo struct {

	// Picked is the node actually under the pointer, or nil.
	Picked Node

	// Selected is the nearest selectable node among Picked and its
	// ancestors, which receives the event, or nil.
	Selected Node

	// LocalLocation is the hit position in the local coordinates of
	// Picked, valid if HasLocation.
	LocalLocation mgl64.Vec3

	// WorldLocation is the hit position in world coordinates,
	// valid if HasLocation.
	WorldLocation mgl64.Vec3

	// HasLocation is whether the location pass ran for this pick.
	HasLocation bool

	// Trigger is the pointer event that was picked.
	Trigger events.Pointer
}

// PickedNode returns the node of the flat cache encoded by the given
// picking color, or nil for black or an unknown id.
func (sc *Scene) PickedNode(c color.RGBA) Node {
	id := ColorIndex(c)
	if id <= 0 || id > len(sc.flat) {
		return nil
	}
	return sc.flat[id-1]
}

func excludeFromPicking(n Node) bool {
	return n.AsNode().PickExclude
}

// pickPass renders the scene into target in the given mode
// and reads back the color at x, y.
func (sc *Scene) pickPass(target PickTarget, mode PickMode, x, y float64) (color.RGBA, error) {
	target.BeginPick(mode)
	defer target.EndPick()
	if err := sc.DrawTo(target, nil, excludeFromPicking); err != nil {
		return color.RGBA{}, err
	}
	return target.Pick(x, y), nil
}

// Pick resolves the node under the given pointer event by rendering
// the scene into target. Events outside of the unit square, and
// scenes that cannot be drawn, yield an info with no hit.
func (sc *Scene) Pick(target PickTarget, ev events.Pointer) *PickInfo {
	info := &PickInfo{Trigger: ev}
	if !ev.InBounds() {
		slog.Debug("xyz.Scene: pick out of bounds", "scene", sc.Name, "x", ev.X, "y", ev.Y)
		return info
	}
	c, err := sc.pickPass(target, PickObject, ev.X, ev.Y)
	if errors.Log(err) != nil {
		return info
	}
	info.Picked = sc.PickedNode(c)
	if info.Picked == nil {
		return info
	}
	pb := info.Picked.AsNode()
	info.Selected = pb.FindSelection()
	if sc.Picking.SkipLocationInfo {
		return info
	}
	lc, err := sc.pickPass(target, PickLocation, ev.X, ev.Y)
	if errors.Log(err) != nil {
		return info
	}
	rel := mgl64.Vec3{float64(lc.R) / 255, float64(lc.G) / 255, float64(lc.B) / 255}
	b := pb.Bounds
	info.LocalLocation = mgl64.Vec3{
		rel[0]*b.Size[0] + b.Min[0],
		rel[1]*b.Size[1] + b.Min[1],
		rel[2]*b.Size[2] + b.Min[2],
	}
	info.WorldLocation = mgl64.TransformCoordinate(info.LocalLocation, pb.WorldMatrix.Get())
	info.HasLocation = true
	return info
}

// DispatchPick sends the pointer event of info to the selected node, if
// any, and then to the scene. A mouse up on the node of the preceding
// mouse down also sends a click, and a second click on the same node
// within the double click window also sends a double click.
func (sc *Scene) DispatchPick(info *PickInfo) {
	typ := info.Trigger.Type
	sel := info.Selected
	if sel != nil {
		sel.AsNode().Dispatch(typ.String(), info)
	}
	sc.Dispatch(typ.String(), info)
	if sel == nil {
		return
	}
	t := info.Trigger.Time
	cs := &sc.clicks
	switch typ {
	case events.MouseDown:
		cs.down = sel
		cs.downTime = t
	case events.MouseUp:
		inTime := sc.Picking.ClickWindow <= 0 || t.Sub(cs.downTime) <= sc.Picking.ClickWindow
		if cs.down == sel && inTime {
			sc.sendPick(events.Click, info)
			if cs.lastClick == sel && t.Sub(cs.lastClickTime) <= sc.Picking.DoubleClickWindow {
				cs.lastClick = nil
				sc.sendPick(events.DoubleClick, info)
			} else {
				cs.lastClick = sel
				cs.lastClickTime = t
			}
		} else {
			cs.lastClick = nil
		}
		cs.down = nil
	}
}

func (sc *Scene) sendPick(typ events.Types, info *PickInfo) {
	info.Selected.AsNode().Dispatch(typ.String(), info)
	sc.Dispatch(typ.String(), info)
}

// Picker turns pointer events into picking passes. Input goroutines
// call [Picker.Request]; the render loop calls [Picker.Pass] once per
// frame. Discrete events are queued in order. Pointer moves coalesce,
// so that only the most recent pending move is picked.
type Picker struct {

	// Target is the off screen target that picking passes render to.
	Target PickTarget

	// Scenes restricts picking to the given scenes.
	// If empty, all live scenes are used.
	Scenes []*Scene

	queue events.Queue
	move  events.Latest
}

// Request adds a pointer event to be picked.
func (pk *Picker) Request(ev events.Pointer) {
	if ev.Type.IsDiscrete() {
		pk.queue.Send(ev)
		return
	}
	pk.move.Store(ev)
}

// Pending returns whether any request is waiting.
func (pk *Picker) Pending() bool {
	return pk.queue.Len() > 0 || pk.move.Pending()
}

// Pass picks one request: the next discrete event, or else the
// pending move. Each scene with picking enabled is picked and its
// events dispatched. It returns false if there was no request.
func (pk *Picker) Pass() bool {
	ev, ok := pk.queue.Next()
	if !ok {
		ev, ok = pk.move.Take()
	}
	if !ok {
		return false
	}
	scenes := pk.Scenes
	if len(scenes) == 0 {
		scenes = Roots()
	}
	isMove := ev.Type == events.MouseMove
	for _, sc := range scenes {
		if !sc.Picking.Enabled || (isMove && sc.Picking.SkipOnMoveEvent) {
			continue
		}
		sc.DispatchPick(sc.Pick(pk.Target, ev))
	}
	return true
}

// Flush runs passes until no request is pending, and returns the
// number of passes run.
func (pk *Picker) Flush() int {
	n := 0
	for pk.Pass() {
		n++
	}
	return n
}
