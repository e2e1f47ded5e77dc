// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/config"
	"mgrl.dev/core/xyz"
	"mgrl.dev/core/xyz/headless"
)

// demo is a small scene of quads drawn by a headless renderer:
// a floor, a selectable hand of cards and three transparent panes,
// on a table turned up to face a camera on the -y axis.
type demo struct {
	scene    *xyz.Scene
	renderer *headless.Renderer
	clock    *xyz.FrameClock
	camera   *xyz.Camera
	picker   *xyz.Picker
}

func newDemo(cfg *config.Config) *demo {
	d := &demo{}
	d.renderer = headless.NewRenderer(cfg.Render.Width, cfg.Render.Height)
	d.clock = &xyz.FrameClock{}
	d.scene = xyz.NewScene("demo")
	d.scene.Renderer = d.renderer
	d.scene.Clock = d.clock
	cfg.Apply(d.scene)

	d.camera = xyz.NewCamera("camera")
	cfg.ApplyCamera(d.camera)

	lib := headless.NewLibrary()
	lib.Register("floor", &headless.Quad{Name: "floor", Min: mgl64.Vec2{-4, -4}, Max: mgl64.Vec2{4, 4}, Color: mgl64.Vec4{0.3, 0.3, 0.3, 1}})
	lib.Register("card", &headless.Quad{Name: "card", Min: mgl64.Vec2{-1, -1.5}, Max: mgl64.Vec2{1, 1.5}, Color: mgl64.Vec4{0.9, 0.9, 0.8, 1}})
	lib.Register("pane", &headless.Quad{Name: "pane", Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Color: mgl64.Vec4{0.2, 0.4, 1, 1}, Sort: xyz.Alpha})

	floor := errors.Must1(xyz.Instance(lib, "floor"))
	hand := xyz.NewNode("hand")
	hand.Selectable = true
	for i := range 3 {
		card := errors.Must1(xyz.Instance(lib, "card")).AsNode()
		card.Location.Set(mgl64.Vec3{float64(i-1) * 2.5, 0, 0.1})
		hand.Add(card)
	}
	table := xyz.NewNode("table")
	table.Rotation.Set(mgl64.Vec3{90, 0, 0})
	table.Add(floor, hand)
	for i, z := range []float64{1, 3, 2} {
		pane := errors.Must1(xyz.Instance(lib, "pane")).AsNode()
		pane.Name = fmt.Sprintf("pane%d", i+1)
		pane.Location.Set(mgl64.Vec3{float64(i) - 1, 0, z})
		pane.Alpha().Set(0.5)
		pane.PickExclude = true
		table.Add(pane)
	}
	d.scene.Add(d.camera, table)
	d.picker = &xyz.Picker{Target: d.renderer, Scenes: []*xyz.Scene{d.scene}}
	return d
}

// apply applies a reloaded config to the scene and camera.
// Picking stays enabled, and the render target keeps its size.
func (d *demo) apply(cfg *config.Config) {
	cfg.Apply(d.scene)
	d.scene.Picking.Enabled = true
	cfg.ApplyCamera(d.camera)
}

// frame advances the clock, runs pending picks and draws.
func (d *demo) frame() error {
	d.clock.Advance()
	d.picker.Flush()
	d.renderer.Reset()
	return d.scene.Draw(nil)
}
