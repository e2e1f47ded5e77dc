// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
)

// Assets is the media system that nodes are instanced from.
// Loading and caching happen elsewhere: Access fails for a uri
// that has not been loaded yet.
type Assets interface {
	Access(uri string) (Asset, error)
}

// Asset is a loaded media handle.
type Asset interface {

	// Instance returns a new, possibly drawable, node subtree
	// configured from the asset.
	Instance() Node
}

// Instance accesses the given uri in assets and returns a new instance of it.
func Instance(assets Assets, uri string) (Node, error) {
	a, err := assets.Access(uri)
	if err != nil {
		return nil, fmt.Errorf("xyz.Instance: %w", err)
	}
	return a.Instance(), nil
}

// Program is a bound shader program, exposing its variable table.
// Implementations must be comparable (typically a pointer).
type Program interface {

	// VarNames returns the names of all variables the program declares.
	VarNames() []string

	// HasVar returns whether the program declares the named variable.
	HasVar(name string) bool

	// IsSampler returns whether the named variable is a texture sampler.
	IsSampler(name string) bool

	// SetVar uploads a uniform value.
	SetVar(name string, value any)

	// SetSampler binds a texture to a sampler variable.
	SetSampler(name string, value any)
}

// Renderer is the graphics binding layer that scenes draw through.
type Renderer interface {

	// Program returns the currently bound program, or nil.
	Program() Program

	// SetDepthMask enables or disables depth buffer writes.
	SetDepthMask(on bool)

	// Size returns the size of the render target in pixels.
	Size() (width, height int)
}

// PickMode is the kind of picking pass being rendered.
type PickMode int32

const (
	// PickObject renders each node in its object_index color.
	PickObject PickMode = iota

	// PickLocation renders each node's local position within its
	// bounds as a color.
	PickLocation
)

// PickTarget is an off screen [Renderer] that supports color readback
// for picking passes.
type PickTarget interface {
	Renderer

	// BeginPick clears the target and starts a picking pass.
	BeginPick(mode PickMode)

	// Pick reads back the color at normalized coordinates,
	// with (0, 0) at the top-left.
	Pick(x, y float64) color.RGBA

	// EndPick finishes the picking pass.
	EndPick()
}
