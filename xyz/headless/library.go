// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package headless

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/xyz"
)

// ErrNotLoaded is returned by [Library.Access] for a uri
// that has not been registered.
var ErrNotLoaded = errors.New("headless: asset not loaded")

// Quad is an asset describing a flat rectangle in the local z = 0
// plane, drawn with [Renderer.DrawQuad].
type Quad struct {

	// Name is the name given to instances.
	Name string

	// Hint is the asset hint of instances, which groups them into
	// one state bucket. If empty, the uri is used.
	Hint string

	// Min and Max are the corners of the rectangle.
	Min, Max mgl64.Vec2

	// Sort is the sort mode of instances.
	Sort xyz.SortMode

	// Color is the color shader variable of instances.
	Color mgl64.Vec4

	// Selectable is whether instances receive pointer events.
	Selectable bool

	uri string
}

// Instance implements [xyz.Asset], returning a new drawable node.
// Draw calls are labeled with the name of the node.
func (q *Quad) Instance() xyz.Node {
	n := xyz.NewNode(q.Name)
	n.Drawable = true
	n.Selectable = q.Selectable
	n.AssetHint = q.Hint
	if n.AssetHint == "" {
		n.AssetHint = q.uri
	}
	n.SetSortMode(q.Sort)
	size := q.Max.Sub(q.Min)
	n.Bounds = xyz.Bounds{Min: q.Min.Vec3(0), Size: size.Vec3(0)}
	errors.Log(n.Shader.Set("color", q.Color))
	lo, hi := q.Min, q.Max
	n.DrawFunc = func(r xyz.Renderer) {
		if hr, ok := r.(*Renderer); ok {
			hr.DrawQuad(n.Name, lo, hi)
		}
	}
	return n
}

// Library is an in memory [xyz.Assets] of quads.
type Library struct {
	mu     sync.RWMutex
	assets map[string]xyz.Asset
}

// NewLibrary returns a new empty library.
func NewLibrary() *Library {
	return &Library{assets: map[string]xyz.Asset{}}
}

// Register loads the given asset under uri, replacing any
// previous one. Quads remember the uri as their default hint.
func (lb *Library) Register(uri string, a xyz.Asset) {
	if q, ok := a.(*Quad); ok {
		q.uri = uri
	}
	lb.mu.Lock()
	lb.assets[uri] = a
	lb.mu.Unlock()
}

// Access implements [xyz.Assets].
func (lb *Library) Access(uri string) (xyz.Asset, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	a, ok := lb.assets[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotLoaded, uri)
	}
	return a, nil
}

// Len returns the number of registered assets.
func (lb *Library) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.assets)
}
