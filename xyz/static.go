// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"github.com/jinzhu/copier"
	"mgrl.dev/core/base/errors"
)

// computedVars are the shader variables that every node derives
// itself, which are not copied by [NodeBase.AddStatic].
var computedVars = map[string]bool{
	"world_matrix":   true,
	"normal_matrix":  true,
	"is_sprite":      true,
	"is_transparent": true,
	"object_index":   true,
	"billboard_mode": true,
}

// nodeFields are the plain fields that a static copy takes from its
// source. Copying through them keeps the identity and the animatable
// state of the copy its own.
type nodeFields struct {
	Name        string
	Visible     bool
	Selectable  bool
	Drawable    bool
	AssetHint   string
	IsLight     bool
	CastShadows bool
	PickExclude bool
	Bounds      Bounds
	BindFunc    func(r Renderer)
	DrawFunc    func(r Renderer)
}

// AddStatic adds a frozen copy of the subtree of n as a child of this
// node, and returns the copy. The transform and shader variables of
// every copied node are snapshot as constants, and the copies use
// manual cache invalidation, so that their matrices are computed once.
// This is used for static geometry. n itself is left unchanged.
func (nb *NodeBase) AddStatic(n Node) *NodeBase {
	st := StaticCopy(n)
	nb.Add(st)
	return st
}

// StaticCopy returns a frozen copy of the subtree of n,
// as described in [NodeBase.AddStatic].
func StaticCopy(n Node) *NodeBase {
	src := n.AsNode()
	cp := NewNode(src.Name)
	fields := &nodeFields{}
	errors.Log(copier.Copy(fields, src))
	errors.Log(copier.Copy(cp, fields))
	cp.sortMode = src.sortMode
	cp.drawType = src.drawType
	cp.billboard = src.billboard

	cp.Location.Set(src.Location.Get())
	cp.Scale.Set(src.Scale.Get())
	cp.Quaternion.Set(src.Quaternion.Get())
	for _, name := range src.Shader.Names() {
		if computedVars[name] {
			continue
		}
		errors.Log(cp.Shader.Set(name, src.Shader.Get(name)))
	}
	for name, funs := range src.listeners {
		cp.listeners.Set(name, slices.Clone(funs)...)
	}
	cp.UseManualCacheInvalidation()

	for _, c := range src.Children() {
		if _, ok := c.(*Camera); ok {
			continue
		}
		cp.Add(StaticCopy(c))
	}
	return cp
}
