// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package headless

import (
	"slices"
)

// DefaultVars are the variables declared by [NewDefaultProgram].
var DefaultVars = []string{
	"projection_matrix", "view_matrix", "world_matrix", "normal_matrix",
	"focal_distance", "depth_of_field", "depth_falloff", "orthographic_scale",
	"alpha", "is_sprite", "is_transparent", "object_index", "billboard_mode",
	"color", "diffuse_texture",
}

// Program is a software shader program: a table of declared variables
// that records the last value uploaded to each.
type Program struct {

	// Name is a label for the program.
	Name string

	names    []string
	declared map[string]bool
	samplers map[string]bool
	values   map[string]any

	// Uploads counts the number of values uploaded.
	Uploads int
}

// NewProgram returns a new program declaring the given variables.
func NewProgram(name string, vars ...string) *Program {
	pr := &Program{Name: name, declared: map[string]bool{}, samplers: map[string]bool{}, values: map[string]any{}}
	for _, v := range vars {
		pr.Declare(v)
	}
	return pr
}

// NewDefaultProgram returns a new program declaring [DefaultVars],
// with diffuse_texture as a sampler.
func NewDefaultProgram() *Program {
	pr := NewProgram("default", DefaultVars...)
	pr.samplers["diffuse_texture"] = true
	return pr
}

// Declare adds a variable to the program.
func (pr *Program) Declare(name string) {
	if pr.declared[name] {
		return
	}
	pr.declared[name] = true
	pr.names = append(pr.names, name)
}

// DeclareSampler adds a sampler variable to the program.
func (pr *Program) DeclareSampler(name string) {
	pr.Declare(name)
	pr.samplers[name] = true
}

// VarNames implements [xyz.Program].
func (pr *Program) VarNames() []string {
	return slices.Clone(pr.names)
}

// HasVar implements [xyz.Program].
func (pr *Program) HasVar(name string) bool {
	return pr.declared[name]
}

// IsSampler implements [xyz.Program].
func (pr *Program) IsSampler(name string) bool {
	return pr.samplers[name]
}

// SetVar implements [xyz.Program].
func (pr *Program) SetVar(name string, value any) {
	pr.values[name] = value
	pr.Uploads++
}

// SetSampler implements [xyz.Program].
func (pr *Program) SetSampler(name string, value any) {
	pr.values[name] = value
	pr.Uploads++
}

// Var returns the last value uploaded to the named variable, or nil.
func (pr *Program) Var(name string) any {
	return pr.values[name]
}
