// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"strings"
)

// SortMode determines which draw pass a drawable node goes through.
type SortMode int32

const (
	// Solid nodes are state sorted by asset hint.
	Solid SortMode = iota

	// Alpha nodes are depth sorted and drawn back to front
	// after all solid nodes, with depth writes disabled.
	Alpha

	SortModesN
)

// DrawType is the kind of geometry a node draws.
type DrawType int32

const (
	// Model is regular 3D geometry.
	Model DrawType = iota

	// Sprite is a flat, camera facing image.
	Sprite

	DrawTypesN
)

// Billboard determines how a node is turned toward the camera.
// Its value is uploaded as the billboard_mode shader variable.
type Billboard int32

const (
	// NoBillboard draws the node with its own orientation.
	NoBillboard Billboard = iota

	// TreeBillboard rotates the node about its up axis only.
	TreeBillboard

	// ParticleBillboard always faces the camera fully.
	ParticleBillboard

	BillboardsN
)

// RotationMode names which orientation representation of a node
// is authoritative.
type RotationMode int32

const (
	// EulerMode uses the Rotation tripple, in degrees.
	EulerMode RotationMode = iota

	// QuaternionMode uses the Quaternion quad.
	QuaternionMode

	RotationModesN
)

// ProjectionMode is the projection used by a [Camera].
type ProjectionMode int32

const (
	Perspective ProjectionMode = iota
	Orthographic

	ProjectionModesN
)

// DepthAxis is the post projection axis used to order the alpha pass.
type DepthAxis int32

const (
	DepthZ DepthAxis = iota
	DepthY

	DepthAxesN
)

var (
	sortModeNames       = []string{"solid", "alpha"}
	drawTypeNames       = []string{"model", "sprite"}
	billboardNames      = []string{"none", "tree", "particle"}
	rotationModeNames   = []string{"euler", "quaternion"}
	projectionModeNames = []string{"perspective", "orthographic"}
	depthAxisNames      = []string{"z", "y"}
)

func enumString(names []string, v int32, typ string) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, v)
	}
	return names[v]
}

func parseEnum(names []string, s, typ string) (int32, error) {
	ls := strings.ToLower(strings.TrimSpace(s))
	for i, nm := range names {
		if nm == ls {
			return int32(i), nil
		}
	}
	return 0, fmt.Errorf("xyz.Parse%s: unknown %s %q (valid values: %s)", typ, typ, s, strings.Join(names, ", "))
}

func (i SortMode) String() string       { return enumString(sortModeNames, int32(i), "SortMode") }
func (i DrawType) String() string       { return enumString(drawTypeNames, int32(i), "DrawType") }
func (i Billboard) String() string      { return enumString(billboardNames, int32(i), "Billboard") }
func (i RotationMode) String() string   { return enumString(rotationModeNames, int32(i), "RotationMode") }
func (i ProjectionMode) String() string { return enumString(projectionModeNames, int32(i), "ProjectionMode") }
func (i DepthAxis) String() string      { return enumString(depthAxisNames, int32(i), "DepthAxis") }

// IsValid returns whether the value is a defined constant.
func (i SortMode) IsValid() bool { return i >= 0 && i < SortModesN }

// IsValid returns whether the value is a defined constant.
func (i DrawType) IsValid() bool { return i >= 0 && i < DrawTypesN }

// IsValid returns whether the value is a defined constant.
func (i Billboard) IsValid() bool { return i >= 0 && i < BillboardsN }

// IsValid returns whether the value is a defined constant.
func (i RotationMode) IsValid() bool { return i >= 0 && i < RotationModesN }

// IsValid returns whether the value is a defined constant.
func (i ProjectionMode) IsValid() bool { return i >= 0 && i < ProjectionModesN }

// IsValid returns whether the value is a defined constant.
func (i DepthAxis) IsValid() bool { return i >= 0 && i < DepthAxesN }

// ParseSortMode returns the [SortMode] with the given name.
func ParseSortMode(s string) (SortMode, error) {
	v, err := parseEnum(sortModeNames, s, "SortMode")
	return SortMode(v), err
}

// ParseDrawType returns the [DrawType] with the given name.
func ParseDrawType(s string) (DrawType, error) {
	v, err := parseEnum(drawTypeNames, s, "DrawType")
	return DrawType(v), err
}

// ParseBillboard returns the [Billboard] with the given name.
// An empty string means [NoBillboard].
func ParseBillboard(s string) (Billboard, error) {
	if strings.TrimSpace(s) == "" {
		return NoBillboard, nil
	}
	v, err := parseEnum(billboardNames, s, "Billboard")
	return Billboard(v), err
}

// ParseRotationMode returns the [RotationMode] with the given name.
func ParseRotationMode(s string) (RotationMode, error) {
	v, err := parseEnum(rotationModeNames, s, "RotationMode")
	return RotationMode(v), err
}

// ParseProjectionMode returns the [ProjectionMode] with the given name.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	v, err := parseEnum(projectionModeNames, s, "ProjectionMode")
	return ProjectionMode(v), err
}

// ParseDepthAxis returns the [DepthAxis] with the given name.
func ParseDepthAxis(s string) (DepthAxis, error) {
	v, err := parseEnum(depthAxisNames, s, "DepthAxis")
	return DepthAxis(v), err
}

// UnmarshalText implements [encoding.TextUnmarshaler], for config files.
func (i *DepthAxis) UnmarshalText(text []byte) error {
	v, err := ParseDepthAxis(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (i DepthAxis) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler], for config files.
func (i *ProjectionMode) UnmarshalText(text []byte) error {
	v, err := ParseProjectionMode(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (i ProjectionMode) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
