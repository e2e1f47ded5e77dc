// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationMode returns which orientation representation is authoritative.
func (nb *NodeBase) RotationMode() RotationMode {
	return nb.rotationMode
}

// SetRotationMode makes the given representation authoritative,
// keeping the current orientation. The other representation becomes
// a derived view, and both caches are cleared. Writing to either
// representation switches to it automatically.
// It panics on an undefined value.
func (nb *NodeBase) SetRotationMode(mode RotationMode) {
	if !mode.IsValid() {
		panic(fmt.Errorf("xyz.NodeBase: invalid rotation mode %v", mode))
	}
	if mode == nb.rotationMode {
		return
	}
	// materialize the derived view first, so that writing a single
	// channel keeps the other channels of the current orientation
	switch mode {
	case QuaternionMode:
		nb.Quaternion.Freeze()
		nb.rotationMode = mode
		nb.Rotation.Derive(nb.quatEuler)
	case EulerMode:
		nb.Rotation.Freeze()
		nb.rotationMode = mode
		nb.Quaternion.Derive(nb.eulerQuat)
	}
	nb.Rotation.Invalidate()
	nb.Quaternion.Invalidate()
}

// orientationWrite is called before any write to Rotation or Quaternion.
func (nb *NodeBase) orientationWrite(mode RotationMode) {
	if mode != nb.rotationMode {
		nb.SetRotationMode(mode)
		return
	}
	if mode == EulerMode {
		nb.Quaternion.Invalidate()
	} else {
		nb.Rotation.Invalidate()
	}
}

func (nb *NodeBase) eulerQuat() mgl64.Vec4 {
	return QuatVec4(EulerToQuat(nb.Rotation.Get()))
}

func (nb *NodeBase) quatEuler() mgl64.Vec3 {
	return QuatToEuler(Vec4Quat(nb.Quaternion.Get()))
}

// Orientation returns the current orientation as a unit quaternion.
func (nb *NodeBase) Orientation() mgl64.Quat {
	return Vec4Quat(nb.Quaternion.Get()).Normalize()
}

// LocalMatrix returns the translation times rotation times scale
// matrix of the node.
func (nb *NodeBase) LocalMatrix() mgl64.Mat4 {
	l := nb.Location.Get()
	s := nb.Scale.Get()
	return mgl64.Translate3D(l[0], l[1], l[2]).
		Mul4(nb.Orientation().Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (nb *NodeBase) worldMatrix() mgl64.Mat4 {
	local := nb.LocalMatrix()
	if par := nb.Parent(); par != nil {
		return par.AsNode().WorldMatrix.Get().Mul4(local)
	}
	return local
}

// EulerToQuat converts euler angles in degrees to a quaternion,
// rotating about Z, then Y, then X.
func EulerToQuat(deg mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(deg[0]), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(deg[1]), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(deg[2]), mgl64.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// QuatToEuler converts a quaternion to euler angles in degrees,
// the inverse of [EulerToQuat]. At gimbal lock the X angle is 0.
func QuatToEuler(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4()
	sy := mgl64.Clamp(-m.At(2, 0), -1, 1)
	y := math.Asin(sy)
	var x, z float64
	if math.Abs(sy) < 1-1e-9 {
		x = math.Atan2(m.At(2, 1), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(0, 0))
	} else {
		z = math.Atan2(-m.At(0, 1), m.At(1, 1))
	}
	return mgl64.Vec3{mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)}
}

// QuatVec4 returns q as an (x, y, z, w) vector.
func QuatVec4(q mgl64.Quat) mgl64.Vec4 {
	return mgl64.Vec4{q.V[0], q.V[1], q.V[2], q.W}
}

// Vec4Quat returns the quaternion for an (x, y, z, w) vector.
func Vec4Quat(v mgl64.Vec4) mgl64.Quat {
	return mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
}
