// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "mgrl.dev/core/base/errors"

var (
	// ErrNoCamera is returned when drawing a scene that has no active camera.
	ErrNoCamera = errors.New("xyz.Scene: the scene graph has no camera in it")

	// ErrNoRenderer is returned when drawing a scene that has no renderer.
	ErrNoRenderer = errors.New("xyz.Scene: the scene graph has no renderer")

	// ErrNoProgram is returned when the renderer has no bound program.
	ErrNoProgram = errors.New("xyz.Scene: the renderer has no bound program")

	// ErrCameraChild is the panic value for adding a child to a camera.
	ErrCameraChild = errors.New("xyz: a camera cannot have children")

	// ErrSceneChild is the panic value for adding a scene to another node.
	ErrSceneChild = errors.New("xyz: a scene cannot be a child")

	// ErrCycle is the panic value for adding a node to its own descendant.
	ErrCycle = errors.New("xyz: topology cycle")

	// ErrDestroyed is the panic value for changing the topology of a
	// destroyed node.
	ErrDestroyed = errors.New("xyz: node is destroyed")
)
