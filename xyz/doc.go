// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xyz is a retained mode scene graph evaluation engine.

A [Scene] is the root of a tree of nodes, each with an animatable
transform (see package anim) and a table of shader variables.
Once per frame, [Scene.Tick] resolves all driver values, computes
world and normal matrices hierarchically, and partitions drawable nodes
into state sorted buckets and a depth sorted alpha bucket.
[Scene.Draw] then draws the buckets through the active [Camera],
as many times as needed for multi-pass rendering.

Picking resolves the node under a pointer by rendering the scene into
an off screen [PickTarget] with each node in a unique color; see [Picker].

Graphics, shader programs and assets are external: they are reached
through the [Renderer], [Program] and [Assets] interfaces. Package
headless implements them in software.
*/
package xyz
