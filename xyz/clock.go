// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "sync/atomic"

// Clock is the source of frame timestamps that decides when a scene
// needs a new tick. A scene ticks at most once per distinct frame value.
type Clock interface {
	Frame() int64
}

// FrameClock is a [Clock] advanced explicitly by the render loop,
// once per rendered frame.
type FrameClock struct {
	frame atomic.Int64
}

// Frame returns the current frame number.
func (fc *FrameClock) Frame() int64 {
	return fc.frame.Load()
}

// Advance starts a new frame and returns its number.
func (fc *FrameClock) Advance() int64 {
	return fc.frame.Add(1)
}
