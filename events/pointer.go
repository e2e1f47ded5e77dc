// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"time"
)

// Pointer is a raw mouse or touch event as delivered by the input layer.
// X and Y are normalized to the rendering surface, with (0, 0) at the
// top-left corner and (1, 1) at the bottom-right corner.
type Pointer struct {

	// Type is the kind of event.
	Type Types `json:"type"`

	// X is the normalized horizontal position.
	X float64 `json:"x"`

	// Y is the normalized vertical position.
	Y float64 `json:"y"`

	// Time is when the event happened.
	Time time.Time `json:"time"`
}

// NewPointer returns a new [Pointer] event of the given type and position.
func NewPointer(typ Types, x, y float64, tm time.Time) Pointer {
	return Pointer{Type: typ, X: x, Y: y, Time: tm}
}

// InBounds returns whether the position lies within the rendering surface.
func (ev Pointer) InBounds() bool {
	return ev.X >= 0 && ev.X <= 1 && ev.Y >= 0 && ev.Y <= 1
}

func (ev Pointer) String() string {
	return fmt.Sprintf("%v{Pos: (%.3f, %.3f), Time: %v}", ev.Type, ev.X, ev.Y, ev.Time.Format("04:05.000"))
}
