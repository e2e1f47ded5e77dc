// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the pointer events that drive scene graph
// picking and the named event handlers that scene graph nodes carry.
package events

import (
	"fmt"
	"strings"
)

// Types determines the type of event. Nodes register handlers by the
// lower-case name of the type (see [Types.String]), so custom event
// names that have no Types value can be dispatched as well.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// MouseMove is sent when the pointer moves. Pick requests for moves
	// are coalesced: only the most recent pending move is processed.
	MouseMove

	// MouseDown happens when a pointer button is pressed down.
	MouseDown

	// MouseUp happens when a pointer button is released.
	MouseUp

	// Click is synthesized when a MouseUp lands on the same node as the
	// preceding MouseDown.
	Click

	// DoubleClick is synthesized when two Clicks land on the same node
	// in rapid succession.
	DoubleClick

	// Inactive is sent to a camera when another camera is activated
	// in its place.
	Inactive

	TypesN
)

var typeNames = [...]string{
	UnknownType: "unknown",
	MouseMove:   "mousemove",
	MouseDown:   "mousedown",
	MouseUp:     "mouseup",
	Click:       "click",
	DoubleClick: "doubleclick",
	Inactive:    "inactive",
}

// String returns the handler name of the type.
func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return fmt.Sprintf("Types(%d)", int32(tp))
	}
	return typeNames[tp]
}

// ParseType returns the type for the given handler name,
// ignoring case and an optional "on_" prefix.
func ParseType(s string) (Types, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "on_")
	for i, nm := range typeNames {
		if nm == s {
			return Types(i), nil
		}
	}
	return UnknownType, fmt.Errorf("events.ParseType: unknown event type %q", s)
}

// IsDiscrete returns whether pick requests for this type are queued
// individually rather than coalesced.
func (tp Types) IsDiscrete() bool {
	return tp != MouseMove
}

// MarshalText implements [encoding.TextMarshaler].
func (tp Types) MarshalText() ([]byte, error) {
	return []byte(tp.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (tp *Types) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*tp = v
	return nil
}
