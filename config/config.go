// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for scenes,
// cameras, picking and logging, with defaults given by `default:`
// field tags, and reading and writing them as TOML or YAML.
package config

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/logx"
	"mgrl.dev/core/xyz"
)

// Config is the main config struct that contains all of the
// configuration options for a scene and its surroundings.
type Config struct {

	// Log configures logging.
	Log Log `toml:"log" yaml:"log"`

	// Render configures the render target and draw order.
	Render Render `toml:"render" yaml:"render"`

	// Camera configures the default camera.
	Camera Camera `toml:"camera" yaml:"camera"`

	// Picking configures pointer picking.
	Picking Picking `toml:"picking" yaml:"picking"`
}

// Log configures logging.
type Log struct {

	// Level is the minimum level of messages shown:
	// debug, info, warn or error.
	Level string `default:"info" toml:"level" yaml:"level"`
}

// Render configures the render target and draw order.
type Render struct {

	// Width and Height are the render target size in pixels.
	Width  int `default:"800" toml:"width" yaml:"width"`
	Height int `default:"600" toml:"height" yaml:"height"`

	// DepthAxis is the post projection axis that orders the alpha pass.
	DepthAxis xyz.DepthAxis `default:"z" toml:"depth_axis" yaml:"depth_axis"`
}

// Camera configures a camera.
type Camera struct {

	// Projection is perspective or orthographic.
	Projection xyz.ProjectionMode `default:"perspective" toml:"projection" yaml:"projection"`

	// FOV is the vertical field of view in degrees.
	FOV float64 `default:"45" toml:"fov" yaml:"fov"`

	Near float64 `default:"0.1" toml:"near" yaml:"near"`
	Far  float64 `default:"100" toml:"far" yaml:"far"`

	// OrthographicGrid divides the orthographic extents.
	OrthographicGrid float64 `default:"32" toml:"orthographic_grid" yaml:"orthographic_grid"`

	// Location of the camera.
	Location mgl64.Vec3 `default:"[0, -10, 0]" toml:"location" yaml:"location"`

	// LookAt is the focal point.
	LookAt mgl64.Vec3 `default:"[0, 0, 0]" toml:"look_at" yaml:"look_at"`

	// UpVector is the up direction of the view.
	UpVector mgl64.Vec3 `default:"[0, 0, 1]" toml:"up_vector" yaml:"up_vector"`
}

// Picking configures pointer picking. Durations are in milliseconds.
type Picking struct {
	Enabled          bool `default:"false" toml:"enabled" yaml:"enabled"`
	SkipLocationInfo bool `default:"true" toml:"skip_location_info" yaml:"skip_location_info"`
	SkipOnMoveEvent  bool `default:"true" toml:"skip_on_move_event" yaml:"skip_on_move_event"`

	// ClickWindow is the maximum time between a mouse down and mouse
	// up that make a click. 0 means no limit.
	ClickWindow int `default:"0" toml:"click_window" yaml:"click_window"`

	// DoubleClickWindow is the maximum time between two clicks
	// that make a double click.
	DoubleClickWindow int `default:"500" toml:"double_click_window" yaml:"double_click_window"`
}

// New returns a new config with all of the defaults set.
func New() *Config {
	cfg := &Config{}
	errors.Log(Defaults(cfg))
	return cfg
}

// LogLevel returns the parsed log level.
func (cfg *Config) LogLevel() (slog.Level, error) {
	return logx.ParseLevel(cfg.Log.Level)
}

// Apply applies the render and picking configuration to the scene.
func (cfg *Config) Apply(sc *xyz.Scene) {
	sc.DepthAxis = cfg.Render.DepthAxis
	pk := &sc.Picking
	pk.Enabled = cfg.Picking.Enabled
	pk.SkipLocationInfo = cfg.Picking.SkipLocationInfo
	pk.SkipOnMoveEvent = cfg.Picking.SkipOnMoveEvent
	pk.ClickWindow = time.Duration(cfg.Picking.ClickWindow) * time.Millisecond
	pk.DoubleClickWindow = time.Duration(cfg.Picking.DoubleClickWindow) * time.Millisecond
}

// ApplyCamera applies the camera configuration to c.
func (cfg *Config) ApplyCamera(c *xyz.Camera) {
	cc := &cfg.Camera
	if cc.Projection == xyz.Orthographic {
		c.SetOrthographic()
	} else {
		c.SetPerspective()
	}
	c.FOV.Set(cc.FOV)
	c.Near.Set(cc.Near)
	c.Far.Set(cc.Far)
	c.OrthographicGrid.Set(cc.OrthographicGrid)
	c.Location.Set(cc.Location)
	c.UpVector.Set(cc.UpVector)
	c.LookAt.Set(cc.LookAt)
}
