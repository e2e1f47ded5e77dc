// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mgrl.dev/core/xyz"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 800, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.Equal(t, xyz.DepthZ, cfg.Render.DepthAxis)
	assert.Equal(t, xyz.Perspective, cfg.Camera.Projection)
	assert.Equal(t, 45.0, cfg.Camera.FOV)
	assert.Equal(t, 0.1, cfg.Camera.Near)
	assert.Equal(t, mgl64.Vec3{0, -10, 0}, cfg.Camera.Location)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, cfg.Camera.UpVector)
	assert.True(t, cfg.Picking.SkipLocationInfo)
	assert.Equal(t, 500, cfg.Picking.DoubleClickWindow)

	assert.Error(t, Defaults(cfg.Log))
	assert.Error(t, Defaults((*Config)(nil)))

	type bad struct {
		N int     `default:"many"`
		F float64 `default:"1.5"`
	}
	b := &bad{}
	err := Defaults(b)
	assert.ErrorContains(t, err, "bad.N")
	assert.Equal(t, 1.5, b.F)
}

func TestReadTOML(t *testing.T) {
	src := `
[log]
level = "debug"

[render]
width = 320
depth_axis = "y"

[camera]
projection = "orthographic"
location = [0.0, 0.0, 5.0]

[picking]
enabled = true
double_click_window = 250
`
	cfg, err := Read(strings.NewReader(src), TOML)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.Equal(t, xyz.DepthY, cfg.Render.DepthAxis)
	assert.Equal(t, xyz.Orthographic, cfg.Camera.Projection)
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, cfg.Camera.Location)
	assert.Equal(t, 45.0, cfg.Camera.FOV)
	assert.True(t, cfg.Picking.Enabled)
	l, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = Read(strings.NewReader("[render]\ndepth_axis = \"x\"\n"), TOML)
	assert.Error(t, err)
	_, err = Read(strings.NewReader("[render]\ncolor = 3\n"), TOML)
	assert.Error(t, err)
	_, err = Read(strings.NewReader("[log]\nlevel = \"loud\"\n"), TOML)
	assert.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	src := `
camera:
  fov: 60
  up_vector: [0, 1, 0]
picking:
  skip_on_move_event: false
  click_window: 300
`
	cfg, err := Read(strings.NewReader(src), YAML)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Camera.FOV)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, cfg.Camera.UpVector)
	assert.False(t, cfg.Picking.SkipOnMoveEvent)
	assert.Equal(t, 300, cfg.Picking.ClickWindow)
	assert.Equal(t, 800, cfg.Render.Width)

	cfg, err = Read(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)

	_, err = Read(strings.NewReader("camera:\n  zoom: 2\n"), YAML)
	assert.Error(t, err)
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Render.DepthAxis = xyz.DepthY
	cfg.Camera.Projection = xyz.Orthographic
	cfg.Camera.LookAt = mgl64.Vec3{1, 2, 3}
	for _, name := range []string{"mgrl.toml", "mgrl.yaml"} {
		fn := filepath.Join(dir, name)
		require.NoError(t, cfg.Save(fn))
		got, err := Open(fn)
		require.NoError(t, err)
		assert.Equal(t, cfg, got, name)
	}

	var b bytes.Buffer
	require.NoError(t, cfg.Write(&b, TOML))
	assert.Contains(t, b.String(), "depth_axis = ")

	assert.ErrorIs(t, cfg.Save(filepath.Join(dir, "mgrl.ini")), ErrUnknownFormat)
	_, err := Open(filepath.Join(dir, "mgrl.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	f, err = ParseFormat("toml")
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	_, err = ParseFormat("json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestApply(t *testing.T) {
	cfg := New()
	cfg.Render.DepthAxis = xyz.DepthY
	cfg.Picking.Enabled = true
	cfg.Picking.ClickWindow = 200
	cfg.Camera.Projection = xyz.Orthographic
	cfg.Camera.OrthographicGrid = 16

	sc := xyz.NewScene("config")
	defer sc.Destroy()
	cfg.Apply(sc)
	assert.Equal(t, xyz.DepthY, sc.DepthAxis)
	assert.True(t, sc.Picking.Enabled)
	assert.Equal(t, 200*time.Millisecond, sc.Picking.ClickWindow)
	assert.Equal(t, 500*time.Millisecond, sc.Picking.DoubleClickWindow)

	c := xyz.NewCamera("cam")
	cfg.ApplyCamera(c)
	assert.Equal(t, xyz.Orthographic, c.ProjectionMode())
	assert.Equal(t, 16.0, c.OrthographicGrid.Get())
	assert.Equal(t, mgl64.Vec3{0, -10, 0}, c.Location.Get())
	fp, ok := c.FocalPoint()
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, fp)
}
