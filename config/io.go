// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mgrl.dev/core/base/errors"
)

// Formats are the file formats that configs are read and written in.
type Formats int32

const (
	// TOML is the default format.
	TOML Formats = iota
	YAML
)

// ErrUnknownFormat is returned for file names with an unrecognized extension.
var ErrUnknownFormat = errors.New("config: unknown file format")

// ParseFormat returns the format with the given name:
// toml, or yaml and yml, in any case.
func ParseFormat(name string) (Formats, error) {
	switch strings.ToLower(name) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromFilename returns the format for the extension of the given
// file name: .toml, or .yaml and .yml.
func FormatFromFilename(filename string) (Formats, error) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
	if err != nil {
		return TOML, fmt.Errorf("%w: %q", ErrUnknownFormat, filename)
	}
	return f, nil
}

// Open returns a new config with the defaults set and then
// overridden by the given file. A leading ~ is expanded to the
// home directory.
func Open(filename string) (*Config, error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	filename, err = homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh, f)
}

// Read returns a new config with the defaults set and then
// overridden by the given reader in the given format. Keys that
// match no field are errors.
func Read(r io.Reader, f Formats) (*Config, error) {
	cfg := New()
	var err error
	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if err == io.EOF {
			err = nil
		}
	default:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Read: %w", err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, fmt.Errorf("config.Read: %w", err)
	}
	return cfg, nil
}

// Write writes the config to w in the given format.
func (cfg *Config) Write(w io.Writer, f Formats) error {
	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return errors.Join(enc.Encode(cfg), enc.Close())
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// Save writes the config to the given file, in the format
// of its extension.
func (cfg *Config) Save(filename string) error {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := cfg.Write(&b, f); err != nil {
		return err
	}
	return os.WriteFile(filename, b.Bytes(), 0o666)
}
