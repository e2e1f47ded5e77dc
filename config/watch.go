// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"mgrl.dev/core/base/errors"
)

// Watcher rereads a config file each time it changes.
// You can use [Watch] to create a new Watcher.
type Watcher struct {

	// Filename is the watched file, with ~ expanded.
	Filename string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the given config file, calling fun from the
// watcher goroutine with the config reread after each write. Configs
// that fail to read are logged and skipped. The directory is watched,
// so that editors that replace the file are also seen.
func Watch(filename string, fun func(cfg *Config)) (*Watcher, error) {
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return nil, errors.Join(err, fw.Close())
	}
	w := &Watcher{Filename: path, watcher: fw, done: make(chan struct{})}
	go w.watch(fun)
	return w, nil
}

func (w *Watcher) watch(fun func(cfg *Config)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Open(w.Filename)
			if err != nil {
				slog.Warn("config.Watcher: reload failed", "file", w.Filename, "err", err)
				continue
			}
			slog.Info("config.Watcher: reloaded", "file", w.Filename)
			fun(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
