// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mgrl runs scene graphs headlessly: it renders demo scenes,
// reports draw order and picks, and serves pointer input over WebSocket.
package main

import (
	"os"

	"mgrl.dev/core/base/errors"
)

func main() {
	if errors.Log(newRootCmd().Execute()) != nil {
		os.Exit(1)
	}
}
