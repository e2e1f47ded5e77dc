// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package.
package errors

import (
	"errors"
)

// ErrUnsupported is re-exported from the standard library.
var ErrUnsupported = errors.ErrUnsupported

// New is re-exported from the standard library, so that this package
// can be imported in place of it.
func New(text string) error {
	return errors.New(text)
}

// Is is re-exported from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is re-exported from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap is re-exported from the standard library.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
