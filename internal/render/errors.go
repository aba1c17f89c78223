// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"
)

// Sentinel errors for renderer setup.
var (
	ErrFontFile = errors.New("render: cannot load font file")
	ErrGeometry = errors.New("render: page geometry cannot hold text")
)

// Error records the renderer operation that failed, e.g. "SetFont" or
// "Output", around the underlying error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}
