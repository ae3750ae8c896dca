package core

import (
	"errors"
)

var (
	// ErrSurfaceLost means the presentation surface is outdated or lost and
	// must be reconfigured before drawing again.
	ErrSurfaceLost = errors.New("surface lost or outdated, reconfigure required")
	// ErrOutOfMemory is unrecoverable.
	ErrOutOfMemory = errors.New("gpu out of memory")
	// ErrTimeout means the backend gave up waiting on the surface; the frame
	// is dropped.
	ErrTimeout = errors.New("surface timeout")
)
