package store

import "errors"

// ErrIO is returned when a store fails to materialize its backing
// resource (temp file creation, write, or SQLite connection). Per spec.md
// §4.2, every I/O failure during creation collapses to this one sentinel
// — callers don't get to distinguish "disk full" from "permission
// denied", only "the store couldn't be built".
var ErrIO = errors.New("store: io error")

// ErrClosed is returned by every operation on a store after Close.
var ErrClosed = errors.New("store: closed")

// ErrOutOfRange is returned by Get when the index is outside [0, Size()).
var ErrOutOfRange = errors.New("store: index out of range")
