package linestore

import "errors"

// ErrOutOfMemory signals a backing allocation failed. Go's allocator
// does not fail the way the source's did, and no function in this
// package returns it; it completes the error taxonomy.
var ErrOutOfMemory = errors.New("linestore: out of memory")

// ErrIoError wraps a failure reading the file passed to FromFile.
var ErrIoError = errors.New("linestore: io error")

// ErrFileTooLarge is returned by FromFile when the source file exceeds
// FromFileOptions.MaxSize.
var ErrFileTooLarge = errors.New("linestore: file too large")
