package linestore

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
)

// FromFileOptions bounds and configures FromFile. MaxSize is required
// (there is no default upper bound); NewlineDelimiter defaults to
// "\n", or "\r\n" on Windows when left empty.
type FromFileOptions struct {
	MaxSize          int64
	NewlineDelimiter string
	InitialCapacity  int
}

func (o FromFileOptions) delimiter() []byte {
	if o.NewlineDelimiter != "" {
		return []byte(o.NewlineDelimiter)
	}
	if runtime.GOOS == "windows" {
		return []byte("\r\n")
	}
	return []byte("\n")
}

// FromFile reads the whole file at path (bounded by opts.MaxSize),
// splits it on the newline delimiter, and appends one element per
// split piece via convert.
func FromFile[T Element](path string, opts FromFileOptions, convert FromBytesFunc[T]) (*LineStore[T], error) {
	if opts.MaxSize <= 0 {
		return nil, fmt.Errorf("linestore: FromFileOptions.MaxSize must be set explicitly")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoError, err)
	}
	if info.Size() > opts.MaxSize {
		return nil, ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoError, err)
	}

	pieces := bytes.Split(data, opts.delimiter())
	store := New[T](opts.InitialCapacity)
	lines := make([]T, len(pieces))
	for i, p := range pieces {
		lines[i] = convert(p)
	}
	store.Append(lines)
	return store, nil
}
