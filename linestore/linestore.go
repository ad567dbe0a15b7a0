// Package linestore implements an ordered sequence of lines with
// strict-growth append, mid-sequence insert, ranged remove, and file
// ingest.
//
// The element type T is polymorphic over a small capability set
// (Element, optionally Destroyer, ByteSource, ByteIterator) rather
// than duck-typed or reflected over, per the design note preferring
// explicit capability interfaces to reflective field access.
package linestore

// Element is the minimal capability every line element must provide.
type Element interface {
	// IsEmpty reports whether this element represents an empty line.
	IsEmpty() bool
}

// Destroyer is implemented by line elements that hold a resource
// needing explicit release. LineStore detects this capability with a
// type assertion instead of reflection.
type Destroyer interface {
	Destroy()
}

// ByteSource exposes a byte-indexed, read-only view of an element's
// contents, for the motion engine.
type ByteSource interface {
	Bytes() []byte
}

// Iterator walks an element's bytes backward from some starting
// column, supporting both consuming and non-consuming lookback.
type Iterator interface {
	// Column reports the iterator's current position; the next
	// Previous call consumes the byte just before it.
	Column() int
	// Previous consumes and returns the byte before Column, or ok=false
	// if Column is already 0.
	Previous() (b byte, ok bool)
	// PeekPrevious reports the byte before Column without consuming it.
	PeekPrevious() (b byte, ok bool)
}

// ByteIterator is implemented by elements that can hand out backward
// Iterators, for the backward word motion.
type ByteIterator interface {
	ByteSource
	// IteratorAt returns an Iterator positioned at the given column.
	IteratorAt(column int) Iterator
	// IteratorFromEnd returns an Iterator positioned at the end of the
	// element's contents.
	IteratorFromEnd() Iterator
}

// FromBytesFunc converts a raw byte slice (one file-ingest segment)
// into a line element T.
type FromBytesFunc[T any] func([]byte) T

// CopyOptions controls the functional (*Copy) variants.
type CopyOptions struct {
	// Shrink forces the result's capacity down to its count. When
	// false, the result's capacity is left at least as large as the
	// receiver's.
	Shrink bool
}

// LineStore is an ordered sequence of T with manual count/capacity
// bookkeeping and strict (non-geometric) growth.
type LineStore[T Element] struct {
	lines    []T
	count    int
	capacity int
}

// New creates an empty LineStore, optionally pre-reserving capacity.
func New[T Element](initialCapacity int) *LineStore[T] {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &LineStore[T]{
		lines:    make([]T, initialCapacity),
		count:    0,
		capacity: initialCapacity,
	}
}

// Count returns the number of live elements.
func (s *LineStore[T]) Count() int { return s.count }

// Capacity returns the current backing capacity.
func (s *LineStore[T]) Capacity() int { return s.capacity }

// Lines returns a read-only view of the live prefix. The returned
// slice aliases the store's backing array and must not be retained
// across a mutating call.
func (s *LineStore[T]) Lines() []T {
	return s.lines[:s.count]
}

// ensureCapacity grows the backing array to at least n, by strict
// growth (no geometric over-allocation), preserving the live prefix.
func (s *LineStore[T]) ensureCapacity(n int) {
	if n <= s.capacity {
		return
	}
	grown := make([]T, n)
	copy(grown, s.lines[:s.count])
	s.lines = grown
	s.capacity = n
}

// Append move-appends lines, growing capacity to
// max(capacity, count+len(lines)).
func (s *LineStore[T]) Append(lines []T) {
	s.ensureCapacity(s.count + len(lines))
	copy(s.lines[s.count:], lines)
	s.count += len(lines)
}

// AppendCopy returns a fresh store with lines appended; the receiver
// is unchanged.
func (s *LineStore[T]) AppendCopy(lines []T, opts CopyOptions) *LineStore[T] {
	result := s.cloneForCopy(s.count+len(lines), opts)
	result.Append(lines)
	return result
}

// Insert splices lines at index at (0 <= at <= count), shifting the
// existing tail right by len(lines).
func (s *LineStore[T]) Insert(at int, lines []T) {
	s.ensureCapacity(s.count + len(lines))
	copy(s.lines[at+len(lines):s.count+len(lines)], s.lines[at:s.count])
	copy(s.lines[at:], lines)
	s.count += len(lines)
}

// InsertCopy is the functional variant of Insert.
func (s *LineStore[T]) InsertCopy(at int, lines []T, opts CopyOptions) *LineStore[T] {
	result := s.cloneForCopy(s.count+len(lines), opts)
	result.Insert(at, lines)
	return result
}

// Remove removes the half-open range [start, end), destroying the
// removed elements if T implements Destroyer. Precondition:
// start <= end <= count.
func (s *LineStore[T]) Remove(start, end int, opts CopyOptions) {
	for i := start; i < end; i++ {
		if d, ok := any(s.lines[i]).(Destroyer); ok {
			d.Destroy()
		}
	}
	removed := end - start
	copy(s.lines[start:], s.lines[end:s.count])
	s.count -= removed
	if opts.Shrink {
		s.shrinkTo(s.count)
	}
}

// RemoveCopy is the functional variant of Remove. It does NOT destroy
// elements of the receiver.
func (s *LineStore[T]) RemoveCopy(start, end int, opts CopyOptions) *LineStore[T] {
	result := s.cloneForCopy(s.count, opts)
	kept := make([]T, 0, s.count-(end-start))
	kept = append(kept, s.lines[:start]...)
	kept = append(kept, s.lines[end:s.count]...)
	result.count = 0
	result.capacity = len(kept)
	result.lines = make([]T, len(kept))
	copy(result.lines, kept)
	result.count = len(kept)
	if !opts.Shrink {
		// keep at least the receiver's original capacity
		result.ensureCapacity(s.capacity)
	}
	return result
}

// cloneForCopy builds the backing store a *Copy variant starts from:
// a duplicate of the receiver's live prefix, sized per the shrink
// policy.
func (s *LineStore[T]) cloneForCopy(minCapacity int, opts CopyOptions) *LineStore[T] {
	capacity := s.capacity
	if opts.Shrink {
		capacity = s.count
	}
	if capacity < minCapacity && opts.Shrink {
		capacity = minCapacity
	}
	if capacity < s.count {
		capacity = s.count
	}
	result := New[T](capacity)
	copy(result.lines, s.lines[:s.count])
	result.count = s.count
	return result
}

// shrinkTo forces capacity down to n, the resulting count.
func (s *LineStore[T]) shrinkTo(n int) {
	if n < 0 {
		n = 0
	}
	shrunk := make([]T, n)
	copy(shrunk, s.lines[:s.count])
	s.lines = shrunk
	s.capacity = n
}
