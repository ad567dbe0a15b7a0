package linestore

// Line is the default line element: an opaque, byte-indexed slice of
// text with no destructor. It satisfies Element, ByteSource, and
// ByteIterator.
type Line struct {
	data []byte
}

// NewLine builds a Line from an in-memory byte slice. The slice is
// copied so callers may reuse their buffer.
func NewLine(data []byte) Line {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Line{data: cp}
}

// LineFromBytes is a FromBytesFunc for Line, usable directly with
// FromFile.
func LineFromBytes(b []byte) Line {
	return NewLine(b)
}

// IsEmpty reports whether the line has zero bytes.
func (l Line) IsEmpty() bool {
	return len(l.data) == 0
}

// Bytes returns the line's read-only byte contents.
func (l Line) Bytes() []byte {
	return l.data
}

// IteratorAt returns a backward Iterator positioned at column.
func (l Line) IteratorAt(column int) Iterator {
	return &lineIterator{data: l.data, column: column}
}

// IteratorFromEnd returns a backward Iterator positioned at the end of
// the line's contents.
func (l Line) IteratorFromEnd() Iterator {
	return &lineIterator{data: l.data, column: len(l.data)}
}

// String returns the line's contents as a string, for debugging and
// test failure output.
func (l Line) String() string {
	return string(l.data)
}

type lineIterator struct {
	data   []byte
	column int
}

func (it *lineIterator) Column() int {
	return it.column
}

func (it *lineIterator) Previous() (byte, bool) {
	if it.column <= 0 {
		return 0, false
	}
	it.column--
	return it.data[it.column], true
}

func (it *lineIterator) PeekPrevious() (byte, bool) {
	if it.column <= 0 {
		return 0, false
	}
	return it.data[it.column-1], true
}
