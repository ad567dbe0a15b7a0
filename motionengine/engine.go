// Package motionengine evaluates a Motion against a Cursor and a
// read-only LineStore view, producing a new Cursor.
//
// Only the two word motions are fully implemented; every other Motion
// variant is enumerated but left to the embedder. This engine is not
// responsible for the whole of vim's motion grammar, only the two
// hard, well-specified cases.
package motionengine

import (
	"errors"
	"fmt"

	"github.com/haldring/vimcore/linestore"
	"github.com/haldring/vimcore/motion"
)

// ErrUnimplementedMotion is returned for every Motion.Kind this engine
// does not evaluate. Its semantics are the embedder's responsibility.
var ErrUnimplementedMotion = errors.New("motionengine: unimplemented motion")

// LineView is the capability set Apply needs from a LineStore's
// element type: emptiness, a byte view, and a backward iterator.
type LineView interface {
	linestore.Element
	linestore.ByteSource
	linestore.ByteIterator
}

// Apply evaluates m against cursor over store, returning the
// resulting Cursor. Only UntilNextWord and UntilStartOfPreviousWord
// are implemented; every other Kind returns ErrUnimplementedMotion.
func Apply[T LineView](cursor motion.Cursor, m motion.Motion, store *linestore.LineStore[T]) (motion.Cursor, error) {
	switch m.Kind {
	case motion.UntilNextWord:
		return repeat(cursor, m.Count, store.Lines(), untilNextWordStep[T]), nil
	case motion.UntilStartOfPreviousWord:
		return repeat(cursor, m.Count, store.Lines(), untilPrevWordStep[T]), nil
	default:
		return cursor, fmt.Errorf("%w: kind %d", ErrUnimplementedMotion, m.Kind)
	}
}

// repeat applies a single-step motion function n times in sequence. A
// step that makes no progress (e.g. no further word before
// end-of-buffer) still counts toward n but freezes the cursor for any
// remaining repetitions.
func repeat[T LineView](cursor motion.Cursor, n int, lines []T, step func([]T, motion.Cursor) motion.Cursor) motion.Cursor {
	for i := 0; i < n; i++ {
		cursor = step(lines, cursor)
	}
	return cursor
}

// untilNextWordStep implements a single forward word-motion step per
// spec: scan from cursor, tracking whether a space or a non-word
// character has been seen, and stop at the first byte that completes
// a space-to-non-space transition or introduces a fresh non-word
// character.
func untilNextWordStep[T LineView](lines []T, cursor motion.Cursor) motion.Cursor {
	total := len(lines)
	if cursor.Line < 0 || cursor.Line >= total {
		return cursor
	}

	if lines[cursor.Line].IsEmpty() {
		if cursor.Line+1 >= total {
			return cursor
		}
		return motion.Cursor{Line: cursor.Line + 1, Column: 0}
	}

	line := cursor.Line
	col := cursor.Column
	data := lines[line].Bytes()
	if col < 0 {
		col = 0
	}
	if col >= len(data) {
		col = len(data) - 1
	}

	start := data[col]
	seenSpace := start == ' '
	seenNonWord := motion.IsNonWordByte(start)

	for {
		data := lines[line].Bytes()
		for ; col < len(data); col++ {
			c := data[col]
			if seenSpace && c != ' ' {
				return motion.Cursor{Line: line, Column: col}
			}
			if motion.IsNonWordByte(c) && !seenNonWord {
				return motion.Cursor{Line: line, Column: col}
			}
			if c == ' ' {
				seenSpace = true
			}
		}
		line++
		if line >= total {
			return cursor
		}
		if lines[line].IsEmpty() {
			return motion.Cursor{Line: line, Column: 0}
		}
		seenSpace = true
		col = 0
	}
}

// untilPrevWordStep implements a single backward word-motion step.
//
// seenNonWordCharacter is intentionally never reassigned after its
// zero-value initialization — this preserves a latent bug documented
// in the original source rather than silently fixing it (see
// DESIGN.md's Open Question decisions). The practical effect is that
// every non-word byte triggers a stop, regardless of whether one was
// already encountered earlier in the scan.
func untilPrevWordStep[T LineView](lines []T, cursor motion.Cursor) motion.Cursor {
	total := len(lines)
	if cursor.Line < 0 || cursor.Line >= total {
		return cursor
	}

	if lines[cursor.Line].IsEmpty() {
		if cursor.Line-1 < 0 {
			return cursor
		}
		return motion.Cursor{Line: cursor.Line - 1, Column: 0}
	}

	var seenNonWordCharacter bool

	line := cursor.Line
	col := cursor.Column

	for {
		if col == 0 {
			prevLine := line - 1
			if prevLine < 0 {
				return cursor
			}
			if lines[prevLine].IsEmpty() {
				return motion.Cursor{Line: prevLine, Column: 0}
			}
			line = prevLine
			col = len(lines[line].Bytes())
			continue
		}

		data := lines[line].Bytes()
		c := data[col-1]
		col--

		if motion.IsNonWordByte(c) && !seenNonWordCharacter {
			return motion.Cursor{Line: line, Column: col}
		}

		peekExists := col > 0
		var peek byte
		if peekExists {
			peek = data[col-1]
		}
		if c != ' ' && (!peekExists || peek == ' ') {
			return motion.Cursor{Line: line, Column: col}
		}
	}
}
