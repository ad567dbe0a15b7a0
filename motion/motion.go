// Package motion defines the Cursor value and the closed Motion union
// the parser produces and the motion engine evaluates.
package motion

// Cursor is a 0-indexed position in a LineStore. Column is a byte
// index into the line; nothing requires it to point inside the line —
// callers clamp as needed.
type Cursor struct {
	Line   int
	Column int
}

// Kind enumerates every Motion variant. Unset is a builder-only
// sentinel and must never appear on a Command surfaced to a caller.
type Kind int

const (
	Unset Kind = iota
	UntilEndOfWord
	UntilNextWord
	UntilStartOfPreviousWord
	UntilEndOfLine
	UntilBeginningOfLine
	UntilColumnZero
	UntilBeginningOfFile
	UntilEndOfFile
	DownwardsLines
	UpwardsLines
	ForwardsCharacter
	BackwardsCharacter
	ForwardsParagraph
	BackwardsParagraph
	ForwardsIncluding
	BackwardsIncluding
	ForwardsExcluding
	BackwardsExcluding
	ToMarkLine
	ToMarkPosition
	Inside
	Surrounding
	ToMatching
)

// Motion is a closed tagged union. Count/LineNumber hold the motion's
// numeric argument (n or lineNumber, depending on Kind); Target and
// Mark are the optional follow-up byte/slot a handful of variants
// need.
type Motion struct {
	Kind Kind

	Count      int
	LineNumber int

	Target *byte
	Mark   *byte
}

// IsNonWordByte reports whether b is one of the non-word characters
// spec'd for word motions: , . - ( ) /
func IsNonWordByte(b byte) bool {
	switch b {
	case ',', '.', '-', '(', ')', '/':
		return true
	default:
		return false
	}
}
