package parser

import "github.com/haldring/vimcore/command"

// Kind enumerates every ParserState variant.
type Kind int

const (
	Start Kind = iota
	InInsertMode
	WaitingForMotion
	WaitingForTarget
	WaitingForRegister
	WaitingForMark
	WaitingForGCommand
	WaitingForZCommand
	WaitingForSlot
	RecordingMacro
)

// CommandBuilder accumulates a range, its register, and the partial
// Command being assembled across a sequence of keys.
type CommandBuilder struct {
	Range          *int
	RangeModifiers int
	Register       *byte
	Partial        command.Command
}

// RangeOrDefault returns the accumulated range, or def if none was
// accumulated.
func (b CommandBuilder) RangeOrDefault(def int) int {
	if b.Range == nil {
		return def
	}
	return *b.Range
}

// State is the closed ParserState tagged union. Builder is populated
// for every non-terminal variant except RecordingMacro; InInsertMode
// only uses Builder.Range/RangeModifiers; RecordingMacro uses
// MacroSlot/MacroInner/MacroRecorded instead of Builder.
type State struct {
	Kind Kind

	Builder CommandBuilder

	MacroSlot     byte
	MacroInner    *State
	MacroRecorded []command.Command
}

// New returns a fresh ParserState in the Start state.
func New() *State {
	return &State{Kind: Start}
}

func intPtr(n int) *int {
	return &n
}

func bytePtr(b byte) *byte {
	return &b
}
