// Package command defines the closed Command union the parser emits.
package command

import "github.com/haldring/vimcore/motion"

// Kind enumerates every Command variant. Unset is a builder-only
// sentinel and must never be surfaced to a caller.
type Kind int

const (
	Unset Kind = iota
	MotionOnly
	Delete
	Yank
	Change
	PasteForwards
	PasteBackwards
	SetMark
	Comment
	BringLineUp
	Undo
	Redo
	EnterInsertMode
	Insert
	ExitInsertMode
	ReplaceInsert
	InsertDownwards
	InsertUpwards
	ScrollTop
	ScrollCenter
	ScrollBottom
	BeginMacro
	EndMacro
)

// Command is a closed tagged union carrying whichever payload its
// Kind uses. Fields unused by a given Kind are left zero.
type Command struct {
	Kind Kind

	Motion   motion.Motion
	Register *byte

	Slot  byte
	Count int
	Range int
	Byte  byte

	// Commands holds the inner commands recorded during a macro; only
	// populated on EndMacro. Ownership transfers to whoever receives
	// the Command.
	Commands []Command
}
