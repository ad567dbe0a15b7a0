// Package session provides BufferSession, the glue that owns one
// LineStore, one parser State, and one Cursor, and wires keystrokes
// through the parser to the motion engine.
package session

import (
	"github.com/haldring/vimcore/command"
	"github.com/haldring/vimcore/key"
	"github.com/haldring/vimcore/linestore"
	"github.com/haldring/vimcore/motion"
	"github.com/haldring/vimcore/motionengine"
	"github.com/haldring/vimcore/parser"
)

// Options configures a new BufferSession. Path, when non-empty, loads
// the initial store from a file using FileOptions instead of starting
// empty.
type Options struct {
	Path            string
	FileOptions     linestore.FromFileOptions
	InitialCapacity int
}

// BufferSession owns a LineStore, a parser State, and a Cursor, and
// drives keystrokes through the parser, dispatching MotionOnly
// commands to the motion engine and surfacing every other Command to
// the caller.
type BufferSession struct {
	store  *linestore.LineStore[linestore.Line]
	state  *parser.State
	cursor motion.Cursor
}

// New constructs a BufferSession: an empty store, or one loaded from
// opts.Path when set. The initial parser state is Start and the
// initial cursor is {0,0}.
func New(opts Options) (*BufferSession, error) {
	var store *linestore.LineStore[linestore.Line]
	if opts.Path != "" {
		loaded, err := linestore.FromFile[linestore.Line](opts.Path, opts.FileOptions, linestore.LineFromBytes)
		if err != nil {
			return nil, err
		}
		store = loaded
	} else {
		store = linestore.New[linestore.Line](opts.InitialCapacity)
	}

	return &BufferSession{
		store:  store,
		state:  parser.New(),
		cursor: motion.Cursor{},
	}, nil
}

// Store returns the session's line store.
func (s *BufferSession) Store() *linestore.LineStore[linestore.Line] {
	return s.store
}

// Cursor returns the session's current cursor.
func (s *BufferSession) Cursor() motion.Cursor {
	return s.cursor
}

// State returns the session's current parser state.
func (s *BufferSession) State() *parser.State {
	return s.state
}

// LoadRelativeFile replaces the session's store with one loaded from
// path.
func (s *BufferSession) LoadRelativeFile(path string, opts linestore.FromFileOptions) error {
	store, err := linestore.FromFile[linestore.Line](path, opts, linestore.LineFromBytes)
	if err != nil {
		return err
	}
	s.store = store
	return nil
}

// SetCursor unconditionally sets the session's cursor.
func (s *BufferSession) SetCursor(c motion.Cursor) {
	s.cursor = c
}

// HandleKey feeds k through the parser. If no Command is emitted, it
// returns (nil, nil). If a MotionOnly Command is emitted, it dispatches
// the motion to the motion engine, updates the cursor, and returns
// (nil, nil). Any other Command is surfaced to the caller exactly
// once via the returned *command.Command.
func (s *BufferSession) HandleKey(k key.Key) (*command.Command, error) {
	next, cmd, err := parser.Handle(s.state, k)
	if err != nil {
		return nil, err
	}
	s.state = next
	if cmd == nil {
		return nil, nil
	}

	if cmd.Kind == command.MotionOnly {
		newCursor, err := motionengine.Apply(s.cursor, cmd.Motion, s.store)
		if err != nil {
			return nil, err
		}
		s.cursor = newCursor
		return nil, nil
	}

	return cmd, nil
}
