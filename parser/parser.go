// Package parser implements the keystroke-to-Command Mealy machine: a
// pure, allocator-free state machine that folds one Key at a time
// into a next state, plus a completed Command when the key finishes
// one (incomplete input yields no Command).
package parser

import (
	"fmt"

	"github.com/haldring/vimcore/command"
	"github.com/haldring/vimcore/key"
	"github.com/haldring/vimcore/motion"
)

var targetMotionKinds = map[motion.Kind]bool{
	motion.ForwardsIncluding:  true,
	motion.BackwardsIncluding: true,
	motion.ForwardsExcluding:  true,
	motion.BackwardsExcluding: true,
	motion.Inside:             true,
	motion.Surrounding:        true,
}

var markMotionKinds = map[motion.Kind]bool{
	motion.ToMarkLine:     true,
	motion.ToMarkPosition: true,
}

// Handle folds a single Key into state, returning the next state and,
// if the key completed a command, the emitted Command. On failure the
// original state is returned unmodified, per the propagation policy:
// the parser never mutates ParserState on a failing key.
func Handle(state *State, k key.Key) (*State, *command.Command, error) {
	switch state.Kind {
	case Start:
		return handleStart(state, k)
	case WaitingForMotion:
		return handleWaitingForMotion(state, k)
	case WaitingForTarget:
		return handleWaitingForTarget(state, k)
	case WaitingForMark:
		return handleWaitingForMark(state, k)
	case WaitingForRegister:
		return handleWaitingForRegister(state, k)
	case WaitingForGCommand:
		return handleWaitingForGCommand(state, k)
	case WaitingForZCommand:
		return handleWaitingForZCommand(state, k)
	case WaitingForSlot:
		return handleWaitingForSlot(state, k)
	case RecordingMacro:
		return handleRecordingMacro(state, k)
	case InInsertMode:
		return handleInInsertMode(state, k)
	default:
		return state, nil, fmt.Errorf("parser: state in unknown Kind %d", state.Kind)
	}
}

// HandleKeys folds an entire key sequence starting from state,
// returning every Command emitted along the way. If any key fails,
// the whole operation fails and no Commands are returned.
func HandleKeys(state *State, keys []key.Key) (*State, []command.Command, error) {
	var commands []command.Command
	current := state
	for _, k := range keys {
		next, cmd, err := Handle(current, k)
		if err != nil {
			return current, nil, err
		}
		current = next
		if cmd != nil {
			commands = append(commands, *cmd)
		}
	}
	return current, commands, nil
}

func foldDigit(existing *int, digit int) *int {
	if existing == nil {
		return intPtr(digit)
	}
	return intPtr(*existing*10 + digit)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isDigit(b)
}

func emit(cmd command.Command) (*State, *command.Command, error) {
	return &State{Kind: Start}, &cmd, nil
}

// --- Start ---

func handleStart(state *State, k key.Key) (*State, *command.Command, error) {
	b := state.Builder
	rd := b.Register

	if k.Ctrl() {
		if k.Code == 'r' {
			return emit(command.Command{Kind: command.Redo})
		}
		return state, nil, ErrUnsupportedLeftControlCommand
	}

	switch {
	case k.Code == '"':
		return &State{Kind: WaitingForRegister, Builder: b}, nil, nil

	case isDigit(k.Code):
		newRange := foldDigit(b.Range, int(k.Code-'0'))
		return &State{Kind: Start, Builder: CommandBuilder{
			Range:          newRange,
			RangeModifiers: b.RangeModifiers + 1,
			Register:       b.Register,
		}}, nil, nil

	case k.Code == 'd' || k.Code == 'y' || k.Code == 'c':
		kind := operatorKind(k.Code)
		partial := command.Command{Kind: kind, Motion: motion.Motion{Kind: motion.Unset}, Register: rd}
		return &State{Kind: WaitingForMotion, Builder: CommandBuilder{
			Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
		}}, nil, nil

	case k.Code == 'm':
		partial := command.Command{Kind: command.SetMark}
		return &State{Kind: WaitingForMark, Builder: CommandBuilder{
			Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
		}}, nil, nil
	case k.Code == '\'':
		partial := command.Command{Kind: command.MotionOnly, Motion: motion.Motion{Kind: motion.ToMarkLine}, Register: rd}
		return &State{Kind: WaitingForMark, Builder: CommandBuilder{
			Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
		}}, nil, nil
	case k.Code == '`':
		partial := command.Command{Kind: command.MotionOnly, Motion: motion.Motion{Kind: motion.ToMarkPosition}, Register: rd}
		return &State{Kind: WaitingForMark, Builder: CommandBuilder{
			Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
		}}, nil, nil

	case k.Code == 'p':
		return emit(command.Command{Kind: command.PasteForwards, Range: b.RangeOrDefault(1), Register: rd})
	case k.Code == 'P':
		return emit(command.Command{Kind: command.PasteBackwards, Range: b.RangeOrDefault(1), Register: rd})
	case k.Code == 'j':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.DownwardsLines, b.RangeOrDefault(1))})
	case k.Code == 'k':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UpwardsLines, b.RangeOrDefault(1))})
	case k.Code == '$':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UntilEndOfLine, b.RangeOrDefault(1))})
	case k.Code == '^':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UntilBeginningOfLine, b.RangeOrDefault(1))})
	case k.Code == '}':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.ForwardsParagraph, b.RangeOrDefault(1))})
	case k.Code == '{':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.BackwardsParagraph, b.RangeOrDefault(1))})
	case k.Code == 'l':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.ForwardsCharacter, b.RangeOrDefault(1))})
	case k.Code == 'h':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.BackwardsCharacter, b.RangeOrDefault(1))})
	case k.Code == 'G':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UntilEndOfFile, b.RangeOrDefault(0))})
	case k.Code == 'w':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UntilNextWord, b.RangeOrDefault(1))})
	case k.Code == 'b':
		return emit(command.Command{Kind: command.MotionOnly, Motion: countMotion(motion.UntilStartOfPreviousWord, b.RangeOrDefault(1))})
	case k.Code == 'J':
		return emit(command.Command{Kind: command.BringLineUp, Count: b.RangeOrDefault(1)})
	case k.Code == 'u':
		return emit(command.Command{Kind: command.Undo})

	case k.Code == 'f':
		return intoWaitingForTarget(b, motion.ForwardsIncluding, rd)
	case k.Code == 'F':
		return intoWaitingForTarget(b, motion.BackwardsIncluding, rd)
	case k.Code == 't':
		return intoWaitingForTarget(b, motion.ForwardsExcluding, rd)
	case k.Code == 'T':
		return intoWaitingForTarget(b, motion.BackwardsExcluding, rd)

	case k.Code == 'g':
		return &State{Kind: WaitingForGCommand, Builder: b}, nil, nil
	case k.Code == 'z':
		return &State{Kind: WaitingForZCommand, Builder: b}, nil, nil

	case k.Code == 'i':
		return &State{Kind: InInsertMode}, cmdPtr(command.Command{Kind: command.EnterInsertMode, Count: b.RangeOrDefault(1)}), nil
	case k.Code == 's':
		return &State{Kind: InInsertMode}, cmdPtr(command.Command{Kind: command.ReplaceInsert, Range: b.RangeOrDefault(1), Register: rd}), nil
	case k.Code == 'o':
		return &State{Kind: InInsertMode}, cmdPtr(command.Command{Kind: command.InsertDownwards, Count: b.RangeOrDefault(1)}), nil
	case k.Code == 'O':
		return &State{Kind: InInsertMode}, cmdPtr(command.Command{Kind: command.InsertUpwards, Count: b.RangeOrDefault(1)}), nil

	case k.Code == 'q':
		return &State{Kind: WaitingForSlot, Builder: b}, nil, nil

	default:
		return state, nil, fmt.Errorf("%w: %q", ErrUnexpectedStartKey, k.Code)
	}
}

func operatorKind(b byte) command.Kind {
	switch b {
	case 'd':
		return command.Delete
	case 'y':
		return command.Yank
	default:
		return command.Change
	}
}

func countMotion(kind motion.Kind, n int) motion.Motion {
	return motion.Motion{Kind: kind, Count: n, LineNumber: n}
}

func cmdPtr(c command.Command) *command.Command {
	return &c
}

func intoWaitingForTarget(b CommandBuilder, kind motion.Kind, register *byte) (*State, *command.Command, error) {
	partial := command.Command{Kind: command.MotionOnly, Motion: motion.Motion{Kind: kind}, Register: register}
	return &State{Kind: WaitingForTarget, Builder: CommandBuilder{
		Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
	}}, nil, nil
}

// --- WaitingForMotion ---

func handleWaitingForMotion(state *State, k key.Key) (*State, *command.Command, error) {
	b := state.Builder
	partial := b.Partial

	if isDigit(k.Code) && !(k.Code == '0' && b.Range == nil) {
		newRange := foldDigit(b.Range, int(k.Code-'0'))
		return &State{Kind: WaitingForMotion, Builder: CommandBuilder{
			Range: newRange, RangeModifiers: b.RangeModifiers + 1, Register: b.Register, Partial: partial,
		}}, nil, nil
	}

	if k.Code == 'd' || k.Code == 'y' || k.Code == 'c' {
		n := 0
		if b.Range != nil {
			n = *b.Range - 1
		}
		cmd := partial
		cmd.Motion = countMotion(motion.DownwardsLines, n)
		return emit(cmd)
	}

	switch k.Code {
	case 'e':
		return emitBoundMotion(partial, countMotion(motion.UntilEndOfWord, b.RangeOrDefault(1)))
	case 'w':
		return emitBoundMotion(partial, countMotion(motion.UntilNextWord, b.RangeOrDefault(1)))
	case 'j':
		return emitBoundMotion(partial, countMotion(motion.DownwardsLines, b.RangeOrDefault(1)))
	case 'k':
		return emitBoundMotion(partial, countMotion(motion.UpwardsLines, b.RangeOrDefault(1)))
	case '$':
		n := 1
		if b.Range != nil {
			n = *b.Range - 1
		}
		return emitBoundMotion(partial, countMotion(motion.UntilEndOfLine, n))
	case '^':
		n := 1
		if b.Range != nil {
			n = *b.Range - 1
		}
		return emitBoundMotion(partial, countMotion(motion.UntilBeginningOfLine, n))
	case '{':
		return emitBoundMotion(partial, countMotion(motion.BackwardsParagraph, b.RangeOrDefault(1)))
	case '}':
		return emitBoundMotion(partial, countMotion(motion.ForwardsParagraph, b.RangeOrDefault(1)))
	case 'l':
		return emitBoundMotion(partial, countMotion(motion.ForwardsCharacter, b.RangeOrDefault(1)))
	case 'h':
		return emitBoundMotion(partial, countMotion(motion.BackwardsCharacter, b.RangeOrDefault(1)))
	case 'G':
		return emitBoundMotion(partial, countMotion(motion.UntilEndOfFile, b.RangeOrDefault(0)))
	case '%':
		return emitBoundMotion(partial, motion.Motion{Kind: motion.ToMatching})

	case 'f':
		return intoWaitingForTargetFromMotion(b, partial, motion.ForwardsIncluding)
	case 'F':
		return intoWaitingForTargetFromMotion(b, partial, motion.BackwardsIncluding)
	case 't':
		return intoWaitingForTargetFromMotion(b, partial, motion.ForwardsExcluding)
	case 'T':
		return intoWaitingForTargetFromMotion(b, partial, motion.BackwardsExcluding)
	case 'i':
		return intoWaitingForTargetFromMotion(b, partial, motion.Inside)
	case 's':
		return intoWaitingForTargetFromMotion(b, partial, motion.Surrounding)

	case '\'':
		return intoWaitingForMarkFromMotion(b, partial, motion.ToMarkLine)
	case '`':
		return intoWaitingForMarkFromMotion(b, partial, motion.ToMarkPosition)

	case 'g':
		return &State{Kind: WaitingForGCommand, Builder: b}, nil, nil

	case '0':
		// Only reached when b.Range == nil (digit branch above handles
		// the accumulated-range case).
		return emitBoundMotion(partial, motion.Motion{Kind: motion.UntilColumnZero})

	default:
		return state, nil, fmt.Errorf("%w: %q", ErrUnimplementedMotion, k.Code)
	}
}

func emitBoundMotion(partial command.Command, m motion.Motion) (*State, *command.Command, error) {
	cmd := partial
	cmd.Motion = m
	return emit(cmd)
}

func intoWaitingForTargetFromMotion(b CommandBuilder, partial command.Command, kind motion.Kind) (*State, *command.Command, error) {
	partial.Motion = motion.Motion{Kind: kind}
	return &State{Kind: WaitingForTarget, Builder: CommandBuilder{
		Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
	}}, nil, nil
}

func intoWaitingForMarkFromMotion(b CommandBuilder, partial command.Command, kind motion.Kind) (*State, *command.Command, error) {
	partial.Motion = motion.Motion{Kind: kind}
	return &State{Kind: WaitingForMark, Builder: CommandBuilder{
		Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
	}}, nil, nil
}

// --- WaitingForTarget ---

func handleWaitingForTarget(state *State, k key.Key) (*State, *command.Command, error) {
	partial := state.Builder.Partial
	if partial.Kind == command.Unset {
		return state, nil, ErrInvalidWaitingForTargetCommand
	}
	if !targetMotionKinds[partial.Motion.Kind] {
		return state, nil, ErrInvalidWaitingForTargetMotion
	}
	target := k.Code
	cmd := partial
	cmd.Motion.Target = &target
	return emit(cmd)
}

// --- WaitingForMark ---

func handleWaitingForMark(state *State, k key.Key) (*State, *command.Command, error) {
	partial := state.Builder.Partial
	if partial.Kind == command.SetMark {
		cmd := partial
		cmd.Slot = k.Code
		return emit(cmd)
	}
	if partial.Kind == command.Unset {
		return state, nil, ErrInvalidWaitingForMarkCommand
	}
	if !markMotionKinds[partial.Motion.Kind] {
		return state, nil, ErrInvalidWaitingForMarkMotion
	}
	slot := k.Code
	cmd := partial
	cmd.Motion.Mark = &slot
	return emit(cmd)
}

// --- WaitingForRegister ---

func handleWaitingForRegister(state *State, k key.Key) (*State, *command.Command, error) {
	b := k.Code
	allowed := (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '+' || b == '*'
	if !allowed {
		return state, nil, ErrUnknownRegister
	}
	prev := state.Builder
	return &State{Kind: Start, Builder: CommandBuilder{
		Range: prev.Range, RangeModifiers: prev.RangeModifiers, Register: bytePtr(b),
	}}, nil, nil
}

// --- WaitingForGCommand ---

func handleWaitingForGCommand(state *State, k key.Key) (*State, *command.Command, error) {
	b := state.Builder
	switch k.Code {
	case 'g':
		n := b.RangeOrDefault(0)
		m := countMotion(motion.UntilBeginningOfFile, n)
		var cmd command.Command
		if b.Partial.Kind == command.Unset {
			cmd = command.Command{Kind: command.MotionOnly, Motion: m, Register: b.Register}
		} else {
			cmd = b.Partial
			cmd.Motion = m
		}
		return emit(cmd)
	case 'c':
		partial := command.Command{Kind: command.Comment, Motion: motion.Motion{Kind: motion.Unset}, Register: b.Register}
		return &State{Kind: WaitingForMotion, Builder: CommandBuilder{
			Range: b.Range, RangeModifiers: b.RangeModifiers, Register: b.Register, Partial: partial,
		}}, nil, nil
	default:
		return state, nil, fmt.Errorf("%w: %q", ErrUnsupportedGCommand, k.Code)
	}
}

// --- WaitingForZCommand ---

func handleWaitingForZCommand(state *State, k key.Key) (*State, *command.Command, error) {
	switch k.Code {
	case 't':
		return emit(command.Command{Kind: command.ScrollTop})
	case 'z':
		return emit(command.Command{Kind: command.ScrollCenter})
	case 'b':
		return emit(command.Command{Kind: command.ScrollBottom})
	default:
		return state, nil, fmt.Errorf("%w: %q", ErrUnsupportedZCommand, k.Code)
	}
}

// --- WaitingForSlot ---

func handleWaitingForSlot(state *State, k key.Key) (*State, *command.Command, error) {
	if !isAlnum(k.Code) {
		return state, nil, ErrUnknownMacroSlot
	}
	slot := k.Code
	cmd := command.Command{Kind: command.BeginMacro, Slot: slot}
	next := &State{
		Kind:          RecordingMacro,
		MacroSlot:     slot,
		MacroInner:    New(),
		MacroRecorded: []command.Command{},
	}
	return next, &cmd, nil
}

// --- RecordingMacro ---

func handleRecordingMacro(state *State, k key.Key) (*State, *command.Command, error) {
	if k.Code == 'q' {
		cmd := command.Command{Kind: command.EndMacro, Slot: state.MacroSlot, Commands: state.MacroRecorded}
		return &State{Kind: Start}, &cmd, nil
	}

	innerNext, innerCmd, err := Handle(state.MacroInner, k)
	if err != nil {
		return state, nil, err
	}

	recorded := state.MacroRecorded
	var outCmd *command.Command
	if innerCmd != nil {
		recorded = make([]command.Command, len(state.MacroRecorded), len(state.MacroRecorded)+1)
		copy(recorded, state.MacroRecorded)
		recorded = append(recorded, *innerCmd)
		outCmd = innerCmd
	}
	return &State{
		Kind:          RecordingMacro,
		MacroSlot:     state.MacroSlot,
		MacroInner:    innerNext,
		MacroRecorded: recorded,
	}, outCmd, nil
}

// --- InInsertMode ---

func handleInInsertMode(state *State, k key.Key) (*State, *command.Command, error) {
	if k.IsEscape() {
		return emit(command.Command{Kind: command.ExitInsertMode})
	}
	cmd := command.Command{Kind: command.Insert, Byte: k.Code}
	return &State{Kind: InInsertMode, Builder: state.Builder}, &cmd, nil
}
