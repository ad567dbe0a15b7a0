package motionengine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haldring/vimcore/linestore"
	"github.com/haldring/vimcore/motion"
	"github.com/haldring/vimcore/motionengine"
)

func newStore(t *testing.T, content string) *linestore.LineStore[linestore.Line] {
	t.Helper()
	store := linestore.New[linestore.Line](0)
	var lines []linestore.Line
	start := 0
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			lines = append(lines, linestore.NewLine([]byte(content[start:i])))
			start = i + 1
		}
	}
	store.Append(lines)
	return store
}

// TestScenario5WordMotions reproduces spec §8 scenario 5 verbatim:
// seven forward word motions followed by seven backward word motions
// over the same file, starting at {0,0}.
func TestScenario5WordMotions(t *testing.T) {
	store := newStore(t, "hello\n\nthere\nyou    handsome \ndevil, you")

	forwardExpected := []motion.Cursor{
		{Line: 1, Column: 0},
		{Line: 2, Column: 0},
		{Line: 3, Column: 0},
		{Line: 3, Column: 7},
		{Line: 4, Column: 0},
		{Line: 4, Column: 5},
		{Line: 4, Column: 7},
	}

	cursor := motion.Cursor{Line: 0, Column: 0}
	for i, want := range forwardExpected {
		next, err := motionengine.Apply(cursor, motion.Motion{Kind: motion.UntilNextWord, Count: 1}, store)
		require.NoErrorf(t, err, "forward step %d", i+1)
		require.Equalf(t, want, next, "forward step %d", i+1)
		cursor = next
	}

	backwardExpected := []motion.Cursor{
		{Line: 4, Column: 5},
		{Line: 4, Column: 0},
		{Line: 3, Column: 7},
		{Line: 3, Column: 0},
		{Line: 2, Column: 0},
		{Line: 1, Column: 0},
		{Line: 0, Column: 0},
	}

	for i, want := range backwardExpected {
		next, err := motionengine.Apply(cursor, motion.Motion{Kind: motion.UntilStartOfPreviousWord, Count: 1}, store)
		require.NoErrorf(t, err, "backward step %d", i+1)
		require.Equalf(t, want, next, "backward step %d", i+1)
		cursor = next
	}
}

func TestUntilNextWordNoMatchReturnsOriginalCursor(t *testing.T) {
	store := newStore(t, "lastword")
	cursor := motion.Cursor{Line: 0, Column: 4}

	next, err := motionengine.Apply(cursor, motion.Motion{Kind: motion.UntilNextWord, Count: 1}, store)

	require.NoError(t, err)
	require.Equal(t, cursor, next)
}

func TestUntilNextWordThenUntilStartOfPreviousWordRoundTrips(t *testing.T) {
	store := newStore(t, "one two three")
	start := motion.Cursor{Line: 0, Column: 4} // start of "two"

	forward, err := motionengine.Apply(start, motion.Motion{Kind: motion.UntilNextWord, Count: 1}, store)
	require.NoError(t, err)

	back, err := motionengine.Apply(forward, motion.Motion{Kind: motion.UntilStartOfPreviousWord, Count: 1}, store)
	require.NoError(t, err)

	require.Equal(t, start, back)
}

func TestApplyUnimplementedMotion(t *testing.T) {
	store := newStore(t, "text")

	_, err := motionengine.Apply(motion.Cursor{}, motion.Motion{Kind: motion.ForwardsParagraph, Count: 1}, store)

	require.ErrorIs(t, err, motionengine.ErrUnimplementedMotion)
}

func TestUntilNextWordCountRepeats(t *testing.T) {
	store := newStore(t, "one two three four")

	next, err := motionengine.Apply(motion.Cursor{Line: 0, Column: 0}, motion.Motion{Kind: motion.UntilNextWord, Count: 3}, store)

	require.NoError(t, err)
	require.Equal(t, motion.Cursor{Line: 0, Column: 14}, next)
}
