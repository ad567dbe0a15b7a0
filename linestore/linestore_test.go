package linestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/haldring/vimcore/linestore"
)

func lines(ss ...string) []linestore.Line {
	out := make([]linestore.Line, len(ss))
	for i, s := range ss {
		out[i] = linestore.NewLine([]byte(s))
	}
	return out
}

func text(ls []linestore.Line) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}

func TestAppendGrowsStrictly(t *testing.T) {
	s := linestore.New[linestore.Line](0)
	s.Append(lines("hello", "there"))

	require.Equal(t, 2, s.Count())
	require.Equal(t, 2, s.Capacity())
	require.Equal(t, []string{"hello", "there"}, text(s.Lines()))
}

func TestAppendCopyShrinkScenario(t *testing.T) {
	// Spec §8 scenario 6.
	s := linestore.New[linestore.Line](120)
	s.Append(lines("hello", "there"))

	copied := s.AppendCopy(lines("you", "devil"), linestore.CopyOptions{Shrink: true})

	require.Equal(t, 4, copied.Count())
	require.Equal(t, 4, copied.Capacity())
	require.Equal(t, 2, s.Count())
	require.Equal(t, 120, s.Capacity())
}

func TestInsertSplicesAndShiftsTail(t *testing.T) {
	s := linestore.New[linestore.Line](0)
	s.Append(lines("a", "c"))
	s.Insert(1, lines("b"))

	require.Equal(t, []string{"a", "b", "c"}, text(s.Lines()))
}

func TestInsertCopyLeavesReceiverUnchanged(t *testing.T) {
	s := linestore.New[linestore.Line](0)
	s.Append(lines("a", "c"))

	copied := s.InsertCopy(1, lines("b"), linestore.CopyOptions{})

	require.Equal(t, []string{"a", "b", "c"}, text(copied.Lines()))
	require.Equal(t, []string{"a", "c"}, text(s.Lines()))
}

func TestRemoveDropsHalfOpenRange(t *testing.T) {
	s := linestore.New[linestore.Line](0)
	s.Append(lines("a", "b", "c"))
	s.Remove(1, 2, linestore.CopyOptions{})

	require.Equal(t, []string{"a", "c"}, text(s.Lines()))
}

func TestRemoveCopyDoesNotMutateReceiver(t *testing.T) {
	s := linestore.New[linestore.Line](0)
	s.Append(lines("a", "b", "c"))

	copied := s.RemoveCopy(1, 2, linestore.CopyOptions{Shrink: true})

	require.Equal(t, []string{"a", "c"}, text(copied.Lines()))
	require.Equal(t, []string{"a", "b", "c"}, text(s.Lines()))
}

func TestFromFileSplitsOnNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nthere\n"), 0o644))

	s, err := linestore.FromFile[linestore.Line](path, linestore.FromFileOptions{
		MaxSize: 1 << 20,
	}, linestore.LineFromBytes)
	require.NoError(t, err)

	require.Equal(t, []string{"hello", "there", ""}, text(s.Lines()))
}

func TestFromFileRequiresMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := linestore.FromFile[linestore.Line](path, linestore.FromFileOptions{}, linestore.LineFromBytes)
	require.Error(t, err)
}

func TestFromFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	_, err := linestore.FromFile[linestore.Line](path, linestore.FromFileOptions{
		MaxSize: 4,
	}, linestore.LineFromBytes)
	require.ErrorIs(t, err, linestore.ErrFileTooLarge)
}

// TestCountNeverExceedsCapacity implements spec §8's quantified
// invariant: after any sequence of append/insert/remove, count <=
// capacity.
func TestCountNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := linestore.New[linestore.Line](0)

		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 0, 30).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				n := rapid.IntRange(0, 3).Draw(t, "appendN")
				s.Append(lines(make([]string, n)...))
			case 1:
				if s.Count() == 0 {
					continue
				}
				at := rapid.IntRange(0, s.Count()).Draw(t, "insertAt")
				s.Insert(at, lines("x"))
			case 2:
				if s.Count() == 0 {
					continue
				}
				start := rapid.IntRange(0, s.Count()-1).Draw(t, "removeStart")
				end := rapid.IntRange(start, s.Count()).Draw(t, "removeEnd")
				s.Remove(start, end, linestore.CopyOptions{})
			}
			require.LessOrEqual(t, s.Count(), s.Capacity())
		}
	})
}
