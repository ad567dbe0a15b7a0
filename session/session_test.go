package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haldring/vimcore/command"
	"github.com/haldring/vimcore/key"
	"github.com/haldring/vimcore/linestore"
	"github.com/haldring/vimcore/motion"
	"github.com/haldring/vimcore/session"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewEmptySession(t *testing.T) {
	s, err := session.New(session.Options{})
	require.NoError(t, err)
	require.Equal(t, motion.Cursor{}, s.Cursor())
	require.Equal(t, 0, s.Store().Count())
}

func TestNewLoadsFile(t *testing.T) {
	path := writeFile(t, "hello\nthere")

	s, err := session.New(session.Options{
		Path:        path,
		FileOptions: linestore.FromFileOptions{MaxSize: 1 << 20},
	})
	require.NoError(t, err)
	require.Equal(t, 2, s.Store().Count())
}

func TestHandleKeyDispatchesMotionAndUpdatesCursor(t *testing.T) {
	path := writeFile(t, "one two three")
	s, err := session.New(session.Options{
		Path:        path,
		FileOptions: linestore.FromFileOptions{MaxSize: 1 << 20},
	})
	require.NoError(t, err)

	cmd, err := s.HandleKey(key.Plain('w'))
	require.NoError(t, err)
	require.Nil(t, cmd)
	require.Equal(t, motion.Cursor{Line: 0, Column: 4}, s.Cursor())
}

func TestHandleKeySurfacesNonMotionCommandsExactlyOnce(t *testing.T) {
	s, err := session.New(session.Options{})
	require.NoError(t, err)

	cmd1, err := s.HandleKey(key.Plain('d'))
	require.NoError(t, err)
	require.Nil(t, cmd1)

	cmd2, err := s.HandleKey(key.Plain('d'))
	require.NoError(t, err)
	require.NotNil(t, cmd2)
	require.Equal(t, command.Delete, cmd2.Kind)
}

func TestSetCursor(t *testing.T) {
	s, err := session.New(session.Options{})
	require.NoError(t, err)

	s.SetCursor(motion.Cursor{Line: 3, Column: 1})
	require.Equal(t, motion.Cursor{Line: 3, Column: 1}, s.Cursor())
}
