package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingWriterAppends(t *testing.T) {
	w, err := NewRollingFileWriter(t.TempDir(), "test")
	require.NoError(t, err)

	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)

	contents, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(contents))
}

func TestRollingWriterRolls(t *testing.T) {
	w, err := NewRollingFileWriter(t.TempDir(), "test")
	require.NoError(t, err)
	w.MaxSize = 4
	w.MaxLogs = 3

	for _, line := range []string{"aaaa", "bbbb", "cccc", "dddd"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}

	read := func(name string) string {
		contents, err := os.ReadFile(filepath.Join(w.Directory, name))
		require.NoError(t, err, name)
		return string(contents)
	}

	assert.Equal(t, "dddd", read("test.log"))
	assert.Equal(t, "cccc", read("test-1.log"))
	assert.Equal(t, "bbbb", read("test-2.log"))
	assert.NoFileExists(t, filepath.Join(w.Directory, "test-3.log"))
}

func TestRollingWriterDropsStrayArchives(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRollingFileWriter(dir, "test")
	require.NoError(t, err)
	w.MaxSize = 1

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test-old.log"), []byte("x"), 0644))

	_, err = w.Write([]byte("a"))
	require.NoError(t, err)
	_, err = w.Write([]byte("b"))
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "test-old.log"))
	assert.FileExists(t, filepath.Join(dir, "test-1.log"))
}

func TestLogIndex(t *testing.T) {
	index, err := logIndex("showbot", "/tmp/showbot-12.log")
	require.NoError(t, err)
	assert.EqualValues(t, 12, index)

	_, err = logIndex("showbot", "/tmp/showbot-x.log")
	assert.Error(t, err)

	_, err = logIndex("showbot", "/tmp/other-1.log")
	assert.Error(t, err)
}

func TestSetupWritesToConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, err := Setup(Options{Dir: dir, Console: &console})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger.Info().Str("battle", "battle-gen9ou-1").Msg("joined")
	logger.Debug().Msg("hidden")

	assert.Contains(t, console.String(), "joined")
	assert.NotContains(t, console.String(), "hidden")

	contents, err := os.ReadFile(filepath.Join(dir, "showbot.log"))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "battle-gen9ou-1")
}
