package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLinesMissingFile(t *testing.T) {
	lines, err := ReadLines(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	require.Nil(t, lines)
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	in := []string{"1|alpha|0", "2|beta|1"}
	require.NoError(t, WriteLines(path, in))

	out, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestWriteLinesOverwritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, WriteLines(path, []string{"1|old", "2|old", "3|old"}))
	require.NoError(t, WriteLines(path, []string{"1|new"}))

	out, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{"1|new"}, out)
}

func TestWriteLinesLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.txt")
	require.NoError(t, WriteLines(path, []string{"1|a"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "records.txt", entries[0].Name())
}

func TestWriteLinesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, WriteLines(path, nil))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("MAX_USERS", "")
	t.Setenv("MAX_HOUSES", "")
	t.Setenv("MAX_RENTALS", "")

	cfg := ConfigFromEnv()
	require.Equal(t, ".", cfg.Dir)
	require.Equal(t, 100, cfg.MaxUsers)
	require.Equal(t, 200, cfg.MaxHouses)
	require.Equal(t, 400, cfg.MaxRentals)
}

func TestConfigFromEnvOverridesAndBadValues(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/data")
	t.Setenv("MAX_USERS", "25")
	t.Setenv("MAX_HOUSES", "not-a-number")
	t.Setenv("MAX_RENTALS", "-3")

	cfg := ConfigFromEnv()
	require.Equal(t, "/tmp/data", cfg.Dir)
	require.Equal(t, 25, cfg.MaxUsers)
	require.Equal(t, 200, cfg.MaxHouses)
	require.Equal(t, 400, cfg.MaxRentals)
}

func TestBoolField(t *testing.T) {
	require.Equal(t, "1", BoolField(true))
	require.Equal(t, "0", BoolField(false))

	v, err := ParseBoolField("1")
	require.NoError(t, err)
	require.True(t, v)
	v, err = ParseBoolField("0")
	require.NoError(t, err)
	require.False(t, v)
	_, err = ParseBoolField("true")
	require.Error(t, err)
}

func TestSafeField(t *testing.T) {
	require.True(t, SafeField("Cozy flat, 2nd floor"))
	require.False(t, SafeField("broken|value"))
	require.False(t, SafeField("line\nbreak"))
	require.False(t, SafeField("line\rbreak"))
}
