package lines

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderNumbersLines(t *testing.T) {
	r := NewReader(strings.NewReader("one\ntwo\n\nfour\n"), "input")
	assert.Equal(t, 0, r.Line())
	assert.Equal(t, "input", r.Name())

	want := []string{"one", "two", "", "four"}
	for i, expected := range want {
		line, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, expected, line)
		assert.Equal(t, i+1, r.Line())
	}

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderFinalLineWithoutNewline(t *testing.T) {
	r := NewReader(strings.NewReader("one\ntwo"), "input")

	line, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", line)
	assert.Equal(t, 2, r.Line())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""), "input")
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control")
	require.NoError(t, os.WriteFile(path, []byte("Package: foo\n"), 0644))

	r, closer, err := Open(path)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, path, r.Name())
	line, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Package: foo", line)
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Packages.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("Package: foo\nVersion: 1.0\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, closer, err := Open(path)
	require.NoError(t, err)
	defer closer.Close()

	// The .gz suffix is dropped from the reported source name
	assert.Equal(t, strings.TrimSuffix(path, ".gz"), r.Name())

	line, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Package: foo", line)
	line, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Version: 1.0", line)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}
