package deb

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testControl = "Package: foo\nVersion: 1.0-1\nArchitecture: amd64\nMaintainer: Test <test@example.com>\nDescription: test package\n built for the extractor tests\n"

// buildDeb assembles a minimal .deb: an ar archive holding debian-binary and
// a gzipped control tarball.
func buildDeb(t *testing.T, controlName string) string {
	t.Helper()

	var controlTar bytes.Buffer
	gz := gzip.NewWriter(&controlTar)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: controlName,
		Mode: 0644,
		Size: int64(len(testControl)),
	}))
	_, err := tw.Write([]byte(testControl))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	var deb bytes.Buffer
	deb.WriteString("!<arch>\n")
	writeArMember(&deb, "debian-binary", []byte("2.0\n"))
	writeArMember(&deb, "control.tar.gz", controlTar.Bytes())

	path := filepath.Join(t.TempDir(), "foo_1.0-1_amd64.deb")
	require.NoError(t, os.WriteFile(path, deb.Bytes(), 0644))
	return path
}

func writeArMember(buf *bytes.Buffer, name string, data []byte) {
	fmt.Fprintf(buf, "%-16s%-12d%-6d%-6d%-8s%-10d`\n", name, 0, 0, 0, "100644", len(data))
	buf.Write(data)
	if len(data)%2 != 0 {
		buf.WriteByte('\n')
	}
}

func TestExtractControl(t *testing.T) {
	path := buildDeb(t, "./control")

	data, err := ExtractControl(path)
	require.NoError(t, err)
	assert.Equal(t, testControl, string(data))
}

func TestExtractControlBareName(t *testing.T) {
	// Some packages store the member as "control" without the "./" prefix
	path := buildDeb(t, "control")

	data, err := ExtractControl(path)
	require.NoError(t, err)
	assert.Equal(t, testControl, string(data))
}

func TestReadControl(t *testing.T) {
	path := buildDeb(t, "./control")

	rec, err := ReadControl(path)
	require.NoError(t, err)

	v, ok := rec.Stanza.Get("Package")
	require.True(t, ok)
	assert.Equal(t, "foo", v)

	v, ok = rec.Stanza.Get("Description")
	require.True(t, ok)
	assert.Equal(t, "test package\n built for the extractor tests", v)
}

func TestIsDeb(t *testing.T) {
	path := buildDeb(t, "./control")
	assert.True(t, IsDeb(path))

	// Magic-byte detection without the .deb extension
	renamed := filepath.Join(filepath.Dir(path), "not-an-extension")
	require.NoError(t, os.Rename(path, renamed))
	assert.True(t, IsDeb(renamed))

	other := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0644))
	assert.False(t, IsDeb(other))
}

func TestExtractControlMissingArchive(t *testing.T) {
	var deb bytes.Buffer
	deb.WriteString("!<arch>\n")
	writeArMember(&deb, "debian-binary", []byte("2.0\n"))

	path := filepath.Join(t.TempDir(), "broken.deb")
	require.NoError(t, os.WriteFile(path, deb.Bytes(), 0644))

	_, err := ExtractControl(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "control.tar not found")
}
