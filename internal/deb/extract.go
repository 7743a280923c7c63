// Package deb reads control metadata out of binary package archives.
package deb

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/ralt/debctl/internal/control"
	"github.com/ralt/debctl/internal/lines"
)

// Debian packages are ar archives whose first member is named "debian-binary"
var debMagic = []byte("!<arch>\ndebian")

// IsDeb reports whether the file at path looks like a Debian package, by
// magic bytes or extension.
func IsDeb(path string) bool {
	if strings.HasSuffix(path, ".deb") {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, len(debMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}
	return bytes.Equal(header, debMagic)
}

// ReadControl extracts and parses the control stanza of a .deb file,
// returning it as a binary-package-kind record.
func ReadControl(path string) (*control.Record, error) {
	data, err := ExtractControl(path)
	if err != nil {
		return nil, err
	}

	src := lines.NewReader(bytes.NewReader(data), path)
	st, err := control.NewParser(src, control.Options{}).Next()
	if err == io.EOF {
		return nil, fmt.Errorf("empty control file in %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse control: %w", err)
	}

	return control.NewRecord(control.KindPackageDeb, st), nil
}

// ExtractControl extracts the raw control file from a .deb package. A .deb
// is an ar archive whose control.tar* member holds the control metadata.
func ExtractControl(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Global ar magic, "!<arch>\n"
	magic := make([]byte, 8)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, err
	}

	for {
		name, size, err := readArHeader(f)
		if err == io.EOF {
			return nil, fmt.Errorf("control.tar not found in package")
		}
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(name, "control.tar") {
			data := make([]byte, size)
			if _, err := io.ReadFull(f, data); err != nil {
				return nil, err
			}
			return extractControlFromTar(data, name)
		}

		// Members are padded to a 2-byte boundary
		if size%2 != 0 {
			size++
		}
		if _, err := f.Seek(size, io.SeekCurrent); err != nil {
			return nil, err
		}
	}
}

// readArHeader reads one 60-byte ar member header, returning the member name
// and data size.
func readArHeader(r io.Reader) (string, int64, error) {
	header := make([]byte, 60)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = fmt.Errorf("truncated ar header")
		}
		return "", 0, err
	}

	// Name is space-padded; GNU ar appends a trailing slash
	name := strings.TrimRight(strings.TrimSpace(string(header[0:16])), "/")

	size, err := strconv.ParseInt(strings.TrimSpace(string(header[48:58])), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad ar member size for %s: %w", name, err)
	}

	return name, size, nil
}

// extractControlFromTar finds the control file inside control.tar*,
// decompressing according to the member's extension.
func extractControlFromTar(data []byte, filename string) ([]byte, error) {
	var r io.Reader = bytes.NewReader(data)

	switch {
	case strings.HasSuffix(filename, ".gz"):
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case strings.HasSuffix(filename, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		r = xr
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == "./control" || header.Name == "control" {
			return io.ReadAll(tr)
		}
	}

	return nil, fmt.Errorf("control file not found in control.tar")
}
