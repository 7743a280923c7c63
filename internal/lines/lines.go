// Package lines provides a line source with positional information for the
// control and manifest parsers.
package lines

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader yields physical lines from an input stream one at a time, tracking
// the 1-based number of the last line returned for diagnostics. End of input
// is reported as io.EOF, distinct from an empty line.
type Reader struct {
	name string
	br   *bufio.Reader
	line int
}

// NewReader creates a line reader over r. The name identifies the source in
// error messages, e.g. a file path or "-" for stdin.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{
		name: name,
		br:   bufio.NewReader(r),
	}
}

// Next returns the next line without its trailing newline. It returns io.EOF
// once the input is exhausted; a final line without a newline is still
// returned before EOF.
func (r *Reader) Next() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			r.line++
			return line, nil
		}
		return "", err
	}
	r.line++
	return strings.TrimSuffix(line, "\n"), nil
}

// Line returns the 1-based number of the line most recently returned by Next.
// It is 0 before the first call.
func (r *Reader) Line() int {
	return r.line
}

// Name returns the source name supplied to NewReader.
func (r *Reader) Name() string {
	return r.name
}

// Open opens a file as a line reader, transparently decompressing gzip input
// based on the file extension. The returned closer releases the underlying
// file handle.
func Open(path string) (*Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return NewReader(gz, strings.TrimSuffix(path, ".gz")), f, nil
	}

	return NewReader(f, path), f, nil
}
