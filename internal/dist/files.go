// Package dist handles the whitespace-delimited file manifest format used to
// list build artifacts: one "filename section priority" entry per line, where
// package filenames additionally decompose as name_version_arch.type.
package dist

import (
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ralt/debctl/internal/lines"
	"github.com/ralt/debctl/internal/msg"
)

// A package filename decomposes as name_version_arch.type.
const richFilename = `([-+.0-9a-z]+)_([^_ ]+)_([-a-zA-Z0-9]+)\.([a-z0-9.]+)`

var (
	// Rich grammar: a package filename whose parts identify the package.
	richLine = regexp.MustCompile(`^(` + richFilename + `) (\S+) (\S+)$`)

	// Simple grammar: any filename with its classification.
	simpleLine = regexp.MustCompile(`^(\S+) (\S+) (\S+)$`)

	fileParts = regexp.MustCompile(`^` + richFilename + `$`)
)

// Entry is one manifest record. Package, Version, Arch and PackageType are
// set only when the filename matches the rich package-file grammar.
type Entry struct {
	Filename    string
	Section     string
	Priority    string
	Package     string
	Version     string
	Arch        string
	PackageType string
}

// MalformedLineError is the fatal error for a manifest line matching neither
// grammar.
type MalformedLineError struct {
	File string
	Line int
}

// Error implements the error interface
func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg.Sprintf("badly formed line in files list file"))
}

// DuplicateEntry is the non-fatal warning for a filename seen twice. The
// first occurrence wins; the later one is discarded.
type DuplicateEntry struct {
	File     string
	Line     int
	Filename string
}

// Error implements the error interface
func (e *DuplicateEntry) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg.Sprintf("duplicate files list entry for file %s", e.Filename))
}

// Files is a manifest keyed by filename. Unlike control stanzas, output order
// is always lexicographic by filename, never insertion order.
type Files struct {
	entries map[string]*Entry

	// OnWarning receives non-fatal conditions such as duplicate entries.
	// When nil, warnings go to the log.
	OnWarning func(error)
}

// NewFiles creates an empty manifest
func NewFiles() *Files {
	return &Files{
		entries: make(map[string]*Entry),
	}
}

// Len returns the number of entries
func (f *Files) Len() int {
	return len(f.entries)
}

// Get returns the entry for filename, or nil if absent
func (f *Files) Get(filename string) *Entry {
	return f.entries[filename]
}

// All returns the entries sorted by filename
func (f *Files) All() []*Entry {
	out := make([]*Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Filename < out[j].Filename
	})
	return out
}

// Add inserts or replaces an entry. Package identity fields are filled in
// when the filename matches the rich package-file grammar.
func (f *Files) Add(filename, section, priority string) *Entry {
	e := &Entry{
		Filename: filename,
		Section:  section,
		Priority: priority,
	}
	if m := fileParts.FindStringSubmatch(filename); m != nil {
		e.Package = m[1]
		e.Version = m[2]
		e.Arch = m[3]
		e.PackageType = m[4]
	}
	f.entries[filename] = e
	return e
}

// Remove deletes the entry for filename, reporting whether it was present
func (f *Files) Remove(filename string) bool {
	if _, ok := f.entries[filename]; !ok {
		return false
	}
	delete(f.entries, filename)
	return true
}

// Parse reads manifest lines from src into the list and returns the number
// of entries parsed. A line matching neither grammar aborts the parse with
// *MalformedLineError; a duplicate filename is reported through the warning
// hook and the later entry is discarded.
func (f *Files) Parse(src *lines.Reader) (int, error) {
	count := 0
	for {
		line, err := src.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		var entry Entry
		if m := richLine.FindStringSubmatch(line); m != nil {
			entry = Entry{
				Filename:    m[1],
				Package:     m[2],
				Version:     m[3],
				Arch:        m[4],
				PackageType: m[5],
				Section:     m[6],
				Priority:    m[7],
			}
		} else if m := simpleLine.FindStringSubmatch(line); m != nil {
			entry = Entry{
				Filename: m[1],
				Section:  m[2],
				Priority: m[3],
			}
		} else {
			return count, &MalformedLineError{File: src.Name(), Line: src.Line()}
		}

		if _, ok := f.entries[entry.Filename]; ok {
			f.warn(&DuplicateEntry{File: src.Name(), Line: src.Line(), Filename: entry.Filename})
			continue
		}

		e := entry
		f.entries[e.Filename] = &e
		count++
	}
}

// WriteTo serializes the manifest, one "filename section priority" line per
// entry, in filename-sorted order.
func (f *Files) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range f.All() {
		n, err := fmt.Fprintf(w, "%s %s %s\n", e.Filename, e.Section, e.Priority)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (f *Files) warn(err error) {
	if f.OnWarning != nil {
		f.OnWarning(err)
		return
	}
	logrus.Warn(err)
}
