// Package control parses and serializes Debian control metadata: RFC 822-like
// paragraphs of "Field: value" lines with folded continuations, optionally
// wrapped in an OpenPGP clearsigned envelope. The parser is purely syntactic;
// it never validates field contents or signatures.
package control

import (
	"fmt"
	"io"
	"strings"
)

// Field is one name/value pair of a stanza. A multi-line value stores its
// continuation lines joined by '\n', each keeping the leading whitespace of
// its physical line.
type Field struct {
	Name  string
	Value string
}

// Stanza is one ordered, duplicate-free control paragraph. Field names are
// case-sensitive and insertion order is preserved; output order depends on it.
// The zero value is not usable, create stanzas with NewStanza.
type Stanza struct {
	fields []Field
	index  map[string]int
}

// NewStanza creates an empty stanza
func NewStanza() *Stanza {
	return &Stanza{
		index: make(map[string]int),
	}
}

// Len returns the number of fields in the stanza
func (s *Stanza) Len() int {
	return len(s.fields)
}

// Has reports whether the named field is present
func (s *Stanza) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the value of the named field and whether it is present
func (s *Stanza) Get(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.fields[i].Value, true
}

// Set adds a field or, if the name already exists, replaces its value in
// place without changing its position.
func (s *Stanza) Set(name, value string) {
	if i, ok := s.index[name]; ok {
		s.fields[i].Value = value
		return
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Name: name, Value: value})
}

// Delete removes the named field, preserving the order of the remaining
// fields. It reports whether the field was present.
func (s *Stanza) Delete(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.fields); j++ {
		s.index[s.fields[j].Name] = j
	}
	return true
}

// Fields returns the fields in insertion order. The slice is a copy; the
// values are not.
func (s *Stanza) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in insertion order
func (s *Stanza) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// appendContinuation extends the named field with one folded line. The line
// is stored verbatim, including its leading whitespace.
func (s *Stanza) appendContinuation(name, line string) {
	if i, ok := s.index[name]; ok {
		s.fields[i].Value += "\n" + line
	}
}

// WriteTo serializes the stanza in insertion order. Values round-trip
// byte-for-byte: continuation lines are emitted exactly as stored.
func (s *Stanza) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range s.fields {
		n, err := writeField(w, f)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func writeField(w io.Writer, f Field) (int64, error) {
	// A value whose first physical line is empty starts directly with a
	// continuation; emit "Name:" with no trailing space in that case.
	var n int
	var err error
	if f.Value == "" || strings.HasPrefix(f.Value, "\n") {
		n, err = fmt.Fprintf(w, "%s:%s\n", f.Name, f.Value)
	} else {
		n, err = fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value)
	}
	return int64(n), err
}
