package control

import (
	"io"
	"strings"
	"unicode"

	"github.com/ralt/debctl/internal/lines"
	"github.com/ralt/debctl/internal/msg"
)

// OpenPGP clearsign envelope markers, matched as line prefixes
const (
	markerSignedMessage  = "-----BEGIN PGP SIGNED MESSAGE"
	markerSignatureOpen  = "-----BEGIN PGP SIGNATURE"
	markerSignatureClose = "-----END PGP SIGNATURE"
)

// DuplicatePolicy selects how the parser treats a field name that occurs
// twice within one paragraph.
type DuplicatePolicy int

const (
	// RejectDuplicates fails the parse with ErrDuplicateField.
	RejectDuplicates DuplicatePolicy = iota

	// OverwriteDuplicates silently replaces the earlier value in place,
	// keeping the field's original position. Needed for legacy inputs such
	// as dpkg status file fragments.
	OverwriteDuplicates
)

// Options controls a paragraph parse.
type Options struct {
	// AllowPGP accepts input wrapped in a clearsigned envelope. The parser
	// only locates and skips the envelope; it never verifies the signature.
	AllowPGP bool

	// Duplicates selects the duplicate-field policy. The zero value rejects
	// duplicates.
	Duplicates DuplicatePolicy
}

// Parser reads blank-line-delimited control paragraphs from a line source.
// It is a single forward pass with no backtracking and performs no semantic
// validation of field contents.
type Parser struct {
	src  *lines.Reader
	opts Options
}

// NewParser creates a paragraph parser over src
func NewParser(src *lines.Reader, opts Options) *Parser {
	return &Parser{src: src, opts: opts}
}

// Next parses and returns the next paragraph. It returns io.EOF when the
// input is exhausted before any field is seen, which is how callers detect
// the end of a multi-paragraph stream. Any grammar violation aborts with a
// *ParseError carrying the source name and 1-based line number.
func (p *Parser) Next() (*Stanza, error) {
	st := NewStanza()
	inEnvelope := false
	current := "" // name of the most recently started field

	for {
		line, err := p.src.Next()
		if err == io.EOF {
			if inEnvelope {
				return nil, p.errorf(ErrMissingSignature, "expected PGP signature, found end of file")
			}
			if st.Len() == 0 {
				return nil, io.EOF
			}
			return st, nil
		}
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(line) == "" {
			if st.Len() == 0 {
				continue
			}
			// Paragraph complete; unwind the envelope if one was opened.
			if inEnvelope {
				if err := p.skipSignature(); err != nil {
					return nil, err
				}
			}
			return st, nil
		}

		if strings.HasPrefix(line, "#") && st.Len() == 0 {
			continue
		}

		if strings.HasPrefix(line, markerSignedMessage) {
			if !p.opts.AllowPGP {
				return nil, p.errorf(ErrEnvelopeNotAllowed, "PGP signature not allowed here")
			}
			inEnvelope = true
			// The envelope headers run up to and including the first
			// blank line. No blank line before end of input is fatal.
			if err := p.skipEnvelopeHeaders(); err != nil {
				return nil, err
			}
			continue
		}

		if name, value, ok := splitField(line); ok {
			if st.Has(name) && p.opts.Duplicates != OverwriteDuplicates {
				return nil, p.errorf(ErrDuplicateField, "duplicate field %s found", name)
			}
			st.Set(name, value)
			current = name
			continue
		}

		if isContinuation(line) {
			if current == "" {
				return nil, p.errorf(ErrDanglingContinuation, "continued value line not in field")
			}
			st.appendContinuation(current, line)
			continue
		}

		return nil, p.errorf(ErrMalformedLine, "line with unknown format (not field-colon-value)")
	}
}

// skipEnvelopeHeaders discards envelope header lines up to and including the
// first blank line.
func (p *Parser) skipEnvelopeHeaders() error {
	for {
		line, err := p.src.Next()
		if err == io.EOF {
			return p.errorf(ErrMissingSignature, "expected PGP signature, found end of file")
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
	}
}

// skipSignature consumes the signature block that must follow a clearsigned
// paragraph: optional blank lines, the signature open marker, then everything
// up to and including the close marker.
func (p *Parser) skipSignature() error {
	for {
		line, err := p.src.Next()
		if err == io.EOF {
			return p.errorf(ErrMissingSignature, "expected PGP signature, found end of file")
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, markerSignatureOpen) {
			break
		}
		return p.errorf(ErrMissingSignature, "expected PGP signature, found something else")
	}

	for {
		line, err := p.src.Next()
		if err == io.EOF {
			return p.errorf(ErrUnterminatedSignature, "unfinished PGP signature")
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, markerSignatureClose) {
			return nil
		}
	}
}

func (p *Parser) errorf(t ParseErrorType, template string, args ...interface{}) *ParseError {
	return &ParseError{
		Type: t,
		File: p.src.Name(),
		Line: p.src.Line(),
		Msg:  msg.Sprintf(template, args...),
	}
}

// splitField matches the "name: value" line shape. The name is the run of
// non-whitespace before the first colon; the value is the remainder with one
// leading run of whitespace trimmed.
func splitField(line string) (name, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return "", "", false
	}
	name = line[:i]
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", "", false
	}
	value = strings.TrimLeft(line[i+1:], " \t")
	return name, value, true
}

// isContinuation matches a line of leading whitespace followed by content
func isContinuation(line string) bool {
	return line != "" && unicode.IsSpace(rune(line[0]))
}
