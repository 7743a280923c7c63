package control

import "strings"

// Kind identifies the control-information context a record belongs to. It
// drives default parse policy (envelope allowed, empty fields dropped), the
// human-readable description used in diagnostics, and the output field order.
type Kind int

const (
	KindUnknown Kind = iota
	KindSourceInfo
	KindPackageInfo
	KindAptSource
	KindAptPackage
	KindPackageDsc
	KindPackageDeb
	KindFileChanges
	KindFileVendor
	KindFileStatus
	KindChangelog
)

// kindSpec is the per-kind configuration derived once into a table instead of
// being re-branched on every access.
type kindSpec struct {
	name      string
	allowPGP  bool
	dropEmpty bool
}

var kindSpecs = map[Kind]kindSpec{
	KindUnknown:     {name: "unknown control information"},
	KindSourceInfo:  {name: "general section of control info file"},
	KindPackageInfo: {name: "package's section of control info file"},
	KindAptSource:   {name: "APT's Sources index", dropEmpty: true},
	KindAptPackage:  {name: "APT's Packages index", dropEmpty: true},
	KindPackageDsc:  {name: "Debian source control file", allowPGP: true},
	KindPackageDeb:  {name: "binary package control file"},
	KindFileChanges: {name: "Debian changes file", allowPGP: true},
	KindFileVendor:  {name: "vendor file"},
	KindFileStatus:  {name: "entry in dpkg's status file"},
	KindChangelog:   {name: "parsed changelog"},
}

// String returns the short identifier of a Kind, as accepted by KindFromString
func (k Kind) String() string {
	switch k {
	case KindSourceInfo:
		return "src-info"
	case KindPackageInfo:
		return "pkg-info"
	case KindAptSource:
		return "apt-src"
	case KindAptPackage:
		return "apt-pkg"
	case KindPackageDsc:
		return "dsc"
	case KindPackageDeb:
		return "deb"
	case KindFileChanges:
		return "changes"
	case KindFileVendor:
		return "vendor"
	case KindFileStatus:
		return "status"
	case KindChangelog:
		return "changelog"
	default:
		return "unknown"
	}
}

// KindFromString maps a short identifier to its Kind. Unrecognized input maps
// to KindUnknown with ok=false.
func KindFromString(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "src-info":
		return KindSourceInfo, true
	case "pkg-info":
		return KindPackageInfo, true
	case "apt-src":
		return KindAptSource, true
	case "apt-pkg":
		return KindAptPackage, true
	case "dsc":
		return KindPackageDsc, true
	case "deb":
		return KindPackageDeb, true
	case "changes":
		return KindFileChanges, true
	case "vendor":
		return KindFileVendor, true
	case "status":
		return KindFileStatus, true
	case "changelog":
		return KindChangelog, true
	default:
		return KindUnknown, false
	}
}

// Record associates a stanza with a Kind. The kind selects derived settings
// that callers would otherwise have to special-case per kind: whether a
// clearsigned envelope is accepted on input, whether empty fields are dropped
// on output, the description used in diagnostics, and the output field order.
type Record struct {
	Stanza *Stanza

	kind      Kind
	allowPGP  bool
	dropEmpty bool
	name      string
	order     []string

	ordering FieldOrdering

	// Explicit settings are sticky: once supplied they survive later
	// Configure calls that do not re-supply them.
	ovrAllowPGP  *bool
	ovrDropEmpty *bool
	ovrName      *string
}

// Option overrides one kind-derived setting of a Record
type Option func(*Record)

// WithAllowPGP overrides whether a clearsigned envelope is accepted
func WithAllowPGP(allow bool) Option {
	return func(r *Record) { r.ovrAllowPGP = &allow }
}

// WithDropEmpty overrides whether empty fields are elided on output
func WithDropEmpty(drop bool) Option {
	return func(r *Record) { r.ovrDropEmpty = &drop }
}

// WithName overrides the record's human-readable description
func WithName(name string) Option {
	return func(r *Record) { r.ovrName = &name }
}

// WithOrdering replaces the default output field ordering function
func WithOrdering(f FieldOrdering) Option {
	return func(r *Record) { r.ordering = f }
}

// NewRecord creates a record of the given kind around st. A nil st starts the
// record empty.
func NewRecord(kind Kind, st *Stanza, opts ...Option) *Record {
	if st == nil {
		st = NewStanza()
	}
	r := &Record{
		Stanza:   st,
		ordering: DefaultFieldOrder,
	}
	r.Configure(kind, opts...)
	return r
}

// Configure sets the record's kind and recomputes the kind-derived settings.
// Options supplied here or on any earlier call take precedence over the kind
// defaults.
func (r *Record) Configure(kind Kind, opts ...Option) {
	r.kind = kind
	for _, opt := range opts {
		opt(r)
	}
	if r.ordering == nil {
		r.ordering = DefaultFieldOrder
	}

	ks, ok := kindSpecs[kind]
	if !ok {
		ks = kindSpecs[KindUnknown]
	}
	r.allowPGP = ks.allowPGP
	r.dropEmpty = ks.dropEmpty
	r.name = ks.name
	r.order = r.ordering(kind)

	if r.ovrAllowPGP != nil {
		r.allowPGP = *r.ovrAllowPGP
	}
	if r.ovrDropEmpty != nil {
		r.dropEmpty = *r.ovrDropEmpty
	}
	if r.ovrName != nil {
		r.name = *r.ovrName
	}
}

// Kind returns the record's kind
func (r *Record) Kind() Kind {
	return r.kind
}

// AllowPGP reports whether input for this record may carry a clearsigned
// envelope.
func (r *Record) AllowPGP() bool {
	return r.allowPGP
}

// DropEmpty reports whether empty fields are elided when writing
func (r *Record) DropEmpty() bool {
	return r.dropEmpty
}

// Name returns the human-readable description of the record's kind
func (r *Record) Name() string {
	return r.name
}

// OutputOrder returns the field names emitted first when writing, in order.
// Fields not listed follow in insertion order.
func (r *Record) OutputOrder() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ParseOptions returns parser options matching the record's configuration
func (r *Record) ParseOptions() Options {
	return Options{AllowPGP: r.allowPGP}
}
