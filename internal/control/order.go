package control

// FieldOrdering supplies the canonical output field order for a kind. It is
// consulted only when writing, never while parsing.
type FieldOrdering func(Kind) []string

// Canonical field orders per kind. Fields absent from a paragraph are simply
// skipped; fields present but unlisted are appended in insertion order.
var (
	debFieldOrder = []string{
		"Package",
		"Package-Type",
		"Source",
		"Version",
		"Built-Using",
		"Essential",
		"Origin",
		"Maintainer",
		"Installed-Size",
		"Pre-Depends",
		"Depends",
		"Recommends",
		"Suggests",
		"Breaks",
		"Conflicts",
		"Provides",
		"Replaces",
		"Enhances",
		"Architecture",
		"Multi-Arch",
		"Section",
		"Priority",
		"Homepage",
		"Description",
	}

	dscFieldOrder = []string{
		"Format",
		"Source",
		"Binary",
		"Architecture",
		"Version",
		"Origin",
		"Maintainer",
		"Uploaders",
		"Homepage",
		"Standards-Version",
		"Vcs-Browser",
		"Vcs-Git",
		"Testsuite",
		"Build-Depends",
		"Build-Depends-Indep",
		"Build-Conflicts",
		"Build-Conflicts-Indep",
		"Package-List",
		"Checksums-Sha1",
		"Checksums-Sha256",
		"Files",
	}

	changesFieldOrder = []string{
		"Format",
		"Date",
		"Source",
		"Binary",
		"Binary-Only",
		"Architecture",
		"Version",
		"Distribution",
		"Urgency",
		"Maintainer",
		"Changed-By",
		"Description",
		"Closes",
		"Changes",
		"Checksums-Sha1",
		"Checksums-Sha256",
		"Files",
	}

	aptPackageFieldOrder = []string{
		"Package",
		"Source",
		"Version",
		"Architecture",
		"Maintainer",
		"Installed-Size",
		"Pre-Depends",
		"Depends",
		"Recommends",
		"Suggests",
		"Breaks",
		"Conflicts",
		"Provides",
		"Replaces",
		"Section",
		"Priority",
		"Filename",
		"Size",
		"MD5sum",
		"SHA1",
		"SHA256",
		"SHA512",
		"Homepage",
		"Description",
	}

	aptSourceFieldOrder = []string{
		"Package",
		"Binary",
		"Version",
		"Architecture",
		"Maintainer",
		"Uploaders",
		"Standards-Version",
		"Build-Depends",
		"Build-Depends-Indep",
		"Directory",
		"Priority",
		"Section",
		"Checksums-Sha1",
		"Checksums-Sha256",
		"Files",
		"Homepage",
	}
)

// DefaultFieldOrder is the ordering used by records unless replaced through
// WithOrdering. Kinds without a canonical order keep pure insertion order.
func DefaultFieldOrder(kind Kind) []string {
	switch kind {
	case KindPackageDeb, KindPackageInfo, KindFileStatus:
		return debFieldOrder
	case KindPackageDsc:
		return dscFieldOrder
	case KindFileChanges:
		return changesFieldOrder
	case KindAptPackage:
		return aptPackageFieldOrder
	case KindAptSource:
		return aptSourceFieldOrder
	default:
		return nil
	}
}
