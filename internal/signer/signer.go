package signer

// Signer signs serialized control output with an OpenPGP key. Verification
// is out of scope everywhere in this tool; the parser side only skips
// envelopes.
type Signer interface {
	// SignCleartext wraps data in a clearsigned envelope (.dsc, .changes,
	// InRelease style).
	SignCleartext(data []byte) ([]byte, error)

	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the armored public key
	GetPublicKey() ([]byte, error)
}
