package control

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindDefaults(t *testing.T) {
	cases := []struct {
		kind      Kind
		allowPGP  bool
		dropEmpty bool
	}{
		{KindUnknown, false, false},
		{KindSourceInfo, false, false},
		{KindPackageInfo, false, false},
		{KindAptSource, false, true},
		{KindAptPackage, false, true},
		{KindPackageDsc, true, false},
		{KindPackageDeb, false, false},
		{KindFileChanges, true, false},
		{KindFileVendor, false, false},
		{KindFileStatus, false, false},
		{KindChangelog, false, false},
	}

	for _, tc := range cases {
		r := NewRecord(tc.kind, nil)
		assert.Equal(t, tc.kind, r.Kind())
		assert.Equal(t, tc.allowPGP, r.AllowPGP(), "kind %s allowPGP", tc.kind)
		assert.Equal(t, tc.dropEmpty, r.DropEmpty(), "kind %s dropEmpty", tc.kind)
		assert.NotEmpty(t, r.Name())
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for k := KindSourceInfo; k <= KindChangelog; k++ {
		got, ok := KindFromString(k.String())
		require.True(t, ok, "kind %d", k)
		assert.Equal(t, k, got)
	}

	_, ok := KindFromString("bogus")
	assert.False(t, ok)
}

func TestRecordConfigureRecomputesDefaults(t *testing.T) {
	r := NewRecord(KindPackageDsc, nil)
	assert.True(t, r.AllowPGP())

	r.Configure(KindPackageDeb)
	assert.False(t, r.AllowPGP())
	assert.Equal(t, KindPackageDeb, r.Kind())
	assert.Equal(t, "binary package control file", r.Name())
}

func TestRecordOverridesAreSticky(t *testing.T) {
	r := NewRecord(KindPackageDeb, nil, WithAllowPGP(true), WithName("custom"))
	assert.True(t, r.AllowPGP())
	assert.Equal(t, "custom", r.Name())

	// A later Configure without options keeps the explicit settings while
	// recomputing the kind defaults it did not override.
	r.Configure(KindAptPackage)
	assert.True(t, r.AllowPGP())
	assert.Equal(t, "custom", r.Name())
	assert.True(t, r.DropEmpty())

	r.Configure(KindAptPackage, WithDropEmpty(false))
	assert.False(t, r.DropEmpty())
	assert.True(t, r.AllowPGP())
}

func TestRecordOutputOrder(t *testing.T) {
	r := NewRecord(KindPackageDeb, nil)
	order := r.OutputOrder()
	require.NotEmpty(t, order)
	assert.Equal(t, "Package", order[0])

	// Kinds without a canonical order keep insertion order
	assert.Empty(t, NewRecord(KindFileVendor, nil).OutputOrder())
}

func TestRecordWriteToOrdersFields(t *testing.T) {
	st := NewStanza()
	st.Set("Description", "a tool")
	st.Set("Package", "foo")
	st.Set("X-Custom", "kept last")
	st.Set("Version", "1.0")

	r := NewRecord(KindPackageDeb, st)

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)

	want := "Package: foo\nVersion: 1.0\nDescription: a tool\nX-Custom: kept last\n"
	assert.Equal(t, want, buf.String())
}

func TestRecordWriteToDropsEmptyFields(t *testing.T) {
	st := NewStanza()
	st.Set("Package", "foo")
	st.Set("Section", "")

	var buf bytes.Buffer
	_, err := NewRecord(KindAptPackage, st).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Package: foo\n", buf.String())

	// Same stanza, drop-empty overridden off
	buf.Reset()
	_, err = NewRecord(KindAptPackage, st, WithDropEmpty(false)).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Package: foo\nSection:\n", buf.String())
}

func TestRecordCustomOrdering(t *testing.T) {
	st := NewStanza()
	st.Set("B", "2")
	st.Set("A", "1")

	custom := func(Kind) []string { return []string{"A", "B"} }
	r := NewRecord(KindUnknown, st, WithOrdering(custom))

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "A: 1\nB: 2\n", buf.String())
}

func TestRecordParseOptions(t *testing.T) {
	assert.True(t, NewRecord(KindFileChanges, nil).ParseOptions().AllowPGP)
	assert.False(t, NewRecord(KindPackageDeb, nil).ParseOptions().AllowPGP)
}
