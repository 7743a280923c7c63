package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprintfDefaultIdentity(t *testing.T) {
	assert.Equal(t, "duplicate field Source found", Sprintf("duplicate field %s found", "Source"))
}

func TestSetTranslator(t *testing.T) {
	SetTranslator(func(template string) string {
		if template == "duplicate field %s found" {
			return "champ %s en double"
		}
		return template
	})
	defer SetTranslator(nil)

	assert.Equal(t, "champ Source en double", Sprintf("duplicate field %s found", "Source"))
	assert.Equal(t, "other text", Sprintf("other text"))
}

func TestSetTranslatorNilRestoresIdentity(t *testing.T) {
	SetTranslator(func(string) string { return "x" })
	SetTranslator(nil)
	assert.Equal(t, "hello", Sprintf("hello"))
}
