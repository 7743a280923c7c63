// Package msg renders user-facing diagnostic text. Message templates pass
// through a settable translator before formatting, so a localized catalog can
// be plugged in without touching callers. The default translator is identity.
package msg

import "fmt"

// Translator maps a message template to its localized form.
type Translator func(template string) string

var translate Translator = func(s string) string { return s }

// SetTranslator installs a translator for all subsequently rendered messages.
// Passing nil restores the identity translator.
func SetTranslator(t Translator) {
	if t == nil {
		t = func(s string) string { return s }
	}
	translate = t
}

// Sprintf renders a message template with its arguments.
func Sprintf(template string, args ...interface{}) string {
	return fmt.Sprintf(translate(template), args...)
}
