// Package species normalises class labels coming from the inference process
package species

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the NFC form of label with surrounding and repeated whitespace collapsed.
// Casing is preserved so labels render as the model emitted them
func Normalize(label string) string {
	return strings.Join(strings.Fields(norm.NFC.String(label)), " ")
}
