package pathmeta

import (
	"strings"

	"github.com/handiism/id3handler/internal/model"
)

// separators are stripped from both ends of every parsed field.
const separators = " -_\t\n/"

// Trim removes leading and trailing separator characters
// (space, '-', '_', tab, newline and '/').
func Trim(s string) string {
	return strings.Trim(s, separators)
}

// trimOrUnknown trims s and substitutes model.Unknown for an empty result.
func trimOrUnknown(s string) string {
	if t := Trim(s); t != "" {
		return t
	}
	return model.Unknown
}

func isSeparator(c byte) bool {
	return strings.IndexByte(separators, c) >= 0
}
