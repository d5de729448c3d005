package answers

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var dashes = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

var spacedDashes = strings.NewReplacer(" - ", "-", " -", "-", "- ", "-")

// Fold reduces a free-form answer token to the form used as a lookup key:
// NFKC normalized, case folded, dashes unified and whitespace collapsed.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	s = dashes.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return spacedDashes.Replace(s)
}
