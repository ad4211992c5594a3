package filerecord

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold drops combining marks: "Cálculo" -> "Calculo". Case is kept.
// Characters without a decomposition ("ß", "º") pass through unchanged.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
