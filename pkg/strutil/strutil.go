// Package strutil normaliza texto de entrada: los datos del sistema vienen en
// español/portugués y los SKU llegan con tildes o minúsculas según quién los
// digite.
package strutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold elimina marcas diacríticas ("Secretaría" -> "Secretaria").
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// CanonicalSKU normaliza un SKU para almacenarlo y compararlo: sin tildes,
// sin espacios alrededor, en mayúsculas.
func CanonicalSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(Fold(sku)))
}
