package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeAccents descompone (NFD), elimina las marcas diacríticas y recompone (NFC).
var removeAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name canonicaliza un nombre para comparación de unicidad:
// recorta espacios, elimina acentos y pasa a mayúsculas.
// "  Gaseosas Café " y "GASEOSAS CAFE" se consideran el mismo nombre.
func Name(s string) string {
	s = strings.TrimSpace(s)
	if out, _, err := transform.String(removeAccents, s); err == nil {
		s = out
	}
	return strings.ToUpper(s)
}

// Equal compara dos nombres bajo la forma canónica.
func Equal(a, b string) bool {
	return Name(a) == Name(b)
}
