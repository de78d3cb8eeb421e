package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Spanish)

// Fold pasa a minúsculas y elimina tildes y diéresis ("Cemento Sól" -> "cemento sol").
// Se usa para comparar palabras clave sin importar cómo se escribieron.
func Fold(s string) string {
	return strings.TrimSpace(lower.String(StripAccents(s)))
}

// StripAccents elimina las marcas diacríticas sin cambiar mayúsculas ("Año" -> "Ano").
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Title capitaliza la primera letra de cada palabra según reglas del español.
func Title(s string) string {
	return cases.Title(language.Spanish).String(s)
}
