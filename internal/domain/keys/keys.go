// Package keys normaliza nombres legibles (empresas, artículos) a claves de
// almacenamiento seguras. La misma normalización se aplica en escritura y en
// lectura: si divergen, los lotes quedan inalcanzables.
package keys

import (
	"strings"
	"unicode"
)

// isIllegal marca los caracteres prohibidos en la gramática de claves del
// backend de persistencia: / \ . # $ [ ].
func isIllegal(r rune) bool {
	switch r {
	case '/', '\\', '.', '#', '$', '[', ']':
		return true
	}
	return false
}

// Sanitize convierte un nombre legible en clave de almacenamiento: recorta
// espacios en los extremos, colapsa series de espacios internos a un guion,
// sustituye caracteres ilegales por guion y colapsa guiones repetidos.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastDash := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsSpace(r) || isIllegal(r) || r == '-' {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
			continue
		}
		b.WriteRune(r)
		lastDash = false
	}
	return b.String()
}

// Slug devuelve la variante minúscula con guiones usada como segundo intento
// al resolver empresas por nombre legible (no sustituye caracteres ilegales;
// así la grabó históricamente el job de sincronización).
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

// EqualFold compara dos nombres legibles ignorando mayúsculas y espacios en
// los extremos, como hace el barrido lineal de resolución de empresas.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
