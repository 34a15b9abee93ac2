package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cochin-traders/trader-api/internal/domain/keys"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sanitize es la pieza más delicada del sistema: la misma función corre en
// escritura y en lectura, y cualquier divergencia deja lotes inalcanzables.
// Los vectores reproducen nombres reales del catálogo Tally.
// ──────────────────────────────────────────────────────────────────────────────

func TestSanitize_Vectores(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Blue Shirt", "Blue-Shirt"},
		{"  Blue   Shirt  ", "Blue-Shirt"},
		{"A/B.C#D$E[F]G", "A-B-C-D-E-F-G"},
		{"Camisa / Talla  #2", "Camisa-Talla-2"},
		{"ya-con-guiones", "ya-con-guiones"},
		{"dobles--guiones", "dobles-guiones"},
		{"back\\slash", "back-slash"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, keys.Sanitize(c.in), "Sanitize(%q)", c.in)
	}
}

func TestSanitize_Idempotente(t *testing.T) {
	// Aplicar dos veces no debe cambiar el resultado: la clave guardada puede
	// volver a pasar por la normalización en una lectura posterior.
	for _, in := range []string{"Blue Shirt", "A/B.C", "  x  [y]  "} {
		once := keys.Sanitize(in)
		assert.Equal(t, once, keys.Sanitize(once), "Sanitize no es idempotente para %q", in)
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "cochin-traders", keys.Slug("  Cochin   Traders "))
	assert.Equal(t, "abc", keys.Slug("ABC"))
	// Slug no toca caracteres ilegales; esa variante histórica se respeta.
	assert.Equal(t, "a.b", keys.Slug("A.B"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, keys.EqualFold(" Cochin Traders ", "cochin traders"))
	assert.False(t, keys.EqualFold("Cochin", "Kochi"))
}
