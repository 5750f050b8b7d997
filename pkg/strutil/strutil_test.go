package strutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/toner-control-api/pkg/strutil"
)

func TestFold_EliminaDiacriticos(t *testing.T) {
	cases := map[string]string{
		"Secretaría":   "Secretaria",
		"tóner":        "toner",
		"impresión":    "impresion",
		"ASCII normal": "ASCII normal",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, strutil.Fold(in))
	}
}

func TestCanonicalSKU(t *testing.T) {
	cases := map[string]string{
		"  hp-26a ":    "HP-26A",
		"tóner-hp26a":  "TONER-HP26A",
		"CF226A":       "CF226A",
		"   ":          "",
		"q2612a":       "Q2612A",
	}
	for in, want := range cases {
		assert.Equal(t, want, strutil.CanonicalSKU(in))
	}
}
