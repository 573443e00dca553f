package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Olá Mundo!":               "ola_mundo",
		"  Meditação da Semana  ":  "meditacao_da_semana",
		"Galeria 2024 / Natal":     "galeria_2024_natal",
		"___":                      "pagina",
		"Ação-Social & Educação":   "acao_social_educacao",
		"ÇÃO":                      "cao",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
