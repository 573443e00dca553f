package route

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug        = regexp.MustCompile(`[^a-z0-9]+`)
	multiUnderline = regexp.MustCompile(`_+`)
)

// Slugify folds accents and joins words with underscores.
// Example: "Olá Mundo!" -> "ola_mundo"
func Slugify(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	base := strings.ToLower(strings.TrimSpace(folded))
	base = nonSlug.ReplaceAllString(base, "_")
	base = multiUnderline.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")

	if base == "" {
		base = "pagina"
	}
	return base
}
