// Package locale translates UI strings from embedded PO catalogs.
package locale

import (
	"embed"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed *.po
var catalogs embed.FS

// Fallback is used when a requested language has no catalog.
const Fallback = "en"

var current = mustLoad(Fallback)

func mustLoad(lang string) *gotext.Po {
	po, err := load(lang)
	if err != nil {
		panic(err)
	}
	return po
}

func load(lang string) (*gotext.Po, error) {
	data, err := catalogs.ReadFile(lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("locale: no catalog for %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}

// SetLanguage switches the active catalog. "fr_FR.UTF-8" style values are
// reduced to their language code. Unknown languages keep the fallback and
// return an error.
func SetLanguage(lang string) error {
	code := normalize(lang)
	po, err := load(code)
	if err != nil {
		current = mustLoad(Fallback)
		return err
	}
	current = po
	return nil
}

// Get translates key, formatting vars into the translation.
func Get(key string, vars ...any) string {
	return current.Get(key, vars...)
}

func normalize(lang string) string {
	s := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(s, "_.-@"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return Fallback
	}
	return s
}
