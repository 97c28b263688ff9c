// Package docgeni18n adapts goliatone/go-i18n translators to the go-docgen
// Translator collaborator. Translation tokens address keys as
// "app.key"; the adapter flattens them into the go-i18n key space.
package docgeni18n

import (
	i18n "github.com/goliatone/go-i18n"

	"github.com/goliatone/go-docgen/docgen"
)

// Translator resolves translate tokens through a go-i18n translator.
type Translator struct {
	Translator i18n.Translator
	Locale     string
}

// New wraps an existing go-i18n translator.
func New(translator i18n.Translator, locale string) *Translator {
	return &Translator{Translator: translator, Locale: locale}
}

// NewStatic builds a translator over a static locale → key → value store.
func NewStatic(translations map[string]map[string]string, locale string) (*Translator, error) {
	store := i18n.NewStaticStore(translations)
	translator, err := i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(locale))
	if err != nil {
		return nil, err
	}
	return &Translator{Translator: translator, Locale: locale}, nil
}

// Lookup resolves a translation; a missing key reports no value so the
// renderer substitutes an empty string.
func (t *Translator) Lookup(app, key string) (string, bool) {
	if t == nil || t.Translator == nil {
		return "", false
	}
	full := app + "." + key
	out, err := t.Translator.Translate(t.Locale, full)
	if err != nil || out == "" || out == full {
		return "", false
	}
	return out, true
}

var _ docgen.Translator = (*Translator)(nil)
