// Package i18n provides the site's translations and locale negotiation.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/byteik/site/internal/errors"
)

// Bundle is the set of locales the site serves.
type Bundle struct {
	locales       []string
	tags          []language.Tag
	defaultLocale string
	matcher       language.Matcher
	catalog       *catalog.Builder
}

func normalize(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}

// New builds a bundle for locales. Every locale must have a message table and
// defaultLocale must be one of them.
func New(locales []string, defaultLocale string) (*Bundle, error) {
	if len(locales) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "at least one locale is required")
	}

	defaultLocale = normalize(defaultLocale)
	b := &Bundle{
		defaultLocale: defaultLocale,
		catalog:       catalog.NewBuilder(catalog.Fallback(language.English)),
	}

	seen := make(map[string]bool, len(locales))
	for _, locale := range locales {
		locale = normalize(locale)
		if seen[locale] {
			continue
		}
		seen[locale] = true

		table, ok := messages[locale]
		if !ok {
			return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("no translations for locale %q", locale)).WithContext("locale", locale)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.ErrCodeConfigInvalid, "invalid locale tag")
		}
		for key, msg := range table {
			if err := b.catalog.SetString(tag, key, msg); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.ErrCodeConfigInvalid, "register translation")
			}
		}
		b.locales = append(b.locales, locale)
		b.tags = append(b.tags, tag)
	}

	if !seen[defaultLocale] {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("default locale %q is not among the site locales", defaultLocale))
	}

	// Default first so that a zero-confidence match lands on it.
	for i, locale := range b.locales {
		if locale == defaultLocale && i != 0 {
			b.locales[0], b.locales[i] = b.locales[i], b.locales[0]
			b.tags[0], b.tags[i] = b.tags[i], b.tags[0]
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Default is the English and Indonesian bundle.
func Default() *Bundle {
	b, err := New([]string{"en", "id"}, "en")
	if err != nil {
		panic(err)
	}
	return b
}

// Locales returns the served locales, default first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.locales))
	copy(out, b.locales)
	return out
}

// DefaultLocale returns the fallback locale.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// Has reports whether locale is served.
func (b *Bundle) Has(locale string) bool {
	for _, l := range b.locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Negotiate picks a served locale for an Accept-Language header value.
func (b *Bundle) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.defaultLocale
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return b.defaultLocale
	}
	return b.locales[index]
}

// Translator returns a translator for locale, falling back to the default
// locale when it is not served.
func (b *Bundle) Translator(locale string) *Translator {
	if !b.Has(locale) {
		locale = b.defaultLocale
	}
	return &Translator{
		locale:  locale,
		printer: message.NewPrinter(language.MustParse(locale), message.Catalog(b.catalog)),
	}
}

// Keys lists every translation key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(messages["en"]))
	for k := range messages["en"] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Translator resolves keys for one locale.
type Translator struct {
	locale  string
	printer *message.Printer
}

// Locale returns the translator's locale.
func (t *Translator) Locale() string {
	return t.locale
}

// T returns the text for key. Unknown keys are returned as-is.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}

// Label renders a locale code for the language switcher, e.g. "EN".
func Label(locale string) string {
	return cases.Upper(language.Und).String(locale)
}
