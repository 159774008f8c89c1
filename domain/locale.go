package domain

import "golang.org/x/text/language"

// Locale is a site content locale. The site runs exactly two locales;
// content missing in one may still exist in the other.
type Locale string

const (
	LocaleSerbian Locale = "sr"
	LocaleEnglish Locale = "en"
)

// DefaultLocale applies when a request does not specify one.
const DefaultLocale = LocaleSerbian

// ParseLocale maps raw input to a supported locale, defaulting on
// anything unrecognized.
func ParseLocale(raw string) Locale {
	return ParseLocaleOr(raw, DefaultLocale)
}

// ParseLocaleOr maps raw input to a supported locale, returning def on
// anything unrecognized. An unsupported def falls back to DefaultLocale.
func ParseLocaleOr(raw string, def Locale) Locale {
	switch Locale(raw) {
	case LocaleSerbian, LocaleEnglish:
		return Locale(raw)
	}
	switch def {
	case LocaleSerbian, LocaleEnglish:
		return def
	}
	return DefaultLocale
}

// Fallback returns the other supported locale.
func (l Locale) Fallback() Locale {
	if l == LocaleSerbian {
		return LocaleEnglish
	}
	return LocaleSerbian
}

// Tag returns the BCP 47 tag used for collation.
func (l Locale) Tag() language.Tag {
	if l == LocaleSerbian {
		return language.Serbian
	}
	return language.English
}
