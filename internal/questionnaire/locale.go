package questionnaire

import (
	"embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed banks/*.yaml
var bankFS embed.FS

// embeddedLocales lists the built-in banks. The first entry is the fallback.
var embeddedLocales = []language.Tag{
	language.Russian,
	language.English,
}

var localeMatcher = language.NewMatcher(embeddedLocales)

// Locales returns the locales with a built-in bank.
func Locales() []string {
	out := make([]string, len(embeddedLocales))
	for i, t := range embeddedLocales {
		out[i] = t.String()
	}
	return out
}

// Default returns the built-in bank that best matches locale. The locale
// may be a BCP-47 tag ("en-GB") or a POSIX LANG value ("en_US.UTF-8").
// Unknown or empty locales fall back to Russian.
func Default(locale string) (*Bank, error) {
	tag := MatchLocale(locale)
	data, err := bankFS.ReadFile("banks/" + tag.String() + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded bank %s: %w", tag, err)
	}
	return Parse(data)
}

// MatchLocale resolves a locale string to one of the built-in bank locales.
func MatchLocale(locale string) language.Tag {
	locale = normalizeLocale(locale)
	if locale == "" {
		return embeddedLocales[0]
	}
	_, idx := language.MatchStrings(localeMatcher, locale)
	return embeddedLocales[idx]
}

// normalizeLocale turns "en_US.UTF-8" into "en-US". "C" and "POSIX" are
// treated as unset.
func normalizeLocale(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	switch strings.ToUpper(s) {
	case "C", "POSIX":
		return ""
	}
	return s
}
