package fakephone

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func localeKey(locale string) string {
	return strings.ToLower(normalizeLocale(locale))
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// isBareRegion reports whether locale is an upper case ISO 3166 region such as "PH".
// Lower case two letter ids are languages.
func isBareRegion(locale string) bool {
	if len(locale) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if locale[i] < 'A' || locale[i] > 'Z' {
			return false
		}
	}
	_, err := language.ParseRegion(locale)
	return err == nil
}

// localeInfo describes how a locale string parsed, independent of registration.
type localeInfo struct {
	normalized string
	canonical  string
	wellFormed bool
	explicit   bool
	region     string
	base       string
}

func parseLocaleInfo(locale string) localeInfo {
	info := localeInfo{normalized: normalizeLocale(locale)}
	if info.normalized == "" {
		return info
	}

	if isBareRegion(info.normalized) {
		info.wellFormed = true
		info.explicit = true
		info.region = info.normalized
		return info
	}

	tag, err := language.Parse(info.normalized)
	if err != nil {
		return info
	}
	info.wellFormed = true
	info.canonical = tag.String()

	base, _ := tag.Base()
	info.base = base.String()

	region, conf := tag.Region()
	if conf != language.No && region.String() != "ZZ" {
		info.region = region.String()
		info.explicit = conf == language.Exact
	}
	return info
}
