package libphonenumber

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-fakephone"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

type options struct {
	region string
	format phonenumbers.PhoneNumberFormat
}

// Option configures the libphonenumber formatter.
type Option func(*options)

// WithRegion forces parsing using the provided ISO 3166-1 alpha-2 country code.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = strings.ToUpper(strings.TrimSpace(region))
	}
}

// WithFormat selects the libphonenumber output format (defaults to E164).
func WithFormat(format phonenumbers.PhoneNumberFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// Formatter re-renders generated numbers through libphonenumber. Numbers the
// library cannot parse, or considers impossible, are returned unchanged.
type Formatter struct {
	gen *fakephone.Generator
	cfg options
}

// New wraps a generator.
func New(gen *fakephone.Generator, opts ...Option) *Formatter {
	cfg := options{format: phonenumbers.E164}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Formatter{gen: gen, cfg: cfg}
}

// Generate produces a number for locale and category and formats it.
func (f *Formatter) Generate(locale string, category fakephone.Category) (string, error) {
	raw, err := f.gen.GenerateCategory(locale, category)
	if err != nil {
		return "", err
	}
	return f.Format(locale, raw), nil
}

// Format renders raw using the region implied by locale.
func (f *Formatter) Format(locale, raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return value
	}

	region := f.determineRegion(locale, value)
	number, err := phonenumbers.Parse(value, region)
	if err != nil {
		return value
	}

	if !phonenumbers.IsPossibleNumber(number) {
		return value
	}

	formatted := phonenumbers.Format(number, f.cfg.format)
	if formatted == "" {
		return value
	}
	return formatted
}

func (f *Formatter) determineRegion(locale, value string) string {
	if f.cfg.region != "" {
		return f.cfg.region
	}

	if rs, err := f.gen.Registry().RuleSet(locale); err == nil {
		return rs.Region()
	}

	if region := regionFromLocale(locale); region != "" {
		return region
	}

	return regionFromCallingCode(value)
}

func regionFromLocale(locale string) string {
	if locale == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(cleaned)
	if err != nil {
		return ""
	}

	region, conf := tag.Region()
	if conf == language.No {
		return ""
	}

	return strings.ToUpper(region.String())
}

// regionFromCallingCode handles "+CC ..." output of the default provider, where
// the locale carries no region.
func regionFromCallingCode(value string) string {
	if !strings.HasPrefix(value, "+") {
		return ""
	}
	digits := strings.TrimPrefix(strings.Fields(value)[0], "+")
	for n := min(len(digits), 3); n > 0; n-- {
		code, err := strconv.Atoi(digits[:n])
		if err != nil || code <= 0 {
			continue
		}
		if region := phonenumbers.GetRegionCodeForCountryCode(code); region != "ZZ" {
			return region
		}
	}
	return ""
}
