package fakephone

import "strings"

// defaultProvider serves the universal categories for locales without a rule set,
// or for categories a rule set does not declare. It only knows calling codes.
type defaultProvider struct {
	callingCode  string
	codes        []string
	national     Pattern
	msisdnLength int
	src          Source
}

func newDefaultProvider(registry *Registry, plan DialPlan, src Source) *defaultProvider {
	plan = plan.normalize()
	return &defaultProvider{
		callingCode:  plan.CountryCode,
		codes:        registry.defaultCodes,
		national:     plan.Pattern(),
		msisdnLength: registry.msisdnLength,
		src:          src,
	}
}

func (d *defaultProvider) Supports(category Category) bool {
	return category.IsUniversal()
}

func (d *defaultProvider) Generate(category Category) (string, error) {
	switch category {
	case CategoryCountryCallingCode:
		return "+" + d.code(), nil
	case CategoryPhoneNumber:
		return "+" + d.code() + " " + d.national.Expand(d.src), nil
	case CategoryMSISDN:
		return d.msisdn(), nil
	default:
		return "", ErrUnsupportedCategory
	}
}

func (d *defaultProvider) code() string {
	if d.callingCode != "" {
		return d.callingCode
	}
	return pick(d.src, d.codes)
}

// msisdn is the calling code followed by subscriber digits, msisdnLength digits in total.
func (d *defaultProvider) msisdn() string {
	code := d.code()
	var out strings.Builder
	out.Grow(d.msisdnLength)
	out.WriteString(code)
	for i := len(code); i < d.msisdnLength; i++ {
		out.WriteByte(digitAlphabet[d.src.IntN(len(digitAlphabet))])
	}
	return out.String()
}
