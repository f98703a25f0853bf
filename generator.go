package fakephone

import "slices"

// Generator dispatches category requests to locale providers and falls back to
// the calling code driven default provider for universal categories.
// A Generator is safe for concurrent use when its Source is.
type Generator struct {
	registry      *Registry
	src           Source
	defaultLocale string
	strict        bool
	providers     map[string]*Provider
	dialPlans     map[string]DialPlan
}

// New builds a Generator from options.
func New(opts ...Option) (*Generator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildGenerator()
}

// Registry returns the backing registry.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate returns one random number of category for locale. An empty locale
// uses the configured default locale, or the generic default provider.
func (g *Generator) Generate(locale, category string) (string, error) {
	return g.GenerateCategory(locale, ParseCategory(category))
}

// GenerateCategory is Generate with an already parsed category. In strict mode an
// empty locale with no default locale fails with ErrUnknownLocale.
func (g *Generator) GenerateCategory(locale string, category Category) (string, error) {
	if locale == "" {
		locale = g.defaultLocale
	}

	out, err := g.dispatch(locale, category)
	if err != nil {
		return "", newCategoryError(locale, category, err)
	}
	return out, nil
}

func (g *Generator) dispatch(locale string, category Category) (string, error) {
	if locale == "" {
		if g.strict {
			return "", ErrUnknownLocale
		}
		return g.fallback("", "").Generate(category)
	}

	rs, info, err := g.registry.resolve(locale)
	if err == nil {
		provider := g.providers[rs.key]
		if provider.Supports(category) {
			return provider.Generate(category)
		}
		if category.IsUniversal() && !g.strict {
			return g.fallback(rs.region, rs.callingCode).Generate(category)
		}
		return "", ErrUnsupportedCategory
	}

	if !info.wellFormed || g.strict || !category.IsUniversal() {
		return "", ErrUnknownLocale
	}
	return g.fallback(info.region, "").Generate(category)
}

func (g *Generator) fallback(region, callingCode string) *defaultProvider {
	plan := g.registry.DefaultDialPlan(callingCode)
	if override, ok := g.dialPlans[region]; ok {
		plan.Groups = override.Groups
	}
	if plan.CountryCode == "" && region != "" {
		if derived, ok := DialPlanForRegion(region, plan.Groups); ok {
			plan = derived
		}
	}
	return newDefaultProvider(g.registry, plan, g.src)
}

// Supports reports whether Generate would serve category for locale.
func (g *Generator) Supports(locale string, category Category) bool {
	if locale == "" {
		locale = g.defaultLocale
	}
	if locale == "" {
		return !g.strict && category.IsUniversal()
	}

	rs, info, err := g.registry.resolve(locale)
	if err == nil {
		return g.providers[rs.key].Supports(category) || (category.IsUniversal() && !g.strict)
	}
	return info.wellFormed && !g.strict && category.IsUniversal()
}

// Categories lists the categories a locale serves, universal ones included.
func (g *Generator) Categories(locale string) ([]Category, error) {
	if locale == "" {
		locale = g.defaultLocale
	}
	universal := []Category{CategoryCountryCallingCode, CategoryMSISDN, CategoryPhoneNumber}
	if locale == "" {
		if g.strict {
			return nil, newCategoryError(locale, "", ErrUnknownLocale)
		}
		return universal, nil
	}

	rs, info, err := g.registry.resolve(locale)
	if err != nil {
		if info.wellFormed && !g.strict {
			return universal, nil
		}
		return nil, newCategoryError(locale, "", err)
	}

	categories := g.providers[rs.key].Categories()
	if !g.strict && !g.providers[rs.key].Supports(CategoryMSISDN) {
		categories = append(categories, CategoryMSISDN)
	}
	slices.Sort(categories)
	return categories, nil
}

// CountryCallingCode returns the "+NN" calling code of locale. Locales without a
// region draw from the registry's known calling codes.
func (g *Generator) CountryCallingCode(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryCountryCallingCode)
}

// PhoneNumber returns a generic phone number for locale.
func (g *Generator) PhoneNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryPhoneNumber)
}

// MSISDN returns a digits only subscriber number prefixed by the calling code.
func (g *Generator) MSISDN(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryMSISDN)
}

// CellphoneNumber returns a cell phone number for locale.
func (g *Generator) CellphoneNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryCellphoneNumber)
}

// LandlineNumber returns a fixed line number for locale.
func (g *Generator) LandlineNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryLandlineNumber)
}

// MobileNumber returns a mobile number for locale.
func (g *Generator) MobileNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryMobileNumber)
}

// TollNumber returns a toll or toll free number for locale.
func (g *Generator) TollNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryTollNumber)
}

// ServicePhoneNumber returns a short service or emergency number for locale.
func (g *Generator) ServicePhoneNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryServicePhoneNumber)
}

// TelephoneNumber returns a landline telephone number for locale.
func (g *Generator) TelephoneNumber(locale string) (string, error) {
	return g.GenerateCategory(locale, CategoryTelephoneNumber)
}
