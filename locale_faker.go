package fakephone

// LocaleFaker is a Generator bound to one locale.
type LocaleFaker struct {
	g      *Generator
	locale string
}

// Locale binds the generator to locale. Malformed locale ids are rejected; well
// formed but unregistered ones are accepted and served by the default provider.
func (g *Generator) Locale(locale string) (*LocaleFaker, error) {
	normalized := normalizeLocale(locale)
	if normalized != "" {
		if _, info, err := g.registry.resolve(normalized); err != nil && (!info.wellFormed || g.strict) {
			return nil, newCategoryError(normalized, "", err)
		}
	}
	return &LocaleFaker{g: g, locale: normalized}, nil
}

// Code returns the bound locale id.
func (f *LocaleFaker) Code() string {
	return f.locale
}

// Generate expands a category by name.
func (f *LocaleFaker) Generate(category string) (string, error) {
	return f.g.Generate(f.locale, category)
}

func (f *LocaleFaker) generate(category Category) (string, error) {
	return f.g.GenerateCategory(f.locale, category)
}

// CountryCallingCode returns the "+NN" calling code of the bound locale.
func (f *LocaleFaker) CountryCallingCode() (string, error) {
	return f.generate(CategoryCountryCallingCode)
}

// PhoneNumber returns a generic phone number.
func (f *LocaleFaker) PhoneNumber() (string, error) { return f.generate(CategoryPhoneNumber) }

// MSISDN returns a digits only number prefixed by the calling code.
func (f *LocaleFaker) MSISDN() (string, error) { return f.generate(CategoryMSISDN) }

// CellphoneNumber returns a cell phone number.
func (f *LocaleFaker) CellphoneNumber() (string, error) { return f.generate(CategoryCellphoneNumber) }

// LandlineNumber returns a fixed line number.
func (f *LocaleFaker) LandlineNumber() (string, error) { return f.generate(CategoryLandlineNumber) }

// MobileNumber returns a mobile number.
func (f *LocaleFaker) MobileNumber() (string, error) { return f.generate(CategoryMobileNumber) }

// TollNumber returns a toll or toll free number.
func (f *LocaleFaker) TollNumber() (string, error) { return f.generate(CategoryTollNumber) }

// TelephoneNumber returns a landline telephone number.
func (f *LocaleFaker) TelephoneNumber() (string, error) { return f.generate(CategoryTelephoneNumber) }

// ServicePhoneNumber returns a short service or emergency number.
func (f *LocaleFaker) ServicePhoneNumber() (string, error) {
	return f.generate(CategoryServicePhoneNumber)
}

// Philippine operator numbers. Other locales return ErrUnsupportedCategory.

// GlobeMobileNumber returns a Globe Telecom mobile number.
func (f *LocaleFaker) GlobeMobileNumber() (string, error) {
	return f.generate(CategoryGlobeMobileNumber)
}

// SmartMobileNumber returns a Smart Communications mobile number.
func (f *LocaleFaker) SmartMobileNumber() (string, error) {
	return f.generate(CategorySmartMobileNumber)
}

// SunMobileNumber returns a Sun Cellular mobile number.
func (f *LocaleFaker) SunMobileNumber() (string, error) {
	return f.generate(CategorySunMobileNumber)
}

// GlobeArea2LandlineNumber returns a Metro Manila Globe landline, identifier 7xxx.
func (f *LocaleFaker) GlobeArea2LandlineNumber() (string, error) {
	return f.generate(CategoryGlobeArea2LandlineNumber)
}

// PLDTArea2LandlineNumber returns a Metro Manila PLDT landline, identifier 8xxx.
func (f *LocaleFaker) PLDTArea2LandlineNumber() (string, error) {
	return f.generate(CategoryPLDTArea2LandlineNumber)
}

// BayantelArea2LandlineNumber returns a Metro Manila Bayantel landline.
func (f *LocaleFaker) BayantelArea2LandlineNumber() (string, error) {
	return f.generate(CategoryBayantelArea2LandlineNumber)
}

// MiscArea2LandlineNumber returns a Metro Manila landline from the smaller carriers.
func (f *LocaleFaker) MiscArea2LandlineNumber() (string, error) {
	return f.generate(CategoryMiscArea2LandlineNumber)
}

// Area2LandlineNumber returns a Metro Manila landline from any carrier.
func (f *LocaleFaker) Area2LandlineNumber() (string, error) {
	return f.generate(CategoryArea2LandlineNumber)
}

// NonArea2LandlineNumber returns a landline outside Metro Manila.
func (f *LocaleFaker) NonArea2LandlineNumber() (string, error) {
	return f.generate(CategoryNonArea2LandlineNumber)
}
