package fakephone

import "strings"

// Category names the kind of number requested from a locale.
type Category string

const (
	CategoryPhoneNumber        Category = "phone_number"
	CategoryCellphoneNumber    Category = "cellphone_number"
	CategoryLandlineNumber     Category = "landline_number"
	CategoryMobileNumber       Category = "mobile_number"
	CategoryMSISDN             Category = "msisdn"
	CategoryTollNumber         Category = "toll_number"
	CategoryServicePhoneNumber Category = "service_phone_number"
	CategoryTelephoneNumber    Category = "telephone_number"
	CategoryCountryCallingCode Category = "country_calling_code"

	// Philippine operator and area subtypes.
	CategoryGlobeMobileNumber           Category = "globe_mobile_number"
	CategorySmartMobileNumber           Category = "smart_mobile_number"
	CategorySunMobileNumber             Category = "sun_mobile_number"
	CategoryGlobeArea2LandlineNumber    Category = "globe_area2_landline_number"
	CategoryPLDTArea2LandlineNumber     Category = "pldt_area2_landline_number"
	CategoryBayantelArea2LandlineNumber Category = "bayantel_area2_landline_number"
	CategoryMiscArea2LandlineNumber     Category = "misc_area2_landline_number"
	CategoryArea2LandlineNumber         Category = "area2_landline_number"
	CategoryNonArea2LandlineNumber      Category = "non_area2_landline_number"
)

// phoneNumberMembers lists the generic categories an implicit phone_number unions over.
var phoneNumberMembers = []Category{
	CategoryCellphoneNumber,
	CategoryMobileNumber,
	CategoryLandlineNumber,
	CategoryTelephoneNumber,
	CategoryTollNumber,
}

var categoryReplacer = strings.NewReplacer(" ", "_", "-", "_", ".", "_")

// ParseCategory normalizes a category name: "Globe Mobile Number" and
// "globe-mobile-number" both become globe_mobile_number.
func ParseCategory(name string) Category {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return Category(categoryReplacer.Replace(normalized))
}

// IsUniversal reports whether the default provider can serve the category for any locale.
func (c Category) IsUniversal() bool {
	switch c {
	case CategoryPhoneNumber, CategoryMSISDN, CategoryCountryCallingCode:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}
