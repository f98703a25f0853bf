package fakephone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DialPlan describes how the default provider lays out a national number.
// CountryCode should be digits without the leading plus sign.
// Groups defines the digit grouping for the national significant number.
type DialPlan struct {
	CountryCode string
	Groups      []int
}

// DialPlanForRegion derives a dial plan for an ISO 3166 region from libphonenumber
// metadata, using groups for the national number layout.
func DialPlanForRegion(region string, groups []int) (DialPlan, bool) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DialPlan{}, false
	}
	code := phonenumbers.GetCountryCodeForRegion(region)
	if code <= 0 {
		return DialPlan{}, false
	}
	return DialPlan{CountryCode: strconv.Itoa(code), Groups: append([]int(nil), groups...)}.normalize(), true
}

func (plan DialPlan) normalize() DialPlan {
	groups := normalizePhoneGroups(plan.Groups)
	if len(groups) == 0 {
		groups = append([]int(nil), defaultGroups...)
	}
	return DialPlan{
		CountryCode: strings.TrimPrefix(strings.TrimSpace(plan.CountryCode), "+"),
		Groups:      groups,
	}
}

// Pattern renders the national number layout, one digit placeholder per position.
func (plan DialPlan) Pattern() Pattern {
	parts := make([]string, 0, len(plan.Groups))
	for _, g := range plan.Groups {
		parts = append(parts, strings.Repeat(string(TokenDigit), g))
	}
	return MustParsePattern(strings.Join(parts, " "))
}
