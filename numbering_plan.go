package fakephone

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// planDocument is the on disk shape of a numbering plan (YAML or JSON).
type planDocument struct {
	Key                string                           `yaml:"key" json:"key"`
	Region             string                           `yaml:"region" json:"region"`
	CountryCallingCode string                           `yaml:"country_calling_code" json:"country_calling_code"`
	Locales            []string                         `yaml:"locales" json:"locales"`
	IdentifierSets     map[string]identifierSetDocument `yaml:"identifier_sets" json:"identifier_sets"`
	Categories         map[string]ruleDocument          `yaml:"categories" json:"categories"`
	Extensions         []string                         `yaml:"extensions" json:"extensions"`
}

type identifierSetDocument struct {
	Values []string        `yaml:"values" json:"values"`
	Ranges []rangeDocument `yaml:"ranges" json:"ranges"`
}

// rangeDocument is an inclusive decimal range, expanded without padding.
type rangeDocument struct {
	From int `yaml:"from" json:"from"`
	To   int `yaml:"to" json:"to"`
}

type ruleDocument struct {
	Formats []string              `yaml:"formats" json:"formats"`
	Weights []int                 `yaml:"weights" json:"weights"`
	Set     string                `yaml:"set" json:"set"`
	Union   []unionMemberDocument `yaml:"union" json:"union"`
}

// unionMemberDocument accepts a bare category name or {category, weight}.
// An omitted weight counts as one; an explicit zero disables the member.
type unionMemberDocument struct {
	Category string `yaml:"category" json:"category"`
	Weight   *int   `yaml:"weight" json:"weight"`
}

func (m *unionMemberDocument) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		m.Category = value.Value
		return nil
	}
	type plain unionMemberDocument
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*m = unionMemberDocument(out)
	return nil
}

func (m *unionMemberDocument) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		m.Category = name
		return nil
	}
	type plain unionMemberDocument
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = unionMemberDocument(out)
	return nil
}

const maxRangeSize = 100000

// RuleKind selects the generation strategy of a Rule.
type RuleKind uint8

const (
	// RuleTemplate expands one of the rule formats as is.
	RuleTemplate RuleKind = iota
	// RulePrefix inserts an identifier from a named set into the slot of a format.
	RulePrefix
	// RuleUnion delegates to one of several categories of the same rule set.
	RuleUnion
)

func (k RuleKind) String() string {
	switch k {
	case RulePrefix:
		return "prefix"
	case RuleUnion:
		return "union"
	default:
		return "template"
	}
}

// Rule is the compiled generation rule for one category.
type Rule struct {
	category Category
	kind     RuleKind
	formats  []Pattern
	choice   Distribution
	set      string
	union    Distribution
}

func (r Rule) Category() Category { return r.category }
func (r Rule) Kind() RuleKind     { return r.kind }

// IdentifierSet names the set a prefix rule draws from.
func (r Rule) IdentifierSet() string { return r.set }

// Formats returns a copy of the rule patterns.
func (r Rule) Formats() []Pattern {
	if len(r.formats) == 0 {
		return nil
	}
	out := make([]Pattern, len(r.formats))
	copy(out, r.formats)
	return out
}

// FormatWeights exposes the format selection table.
func (r Rule) FormatWeights() Distribution { return r.choice }

// Union exposes the member distribution of a union rule.
func (r Rule) Union() Distribution { return r.union }

// RuleSet is the immutable numbering plan of one region.
type RuleSet struct {
	key         string
	region      string
	callingCode string
	source      string
	locales     []string
	languages   map[string]struct{}
	sets        map[string][]string
	rules       map[Category]*Rule
	categories  []Category
	extensions  []Pattern
}

func (rs *RuleSet) Key() string    { return rs.key }
func (rs *RuleSet) Region() string { return rs.region }

// Source names the file the rule set was loaded from.
func (rs *RuleSet) Source() string { return rs.source }

// CountryCallingCode returns the calling code digits without a leading plus sign.
func (rs *RuleSet) CountryCallingCode() string { return rs.callingCode }

// Locales returns the locale ids mapped to this rule set.
func (rs *RuleSet) Locales() []string {
	return append([]string(nil), rs.locales...)
}

// IdentifierSet returns a copy of the named set.
func (rs *RuleSet) IdentifierSet(name string) ([]string, bool) {
	values, ok := rs.sets[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// IdentifierSetNames returns set names sorted alphabetically.
func (rs *RuleSet) IdentifierSetNames() []string {
	names := make([]string, 0, len(rs.sets))
	for name := range rs.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rule returns the compiled rule for a category.
func (rs *RuleSet) Rule(category Category) (Rule, bool) {
	rule, ok := rs.rules[category]
	if !ok {
		return Rule{}, false
	}
	return *rule, true
}

// Categories returns the declared categories sorted alphabetically.
func (rs *RuleSet) Categories() []Category {
	return append([]Category(nil), rs.categories...)
}

// Extensions returns the optional extension suffix patterns.
func (rs *RuleSet) Extensions() []Pattern {
	return append([]Pattern(nil), rs.extensions...)
}

func (rs *RuleSet) hasLanguage(base string) bool {
	_, ok := rs.languages[base]
	return ok
}

func compileRuleSet(source string, doc planDocument) (*RuleSet, error) {
	region := strings.ToUpper(strings.TrimSpace(doc.Region))
	if region == "" {
		return nil, configErrorf(source, "region", "missing region")
	}
	if _, err := language.ParseRegion(region); err != nil {
		return nil, configErrorf(source, "region", "invalid region %q: %w", region, err)
	}

	key := strings.TrimSpace(doc.Key)
	if key == "" {
		key = region
	}

	callingCode, err := compileCallingCode(source, region, doc.CountryCallingCode)
	if err != nil {
		return nil, err
	}

	rs := &RuleSet{
		key:         key,
		region:      region,
		callingCode: callingCode,
		source:      source,
		languages:   make(map[string]struct{}),
		sets:        make(map[string][]string, len(doc.IdentifierSets)),
		rules:       make(map[Category]*Rule, len(doc.Categories)+1),
	}

	if err := rs.compileLocales(doc.Locales); err != nil {
		return nil, err
	}

	for name, setDoc := range doc.IdentifierSets {
		values, err := expandIdentifierSet(source, name, setDoc)
		if err != nil {
			return nil, err
		}
		rs.sets[name] = values
	}

	if len(doc.Categories) == 0 {
		return nil, configErrorf(source, "categories", "no categories declared")
	}
	for name, ruleDoc := range doc.Categories {
		category := ParseCategory(name)
		if category == "" || category == CategoryCountryCallingCode {
			return nil, configErrorf(source, "categories", "invalid category name %q", name)
		}
		if _, exists := rs.rules[category]; exists {
			return nil, configErrorf(source, "categories", "duplicate category %q", category)
		}
		rule, err := rs.compileRule(category, ruleDoc)
		if err != nil {
			return nil, err
		}
		rs.rules[category] = rule
	}

	if err := rs.checkUnions(); err != nil {
		return nil, err
	}
	if err := rs.checkMSISDN(); err != nil {
		return nil, err
	}
	if err := rs.addImplicitPhoneNumber(); err != nil {
		return nil, err
	}

	for i, ext := range doc.Extensions {
		pattern, err := ParsePattern(ext)
		if err != nil {
			return nil, wrapPatternError(source, fmt.Sprintf("extensions[%d]", i), err)
		}
		if pattern.HasSlot() {
			return nil, configErrorf(source, fmt.Sprintf("extensions[%d]", i), "extension %q must not contain a slot", ext)
		}
		rs.extensions = append(rs.extensions, pattern)
	}

	rs.categories = make([]Category, 0, len(rs.rules))
	for category := range rs.rules {
		rs.categories = append(rs.categories, category)
	}
	sort.Slice(rs.categories, func(i, j int) bool { return rs.categories[i] < rs.categories[j] })

	return rs, nil
}

func compileCallingCode(source, region, raw string) (string, error) {
	code := strings.TrimPrefix(strings.TrimSpace(raw), "+")
	if code == "" {
		return "", configErrorf(source, "country_calling_code", "missing calling code")
	}
	if !isDigits(code) {
		return "", configErrorf(source, "country_calling_code", "calling code %q is not numeric", raw)
	}

	expected := phonenumbers.GetCountryCodeForRegion(region)
	if expected == 0 {
		return "", configErrorf(source, "region", "region %q has no calling code", region)
	}
	if strconv.Itoa(expected) != code {
		return "", configErrorf(source, "country_calling_code", "calling code %s does not match region %s (+%d)", code, region, expected)
	}
	return code, nil
}

func (rs *RuleSet) compileLocales(locales []string) error {
	if len(locales) == 0 {
		return configErrorf(rs.source, "locales", "no locales declared")
	}

	seen := make(map[string]struct{}, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			return configErrorf(rs.source, "locales", "empty locale id")
		}
		tag, err := language.Parse(normalized)
		if err != nil {
			return configErrorf(rs.source, "locales", "invalid locale %q: %w", locale, err)
		}
		if region, conf := tag.Region(); conf == language.Exact && region.String() != rs.region {
			return configErrorf(rs.source, "locales", "locale %q does not belong to region %s", locale, rs.region)
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		rs.locales = append(rs.locales, normalized)

		base, _ := tag.Base()
		rs.languages[base.String()] = struct{}{}
	}
	sort.Strings(rs.locales)
	return nil
}

func expandIdentifierSet(source, name string, doc identifierSetDocument) ([]string, error) {
	field := "identifier_sets." + name
	values := make([]string, 0, len(doc.Values))
	for _, value := range doc.Values {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, configErrorf(source, field, "empty identifier")
		}
		values = append(values, value)
	}

	for _, r := range doc.Ranges {
		if r.From < 0 || r.To < r.From {
			return nil, configErrorf(source, field, "invalid range %d..%d", r.From, r.To)
		}
		if r.To-r.From >= maxRangeSize {
			return nil, configErrorf(source, field, "range %d..%d exceeds %d values", r.From, r.To, maxRangeSize)
		}
		for n := r.From; n <= r.To; n++ {
			values = append(values, strconv.Itoa(n))
		}
	}

	if len(values) == 0 {
		return nil, configErrorf(source, field, "identifier set is empty")
	}
	return values, nil
}

func (rs *RuleSet) compileRule(category Category, doc ruleDocument) (*Rule, error) {
	field := "categories." + string(category)
	rule := &Rule{category: category}

	hasUnion := len(doc.Union) > 0
	hasFormats := len(doc.Formats) > 0
	switch {
	case hasUnion && (hasFormats || doc.Set != ""):
		return nil, configErrorf(rs.source, field, "union rules cannot declare formats or a set")
	case hasUnion:
		rule.kind = RuleUnion
		entries := make([]WeightedName, len(doc.Union))
		for i, member := range doc.Union {
			weight := 1
			if member.Weight != nil {
				weight = *member.Weight
			}
			entries[i] = WeightedName{Name: string(ParseCategory(member.Category)), Weight: weight}
		}
		union, err := NewDistribution(entries...)
		if err != nil {
			return nil, wrapPatternError(rs.source, field, err)
		}
		rule.union = union
		return rule, nil
	case !hasFormats:
		return nil, configErrorf(rs.source, field, "format list is empty")
	}

	if doc.Set != "" {
		if _, ok := rs.sets[doc.Set]; !ok {
			return nil, configErrorf(rs.source, field, "unknown identifier set %q", doc.Set)
		}
		rule.kind = RulePrefix
		rule.set = doc.Set
	}

	entries := make([]WeightedName, len(doc.Formats))
	for i, raw := range doc.Formats {
		pattern, err := ParsePattern(raw)
		if err != nil {
			return nil, wrapPatternError(rs.source, fmt.Sprintf("%s.formats[%d]", field, i), err)
		}
		if rule.kind == RulePrefix && !pattern.HasSlot() {
			return nil, configErrorf(rs.source, field, "format %q needs a %s slot for set %q", raw, SlotToken, rule.set)
		}
		if rule.kind == RuleTemplate && pattern.HasSlot() {
			return nil, configErrorf(rs.source, field, "format %q has a slot but no identifier set", raw)
		}
		rule.formats = append(rule.formats, pattern)
		entries[i] = WeightedName{Name: raw, Weight: 1}
	}

	if len(doc.Weights) > 0 {
		if len(doc.Weights) != len(doc.Formats) {
			return nil, configErrorf(rs.source, field, "%d weights for %d formats", len(doc.Weights), len(doc.Formats))
		}
		for i, weight := range doc.Weights {
			entries[i].Weight = weight
		}
	}

	choice, err := NewDistribution(entries...)
	if err != nil {
		return nil, wrapPatternError(rs.source, field, err)
	}
	rule.choice = choice
	return rule, nil
}

func (rs *RuleSet) checkUnions() error {
	for category, rule := range rs.rules {
		if rule.kind != RuleUnion {
			continue
		}
		for _, member := range rule.union.Names() {
			if _, ok := rs.rules[Category(member)]; !ok {
				return configErrorf(rs.source, "categories."+string(category), "union member %q is not declared", member)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[Category]int, len(rs.rules))
	var visit func(Category) error
	visit = func(category Category) error {
		switch state[category] {
		case visiting:
			return configErrorf(rs.source, "categories."+string(category), "union cycle")
		case done:
			return nil
		}
		state[category] = visiting
		if rule := rs.rules[category]; rule.kind == RuleUnion {
			for _, member := range rule.union.Names() {
				if err := visit(Category(member)); err != nil {
					return err
				}
			}
		}
		state[category] = done
		return nil
	}

	for category := range rs.rules {
		if err := visit(category); err != nil {
			return err
		}
	}
	return nil
}

// checkMSISDN enforces digits only output for a declared msisdn rule.
func (rs *RuleSet) checkMSISDN() error {
	rule, ok := rs.rules[CategoryMSISDN]
	if !ok {
		return nil
	}
	field := "categories." + string(CategoryMSISDN)
	if rule.kind == RuleUnion {
		return configErrorf(rs.source, field, "msisdn must be a template or prefix rule")
	}
	for _, pattern := range rule.formats {
		for _, tok := range pattern.tokens {
			switch tok.kind {
			case tokenLiteral:
				if !isDigits(tok.literal) {
					return configErrorf(rs.source, field, "format %q has non digit literal %q", pattern.source, tok.literal)
				}
			case tokenPlaceholder:
				if tok.alphabet != digitAlphabet && tok.alphabet != nonZeroDigitAlphabet {
					return configErrorf(rs.source, field, "format %q has a letter placeholder", pattern.source)
				}
			}
		}
	}
	if rule.kind == RulePrefix {
		for _, id := range rs.sets[rule.set] {
			if !isDigits(id) {
				return configErrorf(rs.source, field, "identifier %q in set %q is not numeric", id, rule.set)
			}
		}
	}
	return nil
}

// checkMSISDNLength requires every msisdn expansion to carry exactly length digits.
func (rs *RuleSet) checkMSISDNLength(length int) error {
	rule, ok := rs.rules[CategoryMSISDN]
	if !ok {
		return nil
	}
	field := "categories." + string(CategoryMSISDN)
	ids := []string{""}
	if rule.kind == RulePrefix {
		ids = rs.sets[rule.set]
	}
	for _, pattern := range rule.formats {
		fixed := pattern.Placeholders()
		for _, tok := range pattern.tokens {
			if tok.kind == tokenLiteral {
				fixed += len(tok.literal)
			}
		}
		for _, id := range ids {
			if n := fixed + len(id); n != length {
				return configErrorf(rs.source, field, "format %q with identifier %q expands to %d digits, want %d", pattern.source, id, n, length)
			}
		}
	}
	return nil
}

// addImplicitPhoneNumber unions the generic categories when phone_number is not declared.
func (rs *RuleSet) addImplicitPhoneNumber() error {
	if _, ok := rs.rules[CategoryPhoneNumber]; ok {
		return nil
	}

	var members []string
	for _, category := range phoneNumberMembers {
		if _, ok := rs.rules[category]; ok {
			members = append(members, string(category))
		}
	}
	if len(members) == 0 {
		for category := range rs.rules {
			if category == CategoryMSISDN || category == CategoryServicePhoneNumber {
				continue
			}
			members = append(members, string(category))
		}
		sort.Strings(members)
	}
	if len(members) == 0 {
		return configErrorf(rs.source, "categories", "no category can back phone_number")
	}

	union, err := UniformDistribution(members...)
	if err != nil {
		return wrapPatternError(rs.source, "categories."+string(CategoryPhoneNumber), err)
	}
	rs.rules[CategoryPhoneNumber] = &Rule{category: CategoryPhoneNumber, kind: RuleUnion, union: union}
	return nil
}

// wrapPatternError attaches the plan source and field to errors raised by
// ParsePattern and NewDistribution.
func wrapPatternError(source, field string, err error) error {
	if cfgErr, ok := err.(*ConfigError); ok {
		return &ConfigError{Source: source, Field: field, Err: cfgErr.Err}
	}
	return &ConfigError{Source: source, Field: field, Err: err}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
