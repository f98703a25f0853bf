package fakephone

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

const (
	defaultMSISDNLength = 13
	unknownRegionCode   = "ZZ"
)

var defaultGroups = []int{3, 3, 3}

// Registry is the immutable set of numbering plans keyed by region, plus the
// locale alias table that maps locale ids onto them. Safe for concurrent reads.
type Registry struct {
	sets         map[string]*RuleSet
	aliases      map[string]*RuleSet
	regions      map[string]*RuleSet
	keys         []string
	locales      []string
	callingCodes []string
	known        map[string]struct{}
	defaultCodes []string
	groups       []int
	msisdnLength int
}

type registryConfig struct {
	fsys         fs.FS
	pattern      string
	files        []string
	callingCodes []string
}

// RegistryOption customizes NewRegistry.
type RegistryOption func(*registryConfig)

// WithPlanFS replaces the embedded plans with fsys entries matching pattern.
func WithPlanFS(fsys fs.FS, pattern string) RegistryOption {
	return func(rc *registryConfig) {
		rc.fsys = fsys
		rc.pattern = pattern
	}
}

// WithRegistryPlanFiles adds YAML or JSON plan files applied after the embedded plans.
func WithRegistryPlanFiles(paths ...string) RegistryOption {
	return func(rc *registryConfig) {
		for _, p := range paths {
			if p = strings.TrimSpace(p); p != "" {
				rc.files = append(rc.files, p)
			}
		}
	}
}

// WithDefaultCallingCodes replaces the calling codes used by the default provider.
func WithDefaultCallingCodes(codes ...string) RegistryOption {
	return func(rc *registryConfig) {
		rc.callingCodes = append([]string{}, codes...)
	}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
	defaultRegistryErr  error
)

// DefaultRegistry returns the registry built from the embedded plans. It is built
// on first use; concurrent first callers share one build and its error.
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	return defaultRegistry, defaultRegistryErr
}

// NewRegistry loads and validates numbering plans. Any malformed pattern or
// empty table fails with an error wrapping ErrConfiguration.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{fsys: planData, pattern: defaultPlanPattern}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	defaults, err := loadDefaults(planData, defaultsPath)
	if err != nil {
		return nil, err
	}
	if cfg.callingCodes != nil {
		defaults.CallingCodes = cfg.callingCodes
	}

	r := &Registry{
		sets:    make(map[string]*RuleSet),
		aliases: make(map[string]*RuleSet),
		regions: make(map[string]*RuleSet),
		known:   make(map[string]struct{}),
	}
	if err := r.applyDefaults(defaults); err != nil {
		return nil, err
	}

	sources, err := NewPlanLoader(cfg.fsys, cfg.pattern, cfg.files...).Load()
	if err != nil {
		return nil, err
	}

	// later sources win per key; the first position is kept for stable ordering
	merged := make(map[string]planSource, len(sources))
	var order []string
	for _, src := range sources {
		key := strings.TrimSpace(src.doc.Key)
		if key == "" {
			key = strings.ToUpper(strings.TrimSpace(src.doc.Region))
		}
		if _, exists := merged[key]; !exists {
			order = append(order, key)
		}
		merged[key] = src
	}

	for _, key := range order {
		src := merged[key]
		rs, err := compileRuleSet(src.path, src.doc)
		if err != nil {
			return nil, err
		}
		if err := r.register(rs); err != nil {
			return nil, err
		}
	}

	r.finalize()
	return r, nil
}

func (r *Registry) applyDefaults(doc defaultsDocument) error {
	if len(doc.CallingCodes) == 0 {
		return configErrorf(defaultsPath, "calling_codes", "no default calling codes")
	}

	longest := 0
	for _, raw := range doc.CallingCodes {
		code := strings.TrimPrefix(strings.TrimSpace(raw), "+")
		n, err := strconv.Atoi(code)
		if err != nil || !isDigits(code) {
			return configErrorf(defaultsPath, "calling_codes", "calling code %q is not numeric", raw)
		}
		if phonenumbers.GetRegionCodeForCountryCode(n) == unknownRegionCode {
			return configErrorf(defaultsPath, "calling_codes", "calling code %q is not assigned", raw)
		}
		r.defaultCodes = append(r.defaultCodes, code)
		r.known["+"+code] = struct{}{}
		longest = max(longest, len(code))
	}

	r.groups = normalizePhoneGroups(doc.Groups)
	if len(r.groups) == 0 {
		r.groups = append([]int(nil), defaultGroups...)
	}

	r.msisdnLength = doc.MSISDNLength
	if r.msisdnLength == 0 {
		r.msisdnLength = defaultMSISDNLength
	}
	if r.msisdnLength <= longest {
		return configErrorf(defaultsPath, "msisdn_length", "length %d leaves no subscriber digits", r.msisdnLength)
	}
	return nil
}

func (r *Registry) register(rs *RuleSet) error {
	if _, exists := r.sets[rs.key]; exists {
		return configErrorf(rs.source, "key", "duplicate rule set %q", rs.key)
	}
	if err := rs.checkMSISDNLength(r.msisdnLength); err != nil {
		return err
	}
	if other, exists := r.regions[rs.region]; exists {
		return configErrorf(rs.source, "region", "region %s already served by %s", rs.region, other.source)
	}

	aliases := make([]string, 0, len(rs.locales)*2)
	for _, locale := range rs.locales {
		aliases = append(aliases, localeKey(locale))
		if tag, err := language.Parse(locale); err == nil {
			aliases = append(aliases, strings.ToLower(tag.String()))
		}
	}
	for _, alias := range aliases {
		if other, exists := r.aliases[alias]; exists && other != rs {
			return configErrorf(rs.source, "locales", "locale %q already mapped to %s", alias, other.key)
		}
	}
	for _, alias := range aliases {
		r.aliases[alias] = rs
	}

	r.sets[rs.key] = rs
	r.regions[rs.region] = rs
	r.known["+"+rs.callingCode] = struct{}{}
	return nil
}

func (r *Registry) finalize() {
	r.keys = make([]string, 0, len(r.sets))
	for key, rs := range r.sets {
		r.keys = append(r.keys, key)
		r.locales = append(r.locales, rs.locales...)
	}
	sort.Strings(r.keys)
	r.locales = normalizeLocales(r.locales)

	r.callingCodes = make([]string, 0, len(r.known))
	for code := range r.known {
		r.callingCodes = append(r.callingCodes, code)
	}
	sort.Strings(r.callingCodes)
}

// RuleSet resolves a locale to its rule set. Lookup order: exact locale id,
// bare upper case region ("PH"), then bare language through its likely region.
func (r *Registry) RuleSet(locale string) (*RuleSet, error) {
	rs, _, err := r.resolve(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, locale)
	}
	return rs, nil
}

// RuleSetByKey returns a rule set by its key.
func (r *Registry) RuleSetByKey(key string) (*RuleSet, bool) {
	if r == nil {
		return nil, false
	}
	rs, ok := r.sets[key]
	return rs, ok
}

func (r *Registry) resolve(locale string) (*RuleSet, localeInfo, error) {
	info := parseLocaleInfo(locale)
	if r == nil || !info.wellFormed {
		return nil, info, ErrUnknownLocale
	}

	if rs, ok := r.aliases[strings.ToLower(info.normalized)]; ok {
		return rs, info, nil
	}
	if info.canonical != "" {
		if rs, ok := r.aliases[strings.ToLower(info.canonical)]; ok {
			return rs, info, nil
		}
	}

	if info.base == "" && info.region != "" {
		if rs, ok := r.regions[info.region]; ok {
			return rs, info, nil
		}
		return nil, info, ErrUnknownLocale
	}

	if !info.explicit && info.region != "" {
		if rs, ok := r.regions[info.region]; ok && rs.hasLanguage(info.base) {
			return rs, info, nil
		}
	}

	return nil, info, ErrUnknownLocale
}

// Keys returns rule set keys sorted alphabetically.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Locales returns every registered locale id sorted alphabetically.
func (r *Registry) Locales() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.locales...)
}

// CallingCodes returns the known calling code set formatted as "+NN".
func (r *Registry) CallingCodes() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.callingCodes...)
}

// IsKnownCallingCode accepts codes with or without the leading plus sign.
func (r *Registry) IsKnownCallingCode(code string) bool {
	if r == nil {
		return false
	}
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "+") {
		code = "+" + code
	}
	_, ok := r.known[code]
	return ok
}

// DefaultDialPlan returns the grouping used by the default provider for a calling code.
func (r *Registry) DefaultDialPlan(callingCode string) DialPlan {
	return DialPlan{
		CountryCode: strings.TrimPrefix(callingCode, "+"),
		Groups:      append([]int(nil), r.groups...),
	}
}

func normalizePhoneGroups(groups []int) []int {
	if len(groups) == 0 {
		return nil
	}
	result := make([]int, 0, len(groups))
	for _, g := range groups {
		if g > 0 {
			result = append(result, g)
		}
	}
	return result
}
