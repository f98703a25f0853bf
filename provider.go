package fakephone

// Provider generates numbers for a single rule set.
type Provider struct {
	rules         *RuleSet
	src           Source
	extensionRate int
}

// ProviderOption customizes a Provider.
type ProviderOption func(*Provider)

// WithProviderExtensions appends one of the rule set extension patterns to
// phone_number results with the given percent probability (0..100).
func WithProviderExtensions(percent int) ProviderOption {
	return func(p *Provider) {
		p.extensionRate = clampPercent(percent)
	}
}

// NewProvider binds a rule set to a random source.
func NewProvider(rules *RuleSet, src Source, opts ...ProviderOption) *Provider {
	p := &Provider{rules: rules, src: src}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// RuleSet returns the backing rule set.
func (p *Provider) RuleSet() *RuleSet {
	return p.rules
}

// Supports reports whether the rule set defines category.
func (p *Provider) Supports(category Category) bool {
	if category == CategoryCountryCallingCode {
		return true
	}
	_, ok := p.rules.rules[category]
	return ok
}

// Categories lists the categories the provider serves, including country_calling_code.
func (p *Provider) Categories() []Category {
	out := p.rules.Categories()
	return append(out, CategoryCountryCallingCode)
}

// Generate expands a category. Unsupported categories return ErrUnsupportedCategory.
func (p *Provider) Generate(category Category) (string, error) {
	if category == CategoryCountryCallingCode {
		return "+" + p.rules.callingCode, nil
	}

	rule, ok := p.rules.rules[category]
	if !ok {
		return "", ErrUnsupportedCategory
	}

	out := p.expand(rule)
	if category == CategoryPhoneNumber {
		out += p.extension()
	}
	return out, nil
}

func (p *Provider) expand(rule *Rule) string {
	switch rule.kind {
	case RuleUnion:
		// union members are validated at load time and acyclic
		member := rule.union.Sample(p.src)
		return p.expand(p.rules.rules[Category(member)])
	case RulePrefix:
		id := pick(p.src, p.rules.sets[rule.set])
		return rule.formats[rule.choice.SampleIndex(p.src)].ExpandWith(p.src, id)
	default:
		return rule.formats[rule.choice.SampleIndex(p.src)].Expand(p.src)
	}
}

func (p *Provider) extension() string {
	if p.extensionRate == 0 || len(p.rules.extensions) == 0 {
		return ""
	}
	if p.src.IntN(100) >= p.extensionRate {
		return ""
	}
	return pick(p.src, p.rules.extensions).Expand(p.src)
}

func clampPercent(percent int) int {
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}
