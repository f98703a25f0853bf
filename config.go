package fakephone

import (
	"fmt"
)

// Config captures generator setup
type Config struct {
	DefaultLocale string
	Registry      *Registry
	Source        Source
	ExtensionRate int
	StrictLocales bool

	planFiles []string
	seed      int64
	dialPlans map[string]DialPlan
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	if cfg.Registry == nil {
		registry, err := cfg.buildRegistry()
		if err != nil {
			return nil, err
		}
		cfg.Registry = registry
	}

	if cfg.DefaultLocale != "" {
		if info := parseLocaleInfo(cfg.DefaultLocale); !info.wellFormed {
			return nil, fmt.Errorf("%w: default locale %q", ErrUnknownLocale, cfg.DefaultLocale)
		}
	}

	if cfg.Source == nil {
		cfg.Source = NewSource(cfg.seed)
	}

	return cfg, nil
}

func (cfg *Config) buildRegistry() (*Registry, error) {
	if len(cfg.planFiles) == 0 {
		return DefaultRegistry()
	}
	return NewRegistry(WithRegistryPlanFiles(cfg.planFiles...))
}

// WithDefaultLocale sets the locale used when a call passes an empty locale
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithRegistry uses a prebuilt registry instead of the embedded one
func WithRegistry(registry *Registry) Option {
	return func(c *Config) error {
		c.Registry = registry
		return nil
	}
}

// WithPlanFiles layers YAML/JSON plan files over the embedded plans.
// Ignored when WithRegistry is also supplied.
func WithPlanFiles(paths ...string) Option {
	return func(c *Config) error {
		c.planFiles = append(c.planFiles, paths...)
		return nil
	}
}

// WithSource injects the random source. It must be safe for concurrent use if the
// generator is shared between goroutines.
func WithSource(src Source) Option {
	return func(c *Config) error {
		c.Source = src
		return nil
	}
}

// WithSeed seeds the default gofakeit source. Zero means a random seed.
func WithSeed(seed int64) Option {
	return func(c *Config) error {
		c.seed = seed
		return nil
	}
}

// WithExtensions enables extension suffixes on phone_number for locales that
// declare them, with the given percent probability.
func WithExtensions(percent int) Option {
	return func(c *Config) error {
		if percent < 0 || percent > 100 {
			return fmt.Errorf("fakephone: extension rate %d outside 0..100", percent)
		}
		c.ExtensionRate = percent
		return nil
	}
}

// WithStrictLocales disables the default provider fallback.
func WithStrictLocales() Option {
	return func(c *Config) error {
		c.StrictLocales = true
		return nil
	}
}

// WithDialPlan overrides the national number grouping the default provider uses
// for the region of locale. The plan country code, if set, must match the region.
func WithDialPlan(locale string, plan DialPlan) Option {
	return func(c *Config) error {
		info := parseLocaleInfo(locale)
		if !info.wellFormed || info.region == "" {
			return fmt.Errorf("%w: dial plan locale %q has no region", ErrUnknownLocale, locale)
		}
		plan = plan.normalize()
		if plan.CountryCode != "" {
			derived, ok := DialPlanForRegion(info.region, plan.Groups)
			if !ok || derived.CountryCode != plan.CountryCode {
				return &ConfigError{Field: "dial_plan", Err: fmt.Errorf("calling code %s does not match region %s", plan.CountryCode, info.region)}
			}
		}
		if c.dialPlans == nil {
			c.dialPlans = make(map[string]DialPlan)
		}
		c.dialPlans[info.region] = plan
		return nil
	}
}

// BuildGenerator wires providers for every registered rule set
func (cfg *Config) BuildGenerator() (*Generator, error) {
	if cfg == nil || cfg.Registry == nil {
		return nil, &ConfigError{Field: "registry", Err: fmt.Errorf("no registry configured")}
	}

	g := &Generator{
		registry:      cfg.Registry,
		src:           cfg.Source,
		defaultLocale: cfg.DefaultLocale,
		strict:        cfg.StrictLocales,
		providers:     make(map[string]*Provider, len(cfg.Registry.sets)),
		dialPlans:     make(map[string]DialPlan, len(cfg.dialPlans)),
	}

	for key, rs := range cfg.Registry.sets {
		g.providers[key] = NewProvider(rs, cfg.Source, WithProviderExtensions(cfg.ExtensionRate))
	}
	for region, plan := range cfg.dialPlans {
		g.dialPlans[region] = plan
	}

	return g, nil
}
