package fakephone

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	registry, _ := DefaultRegistry()
	if cfg.Registry != registry {
		t.Fatal("expected the shared default registry")
	}
	if cfg.Source == nil {
		t.Fatal("expected a default source")
	}
	if cfg.ExtensionRate != 0 || cfg.StrictLocales {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNewConfigNormalizesDefaultLocale(t *testing.T) {
	cfg, err := NewConfig(WithDefaultLocale(" en_PH "))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.DefaultLocale != "en-PH" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
}

func TestNewConfigSkipsNilOptions(t *testing.T) {
	if _, err := NewConfig(nil, WithSeed(1), nil); err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
}

func TestNewConfigWithPlanFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	plan := `region: ZA
country_calling_code: "27"
locales: [en_ZA, af_ZA]
categories:
  cellphone_number:
    formats: ["07# ### ####", "+27 7# ### ####"]
`
	if err := os.WriteFile(path, []byte(plan), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	g, err := New(WithPlanFiles(path), WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := g.Registry().RuleSet("af_ZA"); err != nil {
		t.Fatalf("RuleSet(af_ZA): %v", err)
	}
	if _, err := g.Registry().RuleSet("en_PH"); err != nil {
		t.Fatalf("embedded plans should still load: %v", err)
	}
	if _, err := g.CellphoneNumber("en_ZA"); err != nil {
		t.Fatalf("CellphoneNumber: %v", err)
	}
}

func TestBuildGeneratorRequiresRegistry(t *testing.T) {
	var cfg *Config
	if _, err := cfg.BuildGenerator(); err == nil {
		t.Fatal("expected error for nil config")
	}
}
