package fakephone

import (
	"errors"
	"regexp"
	"testing"
)

func TestLocaleFakerPhilippines(t *testing.T) {
	g := newTestGenerator(t)
	ph, err := g.Locale("en_PH")
	if err != nil {
		t.Fatalf("Locale: %v", err)
	}
	if ph.Code() != "en-PH" {
		t.Fatalf("Code = %q", ph.Code())
	}

	mobile := regexp.MustCompile(`^(?:0|\+63)\d{3}-\d{3}-\d{4}$`)
	area2 := regexp.MustCompile(`^(?:0|\+63)2-\d{4}-\d{4}$`)
	calls := map[string]func() (string, error){
		"globe":    ph.GlobeMobileNumber,
		"smart":    ph.SmartMobileNumber,
		"sun":      ph.SunMobileNumber,
		"mobile":   ph.MobileNumber,
		"globe2":   ph.GlobeArea2LandlineNumber,
		"pldt2":    ph.PLDTArea2LandlineNumber,
		"bayantel": ph.BayantelArea2LandlineNumber,
		"misc2":    ph.MiscArea2LandlineNumber,
		"area2":    ph.Area2LandlineNumber,
		"other":    ph.NonArea2LandlineNumber,
	}
	for name, call := range calls {
		got, err := call()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !mobile.MatchString(got) && !area2.MatchString(got) && !regexp.MustCompile(`^(?:0|\+63)\d{2}-\d{3}-\d{4}$`).MatchString(got) {
			t.Fatalf("%s produced %q", name, got)
		}
	}

	if code, err := ph.CountryCallingCode(); err != nil || code != "+63" {
		t.Fatalf("CountryCallingCode = %q, %v", code, err)
	}
	if _, err := ph.TollNumber(); !errors.Is(err, ErrUnsupportedCategory) {
		t.Fatalf("TollNumber error = %v", err)
	}
	if got, err := ph.Generate("sun mobile number"); err != nil || !mobile.MatchString(got) {
		t.Fatalf("Generate by name = %q, %v", got, err)
	}
}

func TestLocaleFakerOtherLocales(t *testing.T) {
	g := newTestGenerator(t)

	jp, err := g.Locale("ja_JP")
	if err != nil {
		t.Fatalf("Locale: %v", err)
	}
	if _, err := jp.GlobeMobileNumber(); !errors.Is(err, ErrUnsupportedCategory) {
		t.Fatalf("GlobeMobileNumber on ja_JP error = %v", err)
	}
	if got, err := jp.CellphoneNumber(); err != nil || !regexp.MustCompile(`^0[789]0-\d{4}-\d{4}$`).MatchString(got) {
		t.Fatalf("CellphoneNumber = %q, %v", got, err)
	}

	at, err := g.Locale("de_AT")
	if err != nil {
		t.Fatalf("unregistered but well formed locale should bind: %v", err)
	}
	if got, err := at.MSISDN(); err != nil || !regexp.MustCompile(`^43\d{11}$`).MatchString(got) {
		t.Fatalf("MSISDN = %q, %v", got, err)
	}

	if _, err := g.Locale("not a locale!"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("malformed locale error = %v", err)
	}

	strict := newTestGenerator(t, WithStrictLocales())
	if _, err := strict.Locale("de_AT"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("strict unknown locale error = %v", err)
	}
}
