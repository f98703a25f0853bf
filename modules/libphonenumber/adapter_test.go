package libphonenumber

import (
	"regexp"
	"testing"

	"github.com/goliatone/go-fakephone"
	"github.com/nyaruka/phonenumbers"
)

func newGenerator(t *testing.T) *fakephone.Generator {
	t.Helper()
	gen, err := fakephone.New(fakephone.WithSeed(12))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gen
}

func TestFormatterE164(t *testing.T) {
	f := New(newGenerator(t))
	re := regexp.MustCompile(`^\+639\d{9}$`)

	for i := 0; i < 100; i++ {
		got, err := f.Generate("en_PH", fakephone.CategoryMobileNumber)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !re.MatchString(got) {
			t.Fatalf("Generate = %q", got)
		}
	}
}

func TestFormatterInternational(t *testing.T) {
	f := New(newGenerator(t), WithFormat(phonenumbers.INTERNATIONAL))
	got := f.Format("ja_JP", "090-1234-5678")
	if got != "+81 90-1234-5678" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatterExplicitRegion(t *testing.T) {
	f := New(newGenerator(t), WithRegion("jp"))
	if got := f.Format("", "090-1234-5678"); got != "+819012345678" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatterKeepsUnparseableInput(t *testing.T) {
	f := New(newGenerator(t))
	if got := f.Format("en_PH", "not a number"); got != "not a number" {
		t.Fatalf("Format = %q", got)
	}
	if got := f.Format("en_PH", "  "); got != "" {
		t.Fatalf("Format = %q", got)
	}
}

func TestRegionFromCallingCode(t *testing.T) {
	cases := map[string]string{
		"+63 123 456 789":  "PH",
		"+374 123 456 789": "AM",
		"0917-123-4567":    "",
	}
	for in, want := range cases {
		if got := regionFromCallingCode(in); got != want {
			t.Fatalf("regionFromCallingCode(%q) = %q, want %q", in, got, want)
		}
	}
}
