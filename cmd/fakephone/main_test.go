package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-fakephone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "generate", "globe_mobile_number", "--locale", "en_PH", "-n", "25", "--seed", "5")
	require.NoError(t, err)

	numbers := lines(out)
	require.Len(t, numbers, 25)
	re := regexp.MustCompile(`^(?:0|\+63)\d{3}-\d{3}-\d{4}$`)
	for _, n := range numbers {
		assert.Regexp(t, re, n)
	}
}

func TestGenerateCommandDeterministicAcrossRuns(t *testing.T) {
	first, err := execute(t, "generate", "-l", "az_AZ", "-n", "40", "-w", "4", "--seed", "77")
	require.NoError(t, err)
	second, err := execute(t, "generate", "-l", "az_AZ", "-n", "40", "-w", "4", "--seed", "77")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCommandErrors(t *testing.T) {
	_, err := execute(t, "generate", "toll_number", "--locale", "en_PH")
	assert.ErrorIs(t, err, fakephone.ErrUnsupportedCategory)

	_, err = execute(t, "generate", "--locale", "de_AT", "--strict")
	assert.ErrorIs(t, err, fakephone.ErrUnknownLocale)

	_, err = execute(t, "generate", "-n", "-1")
	assert.Error(t, err)

	_, err = execute(t, "generate", "--rate", "-2")
	assert.Error(t, err)
}

func TestGenerateCommandRateLimited(t *testing.T) {
	out, err := execute(t, "generate", "msisdn", "-n", "10", "--rate", "1000", "--seed", "4")
	require.NoError(t, err)
	assert.Len(t, lines(out), 10)
}

func TestGenerateCommandEnvironment(t *testing.T) {
	t.Setenv("FAKEPHONE_LOCALE", "ja_JP")
	t.Setenv("FAKEPHONE_SEED", "9")

	out, err := execute(t, "generate", "-n", "5")
	require.NoError(t, err)
	for _, n := range lines(out) {
		assert.Regexp(t, `^(?:0[789]0|\d{2})-\d{4}-\d{4}$`, n)
	}

	t.Setenv("FAKEPHONE_SEED", "not-a-number")
	_, err = execute(t, "generate")
	assert.Error(t, err)
}

func TestGenerateCommandPlanFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "za.yaml")
	plan := `region: ZA
country_calling_code: "27"
locales: [en_ZA]
categories:
  cellphone_number:
    formats: ["07# ### ####"]
`
	require.NoError(t, os.WriteFile(path, []byte(plan), 0o600))

	out, err := execute(t, "generate", "cellphone_number", "--plans", path, "-l", "en_ZA", "-n", "3")
	require.NoError(t, err)
	for _, n := range lines(out) {
		assert.Regexp(t, `^07\d \d{3} \d{4}$`, n)
	}
}

func TestLocalesCommand(t *testing.T) {
	out, err := execute(t, "locales")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCALE")
	assert.Regexp(t, `(?m)^en-PH\s+PH\s+\+63$`, out)
	assert.Regexp(t, `(?m)^hy-AM\s+AM\s+\+374$`, out)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "categories", "en_PH")
	require.NoError(t, err)
	categories := lines(out)
	assert.Contains(t, categories, "globe_mobile_number")
	assert.Contains(t, categories, "country_calling_code")
	assert.IsNonDecreasing(t, categories)

	out, err = execute(t, "categories", "de_AT")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"country_calling_code", "msisdn", "phone_number"}, lines(out))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fakephone dev (unknown)\n", out)
}

func TestBatchRun(t *testing.T) {
	registry, err := fakephone.DefaultRegistry()
	require.NoError(t, err)

	b := batch{registry: registry, seed: 3, workers: 8}
	out, err := b.run(context.Background(), "", fakephone.CategoryMSISDN, 5)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for _, n := range out {
		assert.Regexp(t, `^\d{13}$`, n)
	}

	empty, err := b.run(context.Background(), "", fakephone.CategoryMSISDN, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.run(ctx, "", fakephone.CategoryMSISDN, 5)
	assert.ErrorIs(t, err, context.Canceled)

	b.limiter = rate.NewLimiter(rate.Limit(500), 1)
	limited, err := b.run(context.Background(), "ja_JP", fakephone.CategoryPhoneNumber, 6)
	require.NoError(t, err)
	assert.Len(t, limited, 6)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a.yaml", "b.json"}, splitList(" a.yaml, ,b.json "))
	assert.Nil(t, splitList(""))
}
