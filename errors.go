package fakephone

import (
	"errors"
	"fmt"
)

// ErrUnknownLocale indicates that no rule set is registered for a locale and no
// fallback applies to the requested category.
var ErrUnknownLocale = errors.New("fakephone: unknown locale")

// ErrUnsupportedCategory indicates the locale is known but does not define the category.
var ErrUnsupportedCategory = errors.New("fakephone: unsupported category")

// ErrConfiguration marks malformed patterns or tables found while loading numbering plans.
var ErrConfiguration = errors.New("fakephone: invalid configuration")

// ConfigError reports a load time problem in a numbering plan source.
type ConfigError struct {
	Source string
	Field  string
	Err    error
}

func configErrorf(source, field, format string, args ...any) *ConfigError {
	return &ConfigError{Source: source, Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *ConfigError) Error() string {
	switch {
	case e.Source != "" && e.Field != "":
		return fmt.Sprintf("fakephone: %s: %s: %v", e.Source, e.Field, e.Err)
	case e.Source != "":
		return fmt.Sprintf("fakephone: %s: %v", e.Source, e.Err)
	case e.Field != "":
		return fmt.Sprintf("fakephone: %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("fakephone: %v", e.Err)
	}
}

// Unwrap exposes both ErrConfiguration and the underlying cause to errors.Is.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// CategoryError carries the locale and category of a failed generation request.
type CategoryError struct {
	Locale   string
	Category Category
	Err      error
}

func newCategoryError(locale string, category Category, err error) *CategoryError {
	return &CategoryError{Locale: locale, Category: category, Err: err}
}

func (e *CategoryError) Error() string {
	locale := e.Locale
	if locale == "" {
		locale = "<default>"
	}
	return fmt.Sprintf("%v: locale %q category %q", e.Err, locale, string(e.Category))
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}
