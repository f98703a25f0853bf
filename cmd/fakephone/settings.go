package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// settings holds CLI defaults read from the environment (and .env).
type settings struct {
	Locale     string
	Seed       int64
	Plans      []string
	Strict     bool
	Extensions int
	Verbose    bool
}

func loadSettings() (settings, error) {
	seed, err := getEnvInt64("FAKEPHONE_SEED", 0)
	if err != nil {
		return settings{}, err
	}
	extensions, err := getEnvInt64("FAKEPHONE_EXTENSIONS", 0)
	if err != nil {
		return settings{}, err
	}

	return settings{
		Locale:     getEnvString("FAKEPHONE_LOCALE", ""),
		Seed:       seed,
		Plans:      splitList(os.Getenv("FAKEPHONE_PLANS")),
		Strict:     getEnvBool("FAKEPHONE_STRICT", false),
		Extensions: int(extensions),
		Verbose:    getEnvBool("FAKEPHONE_VERBOSE", false),
	}, nil
}

func getEnvString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
