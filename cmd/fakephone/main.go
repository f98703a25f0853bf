package main

import (
	"os"

	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "unknown"
)

func init() {
	_ = godotenv.Load() //nolint:errcheck // .env is optional
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		logger := newLogger(os.Stderr, false)
		logger.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}
