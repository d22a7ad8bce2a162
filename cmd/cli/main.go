package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mkt-tools/pulse-report/pkg/runtime/terminal"
)

func main() {
	// API credentials usually live in a local .env during development.
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		JSON:   os.Getenv("PULSE_REPORT_FORMAT") == "json",
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
