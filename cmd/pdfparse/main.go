// Package main is the entry point for the pdfparse CLI tool.
package main

import (
	"os"

	"github.com/wsekete/PDFParseV2/internal/cli"
)

var (
	version = "dev"     // This will be set by build flags
	commit  = "unknown" // This will be set by build flags
	date    = "unknown" // This will be set by build flags
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
