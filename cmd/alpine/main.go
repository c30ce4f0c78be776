// alpine is a terminal client for the translation service.
package main

import (
	"fmt"
	"os"

	"alpine/translate/internal/logger"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initLogging(level string) {
	logger.InitWriter(os.Stderr, logger.ParseLevel(level), "text")
}
