// Package main provides the entry point for the ResumeStudio HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "ResumeStudio HTTP API Server",
	Long:  "ResumeStudio is a resume builder backend: a step-by-step resume wizard, templated HTML previews, A4 PDF export, AI text enhancement, and ATS compatibility checks via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
