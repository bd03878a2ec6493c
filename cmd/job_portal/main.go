// Package main provides the entry point for the job portal HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_portal",
	Short: "Job Portal HTTP API Server",
	Long:  "Job Portal matches candidates and recruiters: recruiters post jobs, candidates search and apply, and related postings are recommended by shared keywords.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
