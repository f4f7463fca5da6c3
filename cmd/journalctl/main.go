package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "journalctl",
		Short: "CLI client for the journal service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Journal service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "Bearer token (from 'journalctl users login')")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
