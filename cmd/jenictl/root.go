package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	sqlitePath string
	userID     string
)

var rootCmd = &cobra.Command{
	Use:   "jenictl",
	Short: "jenictl talks to Jeni from your terminal",
	Long: "jenictl routes messages through the command interpreter, runs chat turns and " +
		"prints a user's life snapshot or compiled prompt against the configured store.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Use this SQLite file instead of the configured database")
}

// requireUser marks --user as mandatory on cmd.
func requireUser(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userID, "user", "", "User ID whose records are used")
	_ = cmd.MarkFlagRequired("user")
}
