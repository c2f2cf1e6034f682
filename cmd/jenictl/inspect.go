package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print a user's life snapshot as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(a *app) error {
			return writeJSON(cmd.OutOrStdout(), a.aggregator.Build(cmd.Context(), userID))
		})
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the instructions the assistant receives for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(a *app) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), lifecontext.Compile(a.aggregator.Build(cmd.Context(), userID)))
			return err
		})
	},
}

func init() {
	requireUser(snapshotCmd)
	requireUser(promptCmd)
	rootCmd.AddCommand(snapshotCmd, promptCmd)
}
