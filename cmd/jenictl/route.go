package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
)

// routeResult is what route prints. Nothing is written.
type routeResult struct {
	Intent   string               `json:"intent,omitempty"`
	Matched  bool                 `json:"matched"`
	Hint     string               `json:"hint,omitempty"`
	Type     string               `json:"type,omitempty"`
	Mutation interpreter.Mutation `json:"mutation,omitempty"`
}

var routeCmd = &cobra.Command{
	Use:   "route <message>",
	Short: "Show how a message would be interpreted, without writing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := joinArgs(args)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := interpreter.NewDefaultRouter(cfg.Location(), nil).Route(msg)
		res := routeResult{Intent: string(out.Intent), Matched: out.Matched(), Hint: out.Hint, Mutation: out.Mutation}
		if out.Mutation != nil {
			res.Type = fmt.Sprintf("%T", out.Mutation)
		}
		return writeJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
}
