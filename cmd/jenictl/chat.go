package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Run one chat turn for a user",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := joinArgs(args)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			reply, err := a.chat.Send(cmd.Context(), userID, chatSession, msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Reply)
			fmt.Fprintf(cmd.ErrOrStderr(), "session=%s model=%s\n", reply.SessionID, reply.Model)
			return nil
		})
	},
}

func init() {
	requireUser(chatCmd)
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Continue this session (a new one is started when empty)")
	rootCmd.AddCommand(chatCmd)
}
