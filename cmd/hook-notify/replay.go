package main

import (
	"os"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-hook-notify/adapters/gocommand"
	"github.com/goliatone/go-hook-notify/command"
	"github.com/goliatone/go-hook-notify/events"
	"github.com/goliatone/go-hook-notify/webhooks"
	"github.com/spf13/cobra"
)

func newReplayCommand(flags *globalFlags) *cobra.Command {
	var key, event string
	cmd := &cobra.Command{
		Use:   "replay <payload.json>",
		Short: "Run a saved GitHub payload through the notifier",
		Long: "Replay decodes a webhook body saved from GitHub and delivers it exactly as\n" +
			"the server would, printing the resulting outcome.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			decoded, err := events.Decode(event, body)
			if err != nil {
				return err
			}
			return withBus(cmd, flags, func(a *app) error {
				collector := gocmd.NewResult[webhooks.Outcome]()
				ctx := gocmd.ContextWithResult(cmd.Context(), collector)
				sendErr := gocommand.Send(ctx, command.NotifyMessage{ServiceKey: key, Event: decoded})
				if outcome, ok := collector.Load(); ok {
					if err := printJSON(cmd.OutOrStdout(), outcome); err != nil {
						return err
					}
				}
				return sendErr
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "service key of the target webhook")
	cmd.Flags().StringVar(&event, "event", "pull_request", "X-GitHub-Event value of the payload")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
