package main

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-hook-notify/stream"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var serverURL string
	var serviceKeys []string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print notification outcomes from a running server as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return runWithSignals(func(ctx context.Context) error {
				return stream.Watch(ctx, serverURL, serviceKeys, func(msg stream.Message) error {
					return enc.Encode(msg.Outcome)
				})
			})
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "ws://localhost:8080/ws", "outcome stream URL")
	cmd.Flags().StringArrayVar(&serviceKeys, "service-key", nil, "only show outcomes for these service keys")
	return cmd
}
