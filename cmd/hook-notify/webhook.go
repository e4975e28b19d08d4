package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-hook-notify/adapters/gocommand"
	"github.com/goliatone/go-hook-notify/command"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/query"
	sqlstore "github.com/goliatone/go-hook-notify/store/sql"
	"github.com/spf13/cobra"
)

func newWebhookCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage webhook configurations",
	}
	cmd.AddCommand(
		newWebhookAddCommand(flags),
		newWebhookShowCommand(flags),
		newWebhookListCommand(flags),
	)
	return cmd
}

// withBus opens the service, registers its facade on a fresh bus and runs fn.
func withBus(cmd *cobra.Command, flags *globalFlags, fn func(a *app) error) error {
	a, err := flags.openApp(cmd.Context(), flags.runtime())
	if err != nil {
		return err
	}
	defer a.Close()

	bus := gocommand.NewBus(nil)
	defer bus.Close()
	if err := a.service.Facade().Register(bus); err != nil {
		return err
	}
	return fn(a)
}

func newWebhookAddCommand(flags *globalFlags) *cobra.Command {
	var in struct {
		key     string
		token   string
		room    string
		members []string
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a webhook for a Chatwork room",
		Example: "  hook-notify webhook add --key acme --token $CW_TOKEN --room 123 \\\n" +
			"    --member alice:1001 --member bob:1002",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := parseMembers(in.members)
			if err != nil {
				return err
			}
			return withBus(cmd, flags, func(a *app) error {
				collector := gocmd.NewResult[core.WebhookConfig]()
				ctx := gocmd.ContextWithResult(cmd.Context(), collector)
				if err := gocommand.Send(ctx, command.RegisterWebhookMessage{Input: core.CreateWebhookInput{
					ServiceKey:    in.key,
					ChatworkToken: in.token,
					Room:          core.Room{RoomID: in.room, Members: members},
				}}); err != nil {
					return err
				}
				created, _ := collector.Load()
				return printJSON(cmd.OutOrStdout(), sqlstore.WebhookConfigView(created))
			})
		},
	}
	cmd.Flags().StringVar(&in.key, "key", "", "service key used in the webhook URL")
	cmd.Flags().StringVar(&in.token, "token", "", "Chatwork API token for the bot account")
	cmd.Flags().StringVar(&in.room, "room", "", "Chatwork room id")
	cmd.Flags().StringArrayVar(&in.members, "member", nil, "room member as github_login:chatwork_account_id")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}

func newWebhookShowCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <service-key>",
		Short: "Print a webhook configuration with tokens redacted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBus(cmd, flags, func(a *app) error {
				config, err := gocommand.Ask[query.GetWebhookMessage, core.WebhookConfig](
					cmd.Context(),
					query.GetWebhookMessage{ServiceKey: args[0]},
				)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sqlstore.WebhookConfigView(config))
			})
		},
	}
}

func newWebhookListCommand(flags *globalFlags) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhook configurations with tokens redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBus(cmd, flags, func(a *app) error {
				page, err := gocommand.Ask[query.ListWebhooksMessage, query.WebhookPage](
					cmd.Context(),
					query.ListWebhooksMessage{Limit: limit, Offset: offset},
				)
				if err != nil {
					return err
				}
				items := make([]map[string]any, 0, len(page.Items))
				for _, item := range page.Items {
					items = append(items, sqlstore.WebhookConfigView(item))
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"items":  items,
					"total":  page.Total,
					"offset": page.Offset,
				})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

// parseMembers reads github_login:chatwork_account_id pairs in order.
func parseMembers(values []string) ([]core.Member, error) {
	members := make([]core.Member, 0, len(values))
	for _, value := range values {
		github, chatwork, ok := strings.Cut(value, ":")
		github = strings.TrimSpace(github)
		chatwork = strings.TrimSpace(chatwork)
		if !ok || github == "" || chatwork == "" {
			return nil, fmt.Errorf("invalid member %q, want github_login:chatwork_account_id", value)
		}
		members = append(members, core.Member{GithubID: github, ChatworkID: chatwork})
	}
	return members, nil
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
