package hooknotify

import (
	"fmt"

	"github.com/goliatone/go-hook-notify/adapters/gocommand"
	"github.com/goliatone/go-hook-notify/command"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/query"
)

// WebhookStore is the config store surface the facade needs.
type WebhookStore interface {
	core.WebhookConfigStore
	core.WebhookConfigWriter
	core.WebhookConfigLister
}

type Commands struct {
	Notify          *command.NotifyCommand
	RegisterWebhook *command.RegisterWebhookCommand
}

type Queries struct {
	GetWebhook   *query.GetWebhookQuery
	ListWebhooks *query.ListWebhooksQuery
}

type Facade struct {
	commands Commands
	queries  Queries
}

func NewFacade(notifier command.Notifier, store WebhookStore) (*Facade, error) {
	if notifier == nil {
		return nil, fmt.Errorf("hooknotify: notifier is required")
	}
	if store == nil {
		return nil, fmt.Errorf("hooknotify: webhook store is required")
	}
	return &Facade{
		commands: Commands{
			Notify:          command.NewNotifyCommand(notifier),
			RegisterWebhook: command.NewRegisterWebhookCommand(store),
		},
		queries: Queries{
			GetWebhook:   query.NewGetWebhookQuery(store),
			ListWebhooks: query.NewListWebhooksQuery(store),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

// Register subscribes the facade commands and queries on bus, making them
// reachable through gocommand.Send and gocommand.Ask.
func (f *Facade) Register(bus *gocommand.Bus) error {
	if f == nil {
		return fmt.Errorf("hooknotify: facade is nil")
	}
	if err := gocommand.AddCommand[command.NotifyMessage](bus, f.commands.Notify); err != nil {
		return err
	}
	if err := gocommand.AddCommand[command.RegisterWebhookMessage](bus, f.commands.RegisterWebhook); err != nil {
		return err
	}
	if err := gocommand.AddQuery[query.GetWebhookMessage, core.WebhookConfig](bus, f.queries.GetWebhook); err != nil {
		return err
	}
	if err := gocommand.AddQuery[query.ListWebhooksMessage, query.WebhookPage](bus, f.queries.ListWebhooks); err != nil {
		return err
	}
	return bus.Initialize()
}
