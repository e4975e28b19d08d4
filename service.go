package hooknotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/compose"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/dispatch"
	"github.com/goliatone/go-hook-notify/httpapi"
	"github.com/goliatone/go-hook-notify/migrations"
	sqlstore "github.com/goliatone/go-hook-notify/store/sql"
	"github.com/goliatone/go-hook-notify/stream"
	"github.com/goliatone/go-hook-notify/webhooks"
	persistence "github.com/goliatone/go-persistence-bun"
)

type Config = core.Config

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Service wires the config store, composer, dispatcher, notifier and outcome
// stream for one process.
type Service struct {
	config            Config
	logger            core.Logger
	loggerProvider    core.LoggerProvider
	persistenceClient *persistence.Client
	ownsPersistence   bool
	store             WebhookStore
	notifier          *webhooks.Notifier
	hub               *stream.Hub
	facade            *Facade
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := serviceBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := core.ResolveLogger("hook-notify", builder.loggerProvider, builder.logger)
	svc := &Service{
		config:            cfg,
		logger:            logger,
		loggerProvider:    builder.loggerProvider,
		persistenceClient: builder.persistenceClient,
	}

	store := builder.configStore
	if store == nil {
		if svc.persistenceClient == nil {
			client, err := OpenPersistence(cfg)
			if err != nil {
				return nil, err
			}
			svc.persistenceClient = client
			svc.ownsPersistence = true
		}
		built, err := svc.buildStore(cfg.Cache)
		if err != nil {
			_ = svc.Close()
			return nil, err
		}
		store = built
	}
	svc.store = store

	renderer, err := buildRenderer(builder, cfg.Templates)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	composer, err := compose.NewComposer(renderer)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	var client *chatwork.Client
	if builder.httpDoer != nil {
		client = chatwork.NewClient(cfg.Chatwork.BaseURL, builder.httpDoer)
	} else {
		client = chatwork.NewClientFromConfig(cfg.Chatwork)
	}
	dispatcher := dispatch.NewDispatcher(client,
		dispatch.WithLogger(builder.logger),
		dispatch.WithLoggerProvider(builder.loggerProvider),
		dispatch.WithSelfUnread(cfg.Chatwork.SelfUnread),
	)

	svc.hub = stream.NewHub(
		stream.WithLogger(builder.logger),
		stream.WithLoggerProvider(builder.loggerProvider),
	)

	notifierOpts := []webhooks.Option{
		webhooks.WithLogger(builder.logger),
		webhooks.WithLoggerProvider(builder.loggerProvider),
		webhooks.WithObserver(svc.hub),
		webhooks.WithObserver(builder.observers...),
	}
	if builder.metricsRecorder != nil {
		notifierOpts = append(notifierOpts, webhooks.WithMetricsRecorder(builder.metricsRecorder))
	}
	notifier, err := webhooks.NewNotifier(store, composer, dispatcher, notifierOpts...)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.notifier = notifier

	facade, err := NewFacade(notifier, store)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.facade = facade
	return svc, nil
}

func (s *Service) buildStore(cache core.CacheConfig) (WebhookStore, error) {
	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(s.persistenceClient)
	if err != nil {
		return nil, err
	}
	configStore, err := factory.ConfigStore(cache)
	if err != nil {
		return nil, err
	}
	store, ok := configStore.(WebhookStore)
	if !ok {
		return nil, fmt.Errorf("hooknotify: config store %T cannot write or list", configStore)
	}
	return store, nil
}

func buildRenderer(builder serviceBuilder, cfg core.TemplatesConfig) (compose.Renderer, error) {
	if builder.templates != nil {
		return compose.NewTemplateRenderer(builder.templates)
	}
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		return compose.NewTemplateRendererFromDir(dir)
	}
	return nil, nil
}

// Migrate applies the webhook schema. It is a no-op when the service runs
// on an injected store.
func (s *Service) Migrate(ctx context.Context) error {
	if s == nil || s.persistenceClient == nil {
		return nil
	}
	if err := migrations.Apply(ctx, s.persistenceClient, s.config.Database.Driver, GetMigrationsFS()); err != nil {
		return err
	}
	core.LogInfo(ctx, s.logger, "migrations applied", map[string]any{
		"driver": s.config.Database.Driver,
	})
	return nil
}

// Handler builds the HTTP surface: webhook intake, health and the outcome
// stream.
func (s *Service) Handler() (http.Handler, error) {
	if s == nil || s.facade == nil {
		return nil, fmt.Errorf("hooknotify: service is not initialized")
	}
	handler, err := httpapi.NewHandler(s.facade.Commands().Notify,
		httpapi.WithLogger(s.logger),
		httpapi.WithLoggerProvider(s.loggerProvider),
		httpapi.WithStream(s.hub),
		httpapi.WithHealthCheck(s.Ping),
	)
	if err != nil {
		return nil, err
	}
	return httpapi.NewRouter(handler), nil
}

func (s *Service) Ping(ctx context.Context) error {
	if s == nil || s.persistenceClient == nil {
		return nil
	}
	return s.persistenceClient.DB().PingContext(ctx)
}

// Close releases the persistence client when the service opened it.
func (s *Service) Close() error {
	if s == nil || s.persistenceClient == nil || !s.ownsPersistence {
		return nil
	}
	return s.persistenceClient.Close()
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Facade() *Facade {
	if s == nil {
		return nil
	}
	return s.facade
}

func (s *Service) Notifier() *webhooks.Notifier {
	if s == nil {
		return nil
	}
	return s.notifier
}

func (s *Service) Hub() *stream.Hub {
	if s == nil {
		return nil
	}
	return s.hub
}

func (s *Service) Store() WebhookStore {
	if s == nil {
		return nil
	}
	return s.store
}
