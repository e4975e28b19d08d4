package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-hook-notify/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db *bun.DB

	webhookConfigStore *WebhookConfigStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

// BuildStores accepts a *bun.DB or anything exposing DB() *bun.DB, such as a
// go-persistence-bun client.
func (f *RepositoryFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.webhookConfigStore != nil {
		return nil
	}
	store, err := NewWebhookConfigStore(f.db)
	if err != nil {
		return err
	}
	f.webhookConfigStore = store
	return nil
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) WebhookConfigStore() *WebhookConfigStore {
	if f == nil {
		return nil
	}
	return f.webhookConfigStore
}

// ConfigStore returns the store the notifier should read from: the SQL store,
// wrapped in a read-through cache when cfg enables it.
func (f *RepositoryFactory) ConfigStore(cfg core.CacheConfig) (core.WebhookConfigStore, error) {
	if f == nil || f.webhookConfigStore == nil {
		return nil, fmt.Errorf("sqlstore: repository factory has no webhook config store")
	}
	if !cfg.Enabled {
		return f.webhookConfigStore, nil
	}
	cacheConfig := repositorycache.DefaultConfig()
	if ttl := cfg.TTL(); ttl > 0 {
		cacheConfig.TTL = ttl
	}
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: build webhook config cache: %w", err)
	}
	return NewCachedWebhookConfigStore(f.webhookConfigStore, cacheService)
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
