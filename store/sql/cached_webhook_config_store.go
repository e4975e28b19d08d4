package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-hook-notify/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const webhookConfigCacheKeyPrefix = "go-hook-notify::webhook_config::v1"

// CachedWebhookConfigStore serves FindByServiceKey through a read-through
// cache. Misses are not cached.
type CachedWebhookConfigStore struct {
	base  core.WebhookConfigStore
	cache repositorycache.CacheService
}

func NewCachedWebhookConfigStore(
	base core.WebhookConfigStore,
	cacheService repositorycache.CacheService,
) (*CachedWebhookConfigStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base webhook config store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: webhook config cache service is required")
	}
	return &CachedWebhookConfigStore{base: base, cache: cacheService}, nil
}

// WebhookConfigCacheKey returns go-hook-notify::webhook_config::v1::<service_key>
// with the key URL-path escaped.
func WebhookConfigCacheKey(serviceKey string) string {
	return webhookConfigCacheKeyPrefix + "::" + url.PathEscape(strings.TrimSpace(serviceKey))
}

func (s *CachedWebhookConfigStore) FindByServiceKey(ctx context.Context, serviceKey string) (core.WebhookConfig, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.WebhookConfig{}, fmt.Errorf("sqlstore: cached webhook config store is not configured")
	}
	serviceKey = strings.TrimSpace(serviceKey)
	config, err := repositorycache.GetOrFetch(ctx, s.cache, WebhookConfigCacheKey(serviceKey), func(ctx context.Context) (core.WebhookConfig, error) {
		fetched, fetchErr := s.base.FindByServiceKey(ctx, serviceKey)
		if fetchErr != nil {
			return core.WebhookConfig{}, fetchErr
		}
		return cloneWebhookConfig(fetched), nil
	})
	if err != nil {
		return core.WebhookConfig{}, err
	}
	return cloneWebhookConfig(config), nil
}

// Create delegates to the base store when it can write and drops any cached
// entry for the key.
func (s *CachedWebhookConfigStore) Create(ctx context.Context, in core.CreateWebhookInput) (core.WebhookConfig, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.WebhookConfig{}, fmt.Errorf("sqlstore: cached webhook config store is not configured")
	}
	writer, ok := s.base.(core.WebhookConfigWriter)
	if !ok {
		return core.WebhookConfig{}, fmt.Errorf("sqlstore: base webhook config store is read-only")
	}
	created, err := writer.Create(ctx, in)
	if err != nil {
		return core.WebhookConfig{}, err
	}
	if err := s.Invalidate(ctx, created.ServiceKey); err != nil {
		return core.WebhookConfig{}, err
	}
	return created, nil
}

func (s *CachedWebhookConfigStore) Invalidate(ctx context.Context, serviceKey string) error {
	if s == nil || s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, WebhookConfigCacheKey(serviceKey))
}

// List bypasses the cache.
func (s *CachedWebhookConfigStore) List(ctx context.Context, limit int, offset int) ([]core.WebhookConfig, int, error) {
	if s == nil || s.base == nil {
		return nil, 0, fmt.Errorf("sqlstore: cached webhook config store is not configured")
	}
	lister, ok := s.base.(core.WebhookConfigLister)
	if !ok {
		return nil, 0, fmt.Errorf("sqlstore: base webhook config store cannot list")
	}
	return lister.List(ctx, limit, offset)
}
