package sqlstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hook-notify/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type WebhookConfigStore struct {
	db   *bun.DB
	repo repository.Repository[*webhookRecord]
	now  func() time.Time
}

func NewWebhookConfigStore(db *bun.DB) (*WebhookConfigStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*webhookRecord](db, webhookHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid webhook repository wiring: %w", err)
		}
	}
	return &WebhookConfigStore{
		db:   db,
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// Create registers a new webhook. Service keys are unique.
func (s *WebhookConfigStore) Create(ctx context.Context, in core.CreateWebhookInput) (core.WebhookConfig, error) {
	if s == nil || s.repo == nil {
		return core.WebhookConfig{}, fmt.Errorf("sqlstore: webhook config store is not configured")
	}
	serviceKey := strings.TrimSpace(in.ServiceKey)
	if serviceKey == "" {
		return core.WebhookConfig{}, core.ValidationError("service key is required", nil)
	}
	if strings.TrimSpace(in.Room.RoomID) == "" {
		return core.WebhookConfig{}, core.ValidationError("room id is required", map[string]any{
			"service_key": serviceKey,
		})
	}

	existing, err := s.findRecord(ctx, serviceKey)
	if err != nil {
		return core.WebhookConfig{}, err
	}
	if existing != nil {
		return core.WebhookConfig{}, goerrors.New("webhook already exists", goerrors.CategoryConflict).
			WithCode(http.StatusConflict).
			WithTextCode(core.ErrorConfiguration).
			WithMetadata(map[string]any{"service_key": serviceKey})
	}

	record := newWebhookRecord(in, s.now())
	record.ID = uuid.NewString()
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.WebhookConfig{}, err
	}
	return created.toDomain(), nil
}

// FindByServiceKey returns an error wrapping core.ErrWebhookNotFound when no
// webhook uses serviceKey.
func (s *WebhookConfigStore) FindByServiceKey(ctx context.Context, serviceKey string) (core.WebhookConfig, error) {
	if s == nil || s.repo == nil {
		return core.WebhookConfig{}, fmt.Errorf("sqlstore: webhook config store is not configured")
	}
	serviceKey = strings.TrimSpace(serviceKey)
	record, err := s.findRecord(ctx, serviceKey)
	if err != nil {
		return core.WebhookConfig{}, err
	}
	if record == nil {
		return core.WebhookConfig{}, fmt.Errorf("%w: %s", core.ErrWebhookNotFound, serviceKey)
	}
	return record.toDomain(), nil
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func (s *WebhookConfigStore) List(ctx context.Context, limit int, offset int) ([]core.WebhookConfig, int, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("sqlstore: webhook config store is not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	records, total, err := s.repo.List(ctx,
		repository.OrderBy("service_key ASC"),
		repository.SelectPaginate(limit, offset),
	)
	if err != nil {
		return nil, 0, err
	}
	items := make([]core.WebhookConfig, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		items = append(items, record.toDomain())
	}
	return items, total, nil
}

func (s *WebhookConfigStore) findRecord(ctx context.Context, serviceKey string) (*webhookRecord, error) {
	if serviceKey == "" {
		return nil, nil
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("service_key", "=", serviceKey),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}
