package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
	"github.com/tidwall/jsonc"
)

const EnvPrefix = "HOOK_NOTIFY_"

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

// LoadConfig resolves the effective configuration: defaults, then raw values
// from loaders (later loaders win), then runtime overrides.
func LoadConfig(ctx context.Context, runtime Config, loaders ...RawConfigLoader) (Config, error) {
	defaults := DefaultConfig()
	loaded, err := NewCfgxConfigProvider(ChainRawConfigLoaders(loaders...)).Load(ctx, defaults)
	if err != nil {
		return Config{}, err
	}
	return GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func StaticRawConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	return mergeRaw(map[string]any{}, l.Values), nil
}

// FileRawConfigLoader reads a JSON config file. Comments and trailing commas
// are allowed. A missing file is not an error when Optional is set.
type FileRawConfigLoader struct {
	Path     string
	Optional bool
}

func (l FileRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	path := strings.TrimSpace(l.Path)
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if l.Optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("core: read config %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("core: parse config %s: %w", path, err)
	}
	return raw, nil
}

var configSections = []string{"http", "database", "chatwork", "templates", "cache"}

// EnvRawConfigLoader maps PREFIX_SECTION_KEY variables onto the config tree,
// e.g. HOOK_NOTIFY_DATABASE_DSN -> database.dsn.
type EnvRawConfigLoader struct {
	Prefix  string
	Environ func() []string
}

func (l EnvRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	prefix := l.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	raw := map[string]any{}
	for _, entry := range environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if key == "" {
			continue
		}
		section, field := splitSection(key)
		if section == "" {
			raw[key] = envValue(value)
			continue
		}
		nested, _ := raw[section].(map[string]any)
		if nested == nil {
			nested = map[string]any{}
			raw[section] = nested
		}
		nested[field] = envValue(value)
	}
	return raw, nil
}

func splitSection(key string) (string, string) {
	for _, section := range configSections {
		if strings.HasPrefix(key, section+"_") {
			return section, strings.TrimPrefix(key, section+"_")
		}
	}
	return "", key
}

func envValue(value string) any {
	trimmed := strings.TrimSpace(value)
	if parsed, err := strconv.ParseBool(trimmed); err == nil {
		return parsed
	}
	if parsed, err := strconv.Atoi(trimmed); err == nil {
		return parsed
	}
	return trimmed
}

type chainedRawConfigLoader []RawConfigLoader

func ChainRawConfigLoaders(loaders ...RawConfigLoader) RawConfigLoader {
	return chainedRawConfigLoader(append([]RawConfigLoader(nil), loaders...))
}

func (c chainedRawConfigLoader) LoadRaw(ctx context.Context) (map[string]any, error) {
	merged := map[string]any{}
	for _, loader := range c {
		if loader == nil {
			continue
		}
		raw, err := loader.LoadRaw(ctx)
		if err != nil {
			return nil, err
		}
		merged = mergeRaw(merged, raw)
	}
	return merged, nil
}

func mergeRaw(dst map[string]any, src map[string]any) map[string]any {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = mergeRaw(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			dst[key] = mergeRaw(map[string]any{}, srcMap)
			continue
		}
		dst[key] = value
	}
	return dst
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			configToLayerMap(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			configToLayerMap(loaded, true),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			configToLayerMap(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	setString := func(section map[string]any, key string, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			section[key] = value
		}
	}
	setInt := func(section map[string]any, key string, value int) {
		if includeZero || value != 0 {
			section[key] = value
		}
	}
	setBool := func(section map[string]any, key string, value bool) {
		if includeZero || value {
			section[key] = value
		}
	}
	nest := func(key string, section map[string]any) {
		if len(section) > 0 {
			layer[key] = section
		}
	}

	setString(layer, "service_name", cfg.ServiceName)
	setString(layer, "log_level", cfg.LogLevel)

	httpLayer := map[string]any{}
	setString(httpLayer, "addr", cfg.HTTP.Addr)
	setInt(httpLayer, "shutdown_timeout_seconds", cfg.HTTP.ShutdownTimeoutSeconds)
	nest("http", httpLayer)

	databaseLayer := map[string]any{}
	setString(databaseLayer, "driver", cfg.Database.Driver)
	setString(databaseLayer, "dsn", cfg.Database.DSN)
	setBool(databaseLayer, "debug", cfg.Database.Debug)
	setInt(databaseLayer, "ping_timeout_seconds", cfg.Database.PingTimeoutSeconds)
	nest("database", databaseLayer)

	chatworkLayer := map[string]any{}
	setString(chatworkLayer, "base_url", cfg.Chatwork.BaseURL)
	setInt(chatworkLayer, "timeout_seconds", cfg.Chatwork.TimeoutSeconds)
	setBool(chatworkLayer, "self_unread", cfg.Chatwork.SelfUnread)
	nest("chatwork", chatworkLayer)

	templatesLayer := map[string]any{}
	setString(templatesLayer, "dir", cfg.Templates.Dir)
	nest("templates", templatesLayer)

	cacheLayer := map[string]any{}
	setBool(cacheLayer, "enabled", cfg.Cache.Enabled)
	setInt(cacheLayer, "ttl_seconds", cfg.Cache.TTLSeconds)
	nest("cache", cacheLayer)

	return layer
}
