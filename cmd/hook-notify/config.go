package main

import (
	"context"
	"os"
	"strings"

	hooknotify "github.com/goliatone/go-hook-notify"
	"github.com/goliatone/go-hook-notify/adapters/gologger"
	"github.com/goliatone/go-hook-notify/core"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "hook-notify.json"

type globalFlags struct {
	configPath string
	logLevel   string
	driver     string
	dsn        string
}

func (f *globalFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", defaultConfigPath, "JSON config file (comments allowed)")
	pf.StringVar(&f.logLevel, "log-level", "", "trace, debug, info, warn or error")
	pf.StringVar(&f.driver, "db-driver", "", "database driver: sqlite3 or postgres")
	pf.StringVar(&f.dsn, "db-dsn", "", "database connection string")
}

// runtime holds flag values that override file and environment settings.
func (f *globalFlags) runtime() core.Config {
	return core.Config{
		LogLevel: strings.TrimSpace(f.logLevel),
		Database: core.DatabaseConfig{
			Driver: strings.TrimSpace(f.driver),
			DSN:    strings.TrimSpace(f.dsn),
		},
	}
}

// loadConfig resolves defaults < config file < HOOK_NOTIFY_* env < flags.
// The default config path may be absent, an explicit one may not.
func (f *globalFlags) loadConfig(ctx context.Context, runtime core.Config) (core.Config, error) {
	path := strings.TrimSpace(f.configPath)
	return core.LoadConfig(ctx, runtime,
		core.FileRawConfigLoader{Path: path, Optional: path == defaultConfigPath},
		core.EnvRawConfigLoader{},
	)
}

type app struct {
	config  core.Config
	logger  *glog.BaseLogger
	service *hooknotify.Service
}

func (f *globalFlags) openApp(ctx context.Context, runtime core.Config) (*app, error) {
	cfg, err := f.loadConfig(ctx, runtime)
	if err != nil {
		return nil, err
	}
	logger := gologger.NewJSONLogger(os.Stderr, cfg.LogLevel, glog.WithName(cfg.ServiceName))
	svc, err := hooknotify.NewService(cfg,
		hooknotify.WithLogger(logger),
		hooknotify.WithLoggerProvider(logger),
	)
	if err != nil {
		return nil, err
	}
	return &app{config: cfg, logger: logger, service: svc}, nil
}

func (a *app) Close() error {
	if a == nil || a.service == nil {
		return nil
	}
	return a.service.Close()
}
