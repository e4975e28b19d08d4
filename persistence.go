package hooknotify

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-hook-notify/core"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

type persistenceConfig struct {
	database    core.DatabaseConfig
	serviceName string
}

func (c persistenceConfig) GetDebug() bool {
	return c.database.Debug
}

func (c persistenceConfig) GetDriver() string {
	return c.database.Driver
}

func (c persistenceConfig) GetServer() string {
	return c.database.DSN
}

func (c persistenceConfig) GetPingTimeout() time.Duration {
	return c.database.PingTimeout()
}

func (c persistenceConfig) GetOtelIdentifier() string {
	return c.serviceName
}

// OpenPersistence opens the configured database and wraps it in a
// go-persistence-bun client. The caller must have imported the driver.
func OpenPersistence(cfg core.Config) (*persistence.Client, error) {
	driver := strings.TrimSpace(cfg.Database.Driver)
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("hooknotify: open %s database: %w", driver, err)
	}
	if driver == core.DatabaseDriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	client, err := persistence.New(persistenceConfig{
		database:    cfg.Database,
		serviceName: cfg.ServiceName,
	}, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("hooknotify: persistence client: %w", err)
	}
	return client, nil
}

func dialectFor(driver string) (schema.Dialect, error) {
	switch driver {
	case core.DatabaseDriverSQLite:
		return sqlitedialect.New(), nil
	case core.DatabaseDriverPostgres:
		return pgdialect.New(), nil
	default:
		return nil, fmt.Errorf("hooknotify: unsupported database driver %q", driver)
	}
}
