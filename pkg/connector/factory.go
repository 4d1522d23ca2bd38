// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/config"
)

// Driver names a supported catalog database
type Driver string

const (
	DriverSnowflake Driver = "snowflake"
	DriverPostgres  Driver = "postgres"
	DriverSQLite    Driver = "sqlite"
)

// ParseDriver maps a command-line driver name to a Driver
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "snowflake":
		return DriverSnowflake, nil
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", s)
	}
}

// Factory creates database connectors. Each driver's configuration is loaded
// from the environment only when that driver is requested.
type Factory struct {
	logger *zap.Logger
}

// NewFactory creates a new connector factory
func NewFactory(logger *zap.Logger) *Factory {
	return &Factory{logger: loggerOrGlobal(logger, "connector")}
}

// Create opens and validates a connector for driver
func (f *Factory) Create(ctx context.Context, driver Driver) (DatabaseConnector, error) {
	f.logger.Info("Creating connector", zap.String("driver", string(driver)))

	var (
		conn DatabaseConnector
		err  error
	)
	switch driver {
	case DriverSnowflake:
		conn, err = f.createSnowflake(ctx)
	case DriverPostgres:
		conn, err = f.createPostgres(ctx)
	case DriverSQLite:
		conn, err = f.createSQLite(ctx)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Validate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to validate %s connection: %w", driver, err)
	}
	return conn, nil
}

func (f *Factory) createSnowflake(ctx context.Context) (DatabaseConnector, error) {
	cfg, err := config.LoadSnowflakeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Snowflake configuration: %w", err)
	}
	conn, err := NewSnowflakeConnector(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Snowflake connector: %w", err)
	}
	return conn, nil
}

func (f *Factory) createPostgres(ctx context.Context) (DatabaseConnector, error) {
	cfg, err := config.LoadPostgresConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load PostgreSQL configuration: %w", err)
	}
	conn, err := NewPostgresConnector(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connector: %w", err)
	}
	return conn, nil
}

func (f *Factory) createSQLite(ctx context.Context) (DatabaseConnector, error) {
	cfg, err := config.LoadSQLiteConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load SQLite configuration: %w", err)
	}
	conn, err := NewSQLiteConnector(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite connector: %w", err)
	}
	return conn, nil
}
