// pkg/connector/sqlite.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/David-Botos/transit-ingress/pkg/config"
)

// SQLiteConnector implements the DatabaseConnector interface for a local
// SQLite catalog file
type SQLiteConnector struct {
	db     *sql.DB
	logger *zap.Logger
	cfg    *config.SQLiteConfig
}

// NewSQLiteConnector opens the SQLite database at cfg.Path
func NewSQLiteConnector(ctx context.Context, cfg *config.SQLiteConfig, logger *zap.Logger) (*SQLiteConnector, error) {
	logger = loggerOrGlobal(logger, "sqlite-connector")
	logger.Info("Opening SQLite catalog", zap.String("path", cfg.Path))

	db, err := sql.Open("sqlite", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite connection: %w", err)
	}
	ApplyConnectionSettings(db, cfg.MaxOpenConns, 0, 0, 0)

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	return &SQLiteConnector{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// DB returns the underlying database connection
func (c *SQLiteConnector) DB() *sql.DB {
	return c.db
}

// DriverName returns the registered driver name
func (c *SQLiteConnector) DriverName() string {
	return "sqlite"
}

// QueryTimeout returns the configured query timeout
func (c *SQLiteConnector) QueryTimeout() time.Duration {
	return c.cfg.QueryTimeout
}

// Validate checks the file is a readable SQLite database
func (c *SQLiteConnector) Validate(ctx context.Context) error {
	var version string
	if err := c.db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query SQLite version: %w", err)
	}
	c.logger.Debug("SQLite catalog validated",
		zap.String("path", c.cfg.Path),
		zap.String("version", version))
	return nil
}

// Close closes the database connection
func (c *SQLiteConnector) Close() error {
	return c.db.Close()
}
