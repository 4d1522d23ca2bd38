// pkg/connector/query.go
package connector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

// QueryDataset runs a read-only catalog query and materializes the result.
// Headers keep the column order reported by the driver. A timeout <= 0 uses
// the connector's default.
func QueryDataset(ctx context.Context, conn DatabaseConnector, query string, timeout time.Duration) (model.Dataset, error) {
	if timeout <= 0 {
		timeout = conn.QueryTimeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	db := sqlx.NewDb(conn.DB(), conn.DriverName())
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to run catalog query: %w", err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	ds := model.Dataset{Name: conn.DriverName(), Headers: headers}
	for rows.Next() {
		row := make(map[string]interface{}, len(headers))
		if err := rows.MapScan(row); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to scan row %d: %w", len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, model.RawRow(row))
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}

	return ds, nil
}

// TableQuery builds SELECT * for a possibly schema-qualified table, quoting
// each dot-separated part. Quoted identifiers are case-sensitive on every
// supported driver. A positive limit appends LIMIT.
func TableQuery(table string, limit int) (string, error) {
	parts := strings.Split(table, ".")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", fmt.Errorf("invalid table name %q", table)
		}
		quoted = append(quoted, pq.QuoteIdentifier(p))
	}

	query := "SELECT * FROM " + strings.Join(quoted, ".")
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	return query, nil
}
