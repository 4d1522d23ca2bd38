// Package archive fetches candidate tables from the NASA Exoplanet Archive
// TAP service.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/tabular"
)

// DefaultURL is the TAP synchronous query endpoint
const DefaultURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

// ErrNoArchiveQuery is returned for variants the archive has no table for
var ErrNoArchiveQuery = errors.New("no archive query for source variant")

const (
	tessQuery   = "select * from toi"
	keplerQuery = "SELECT kepid, koi_period, koi_duration, koi_depth, koi_kepmag " +
		"FROM cumulative " +
		"WHERE koi_disposition IN ('CANDIDATE','CONFIRMED') " +
		"AND koi_period IS NOT NULL " +
		"AND koi_duration IS NOT NULL " +
		"AND koi_depth IS NOT NULL " +
		"AND koi_kepmag IS NOT NULL"
)

// Query returns the ADQL query for a variant's catalog table
func Query(variant model.SourceVariant) (string, error) {
	switch variant {
	case model.VariantTESS:
		return tessQuery, nil
	case model.VariantKepler:
		return keplerQuery, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNoArchiveQuery, variant)
	}
}

// HTTPError is a non-2xx archive response
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string // first bytes of the response, for diagnostics
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("archive returned %s", e.Status)
	}
	return fmt.Sprintf("archive returned %s: %s", e.Status, e.Body)
}

// Options configures a Client
type Options struct {
	URL      string
	Timeout  time.Duration
	RetryMax int
	Backoff  time.Duration
}

// Client queries the archive
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client. An empty URL uses the public endpoint and a zero
// timeout means 60s.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Backoff == 0 {
		opts.Backoff = 500 * time.Millisecond
	}

	return &Client{
		baseURL: opts.URL,
		http: &http.Client{
			Transport: &Transport{
				Base:      http.DefaultTransport,
				RetryMax:  opts.RetryMax,
				Backoff:   opts.Backoff,
				UserAgent: "transitscore/1.0",
			},
			Timeout: opts.Timeout,
		},
		logger: logger.Named("archive"),
	}
}

// Fetch downloads the catalog table for variant
func (c *Client) Fetch(ctx context.Context, variant model.SourceVariant) (model.Dataset, error) {
	query, err := Query(variant)
	if err != nil {
		return model.Dataset{}, err
	}

	ds, err := c.FetchQuery(ctx, query)
	if err != nil {
		return model.Dataset{}, err
	}
	ds.Name = variant.String()
	return ds, nil
}

// FetchQuery runs an arbitrary ADQL query and decodes the CSV result
func (c *Client) FetchQuery(ctx context.Context, query string) (model.Dataset, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("invalid archive URL: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("format", "csv")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to build archive request: %w", err)
	}

	start := time.Now()
	c.logger.Info("Querying archive", zap.String("url", c.baseURL), zap.String("query", query))

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Dataset{}, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}

	ds, err := tabular.Decode(resp.Body, tabular.FormatCSV)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode archive response: %w", err)
	}

	c.logger.Info("Archive query completed",
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Headers)),
		zap.Duration("duration", time.Since(start)))
	return ds, nil
}
