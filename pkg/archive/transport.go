package archive

import (
	"errors"
	"io"
	"net/http"
	"time"
)

// Transport retries replayable requests (GET/HEAD without a body) on network
// errors and 5xx responses, up to RetryMax extra attempts.
type Transport struct {
	Base      http.RoundTripper
	RetryMax  int
	Backoff   time.Duration
	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.RetryMax
	if max < 0 || !canRetry {
		max = 0
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 0; attempt <= max; attempt++ {
		if attempt > 0 && t.Backoff > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(t.Backoff * time.Duration(attempt)):
			}
		}

		r := req.Clone(req.Context())
		if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.UserAgent)
		}

		resp, lastErr = base.RoundTrip(r)
		if lastErr == nil {
			if resp.StatusCode < 500 || attempt == max {
				return resp, nil
			}
			// drain so the connection can be reused
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}
		if req.Context().Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}
