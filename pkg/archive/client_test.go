package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

func testClient(url string, retries int) *Client {
	return NewClient(Options{URL: url, Timeout: 5 * time.Second, RetryMax: retries, Backoff: time.Millisecond}, zap.NewNop())
}

func TestFetch_KeplerQuery(t *testing.T) {
	var gotQuery, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotFormat = r.URL.Query().Get("format")
		fmt.Fprint(w, "kepid,koi_period,koi_duration,koi_depth,koi_kepmag\n10797460,9.488,2.9575,615.8,15.347\n")
	}))
	defer srv.Close()

	ds, err := testClient(srv.URL, 0).Fetch(context.Background(), model.VariantKepler)
	require.NoError(t, err)

	assert.Equal(t, keplerQuery, gotQuery)
	assert.Equal(t, "csv", gotFormat)
	assert.Equal(t, "koi", ds.Name)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "10797460", ds.Rows[0]["kepid"])
}

func TestFetch_GenericHasNoQuery(t *testing.T) {
	_, err := testClient("http://127.0.0.1:1", 0).Fetch(context.Background(), model.VariantGeneric)
	assert.ErrorIs(t, err, ErrNoArchiveQuery)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "toi,pl_orbper\n101.01,3.5\n")
	}))
	defer srv.Close()

	ds, err := testClient(srv.URL, 2).Fetch(context.Background(), model.VariantTESS)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, ds.Len())
}

func TestFetch_HTTPError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "ERROR: bad ADQL", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 2).Fetch(context.Background(), model.VariantTESS)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "bad ADQL")
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL, 2).Fetch(ctx, model.VariantTESS)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransport_DoesNotRetryRequestsWithBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{RetryMax: 3}}
	resp, err := client.Post(srv.URL, "text/plain", http.NoBody)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}
