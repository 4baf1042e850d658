package dhn

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/cache"
	"github.com/spencer-p/tidetable/pkg/metrics"
)

// Fetcher retrieves tide table documents and keeps them for a while. It is
// safe for concurrent use.
type Fetcher struct {
	client *http.Client
	cache  *cache.Timed[[]byte]
	group  singleflight.Group
	logger *slog.Logger
}

// NewFetcher creates a Fetcher whose downloads time out after timeout and
// whose documents are kept for ttl.
func NewFetcher(timeout, ttl time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache.NewTimed[[]byte](ttl, nil),
		logger: logger,
	}
}

// Query builds the document query of profile p for year.
func Query(p almanac.Profile, year int) DocumentQuery {
	return DocumentQuery{
		Station: p.Slug,
		Year:    year,
		URL:     p.DocumentURL,
		Path:    p.DocumentPath,
	}
}

// Document returns the tide table of profile p for year, along with where it
// came from.
func (f *Fetcher) Document(ctx context.Context, p almanac.Profile, year int) ([]byte, string, error) {
	q := Query(p, year)
	source := q.Source()

	if doc, ok := f.cache.Get(source); ok {
		metrics.ObserveCache(true)
		return doc, source, nil
	}
	metrics.ObserveCache(false)
	if n := f.cache.Purge(); n > 0 {
		f.logger.Debug("dropped expired documents", "count", n)
	}

	// The download outlives a cancelled caller so the others waiting on it
	// still get the document; the client timeout bounds it.
	ch := f.group.DoChan(source, func() (any, error) {
		return f.fetch(context.WithoutCancel(ctx), q, p.MaxBytes())
	})
	select {
	case <-ctx.Done():
		return nil, source, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, source, res.Err
		}
		return res.Val.([]byte), source, nil
	}
}

func (f *Fetcher) fetch(ctx context.Context, q DocumentQuery, maxBytes int) ([]byte, error) {
	origin := "file"
	if q.remote() {
		origin = "http"
	}

	start := time.Now()
	doc, err := GetDocument(ctx, f.client, q, maxBytes)
	metrics.ObserveFetch(origin, err)
	if err != nil {
		f.logger.Warn("document fetch failed", "source", q.Source(), "error", err)
		return nil, err
	}

	f.logger.Info("document fetched",
		"source", q.Source(),
		"bytes", len(doc),
		"duration", time.Since(start))
	f.cache.Set(q.Source(), doc)
	return doc, nil
}
