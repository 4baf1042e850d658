package dhn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

const userAgent = "tidetable/1.0 (+https://github.com/spencer-p/tidetable)"

// GetDocument reads the document q points at. At most maxBytes are read; the
// rest of a longer document is ignored.
func GetDocument(ctx context.Context, client *http.Client, q DocumentQuery, maxBytes int) ([]byte, error) {
	if q.remote() {
		return getRemote(ctx, client, q, maxBytes)
	}
	return getFile(q, maxBytes)
}

func getRemote(ctx context.Context, client *http.Client, q DocumentQuery, maxBytes int) ([]byte, error) {
	source := q.Source()

	// Build request URL first
	addr, err := url.Parse(source)
	if err != nil || addr.Scheme == "" || addr.Host == "" {
		return nil, &Error{Source: source, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Source: source, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: source, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to read body", Cause: err}
	}
	return body, nil
}

func getFile(q DocumentQuery, maxBytes int) ([]byte, error) {
	source := q.Source()
	if source == "" {
		return nil, &Error{Source: q.Station, Message: "no document URL or path configured"}
	}

	f, err := os.Open(source)
	if err != nil {
		msg := "failed to open"
		if errors.Is(err, os.ErrNotExist) {
			msg = "not found"
		}
		return nil, &Error{Source: source, Message: msg, Cause: err}
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, int64(maxBytes)))
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to read", Cause: err}
	}
	return body, nil
}
