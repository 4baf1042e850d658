// Package dhn retrieves tide table documents such as the ones published by
// the Brazilian Navy's hydrography office (DHN).  A document is requested per
// station and year (see DocumentQuery) from a URL or a local file.  Fetched
// documents are kept in memory for a while and concurrent requests for the
// same document share a single download (see Fetcher).
package dhn
