// Package server exposes the index cache over HTTP for daemon mode:
// an indexing endpoint, artifact info lookup, health and Prometheus
// metrics endpoints.
package server
