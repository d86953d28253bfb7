package config

import (
	"time"
)

const (
	upstreamBaseURLVar = "UPSTREAM_BASE_URL"
	upstreamTimeoutVar = "UPSTREAM_TIMEOUT"
)

type UpstreamConfig interface {
	GetUpstreamBaseURL() string
	GetUpstreamTimeout() time.Duration
}

type Upstream struct{}

var _ UpstreamConfig = Upstream{}

// GetUpstreamBaseURL returns the base URL of the backend API that the
// gateway proxies to (e.g., "http://localhost:3000")
func (Upstream) GetUpstreamBaseURL() string {
	return GetEnv(upstreamBaseURLVar, "http://localhost:3000")
}

// GetUpstreamTimeout bounds every upstream call so a hung backend
// cannot hang a browser request indefinitely
func (Upstream) GetUpstreamTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(upstreamTimeoutVar, "10s"))
	if err != nil {
		return 10 * time.Second
	}
	return d
}
