package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Paths ending with "/" are prefix matches (e.g., "/resumes/" matches
// "/resumes/{id}"); paths starting with "*" are suffix matches (e.g.,
// "*/export" matches "/resumes/{id}/export").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	// Exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Suffix match
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasPrefix(config.Path, "*") {
			if strings.HasSuffix(path, strings.TrimPrefix(config.Path, "*")) {
				return config
			}
		}
	}

	// Prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
