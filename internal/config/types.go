package config

import "time"

const (
	// EnvAPIKey is the environment variable holding the Render API key.
	EnvAPIKey = "RENDER_API_KEY"

	// EnvBaseURL optionally overrides the Render API base URL.
	EnvBaseURL = "RENDER_API_URL"

	// DefaultBaseURL is the Render v1 REST API endpoint.
	DefaultBaseURL = "https://api.render.com/v1"

	// DefaultRequestTimeout bounds every outbound API call.
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds everything the API client needs. Immutable after Load.
type Config struct {
	// APIKey is the bearer credential for the Render API. Required.
	APIKey string

	// BaseURL is the API endpoint prefix, without a trailing slash.
	BaseURL string

	// RequestTimeout bounds a single HTTP request.
	RequestTimeout time.Duration
}

// fileConfig is the YAML config file schema. The API key is deliberately
// absent: credentials stay out of config files.
type fileConfig struct {
	BaseURL        string `yaml:"baseURL,omitempty"`
	RequestTimeout string `yaml:"requestTimeout,omitempty"`
}
