package config

// HTTPClientConfig tunes the client each webhook target sends through.
// Durations are whole seconds so they read naturally in YAML.
type HTTPClientConfig struct {
	CustomHeaders       map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
	EnableHTTP2         bool              `json:"enable_http2" yaml:"enable_http2"`
	MaxConnsPerHost     int               `json:"max_conns_per_host,omitempty" yaml:"max_conns_per_host,omitempty" validate:"omitempty,min=0"`
	MaxIdleConns        int               `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty" validate:"omitempty,min=0"`
	MaxIdleConnsPerHost int               `json:"max_idle_conns_per_host,omitempty" yaml:"max_idle_conns_per_host,omitempty" validate:"omitempty,min=0"`
	Proxy               string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,httpurl"`
	TimeoutSecs         int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent           string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		CustomHeaders:       make(map[string]string),
		EnableHTTP2:         DefaultHTTPEnableHTTP2,
		MaxIdleConns:        DefaultHTTPMaxIdleConns,
		MaxIdleConnsPerHost: DefaultHTTPMaxIdleConnsPerHost,
		TimeoutSecs:         DefaultHTTPTimeoutSecs,
	}
}
