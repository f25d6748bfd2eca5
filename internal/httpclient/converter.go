package httpclient

import (
	"time"

	"github.com/bensonrodney/homeassistant-discord/internal/config"
)

// ConvertConfig converts application config to HTTP client config.
// Unset values keep the defaults.
func ConvertConfig(cfg config.HTTPClientConfig) HTTPClientConfig {
	out := DefaultHTTPClientConfig()

	if cfg.TimeoutSecs > 0 {
		out.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	if cfg.UserAgent != "" {
		out.UserAgent = cfg.UserAgent
	}
	if cfg.MaxIdleConns > 0 {
		out.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		out.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	out.MaxConnsPerHost = cfg.MaxConnsPerHost
	for key, value := range cfg.CustomHeaders {
		out.CustomHeaders[key] = value
	}
	out.Proxy = cfg.Proxy
	out.EnableHTTP2 = cfg.EnableHTTP2
	return out
}
