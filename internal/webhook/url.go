package webhook

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateURL checks that raw is an absolute http or https URL with a host.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ConfigError{Kind: KindInvalidURL, Index: -1, Err: errors.New("webhook url is required")}
	}
	if err := validate.Var(raw, "http_url"); err != nil {
		return &ConfigError{Kind: KindInvalidURL, URL: raw, Index: -1, Err: errors.New("webhook url must be an absolute http(s) url")}
	}
	return nil
}

// RedactURL hides the token segment of a webhook URL so it can be logged.
// Discord webhook URLs end in /api/webhooks/{id}/{token}.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}

	segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	if len(segments) > 1 {
		segments[len(segments)-1] = "***"
	}

	return u.Scheme + "://" + u.Host + strings.Join(segments, "/")
}
