package webhook

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ConfigError.
type ErrorKind string

const (
	KindInvalidURL ErrorKind = "invalid_url"
	KindDuplicate  ErrorKind = "duplicate"
)

var (
	// ErrInvalidURL matches any ConfigError of kind invalid_url.
	ErrInvalidURL = errors.New("invalid webhook url")
	// ErrDuplicate matches any ConfigError of kind duplicate.
	ErrDuplicate = errors.New("duplicate webhook url")
)

// ConfigError reports a problem with a single webhook item. Index is the
// position of the item in its block, or -1 when it was not part of one.
type ConfigError struct {
	Kind  ErrorKind
	URL   string
	Index int
	Err   error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("webhook config %s", e.Kind)
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (item %d)", msg, e.Index)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", msg, RedactURL(e.URL))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrInvalidURL:
		return e.Kind == KindInvalidURL
	case ErrDuplicate:
		return e.Kind == KindDuplicate
	}
	return false
}

// NewDuplicateError reports that url is already configured.
func NewDuplicateError(url string, index int) *ConfigError {
	return &ConfigError{Kind: KindDuplicate, URL: url, Index: index}
}
