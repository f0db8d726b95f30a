package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrUnsupportedSite       = errors.New("unsupported site")
	ErrDuplicateSubscription = errors.New("duplicate subscription")
)

type FetchErrorKind string

const (
	FetchTimeout          FetchErrorKind = "timeout"
	FetchConnectionFailed FetchErrorKind = "connection_failed"
	FetchHTTPStatus       FetchErrorKind = "http_status"
)

// FetchError classifies transport failures. They are transient: the monitor
// retries the item next cycle without touching its last snapshot.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	case FetchTimeout:
		return fmt.Sprintf("fetch %s: timeout", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

type ParseReason string

const (
	ParseElementNotFound  ParseReason = "element_not_found"
	ParsePriceUnparseable ParseReason = "price_unparseable"
)

// ParseError reports a site markup mismatch. Also transient: the page layout
// may be a temporary variant (captcha wall, A/B test), so the item is retried.
type ParseError struct {
	Site   string
	Reason ParseReason
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse %s: %s", e.Site, e.Reason)
	}
	return fmt.Sprintf("parse %s: %s: %s", e.Site, e.Reason, e.Detail)
}
