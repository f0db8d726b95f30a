package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"go.uber.org/zap"
)

// Client retrieves raw product pages. Every request is bounded by the client
// timeout so a hung store cannot stall the monitor loop.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

func NewClient(timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &domain.FetchError{Kind: domain.FetchConnectionFailed, URL: rawURL, Err: err}
	}
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml")
	request.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")

	start := time.Now()
	c.logger.Debug("page fetch start", zap.String("url", rawURL))
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("page fetch failed", zap.String("url", rawURL), zap.Error(err))
		return "", &domain.FetchError{Kind: classify(err), URL: rawURL, Err: err}
	}
	defer response.Body.Close()

	c.logger.Debug(
		"page fetch complete",
		zap.String("url", rawURL),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", &domain.FetchError{Kind: domain.FetchHTTPStatus, URL: rawURL, Status: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", &domain.FetchError{Kind: classify(err), URL: rawURL, Err: err}
	}
	return string(body), nil
}

func classify(err error) domain.FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FetchTimeout
	}
	return domain.FetchConnectionFailed
}
