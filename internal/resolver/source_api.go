package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/retry"
)

// APISource fetches content from the remote content API. Every attempt gets
// its own timeout; transient and non-transient failures both consume the
// retry budget and differ only in how they are logged.
type APISource struct {
	baseURL         string
	client          *http.Client
	requestTimeout  time.Duration
	settingsTimeout time.Duration
	retryCfg        retry.Config
	log             logger.Logger
}

// NewAPISource creates an API source for the given base URL.
func NewAPISource(
	baseURL string,
	client *http.Client,
	requestTimeout, settingsTimeout time.Duration,
	retryCfg retry.Config,
	log logger.Logger,
) *APISource {
	// The retry budget covers every failure kind, not just network errors.
	retryCfg.IsRetryable = func(error) bool { return true }

	return &APISource{
		baseURL:         baseURL,
		client:          client,
		requestTimeout:  requestTimeout,
		settingsTimeout: settingsTimeout,
		retryCfg:        retryCfg,
		log:             log,
	}
}

// Name identifies the source in logs.
func (s *APISource) Name() string { return "api" }

// Fetch issues a GET for the kind's endpoint, retrying with backoff on any
// failure. Returns the raw response body.
func (s *APISource) Fetch(ctx context.Context, kind content.Kind) ([]byte, error) {
	url := s.baseURL + kind.APIPath()
	timeout := s.timeoutFor(kind)

	var body []byte

	err := retry.Do(ctx, s.retryCfg, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		data, fetchErr := s.get(attemptCtx, url)
		if fetchErr != nil {
			if retry.DefaultIsRetryable(fetchErr) {
				s.log.Warn("Content API request timed out or unreachable",
					logger.String("kind", string(kind)),
					logger.Error(fetchErr),
				)
			} else {
				s.log.Warn("Content API request failed",
					logger.String("kind", string(kind)),
					logger.Error(fetchErr),
				)
			}
			return fetchErr
		}

		body = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s from api: %w", kind, err)
	}

	return body, nil
}

// get performs a single GET attempt.
func (s *APISource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// timeoutFor returns the per-attempt timeout. Settings-style endpoints get a
// longer budget.
func (s *APISource) timeoutFor(kind content.Kind) time.Duration {
	if kind == content.KindCompanySettings || kind == content.KindPageConfigs {
		return s.settingsTimeout
	}
	return s.requestTimeout
}
