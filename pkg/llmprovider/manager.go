package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"conversational-task-management/pkg/log"
)

// Manager orchestrates provider selection, fallback, retry, and payload repair
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration // base backoff; the n-th retry waits n * RetryDelay
	MaxTotalTimeout time.Duration // global timeout for the entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// CompleteJSON runs a completion request expecting a JSON document back.
// It iterates providers in priority order, retrying each with a growing
// backoff, repairs fenced/truncated payloads, and classifies exhaustion as
// ErrRateLimitExceeded or ErrProviderUnavailable for the caller.
func (m *Manager) CompleteJSON(ctx context.Context, req *Request) (json.RawMessage, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	jsonReq := *req
	jsonReq.JSONMode = true

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
		default:
		}

		raw, err := m.completeWithRetry(ctx, provider, &jsonReq)
		if err == nil {
			m.logSuccess(ctx, provider)
			return raw, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, classify(lastErr)
}

// PrimaryModel returns the model name of the highest-priority provider.
// Used by callers recording which model produced a completion.
func (m *Manager) PrimaryModel() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Model()
}

// completeWithRetry makes up to RetryAttempts calls against one provider.
// A malformed payload counts as a failed attempt just like a transport error.
func (m *Manager) completeWithRetry(ctx context.Context, provider Provider, req *Request) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.Complete(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}

		cleaned, err := SanitizeJSON(resp.Content)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			continue
		}

		return json.RawMessage(cleaned), nil
	}

	return nil, lastErr
}

// classify maps an exhausted failure to the caller-facing taxonomy:
// rate-limit exhaustion is distinct from every other provider failure.
func classify(err error) error {
	if err == nil {
		return ErrProviderUnavailable
	}
	if isRateLimited(err) {
		return fmt.Errorf("%w: %v", ErrRateLimitExceeded, err)
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider) {
	m.logger.Infof(ctx, "completion succeeded: provider=%s model=%s", provider.Name(), provider.Model())
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "completion failed: provider=%s model=%s error=%v", provider.Name(), provider.Model(), err)
}
