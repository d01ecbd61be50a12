// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sirseerhq/sirseer-transcript/internal/giterror"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// RetryConfig configures the retry behavior for API calls
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps a GitHub client with automatic retry logic for
// rate limits and transient network errors using exponential backoff.
// Client errors (auth, not found, malformed reference) are never retried.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	logger    *slog.Logger
	inspector giterror.Inspector
}

// NewRetryClient creates a new RetryClient with the given configuration.
// A nil config selects the defaults; a nil logger discards retry notices.
func NewRetryClient(client Client, config *RetryConfig, logger *slog.Logger) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryClient{
		client:    client,
		config:    config,
		logger:    logger,
		inspector: giterror.NewInspector(),
	}
}

// GetPullRequest implements the Client interface with retry logic
func (r *RetryClient) GetPullRequest(ctx context.Context, pr ref.PullRequest) (*PullRequest, error) {
	var result *PullRequest
	err := r.withRetry(ctx, "pull request metadata", func() error {
		var err error
		result, err = r.client.GetPullRequest(ctx, pr)
		return err
	})
	return result, err
}

// ListReviewComments implements the Client interface with retry logic
func (r *RetryClient) ListReviewComments(ctx context.Context, pr ref.PullRequest) ([]Comment, error) {
	var result []Comment
	err := r.withRetry(ctx, "review comments", func() error {
		var err error
		result, err = r.client.ListReviewComments(ctx, pr)
		return err
	})
	return result, err
}

// ListIssueComments implements the Client interface with retry logic
func (r *RetryClient) ListIssueComments(ctx context.Context, pr ref.PullRequest) ([]IssueComment, error) {
	var result []IssueComment
	err := r.withRetry(ctx, "conversation comments", func() error {
		var err error
		result, err = r.client.ListIssueComments(ctx, pr)
		return err
	})
	return result, err
}

// ListReviewThreads implements the Client interface with retry logic
func (r *RetryClient) ListReviewThreads(ctx context.Context, pr ref.PullRequest) ([]ReviewThread, error) {
	var result []ReviewThread
	err := r.withRetry(ctx, "review threads", func() error {
		var err error
		result, err = r.client.ListReviewThreads(ctx, pr)
		return err
	})
	return result, err
}

// withRetry runs fn until it succeeds, fails with a non-retryable error,
// or exhausts the retry budget.
func (r *RetryClient) withRetry(ctx context.Context, what string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on non-retryable errors
		if !giterror.IsRetryable(r.inspector, err) {
			return err
		}

		// Don't retry if context is cancelled
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Last attempt used up; surface the failure
		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.calculateBackoff(attempt)

		if r.inspector.IsRateLimitError(err) {
			r.logger.Warn("rate limit hit, backing off",
				"what", what,
				"wait", backoff,
				"attempt", attempt+1,
				"max", r.config.MaxRetries)
		} else {
			r.logger.Warn("transient failure, retrying",
				"what", what,
				"error", err,
				"wait", backoff,
				"attempt", attempt+1,
				"max", r.config.MaxRetries)
		}

		// Wait with context cancellation support
		select {
		case <-time.After(backoff):
			// Continue to next retry
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// calculateBackoff calculates the backoff duration for the given attempt
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	// Calculate exponential backoff
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	// Apply max backoff limit
	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// Add jitter (±10%) to prevent thundering herd
	jitter := backoff * 0.1 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}
