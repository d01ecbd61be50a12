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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct invalid reference error",
			err:      ErrInvalidReference,
			sentinel: ErrInvalidReference,
			want:     true,
		},
		{
			name:     "wrapped invalid reference error",
			err:      fmt.Errorf("cannot parse %q: %w", "abc", ErrInvalidReference),
			sentinel: ErrInvalidReference,
			want:     true,
		},
		{
			name:     "wrapped missing repository error",
			err:      fmt.Errorf("no --repo flag and no git remote: %w", ErrMissingRepository),
			sentinel: ErrMissingRepository,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrPRNotFound,
			sentinel: ErrInvalidToken,
			want:     false,
		},
		{
			name:     "wrapped network error",
			err:      fmt.Errorf("connection failed: %w", ErrNetworkFailure),
			sentinel: ErrNetworkFailure,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrInvalidReference,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidReference, "invalid pull request reference"},
		{ErrMissingRepository, "repository not specified"},
		{ErrInvalidToken, "invalid github token"},
		{ErrPRNotFound, "pull request not found"},
		{ErrNetworkFailure, "network connection failed"},
		{ErrRateLimit, "github rate limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name     string
		apiErr   *APIError
		sentinel error
		wantMsg  string
	}{
		{
			name:     "not found carries status and sentinel",
			apiErr:   &APIError{StatusCode: 404, Message: "Not Found", Err: ErrPRNotFound},
			sentinel: ErrPRNotFound,
			wantMsg:  "github api error (status 404): Not Found",
		},
		{
			name:     "auth failure",
			apiErr:   &APIError{StatusCode: 401, Message: "Bad credentials", Err: ErrInvalidToken},
			sentinel: ErrInvalidToken,
			wantMsg:  "github api error (status 401): Bad credentials",
		},
		{
			name:     "no status code",
			apiErr:   &APIError{Message: "connection reset", Err: ErrNetworkFailure},
			sentinel: ErrNetworkFailure,
			wantMsg:  "github api error: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiErr.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.apiErr, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.apiErr, tt.sentinel)
			}

			var apiErr *APIError
			wrapped := fmt.Errorf("fetch failed: %w", tt.apiErr)
			if !errors.As(wrapped, &apiErr) {
				t.Fatalf("errors.As failed to recover *APIError from %v", wrapped)
			}
			if apiErr.StatusCode != tt.apiErr.StatusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.apiErr.StatusCode)
			}
		})
	}
}
