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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidReference indicates the pull request argument matched neither
	// a bare number nor a recognizable GitHub PR URL.
	// Maps to exit code 2.
	ErrInvalidReference = errors.New("invalid pull request reference")

	// ErrMissingRepository indicates the owner/repo pair could not be
	// determined from the argument, the --repo flag, or the git remote.
	// Maps to exit code 2.
	ErrMissingRepository = errors.New("repository not specified")

	// ErrInvalidToken indicates GitHub authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrPRNotFound indicates the pull request or its repository does not
	// exist or is not accessible with the supplied credentials.
	// Maps to exit code 2.
	ErrPRNotFound = errors.New("pull request not found")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrMalformedPayload indicates the API returned a comment that is
	// missing a field the renderer requires.
	ErrMalformedPayload = errors.New("malformed api payload")
)

// APIError carries the HTTP status and message of a failed GitHub API call.
// It wraps the sentinel matching the failure class so callers can keep using
// errors.Is for exit code mapping while still surfacing the raw status.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("github api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github api error: %s", e.Message)
}

// Unwrap exposes the wrapped sentinel for errors.Is checks.
func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status of the failed call, 0 when the failure
// happened below the HTTP layer.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
