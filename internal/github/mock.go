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
	"time"

	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Data to return
	PR             *PullRequest
	ReviewComments []Comment
	IssueComments  []IssueComment
	Threads        []ReviewThread

	// Error to return from every method
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool
	ShouldFailNetwork  bool

	// Track calls for verification
	CallCount int
	LastRef   ref.PullRequest
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		PR:             mockPullRequest(),
		ReviewComments: mockReviewComments(),
		IssueComments:  mockIssueComments(),
	}
}

func (m *MockClient) fail(pr ref.PullRequest) error {
	if m.ShouldFailAuth {
		return &transcripterrors.APIError{
			StatusCode: 401,
			Message:    "authentication failed",
			Err:        transcripterrors.ErrInvalidToken,
		}
	}
	if m.ShouldFailNotFound {
		return &transcripterrors.APIError{
			StatusCode: 404,
			Message:    fmt.Sprintf("pull request %s not found", pr),
			Err:        transcripterrors.ErrPRNotFound,
		}
	}
	if m.ShouldFailNetwork {
		return &transcripterrors.APIError{
			Message: "network timeout",
			Err:     transcripterrors.ErrNetworkFailure,
		}
	}
	return m.Error
}

func (m *MockClient) record(ctx context.Context, pr ref.PullRequest) error {
	m.CallCount++
	m.LastRef = pr

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return m.fail(pr)
}

// GetPullRequest implements the Client interface
func (m *MockClient) GetPullRequest(ctx context.Context, pr ref.PullRequest) (*PullRequest, error) {
	if err := m.record(ctx, pr); err != nil {
		return nil, err
	}
	return m.PR, nil
}

// ListReviewComments implements the Client interface
func (m *MockClient) ListReviewComments(ctx context.Context, pr ref.PullRequest) ([]Comment, error) {
	if err := m.record(ctx, pr); err != nil {
		return nil, err
	}
	return m.ReviewComments, nil
}

// ListIssueComments implements the Client interface
func (m *MockClient) ListIssueComments(ctx context.Context, pr ref.PullRequest) ([]IssueComment, error) {
	if err := m.record(ctx, pr); err != nil {
		return nil, err
	}
	return m.IssueComments, nil
}

// ListReviewThreads implements the Client interface
func (m *MockClient) ListReviewThreads(ctx context.Context, pr ref.PullRequest) ([]ReviewThread, error) {
	if err := m.record(ctx, pr); err != nil {
		return nil, err
	}
	return m.Threads, nil
}

func mockPullRequest() *PullRequest {
	return &PullRequest{
		Number:    435,
		Title:     "Fix sample table parsing",
		State:     "open",
		URL:       "https://github.com/mozilla/mp4parse-rust/pull/435",
		Author:    "alice",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func mockReviewComments() []Comment {
	return []Comment{
		{
			ID:        101,
			Author:    "bob",
			Body:      "This bound check looks off by one.",
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			URL:       "https://github.com/mozilla/mp4parse-rust/pull/435#discussion_r101",
			Path:      "lib.rs",
			Line:      10,
			DiffHunk:  "@@ -8,6 +8,8 @@\n+    if idx >= len {",
		},
		{
			ID:        102,
			Author:    "alice",
			Body:      "Good catch, fixed.",
			CreatedAt: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
			URL:       "https://github.com/mozilla/mp4parse-rust/pull/435#discussion_r102",
			Path:      "lib.rs",
			Line:      10,
			InReplyTo: 101,
		},
		{
			ID:        103,
			Author:    "carol",
			Body:      "Can this allocation move out of the loop?",
			CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			URL:       "https://github.com/mozilla/mp4parse-rust/pull/435#discussion_r103",
			Path:      "lib.rs",
			Line:      20,
			DiffHunk:  "@@ -18,3 +18,5 @@\n+    let mut buf = Vec::new();",
		},
	}
}

func mockIssueComments() []IssueComment {
	return []IssueComment{
		{
			ID:        201,
			Author:    "dave",
			Body:      "Thanks for picking this up!",
			CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			URL:       "https://github.com/mozilla/mp4parse-rust/pull/435#issuecomment-201",
		},
	}
}
