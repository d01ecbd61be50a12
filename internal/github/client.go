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

	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// Client defines the interface for fetching a pull request's discussion.
// This interface allows for easy mocking in tests.
type Client interface {
	// GetPullRequest retrieves the metadata of the referenced pull request.
	GetPullRequest(ctx context.Context, pr ref.PullRequest) (*PullRequest, error)

	// ListReviewComments retrieves every inline review comment on the pull
	// request, following pagination to completion.
	ListReviewComments(ctx context.Context, pr ref.PullRequest) ([]Comment, error)

	// ListIssueComments retrieves every general conversation comment on the
	// pull request, following pagination to completion.
	ListIssueComments(ctx context.Context, pr ref.PullRequest) ([]IssueComment, error)

	// ListReviewThreads retrieves the resolution status of the pull
	// request's review threads.
	ListReviewThreads(ctx context.Context, pr ref.PullRequest) ([]ReviewThread, error)
}
