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

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// threadPageSize is the reviewThreads page size; also the per-thread
// comment cap, which GitHub's UI shares.
const threadPageSize = 100

// ListReviewThreads retrieves the resolution status of every review thread
// on the pull request. The REST comments API does not expose resolution, so
// this is the one place the tool speaks GraphQL.
func (c *APIClient) ListReviewThreads(ctx context.Context, pr ref.PullRequest) ([]ReviewThread, error) {
	var query struct {
		Repository struct {
			PullRequest struct {
				ReviewThreads struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						IsResolved graphql.Boolean
						Comments   struct {
							Nodes []struct {
								DatabaseID graphql.Int `graphql:"databaseId"`
							}
						} `graphql:"comments(first: 100)"`
					}
				} `graphql:"reviewThreads(first: $first, after: $after)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	var threads []ReviewThread
	var cursor *graphql.String

	for {
		variables := map[string]interface{}{
			"owner":  graphql.String(pr.Owner),
			"repo":   graphql.String(pr.Repo),
			"number": graphql.Int(int32(pr.Number)), // #nosec G115 - PR numbers fit in int32
			"first":  graphql.Int(threadPageSize),
			"after":  cursor,
		}

		if err := c.graphql.Query(ctx, &query, variables); err != nil {
			return nil, c.mapError(err, pr)
		}

		for _, node := range query.Repository.PullRequest.ReviewThreads.Nodes {
			thread := ReviewThread{
				Resolved:   bool(node.IsResolved),
				CommentIDs: make([]int64, 0, len(node.Comments.Nodes)),
			}
			for _, comment := range node.Comments.Nodes {
				thread.CommentIDs = append(thread.CommentIDs, int64(comment.DatabaseID))
			}
			threads = append(threads, thread)
		}

		if !bool(query.Repository.PullRequest.ReviewThreads.PageInfo.HasNextPage) {
			break
		}
		next := query.Repository.PullRequest.ReviewThreads.PageInfo.EndCursor
		cursor = &next
	}

	return threads, nil
}
