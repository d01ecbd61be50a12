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

import "time"

// PullRequest holds the metadata of the requested pull request that the
// transcript header is built from. It is read-only once fetched.
type PullRequest struct {
	Number    int
	Title     string
	State     string
	Body      string
	URL       string
	Author    string
	CreatedAt time.Time
}

// Comment is an inline review comment anchored to a file in the diff.
// InReplyTo links replies to their thread root (0 for roots). Resolved is
// filled in from the review thread status after fetching, since the REST
// comments endpoint does not expose it.
type Comment struct {
	ID        int64
	Author    string
	Body      string
	CreatedAt time.Time
	URL       string
	Path      string
	Line      int
	DiffHunk  string
	InReplyTo int64
	Resolved  bool
}

// IssueComment is a general PR-level conversation comment (from the GitHub
// Issues API, not the review comments API).
type IssueComment struct {
	ID        int64
	Author    string
	Body      string
	CreatedAt time.Time
	URL       string
}

// ReviewThread reports the resolution status of one review thread and the
// database IDs of the comments belonging to it.
type ReviewThread struct {
	Resolved   bool
	CommentIDs []int64
}

// ApplyThreadStatus marks each comment whose ID appears in a resolved
// thread. Comments not covered by any thread are left unresolved, which is
// the safe default for rendering.
func ApplyThreadStatus(comments []Comment, threads []ReviewThread) {
	resolved := make(map[int64]bool)
	for _, thread := range threads {
		if !thread.Resolved {
			continue
		}
		for _, id := range thread.CommentIDs {
			resolved[id] = true
		}
	}

	for i := range comments {
		if resolved[comments[i].ID] {
			comments[i].Resolved = true
		}
	}
}
