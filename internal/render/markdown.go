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

// Package render turns fetched pull request data into a markdown
// transcript. Rendering is a pure function of its inputs: the same data
// always produces the same bytes, regardless of the order in which the
// API returned comments.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
	"github.com/sirseerhq/sirseer-transcript/internal/github"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// Options controls what goes into the transcript.
type Options struct {
	// IncludeResolved keeps review threads that were marked resolved.
	// By default they are filtered out, replies included.
	IncludeResolved bool
}

// timeLayout is how timestamps appear in the document. All times are
// normalized to UTC so the output does not depend on the local zone.
const timeLayout = time.RFC3339

// thread is a root review comment plus its replies in chronological order.
type thread struct {
	root    github.Comment
	replies []github.Comment
}

// Render produces the markdown transcript for one pull request. It never
// writes anything itself; the caller decides where the document goes.
func Render(pr ref.PullRequest, meta *github.PullRequest, review []github.Comment, general []github.IssueComment, opts Options) (string, error) {
	if meta == nil {
		return "", fmt.Errorf("missing pull request metadata: %w", transcripterrors.ErrMalformedPayload)
	}
	if err := validate(review, general); err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# PR #%d - %s/%s\n", meta.Number, pr.Owner, pr.Repo)
	fmt.Fprintf(&b, "**Title:** %s\n", meta.Title)
	fmt.Fprintf(&b, "**URL:** %s\n", meta.URL)

	writeGeneralComments(&b, general)
	writeReviewComments(&b, review, opts)

	return b.String(), nil
}

// validate rejects payloads the renderer cannot represent honestly. A
// comment with no author or no timestamp would silently break ordering
// and attribution, so it fails the whole render instead.
func validate(review []github.Comment, general []github.IssueComment) error {
	for _, c := range review {
		if c.Author == "" {
			return fmt.Errorf("review comment %d has no author: %w", c.ID, transcripterrors.ErrMalformedPayload)
		}
		if c.CreatedAt.IsZero() {
			return fmt.Errorf("review comment %d has no timestamp: %w", c.ID, transcripterrors.ErrMalformedPayload)
		}
	}
	for _, c := range general {
		if c.Author == "" {
			return fmt.Errorf("comment %d has no author: %w", c.ID, transcripterrors.ErrMalformedPayload)
		}
		if c.CreatedAt.IsZero() {
			return fmt.Errorf("comment %d has no timestamp: %w", c.ID, transcripterrors.ErrMalformedPayload)
		}
	}
	return nil
}

func writeGeneralComments(b *strings.Builder, general []github.IssueComment) {
	if len(general) == 0 {
		return
	}

	sorted := make([]github.IssueComment, len(general))
	copy(sorted, general)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	b.WriteString("\n## General Comments\n")
	for _, c := range sorted {
		fmt.Fprintf(b, "\n### Comment by @%s\n", c.Author)
		fmt.Fprintf(b, "**Created:** %s\n", c.CreatedAt.UTC().Format(timeLayout))
		if c.URL != "" {
			fmt.Fprintf(b, "**URL:** %s\n", c.URL)
		}
		fmt.Fprintf(b, "\n%s\n", strings.TrimRight(c.Body, "\n"))
		b.WriteString("\n---\n")
	}
}

func writeReviewComments(b *strings.Builder, review []github.Comment, opts Options) {
	byFile := groupThreads(review)
	if len(byFile) == 0 {
		return
	}

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		threads := byFile[path]
		if !opts.IncludeResolved {
			kept := threads[:0]
			for _, th := range threads {
				if !th.root.Resolved {
					kept = append(kept, th)
				}
			}
			threads = kept
		}
		if len(threads) == 0 {
			continue
		}

		fmt.Fprintf(b, "\n## %s\n", path)
		for _, th := range threads {
			writeThread(b, th)
		}
	}
}

func writeThread(b *strings.Builder, th thread) {
	fmt.Fprintf(b, "\n### Comment by @%s\n", th.root.Author)
	if th.root.Line > 0 {
		fmt.Fprintf(b, "**Line:** %d\n", th.root.Line)
	}
	fmt.Fprintf(b, "**Created:** %s\n", th.root.CreatedAt.UTC().Format(timeLayout))
	if th.root.URL != "" {
		fmt.Fprintf(b, "**URL:** %s\n", th.root.URL)
	}

	if th.root.DiffHunk != "" {
		b.WriteString("\n#### Diff Context\n")
		fmt.Fprintf(b, "```diff\n%s\n```\n", strings.TrimRight(th.root.DiffHunk, "\n"))
	}

	b.WriteString("\n#### Comment\n")
	fmt.Fprintf(b, "%s\n", strings.TrimRight(th.root.Body, "\n"))

	for _, reply := range th.replies {
		fmt.Fprintf(b, "\n#### Reply by @%s\n", reply.Author)
		fmt.Fprintf(b, "**Created:** %s\n", reply.CreatedAt.UTC().Format(timeLayout))
		fmt.Fprintf(b, "\n%s\n", strings.TrimRight(reply.Body, "\n"))
	}

	b.WriteString("\n---\n")
}

// groupThreads reconstructs review threads from the flat comment list and
// buckets them by file path. Ordering inside each bucket is by root line,
// then root timestamp, then ID, so the layout is stable no matter how the
// API paginated.
func groupThreads(review []github.Comment) map[string][]thread {
	byID := make(map[int64]github.Comment, len(review))
	for _, c := range review {
		byID[c.ID] = c
	}

	threads := make(map[int64]*thread)
	var rootOrder []int64
	var replies []github.Comment

	for _, c := range review {
		if _, isReply := resolveRoot(c, byID); isReply {
			replies = append(replies, c)
			continue
		}
		threads[c.ID] = &thread{root: c}
		rootOrder = append(rootOrder, c.ID)
	}

	for _, c := range replies {
		rootID, _ := resolveRoot(c, byID)
		if th, ok := threads[rootID]; ok {
			th.replies = append(th.replies, c)
		}
	}

	for _, th := range threads {
		sort.SliceStable(th.replies, func(i, j int) bool {
			if !th.replies[i].CreatedAt.Equal(th.replies[j].CreatedAt) {
				return th.replies[i].CreatedAt.Before(th.replies[j].CreatedAt)
			}
			return th.replies[i].ID < th.replies[j].ID
		})
	}

	byFile := make(map[string][]thread)
	for _, id := range rootOrder {
		th := threads[id]
		byFile[th.root.Path] = append(byFile[th.root.Path], *th)
	}
	for path := range byFile {
		bucket := byFile[path]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].root.Line != bucket[j].root.Line {
				return bucket[i].root.Line < bucket[j].root.Line
			}
			if !bucket[i].root.CreatedAt.Equal(bucket[j].root.CreatedAt) {
				return bucket[i].root.CreatedAt.Before(bucket[j].root.CreatedAt)
			}
			return bucket[i].root.ID < bucket[j].root.ID
		})
	}

	return byFile
}

// resolveRoot follows InReplyTo links to the thread root. It reports
// whether c is a reply; a comment whose parent is missing from the fetched
// set is treated as a root rather than dropped.
func resolveRoot(c github.Comment, byID map[int64]github.Comment) (int64, bool) {
	if c.InReplyTo == 0 {
		return c.ID, false
	}

	current := c
	seen := map[int64]bool{c.ID: true}
	for current.InReplyTo != 0 {
		parent, ok := byID[current.InReplyTo]
		if !ok || seen[parent.ID] {
			return c.ID, false
		}
		seen[parent.ID] = true
		current = parent
	}
	return current.ID, true
}
