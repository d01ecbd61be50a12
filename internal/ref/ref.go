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

// Package ref resolves user-supplied pull request references into a
// fully-qualified owner/repo/number triple. It accepts a bare PR number,
// a full GitHub PR URL, or the owner/repo/pull/N shorthand, and can fall
// back to the working directory's git origin remote when no repository
// is given explicitly.
package ref

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
)

// PullRequest identifies a single pull request. It is immutable once
// resolved; every later stage of the pipeline consumes it read-only.
type PullRequest struct {
	Owner  string
	Repo   string
	Number int
}

// String renders the reference in owner/repo#number form for error messages.
func (p PullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", p.Owner, p.Repo, p.Number)
}

// RemoteResolver supplies an owner/repo pair from the local environment,
// typically by inspecting the git origin remote. It is only consulted when
// the argument is a bare number and no --repo override was given.
type RemoteResolver interface {
	Resolve(ctx context.Context) (owner, repo string, err error)
}

var (
	// https://github.com/owner/repo/pull/123, scheme optional. Trailing
	// URL segments (/files, #discussion_r1) are tolerated.
	urlPattern = regexp.MustCompile(`^(?:https?://)?github\.com/([^/\s]+)/([^/\s]+)/pull/(\d+)(?:[/#?].*)?$`)

	// owner/repo/pull/123 shorthand without a host.
	shorthandPattern = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)/pull/(\d+)$`)
)

// Result carries the resolved reference plus a note on whether an explicit
// --repo override was ignored because the argument already named one.
type Result struct {
	Ref           PullRequest
	RedundantRepo bool
}

// Parse resolves a PR argument and an optional repository override into a
// PullRequest. The remote resolver may be nil, in which case a bare number
// without --repo fails with ErrMissingRepository.
func Parse(ctx context.Context, arg, repoOverride string, remote RemoteResolver) (Result, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Result{}, fmt.Errorf("empty pull request argument: %w", transcripterrors.ErrInvalidReference)
	}

	// Full URL or shorthand carries owner/repo with it; any override is
	// redundant and the URL wins.
	for _, pattern := range []*regexp.Regexp{urlPattern, shorthandPattern} {
		if m := pattern.FindStringSubmatch(arg); m != nil {
			number, err := strconv.Atoi(m[3])
			if err != nil || number <= 0 {
				return Result{}, fmt.Errorf("invalid pull request number %q: %w", m[3], transcripterrors.ErrInvalidReference)
			}
			return Result{
				Ref:           PullRequest{Owner: m[1], Repo: m[2], Number: number},
				RedundantRepo: repoOverride != "",
			}, nil
		}
	}

	number, err := strconv.Atoi(arg)
	if err != nil || number <= 0 {
		return Result{}, fmt.Errorf("cannot parse %q as a pull request number or URL: %w", arg, transcripterrors.ErrInvalidReference)
	}

	if repoOverride != "" {
		owner, repo, err := splitRepo(repoOverride)
		if err != nil {
			return Result{}, err
		}
		return Result{Ref: PullRequest{Owner: owner, Repo: repo, Number: number}}, nil
	}

	if remote == nil {
		return Result{}, fmt.Errorf("pull request %d needs --repo or a git remote: %w", number, transcripterrors.ErrMissingRepository)
	}

	owner, repo, err := remote.Resolve(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("cannot infer repository for pull request %d: %w: %v", number, transcripterrors.ErrMissingRepository, err)
	}

	return Result{Ref: PullRequest{Owner: owner, Repo: repo, Number: number}}, nil
}

// splitRepo parses an owner/name repository string.
func splitRepo(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format, expected <owner>/<repo>, got %q: %w", repoArg, transcripterrors.ErrMissingRepository)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format, expected <owner>/<repo>, got %q: %w", repoArg, transcripterrors.ErrMissingRepository)
	}

	return owner, repo, nil
}
