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
	"errors"
	"fmt"

	gogithub "github.com/google/go-github/v77/github"
	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"

	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
	"github.com/sirseerhq/sirseer-transcript/internal/giterror"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
)

// defaultAPIEndpoint is public GitHub; anything else is treated as a
// GitHub Enterprise deployment.
const defaultAPIEndpoint = "https://api.github.com"

const defaultPageSize = 100

// Options configures the API client.
type Options struct {
	// APIEndpoint is the REST base URL. Empty means public GitHub.
	APIEndpoint string

	// GraphQLEndpoint is the GraphQL URL used for review thread status.
	GraphQLEndpoint string

	// PageSize controls how many comments are requested per page.
	// Defaults to 100, GitHub's maximum.
	PageSize int

	// UserAgent identifies the tool in request headers.
	UserAgent string
}

// APIClient implements Client against the GitHub REST and GraphQL APIs.
// Comments come from REST via go-github; thread resolution status is only
// exposed by GraphQL, so both share one authenticated HTTP client.
type APIClient struct {
	rest      *gogithub.Client
	graphql   *graphql.Client
	pageSize  int
	inspector giterror.Inspector
}

// NewAPIClient creates an authenticated GitHub client. The token is carried
// by an oauth2 static token source; the wrapping transport adds the
// User-Agent header and a response size limit.
func NewAPIClient(token string, opts Options) (*APIClient, error) {
	tokenSource := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), tokenSource)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "sirseer-transcript"
	}
	httpClient.Transport = &headerTransport{
		userAgent: userAgent,
		base:      httpClient.Transport,
	}

	rest := gogithub.NewClient(httpClient)
	if opts.APIEndpoint != "" && opts.APIEndpoint != defaultAPIEndpoint {
		var err error
		rest, err = rest.WithEnterpriseURLs(opts.APIEndpoint, opts.APIEndpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", opts.APIEndpoint, err)
		}
	}

	graphqlEndpoint := opts.GraphQLEndpoint
	if graphqlEndpoint == "" {
		graphqlEndpoint = defaultAPIEndpoint + "/graphql"
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	return &APIClient{
		rest:      rest,
		graphql:   graphql.NewClient(graphqlEndpoint, httpClient),
		pageSize:  pageSize,
		inspector: giterror.NewInspector(),
	}, nil
}

// GetPullRequest retrieves the metadata of the referenced pull request.
func (c *APIClient) GetPullRequest(ctx context.Context, pr ref.PullRequest) (*PullRequest, error) {
	resp, _, err := c.rest.PullRequests.Get(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return nil, c.mapError(err, pr)
	}

	return &PullRequest{
		Number:    resp.GetNumber(),
		Title:     resp.GetTitle(),
		State:     resp.GetState(),
		Body:      resp.GetBody(),
		URL:       resp.GetHTMLURL(),
		Author:    resp.GetUser().GetLogin(),
		CreatedAt: resp.GetCreatedAt().Time,
	}, nil
}

// ListReviewComments retrieves every inline review comment, following
// pagination until the API reports no further pages.
func (c *APIClient) ListReviewComments(ctx context.Context, pr ref.PullRequest) ([]Comment, error) {
	opts := &gogithub.PullRequestListCommentsOptions{
		Sort:      "created",
		Direction: "asc",
		ListOptions: gogithub.ListOptions{
			PerPage: c.pageSize,
		},
	}

	var out []Comment
	for {
		comments, resp, err := c.rest.PullRequests.ListComments(ctx, pr.Owner, pr.Repo, pr.Number, opts)
		if err != nil {
			return nil, c.mapError(err, pr)
		}

		for _, comment := range comments {
			out = append(out, Comment{
				ID:        comment.GetID(),
				Author:    comment.GetUser().GetLogin(),
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt().Time,
				URL:       comment.GetHTMLURL(),
				Path:      comment.GetPath(),
				Line:      comment.GetLine(),
				DiffHunk:  comment.GetDiffHunk(),
				InReplyTo: comment.GetInReplyTo(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// ListIssueComments retrieves every general conversation comment on the
// pull request. PR-level discussion lives on the Issues API.
func (c *APIClient) ListIssueComments(ctx context.Context, pr ref.PullRequest) ([]IssueComment, error) {
	opts := &gogithub.IssueListCommentsOptions{
		ListOptions: gogithub.ListOptions{
			PerPage: c.pageSize,
		},
	}

	var out []IssueComment
	for {
		comments, resp, err := c.rest.Issues.ListComments(ctx, pr.Owner, pr.Repo, pr.Number, opts)
		if err != nil {
			return nil, c.mapError(err, pr)
		}

		for _, comment := range comments {
			out = append(out, IssueComment{
				ID:        comment.GetID(),
				Author:    comment.GetUser().GetLogin(),
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt().Time,
				URL:       comment.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// mapError maps API errors to domain errors with actionable messages.
func (c *APIClient) mapError(err error, pr ref.PullRequest) error {
	if err == nil {
		return nil
	}

	// A canceled context is the caller's doing, not an API failure.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	status := httpStatus(err)

	// Check rate limit first, as 403 can be both auth and rate limit
	switch {
	case c.inspector.IsRateLimitError(err):
		return &transcripterrors.APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("rate limit exceeded while fetching %s, wait before retrying", pr),
			Err:        transcripterrors.ErrRateLimit,
		}
	case c.inspector.IsAuthError(err):
		return &transcripterrors.APIError{
			StatusCode: status,
			Message:    "authentication failed, provide a valid token via --token or GITHUB_TOKEN",
			Err:        transcripterrors.ErrInvalidToken,
		}
	case c.inspector.IsNotFoundError(err):
		return &transcripterrors.APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("pull request %s not found, check the reference and your access permissions", pr),
			Err:        transcripterrors.ErrPRNotFound,
		}
	case c.inspector.IsServerError(err):
		return &transcripterrors.APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("GitHub returned a server error fetching %s: %v", pr, err),
		}
	case c.inspector.IsNetworkError(err):
		return &transcripterrors.APIError{
			Message: fmt.Sprintf("network error fetching %s: %v", pr, err),
			Err:     transcripterrors.ErrNetworkFailure,
		}
	}

	return fmt.Errorf("failed to fetch %s: %w", pr, err)
}

// httpStatus pulls the status code out of go-github's typed errors.
func httpStatus(err error) int {
	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode
	}
	var rateErr *gogithub.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return rateErr.Response.StatusCode
	}
	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return abuseErr.Response.StatusCode
	}
	return 0
}

// Compile-time interface check.
var _ Client = (*APIClient)(nil)
