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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-transcript/internal/config"
	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
	"github.com/sirseerhq/sirseer-transcript/internal/github"
	"github.com/sirseerhq/sirseer-transcript/internal/logging"
	"github.com/sirseerhq/sirseer-transcript/internal/output"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
	"github.com/sirseerhq/sirseer-transcript/internal/render"
)

// fetchOptions carries everything the command line contributes to a run.
type fetchOptions struct {
	repo            string
	token           string
	outputFile      string
	configFile      string
	includeResolved bool
	verbose         bool
}

func newRootCommand() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "transcript <pull-request>",
		Short: "Fetch the review discussion of a GitHub pull request as markdown",
		Long: `sirseer-transcript fetches the full review discussion of one GitHub
pull request and prints it as a markdown transcript.

The pull request can be referenced three ways:
  - a bare number (the repository comes from --repo or the git origin remote)
  - a full URL: https://github.com/owner/repo/pull/123
  - the shorthand owner/repo/pull/123

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			return runFetch(ctx, args[0], opts, os.Stdout, os.Stderr)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository as owner/name (for bare pull request numbers)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file path (default: search standard locations)")
	cmd.Flags().BoolVar(&opts.includeResolved, "include-resolved", false, "Include review threads that were marked resolved")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// runFetch executes one transcript run end to end: resolve the reference,
// fetch everything, render, then write. Nothing is written until the
// document is fully assembled.
func runFetch(ctx context.Context, arg string, opts *fetchOptions, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(stderr, opts.verbose)

	token := opts.token
	if token == "" {
		token = os.Getenv(cfg.GitHub.TokenEnv)
	}
	if token == "" {
		return fmt.Errorf("GitHub token not found, set %s or use --token: %w",
			cfg.GitHub.TokenEnv, transcripterrors.ErrInvalidToken)
	}

	result, err := ref.Parse(ctx, arg, opts.repo, &ref.GitRemoteResolver{})
	if err != nil {
		return err
	}
	if result.RedundantRepo {
		logger.Warn("--repo ignored, the pull request reference already names a repository",
			"repo", result.Ref.Owner+"/"+result.Ref.Repo)
	}

	apiClient, err := github.NewAPIClient(token, github.Options{
		APIEndpoint:     cfg.GitHub.APIEndpoint,
		GraphQLEndpoint: cfg.GitHub.GraphQLEndpoint,
		PageSize:        cfg.Fetch.PageSize,
	})
	if err != nil {
		return err
	}
	client := github.NewRetryClient(apiClient, &github.RetryConfig{
		MaxRetries:        cfg.Retry.MaxRetries,
		InitialBackoff:    cfg.Retry.InitialBackoff.Std(),
		MaxBackoff:        cfg.Retry.MaxBackoff.Std(),
		BackoffMultiplier: 2.0,
	}, logger)

	doc, err := fetchAndRender(ctx, client, result.Ref, render.Options{
		IncludeResolved: opts.includeResolved,
	}, logger)
	if err != nil {
		return err
	}

	var writer output.DocumentWriter
	if opts.outputFile == "" {
		writer = output.NewWriter(stdout)
	} else {
		fileWriter, fErr := output.NewFileWriter(opts.outputFile)
		if fErr != nil {
			return fErr
		}
		writer = fileWriter
	}
	defer writer.Close()

	return writer.WriteDocument(doc)
}

// fetchAndRender pulls every piece of the discussion and assembles the
// transcript. All fetches complete before rendering starts, so a late
// API failure cannot leave a partial document.
func fetchAndRender(ctx context.Context, client github.Client, pr ref.PullRequest, opts render.Options, logger *slog.Logger) (string, error) {
	logger.Debug("fetching pull request", "ref", pr.String())
	meta, err := client.GetPullRequest(ctx, pr)
	if err != nil {
		return "", err
	}

	review, err := client.ListReviewComments(ctx, pr)
	if err != nil {
		return "", err
	}
	logger.Debug("fetched review comments", "count", len(review))

	general, err := client.ListIssueComments(ctx, pr)
	if err != nil {
		return "", err
	}
	logger.Debug("fetched conversation comments", "count", len(general))

	threads, err := client.ListReviewThreads(ctx, pr)
	if err != nil {
		return "", err
	}
	github.ApplyThreadStatus(review, threads)

	return render.Render(pr, meta, review, general, opts)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, transcripterrors.ErrInvalidReference) ||
		errors.Is(err, transcripterrors.ErrMissingRepository) ||
		errors.Is(err, transcripterrors.ErrInvalidToken) ||
		errors.Is(err, transcripterrors.ErrPRNotFound) ||
		errors.Is(err, transcripterrors.ErrRateLimit) {
		return 2 // Bad reference or authorization errors
	}

	if errors.Is(err, transcripterrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
