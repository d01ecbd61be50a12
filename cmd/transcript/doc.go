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

// Package main implements the sirseer-transcript command-line interface.
// This tool fetches the review discussion of one GitHub pull request and
// renders it as a markdown transcript, suitable for reading offline or
// feeding into other tooling.
//
// The CLI supports:
//   - Pull request references as a bare number, full URL, or
//     owner/repo/pull/N shorthand
//   - Repository detection from the git origin remote
//   - Including resolved review threads with --include-resolved
//   - Customizable output destinations (stdout or file)
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	transcript <pull-request> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	transcript https://github.com/mozilla/mp4parse-rust/pull/435
//	transcript 435 --repo mozilla/mp4parse-rust --output review.md
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Invalid reference or authentication/authorization error
//   - 3: Network error
package main
