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

// Package github fetches the discussion of a single pull request from the
// GitHub API: the PR metadata, its inline review comments, its general
// conversation comments, and the resolution status of its review threads.
//
// The REST API (via go-github) supplies the comments themselves; resolution
// status is only available through the GraphQL reviewThreads connection, so
// the client speaks both protocols against the same credentials. All list
// operations follow pagination to completion before returning, so callers
// always see the full comment set.
//
// The RetryClient decorator adds bounded exponential-backoff retry for
// transient failures (rate limits, 5xx responses, network errors). 4xx
// failures surface immediately as *errors.APIError values wrapping the
// matching sentinel.
package github
