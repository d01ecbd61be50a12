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
	"log/slog"
	"strings"
	"testing"

	transcripterrors "github.com/sirseerhq/sirseer-transcript/internal/errors"
	"github.com/sirseerhq/sirseer-transcript/internal/github"
	"github.com/sirseerhq/sirseer-transcript/internal/ref"
	"github.com/sirseerhq/sirseer-transcript/internal/render"
)

var integrationRef = ref.PullRequest{Owner: "mozilla", Repo: "mp4parse-rust", Number: 435}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFetchAndRenderPipeline(t *testing.T) {
	mock := github.NewMockClient()
	mock.Threads = []github.ReviewThread{
		{Resolved: false, CommentIDs: []int64{101, 102}},
		{Resolved: false, CommentIDs: []int64{103}},
	}

	doc, err := fetchAndRender(context.Background(), mock, integrationRef, render.Options{}, discardLogger())
	if err != nil {
		t.Fatalf("fetchAndRender failed: %v", err)
	}

	for _, want := range []string{
		"# PR #435 - mozilla/mp4parse-rust",
		"**Title:** Fix sample table parsing",
		"## General Comments",
		"### Comment by @dave",
		"## lib.rs",
		"### Comment by @bob",
		"**Line:** 10",
		"#### Reply by @alice",
		"### Comment by @carol",
		"```diff",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}

	// All four endpoints consulted: metadata, review, issue comments, threads.
	if mock.CallCount != 4 {
		t.Errorf("made %d client calls, want 4", mock.CallCount)
	}
	if mock.LastRef != integrationRef {
		t.Errorf("LastRef = %v, want %v", mock.LastRef, integrationRef)
	}
}

func TestFetchAndRenderAppliesThreadStatus(t *testing.T) {
	mock := github.NewMockClient()
	mock.Threads = []github.ReviewThread{
		{Resolved: true, CommentIDs: []int64{101, 102}},
		{Resolved: false, CommentIDs: []int64{103}},
	}

	doc, err := fetchAndRender(context.Background(), mock, integrationRef, render.Options{}, discardLogger())
	if err != nil {
		t.Fatalf("fetchAndRender failed: %v", err)
	}
	if strings.Contains(doc, "@bob") {
		t.Error("resolved thread should be filtered from default output")
	}
	if !strings.Contains(doc, "@carol") {
		t.Error("unresolved thread missing")
	}

	withResolved, err := fetchAndRender(context.Background(), mock, integrationRef, render.Options{IncludeResolved: true}, discardLogger())
	if err != nil {
		t.Fatalf("fetchAndRender failed: %v", err)
	}
	if !strings.Contains(withResolved, "@bob") {
		t.Error("--include-resolved must keep the resolved thread")
	}
}

func TestFetchAndRenderNotFound(t *testing.T) {
	mock := github.NewMockClient()
	mock.ShouldFailNotFound = true

	_, err := fetchAndRender(context.Background(), mock, integrationRef, render.Options{}, discardLogger())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, transcripterrors.ErrPRNotFound) {
		t.Errorf("error %v does not wrap ErrPRNotFound", err)
	}
	if mapErrorToExitCode(err) != 2 {
		t.Errorf("exit code = %d, want 2", mapErrorToExitCode(err))
	}
	// Metadata fetch fails; nothing further should be requested.
	if mock.CallCount != 1 {
		t.Errorf("made %d client calls, want 1", mock.CallCount)
	}
}

func TestFetchAndRenderCanceledContext(t *testing.T) {
	mock := github.NewMockClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetchAndRender(ctx, mock, integrationRef, render.Options{}, discardLogger())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
