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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListReviewThreads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("path = %s, want /graphql", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding graphql request: %v", err)
		}
		if owner := req.Variables["owner"]; owner != "mozilla" {
			t.Errorf("owner variable = %v, want mozilla", owner)
		}
		if number := req.Variables["number"]; number != float64(435) {
			t.Errorf("number variable = %v, want 435", number)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"repository": {"pullRequest": {"reviewThreads": {
			"pageInfo": {"hasNextPage": false, "endCursor": ""},
			"nodes": [
				{"isResolved": true, "comments": {"nodes": [{"databaseId": 101}, {"databaseId": 102}]}},
				{"isResolved": false, "comments": {"nodes": [{"databaseId": 103}]}}
			]
		}}}}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	threads, err := client.ListReviewThreads(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListReviewThreads failed: %v", err)
	}

	if len(threads) != 2 {
		t.Fatalf("got %d threads, want 2", len(threads))
	}
	if !threads[0].Resolved {
		t.Error("first thread should be resolved")
	}
	if threads[1].Resolved {
		t.Error("second thread should be unresolved")
	}
	if len(threads[0].CommentIDs) != 2 || threads[0].CommentIDs[0] != 101 || threads[0].CommentIDs[1] != 102 {
		t.Errorf("first thread comment IDs = %v, want [101 102]", threads[0].CommentIDs)
	}
	if len(threads[1].CommentIDs) != 1 || threads[1].CommentIDs[0] != 103 {
		t.Errorf("second thread comment IDs = %v, want [103]", threads[1].CommentIDs)
	}
}

func TestListReviewThreadsPagination(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		var req struct {
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding graphql request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		switch calls {
		case 1:
			if after := req.Variables["after"]; after != nil {
				t.Errorf("first page cursor = %v, want null", after)
			}
			fmt.Fprint(w, `{"data": {"repository": {"pullRequest": {"reviewThreads": {
				"pageInfo": {"hasNextPage": true, "endCursor": "cursor-1"},
				"nodes": [{"isResolved": false, "comments": {"nodes": [{"databaseId": 101}]}}]
			}}}}}`)
		case 2:
			if after := req.Variables["after"]; after != "cursor-1" {
				t.Errorf("second page cursor = %v, want cursor-1", after)
			}
			fmt.Fprint(w, `{"data": {"repository": {"pullRequest": {"reviewThreads": {
				"pageInfo": {"hasNextPage": false, "endCursor": ""},
				"nodes": [{"isResolved": true, "comments": {"nodes": [{"databaseId": 103}]}}]
			}}}}}`)
		default:
			t.Errorf("unexpected call %d", calls)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	threads, err := client.ListReviewThreads(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListReviewThreads failed: %v", err)
	}

	if calls != 2 {
		t.Errorf("made %d graphql calls, want 2", calls)
	}
	if len(threads) != 2 {
		t.Fatalf("got %d threads, want 2", len(threads))
	}
}
