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

import "testing"

func TestApplyThreadStatus(t *testing.T) {
	tests := []struct {
		name         string
		threads      []ReviewThread
		wantResolved map[int64]bool
	}{
		{
			name:         "no threads leaves everything unresolved",
			threads:      nil,
			wantResolved: map[int64]bool{101: false, 102: false, 103: false},
		},
		{
			name: "resolved thread marks all its comments",
			threads: []ReviewThread{
				{Resolved: true, CommentIDs: []int64{101, 102}},
				{Resolved: false, CommentIDs: []int64{103}},
			},
			wantResolved: map[int64]bool{101: true, 102: true, 103: false},
		},
		{
			name: "thread referencing unknown comment is harmless",
			threads: []ReviewThread{
				{Resolved: true, CommentIDs: []int64{999}},
			},
			wantResolved: map[int64]bool{101: false, 102: false, 103: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := mockReviewComments()
			ApplyThreadStatus(comments, tt.threads)

			for _, c := range comments {
				if want := tt.wantResolved[c.ID]; c.Resolved != want {
					t.Errorf("comment %d: Resolved = %v, want %v", c.ID, c.Resolved, want)
				}
			}
		})
	}
}
