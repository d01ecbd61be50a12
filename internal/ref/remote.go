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

package ref

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Matches both SSH (git@github.com:owner/repo.git) and HTTPS
// (https://github.com/owner/repo) remote URLs.
var remotePattern = regexp.MustCompile(`github\.com[:/]([^/\s]+)/([^/\s]+?)(?:\.git)?$`)

// GitRemoteResolver infers owner/repo from the origin remote of the git
// repository containing dir. An empty dir means the current working
// directory.
type GitRemoteResolver struct {
	Dir string
}

// Resolve runs git to read the origin remote URL and parses the GitHub
// owner/repo out of it.
func (g *GitRemoteResolver) Resolve(ctx context.Context) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url")
	if g.Dir != "" {
		cmd.Dir = g.Dir
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", "", fmt.Errorf("no usable git origin remote: %w", err)
	}

	return ParseRemoteURL(strings.TrimSpace(stdout.String()))
}

// ParseRemoteURL extracts owner/repo from a git remote URL pointing at
// GitHub. Non-GitHub remotes are rejected.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	m := remotePattern.FindStringSubmatch(url)
	if m == nil {
		return "", "", fmt.Errorf("remote %q is not a GitHub repository", url)
	}
	return m[1], m[2], nil
}
