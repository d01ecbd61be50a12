// Package giterror classifies errors returned by the GitHub API clients so
// that retry and exit-code decisions can be made without string comparisons
// scattered through the codebase.
package giterror
