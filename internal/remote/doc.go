// Package remote turns a public GitHub repository URL into zip archive bytes.
//
// The resolver never asks the GitHub API for the default branch. It probes
// the conventional branch names in order through an optional proxy endpoint
// and returns the first archive that looks like a real payload.
package remote
