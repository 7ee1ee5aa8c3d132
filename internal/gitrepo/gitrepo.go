// Package gitrepo provides a git client using exec.Command.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/enkerewpo/autodocs/pkg/log"
)

// Client abstracts the git operations used by the sync pipeline.
// Production code uses ExecClient; tests use a double.
type Client interface {
	// Sync ensures an up-to-date checkout of repo at checkoutPath:
	// pull when the checkout already exists, clone with the given
	// branch otherwise.
	Sync(ctx context.Context, repo, branch, checkoutPath string) error

	// Head returns the current HEAD commit hash of the checkout.
	Head(ctx context.Context, checkoutPath string) (string, error)
}

// ExecClient implements Client by invoking the git binary as a subprocess.
type ExecClient struct{}

// New creates a new ExecClient adapter.
func New() *ExecClient {
	return &ExecClient{}
}

func (c *ExecClient) Sync(ctx context.Context, repo, branch, checkoutPath string) error {
	if _, err := os.Stat(checkoutPath); err == nil {
		log.Info("Pulling latest changes for %s", repo)
		return c.run(ctx, checkoutPath, "pull")
	}

	log.Info("Cloning %s (branch %s)", repo, branch)
	return c.run(ctx, "", "clone", "--branch", branch, repo, checkoutPath)
}

func (c *ExecClient) Head(ctx context.Context, checkoutPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = checkoutPath
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD failed in %s: %w", checkoutPath, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// run executes a git subcommand, surfacing its combined output.
func (c *ExecClient) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		log.Info("git %s: %s", args[0], strings.TrimSpace(string(out)))
	}
	if err != nil {
		return fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// RepoName derives the checkout directory name from a repository URL or
// path: the last path segment, trimmed at its first dot.
// "https://github.com/example/docs.git" -> "docs".
func RepoName(repo string) string {
	segments := strings.Split(strings.TrimRight(repo, "/"), "/")
	name := segments[len(segments)-1]
	return strings.SplitN(name, ".", 2)[0]
}

// Compile-time check that ExecClient implements Client.
var _ Client = (*ExecClient)(nil)
