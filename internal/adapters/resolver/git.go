package resolver

import (
	"context"
	"fmt"
	"os/exec"
)

// gitFetcher shells out to the system git binary. No vetted third-party
// git-plumbing library appears with call-site usage anywhere in the
// example pack (see DESIGN.md), so this follows the same os/exec idiom
// other CLI tools in the pack use for external tool invocation.
type gitFetcher struct{}

// clone clones url into dest and checks out ref (branch, tag, or sha; the
// empty string means the remote's default branch).
func (g *gitFetcher) clone(ctx context.Context, url, ref, dest string) error {
	if err := run(ctx, "", "git", "clone", "--quiet", url, dest); err != nil {
		return err
	}
	if ref == "" {
		return nil
	}
	return run(ctx, dest, "git", "checkout", "--quiet", ref)
}

// fetch updates an existing clone at dest and checks out ref again, e.g.
// to follow a moving branch tip.
func (g *gitFetcher) fetch(ctx context.Context, ref, dest string) error {
	if err := run(ctx, dest, "git", "fetch", "--quiet", "origin"); err != nil {
		return err
	}
	if ref == "" {
		return run(ctx, dest, "git", "pull", "--quiet", "--ff-only")
	}
	return run(ctx, dest, "git", "checkout", "--quiet", ref)
}

func run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %v: %w: %s", name, args, err, string(out))
	}
	return nil
}
