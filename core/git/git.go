package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/process"
)

const (
	DefaultCommitMessage = "Initial commit from Create Common App"
	DefaultBranch        = "main"
	HooksDir             = ".husky"
)

// VCS puts a freshly generated project under version control. It reports
// whether a repository was created; failures are never fatal.
type VCS interface {
	TryInit(ctx context.Context, dir, message string) bool
}

type Git struct {
	runner process.Runner

	// Hooks points core.hooksPath at the project's hook directory.
	Hooks bool
}

func New(runner process.Runner) *Git {
	return &Git{runner: runner, Hooks: true}
}

func (g *Git) run(ctx context.Context, dir string, args ...string) error {
	_, err := g.runner.Run(ctx, process.Command{Dir: dir, Name: "git", Args: args})
	return err
}

// InsideWorkTree reports whether dir already belongs to a repository.
func (g *Git) InsideWorkTree(ctx context.Context, dir string) bool {
	result, err := g.runner.Run(ctx, process.Command{Dir: dir, Name: "git", Args: []string{"rev-parse", "--is-inside-work-tree"}})
	return err == nil && result != nil && strings.TrimSpace(result.Stdout) == "true"
}

// TryInit creates a repository in dir on the main branch and commits every
// generated file. A repository left half-initialized is removed.
func (g *Git) TryInit(ctx context.Context, dir, message string) bool {
	if message == "" {
		message = DefaultCommitMessage
	}
	logger.Debug("Trying to initialize a git repository in %s", dir)

	if g.InsideWorkTree(ctx, dir) {
		logger.Debug("%s is already inside a git work tree, skipping init", dir)
		return false
	}

	if err := g.run(ctx, dir, "init"); err != nil {
		if errors.Is(err, process.ErrToolNotFound) {
			logger.Debug("git not found, skipping repository init")
		} else {
			logger.Debug("git init failed: %v", err)
		}
		return false
	}

	steps := [][]string{{"checkout", "-b", DefaultBranch}}
	if g.Hooks {
		steps = append(steps, []string{"config", "core.hooksPath", HooksDir})
	}
	steps = append(steps,
		[]string{"add", "-A"},
		[]string{"commit", "--no-verify", "-m", message},
	)

	for _, args := range steps {
		if err := g.run(ctx, dir, args...); err != nil {
			logger.Debug("git %s failed: %v", args[0], err)
			if rmErr := os.RemoveAll(filepath.Join(dir, ".git")); rmErr != nil {
				logger.Debug("Failed to clean up .git: %v", rmErr)
			}
			return false
		}
	}

	logger.Debug("Initialized git repository in %s", dir)
	return true
}
