// Package helper orchestrates the Swift, Docker, git, tar and S3 steps behind
// every xchelper command. Each operation runs its subprocesses in sequence,
// stops at the first failure and reports it as a tagged *Error.
package helper

import (
	"context"
	"time"

	"xchelper/internal/docker"
	"xchelper/internal/logger"
	"xchelper/internal/process"
	"xchelper/internal/upload"
)

// Tools holds the programs the helper shells out to.
type Tools struct {
	Swift string
	Git   string
	Tar   string
	// ContainerSwift is the swift executable inside Docker images. It is
	// independent of Swift, which is resolved on the host.
	ContainerSwift string
}

// DefaultTools resolves swift and git from PATH and uses the system tar.
func DefaultTools() Tools {
	return Tools{Swift: "swift", Git: "git", Tar: "/usr/bin/tar", ContainerSwift: "swift"}
}

// Helper is the facade the CLI drives. Its collaborators are injected so
// tests can replace them with fakes.
type Helper struct {
	Process  process.Runner
	Docker   docker.ContainerRunner
	Uploader upload.Uploader
	Log      *logger.Logger
	Tools    Tools
	Now      func() time.Time
}

// New wires a Helper that runs everything through runner.
func New(runner process.Runner, log *logger.Logger) *Helper {
	if log == nil {
		log = logger.Discard()
	}
	return &Helper{
		Process:  runner,
		Docker:   docker.CLI{Runner: runner},
		Uploader: upload.S3Uploader{},
		Log:      log,
		Tools:    DefaultTools(),
		Now:      time.Now,
	}
}

func (h *Helper) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// run executes path with args in dir.
func (h *Helper) run(ctx context.Context, dir, path string, args ...string) (process.Result, error) {
	cmd := process.Command{Path: path, Args: args, Dir: dir}
	h.Log.Debug("Running command: %s (in %s)", cmd, dir)
	res, err := h.Process.Run(ctx, cmd)
	h.Log.Debug("Exit code %d", res.ExitCode)
	return res, err
}
