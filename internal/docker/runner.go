package docker

import (
	"context"
	"fmt"
	"strings"

	"xchelper/internal/process"
)

// RunSpec describes one `docker run` invocation.
type RunSpec struct {
	Image   string
	Options []RunOption
	Command []string
}

// Args renders the full argument list after the docker binary.
func (s RunSpec) Args() []string {
	args := append([]string{"run"}, Flatten(s.Options)...)
	args = append(args, s.Image)
	return append(args, s.Command...)
}

// ContainerRunner runs commands in containers.
type ContainerRunner interface {
	Run(ctx context.Context, spec RunSpec) (process.Result, error)
	Remove(ctx context.Context, name string) error
}

// CLI implements ContainerRunner on top of the docker command line client.
type CLI struct {
	Runner process.Runner
	Path   string // docker binary, defaults to "docker"
}

func (c CLI) path() string {
	if c.Path == "" {
		return "docker"
	}
	return c.Path
}

// Run executes `docker run` and returns the captured result. A non-zero exit
// from the container is reported in the Result, not as an error.
func (c CLI) Run(ctx context.Context, spec RunSpec) (process.Result, error) {
	if spec.Image == "" {
		return process.Result{}, fmt.Errorf("docker run: image name is required")
	}
	return c.Runner.Run(ctx, process.Command{Path: c.path(), Args: spec.Args()})
}

// Remove force-removes a container and its anonymous volumes. A missing
// container is not an error.
func (c CLI) Remove(ctx context.Context, name string) error {
	res, err := c.Runner.Run(ctx, process.Command{Path: c.path(), Args: []string{"rm", "-f", "-v", name}})
	if err != nil {
		return err
	}
	if res.Failed() && !strings.Contains(res.Stderr, "No such container") {
		return fmt.Errorf("docker rm %s exited %d: %s", name, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}
