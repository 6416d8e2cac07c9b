package helper

import (
	"context"
	"os"
	"path/filepath"

	"xchelper/internal/docker"
)

// BuildRequest describes one `swift build` inside a container.
type BuildRequest struct {
	SourcePath    string
	Image         string
	Configuration BuildConfiguration
	// VolumeName backs the container's .build directory with
	// <source>/.build/<VolumeName>/.build.
	VolumeName string
	// RunOptions are passed to `docker run` before the generated mounts.
	RunOptions []docker.RunOption
}

// DockerBuild compiles the package inside Image. When RunOptions ask for a
// named container that is removed when done, a leftover container with that
// name is removed first.
func (h *Helper) DockerBuild(ctx context.Context, req BuildRequest) error {
	h.Log.LogWithNotification(ctx, "Building in Docker - %s", req.Image)

	if name, ok := docker.ContainerToRemove(req.RunOptions); ok {
		h.Log.Debug("Removing container %s", name)
		if err := h.Docker.Remove(ctx, name); err != nil {
			h.Log.Warn("Failed to remove container %s: %v", name, err)
		}
	}

	prefix := ""
	opts := append([]docker.RunOption(nil), req.RunOptions...)
	opts = append(opts,
		docker.Volume{Source: req.SourcePath, Destination: req.SourcePath},
		docker.WorkingDirectory(req.SourcePath),
	)
	if req.VolumeName != "" {
		prefix = req.VolumeName + " - "
		volumes, err := PersistentVolumeOptions(req.SourcePath, req.VolumeName)
		if err != nil {
			return wrapError(KindDockerBuild, err, "%sError creating persistent volume: %v", prefix, err)
		}
		opts = append(opts, volumes...)
	}

	res, err := h.Docker.Run(ctx, docker.RunSpec{
		Image:   req.Image,
		Options: opts,
		Command: []string{h.Tools.ContainerSwift, "build", "--configuration", req.Configuration.String()},
	})
	if failed(res, err) {
		e := wrapError(KindDockerBuild, err, "%sError building in Docker: %s", prefix, failure(res, err))
		e.ExitCode = res.ExitCode
		if e.ExitCode == 0 {
			e.ExitCode = 1
		}
		return e
	}

	h.Log.LogWithNotification(ctx, "Done building")
	return nil
}

// PersistentVolumeOptions creates <source>/.build/<name>/.build and returns
// the mount that places it over <source>/.build inside the container.
func PersistentVolumeOptions(sourcePath, name string) ([]docker.RunOption, error) {
	host := filepath.Join(sourcePath, ".build", name, ".build")
	if err := os.MkdirAll(host, 0o755); err != nil {
		return nil, err
	}
	return []docker.RunOption{
		docker.Volume{Source: host, Destination: filepath.Join(sourcePath, ".build")},
	}, nil
}
