package helper

import (
	"context"
	"path/filepath"

	"xchelper/internal/docker"
)

// UpdateMacOSPackages runs `swift package update` on the host.
func (h *Helper) UpdateMacOSPackages(ctx context.Context, sourcePath string) error {
	h.Log.LogWithNotification(ctx, "Updating macOS packages at: %s", filepath.Base(sourcePath))

	res, err := h.run(ctx, sourcePath, h.Tools.Swift, "package", "update")
	if failed(res, err) {
		return wrapError(KindUpdatePackages, err, "Error updating packages\n%s", failure(res, err))
	}

	h.Log.LogWithNotification(ctx, "Packages updated")
	return nil
}

// UpdateDockerPackages runs `swift package update` inside image with the
// source mounted at the same path. When volumeName is set, the container's
// .build directory is backed by .build/<volumeName>/.build so Linux
// checkouts do not clobber the macOS ones.
func (h *Helper) UpdateDockerPackages(ctx context.Context, sourcePath, image, volumeName string) error {
	h.Log.LogWithNotification(ctx, "Updating Docker packages at: %s", sourcePath)

	opts := []docker.RunOption{
		docker.Volume{Source: sourcePath, Destination: sourcePath},
		docker.WorkingDirectory(sourcePath),
	}
	prefix := ""
	if volumeName != "" {
		prefix = volumeName + " - "
		volumes, err := PersistentVolumeOptions(sourcePath, volumeName)
		if err != nil {
			return wrapError(KindUpdatePackages, err, "%sError creating persistent volume: %v", prefix, err)
		}
		opts = append(opts, volumes...)
	}

	res, err := h.Docker.Run(ctx, docker.RunSpec{
		Image:   image,
		Options: opts,
		Command: []string{h.Tools.ContainerSwift, "package", "update"},
	})
	if failed(res, err) {
		return wrapError(KindUpdatePackages, err, "%sError updating packages\n%s", prefix, failure(res, err))
	}

	h.Log.LogWithNotification(ctx, "Packages updated.")
	return nil
}

// GenerateXcodeProject runs `swift package generate-xcodeproj`.
func (h *Helper) GenerateXcodeProject(ctx context.Context, sourcePath string) error {
	h.Log.Info("Generating Xcode Project")

	res, err := h.run(ctx, sourcePath, h.Tools.Swift, "package", "generate-xcodeproj")
	if failed(res, err) {
		return wrapError(KindUpdatePackages, err, "Error generating Xcode project (%d):\n%s", res.ExitCode, failure(res, err))
	}

	h.Log.Info("Xcode project generated")
	return nil
}
