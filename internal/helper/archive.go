package helper

import (
	"context"
	"os"
	"path/filepath"
)

// CreateArchive writes a gzipped tarball of paths to archivePath, creating
// its parent directory. With flat set every path lands at the archive root
// under its base name; otherwise tar keeps the paths as given.
func (h *Helper) CreateArchive(ctx context.Context, archivePath string, paths []string, flat bool) error {
	h.Log.LogWithNotification(ctx, "Creating archive %s", filepath.Base(archivePath))

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return wrapError(KindCreateArchive, err, "Error creating archive directory: %v", err)
	}

	args := []string{"-cvzf", archivePath}
	for _, p := range paths {
		if flat {
			args = append(args, "-C", filepath.Dir(p), filepath.Base(p))
		} else {
			args = append(args, p)
		}
	}

	res, err := h.run(ctx, "", h.Tools.Tar, args...)
	if failed(res, err) {
		return wrapError(KindCreateArchive, err, "Error creating archive: %s", failure(res, err))
	}

	h.Log.LogWithNotification(ctx, "Archive created")
	return nil
}
