package helper

import (
	"bytes"
	"context"
	"os"
)

// macOSTarget appears in a SwiftPM build description produced on macOS.
var macOSTarget = []byte(`"-target","x86_64-apple`)

// ShouldClean reports whether the build directory holds macOS artifacts
// that must be removed before a Linux build. With no readable build
// description it falls back to whether the build directory exists.
func ShouldClean(sourcePath string, config BuildConfiguration) bool {
	if data, err := os.ReadFile(config.YAMLPath(sourcePath)); err == nil {
		return bytes.Contains(data, macOSTarget)
	}
	_, err := os.Stat(config.BuildDirectory(sourcePath))
	return err == nil
}

// Clean runs `swift package clean`.
func (h *Helper) Clean(ctx context.Context, sourcePath string) error {
	h.Log.LogWithNotification(ctx, "Cleaning")

	res, err := h.run(ctx, sourcePath, h.Tools.Swift, "package", "clean")
	if failed(res, err) {
		return wrapError(KindClean, err, "Error cleaning: %s", failure(res, err))
	}

	h.Log.LogWithNotification(ctx, "Cleaned")
	return nil
}

// CleanIfNeeded cleans only when ShouldClean says so.
func (h *Helper) CleanIfNeeded(ctx context.Context, sourcePath string, config BuildConfiguration) error {
	if !ShouldClean(sourcePath, config) {
		h.Log.Debug("Nothing to clean for %s", config)
		return nil
	}
	return h.Clean(ctx, sourcePath)
}
