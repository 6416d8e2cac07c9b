package helper

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PackagesPath is where SwiftPM checks out dependencies.
func PackagesPath(sourcePath string) string {
	return filepath.Join(sourcePath, ".build", "checkouts")
}

// SymlinkName derives the stable name of a versioned checkout directory,
// e.g. "Hello-1234567890" -> "Hello" and "ProcessRunner.git--3415" ->
// "ProcessRunner". Only a numeric suffix is a version; "swift-nio" is
// already stable.
func SymlinkName(dir string) (string, bool) {
	i := strings.LastIndex(dir, "-")
	if i < 0 || !isDigits(dir[i+1:]) {
		return "", false
	}
	name := strings.TrimRight(dir[:i], "-")
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "", false
	}
	return name, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// skipCheckout reports entries that are not versioned checkouts, including
// the links a previous run created.
func skipCheckout(entry fs.DirEntry) bool {
	name := entry.Name()
	return entry.Type()&fs.ModeSymlink != 0 ||
		strings.HasPrefix(name, ".") || strings.HasSuffix(name, "json")
}

// SymlinkDependencies gives every versioned checkout a stable symlink and
// rewrites the generated Xcode project to reference it.
func (h *Helper) SymlinkDependencies(ctx context.Context, sourcePath string) error {
	h.Log.Info("Symlinking dependencies")

	dir := PackagesPath(sourcePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return wrapError(KindSymlinkDependencies, err, "Failed to find directory: %s", dir)
	}

	for _, entry := range entries {
		if skipCheckout(entry) {
			continue
		}
		versioned := entry.Name()
		name, ok := SymlinkName(versioned)
		if !ok {
			continue
		}

		target := filepath.Join(dir, versioned)
		link := filepath.Join(dir, name)
		if err := replaceWithSymlink(target, link); err != nil {
			return wrapError(KindSymlinkDependencies, err, "Error creating symlink: %v", err)
		}
		h.Log.Info("Symlink: %s -> %s", link, target)

		if err := h.updateXcodeReferences(ctx, sourcePath, target, name); err != nil {
			return err
		}
		h.Log.Info("Updated Xcode references for %s", name)
	}

	h.Log.Info("Symlinking done")
	return nil
}

// replaceWithSymlink points link at target, replacing a previous link or file.
// An existing non-empty directory is left alone and reported.
func replaceWithSymlink(target, link string) error {
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Symlink(target, link)
}
