package helper

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"xchelper/internal/gittag"
)

// ProjectFilePath finds <source>/<Name>.xcodeproj/project.pbxproj.
func ProjectFilePath(sourcePath string) (string, error) {
	project, err := findEntry(sourcePath, ".xcodeproj")
	if err != nil {
		return "", wrapError(KindSymlinkDependencies, err, "Failed to find xcodeproj at path: %s", sourcePath)
	}
	pbx, err := findEntry(project, ".pbxproj")
	if err != nil {
		return "", wrapError(KindSymlinkDependencies, err, "Failed to find project.pbxproj at path: %s", project)
	}
	return pbx, nil
}

func findEntry(dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", os.ErrNotExist
}

// packageNameFromProject returns the name Xcode shows for a checkout. It is
// the module directory of a ".build/checkouts/<checkout>/Sources/<Name>"
// group reference, or else the last path element of the first reference.
func packageNameFromProject(checkout, project string) (string, bool) {
	re := regexp.MustCompile(`\.build/checkouts/` + regexp.QuoteMeta(checkout) + `/Sources(.*?)"`)
	matches := re.FindAllStringSubmatch(project, -1)
	if len(matches) == 0 {
		return "", false
	}
	for _, m := range matches {
		if dir := strings.Trim(m[1], "/"); dir != "" && !strings.Contains(dir, "/") {
			return dir, true
		}
	}
	return path.Base(strings.TrimSuffix(matches[0][0], `"`)), true
}

// updateXcodeReferences rewrites project.pbxproj so the group named
// "<Package> <tag>" becomes "<Package>" and paths through the versioned
// checkout go through the symlink instead.
func (h *Helper) updateXcodeReferences(ctx context.Context, sourcePath, checkoutPath, symlinkName string) error {
	projectPath, err := ProjectFilePath(sourcePath)
	if err != nil {
		return err
	}
	info, err := os.Stat(projectPath)
	if err != nil {
		return wrapError(KindSymlinkDependencies, err, "Error reading %s: %v", projectPath, err)
	}
	data, err := os.ReadFile(projectPath)
	if err != nil {
		return wrapError(KindSymlinkDependencies, err, "Error reading %s: %v", projectPath, err)
	}

	checkout := filepath.Base(checkoutPath)
	project := string(data)
	name, ok := packageNameFromProject(checkout, project)
	if !ok {
		h.Log.Debug("No references to %s in %s", checkout, projectPath)
		return nil
	}

	tag, err := h.readTag(ctx, checkoutPath)
	switch {
	case err == nil:
		project = strings.ReplaceAll(project, name+" "+tag.String(), name)
	case errors.Is(err, gittag.ErrTagNotFound):
		h.Log.Debug("No git tag in %s", checkoutPath)
	default:
		return err
	}
	project = strings.ReplaceAll(project, checkout, symlinkName)

	if err := os.WriteFile(projectPath, []byte(project), info.Mode().Perm()); err != nil {
		return wrapError(KindSymlinkDependencies, err, "Error writing %s: %v", projectPath, err)
	}
	return nil
}
