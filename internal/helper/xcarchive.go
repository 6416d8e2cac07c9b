package helper

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"howett.net/plist"
)

const (
	xcarchiveDirLayout  = "2006-01-02"
	xcarchiveNameLayout = "01-02-2006, 3.04.05 PM"
)

type xcarchiveInfo struct {
	ArchiveVersion string    `plist:"ArchiveVersion"`
	CreationDate   time.Time `plist:"CreationDate"`
	Name           string    `plist:"Name"`
	SchemeName     string    `plist:"SchemeName"`
}

// XcarchivePath is where CreateXcarchive puts the archive of binary.
func XcarchivePath(dir, binary string, at time.Time) string {
	name := filepath.Base(binary)
	return filepath.Join(dir, at.Format(xcarchiveDirLayout),
		"xchelper-"+name+" "+at.Format(xcarchiveNameLayout)+".xcarchive")
}

// CreateXcarchive packages binary as an .xcarchive under dir so it shows up
// in the Xcode organizer, and returns the archive path.
func (h *Helper) CreateXcarchive(ctx context.Context, dir, binary, scheme string) (string, error) {
	now := h.now()
	name := filepath.Base(binary)
	path := XcarchivePath(dir, binary, now)
	h.Log.LogWithNotification(ctx, "Creating xcarchive %s", filepath.Base(path))

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", wrapError(KindCreateXcarchive, err, "Error creating xcarchive directory: %v", err)
	}
	if err := writeInfoPlist(filepath.Join(path, "Info.plist"), xcarchiveInfo{
		ArchiveVersion: "2",
		CreationDate:   now.UTC().Truncate(time.Second),
		Name:           name,
		SchemeName:     scheme,
	}); err != nil {
		return "", wrapError(KindXcarchivePlist, err, "Error writing Info.plist: %v", err)
	}

	products := filepath.Join(path, "Products", name+".tar")
	if err := h.CreateArchive(ctx, products, []string{binary}, true); err != nil {
		return "", err
	}
	return path, nil
}

func writeInfoPlist(path string, info xcarchiveInfo) error {
	data, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
