package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// List returns the entries of src in archive order.
func List(src string) ([]Entry, error) {
	var entries []Entry
	err := walk(src, func(e Entry, _ func() (io.ReadCloser, error)) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TopLevel returns the sorted, de-duplicated first path elements of the
// entries, which is what `ls` shows after extracting the archive. Leading
// slashes are ignored the same way tar strips them on extraction.
func TopLevel(entries []Entry) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		name := strings.TrimLeft(e.Name, "/")
		first, _, _ := strings.Cut(name, "/")
		if first == "" || seen[first] {
			continue
		}
		seen[first] = true
		out = append(out, first)
	}
	sort.Strings(out)
	return out
}

// Extract unpacks src into dest and returns dest. Members that would escape
// dest are rejected.
func Extract(src, dest string) (string, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", err
	}
	root, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}

	err = walk(src, func(e Entry, open func() (io.ReadCloser, error)) error {
		target := filepath.Join(root, filepath.FromSlash(strings.TrimLeft(e.Name, "/")))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", e.Name, dest)
		}
		if e.IsDir {
			return os.MkdirAll(target, 0755)
		}
		if open == nil {
			return nil // links and special files are not restored
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return writeEntry(target, e.Mode, open)
	})
	if err != nil {
		return "", err
	}
	return root, nil
}

func writeEntry(target string, mode os.FileMode, open func() (io.ReadCloser, error)) error {
	rc, err := open()
	if err != nil {
		return err
	}
	defer rc.Close()

	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, rc); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
