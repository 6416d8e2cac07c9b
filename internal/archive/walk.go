package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// Entry is one member of an archive.
type Entry struct {
	Name  string
	IsDir bool
	Mode  fs.FileMode
	Size  int64
}

// visitFunc is called for each entry; open returns the entry's content and is nil for directories.
type visitFunc func(e Entry, open func() (io.ReadCloser, error)) error

// walk routes to the reader for the detected format and visits every entry in archive order.
func walk(src string, visit visitFunc) error {
	format, err := Detect(src)
	if err != nil {
		return err
	}
	switch format {
	case Zip:
		return walkZip(src, visit)
	case SevenZip:
		return walk7z(src, visit)
	case Tar, TarGzip, TarBzip2, TarXz:
		return walkTar(src, format, visit)
	}
	return fmt.Errorf("unsupported archive format: %s", src)
}

// walkTar handles tar and compressed tar variants
func walkTar(src string, format Format, visit visitFunc) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch format {
	case TarGzip:
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case TarBzip2:
		reader = bzip2.NewReader(f)
	case TarXz:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil // End of archive
		}
		if err != nil {
			return err
		}
		e := Entry{
			Name:  cleanName(hdr.Name),
			IsDir: hdr.Typeflag == tar.TypeDir,
			Mode:  hdr.FileInfo().Mode(),
			Size:  hdr.Size,
		}
		if e.Name == "" {
			continue
		}
		var open func() (io.ReadCloser, error)
		if hdr.Typeflag == tar.TypeReg {
			open = func() (io.ReadCloser, error) { return io.NopCloser(tr), nil }
		}
		if err := visit(e, open); err != nil {
			return err
		}
	}
}

// walkZip visits a .zip archive
func walkZip(src string, visit visitFunc) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		info := f.FileInfo()
		e := Entry{Name: cleanName(f.Name), IsDir: info.IsDir(), Mode: info.Mode(), Size: info.Size()}
		var open func() (io.ReadCloser, error)
		if !e.IsDir {
			open = f.Open
		}
		if err := visit(e, open); err != nil {
			return err
		}
	}
	return nil
}

// walk7z visits a .7z archive using the sevenzip library
func walk7z(src string, visit visitFunc) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		info := f.FileInfo()
		e := Entry{Name: cleanName(f.Name), IsDir: info.IsDir(), Mode: info.Mode(), Size: info.Size()}
		var open func() (io.ReadCloser, error)
		if !e.IsDir {
			open = f.Open
		}
		if err := visit(e, open); err != nil {
			return err
		}
	}
	return nil
}

// cleanName drops the "./" prefix and trailing slash tar adds to member names.
func cleanName(name string) string {
	name = strings.TrimPrefix(name, "./")
	return strings.TrimSuffix(name, "/")
}
