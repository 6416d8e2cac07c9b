// Package archive reads the archives xchelper produces and downloads:
// tar (optionally gzip, bzip2 or xz compressed), zip and 7z.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format identifies an archive container and compression.
type Format int

const (
	Unknown Format = iota
	Tar
	TarGzip
	TarBzip2
	TarXz
	Zip
	SevenZip
)

func (f Format) String() string {
	switch f {
	case Tar:
		return "tar"
	case TarGzip:
		return "tar.gz"
	case TarBzip2:
		return "tar.bz2"
	case TarXz:
		return "tar.xz"
	case Zip:
		return "zip"
	case SevenZip:
		return "7z"
	}
	return "unknown"
}

var magics = []struct {
	prefix []byte
	format Format
}{
	{[]byte{0x1f, 0x8b}, TarGzip},
	{[]byte("BZh"), TarBzip2},
	{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, TarXz},
	{[]byte("PK\x03\x04"), Zip},
	{[]byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c}, SevenZip},
}

// Detect sniffs the file header first because `tar -czf foo.tar` produces a
// gzip stream behind a plain .tar name, then falls back to the file extension.
func Detect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, err
	}
	header = header[:n]

	for _, m := range magics {
		if bytes.HasPrefix(header, m.prefix) {
			return m.format, nil
		}
	}
	// POSIX tar carries "ustar" at offset 257.
	if len(header) >= 262 && string(header[257:262]) == "ustar" {
		return Tar, nil
	}
	return detectByName(path)
}

func detectByName(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return Zip, nil
	case strings.HasSuffix(path, ".7z"):
		return SevenZip, nil
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return TarGzip, nil
	case strings.HasSuffix(path, ".tar.bz2"):
		return TarBzip2, nil
	case strings.HasSuffix(path, ".tar.xz"):
		return TarXz, nil
	case strings.HasSuffix(path, ".tar"):
		return Tar, nil
	}
	return Unknown, fmt.Errorf("unsupported archive format: %s", path)
}
