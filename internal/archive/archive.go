// Package archive reads files out of a data-export zip and checks that the
// zip looks like a known export.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned when the requested file is not in the archive.
var ErrNotFound = errors.New("file not found in archive")

// ReadFile opens the zip at zipPath and returns the contents of the first
// entry whose base name equals name.
func ReadFile(zipPath, name string) ([]byte, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()
	return readEntry(&zr.Reader, name)
}

// ReadFileFromReader is ReadFile for an archive already held in memory or
// on an open handle.
func ReadFileFromReader(r io.ReaderAt, size int64, name string) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	return readEntry(zr, name)
}

// Exports are sometimes re-zipped with a top-level folder, so entries are
// matched on base name.
func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// entryNames lists the base names of all files in the archive.
func entryNames(zr *zip.Reader) []string {
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(f.Name)
		// macOS zips carry resource forks under __MACOSX/.
		if strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(base, "._") {
			continue
		}
		names = append(names, base)
	}
	return names
}
