// Package rom loads cartridge images off disk, unwrapping gzip/zip/7z
// archives transparently, and derives the on-disk save-file path for
// battery-backed cartridges.
package rom

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// Load reads filename and returns the raw ROM bytes, decompressing it
// first if its extension names a supported archive format. A plain
// .gb/.gbc file, or anything with an unrecognized extension, is
// returned as-is.
func Load(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)

	case ".zip":
		zr, err := zip.NewReader(newReaderAt(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, errNoEntries
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	case ".7z":
		sr, err := sevenzip.NewReader(newReaderAt(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(sr.File) == 0 {
			return nil, errNoEntries
		}
		rc, err := sr.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	default:
		return data, nil
	}
}

// SavePath derives the companion .sav path for a ROM path, the
// convention every Game Boy emulator's battery-RAM persistence uses.
func SavePath(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

type readerAt struct {
	data []byte
}

func newReaderAt(data []byte) *readerAt { return &readerAt{data: data} }

func (r *readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

var errNoEntries = archiveError("archive contains no entries")

type archiveError string

func (e archiveError) Error() string { return string(e) }
