// Package files_manager resolves the image file set of each input
// directory: top-level scan, supported-extension filter, deterministic
// ordering, and the batch pre-flight validation that runs before any
// PDF is written.
package files_manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"img2pdf/contracts"
)

type SourceFile = contracts.SourceFile
type ImageFolder = contracts.ImageFolder

// MinImages is the smallest qualifying-file count a directory may have.
// A single image makes no document worth paginating, so the batch
// refuses to start below this.
const MinImages = 2

// Pre-flight validation failures. Wrapped with the offending path; test
// with errors.Is.
var (
	ErrDirectoryNotFound  = errors.New("directory not found")
	ErrInsufficientImages = fmt.Errorf("fewer than %d supported images", MinImages)
)

// SupportedExtensions is the fixed set of input formats, matched
// case-insensitively against the filename extension.
var SupportedExtensions = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
}

// ListImages scans the top level of dir (no recursion) and returns the
// qualifying files in ordinal, case-insensitive lexicographic order of
// the full filename, plus their total size in bytes. The order is NOT
// natural: "img10.jpg" sorts before "img2.jpg", so sources relying on
// numeric page order must zero-pad.
func ListImages(dir string) ([]SourceFile, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}

	files := make([]SourceFile, 0, len(entries))
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !SupportedExtensions[ext] {
			continue
		}
		files = append(files, SourceFile{
			Path:    filepath.Join(dir, entry.Name()),
			SortKey: strings.ToLower(entry.Name()),
		})
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].SortKey != files[j].SortKey {
			return files[i].SortKey < files[j].SortKey
		}
		// Names equal under folding: order by the raw name so the
		// result stays deterministic.
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})
	return files, size, nil
}

// ResolveFolders validates every directory of the batch up front and
// returns the resolved folders in the order given. A missing directory
// or one with fewer than MinImages qualifying files aborts the whole
// run before anything is written.
func ResolveFolders(dirs []string) ([]ImageFolder, error) {
	folders := make([]ImageFolder, 0, len(dirs))
	for _, dir := range dirs {
		stat, err := os.Stat(dir)
		if err != nil || !stat.IsDir() {
			return nil, fmt.Errorf("%s: %w", dir, ErrDirectoryNotFound)
		}

		files, size, err := ListImages(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		if len(files) < MinImages {
			return nil, fmt.Errorf("%s: %w", dir, ErrInsufficientImages)
		}

		clean := filepath.Clean(dir)
		folders = append(folders, ImageFolder{
			Files:      files,
			Name:       filepath.Base(clean),
			Path:       clean,
			OutputPath: OutputPath(dir),
			TotalSize:  size,
		})
	}
	return folders, nil
}

// OutputPath derives the sibling PDF path for a directory: the base
// name with any extension-like suffix replaced by ".pdf", placed next
// to the directory itself. An existing file there is overwritten by
// the writer.
func OutputPath(dir string) string {
	clean := filepath.Clean(dir)
	base := filepath.Base(clean)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(clean), base+".pdf")
}
