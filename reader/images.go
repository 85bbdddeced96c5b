package reader

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"sort"

	"github.com/tsawler/pdfoutline/format"
)

// ImageSet is a directory of pre-rendered page images, one file per page
type ImageSet struct {
	dir   string
	files []string
}

// OpenImages opens a directory of PNG or JPEG page images. Pages are
// ordered by file name, so names should sort in page order
// (page-001.png, page-002.png, ...).
func OpenImages(dir string) (*ImageSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !format.Detect(e.Name()).IsImage() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no page images in %s", ErrNoPages, dir)
	}
	sort.Strings(files)

	return &ImageSet{dir: dir, files: files}, nil
}

// Path returns the directory the pages were read from
func (s *ImageSet) Path() string {
	return s.dir
}

// PageCount returns the number of page images
func (s *ImageSet) PageCount() int {
	return len(s.files)
}

// Files returns the page image paths in page order
func (s *ImageSet) Files() []string {
	return append([]string(nil), s.files...)
}

// RenderPage decodes the page image at index (0-based). Images are used at
// the resolution they were rendered at; dpi is ignored.
func (s *ImageSet) RenderPage(index, dpi int) (image.Image, error) {
	if index < 0 || index >= len(s.files) {
		return nil, fmt.Errorf("page index %d out of range (0-%d)", index, len(s.files)-1)
	}

	f, err := os.Open(s.files[index])
	if err != nil {
		return nil, fmt.Errorf("open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(s.files[index]), err)
	}
	return img, nil
}

// Close is a no-op; files are opened per page
func (s *ImageSet) Close() error {
	return nil
}
