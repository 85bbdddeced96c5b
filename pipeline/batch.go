package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/format"
	"github.com/tsawler/pdfoutline/model"
)

// ErrNoDocuments is returned by Batch when the input directory holds no PDFs
var ErrNoDocuments = errors.New("no PDF documents found")

// BatchItem is the outcome for one document of a batch
type BatchItem struct {
	Path   string
	Output string
	Result *model.Result
}

// FindDocuments returns the PDF files directly inside dir, sorted by name
func FindDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || format.Detect(e.Name()) != format.PDF {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputPath returns the result file for a document in outputDir:
// the document's base name with a .json extension
func OutputPath(outputDir, docPath string) string {
	base := filepath.Base(docPath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// Batch processes every PDF in inputDir in name order, writing one result
// per document into outputDir. A failing document never stops the batch;
// its failure is recorded in its item.
func (p *Pipeline) Batch(ctx context.Context, inputDir, outputDir string) ([]BatchItem, error) {
	paths, err := FindDocuments(inputDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, inputDir)
	}

	items := make([]BatchItem, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		dest := OutputPath(outputDir, path)
		items = append(items, BatchItem{
			Path:   path,
			Output: dest,
			Result: p.ProcessDocument(ctx, path, dest),
		})
	}
	return items, nil
}

// Succeeded returns the number of successful documents
func Succeeded(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Result != nil && it.Result.Success {
			n++
		}
	}
	return n
}
