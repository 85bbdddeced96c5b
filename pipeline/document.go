package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
)

// ProcessDocument extracts the outline of the document at path. When dest
// is not empty the result is written there, and only after every page was
// processed. Failures are recorded in the result, never returned or
// panicked.
func (p *Pipeline) ProcessDocument(ctx context.Context, path, dest string) (result *model.Result) {
	start := time.Now()
	result = &model.Result{}
	log := logging.ForDocument(p.logger, path)

	defer func() {
		if r := recover(); r != nil {
			result.Headings = nil
			result.Fail(fmt.Errorf("panic: %v", r))
		}
		result.Elapsed = time.Since(start)
		if !result.Success {
			log.WithField("error", result.Error).Error("document processing failed")
		}
	}()

	log.WithField("dpi", p.dpi).Info("processing document")

	doc, err := p.open(path)
	if err != nil {
		result.Fail(err)
		return result
	}
	defer doc.Close()

	result.Title = p.documentTitle(log, path)

	pages := doc.PageCount()
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			result.Headings = nil
			result.Fail(err)
			return result
		}

		img, err := doc.RenderPage(i, p.dpi)
		if err != nil {
			result.Headings = nil
			result.Fail(fmt.Errorf("render page %d: %w", i+1, err))
			return result
		}

		outcome := p.ProcessPage(ctx, Page{Path: path, Number: i + 1, Image: img})
		result.Headings = append(result.Headings, outcome.Headings...)
		result.PageCount++
	}

	if dest != "" && p.write != nil {
		if err := p.write(result, dest); err != nil {
			result.Fail(fmt.Errorf("write %s: %w", dest, err))
			return result
		}
		log.WithField("output", dest).Debug("outline written")
	}

	result.Success = true
	log.WithFields(logrus.Fields{
		"pages":    result.PageCount,
		"headings": len(result.Headings),
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("document processed")
	return result
}

// documentTitle returns the metadata title, or one derived from the file
// name when the document has none
func (p *Pipeline) documentTitle(log logrus.FieldLogger, path string) string {
	if p.title != nil {
		title, err := p.title(path)
		if err != nil {
			log.WithError(err).Debug("metadata title unavailable")
		}
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return TitleFromFilename(path)
}

var titleSeparators = regexp.MustCompile(`[_\-.]+`)

// TitleFromFilename derives a title from a file name: the extension is
// dropped, runs of '_', '-' and '.' become spaces, and each word starts
// with an upper-case letter.
//
//	TitleFromFilename("/docs/annual_report-2024.pdf") // "Annual Report 2024"
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	words := strings.Fields(titleSeparators.ReplaceAllString(name, " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}
