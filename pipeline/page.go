package pipeline

import (
	"context"
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
)

// Page identifies one rendered page of a document
type Page struct {
	// Path is the document the page belongs to
	Path string

	// Number is the 1-based page number
	Number int

	// Image is the rendered page
	Image image.Image
}

// PageOutcome is the result of processing one page. Err is set when the
// page failed; Headings is then empty.
type PageOutcome struct {
	Headings []model.HeadingInfo

	// Regions is the number of regions returned by the layout detector
	Regions int

	// Fallback reports that the detector used its fallback layout
	Fallback bool

	Err error
}

// ProcessPage extracts the headings of one page. It never fails as a
// whole: a page that cannot be processed yields no headings and the cause
// in Err.
func (p *Pipeline) ProcessPage(ctx context.Context, page Page) (out PageOutcome) {
	log := p.logger.WithFields(logrus.Fields{
		logging.FileKey: page.Path,
		logging.PageKey: page.Number,
	})

	defer func() {
		if r := recover(); r != nil {
			out = PageOutcome{Err: fmt.Errorf("page %d: panic: %v", page.Number, r)}
			log.WithError(out.Err).Error("page processing failed")
		}
	}()

	if page.Image == nil {
		out.Err = fmt.Errorf("page %d: no image", page.Number)
		log.WithError(out.Err).Error("page processing failed")
		return out
	}

	tableBoxes, err := p.tables.Tables(ctx, page.Path, page.Number, p.dpi)
	if err != nil {
		log.WithError(err).Warn("table lookup failed, no regions excluded")
		tableBoxes = nil
	}

	detection := p.detector.Detect(ctx, page.Image)
	out.Regions = len(detection.Detections)
	out.Fallback = detection.Fallback

	log.WithFields(logrus.Fields{
		"regions":  out.Regions,
		"tables":   len(tableBoxes),
		"fallback": detection.Fallback,
	}).Debug("layout detected")

	bounds := page.Image.Bounds()
	for _, det := range detection.Detections {
		if !p.labels[det.Label] {
			continue
		}

		box := det.BBox().Clip(bounds.Dx(), bounds.Dy())
		if box.IsEmpty() {
			continue
		}
		if overlap := tableOverlap(box, tableBoxes); overlap > p.tableOverlap {
			log.WithField("overlap", overlap).Debug("region inside table skipped")
			continue
		}

		text := p.recognize(ctx, log, page.Image, box)
		if utf8.RuneCountInString(text) < p.minTextLength {
			continue
		}

		corrected := p.corrector.Correct(text)
		decision := p.classifier.Classify(corrected, det.Label, box, page.Number)

		log.WithFields(logrus.Fields{
			"label": det.Label,
			"text":  corrected,
			"level": decision.Level,
			"stage": decision.Stage,
			"rule":  decision.Rule,
		}).Debug("region classified")

		if decision.Level == layout.HeadingLevelUnknown {
			continue
		}

		out.Headings = append(out.Headings, model.HeadingInfo{
			Level:      decision.Level.String(),
			Text:       corrected,
			Page:       page.Number,
			BBox:       box,
			Confidence: det.Confidence,
		})
	}

	return out
}

// recognize runs OCR on box; failures count as no text
func (p *Pipeline) recognize(ctx context.Context, log logrus.FieldLogger, img image.Image, box model.BBox) string {
	origin := img.Bounds().Min
	rect := image.Rect(
		origin.X+int(box.Left()), origin.Y+int(box.Top()),
		origin.X+int(box.Right()), origin.Y+int(box.Bottom()),
	)

	text, err := p.recognizer.Recognize(ctx, ocr.Crop(img, rect))
	if err != nil {
		log.WithError(err).Debug("OCR failed, region skipped")
		return ""
	}
	return ocr.Clean(text)
}

// tableOverlap returns the largest fraction of box covered by any table
func tableOverlap(box model.BBox, tables []model.BBox) float64 {
	var largest float64
	for _, t := range tables {
		if f := box.CoveredBy(t); f > largest {
			largest = f
		}
	}
	return largest
}
