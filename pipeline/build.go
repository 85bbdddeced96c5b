package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/config"
	"github.com/tsawler/pdfoutline/correct"
	"github.com/tsawler/pdfoutline/detector"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
	"github.com/tsawler/pdfoutline/output"
	"github.com/tsawler/pdfoutline/tables"
)

// Setup is a pipeline assembled from a configuration together with the
// resources it owns
type Setup struct {
	Pipeline *Pipeline
	Detector *detector.Detector

	closers []io.Closer
}

// Build assembles a pipeline from cfg. The layout detector is initialized
// here; a missing model is not an error.
func Build(cfg config.Config, logger logrus.FieldLogger) (*Setup, error) {
	rec, err := ocr.NewEngine(cfg.OCR.Engine, cfg.OCROptions())
	if err != nil {
		return nil, fmt.Errorf("OCR engine: %w", err)
	}

	corrector := correct.New(cfg.CorrectorOptions())
	if cfg.Correction.CustomFile != "" {
		if err := corrector.LoadCustom(cfg.Correction.CustomFile); err != nil {
			closeIfCloser(rec)
			return nil, fmt.Errorf("custom corrections: %w", err)
		}
	}

	s := &Setup{}
	if c, ok := rec.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}

	var locator TableLocator = tables.Nop{}
	if cfg.Tables.Enabled {
		tl := tables.NewTextLocator(tables.DefaultConfig())
		s.closers = append(s.closers, tl)
		locator = tl
	}

	det := detector.New(cfg.DetectorOptions(logger))
	det.Initialize()
	s.Detector = det
	s.closers = append(s.closers, det)

	details := output.Options{Details: cfg.OutputDetails}
	s.Pipeline = New(det, rec,
		WithDPI(cfg.DPI),
		WithCorrector(corrector),
		WithTables(locator),
		WithWriter(func(result *model.Result, dest string) error {
			return output.Write(result, dest, details)
		}),
		WithLogger(logger),
	)
	return s, nil
}

// Close releases the detector session, the OCR engine and open documents
func (s *Setup) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func closeIfCloser(v any) {
	if c, ok := v.(io.Closer); ok {
		c.Close()
	}
}
