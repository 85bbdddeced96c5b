package config

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/correct"
	"github.com/tsawler/pdfoutline/detector"
	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/ocr"
)

// DetectorOptions returns layout detector options for these settings
func (c Config) DetectorOptions(logger logrus.FieldLogger) detector.Options {
	opts := detector.DefaultOptions()
	opts.Backend = detector.Backend(c.Detector.Backend)
	opts.ModelDirs = append([]string(nil), c.ModelDirs...)
	opts.RemoteURL = c.Detector.RemoteURL
	opts.ONNXLibrary = c.Detector.ONNXLibrary
	if mode, err := detector.ParseFallbackMode(c.Detector.Fallback); err == nil {
		opts.Fallback = mode
	}
	opts.Config.ConfidenceThreshold = c.Detector.ConfidenceThreshold
	opts.Config.NMSThreshold = c.Detector.NMSThreshold
	opts.Config.InputSize = c.Detector.InputSize
	opts.Logger = logger
	return opts
}

// OCROptions returns OCR engine options for these settings
func (c Config) OCROptions() ocr.Options {
	return ocr.Options{
		Binary:      c.OCR.Binary,
		Language:    c.OCR.Language,
		PageSegMode: c.OCR.PSM,
	}
}

// CorrectorOptions returns text correction options for these settings
func (c Config) CorrectorOptions() correct.Options {
	opts := correct.DefaultOptions()
	opts.Aggressive = c.Correction.Aggressive
	opts.Confusions = c.Correction.Confusions
	return opts
}

// LogOptions returns logger options for these settings
func (c Config) LogOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, File: c.Log.File}
}
