package pdfoutline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/config"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	config config.Config

	// dpi overrides config.DPI when non-zero
	dpi int

	// modelDirs replaces the model search path when non-empty
	modelDirs []string

	details  bool
	noTables bool
	logger   logrus.FieldLogger
	ctx      context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config: config.Default(),
		ctx:    context.Background(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	newOpts.config.ModelDirs = append([]string(nil), o.config.ModelDirs...)
	if o.modelDirs != nil {
		newOpts.modelDirs = make([]string, len(o.modelDirs))
		copy(newOpts.modelDirs, o.modelDirs)
	}
	return newOpts
}

// resolve applies the fluent overrides to the base configuration
func (o ExtractOptions) resolve() config.Config {
	cfg := o.clone().config
	if o.dpi != 0 {
		cfg.DPI = o.dpi
	}
	if len(o.modelDirs) > 0 {
		cfg.ModelDirs = append([]string(nil), o.modelDirs...)
	}
	if o.details {
		cfg.OutputDetails = true
	}
	if o.noTables {
		cfg.Tables.Enabled = false
	}
	return cfg
}
