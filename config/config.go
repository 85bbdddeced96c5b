// Package config loads pdfoutline settings from a YAML file, an optional
// .env file and PDFOUTLINE_* environment variables, in that order of
// increasing precedence.
//
//	cfg, err := config.Load("pdfoutline.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	det := detector.New(cfg.DetectorOptions())
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PDFOUTLINE_"

// Config holds all settings of an outline run
type Config struct {
	// DPI is the page rendering resolution
	DPI int `yaml:"dpi" validate:"min=36,max=600"`

	// InputDir is scanned for PDFs in batch mode
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir receives one JSON file per document in batch mode
	OutputDir string `yaml:"output_dir" validate:"required"`

	// Output is the result path for a single document
	Output string `yaml:"output" validate:"required"`

	// ModelDirs is the layout model search path
	ModelDirs []string `yaml:"model_dirs" validate:"dive,required"`

	// OutputDetails adds bbox and confidence to every outline entry
	OutputDetails bool `yaml:"output_details"`

	Detector   DetectorConfig   `yaml:"detector"`
	OCR        OCRConfig        `yaml:"ocr"`
	Correction CorrectionConfig `yaml:"correction"`
	Tables     TablesConfig     `yaml:"tables"`
	Log        LogConfig        `yaml:"log"`
}

// DetectorConfig configures the layout detector
type DetectorConfig struct {
	Backend             string  `yaml:"backend" validate:"oneof=onnx remote none"`
	RemoteURL           string  `yaml:"remote_url" validate:"omitempty,url"`
	ONNXLibrary         string  `yaml:"onnx_library"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	NMSThreshold        float64 `yaml:"nms_threshold" validate:"gte=0,lte=1"`
	InputSize           int     `yaml:"input_size" validate:"gt=0"`
	Fallback            string  `yaml:"fallback" validate:"oneof=heuristic none"`
}

// OCRConfig configures text recognition
type OCRConfig struct {
	Engine   string `yaml:"engine" validate:"oneof=tesseract gosseract"`
	Binary   string `yaml:"binary"`
	Language string `yaml:"language" validate:"required"`
	PSM      int    `yaml:"psm" validate:"min=0,max=13"`
}

// CorrectionConfig configures OCR text correction
type CorrectionConfig struct {
	Aggressive bool   `yaml:"aggressive"`
	Confusions bool   `yaml:"confusions"`
	CustomFile string `yaml:"custom_file"`
}

// TablesConfig configures table exclusion
type TablesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DPI:       100,
		InputDir:  "input",
		OutputDir: "output",
		Output:    "output/heading_schema.json",
		ModelDirs: []string{
			"models/yolo_layout",
			"models/PP-DocLayout-L",
			"models/PP-DocLayout-S",
		},
		Detector: DetectorConfig{
			Backend:             "onnx",
			ConfidenceThreshold: 0.5,
			NMSThreshold:        0.45,
			InputSize:           1024,
			Fallback:            "heuristic",
		},
		OCR: OCRConfig{
			Engine:   "tesseract",
			Binary:   "tesseract",
			Language: "eng",
			PSM:      6,
		},
		Correction: CorrectionConfig{Confusions: true},
		Tables:     TablesConfig{Enabled: true},
		Log:        LogConfig{Level: "info"},
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path (if path is not empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnvFile loads variables from a .env file into the process
// environment. Variables already set are kept. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// envVar binds one environment variable to a setting
type envVar struct {
	key string
	set func(c *Config, v string) error
}

var envVars = []envVar{
	{"DPI", func(c *Config, v string) error { return setInt(&c.DPI, v) }},
	{"INPUT_DIR", func(c *Config, v string) error { c.InputDir = v; return nil }},
	{"OUTPUT_DIR", func(c *Config, v string) error { c.OutputDir = v; return nil }},
	{"OUTPUT", func(c *Config, v string) error { c.Output = v; return nil }},
	{"OUTPUT_DETAILS", func(c *Config, v string) error { return setBool(&c.OutputDetails, v) }},
	{"MODEL_DIRS", func(c *Config, v string) error { c.ModelDirs = splitList(v); return nil }},
	{"DETECTOR_BACKEND", func(c *Config, v string) error { c.Detector.Backend = v; return nil }},
	{"REMOTE_URL", func(c *Config, v string) error { c.Detector.RemoteURL = v; return nil }},
	{"ONNX_LIBRARY", func(c *Config, v string) error { c.Detector.ONNXLibrary = v; return nil }},
	{"CONFIDENCE_THRESHOLD", func(c *Config, v string) error { return setFloat(&c.Detector.ConfidenceThreshold, v) }},
	{"NMS_THRESHOLD", func(c *Config, v string) error { return setFloat(&c.Detector.NMSThreshold, v) }},
	{"FALLBACK", func(c *Config, v string) error { c.Detector.Fallback = v; return nil }},
	{"OCR_ENGINE", func(c *Config, v string) error { c.OCR.Engine = v; return nil }},
	{"TESSERACT", func(c *Config, v string) error { c.OCR.Binary = v; return nil }},
	{"OCR_LANGUAGE", func(c *Config, v string) error { c.OCR.Language = v; return nil }},
	{"AGGRESSIVE_CORRECTION", func(c *Config, v string) error { return setBool(&c.Correction.Aggressive, v) }},
	{"CORRECTIONS_FILE", func(c *Config, v string) error { c.Correction.CustomFile = v; return nil }},
	{"TABLES", func(c *Config, v string) error { return setBool(&c.Tables.Enabled, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_FILE", func(c *Config, v string) error { c.Log.File = v; return nil }},
}

// ApplyEnv overrides settings from PDFOUTLINE_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, ev := range envVars {
		v, ok := lookup(EnvPrefix + ev.key)
		if !ok {
			continue
		}
		if err := ev.set(c, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, ev.key, err)
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks every setting
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Detector.Backend == "remote" && c.Detector.RemoteURL == "" {
		return errors.New("invalid config: detector.remote_url is required for the remote backend")
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
