package detector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ModelConfig holds the detector's post-processing parameters. It is read
// once at initialization and never modified during inference.
type ModelConfig struct {
	// ConfidenceThreshold drops candidates scoring below it
	// Default: 0.5
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`

	// NMSThreshold suppresses boxes whose IoU with a stronger box exceeds it
	// Default: 0.45
	NMSThreshold float64 `json:"nms_threshold" yaml:"nms_threshold"`

	// ClassNames maps class ids to labels. Empty means the DocLayNet table.
	ClassNames []string `json:"class_names" yaml:"class_names"`

	// InputSize is the square model input used when the model reports
	// dynamic dimensions
	// Default: 1024
	InputSize int `json:"input_size" yaml:"input_size"`
}

// DefaultModelConfig returns the standard post-processing parameters
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		ConfidenceThreshold: 0.5,
		NMSThreshold:        0.45,
		InputSize:           1024,
	}
}

// configFileNames are tried in order next to the model file
var configFileNames = []string{"config.json", "config.yaml", "config.yml"}

// LoadModelConfig reads the detector configuration stored in dir, layering
// any values it sets over base. A directory without a configuration file
// yields base unchanged. The returned path is empty in that case.
func LoadModelConfig(dir string, base ModelConfig) (ModelConfig, string, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return base, "", fmt.Errorf("read model config: %w", err)
		}

		cfg, err := parseModelConfig(data, filepath.Ext(name), base)
		if err != nil {
			return base, "", fmt.Errorf("parse model config %s: %w", path, err)
		}
		return cfg, path, nil
	}
	return base, "", nil
}

func parseModelConfig(data []byte, ext string, base ModelConfig) (ModelConfig, error) {
	// Start from base so absent keys keep their values
	cfg := base
	cfg.ClassNames = append([]string(nil), base.ClassNames...)

	var err error
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return base, err
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks that thresholds are within [0, 1] and the input size is
// positive
func (c ModelConfig) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %v out of range [0,1]", c.ConfidenceThreshold)
	}
	if c.NMSThreshold < 0 || c.NMSThreshold > 1 {
		return fmt.Errorf("nms_threshold %v out of range [0,1]", c.NMSThreshold)
	}
	if c.InputSize <= 0 {
		return fmt.Errorf("input_size must be positive, got %d", c.InputSize)
	}
	return nil
}
