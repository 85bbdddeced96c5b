package detector

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
)

var errNotInitialized = errors.New("detector not initialized")

// Options configures a Detector
type Options struct {
	// Backend selects how a model session is obtained
	// Default: BackendONNX
	Backend Backend

	// ModelDirs is the model search path, tried in order
	// Default: DefaultModelDirs
	ModelDirs []string

	// RemoteURL is the inference endpoint for BackendRemote
	RemoteURL string

	// ONNXLibrary is the path to the ONNX Runtime shared library.
	// Empty uses the platform default.
	ONNXLibrary string

	// Fallback selects the layout returned without a model
	// Default: FallbackHeuristic
	Fallback FallbackMode

	// Config holds base post-processing parameters. A model configuration
	// file found next to the model overrides them. A Config with a zero
	// InputSize is replaced by DefaultModelConfig.
	Config ModelConfig

	// HTTPClient is used by the remote backend
	HTTPClient *http.Client

	// Logger receives initialization and degraded-mode messages
	Logger logrus.FieldLogger
}

// DefaultOptions returns options for the ONNX backend with the default
// search path
func DefaultOptions() Options {
	return Options{
		Backend:   BackendONNX,
		ModelDirs: append([]string(nil), DefaultModelDirs...),
		Fallback:  FallbackHeuristic,
		Config:    DefaultModelConfig(),
	}
}

// Outcome is the result of one detection call. When Fallback is set the
// detections come from the fallback layout and Cause explains why.
type Outcome struct {
	Detections []model.Detection
	Fallback   bool
	Cause      error
}

// Detector turns page images into labeled layout regions.
//
// Initialization never fails: without a usable model the detector stays
// initialized in fallback mode. Inference calls are serialized, so one
// Detector may be shared by several goroutines, but they will not run
// inference in parallel.
type Detector struct {
	opts   Options
	logger logrus.FieldLogger

	mu          sync.Mutex
	session     Session
	config      ModelConfig
	modelPath   string
	initialized bool
	cause       error
}

// New creates an uninitialized detector. Call Initialize before Detect.
func New(opts Options) *Detector {
	if opts.Backend == "" {
		opts.Backend = BackendONNX
	}
	if len(opts.ModelDirs) == 0 {
		opts.ModelDirs = append([]string(nil), DefaultModelDirs...)
	}
	if opts.Config.InputSize == 0 {
		opts.Config = DefaultModelConfig()
	}
	return &Detector{
		opts:   opts,
		logger: logging.OrDiscard(opts.Logger),
		config: opts.Config,
	}
}

// NewWithSession creates an initialized detector around an existing session
func NewWithSession(session Session, config ModelConfig, opts Options) *Detector {
	d := New(opts)
	d.session = session
	d.config = config
	d.initialized = true
	return d
}

// Initialize locates and loads a model. dirs overrides the configured search
// path. It returns whether a model is loaded; when it is not, the detector
// is still initialized and Detect returns the fallback layout.
func (d *Detector) Initialize(dirs ...string) bool {
	if len(dirs) == 0 {
		dirs = d.opts.ModelDirs
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != nil {
		if err := d.session.Close(); err != nil {
			d.logger.WithError(err).Warn("closing previous layout session")
		}
	}
	d.session, d.cause, d.modelPath = nil, nil, ""
	d.config = d.opts.Config
	d.initialized = true

	switch d.opts.Backend {
	case BackendNone:
		d.cause = errors.New("layout model disabled by configuration")
	case BackendRemote:
		d.initRemote(dirs)
	default:
		d.initONNX(dirs)
	}

	if d.session == nil {
		d.logger.WithError(d.cause).Warn("layout model unavailable, using fallback detection")
		return false
	}

	w, h := d.session.InputSize()
	d.logger.WithFields(logrus.Fields{
		"backend":    d.opts.Backend,
		"model":      d.modelPath,
		"input":      fmt.Sprintf("%dx%d", w, h),
		"confidence": d.config.ConfidenceThreshold,
		"nms":        d.config.NMSThreshold,
	}).Info("layout model loaded")
	return true
}

func (d *Detector) initONNX(dirs []string) {
	path, dir, err := FindModel(dirs)
	if err != nil {
		d.cause = err
		return
	}
	d.loadConfig(dir)

	session, err := OpenONNX(path, d.opts.ONNXLibrary, d.config.InputSize)
	if err != nil {
		d.cause = fmt.Errorf("load %s: %w", path, err)
		return
	}
	d.session = session
	d.modelPath = path
}

func (d *Detector) initRemote(dirs []string) {
	if d.opts.RemoteURL == "" {
		d.cause = errors.New("remote backend selected without a URL")
		return
	}
	for _, dir := range dirs {
		if d.loadConfig(dir) {
			break
		}
	}

	session := NewRemoteSession(d.opts.RemoteURL, d.config.InputSize, d.opts.HTTPClient)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := session.CheckHealth(ctx); err != nil {
		d.cause = fmt.Errorf("remote inference service: %w", err)
		return
	}
	d.session = session
	d.modelPath = d.opts.RemoteURL
}

// loadConfig layers the configuration file in dir over the base options and
// reports whether one was found
func (d *Detector) loadConfig(dir string) bool {
	cfg, path, err := LoadModelConfig(dir, d.opts.Config)
	if err != nil {
		d.logger.WithError(err).Warn("ignoring model config")
		return false
	}
	if path == "" {
		return false
	}
	d.config = cfg
	d.logger.WithField("config", path).Debug("model config loaded")
	return true
}

// FindModel returns the first model file found in dirs and its directory
func FindModel(dirs []string) (path, dir string, err error) {
	for _, dir := range dirs {
		for _, name := range ModelFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, dir, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w in %v (looked for %v)", ErrNoModel, dirs, ModelFileNames)
}

// Initialized reports whether Initialize has run
func (d *Detector) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// HasModel reports whether a model session is loaded
func (d *Detector) HasModel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session != nil
}

// Cause returns why no model is loaded, or nil
func (d *Detector) Cause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cause
}

// Config returns the active post-processing parameters
func (d *Detector) Config() ModelConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config
}

// ModelPath returns the loaded model file or endpoint
func (d *Detector) ModelPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modelPath
}

// Detect returns the layout regions of img. It never fails: a missing model
// or any preprocessing, inference or decoding error yields the fallback
// layout with the cause recorded in the outcome.
func (d *Detector) Detect(ctx context.Context, img image.Image) (out Outcome) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return d.fallback(width, height, errNotInitialized)
	}
	if d.session == nil {
		return d.fallback(width, height, d.cause)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("layout inference panic: %v", r)
			d.logger.WithError(err).Error("layout detection failed")
			out = d.fallback(width, height, err)
		}
	}()

	detections, err := d.infer(ctx, img, width, height)
	if err != nil {
		d.logger.WithError(err).Warn("layout detection failed, using fallback")
		return d.fallback(width, height, err)
	}
	return Outcome{Detections: detections}
}

// DetectLayout is Detect without a context or outcome details
func (d *Detector) DetectLayout(img image.Image) []model.Detection {
	return d.Detect(context.Background(), img).Detections
}

func (d *Detector) infer(ctx context.Context, img image.Image, width, height int) ([]model.Detection, error) {
	inW, inH := d.session.InputSize()
	if inW <= 0 || inH <= 0 {
		return nil, fmt.Errorf("invalid model input size %dx%d", inW, inH)
	}

	blob := Preprocess(img, inW, inH)
	tensor, err := d.session.Run(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	detections, err := Decode(tensor, DecodeParams{
		ConfidenceThreshold: d.config.ConfidenceThreshold,
		ClassNames:          d.config.ClassNames,
		ScaleX:              float64(width) / float64(inW),
		ScaleY:              float64(height) / float64(inH),
	})
	if err != nil {
		return nil, err
	}

	kept := NMS(detections, d.config.NMSThreshold)
	d.logger.WithFields(logrus.Fields{
		"candidates": len(detections),
		"kept":       len(kept),
	}).Debug("layout detection done")
	return kept, nil
}

func (d *Detector) fallback(width, height int, cause error) Outcome {
	return Outcome{
		Detections: FallbackDetections(width, height, d.opts.Fallback),
		Fallback:   true,
		Cause:      cause,
	}
}

// Close releases the model session
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	return err
}
