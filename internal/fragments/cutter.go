package fragments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Tool runs the actual media extraction
type Tool interface {
	Cut(ctx context.Context, opts ffmpeg.CutOptions) error
}

// Cutter turns fragments into files
type Cutter struct {
	tool   Tool
	fs     afero.Fs
	encode ffmpeg.EncodeOptions
	logger logrus.FieldLogger
}

// CutterOption configures a Cutter
type CutterOption func(*Cutter)

// WithFs sets the filesystem used for source checks and output directories
func WithFs(fs afero.Fs) CutterOption {
	return func(c *Cutter) { c.fs = fs }
}

// WithEncodeOptions overrides the encoder settings
func WithEncodeOptions(enc ffmpeg.EncodeOptions) CutterOption {
	return func(c *Cutter) { c.encode = enc }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) CutterOption {
	return func(c *Cutter) { c.logger = logger }
}

// NewCutter creates a cutter backed by tool
func NewCutter(tool Tool, opts ...CutterOption) *Cutter {
	c := &Cutter{
		tool:   tool,
		fs:     afero.NewOsFs(),
		encode: ffmpeg.DefaultEncodeOptions(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cut extracts the fragment's interval from source. A fragment that was
// already generated is rejected without running the tool.
func (c *Cutter) Cut(ctx context.Context, f Fragment, source string) (Generated, error) {
	if f.state == nil {
		return Generated{}, fmt.Errorf("%w: fragment was not created with NewFragment", ErrValidation)
	}

	exists, err := afero.Exists(c.fs, source)
	if err != nil {
		return Generated{}, fmt.Errorf("checking source: %w", err)
	}
	if !exists {
		return Generated{}, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if f.IsGenerated() {
		return Generated{}, fmt.Errorf("%w: %s", ErrAlreadyGenerated, f.outputPath)
	}
	if !(f.mark.Start < f.mark.End) || math.IsInf(f.mark.End, 0) || f.mark.Start < 0 {
		return Generated{}, fmt.Errorf("%w: [%.3f, %.3f)", ErrInvalidRange, f.mark.Start, f.mark.End)
	}

	if err := c.fs.MkdirAll(filepath.Dir(f.outputPath), 0755); err != nil {
		return Generated{}, fmt.Errorf("creating fragment directory: %w", err)
	}

	log := c.logger.WithFields(logrus.Fields{
		"question_id": f.mark.QuestionID,
		"start":       f.mark.Start,
		"duration":    f.Duration(),
		"output":      f.outputPath,
	})
	log.Debug("Cutting fragment")

	err = c.tool.Cut(ctx, ffmpeg.CutOptions{
		Input:    source,
		Output:   f.outputPath,
		Start:    f.mark.Start,
		Duration: f.Duration(),
		Encode:   c.encode,
	})
	if err != nil {
		cutErr := &CutError{Path: f.outputPath, Err: err}
		var procErr *ffmpeg.ProcessingError
		if errors.As(err, &procErr) {
			cutErr.Stderr = procErr.Stderr
			cutErr.Err = procErr.Err
		}
		log.WithError(err).Warn("Fragment cut failed")
		return Generated{}, cutErr
	}

	// A concurrent cut of the same fragment may have won the race.
	if !f.state.generated.CompareAndSwap(false, true) {
		return Generated{}, fmt.Errorf("%w: %s", ErrAlreadyGenerated, f.outputPath)
	}

	return Generated{
		Mark:       f.mark,
		OutputPath: f.outputPath,
		Duration:   f.Duration(),
	}, nil
}
