// Package ocr turns a photographed label into text lines for the matcher.
package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog"

	"drugmatch-service/internal/imageprep"
)

// Line is one recognized text line; Confidence is in [0,1].
type Line struct {
	Text       string
	Confidence float64
}

// Engine recognizes text lines in a single image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) ([]Line, error)
}

type Option func(*Reader)

// WithPreprocess replaces the image variants fed to the engine.
func WithPreprocess(fn func(image.Image) []image.Image) Option {
	return func(r *Reader) { r.prep = fn }
}

// Reader runs an engine over every preprocessed variant of an image and
// keeps the variant that produced the most confident lines.
type Reader struct {
	engine  Engine
	minConf float64
	prep    func(image.Image) []image.Image
	log     zerolog.Logger
}

func NewReader(engine Engine, minConf float64, logger zerolog.Logger, opts ...Option) *Reader {
	r := &Reader{
		engine:  engine,
		minConf: minConf,
		prep:    imageprep.Variants,
		log:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Engine() string { return r.engine.Name() }

// ReadLines returns the trimmed, non-empty lines at or above the minimum
// confidence. Ties between variants go to the earlier one.
func (r *Reader) ReadLines(ctx context.Context, img image.Image) ([]string, error) {
	best := []string{}
	for i, v := range r.prep(img) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := r.engine.Recognize(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("%s: variant %d: %w", r.engine.Name(), i, err)
		}
		kept := filterLines(lines, r.minConf)
		r.log.Debug().
			Str("engine", r.engine.Name()).
			Int("variant", i).
			Int("raw", len(lines)).
			Int("kept", len(kept)).
			Msg("ocr pass")
		if len(kept) > len(best) {
			best = kept
		}
	}
	return best, nil
}

func filterLines(lines []Line, minConf float64) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Confidence < minConf {
			continue
		}
		if t := strings.TrimSpace(l.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
