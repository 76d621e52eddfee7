// Package tesseract is an ocr.Engine backed by the tesseract C library.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"drugmatch-service/internal/ocr"
)

type Engine struct {
	langs []string
}

func New(langs ...string) *Engine {
	return &Engine{langs: langs}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize returns one Line per text line tesseract finds. A fresh client is
// used per call; gosseract clients are not safe for concurrent use.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.langs) > 0 {
		if err := client.SetLanguage(e.langs...); err != nil {
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, fmt.Errorf("set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	lines := make([]ocr.Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, ocr.Line{Text: text, Confidence: b.Confidence / 100})
	}
	return lines, nil
}
