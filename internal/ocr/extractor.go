package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/dami-akins/formintake/constants"
	"github.com/dami-akins/formintake/internal/common"
)

// primaryConfidenceThreshold: primary engine output at or below this is
// considered genuinely poor and the secondary engine gets a try.
const primaryConfidenceThreshold = 0.3

// Extractor runs recognition over an ordered engine list with fallback.
type Extractor struct {
	engines []Engine
	logger  *slog.Logger
}

// NewExtractor wires the default engine order: tesseract CLI first (lighter,
// faster startup), gosseract second.
func NewExtractor(cfg common.OCRConfig, runner Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		engines: []Engine{
			NewTesseractCLI(cfg, runner, logger),
			NewGosseract(logger),
		},
		logger: logger,
	}
}

// NewExtractorWithEngines builds an extractor over an explicit engine list.
func NewExtractorWithEngines(logger *slog.Logger, engines ...Engine) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{engines: engines, logger: logger}
}

// Extract recognizes text in a preprocessed image.
//
// engine "auto" tries the primary engine and accepts its result when the
// confidence clears primaryConfidenceThreshold; otherwise the secondary
// engine runs and its result is accepted as-is. When every engine is
// unavailable or fails, the result is {engine: "none", confidence: 0} —
// total OCR unavailability is a degraded result, not an error.
//
// A specific engine name runs only that engine; an unknown name is an error.
func (e *Extractor) Extract(ctx context.Context, img image.Image, lang, engine string) (Result, error) {
	switch engine {
	case constants.EngineAuto, "":
		return e.extractAuto(ctx, img, lang), nil
	default:
		for _, eng := range e.engines {
			if eng.Name() == engine {
				res, ok := e.tryEngine(ctx, eng, img, lang)
				if !ok {
					return Result{Engine: engine}, nil
				}
				return res, nil
			}
		}
		return Result{}, fmt.Errorf("unknown OCR engine: %q", engine)
	}
}

func (e *Extractor) extractAuto(ctx context.Context, img image.Image, lang string) Result {
	for i, eng := range e.engines {
		res, ok := e.tryEngine(ctx, eng, img, lang)
		if !ok {
			continue
		}
		// The primary engine must clear the confidence bar; the last engine
		// in the chain is accepted however weak its output.
		if i == len(e.engines)-1 || res.Confidence > primaryConfidenceThreshold {
			return res
		}
		e.logger.Debug("ocr.fallback",
			"engine", eng.Name(), "confidence", res.Confidence)
	}

	e.logger.Warn("ocr.all_engines_failed")
	return Result{Engine: constants.EngineNone, LineConfidences: []float64{}}
}

// tryEngine runs one engine, folding unavailability and runtime errors into
// a single "no result" outcome.
func (e *Extractor) tryEngine(ctx context.Context, eng Engine, img image.Image, lang string) (Result, bool) {
	if !eng.Available(ctx) {
		e.logger.Debug("ocr.engine.skipped", "engine", eng.Name())
		return Result{}, false
	}
	res, err := eng.Recognize(ctx, img, lang)
	if err != nil {
		e.logger.Error("ocr.engine.failed", "engine", eng.Name(), "error", err)
		return Result{}, false
	}
	return res, true
}
