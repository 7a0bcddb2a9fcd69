// Package extract orchestrates the document pipeline: rasterize (PDF) ->
// preprocess -> OCR -> parse, for one document or a merged batch.
//
// The orchestrator never fails a caller over one bad document: decode and
// OCR failures degrade to an all-fields-missing result carrying the reason
// in place of the extracted text.
package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dami-akins/formintake/constants"
	"github.com/dami-akins/formintake/internal/common"
	"github.com/dami-akins/formintake/internal/fieldparse"
	"github.com/dami-akins/formintake/internal/imaging"
	"github.com/dami-akins/formintake/internal/ocr"
)

// Overall document confidence blends text-recognition quality with field
// coverage; neither alone says the document was read well.
const (
	ocrWeight      = 0.4
	coverageWeight = 0.6
)

// Service runs documents through the extraction pipeline. Safe for concurrent
// use: all state is read-only after construction.
type Service struct {
	parser        *fieldparse.Parser
	extractor     *ocr.Extractor
	raster        *ocr.Rasterizer
	prep          imaging.Options
	lang          string
	engine        string
	maxConcurrent int
	logger        *slog.Logger
}

// NewService wires the pipeline from config: exec-backed OCR runner, default
// field catalog, automatic engine selection.
func NewService(cfg *common.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	runner := ocr.ExecRunner{}
	return &Service{
		parser:    fieldparse.NewParser(nil, logger),
		extractor: ocr.NewExtractor(cfg.OCR, runner, logger),
		raster:    ocr.NewRasterizer(cfg.OCR, runner),
		prep: imaging.Options{
			EnhanceContrast: cfg.Preprocess.EnhanceContrast,
			Binarize:        cfg.Preprocess.Binarize,
			Deskew:          cfg.Preprocess.Deskew,
		},
		lang:          cfg.OCR.Lang,
		engine:        constants.EngineAuto,
		maxConcurrent: cfg.Pipeline.MaxConcurrentFiles,
		logger:        logger,
	}
}

// NewServiceWith assembles a service from explicit parts, for callers that
// swap in their own engines or parser.
func NewServiceWith(parser *fieldparse.Parser, extractor *ocr.Extractor, raster *ocr.Rasterizer,
	prep imaging.Options, lang, engine string, maxConcurrent int, logger *slog.Logger) *Service {
	if parser == nil {
		parser = fieldparse.NewParser(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if engine == "" {
		engine = constants.EngineAuto
	}
	return &Service{
		parser:        parser,
		extractor:     extractor,
		raster:        raster,
		prep:          prep,
		lang:          lang,
		engine:        engine,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// ProcessDocument runs one document end to end. It never returns an error:
// any failure before parsing produces a degraded all-missing result with the
// reason in ExtractedText. PDFs (by extension) are rasterized to page 1
// first; a missing pdftoppm degrades only this document.
func (s *Service) ProcessDocument(ctx context.Context, data []byte, filename string) *DocumentResult {
	log := s.logger.With("filename", filename)

	if constants.MapExtToFormat(filepath.Ext(filename)) == constants.PDF {
		page, err := s.raster.FirstPage(ctx, data)
		if err != nil {
			log.Error("extract.pdf.failed", "error", err)
			return s.degraded(filename, "PDF processing failed: "+err.Error())
		}
		data = page
	}

	img, err := imaging.Preprocess(data, s.prep, s.logger)
	if err != nil {
		log.Error("extract.preprocess.failed", "error", err)
		return s.degraded(filename, "Image preprocessing failed: "+err.Error())
	}

	ocrRes, err := s.extractor.Extract(ctx, img, s.lang, s.engine)
	if err != nil {
		log.Error("extract.ocr.failed", "error", err)
		return s.degraded(filename, "Text extraction failed: "+err.Error())
	}
	if strings.TrimSpace(ocrRes.Text) == "" {
		log.Warn("extract.no_text", "engine", ocrRes.Engine)
		return s.degraded(filename, "No text detected in image")
	}

	parsed := s.parser.Parse(ocrRes.Text, ocrRes.LineConfidences)
	res := s.buildResult(filename, ocrRes, parsed)
	log.Info("extract.document.done",
		"engine", res.OCREngine,
		"confidence", res.Confidence,
		"matched", res.Stats.MatchedFields,
		"unmatched_lines", len(res.UnmatchedLines))
	return res
}

func (s *Service) buildResult(filename string, ocrRes ocr.Result, parsed *fieldparse.ParseResult) *DocumentResult {
	cat := s.parser.Catalog()
	fields := make(map[string]any, cat.Size())
	confs := make(map[string]float64, cat.Size())
	statuses := make(map[string]constants.FieldStatus, cat.Size())

	failed, missing := 0, 0
	for _, name := range cat.Names() {
		fr := parsed.Fields[name]
		fields[name] = fr.Value
		confs[name] = round3(fr.Confidence)
		statuses[name] = fr.Status
		switch fr.Status {
		case constants.StatusFailed:
			failed++
		case constants.StatusMissing:
			missing++
		}
	}

	coverage := float64(parsed.MatchedCount) / float64(cat.Size())
	unmatched := parsed.UnmatchedLines
	if unmatched == nil {
		unmatched = []string{}
	}

	return &DocumentResult{
		ID:               uuid.New(),
		Filename:         filename,
		ExtractedText:    ocrRes.Text,
		OCREngine:        ocrRes.Engine,
		Fields:           fields,
		FieldConfidences: confs,
		FieldStatuses:    statuses,
		Confidence:       round3(ocrWeight*ocrRes.Confidence + coverageWeight*coverage),
		Stats: Stats{
			TotalLines:    parsed.TotalLines,
			MatchedFields: parsed.MatchedCount,
			EmptyFields:   parsed.EmptyCount,
			MissingFields: missing,
			FailedFields:  failed,
		},
		UnmatchedLines: unmatched,
	}
}

// degraded builds the all-missing response for a document that never made it
// to parsing. reason replaces the extracted text so a reviewer sees why.
func (s *Service) degraded(filename, reason string) *DocumentResult {
	cat := s.parser.Catalog()
	fields := make(map[string]any, cat.Size())
	confs := make(map[string]float64, cat.Size())
	statuses := make(map[string]constants.FieldStatus, cat.Size())
	for _, name := range cat.Names() {
		fields[name] = nil
		confs[name] = 0
		statuses[name] = constants.StatusMissing
	}
	return &DocumentResult{
		ID:               uuid.New(),
		Filename:         filename,
		ExtractedText:    reason,
		OCREngine:        constants.EngineNone,
		Fields:           fields,
		FieldConfidences: confs,
		FieldStatuses:    statuses,
		Confidence:       0,
		Stats:            Stats{MissingFields: cat.Size()},
		UnmatchedLines:   []string{},
	}
}
