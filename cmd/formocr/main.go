package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dami-akins/formintake/internal/catalog"
	"github.com/dami-akins/formintake/internal/common"
	"github.com/dami-akins/formintake/internal/extract"
)

// formocr runs the extraction pipeline over one or more form scans and
// prints the result record as JSON on stdout. Logs go to stderr.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "formocr <file> [file ...]")
		os.Exit(2)
	}
	paths := os.Args[1:]
	if err := common.ValidateUploadCount(len(paths)); err != nil {
		logger.Error("invalid request", "error", err)
		os.Exit(2)
	}

	files := make([]extract.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", "path", path, "error", err)
			os.Exit(1)
		}
		name := filepath.Base(path)
		if err := common.ValidateUpload(name, data); err != nil {
			logger.Error("invalid file", "path", path, "error", err)
			os.Exit(2)
		}
		files = append(files, extract.File{Filename: name, Data: data})
	}

	cfg := common.LoadConfig()
	svc := extract.NewService(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	var result *extract.DocumentResult
	if len(files) == 1 {
		result = svc.ProcessDocument(ctx, files[0].Data, files[0].Filename)
	} else {
		result = svc.ProcessAll(ctx, files)
	}

	validator, err := extract.NewRecordValidator(catalog.Default())
	if err != nil {
		logger.Error("build record validator", "error", err)
		os.Exit(1)
	}
	if verr := validator.ValidateRecord(result.FlatRecord(false)); verr != nil {
		logger.Warn("record needs review", "error", verr)
	}

	logger.Info("extraction OK",
		"files", len(files),
		"engine", result.OCREngine,
		"confidence", result.Confidence,
		"matched", result.Stats.MatchedFields,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
