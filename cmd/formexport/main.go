package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dami-akins/formintake/internal/common"
	"github.com/dami-akins/formintake/internal/export"
	"github.com/dami-akins/formintake/internal/extract"
)

// formexport runs extraction over form scans and writes an XLSX review
// workbook instead of JSON: one field row per document, plus the unmatched
// lines, for a human to check before the record feeds anything downstream.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		logger.Error("usage", "cmd", "formexport <out.xlsx> <file> [file ...]")
		os.Exit(2)
	}
	outPath := os.Args[1]
	paths := os.Args[2:]
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

	results := make([]*extract.DocumentResult, 0, len(files))
	for _, f := range files {
		results = append(results, svc.ProcessDocument(ctx, f.Data, f.Filename))
	}

	exporter := export.NewService(nil, logger)
	book, err := exporter.ReviewWorkbook(results)
	if err != nil {
		logger.Error("build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, book, 0o644); err != nil {
		logger.Error("write workbook", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("export OK", "path", outPath, "documents", len(results))
}
