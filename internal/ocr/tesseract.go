package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/dami-akins/formintake/constants"
	"github.com/dami-akins/formintake/internal/common"
)

// TesseractCLI recognizes text with the tesseract binary in TSV mode, which
// reports per-word confidences and native line numbering. It is the primary
// engine: no in-process model, fast startup.
type TesseractCLI struct {
	runner      Runner
	binary      string
	tessdataDir string
	psm         int
	logger      *slog.Logger

	availOnce sync.Once
	available bool
}

func NewTesseractCLI(cfg common.OCRConfig, runner Runner, logger *slog.Logger) *TesseractCLI {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	binary := cfg.Tesseract
	if binary == "" {
		binary = "tesseract"
	}
	return &TesseractCLI{
		runner:      runner,
		binary:      binary,
		tessdataDir: cfg.TessdataDir,
		psm:         cfg.PSM,
		logger:      logger,
	}
}

func (t *TesseractCLI) Name() string { return constants.EngineTesseract }

func (t *TesseractCLI) Available(ctx context.Context) bool {
	t.availOnce.Do(func() {
		_, err := exec.LookPath(t.binary)
		t.available = err == nil
		if err != nil {
			t.logger.Debug("ocr.tesseract.unavailable", "binary", t.binary, "error", err)
		}
	})
	return t.available
}

func (t *TesseractCLI) Recognize(ctx context.Context, img image.Image, lang string) (Result, error) {
	path, cleanup, err := writeTempPNG(img)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	args := []string{path, "stdout", "-l", lang}
	if t.psm > 0 {
		args = append(args, "--psm", strconv.Itoa(t.psm))
	}
	if t.tessdataDir != "" {
		args = append(args, "--tessdata-dir", t.tessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, t.binary, args...)
	if err != nil {
		return Result{}, fmt.Errorf("tesseract tsv: %w (%s)", err, truncate(string(errb), 512))
	}

	clusters := parseTSV(string(out))
	res := assemble(t.Name(), clusters)
	t.logger.Info("ocr.tesseract.done",
		"lines", len(res.LineConfidences), "confidence", res.Confidence)
	return res, nil
}

// parseTSV groups tesseract TSV word rows into lines keyed by the native
// (block, paragraph, line) numbering, in reading order.
//
// Columns: level page block par line word left top width height conf text.
func parseTSV(tsv string) []*lineCluster {
	var clusters []*lineCluster
	index := make(map[string]*lineCluster)

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 || row == "" { // skip header
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 12 {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil {
			continue
		}

		key := cols[2] + "/" + cols[3] + "/" + cols[4]
		cluster, ok := index[key]
		if !ok {
			cluster = &lineCluster{}
			index[key] = cluster
			clusters = append(clusters, cluster)
		}
		cluster.words = append(cluster.words, word{
			text: text,
			conf: normalizeWordConf(conf),
		})
	}
	return clusters
}

func writeTempPNG(img image.Image) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "fi-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("temp image: %w", err)
	}
	cleanup = func() { _ = os.Remove(f.Name()) }

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close image: %w", err)
	}
	return f.Name(), cleanup, nil
}
