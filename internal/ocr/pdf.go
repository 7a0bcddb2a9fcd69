package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dami-akins/formintake/internal/common"
)

// Rasterizer renders the first page of a PDF to PNG bytes via pdftoppm.
// PDF support is an optional capability: a missing binary surfaces as
// common.ErrUnavailable for that document only.
type Rasterizer struct {
	runner Runner
	binary string
	dpi    int
}

func NewRasterizer(cfg common.OCRConfig, runner Runner) *Rasterizer {
	if runner == nil {
		runner = ExecRunner{}
	}
	binary := cfg.Pdftoppm
	if binary == "" {
		binary = "pdftoppm"
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 300
	}
	return &Rasterizer{runner: runner, binary: binary, dpi: dpi}
}

// FirstPage rasterizes page 1 of pdfData and returns the PNG bytes.
func (r *Rasterizer) FirstPage(ctx context.Context, pdfData []byte) ([]byte, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, fmt.Errorf("%w: %s not installed, cannot process PDFs", common.ErrUnavailable, r.binary)
	}

	tmpDir, err := os.MkdirTemp("", "fi-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	in := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(in, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.binary,
		"-f", "1", "-l", "1", "-r", strconv.Itoa(r.dpi), "-png", in, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	return data, nil
}
