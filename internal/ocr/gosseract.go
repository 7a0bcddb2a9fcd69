package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/dami-akins/formintake/constants"
)

// clusterThreshold is how far (px) a word's top coordinate may sit from its
// cluster anchor and still belong to the same text row.
const clusterThreshold = 20

// Gosseract recognizes text through the in-process Tesseract bindings. It
// only reports word detections with bounding boxes, so lines are rebuilt by
// clustering word tops. Secondary engine: heavier startup, but keeps working
// when no tesseract binary is on PATH.
type Gosseract struct {
	logger *slog.Logger

	availOnce sync.Once
	available bool
}

func NewGosseract(logger *slog.Logger) *Gosseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gosseract{logger: logger}
}

func (g *Gosseract) Name() string { return constants.EngineGosseract }

// Available probes the bindings once with a throwaway recognition. A broken
// libtesseract / missing traineddata shows up here as a typed unavailable
// state instead of a failure mid-pipeline.
func (g *Gosseract) Available(ctx context.Context) bool {
	g.availOnce.Do(func() {
		client := gosseract.NewClient()
		defer client.Close()
		err := client.SetImageFromBytes(probePNG())
		if err == nil {
			_, err = client.Text()
		}
		g.available = err == nil
		if err != nil {
			g.logger.Debug("ocr.gosseract.unavailable", "error", err)
		}
	})
	return g.available
}

func (g *Gosseract) Recognize(ctx context.Context, img image.Image, lang string) (Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if langs := splitLangs(lang); len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("bounding boxes: %w", err)
	}

	words := make([]word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, word{
			text: text,
			conf: normalizeWordConf(b.Confidence),
			top:  b.Box.Min.Y,
		})
	}

	res := assemble(g.Name(), clusterByTop(words))
	g.logger.Info("ocr.gosseract.done",
		"lines", len(res.LineConfidences), "confidence", res.Confidence)
	return res, nil
}

// clusterByTop rebuilds text rows from detection-only word output: sort all
// words top-to-bottom, then start a new row whenever a word's top moves more
// than clusterThreshold away from the current row's anchor (the top of its
// first word).
func clusterByTop(words []word) []*lineCluster {
	sorted := append([]word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].top < sorted[j].top
	})

	var clusters []*lineCluster
	var current *lineCluster
	anchor := 0
	for _, w := range sorted {
		if current == nil || abs(w.top-anchor) > clusterThreshold {
			current = &lineCluster{}
			clusters = append(clusters, current)
			anchor = w.top
		}
		current.words = append(current.words, w)
	}
	return clusters
}

func splitLangs(lang string) []string {
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var (
	probeOnce sync.Once
	probe     []byte
)

// probePNG is a tiny blank image used for the availability check.
func probePNG() []byte {
	probeOnce.Do(func() {
		img := image.NewGray(image.Rect(0, 0, 8, 8))
		for i := range img.Pix {
			img.Pix[i] = 255
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err == nil {
			probe = buf.Bytes()
		}
	})
	return probe
}
