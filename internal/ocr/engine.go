// Package ocr extracts text from preprocessed form images.
//
// Recognition runs through an ordered list of engines, each of which reports
// its own availability before being invoked, so a missing runtime dependency
// degrades to the next engine instead of failing the document.
package ocr

import (
	"context"
	"image"
	"math"
	"strings"
)

// Result is the raw OCR output for one image.
type Result struct {
	Text            string
	Confidence      float64 // 0.0 - 1.0, mean of line confidences
	Engine          string
	LineConfidences []float64 // aligned 1:1 with the non-empty lines of Text
}

// Engine is a single OCR provider. Available must be cheap after the first
// call; engines probe lazily and cache the outcome.
type Engine interface {
	Name() string
	Available(ctx context.Context) bool
	Recognize(ctx context.Context, img image.Image, lang string) (Result, error)
}

// word is one recognized token with its normalized confidence.
type word struct {
	text string
	conf float64
	top  int
}

// lineCluster groups words that sit on the same text row.
type lineCluster struct {
	words []word
}

func (l *lineCluster) text() string {
	parts := make([]string, 0, len(l.words))
	for _, w := range l.words {
		parts = append(parts, w.text)
	}
	return normalizeLine(strings.Join(parts, " "))
}

func (l *lineCluster) confidence() float64 {
	if len(l.words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range l.words {
		sum += w.conf
	}
	return round3(sum / float64(len(l.words)))
}

// assemble turns ordered line clusters into a Result, dropping lines whose
// text normalized away to nothing so confidences stay aligned with lines.
func assemble(engine string, clusters []*lineCluster) Result {
	var lines []string
	var confs []float64
	for _, c := range clusters {
		text := c.text()
		if text == "" {
			continue
		}
		lines = append(lines, text)
		confs = append(confs, c.confidence())
	}

	var avg float64
	for _, c := range confs {
		avg += c
	}
	if len(confs) > 0 {
		avg = round3(avg / float64(len(confs)))
	}

	return Result{
		Text:            strings.Join(lines, "\n"),
		Confidence:      avg,
		Engine:          engine,
		LineConfidences: confs,
	}
}

// normalizeWordConf maps an engine word confidence (0-100, negative when the
// engine could not score the word) into [0,1].
func normalizeWordConf(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	c := raw / 100.0
	if c > 1 {
		c = 1
	}
	return c
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
