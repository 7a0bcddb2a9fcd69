package extract

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dami-akins/formintake/constants"
)

// File is one uploaded document: raw bytes plus the original filename, which
// is used only for format sniffing and labeling.
type File struct {
	Filename string
	Data     []byte
}

// ProcessAll runs each file through the single-document pipeline with bounded
// parallelism, then merges the results into one DocumentResult. Documents are
// independent computations, so a degraded sibling never affects the others.
func (s *Service) ProcessAll(ctx context.Context, files []File) *DocumentResult {
	if len(files) == 0 {
		return s.degraded("no_files", "No files provided")
	}

	results := make([]*DocumentResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	limit := s.maxConcurrent
	if limit <= 0 || limit > len(files) {
		limit = len(files)
	}
	g.SetLimit(limit)
	for i, f := range files {
		g.Go(func() error {
			results[i] = s.ProcessDocument(ctx, f.Data, f.Filename)
			return nil
		})
	}
	_ = g.Wait() // workers degrade instead of erroring

	merged := s.merge(results)
	s.logger.Info("extract.batch.done",
		"files", len(files),
		"confidence", merged.Confidence,
		"matched", merged.Stats.MatchedFields)
	return merged
}

// merge arbitrates per-document results into one field map. For each field,
// an extracted value with strictly higher confidence than the best extracted
// value so far wins; empty only fills fields no document extracted. Failed
// values never cross into the merge. Counts are recomputed from the merged
// status map rather than summed, so a field found in two documents is not
// counted twice.
func (s *Service) merge(results []*DocumentResult) *DocumentResult {
	cat := s.parser.Catalog()
	fields := make(map[string]any, cat.Size())
	confs := make(map[string]float64, cat.Size())
	statuses := make(map[string]constants.FieldStatus, cat.Size())
	for _, name := range cat.Names() {
		fields[name] = nil
		confs[name] = 0
		statuses[name] = constants.StatusMissing
	}

	for _, res := range results {
		for _, name := range cat.Names() {
			conf := res.FieldConfidences[name]
			switch res.FieldStatuses[name] {
			case constants.StatusExtracted:
				if statuses[name] != constants.StatusExtracted || conf > confs[name] {
					fields[name] = res.Fields[name]
					confs[name] = conf
					statuses[name] = constants.StatusExtracted
				}
			case constants.StatusEmpty:
				if statuses[name] == constants.StatusMissing {
					confs[name] = conf
					statuses[name] = constants.StatusEmpty
				}
			}
		}
	}

	matched, empty, missing := 0, 0, 0
	var confSum float64
	for _, name := range cat.Names() {
		confSum += confs[name]
		switch statuses[name] {
		case constants.StatusExtracted:
			matched++
		case constants.StatusEmpty:
			empty++
		case constants.StatusMissing:
			missing++
		}
	}

	totalLines := 0
	names := make([]string, 0, len(results))
	texts := make([]string, 0, len(results))
	unmatched := []string{}
	for _, res := range results {
		totalLines += res.Stats.TotalLines
		names = append(names, res.Filename)
		texts = append(texts, "--- "+res.Filename+" ---\n"+res.ExtractedText)
		unmatched = append(unmatched, res.UnmatchedLines...)
	}

	return &DocumentResult{
		ID:               uuid.New(),
		Filename:         strings.Join(names, ", "),
		ExtractedText:    strings.Join(texts, "\n\n"),
		OCREngine:        results[0].OCREngine,
		Fields:           fields,
		FieldConfidences: confs,
		FieldStatuses:    statuses,
		Confidence:       round3(confSum / float64(cat.Size())),
		Stats: Stats{
			TotalLines:    totalLines,
			MatchedFields: matched,
			EmptyFields:   empty,
			MissingFields: missing,
			FailedFields:  0, // failed never survives the merge
			TotalFiles:    len(results),
		},
		UnmatchedLines: unmatched,
	}
}
