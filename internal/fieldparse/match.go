package fieldparse

import (
	"regexp"
	"strings"

	"github.com/dami-akins/formintake/internal/catalog"
)

// fuzzyThreshold is the minimum token-sort similarity for accepting a field
// label match.
const fuzzyThreshold = 0.70

var (
	rePunct      = regexp.MustCompile(`[^\w\s]`)
	reMultiSpace = regexp.MustCompile(`\s+`)
)

// matchFieldName resolves a raw OCR field label to a canonical field name.
// Match order: exact alias -> underscore form -> substring containment ->
// token-sort similarity -> word overlap against short canonical names.
func (p *Parser) matchFieldName(rawKey string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(rawKey))
	normalized = strings.TrimSpace(rePunct.ReplaceAllString(normalized, ""))
	normalized = reMultiSpace.ReplaceAllString(normalized, " ")

	if canonical, ok := p.cat.Resolve(normalized); ok {
		return canonical, true
	}
	if canonical, ok := p.cat.Resolve(strings.ReplaceAll(normalized, " ", "_")); ok {
		return canonical, true
	}

	// Substring: a known alias fully contained in the key. Short aliases are
	// skipped, they match far too eagerly.
	for _, alias := range p.cat.Aliases() {
		if len(alias) >= 4 && strings.Contains(normalized, alias) {
			canonical, _ := p.cat.Resolve(alias)
			return canonical, true
		}
	}

	if canonical, ok := p.fuzzyMatch(rawKey, normalized); ok {
		return canonical, true
	}

	if canonical, ok := p.wordOverlapMatch(normalized); ok {
		return canonical, true
	}

	p.logger.Debug("fieldparse.match.none", "key", rawKey)
	return "", false
}

func (p *Parser) fuzzyMatch(rawKey, normalized string) (string, bool) {
	bestScore := 0.0
	bestAlias := ""
	for _, alias := range p.cat.Aliases() {
		if score := catalog.TokenSortRatio(normalized, alias); score > bestScore {
			bestScore = score
			bestAlias = alias
		}
	}
	if bestScore < fuzzyThreshold {
		return "", false
	}
	canonical, _ := p.cat.Resolve(bestAlias)
	p.logger.Debug("fieldparse.match.fuzzy",
		"key", rawKey, "alias", bestAlias, "score", bestScore)
	return canonical, true
}

// wordOverlapMatch is the last resort: shared words between the key and a
// canonical name, considered only for canonical names of at most 3 words.
func (p *Parser) wordOverlapMatch(normalized string) (string, bool) {
	keyWords := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		keyWords[w] = struct{}{}
	}

	best := ""
	bestOverlap := 0
	for _, canonical := range p.cat.Names() {
		canonWords := strings.Fields(strings.ToLower(strings.ReplaceAll(canonical, "_", " ")))
		if len(canonWords) > 3 {
			continue
		}
		overlap := 0
		for _, w := range canonWords {
			if _, ok := keyWords[w]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = canonical
		}
	}
	if bestOverlap >= 1 {
		return best, true
	}
	return "", false
}
