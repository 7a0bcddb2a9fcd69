package fieldparse

import "strings"

// resplit breaks apart lines that contain multiple key:value pairs.
//
// OCR often concatenates several fields onto one physical line:
//
//	"Adult Dependents: 2 Child Dependents: 1 Infant Dependents: 0"
//
// After re-splitting this becomes three separate lines, each inheriting the
// parent line's confidence.
func (p *Parser) resplit(lines []string, confs []float64) ([]string, []float64) {
	newLines := make([]string, 0, len(lines))
	newConfs := make([]float64, 0, len(lines))

	for i, line := range lines {
		conf := padLineConfidence
		if i < len(confs) {
			conf = confs[i]
		}
		segments := p.findFieldBoundaries(line)
		for _, seg := range segments {
			newLines = append(newLines, seg)
			newConfs = append(newConfs, conf)
		}
	}
	return newLines, newConfs
}

type aliasHit struct {
	pos int
	len int
}

// findFieldBoundaries detects multiple field:value pairs within a single line
// and splits them. Uses the known alias table to identify where new field
// labels start; overlapping aliases ("income" inside "estimated annual
// income") are resolved by keeping the longest match at each position.
func (p *Parser) findFieldBoundaries(line string) []string {
	lineLower := asciiLower(line)

	var hits []aliasHit
	for _, alias := range p.sortedAliases {
		aliasLen := len(alias)
		for start := 0; start <= len(lineLower)-aliasLen; {
			idx := strings.Index(lineLower[start:], alias)
			if idx < 0 {
				break
			}
			pos := start + idx

			// Word boundary: start of line or preceded by whitespace.
			if pos > 0 && lineLower[pos-1] != ' ' && lineLower[pos-1] != '\t' {
				start = pos + 1
				continue
			}
			// Followed (after optional spaces) by a colon.
			after := strings.TrimLeft(line[pos+aliasLen:], " \t")
			if strings.HasPrefix(after, ":") {
				hits = append(hits, aliasHit{pos: pos, len: aliasLen})
			}
			start = pos + 1
		}
	}
	if len(hits) == 0 {
		return []string{line}
	}

	// Position order, longest alias first on ties.
	sortHits(hits)

	// Drop hits starting inside an earlier kept hit's span, and duplicates at
	// the same position (the longer one was kept first).
	var kept []aliasHit
	for _, h := range hits {
		subsumed := false
		for _, k := range kept {
			if h.pos > k.pos && h.pos < k.pos+k.len {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1].pos == h.pos {
			continue
		}
		kept = append(kept, h)
	}
	if len(kept) <= 1 {
		return []string{line}
	}

	var segments []string
	if kept[0].pos > 0 {
		// Leading text before the first field: form titles, noise.
		if prefix := strings.TrimSpace(line[:kept[0].pos]); prefix != "" {
			segments = append(segments, prefix)
		}
	}
	for i, k := range kept {
		end := len(line)
		if i+1 < len(kept) {
			end = kept[i+1].pos
		}
		if seg := strings.TrimSpace(line[k.pos:end]); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return []string{line}
	}
	return segments
}

func sortHits(hits []aliasHit) {
	// Insertion sort keeps this allocation-free; hit counts are tiny.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0; j-- {
			a, b := hits[j-1], hits[j]
			if b.pos < a.pos || (b.pos == a.pos && b.len > a.len) {
				hits[j-1], hits[j] = b, a
			} else {
				break
			}
		}
	}
}

// asciiLower lowercases A-Z only, preserving byte offsets so alias positions
// found in the lowered copy index directly into the original line.
func asciiLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
