package diff

import "github.com/Slipfaith/Diffviewer/internal/model"

// MatchResult partitions two segment lists into 1:1 pairs and leftovers.
// Every input segment lands in exactly one of the three sets.
type MatchResult struct {
	Pairs      []SegmentPair
	UnmatchedA []*model.Segment
	UnmatchedB []*model.Segment
}

type SegmentPair struct {
	A *model.Segment
	B *model.Segment
}

// MatchByID pairs segments with equal IDs. The first B segment carrying an
// ID is the only match target for it; later duplicates stay unmatched.
// Walk order of A is preserved in the pair list.
func MatchByID(segmentsA, segmentsB []*model.Segment) MatchResult {
	bByID := make(map[string]*model.Segment, len(segmentsB))
	for _, seg := range segmentsB {
		if _, ok := bByID[seg.ID]; !ok {
			bByID[seg.ID] = seg
		}
	}

	claimed := make(map[*model.Segment]bool)
	var result MatchResult
	for _, seg := range segmentsA {
		other := bByID[seg.ID]
		if other != nil && !claimed[other] {
			result.Pairs = append(result.Pairs, SegmentPair{A: seg, B: other})
			claimed[other] = true
			continue
		}
		result.UnmatchedA = append(result.UnmatchedA, seg)
	}
	for _, seg := range segmentsB {
		if !claimed[seg] {
			result.UnmatchedB = append(result.UnmatchedB, seg)
		}
	}
	return result
}

// MatchByPosition zips the two lists index by index. Not used by the
// default pipeline; kept for formats with no other pairing signal.
func MatchByPosition(segmentsA, segmentsB []*model.Segment) MatchResult {
	minLen := len(segmentsA)
	if len(segmentsB) < minLen {
		minLen = len(segmentsB)
	}
	var result MatchResult
	for i := 0; i < minLen; i++ {
		result.Pairs = append(result.Pairs, SegmentPair{A: segmentsA[i], B: segmentsB[i]})
	}
	result.UnmatchedA = append(result.UnmatchedA, segmentsA[minLen:]...)
	result.UnmatchedB = append(result.UnmatchedB, segmentsB[minLen:]...)
	return result
}

// MatchByContent greedily pairs each A segment with the unused B segment
// whose target text scores the highest similarity at or above threshold.
// The scan is first-fit-best-so-far, not an optimal assignment: a later
// candidate wins only by strictly exceeding the best score seen.
func MatchByContent(segmentsA, segmentsB []*model.Segment, threshold float64) MatchResult {
	used := make(map[int]bool, len(segmentsB))
	var result MatchResult

	for _, seg := range segmentsA {
		bestIndex := -1
		bestScore := threshold
		for idx, candidate := range segmentsB {
			if used[idx] {
				continue
			}
			score := SimilarityRatio(seg.Target, candidate.Target)
			if score >= bestScore && (bestIndex == -1 || score > bestScore) {
				bestScore = score
				bestIndex = idx
			}
		}
		if bestIndex == -1 {
			result.UnmatchedA = append(result.UnmatchedA, seg)
			continue
		}
		used[bestIndex] = true
		result.Pairs = append(result.Pairs, SegmentPair{A: seg, B: segmentsB[bestIndex]})
	}

	for idx, seg := range segmentsB {
		if !used[idx] {
			result.UnmatchedB = append(result.UnmatchedB, seg)
		}
	}
	return result
}

// Match runs ID matching and, unless allowFuzzy is false or the ID pass
// fully resolved both sides, content matching over the leftovers.
func Match(docA, docB *model.ParsedDocument, allowFuzzy bool, fuzzyThreshold float64) MatchResult {
	initial := MatchByID(docA.Segments, docB.Segments)
	if !allowFuzzy || (len(initial.UnmatchedA) == 0 && len(initial.UnmatchedB) == 0) {
		return initial
	}
	fuzzy := MatchByContent(initial.UnmatchedA, initial.UnmatchedB, fuzzyThreshold)
	return MatchResult{
		Pairs:      append(initial.Pairs, fuzzy.Pairs...),
		UnmatchedA: fuzzy.UnmatchedA,
		UnmatchedB: fuzzy.UnmatchedB,
	}
}
