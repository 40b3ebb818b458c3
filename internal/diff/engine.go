package diff

import (
	"strings"
	"time"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// Default thresholds, overridable through configuration.
const (
	DefaultFuzzyMatchThreshold = 0.75
	DefaultSimilarityThreshold = 0.5
)

// Engine turns pairs of parsed documents into comparison results.
// It is stateless beyond its thresholds and safe for concurrent use.
type Engine struct {
	// FuzzyMatchThreshold is the content-similarity floor for the
	// matcher's fuzzy fallback stage.
	FuzzyMatchThreshold float64
	// SimilarityThreshold is the floor for keeping a changed pair as one
	// MODIFIED record instead of splitting it into DELETED plus ADDED.
	SimilarityThreshold float64
}

// NewEngine returns an Engine with the default thresholds.
func NewEngine() *Engine {
	return &Engine{
		FuzzyMatchThreshold: DefaultFuzzyMatchThreshold,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

// normalizeSource case-folds and whitespace-collapses source text for use
// as a join key.
func normalizeSource(source string) string {
	return strings.Join(strings.Fields(strings.ToLower(source)), " ")
}

func sourcesMatch(sourceA, sourceB string) bool {
	a := normalizeSource(sourceA)
	b := normalizeSource(sourceB)
	return a != "" && b != "" && a == b
}

// pairUnmatchedBySource recovers correspondences whose IDs changed but
// whose source text did not: B leftovers queue up under their normalized
// source key and A leftovers pop them FIFO. Runs regardless of strict-ID
// mode; ID authority and source authority are separate signals.
func pairUnmatchedBySource(result MatchResult) MatchResult {
	if len(result.UnmatchedA) == 0 || len(result.UnmatchedB) == 0 {
		return result
	}

	bySourceB := make(map[string][]*model.Segment)
	for _, seg := range result.UnmatchedB {
		if key := normalizeSource(seg.Source); key != "" {
			bySourceB[key] = append(bySourceB[key], seg)
		}
	}

	var sourcePairs []SegmentPair
	pairedA := make(map[*model.Segment]bool)
	pairedB := make(map[*model.Segment]bool)
	for _, segA := range result.UnmatchedA {
		key := normalizeSource(segA.Source)
		if key == "" {
			continue
		}
		queue := bySourceB[key]
		if len(queue) == 0 {
			continue
		}
		segB := queue[0]
		bySourceB[key] = queue[1:]
		sourcePairs = append(sourcePairs, SegmentPair{A: segA, B: segB})
		pairedA[segA] = true
		pairedB[segB] = true
	}
	if len(sourcePairs) == 0 {
		return result
	}

	merged := MatchResult{Pairs: append(result.Pairs, sourcePairs...)}
	for _, seg := range result.UnmatchedA {
		if !pairedA[seg] {
			merged.UnmatchedA = append(merged.UnmatchedA, seg)
		}
	}
	for _, seg := range result.UnmatchedB {
		if !pairedB[seg] {
			merged.UnmatchedB = append(merged.UnmatchedB, seg)
		}
	}
	return merged
}

// isSDLXliff reports whether both documents are the strict-ID format in
// which segment IDs are authoritative and fuzzy matching would invent
// false correspondences.
func isSDLXliff(docA, docB *model.ParsedDocument) bool {
	return strings.EqualFold(docA.FormatName, "SDLXLIFF") &&
		strings.EqualFold(docB.FormatName, "SDLXLIFF")
}

// Compare matches the segments of two documents and classifies every
// correspondence. It does not validate format consistency; that is the
// caller's job.
func (e *Engine) Compare(docA, docB *model.ParsedDocument) *model.ComparisonResult {
	strictIDMode := isSDLXliff(docA, docB)
	matchResult := Match(docA, docB, !strictIDMode, e.FuzzyMatchThreshold)
	matchResult = pairUnmatchedBySource(matchResult)

	var changes []*model.ChangeRecord
	for _, pair := range matchResult.Pairs {
		segA, segB := pair.A, pair.B
		if segA.Target == segB.Target {
			changes = append(changes, &model.ChangeRecord{
				Type:       model.Unchanged,
				Before:     segA,
				After:      segB,
				Similarity: 1.0,
				Context:    segB.Context,
			})
			continue
		}

		similarity := SimilarityRatio(segA.Target, segB.Target)
		textDiff := DiffAuto(segA.Target, segB.Target)
		keepAsModified := strictIDMode ||
			segA.ID == segB.ID ||
			sourcesMatch(segA.Source, segB.Source) ||
			similarity >= e.SimilarityThreshold ||
			HasOnlyNonWordOrCaseChanges(segA.Target, segB.Target)

		if keepAsModified {
			changes = append(changes, &model.ChangeRecord{
				Type:       model.Modified,
				Before:     segA,
				After:      segB,
				TextDiff:   textDiff,
				Similarity: similarity,
				Context:    segB.Context,
			})
			continue
		}

		// Similar enough to pair, not similar enough to call an edit:
		// show as an independent removal and addition.
		changes = append(changes, &model.ChangeRecord{
			Type:       model.Deleted,
			Before:     segA,
			Similarity: similarity,
			Context:    segA.Context,
		})
		changes = append(changes, &model.ChangeRecord{
			Type:       model.Added,
			After:      segB,
			Similarity: similarity,
			Context:    segB.Context,
		})
	}

	for _, segA := range matchResult.UnmatchedA {
		changes = append(changes, &model.ChangeRecord{
			Type:    model.Deleted,
			Before:  segA,
			Context: segA.Context,
		})
	}
	for _, segB := range matchResult.UnmatchedB {
		changes = append(changes, &model.ChangeRecord{
			Type:    model.Added,
			After:   segB,
			Context: segB.Context,
		})
	}

	return &model.ComparisonResult{
		FileA:      docA,
		FileB:      docB,
		Changes:    changes,
		Statistics: model.ChangeStatisticsFromChanges(changes),
		Timestamp:  time.Now().UTC(),
	}
}

// CompareMulti compares consecutive versions of a document chain. Each of
// the N-1 comparisons is independent.
func (e *Engine) CompareMulti(docs []*model.ParsedDocument) []*model.ComparisonResult {
	if len(docs) < 2 {
		return nil
	}
	results := make([]*model.ComparisonResult, 0, len(docs)-1)
	for i := 0; i < len(docs)-1; i++ {
		results = append(results, e.Compare(docs[i], docs[i+1]))
	}
	return results
}
