package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

func seg(id, target string) *model.Segment {
	return &model.Segment{ID: id, Target: target}
}

func doc(format string, segments ...*model.Segment) *model.ParsedDocument {
	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: format,
		FilePath:   fmt.Sprintf("%s-doc", format),
	}
}

// Every input segment must land in exactly one of pairs, unmatchedA or
// unmatchedB.
func assertPartition(t *testing.T, result MatchResult, lenA, lenB int) {
	t.Helper()
	assert.Equal(t, lenA, len(result.Pairs)+len(result.UnmatchedA))
	assert.Equal(t, lenB, len(result.Pairs)+len(result.UnmatchedB))
}

func TestMatchByID(t *testing.T) {
	a := []*model.Segment{seg("1", "one"), seg("2", "two"), seg("3", "three")}
	b := []*model.Segment{seg("2", "zwei"), seg("3", "drei"), seg("4", "vier")}

	result := MatchByID(a, b)

	require.Len(t, result.Pairs, 2)
	assert.Equal(t, "2", result.Pairs[0].A.ID)
	assert.Equal(t, "zwei", result.Pairs[0].B.Target)
	assert.Equal(t, "3", result.Pairs[1].A.ID)

	require.Len(t, result.UnmatchedA, 1)
	assert.Equal(t, "1", result.UnmatchedA[0].ID)
	require.Len(t, result.UnmatchedB, 1)
	assert.Equal(t, "4", result.UnmatchedB[0].ID)
	assertPartition(t, result, len(a), len(b))
}

func TestMatchByIDDuplicateIDsClaimOnce(t *testing.T) {
	a := []*model.Segment{seg("1", "first"), seg("1", "second")}
	b := []*model.Segment{seg("1", "only")}

	result := MatchByID(a, b)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "first", result.Pairs[0].A.Target)
	require.Len(t, result.UnmatchedA, 1)
	assert.Equal(t, "second", result.UnmatchedA[0].Target)
	assert.Empty(t, result.UnmatchedB)
}

func TestMatchByPosition(t *testing.T) {
	a := []*model.Segment{seg("x", "one"), seg("y", "two")}
	b := []*model.Segment{seg("p", "uno"), seg("q", "dos"), seg("r", "tres")}

	result := MatchByPosition(a, b)

	require.Len(t, result.Pairs, 2)
	assert.Empty(t, result.UnmatchedA)
	require.Len(t, result.UnmatchedB, 1)
	assert.Equal(t, "r", result.UnmatchedB[0].ID)
}

func TestMatchByContentPairsAboveThreshold(t *testing.T) {
	a := []*model.Segment{seg("1", "The quick brown fox")}
	b := []*model.Segment{seg("9", "The quick brown foxes")}

	result := MatchByContent(a, b, 0.75)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "9", result.Pairs[0].B.ID)
	assert.Empty(t, result.UnmatchedA)
	assert.Empty(t, result.UnmatchedB)
}

func TestMatchByContentBelowThresholdStaysUnmatched(t *testing.T) {
	a := []*model.Segment{seg("1", "completely original wording")}
	b := []*model.Segment{seg("9", "nothing like it at all")}

	result := MatchByContent(a, b, 0.75)

	assert.Empty(t, result.Pairs)
	require.Len(t, result.UnmatchedA, 1)
	require.Len(t, result.UnmatchedB, 1)
}

func TestMatchByContentFirstBestWins(t *testing.T) {
	a := []*model.Segment{seg("1", "shared target")}
	b := []*model.Segment{seg("x", "shared target"), seg("y", "shared target")}

	result := MatchByContent(a, b, 0.75)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "x", result.Pairs[0].B.ID)
	require.Len(t, result.UnmatchedB, 1)
	assert.Equal(t, "y", result.UnmatchedB[0].ID)
}

func TestMatchIDThenFuzzy(t *testing.T) {
	docA := doc("Plain Text", seg("1", "stable line"), seg("2", "almost the same sentence"))
	docB := doc("Plain Text", seg("1", "stable line"), seg("7", "almost the same sentences"))

	result := Match(docA, docB, true, 0.75)

	require.Len(t, result.Pairs, 2)
	assert.Empty(t, result.UnmatchedA)
	assert.Empty(t, result.UnmatchedB)
}

func TestMatchFuzzyDisabled(t *testing.T) {
	docA := doc("SDLXLIFF", seg("1", "stable line"), seg("2", "almost the same sentence"))
	docB := doc("SDLXLIFF", seg("1", "stable line"), seg("7", "almost the same sentences"))

	result := Match(docA, docB, false, 0.75)

	require.Len(t, result.Pairs, 1)
	require.Len(t, result.UnmatchedA, 1)
	assert.Equal(t, "2", result.UnmatchedA[0].ID)
	require.Len(t, result.UnmatchedB, 1)
	assert.Equal(t, "7", result.UnmatchedB[0].ID)
}
