package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeTypeString(t *testing.T) {
	assert.Equal(t, "ADDED", Added.String())
	assert.Equal(t, "DELETED", Deleted.String())
	assert.Equal(t, "MODIFIED", Modified.String())
	assert.Equal(t, "MOVED", Moved.String())
	assert.Equal(t, "UNCHANGED", Unchanged.String())
	assert.Equal(t, "UNKNOWN", ChangeType(99).String())
}

func TestMetaValueString(t *testing.T) {
	assert.Equal(t, "hello", MetaStr("hello").String())
	assert.Equal(t, "3", MetaNum(3).String())
	assert.Equal(t, "2.5", MetaNum(2.5).String())
	assert.Equal(t, "true", MetaFlag(true).String())
	assert.Equal(t, "false", MetaFlag(false).String())
}

func TestSegmentHasSource(t *testing.T) {
	assert.True(t, (&Segment{Source: "text"}).HasSource())
	assert.False(t, (&Segment{Target: "only target"}).HasSource())
}

func TestParsedDocumentSegmentByID(t *testing.T) {
	doc := &ParsedDocument{Segments: []*Segment{
		{ID: "1", Target: "first"},
		{ID: "2", Target: "second"},
		{ID: "2", Target: "duplicate"},
	}}

	assert.Equal(t, 3, doc.SegmentCount())
	require.NotNil(t, doc.SegmentByID("2"))
	assert.Equal(t, "second", doc.SegmentByID("2").Target)
	assert.Nil(t, doc.SegmentByID("missing"))
}

func TestChangeStatisticsFromChanges(t *testing.T) {
	changes := []*ChangeRecord{
		{Type: Unchanged},
		{Type: Modified},
		{Type: Added},
		{Type: Deleted},
		{Type: Modified},
	}

	stats := ChangeStatisticsFromChanges(changes)

	assert.Equal(t, 5, stats.TotalSegments)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Deleted)
	assert.Equal(t, 2, stats.Modified)
	assert.Equal(t, 1, stats.Unchanged)
	assert.InDelta(t, 0.8, stats.ChangePercentage, 1e-9)
}

func TestChangeStatisticsEmpty(t *testing.T) {
	stats := ChangeStatisticsFromChanges(nil)
	assert.Equal(t, 0, stats.TotalSegments)
	assert.Equal(t, 0.0, stats.ChangePercentage)
}

func TestChangeRecordIsChanged(t *testing.T) {
	assert.False(t, (&ChangeRecord{Type: Unchanged}).IsChanged())
	assert.True(t, (&ChangeRecord{Type: Modified}).IsChanged())
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad xml")
	err := NewParseError("file.xliff", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "file.xliff")
	assert.Contains(t, err.Error(), "bad xml")
}
