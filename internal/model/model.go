// Package model holds the data contracts shared by the document parsers,
// the diff engine and the report consumers. It contains no comparison
// logic of its own.
package model

import (
	"strconv"
	"time"
)

// ChangeType classifies one comparison record.
type ChangeType int

const (
	Added ChangeType = iota
	Deleted
	Modified
	Moved // reserved: the current matcher never produces it
	Unchanged
)

func (ct ChangeType) String() string {
	switch ct {
	case Added:
		return "ADDED"
	case Deleted:
		return "DELETED"
	case Modified:
		return "MODIFIED"
	case Moved:
		return "MOVED"
	case Unchanged:
		return "UNCHANGED"
	default:
		return "UNKNOWN"
	}
}

// ChunkType classifies one run of a token-level diff.
type ChunkType int

const (
	ChunkEqual ChunkType = iota
	ChunkInsert
	ChunkDelete
)

func (ct ChunkType) String() string {
	switch ct {
	case ChunkEqual:
		return "EQUAL"
	case ChunkInsert:
		return "INSERT"
	case ChunkDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// MetaValue is the closed variant allowed in metadata bags: a string, a
// number or a boolean. Exactly one Kind is meaningful per value.
type MetaValue struct {
	Kind MetaKind
	Str  string
	Num  float64
	Bool bool
}

type MetaKind int

const (
	MetaString MetaKind = iota
	MetaNumber
	MetaBool
)

func MetaStr(s string) MetaValue  { return MetaValue{Kind: MetaString, Str: s} }
func MetaNum(n float64) MetaValue { return MetaValue{Kind: MetaNumber, Num: n} }
func MetaFlag(b bool) MetaValue   { return MetaValue{Kind: MetaBool, Bool: b} }

// String renders the value for display regardless of kind.
func (v MetaValue) String() string {
	switch v.Kind {
	case MetaNumber:
		return trimFloat(v.Num)
	case MetaBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return v.Str
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SegmentContext locates a segment inside its document.
type SegmentContext struct {
	FilePath string
	Location string
	Position int
	Group    string // container label, e.g. "Slide 3" or a sheet name
}

// FormatRun is one styled run of segment text. The diff engine itself does
// not consume formatting; it is carried through for report renderers.
type FormatRun struct {
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         string
	Font          string
	Size          float64
}

// Segment is one unit of comparable text. ID is format-defined and need
// not be unique within a document; Source is empty for monolingual
// formats; Target is the text the engine compares and is never absent,
// though it may be the empty string.
type Segment struct {
	ID         string
	Source     string
	Target     string
	Context    SegmentContext
	Formatting []FormatRun
	Metadata   map[string]MetaValue
}

// HasSource reports whether the segment carries original-language text.
func (s *Segment) HasSource() bool { return s.Source != "" }

// ParsedDocument is the ordered segment sequence one parser produced.
// It is constructed once per parse and not mutated afterwards.
type ParsedDocument struct {
	Segments   []*Segment
	FormatName string
	FilePath   string
	Metadata   map[string]MetaValue
	Encoding   string
}

func (d *ParsedDocument) SegmentCount() int { return len(d.Segments) }

// SegmentByID returns the first segment with the given ID, or nil.
func (d *ParsedDocument) SegmentByID(id string) *Segment {
	for _, seg := range d.Segments {
		if seg.ID == id {
			return seg
		}
	}
	return nil
}

// DiffChunk is one run of a token-level diff. A well-formed chunk list
// never contains two consecutive chunks of the same type.
type DiffChunk struct {
	Type ChunkType
	Text string
}

// ChangeRecord is one classified correspondence. Before is nil for Added,
// After is nil for Deleted, both are set otherwise. TextDiff is populated
// only for Modified records.
type ChangeRecord struct {
	Type       ChangeType
	Before     *Segment
	After      *Segment
	TextDiff   []DiffChunk
	Similarity float64
	Context    SegmentContext
}

// IsChanged reports whether the record represents an actual change.
func (c *ChangeRecord) IsChanged() bool { return c.Type != Unchanged }

// ChangeStatistics aggregates a change list.
type ChangeStatistics struct {
	TotalSegments    int
	Added            int
	Deleted          int
	Modified         int
	Moved            int
	Unchanged        int
	ChangePercentage float64
}

// ChangeStatisticsFromChanges counts records by type. The change
// percentage is 0 for an empty list rather than an error.
func ChangeStatisticsFromChanges(changes []*ChangeRecord) ChangeStatistics {
	stats := ChangeStatistics{TotalSegments: len(changes)}
	for _, change := range changes {
		switch change.Type {
		case Added:
			stats.Added++
		case Deleted:
			stats.Deleted++
		case Modified:
			stats.Modified++
		case Moved:
			stats.Moved++
		case Unchanged:
			stats.Unchanged++
		}
	}
	changed := stats.Added + stats.Deleted + stats.Modified + stats.Moved
	if stats.TotalSegments > 0 {
		stats.ChangePercentage = float64(changed) / float64(stats.TotalSegments)
	}
	return stats
}

// ComparisonResult is the output of one document comparison. Changes hold
// matched pairs first in matcher order, then unmatched-A deletions, then
// unmatched-B additions.
type ComparisonResult struct {
	FileA      *ParsedDocument
	FileB      *ParsedDocument
	Changes    []*ChangeRecord
	Statistics ChangeStatistics
	Timestamp  time.Time
}

func (r *ComparisonResult) ChangePercentage() float64 {
	return r.Statistics.ChangePercentage
}
