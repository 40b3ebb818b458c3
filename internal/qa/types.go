// Package qa verifies QA-report spreadsheet rows against final translated
// documents: it detects report column layouts, indexes final segments and
// classifies every QA issue as applied, not applied, unverifiable or not
// applicable.
package qa

import (
	"fmt"
	"path/filepath"
	"time"
)

// Verification statuses, in the wording the exported report uses.
const (
	StatusApplied       = "APPLIED"
	StatusNotApplied    = "NOT APPLIED"
	StatusCannotVerify  = "CANNOT VERIFY"
	StatusNotApplicable = "NOT APPLICABLE"
)

// ColumnInfo describes one spreadsheet column of a detected header row.
type ColumnInfo struct {
	ColumnIndex  int // 1-based
	ColumnLetter string
	Header       string
}

func (c ColumnInfo) DisplayName() string {
	return fmt.Sprintf("%s: %s", c.ColumnLetter, c.Header)
}

// ColumnMapping maps logical QA fields to column letters. A mapping is
// complete only when source, original translation and QA mark are all set.
type ColumnMapping struct {
	SourceColumn    string
	OriginalColumn  string
	RevisedColumn   string
	QAMarkColumn    string
	SegmentIDColumn string
	FilenameColumn  string
}

func (m ColumnMapping) IsComplete() bool {
	return m.SourceColumn != "" && m.OriginalColumn != "" && m.QAMarkColumn != ""
}

func (m ColumnMapping) column(field string) string {
	switch field {
	case fieldSource:
		return m.SourceColumn
	case fieldOriginal:
		return m.OriginalColumn
	case fieldRevised:
		return m.RevisedColumn
	case fieldQAMark:
		return m.QAMarkColumn
	case fieldSegmentID:
		return m.SegmentIDColumn
	case fieldFilename:
		return m.FilenameColumn
	}
	return ""
}

func (m *ColumnMapping) setColumn(field, columnLetter string) {
	switch field {
	case fieldSource:
		m.SourceColumn = columnLetter
	case fieldOriginal:
		m.OriginalColumn = columnLetter
	case fieldRevised:
		m.RevisedColumn = columnLetter
	case fieldQAMark:
		m.QAMarkColumn = columnLetter
	case fieldSegmentID:
		m.SegmentIDColumn = columnLetter
	case fieldFilename:
		m.FilenameColumn = columnLetter
	}
}

// SheetConfig is one worksheet's detected header row and column mapping.
type SheetConfig struct {
	ReportPath string
	SheetName  string
	HeaderRow  int // 1-based
	Columns    []ColumnInfo
	Mapping    ColumnMapping
	Notes      []string
}

func (c SheetConfig) DisplayName() string {
	return fmt.Sprintf("%s :: %s", filepath.Base(c.ReportPath), c.SheetName)
}

// ScanResult is the outcome of scanning QA report workbooks.
type ScanResult struct {
	SheetConfigs []SheetConfig
	Warnings     []string
}

// VerificationRow is one verified QA issue.
type VerificationRow struct {
	Source              string
	OriginalTranslation string
	RevisedTranslation  string
	FinalTranslation    string
	ExpectedFileName    string
	MatchedFileName     string
	MatchedFilePath     string
	QAMark              string
	VerificationStatus  string
	MatchedSegmentID    string
	Reason              string
	ReportFile          string
	SheetName           string
	RowNumber           int
}

// FileSummary aggregates verification outcomes for one final file.
type FileSummary struct {
	FileName      string
	FilePath      string
	QARows        int
	Applied       int
	NotApplied    int
	CannotVerify  int
	NotApplicable int
}

// VerificationResult is the outcome of one verification run.
type VerificationResult struct {
	Rows          []VerificationRow
	StatusCounts  map[string]int
	Warnings      []string
	TotalRows     int
	Timestamp     time.Time
	FileSummaries []FileSummary
}

func emptyCounts() map[string]int {
	return map[string]int{
		StatusApplied:       0,
		StatusNotApplied:    0,
		StatusCannotVerify:  0,
		StatusNotApplicable: 0,
	}
}

// rowInput is one raw QA data row pulled from a sheet.
type rowInput struct {
	source              string
	originalTranslation string
	revisedTranslation  string
	qaMarkRaw           string
	segmentID           string
	expectedFileName    string
	reportFile          string
	sheetName           string
	rowNumber           int
}

// segmentRef is one final-document segment inside the lookup index.
type segmentRef struct {
	segmentID string
	source    string
	target    string
	filePath  string
}

// matchOutcome is the result of one candidate lookup or disambiguation.
type matchOutcome struct {
	segment   *segmentRef
	reason    string
	matchedBy string
}

// finalIndex is built once per verification run from all final documents
// and read-only afterwards.
type finalIndex struct {
	byID            map[string][]*segmentRef
	bySourceExact   map[string][]*segmentRef
	bySourceNorm    map[string][]*segmentRef
	bySourceCompact map[string][]*segmentRef
	byFileKey       map[string]map[string]bool // lookup key -> set of paths
	loadedFiles     []string
}

func newFinalIndex() *finalIndex {
	return &finalIndex{
		byID:            map[string][]*segmentRef{},
		bySourceExact:   map[string][]*segmentRef{},
		bySourceNorm:    map[string][]*segmentRef{},
		bySourceCompact: map[string][]*segmentRef{},
		byFileKey:       map[string]map[string]bool{},
	}
}
