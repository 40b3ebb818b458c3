package qa

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Slipfaith/Diffviewer/internal/model"
	"github.com/Slipfaith/Diffviewer/internal/parser"
)

// Final-document formats the verifier accepts.
var supportedFinalExtensions = map[string]bool{
	".xliff":    true,
	".xlf":      true,
	".sdlxliff": true,
	".mqxliff":  true,
}

const (
	maxHeaderScanRows = 25
	maxHeaderColumns  = 150
)

// Verifier resolves QA report rows against final translated documents.
// Any single sheet, file or row that cannot be processed becomes a warning
// or a CANNOT VERIFY status; only total absence of usable input
// short-circuits to an empty result.
type Verifier struct {
	log *slog.Logger
}

func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{log: logger}
}

// ScanReports opens each QA workbook and auto-detects a header row and
// column mapping for every worksheet. Unreadable workbooks become
// warnings; scanning continues with the rest.
func (v *Verifier) ScanReports(reportPaths []string) ScanResult {
	var result ScanResult
	for i, reportPath := range reportPaths {
		v.log.Debug("scanning QA report", "report", reportPath, "index", i+1, "total", len(reportPaths))
		if _, err := os.Stat(reportPath); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("QA report not found: %s", reportPath))
			continue
		}
		workbook, err := excelize.OpenFile(reportPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to read report %s: %v", reportPath, err))
			continue
		}
		for _, sheetName := range workbook.GetSheetList() {
			rows, err := workbook.GetRows(sheetName)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"Failed to detect mapping for %s::%s: %v", filepath.Base(reportPath), sheetName, err))
				continue
			}
			result.SheetConfigs = append(result.SheetConfigs, detectSheetConfig(reportPath, sheetName, rows))
		}
		workbook.Close()
	}
	return result
}

// detectSheetConfig picks the best header row for one worksheet and notes
// anything a reviewer should double-check.
func detectSheetConfig(reportPath, sheetName string, rows [][]string) SheetConfig {
	headerRow, columns, mapping, requiredHits := selectBestHeaderCandidate(rows)

	var notes []string
	if headerRow > 1 {
		notes = append(notes, fmt.Sprintf("Header row auto-detected at row %d.", headerRow))
	}
	if !mapping.IsComplete() {
		var missing []string
		for _, field := range requiredFields {
			if mapping.column(field) == "" {
				missing = append(missing, mappingFieldLabel(field))
			}
		}
		notes = append(notes, "Missing required columns: "+strings.Join(missing, ", "))
	} else if requiredHits < len(requiredFields) {
		notes = append(notes, "Header detection confidence is low, verify mapping manually.")
	}

	return SheetConfig{
		ReportPath: reportPath,
		SheetName:  sheetName,
		HeaderRow:  headerRow,
		Columns:    columns,
		Mapping:    mapping,
		Notes:      notes,
	}
}

// headerCandidate ranks one candidate header row. Candidates compare by
// required-field hits, then total mapped fields, then confidence, then
// non-empty header count; earlier rows win ties.
type headerCandidate struct {
	row          int
	columns      []ColumnInfo
	mapping      ColumnMapping
	requiredHits int
	mappedHits   int
	confidence   int
	nonEmpty     int
}

func (c headerCandidate) betterThan(other headerCandidate) bool {
	if c.requiredHits != other.requiredHits {
		return c.requiredHits > other.requiredHits
	}
	if c.mappedHits != other.mappedHits {
		return c.mappedHits > other.mappedHits
	}
	if c.confidence != other.confidence {
		return c.confidence > other.confidence
	}
	if c.nonEmpty != other.nonEmpty {
		return c.nonEmpty > other.nonEmpty
	}
	return c.row < other.row
}

func selectBestHeaderCandidate(rows [][]string) (int, []ColumnInfo, ColumnMapping, int) {
	maxScan := len(rows)
	if maxScan > maxHeaderScanRows {
		maxScan = maxHeaderScanRows
	}
	if maxScan < 1 {
		maxScan = 1
	}

	best := buildHeaderCandidate(rows, 1)
	for row := 2; row <= maxScan; row++ {
		if candidate := buildHeaderCandidate(rows, row); candidate.betterThan(best) {
			best = candidate
		}
	}
	return best.row, best.columns, best.mapping, best.requiredHits
}

func buildHeaderCandidate(rows [][]string, row int) headerCandidate {
	columns := extractColumns(rows, row)
	mapping := detectMapping(columns)

	candidate := headerCandidate{
		row:        row,
		columns:    columns,
		mapping:    mapping,
		confidence: mappingConfidence(columns, mapping),
		nonEmpty:   nonEmptyHeaderCount(columns),
	}
	for _, field := range requiredFields {
		if mapping.column(field) != "" {
			candidate.requiredHits++
		}
	}
	for _, field := range mappingFieldOrder {
		if mapping.column(field) != "" {
			candidate.mappedHits++
		}
	}
	return candidate
}

func extractColumns(rows [][]string, headerRow int) []ColumnInfo {
	var headerCells []string
	if headerRow-1 < len(rows) {
		headerCells = rows[headerRow-1]
	}
	width := len(headerCells)
	if width > maxHeaderColumns {
		width = maxHeaderColumns
	}
	if width < 1 {
		width = 1
	}

	columns := make([]ColumnInfo, 0, width)
	for col := 1; col <= width; col++ {
		letter, _ := excelize.ColumnNumberToName(col)
		header := ""
		if col-1 < len(headerCells) {
			header = strings.TrimSpace(headerCells[col-1])
		}
		if header == "" {
			header = "Column " + letter
		}
		columns = append(columns, ColumnInfo{ColumnIndex: col, ColumnLetter: letter, Header: header})
	}
	return columns
}

// detectMapping assigns columns to logical fields greedily, one field at a
// time in priority order. A column claimed by one field is never reused
// for another.
func detectMapping(columns []ColumnInfo) ColumnMapping {
	var mapping ColumnMapping
	used := map[string]bool{}
	for _, field := range mappingFieldOrder {
		aliases := headerAliases[field]
		bestColumn := ""
		bestScore := 0
		for _, col := range columns {
			if used[col.ColumnLetter] {
				continue
			}
			if score := headerScore(col.Header, aliases); score > bestScore {
				bestScore = score
				bestColumn = col.ColumnLetter
			}
		}
		if bestColumn != "" {
			mapping.setColumn(field, bestColumn)
			used[bestColumn] = true
		}
	}
	return mapping
}

// headerScore rates a header against a field's aliases: 100 for an exact
// normalized match, 90 for prefix/suffix containment, 80 for substring
// containment, otherwise the alias-token overlap fraction scaled to 60.
func headerScore(header string, aliases []string) int {
	normalized := normalizeHeader(header)
	if normalized == "" {
		return 0
	}
	best := 0
	for _, alias := range aliases {
		aliasNorm := normalizeHeader(alias)
		if aliasNorm == "" {
			continue
		}
		switch {
		case normalized == aliasNorm:
			best = max(best, 100)
		case strings.HasPrefix(normalized, aliasNorm) || strings.HasSuffix(normalized, aliasNorm):
			best = max(best, 90)
		case strings.Contains(normalized, aliasNorm):
			best = max(best, 80)
		default:
			aliasTokens := strings.Fields(aliasNorm)
			headerTokens := map[string]bool{}
			for _, token := range strings.Fields(normalized) {
				headerTokens[token] = true
			}
			common := 0
			for _, token := range aliasTokens {
				if headerTokens[token] {
					common++
				}
			}
			if common > 0 {
				best = max(best, common*60/max(1, len(aliasTokens)))
			}
		}
	}
	return best
}

func mappingConfidence(columns []ColumnInfo, mapping ColumnMapping) int {
	byLetter := map[string]string{}
	for _, col := range columns {
		byLetter[col.ColumnLetter] = col.Header
	}
	score := 0
	for _, field := range mappingFieldOrder {
		selected := mapping.column(field)
		if selected == "" {
			continue
		}
		score += headerScore(byLetter[selected], headerAliases[field])
	}
	return score
}

func nonEmptyHeaderCount(columns []ColumnInfo) int {
	count := 0
	for _, col := range columns {
		if col.Header != "" && !strings.HasPrefix(col.Header, "Column ") {
			count++
		}
	}
	return count
}

// Verify resolves every QA row of the complete sheet configs against the
// final files and aggregates statuses, warnings and per-file summaries.
func (v *Verifier) Verify(sheetConfigs []SheetConfig, finalFiles []string) *VerificationResult {
	if len(sheetConfigs) == 0 {
		return &VerificationResult{
			StatusCounts: emptyCounts(),
			Warnings:     []string{"No QA report sheets loaded."},
			Timestamp:    time.Now(),
		}
	}

	var complete []SheetConfig
	for _, cfg := range sheetConfigs {
		if cfg.Mapping.IsComplete() {
			complete = append(complete, cfg)
		}
	}
	if len(complete) == 0 {
		return &VerificationResult{
			StatusCounts: emptyCounts(),
			Warnings: []string{
				"No sheets with complete mapping. Map Source, Original Translation, and QA mark columns.",
			},
			Timestamp: time.Now(),
		}
	}

	v.log.Debug("parsing final translation files", "count", len(finalFiles))
	index, warnings := v.buildFinalIndex(finalFiles)
	if skipped := len(sheetConfigs) - len(complete); skipped > 0 {
		warnings = append([]string{fmt.Sprintf("Skipped %d sheet(s) with incomplete mapping.", skipped)}, warnings...)
	}

	rows, readWarnings := v.readQARows(complete)
	warnings = append(warnings, readWarnings...)

	results := make([]VerificationRow, 0, len(rows))
	counts := emptyCounts()
	for i, row := range rows {
		v.log.Debug("verifying QA row", "index", i+1, "total", len(rows))
		verified := verifyRow(row, index)
		results = append(results, verified)
		counts[verified.VerificationStatus]++
	}

	return &VerificationResult{
		Rows:          results,
		StatusCounts:  counts,
		Warnings:      warnings,
		TotalRows:     len(results),
		Timestamp:     time.Now(),
		FileSummaries: buildFileSummaries(results, index),
	}
}

// readQARows re-opens each report once and pulls the data rows of every
// complete sheet config belonging to it.
func (v *Verifier) readQARows(configs []SheetConfig) ([]rowInput, []string) {
	grouped := map[string][]SheetConfig{}
	var reportOrder []string
	for _, cfg := range configs {
		if _, seen := grouped[cfg.ReportPath]; !seen {
			reportOrder = append(reportOrder, cfg.ReportPath)
		}
		grouped[cfg.ReportPath] = append(grouped[cfg.ReportPath], cfg)
	}

	var rows []rowInput
	var warnings []string
	for _, reportPath := range reportOrder {
		workbook, err := excelize.OpenFile(reportPath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to read QA report %s: %v", reportPath, err))
			continue
		}
		for _, cfg := range grouped[reportPath] {
			sheetRows, err := workbook.GetRows(cfg.SheetName)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"Sheet not found: %s::%s", filepath.Base(reportPath), cfg.SheetName))
				continue
			}
			rows = append(rows, extractSheetRows(sheetRows, cfg)...)
		}
		workbook.Close()
	}
	return rows, warnings
}

// extractSheetRows pulls the mapped cells of every data row below the
// header. Rows blank in all identifying fields are spacer rows and are
// skipped.
func extractSheetRows(rows [][]string, cfg SheetConfig) []rowInput {
	if !cfg.Mapping.IsComplete() {
		return nil
	}

	sourceIdx := columnIdx(cfg.Mapping.SourceColumn)
	originalIdx := columnIdx(cfg.Mapping.OriginalColumn)
	revisedIdx := columnIdx(cfg.Mapping.RevisedColumn)
	qaIdx := columnIdx(cfg.Mapping.QAMarkColumn)
	segmentIDIdx := columnIdx(cfg.Mapping.SegmentIDColumn)
	filenameIdx := columnIdx(cfg.Mapping.FilenameColumn)

	var inputs []rowInput
	for rowNum := cfg.HeaderRow + 1; rowNum <= len(rows); rowNum++ {
		cells := rows[rowNum-1]
		source := cellValue(cells, sourceIdx)
		original := cellValue(cells, originalIdx)
		revised := cellValue(cells, revisedIdx)
		qaMark := cellValue(cells, qaIdx)
		segmentID := cellValue(cells, segmentIDIdx)

		if source == "" && original == "" && revised == "" && qaMark == "" && segmentID == "" {
			continue
		}
		inputs = append(inputs, rowInput{
			source:              source,
			originalTranslation: original,
			revisedTranslation:  revised,
			qaMarkRaw:           qaMark,
			segmentID:           segmentID,
			expectedFileName:    cellValue(cells, filenameIdx),
			reportFile:          filepath.Base(cfg.ReportPath),
			sheetName:           cfg.SheetName,
			rowNumber:           rowNum,
		})
	}
	return inputs
}

// buildFinalIndex parses every final file and indexes its segments.
// Unparseable or unsupported files become warnings; the index is built
// from the rest.
func (v *Verifier) buildFinalIndex(finalFiles []string) (*finalIndex, []string) {
	index := newFinalIndex()
	var warnings []string

	for i, filePath := range finalFiles {
		v.log.Debug("parsing final file", "file", filePath, "index", i+1, "total", len(finalFiles))
		ext := strings.ToLower(filepath.Ext(filePath))
		if !supportedFinalExtensions[ext] {
			warnings = append(warnings, fmt.Sprintf("Unsupported final file format: %s", filePath))
			continue
		}
		document, err := parser.ParseFile(filePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to parse final file %s: %v", filePath, err))
			continue
		}
		index.addDocument(document)
	}
	return index, warnings
}

func (idx *finalIndex) addDocument(document *model.ParsedDocument) {
	filePath := filepath.Clean(document.FilePath)
	known := false
	for _, loaded := range idx.loadedFiles {
		if loaded == filePath {
			known = true
			break
		}
	}
	if !known {
		idx.loadedFiles = append(idx.loadedFiles, filePath)
	}
	for _, key := range fileLookupKeys(filepath.Base(filePath)) {
		if idx.byFileKey[key] == nil {
			idx.byFileKey[key] = map[string]bool{}
		}
		idx.byFileKey[key][filePath] = true
	}

	for _, segment := range document.Segments {
		ref := &segmentRef{
			segmentID: strings.TrimSpace(segment.ID),
			source:    segment.Source,
			target:    segment.Target,
			filePath:  filePath,
		}
		if ref.segmentID != "" {
			key := normalizeSegmentID(ref.segmentID)
			idx.byID[key] = append(idx.byID[key], ref)
		}
		if strings.TrimSpace(ref.source) == "" {
			continue
		}
		if key := normalizeSourceExact(ref.source); key != "" {
			idx.bySourceExact[key] = append(idx.bySourceExact[key], ref)
		}
		if key := normalizeSourceNorm(ref.source); key != "" {
			idx.bySourceNorm[key] = append(idx.bySourceNorm[key], ref)
		}
		if key := normalizeSourceCompact(ref.source); key != "" {
			idx.bySourceCompact[key] = append(idx.bySourceCompact[key], ref)
		}
	}
}

// verifyRow classifies one QA row. FP rows are not applicable, unknown
// marks and missing originals cannot be verified, and TP rows resolve
// through the cascade matcher and an original-vs-final text comparison.
func verifyRow(row rowInput, index *finalIndex) VerificationRow {
	base := VerificationRow{
		Source:              row.source,
		OriginalTranslation: row.originalTranslation,
		RevisedTranslation:  row.revisedTranslation,
		ExpectedFileName:    row.expectedFileName,
		ReportFile:          row.reportFile,
		SheetName:           row.sheetName,
		RowNumber:           row.rowNumber,
	}

	mark := normalizeQAMark(row.qaMarkRaw)
	if mark == "FP" {
		base.QAMark = "FP"
		base.VerificationStatus = StatusNotApplicable
		base.Reason = "FP mark: verification skipped."
		return base
	}
	if mark != "TP" {
		base.QAMark = mark
		if base.QAMark == "" {
			base.QAMark = row.qaMarkRaw
		}
		base.VerificationStatus = StatusCannotVerify
		base.Reason = "Unsupported QA mark."
		return base
	}

	base.QAMark = "TP"
	if row.originalTranslation == "" {
		base.VerificationStatus = StatusCannotVerify
		base.Reason = "Missing Original Translation."
		return base
	}

	outcome := matchSegment(row, index)
	if outcome.segment == nil {
		base.VerificationStatus = StatusCannotVerify
		base.Reason = outcome.reason
		return base
	}

	base.FinalTranslation = outcome.segment.target
	base.MatchedFileName = filepath.Base(outcome.segment.filePath)
	base.MatchedFilePath = outcome.segment.filePath
	base.MatchedSegmentID = outcome.segment.segmentID

	if normalizeForCompare(row.originalTranslation) == normalizeForCompare(outcome.segment.target) {
		base.VerificationStatus = StatusNotApplied
		base.Reason = outcome.reason + "; Original equals Final."
	} else {
		base.VerificationStatus = StatusApplied
		base.Reason = outcome.reason + "; Original differs from Final."
	}
	return base
}

// matchSegment cascades through the lookup stages: segment ID, exact
// source, normalized source, compact source. A stage with candidates that
// cannot be disambiguated fails closed; it never falls through to the
// next stage.
func matchSegment(row rowInput, index *finalIndex) matchOutcome {
	var expectedPaths map[string]bool
	if row.expectedFileName != "" {
		expectedPaths = resolveExpectedFilePaths(row.expectedFileName, index)
		if len(expectedPaths) == 0 {
			return matchOutcome{
				reason:    fmt.Sprintf("Referenced file not loaded: %s", row.expectedFileName),
				matchedBy: "file_name",
			}
		}
	}

	type stage struct {
		name       string
		candidates []*segmentRef
		matched    string
		ambiguous  string
	}
	var stages []stage
	if row.segmentID != "" {
		stages = append(stages, stage{
			name:       "segment_id",
			candidates: index.byID[normalizeSegmentID(row.segmentID)],
			matched:    "Matched by Segment ID",
			ambiguous:  "Ambiguous match by Segment ID.",
		})
	}
	if row.source != "" {
		stages = append(stages,
			stage{
				name:       "source_exact",
				candidates: index.bySourceExact[normalizeSourceExact(row.source)],
				matched:    "Matched by exact Source",
				ambiguous:  "Ambiguous exact Source match.",
			},
			stage{
				name:       "source_normalized",
				candidates: index.bySourceNorm[normalizeSourceNorm(row.source)],
				matched:    "Matched by normalized Source",
				ambiguous:  "Ambiguous normalized Source match.",
			},
			stage{
				name:       "source_compact",
				candidates: index.bySourceCompact[normalizeSourceCompact(row.source)],
				matched:    "Matched by compact Source",
				ambiguous:  "Ambiguous compact Source match.",
			},
		)
	}

	for _, st := range stages {
		candidates := filterCandidatesByFiles(st.candidates, expectedPaths)
		selected := selectCandidate(candidates, row.source)
		if selected.segment != nil {
			return matchOutcome{
				segment:   selected.segment,
				reason:    fmt.Sprintf("%s (%s)", st.matched, filepath.Base(selected.segment.filePath)),
				matchedBy: st.name,
			}
		}
		if len(candidates) > 0 {
			return matchOutcome{reason: st.ambiguous, matchedBy: st.name}
		}
	}

	if expectedPaths != nil {
		return matchOutcome{reason: "Segment not found in referenced file.", matchedBy: "file_name"}
	}
	return matchOutcome{reason: "Segment not found in final files.", matchedBy: "none"}
}

// selectCandidate narrows multiple lookup hits to one confident match:
// exact source, then normalized source, then the safe-duplicate case where
// every remaining candidate carries an identical target. Anything else is
// ambiguous and fails closed.
func selectCandidate(candidates []*segmentRef, sourceHint string) matchOutcome {
	if len(candidates) == 0 {
		return matchOutcome{reason: "No candidates.", matchedBy: "none"}
	}
	if len(candidates) == 1 {
		return matchOutcome{segment: candidates[0], reason: "Single candidate.", matchedBy: "unique"}
	}

	if sourceHint != "" {
		exactKey := normalizeSourceExact(sourceHint)
		var exact []*segmentRef
		for _, ref := range candidates {
			if normalizeSourceExact(ref.source) == exactKey {
				exact = append(exact, ref)
			}
		}
		switch {
		case len(exact) == 1:
			return matchOutcome{segment: exact[0], reason: "Resolved by exact source.", matchedBy: "source_exact"}
		case len(exact) > 1:
			candidates = exact
		default:
			normKey := normalizeSourceNorm(sourceHint)
			var norm []*segmentRef
			for _, ref := range candidates {
				if normalizeSourceNorm(ref.source) == normKey {
					norm = append(norm, ref)
				}
			}
			if len(norm) == 1 {
				return matchOutcome{segment: norm[0], reason: "Resolved by normalized source.", matchedBy: "source_norm"}
			}
			if len(norm) > 1 {
				candidates = norm
			}
		}
	}

	targets := map[string]bool{}
	for _, ref := range candidates {
		targets[normalizeForCompare(ref.target)] = true
	}
	if len(targets) == 1 {
		return matchOutcome{segment: candidates[0], reason: "Resolved by identical targets.", matchedBy: "same_target"}
	}
	return matchOutcome{reason: "Multiple conflicting candidate segments.", matchedBy: "ambiguous"}
}

func filterCandidatesByFiles(candidates []*segmentRef, expectedPaths map[string]bool) []*segmentRef {
	if expectedPaths == nil {
		return candidates
	}
	var filtered []*segmentRef
	for _, ref := range candidates {
		if expectedPaths[ref.filePath] {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}

func resolveExpectedFilePaths(rawFileName string, index *finalIndex) map[string]bool {
	matches := map[string]bool{}
	for _, key := range fileLookupKeys(rawFileName) {
		for path := range index.byFileKey[key] {
			matches[path] = true
		}
	}
	return matches
}

// buildFileSummaries attributes every verified row to its matched file
// (or, when unmatched, to an unambiguous expected file) and reports every
// loaded file, including the ones with zero QA rows.
func buildFileSummaries(rows []VerificationRow, index *finalIndex) []FileSummary {
	byPath := map[string]*FileSummary{}
	for _, filePath := range index.loadedFiles {
		byPath[filePath] = &FileSummary{FileName: filepath.Base(filePath), FilePath: filePath}
	}

	for _, row := range rows {
		var attributionPaths []string
		if row.MatchedFilePath != "" {
			attributionPaths = append(attributionPaths, row.MatchedFilePath)
		} else if row.ExpectedFileName != "" {
			expected := resolveExpectedFilePaths(row.ExpectedFileName, index)
			if len(expected) == 1 {
				for path := range expected {
					attributionPaths = append(attributionPaths, path)
				}
			}
		}

		for _, filePath := range attributionPaths {
			summary := byPath[filePath]
			if summary == nil {
				summary = &FileSummary{FileName: filepath.Base(filePath), FilePath: filePath}
				byPath[filePath] = summary
			}
			summary.QARows++
			switch row.VerificationStatus {
			case StatusApplied:
				summary.Applied++
			case StatusNotApplied:
				summary.NotApplied++
			case StatusCannotVerify:
				summary.CannotVerify++
			case StatusNotApplicable:
				summary.NotApplicable++
			}
		}
	}

	summaries := make([]FileSummary, 0, len(byPath))
	for _, summary := range byPath {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].FileName) < strings.ToLower(summaries[j].FileName)
	})
	return summaries
}

func mappingFieldLabel(field string) string {
	switch field {
	case fieldSource:
		return "Source text"
	case fieldOriginal:
		return "Original Translation"
	case fieldQAMark:
		return "QA mark (TP/FP)"
	default:
		return field
	}
}

// columnIdx converts a column letter to a 0-based index, -1 when unset.
func columnIdx(columnLetter string) int {
	if columnLetter == "" {
		return -1
	}
	num, err := excelize.ColumnNameToNumber(columnLetter)
	if err != nil {
		return -1
	}
	return num - 1
}

func cellValue(cells []string, index int) string {
	if index < 0 || index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[index])
}

