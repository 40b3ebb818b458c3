package qa

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Slipfaith/Diffviewer/internal/diff"
	"github.com/Slipfaith/Diffviewer/internal/model"
)

const (
	verificationSheet = "Verification"
	summarySheet      = "Summary"
)

var verificationHeaders = []string{
	"Source",
	"Original Translation",
	"Revised Translation",
	"Final Translation",
	"QA Mark",
	"Status",
	"Reason",
	"Matched File",
	"Segment ID",
	"Report File",
	"Sheet",
	"Row",
	"Expected File",
}

// exportStyles holds the style IDs built once per workbook.
type exportStyles struct {
	header     int
	wrapped    int
	statusFill map[string]int
	deleteFont *excelize.Font
	insertFont *excelize.Font
	revisedFnt *excelize.Font
}

// ExportResult writes the verification result as an Excel workbook with a
// row-per-issue Verification sheet and an aggregate Summary sheet. The
// original and revised translation cells carry inline rich-text diffs
// against the final translation.
func ExportResult(result *VerificationResult, outputPath string) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	styles, err := buildExportStyles(workbook)
	if err != nil {
		return fmt.Errorf("export: build styles: %w", err)
	}
	if err := writeVerificationSheet(workbook, result, styles); err != nil {
		return fmt.Errorf("export: verification sheet: %w", err)
	}
	if err := writeSummarySheet(workbook, result, styles); err != nil {
		return fmt.Errorf("export: summary sheet: %w", err)
	}

	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}
	if err := workbook.SaveAs(outputPath); err != nil {
		return fmt.Errorf("export: save %s: %w", outputPath, err)
	}
	return nil
}

func buildExportStyles(workbook *excelize.File) (*exportStyles, error) {
	header, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return nil, err
	}
	wrapped, err := workbook.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	fills := map[string]string{
		StatusApplied:       "C6EFCE",
		StatusNotApplied:    "FFC7CE",
		StatusCannotVerify:  "FFEB9C",
		StatusNotApplicable: "D9D9D9",
	}
	statusFill := make(map[string]int, len(fills))
	for status, color := range fills {
		styleID, err := workbook.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		})
		if err != nil {
			return nil, err
		}
		statusFill[status] = styleID
	}

	return &exportStyles{
		header:     header,
		wrapped:    wrapped,
		statusFill: statusFill,
		deleteFont: &excelize.Font{Strike: true, Color: "9C0006"},
		insertFont: &excelize.Font{Bold: true, Color: "006100"},
		revisedFnt: &excelize.Font{Bold: true, Color: "1F4E79"},
	}, nil
}

func writeVerificationSheet(workbook *excelize.File, result *VerificationResult, styles *exportStyles) error {
	if _, err := workbook.NewSheet(verificationSheet); err != nil {
		return err
	}
	for col, header := range verificationHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := workbook.SetCellValue(verificationSheet, cell, header); err != nil {
			return err
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(verificationHeaders), 1)
	if err := workbook.SetCellStyle(verificationSheet, "A1", lastHeaderCell, styles.header); err != nil {
		return err
	}

	for i, row := range result.Rows {
		rowNum := i + 2
		values := []interface{}{
			row.Source,
			row.OriginalTranslation,
			row.RevisedTranslation,
			row.FinalTranslation,
			row.QAMark,
			row.VerificationStatus,
			row.Reason,
			row.MatchedFileName,
			row.MatchedSegmentID,
			row.ReportFile,
			row.SheetName,
			row.RowNumber,
			row.ExpectedFileName,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := workbook.SetCellValue(verificationSheet, cell, value); err != nil {
				return err
			}
		}

		firstCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		lastCell, _ := excelize.CoordinatesToCellName(len(verificationHeaders), rowNum)
		rowStyle := styles.wrapped
		if fill, ok := styles.statusFill[row.VerificationStatus]; ok {
			rowStyle = fill
		}
		if err := workbook.SetCellStyle(verificationSheet, firstCell, lastCell, rowStyle); err != nil {
			return err
		}

		if row.FinalTranslation != "" {
			if err := writeDiffCell(workbook, rowNum, 2, row.OriginalTranslation, row.FinalTranslation, styles, styles.insertFont); err != nil {
				return err
			}
			if row.RevisedTranslation != "" {
				if err := writeDiffCell(workbook, rowNum, 3, row.RevisedTranslation, row.FinalTranslation, styles, styles.revisedFnt); err != nil {
					return err
				}
			}
		}
	}

	widths := map[string]float64{
		"A": 45, "B": 45, "C": 45, "D": 45,
		"E": 9, "F": 15, "G": 40, "H": 28,
		"I": 14, "J": 24, "K": 18, "L": 7, "M": 28,
	}
	for column, width := range widths {
		if err := workbook.SetColWidth(verificationSheet, column, column, width); err != nil {
			return err
		}
	}

	lastRowCell, _ := excelize.CoordinatesToCellName(len(verificationHeaders), len(result.Rows)+1)
	if err := workbook.AutoFilter(verificationSheet, "A1:"+lastRowCell, nil); err != nil {
		return err
	}
	return workbook.SetPanes(verificationSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// writeDiffCell rewrites one translation cell as rich text, highlighting
// how it differs from the final translation. Deletions are struck red and
// insertions carry the stage's accent color. Case-only and
// punctuation-only changes diff at character level so the reader sees the
// exact runes.
func writeDiffCell(workbook *excelize.File, rowNum, colNum int, text, final string, styles *exportStyles, accent *excelize.Font) error {
	if text == final {
		return nil
	}
	var chunks []model.DiffChunk
	if diff.HasOnlyNonWordOrCaseChanges(text, final) {
		chunks = diff.DiffChars(text, final)
	} else {
		chunks = diff.DiffAuto(text, final)
	}

	runs := make([]excelize.RichTextRun, 0, len(chunks))
	for _, chunk := range chunks {
		switch chunk.Type {
		case model.ChunkEqual:
			runs = append(runs, excelize.RichTextRun{Text: chunk.Text})
		case model.ChunkDelete:
			runs = append(runs, excelize.RichTextRun{Text: chunk.Text, Font: styles.deleteFont})
		case model.ChunkInsert:
			runs = append(runs, excelize.RichTextRun{Text: chunk.Text, Font: accent})
		}
	}
	cell, _ := excelize.CoordinatesToCellName(colNum, rowNum)
	return workbook.SetCellRichText(verificationSheet, cell, runs)
}

func writeSummarySheet(workbook *excelize.File, result *VerificationResult, styles *exportStyles) error {
	if _, err := workbook.NewSheet(summarySheet); err != nil {
		return err
	}

	setCell := func(col, row int, value interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		return workbook.SetCellValue(summarySheet, cell, value)
	}

	if err := setCell(1, 1, "QA Verification Summary"); err != nil {
		return err
	}
	if err := setCell(1, 2, "Generated"); err != nil {
		return err
	}
	if err := setCell(2, 2, result.Timestamp.Format(time.DateTime)); err != nil {
		return err
	}

	statusRows := []string{StatusApplied, StatusNotApplied, StatusCannotVerify, StatusNotApplicable}
	row := 4
	for _, status := range statusRows {
		if err := setCell(1, row, status); err != nil {
			return err
		}
		if err := setCell(2, row, result.StatusCounts[status]); err != nil {
			return err
		}
		row++
	}
	if err := setCell(1, row, "Total rows"); err != nil {
		return err
	}
	if err := setCell(2, row, result.TotalRows); err != nil {
		return err
	}
	row += 2

	if len(result.FileSummaries) > 0 {
		fileHeaders := []string{"File", "QA Rows", "Applied", "Not Applied", "Cannot Verify", "Not Applicable", "Note"}
		for col, header := range fileHeaders {
			if err := setCell(col+1, row, header); err != nil {
				return err
			}
		}
		firstCell, _ := excelize.CoordinatesToCellName(1, row)
		lastCell, _ := excelize.CoordinatesToCellName(len(fileHeaders), row)
		if err := workbook.SetCellStyle(summarySheet, firstCell, lastCell, styles.header); err != nil {
			return err
		}
		row++

		for _, summary := range result.FileSummaries {
			values := []interface{}{
				summary.FileName,
				summary.QARows,
				summary.Applied,
				summary.NotApplied,
				summary.CannotVerify,
				summary.NotApplicable,
				fileSummaryNote(summary),
			}
			for col, value := range values {
				if err := setCell(col+1, row, value); err != nil {
					return err
				}
			}
			row++
		}
		row++
	}

	if len(result.Warnings) > 0 {
		if err := setCell(1, row, "Warnings"); err != nil {
			return err
		}
		row++
		for _, warning := range result.Warnings {
			if err := setCell(1, row, warning); err != nil {
				return err
			}
			row++
		}
	}

	if err := workbook.SetColWidth(summarySheet, "A", "A", 42); err != nil {
		return err
	}
	return workbook.SetColWidth(summarySheet, "B", "G", 14)
}

func fileSummaryNote(summary FileSummary) string {
	issues := summary.NotApplied + summary.CannotVerify
	switch {
	case summary.QARows == 0:
		return "No QA issues in report."
	case issues == 0:
		return "All QA issues were applied."
	default:
		return fmt.Sprintf("%d issue(s) require attention.", issues)
	}
}
