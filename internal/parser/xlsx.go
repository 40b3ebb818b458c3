package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// XlsxParser reads Excel workbooks, one segment per non-empty cell across
// all worksheets. Cell IDs use the Sheet!A1 form; the sheet name becomes
// the context group.
type XlsxParser struct{}

func (p *XlsxParser) Name() string         { return "XLSX Parser" }
func (p *XlsxParser) Extensions() []string { return []string{".xlsx"} }

func (p *XlsxParser) Parse(path string) (*model.ParsedDocument, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}
	defer workbook.Close()

	var segments []*model.Segment
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, model.NewParseError(path, err)
		}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if value == "" {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return nil, model.NewParseError(path, err)
				}
				cellID := fmt.Sprintf("%s!%s", sheet, cellName)
				segments = append(segments, &model.Segment{
					ID:     cellID,
					Target: value,
					Context: model.SegmentContext{
						FilePath: path,
						Location: cellID,
						Position: len(segments) + 1,
						Group:    sheet,
					},
					Metadata: map[string]model.MetaValue{
						"row":        model.MetaNum(float64(rowIdx + 1)),
						"column":     model.MetaNum(float64(colIdx + 1)),
						"sheet_name": model.MetaStr(sheet),
					},
				})
			}
		}
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "Excel Workbook",
		FilePath:   path,
	}, nil
}

func (p *XlsxParser) Validate(path string) []string {
	var problems []string
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return append(problems, err.Error())
	}
	workbook.Close()
	return problems
}
