package parser

import (
	"os"
	"strconv"
	"strings"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// TxtParser reads plain text files, one segment per line.
type TxtParser struct{}

func (p *TxtParser) Name() string         { return "TXT Parser" }
func (p *TxtParser) Extensions() []string { return []string{".txt"} }

func (p *TxtParser) Parse(path string) (*model.ParsedDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	text := strings.TrimPrefix(string(raw), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	var segments []*model.Segment
	if text != "" || len(raw) > 0 {
		for index, line := range strings.Split(text, "\n") {
			segmentID := strconv.Itoa(index + 1)
			segments = append(segments, &model.Segment{
				ID:     segmentID,
				Target: line,
				Context: model.SegmentContext{
					FilePath: path,
					Location: segmentID,
					Position: index + 1,
				},
			})
		}
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "Plain Text",
		FilePath:   path,
		Encoding:   "utf-8",
	}, nil
}

func (p *TxtParser) Validate(path string) []string {
	var problems []string
	if _, err := os.ReadFile(path); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}
