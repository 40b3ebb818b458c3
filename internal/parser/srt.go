package parser

import (
	"os"
	"strings"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// SrtParser reads SubRip subtitle files: blank-line separated blocks of a
// sequence line, a time line and the subtitle text.
type SrtParser struct{}

func (p *SrtParser) Name() string         { return "SRT Parser" }
func (p *SrtParser) Extensions() []string { return []string{".srt"} }

func (p *SrtParser) Parse(path string) (*model.ParsedDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	text := strings.TrimPrefix(string(raw), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var segments []*model.Segment
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) < 2 {
			continue
		}
		subtitleID := strings.TrimSpace(lines[0])
		timecode := strings.TrimSpace(lines[1])
		target := strings.Join(lines[2:], "\n")

		start, end := "", ""
		if before, after, found := strings.Cut(timecode, "-->"); found {
			start = strings.TrimSpace(before)
			end = strings.TrimSpace(after)
		}

		segments = append(segments, &model.Segment{
			ID:     subtitleID,
			Target: target,
			Context: model.SegmentContext{
				FilePath: path,
				Location: subtitleID,
				Position: len(segments) + 1,
			},
			Metadata: map[string]model.MetaValue{
				"start": model.MetaStr(start),
				"end":   model.MetaStr(end),
			},
		})
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "SubRip",
		FilePath:   path,
		Encoding:   "utf-8",
	}, nil
}

func (p *SrtParser) Validate(path string) []string {
	var problems []string
	if _, err := os.ReadFile(path); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}
