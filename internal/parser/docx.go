package parser

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// DocxParser reads Word documents, one segment per non-empty paragraph.
type DocxParser struct{}

func (p *DocxParser) Name() string         { return "DOCX Parser" }
func (p *DocxParser) Extensions() []string { return []string{".docx"} }

func (p *DocxParser) Parse(path string) (*model.ParsedDocument, error) {
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}
	defer reader.Close()

	root, err := parseXML(strings.NewReader(reader.Editable().GetContent()))
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	var segments []*model.Segment
	for index, para := range root.findAll("p") {
		text := paragraphText(para)
		if strings.TrimSpace(text) == "" {
			continue
		}
		segmentID := fmt.Sprintf("para_%d", index+1)
		segment := &model.Segment{
			ID:     segmentID,
			Target: text,
			Context: model.SegmentContext{
				FilePath: path,
				Location: fmt.Sprintf("Paragraph %d", index+1),
				Position: len(segments) + 1,
			},
		}
		if style := paragraphStyle(para); style != "" {
			segment.Metadata = map[string]model.MetaValue{"style": model.MetaStr(style)}
		}
		segments = append(segments, segment)
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "Word Document",
		FilePath:   path,
	}, nil
}

func (p *DocxParser) Validate(path string) []string {
	var problems []string
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return append(problems, err.Error())
	}
	reader.Close()
	return problems
}

// paragraphText joins the text runs of one w:p element, rendering explicit
// tabs and line breaks.
func paragraphText(para *xmlNode) string {
	var sb strings.Builder
	var walk func(node *xmlNode)
	walk = func(node *xmlNode) {
		switch node.name {
		case "t":
			sb.WriteString(node.innerText())
			return
		case "tab":
			sb.WriteString("\t")
		case "br":
			sb.WriteString("\n")
		}
		for _, child := range node.children {
			walk(child)
		}
	}
	for _, child := range para.children {
		walk(child)
	}
	return sb.String()
}

func paragraphStyle(para *xmlNode) string {
	if props := para.find("pPr"); props != nil {
		if style := props.find("pStyle"); style != nil {
			return style.attr("val")
		}
	}
	return ""
}
