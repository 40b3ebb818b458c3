package parser

import (
	"strconv"
	"strings"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// MemoQParser reads MemoQ bilingual XLIFF (.mqxliff). Extraction follows
// the XLIFF 1.x trans-unit shape plus MemoQ-specific metadata: status
// attributes, structural context and notes.
type MemoQParser struct{}

func (p *MemoQParser) Name() string         { return "MemoQ XLIFF Parser" }
func (p *MemoQParser) Extensions() []string { return []string{".mqxliff"} }

var memoqUnitAttrs = map[string]bool{
	"status":               true,
	"segmentguid":          true,
	"lastchanginguser":     true,
	"lastchangedtimestamp": true,
}

func (p *MemoQParser) Parse(path string) (*model.ParsedDocument, error) {
	root, err := parseXMLFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	var segments []*model.Segment
	for index, unit := range root.findAll("trans-unit") {
		unitID := unit.attr("id")
		if unitID == "" {
			unitID = strconv.Itoa(index + 1)
		}
		source, _ := unit.firstChildText("source")
		target, _ := unit.firstChildText("target")

		metadata := map[string]model.MetaValue{}
		for name, value := range unit.attrs {
			if memoqUnitAttrs[name] {
				metadata[name] = model.MetaStr(value)
			}
		}
		for _, ctx := range unit.findAll("context") {
			if ctx.attr("context-type") == "x-mmq-structural-context" {
				metadata["context"] = model.MetaStr(decodeHTMLEntities(strings.TrimSpace(ctx.innerText())))
				break
			}
		}
		if note := unit.find("note"); note != nil {
			metadata["note"] = model.MetaStr(decodeHTMLEntities(strings.TrimSpace(note.innerText())))
		}

		segments = append(segments, &model.Segment{
			ID:     unitID,
			Source: source,
			Target: target,
			Context: model.SegmentContext{
				FilePath: path,
				Location: unitID,
				Position: len(segments) + 1,
			},
			Metadata: metadata,
		})
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "MemoQ XLIFF",
		FilePath:   path,
	}, nil
}

func (p *MemoQParser) Validate(path string) []string {
	var problems []string
	root, err := parseXMLFile(path)
	if err != nil {
		return append(problems, err.Error())
	}
	if root.name != "xliff" {
		problems = append(problems, "root element is not xliff")
	}
	return problems
}
