package parser

import (
	"strconv"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// XliffParser reads XLIFF 1.x trans-units, falling back to the XLIFF 2.x
// unit/segment structure when no trans-unit is present.
type XliffParser struct{}

func (p *XliffParser) Name() string         { return "XLIFF Parser" }
func (p *XliffParser) Extensions() []string { return []string{".xliff", ".xlf"} }
func (p *XliffParser) formatName() string   { return "XLIFF" }

func (p *XliffParser) Parse(path string) (*model.ParsedDocument, error) {
	root, err := parseXMLFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	var segments []*model.Segment
	appendSegment := func(id, source, target string) {
		segments = append(segments, &model.Segment{
			ID:     id,
			Source: source,
			Target: target,
			Context: model.SegmentContext{
				FilePath: path,
				Location: id,
				Position: len(segments) + 1,
			},
		})
	}

	transUnits := root.findAll("trans-unit")
	if len(transUnits) > 0 {
		for index, unit := range transUnits {
			unitID := unit.attr("id")
			if unitID == "" {
				unitID = strconv.Itoa(index + 1)
			}
			source, _ := unit.firstChildText("source")
			target, _ := unit.firstChildText("target")
			appendSegment(unitID, source, target)
		}
	} else {
		for _, unit := range root.findAll("unit") {
			unitID := unit.attr("id")
			unitSegments := unit.findAll("segment")
			if len(unitSegments) > 0 {
				for index, seg := range unitSegments {
					segID := seg.attr("id")
					if segID == "" {
						segID = unitID
					}
					if segID == "" {
						segID = strconv.Itoa(index + 1)
					}
					finalID := segID
					if unitID != "" && seg.attr("id") != "" {
						finalID = unitID + ":" + segID
					}
					source, _ := seg.firstChildText("source")
					target, _ := seg.firstChildText("target")
					appendSegment(finalID, source, target)
				}
			} else if unitID != "" {
				source, _ := unit.firstChildText("source")
				target, _ := unit.firstChildText("target")
				appendSegment(unitID, source, target)
			}
		}
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: p.formatName(),
		FilePath:   path,
	}, nil
}

func (p *XliffParser) Validate(path string) []string {
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
