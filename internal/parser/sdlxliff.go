package parser

import (
	"strconv"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// SdlXliffParser reads SDLXLIFF files. Segments come from mrk mtype="seg"
// markers paired across seg-source and target by mid, with confirmation
// metadata from seg-defs.
type SdlXliffParser struct{}

func (p *SdlXliffParser) Name() string         { return "SDLXLIFF Parser" }
func (p *SdlXliffParser) Extensions() []string { return []string{".sdlxliff"} }

func (p *SdlXliffParser) Parse(path string) (*model.ParsedDocument, error) {
	root, err := parseXMLFile(path)
	if err != nil {
		return nil, model.NewParseError(path, err)
	}

	var segments []*model.Segment
	for _, unit := range root.findAll("trans-unit") {
		segSource := unit.find("seg-source")
		if segSource == nil {
			continue
		}
		sourceMrks := segMarkers(segSource)

		targetMap := map[string]*xmlNode{}
		if target := unit.find("target"); target != nil {
			for _, mrk := range segMarkers(target) {
				if mid := mrk.attr("mid"); mid != "" {
					targetMap[mid] = mrk
				}
			}
		}

		segMeta := map[string]map[string]model.MetaValue{}
		if defs := unit.find("seg-defs"); defs != nil {
			for _, seg := range defs.findAll("seg") {
				segID := seg.attr("id")
				if segID == "" {
					continue
				}
				meta := map[string]model.MetaValue{}
				for name, value := range seg.attrs {
					if name != "id" {
						meta[name] = model.MetaStr(value)
					}
				}
				segMeta[segID] = meta
			}
		}

		for index, mrk := range sourceMrks {
			mid := mrk.attr("mid")
			if mid == "" {
				mid = strconv.Itoa(index + 1)
			}
			sourceText := decodeHTMLEntities(mrk.innerText())
			targetText := ""
			if targetMrk := targetMap[mid]; targetMrk != nil {
				targetText = decodeHTMLEntities(targetMrk.innerText())
			}
			segments = append(segments, &model.Segment{
				ID:     mid,
				Source: sourceText,
				Target: targetText,
				Context: model.SegmentContext{
					FilePath: path,
					Location: mid,
					Position: len(segments) + 1,
				},
				Metadata: segMeta[mid],
			})
		}
	}

	return &model.ParsedDocument{
		Segments:   segments,
		FormatName: "SDLXLIFF",
		FilePath:   path,
	}, nil
}

func (p *SdlXliffParser) Validate(path string) []string {
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

func segMarkers(node *xmlNode) []*xmlNode {
	var mrks []*xmlNode
	for _, mrk := range node.findAll("mrk") {
		if mrk.attr("mtype") == "seg" {
			mrks = append(mrks, mrk)
		}
	}
	return mrks
}
