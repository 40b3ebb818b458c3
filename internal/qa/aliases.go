package qa

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Logical header fields, in mapping priority order: required fields claim
// their columns before optional ones.
const (
	fieldSource    = "source"
	fieldOriginal  = "original"
	fieldRevised   = "revised"
	fieldQAMark    = "qa_mark"
	fieldSegmentID = "segment_id"
	fieldFilename  = "filename"
)

var mappingFieldOrder = []string{
	fieldSource,
	fieldOriginal,
	fieldQAMark,
	fieldRevised,
	fieldSegmentID,
	fieldFilename,
}

var requiredFields = []string{fieldSource, fieldOriginal, fieldQAMark}

//go:embed aliases.yaml
var aliasData []byte

// headerAliases maps each logical field to its known header spellings
// (English and Russian), loaded once at init.
var headerAliases = loadAliases()

func loadAliases() map[string][]string {
	var aliases map[string][]string
	if err := yaml.Unmarshal(aliasData, &aliases); err != nil {
		panic(fmt.Sprintf("qa: bad embedded alias table: %v", err))
	}
	for _, field := range mappingFieldOrder {
		if len(aliases[field]) == 0 {
			panic(fmt.Sprintf("qa: alias table missing field %q", field))
		}
	}
	return aliases
}
