package qa

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Characters folded before text comparison: no-break space variants to a
// plain space, apostrophe variants to the ASCII apostrophe.
var (
	nbspReplacer = strings.NewReplacer(
		" ", " ",
		" ", " ",
		" ", " ",
	)
	apostropheReplacer = strings.NewReplacer(
		"’", "'",
		"‘", "'",
		"ʼ", "'",
		"`", "'",
		"´", "'",
		"′", "'",
	)
	spaceCollapse   = regexp.MustCompile(`\s+`)
	nonWordPattern  = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	parenNumSuffix  = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	parenCopySuffix = regexp.MustCompile(`(?i)\s*\(copy(?:\s*\d+)?\)\s*$`)
	plainCopySuffix = regexp.MustCompile(`(?i)\s*[-_ ]copy(?:[-_ ]\d+)?\s*$`)
)

// normalizeForCompare applies NFKC, folds NBSP and apostrophe variants,
// normalizes newlines and trims.
func normalizeForCompare(value string) string {
	text := norm.NFKC.String(value)
	text = nbspReplacer.Replace(text)
	text = apostropheReplacer.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

func normalizeSourceExact(value string) string {
	return normalizeForCompare(value)
}

// normalizeSourceNorm adds case folding and whitespace collapsing on top
// of the exact normalization.
func normalizeSourceNorm(value string) string {
	text := strings.ToLower(normalizeForCompare(value))
	return strings.TrimSpace(spaceCollapse.ReplaceAllString(text, " "))
}

// normalizeSourceCompact reduces text to its word characters only.
func normalizeSourceCompact(value string) string {
	return nonWordPattern.ReplaceAllString(normalizeSourceNorm(value), "")
}

func normalizeSegmentID(value string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(value)))
}

// normalizeQAMark reduces a free-form QA mark to TP or FP when it can. A
// token containing one of the two (and not the other) counts as that mark;
// anything else is returned as typed, upper-cased.
func normalizeQAMark(value string) string {
	text := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "")
	switch text {
	case "TP", "TRUEPOSITIVE":
		return "TP"
	case "FP", "FALSEPOSITIVE":
		return "FP"
	}
	hasTP := strings.Contains(text, "TP")
	hasFP := strings.Contains(text, "FP")
	if hasTP && !hasFP {
		return "TP"
	}
	if hasFP && !hasTP {
		return "FP"
	}
	return text
}

// normalizeHeader prepares a column header for alias scoring: NFKC,
// underscores and hyphens to spaces, whitespace collapsed, lower-cased.
func normalizeHeader(value string) string {
	text := norm.NFKC.String(value)
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.ReplaceAll(text, "-", " ")
	text = spaceCollapse.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// normalizeFileRef reduces a file reference from a QA report to a bare
// lower-cased file name: NFKC, quotes stripped, path components dropped.
func normalizeFileRef(value string) string {
	text := norm.NFKC.String(value)
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, `\`, "/")
	if idx := strings.LastIndex(text, "/"); idx >= 0 {
		text = text[idx+1:]
	}
	return strings.ToLower(text)
}

// stripCopySuffix removes file-manager duplication suffixes like " (1)",
// "(copy 2)" or "-copy-2" from a file stem, repeating until stable.
func stripCopySuffix(stem string) string {
	text := strings.TrimSpace(stem)
	if text == "" {
		return text
	}
	for {
		previous := text
		text = strings.TrimSpace(parenNumSuffix.ReplaceAllString(text, ""))
		text = strings.TrimSpace(parenCopySuffix.ReplaceAllString(text, ""))
		text = strings.TrimSpace(plainCopySuffix.ReplaceAllString(text, ""))
		if text == previous {
			break
		}
	}
	if text == "" {
		return stem
	}
	return text
}

// fileLookupKeys returns the lookup keys under which a file name can be
// found: the normalized name, its stem, the copy-suffix-stripped stem and
// that stem with the original extension.
func fileLookupKeys(rawFileName string) []string {
	normalized := normalizeFileRef(rawFileName)
	if normalized == "" {
		return nil
	}
	keys := map[string]bool{normalized: true}
	ext := strings.ToLower(filepath.Ext(normalized))
	stem := strings.TrimSuffix(normalized, ext)
	if stem != "" {
		keys[stem] = true
		canonical := stripCopySuffix(stem)
		keys[canonical] = true
		if ext != "" {
			keys[canonical+ext] = true
		}
	}
	ordered := make([]string, 0, len(keys))
	for key := range keys {
		ordered = append(ordered, key)
	}
	return ordered
}
