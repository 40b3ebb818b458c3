package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForCompare(t *testing.T) {
	assert.Equal(t, "hello world", normalizeForCompare("  hello\u00a0world  "))
	assert.Equal(t, "it's done", normalizeForCompare("it’s done"))
	assert.Equal(t, "a\nb", normalizeForCompare("a\r\nb"))
	assert.Equal(t, normalizeForCompare("ﬁn"), normalizeForCompare("fin"))
}

func TestNormalizeSourceKeys(t *testing.T) {
	assert.Equal(t, "Hello  World", normalizeSourceExact("Hello  World"))
	assert.Equal(t, "hello world", normalizeSourceNorm("  Hello \u00a0 WORLD "))
	assert.Equal(t, "helloworld", normalizeSourceCompact("Hello, world!"))
	assert.Equal(t, "", normalizeSourceCompact("  ... !!! "))
}

func TestNormalizeQAMark(t *testing.T) {
	cases := []struct{ in, want string }{
		{"TP", "TP"},
		{" tp ", "TP"},
		{"True Positive", "TP"},
		{"FP", "FP"},
		{"false positive", "FP"},
		{"TP (minor)", "TP"},
		{"fp - style", "FP"},
		{"TP/FP", "TP/FP"},
		{"kudos", "KUDOS"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeQAMark(tc.in), "mark %q", tc.in)
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "source text", normalizeHeader("Source_Text"))
	assert.Equal(t, "qa mark", normalizeHeader("  QA-Mark "))
	assert.Equal(t, "исходный текст", normalizeHeader("Исходный   текст"))
}

func TestNormalizeFileRef(t *testing.T) {
	assert.Equal(t, "report.sdlxliff", normalizeFileRef(`C:\Work\Project\Report.sdlxliff`))
	assert.Equal(t, "file.xlf", normalizeFileRef(`"file.xlf"`))
	assert.Equal(t, "doc.xliff", normalizeFileRef("deep/path/to/Doc.XLIFF"))
	assert.Equal(t, "", normalizeFileRef("   "))
}

func TestStripCopySuffix(t *testing.T) {
	cases := []struct{ in, want string }{
		{"report (1)", "report"},
		{"report (copy 2)", "report"},
		{"report-copy-2", "report"},
		{"report_copy", "report"},
		{"report (1) (copy)", "report"},
		{"plain name", "plain name"},
		{"(1)", "(1)"}, // stripping everything falls back to the input
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCopySuffix(tc.in), "stem %q", tc.in)
	}
}

func TestFileLookupKeys(t *testing.T) {
	keys := fileLookupKeys("Report (1).sdlxliff")

	assert.ElementsMatch(t, []string{
		"report (1).sdlxliff",
		"report (1)",
		"report",
		"report.sdlxliff",
	}, keys)

	assert.Empty(t, fileLookupKeys("  "))
}
