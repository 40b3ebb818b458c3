package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestForFileUnsupportedExtension(t *testing.T) {
	_, err := ForFile("presentation.pptx")

	var unsupported *model.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".pptx", unsupported.Extension)
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()

	assert.Contains(t, exts, ".sdlxliff")
	assert.Contains(t, exts, ".xliff")
	assert.Contains(t, exts, ".mqxliff")
	assert.Contains(t, exts, ".srt")
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".docx")
	assert.Contains(t, exts, ".xlsx")
	assert.IsIncreasing(t, exts)
}

func TestTxtParser(t *testing.T) {
	path := writeFile(t, "sample.txt", "first line\r\nsecond line\nthird line\n")

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Plain Text", doc.FormatName)
	require.Equal(t, 3, doc.SegmentCount())
	assert.Equal(t, "1", doc.Segments[0].ID)
	assert.Equal(t, "first line", doc.Segments[0].Target)
	assert.Equal(t, "third line", doc.Segments[2].Target)
	assert.Equal(t, 3, doc.Segments[2].Context.Position)
	assert.Empty(t, doc.Segments[0].Source)
}

func TestSrtParser(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:03,000\nHello there.\n\n" +
		"2\n00:00:04,000 --> 00:00:06,500\nSecond subtitle\nwith two lines.\n"
	path := writeFile(t, "sample.srt", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "SubRip", doc.FormatName)
	require.Equal(t, 2, doc.SegmentCount())
	assert.Equal(t, "1", doc.Segments[0].ID)
	assert.Equal(t, "Hello there.", doc.Segments[0].Target)
	assert.Equal(t, "00:00:01,000", doc.Segments[0].Metadata["start"].String())
	assert.Equal(t, "00:00:03,000", doc.Segments[0].Metadata["end"].String())
	assert.Equal(t, "Second subtitle\nwith two lines.", doc.Segments[1].Target)
}

func TestXliff12Parser(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">
  <file source-language="en" target-language="fr" original="demo.txt" datatype="plaintext">
    <body>
      <trans-unit id="tu1">
        <source>Hello world</source>
        <target>Bonjour le monde</target>
      </trans-unit>
      <trans-unit id="tu2">
        <source>Goodbye</source>
        <target>Au revoir</target>
      </trans-unit>
    </body>
  </file>
</xliff>`
	path := writeFile(t, "sample.xliff", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "XLIFF", doc.FormatName)
	require.Equal(t, 2, doc.SegmentCount())
	assert.Equal(t, "tu1", doc.Segments[0].ID)
	assert.Equal(t, "Hello world", doc.Segments[0].Source)
	assert.Equal(t, "Bonjour le monde", doc.Segments[0].Target)
	assert.Equal(t, "tu2", doc.Segments[1].ID)

	assert.Empty(t, (&XliffParser{}).Validate(path))
}

func TestXliff20UnitSegments(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<xliff version="2.0" xmlns="urn:oasis:names:tc:xliff:document:2.0" srcLang="en" trgLang="de">
  <file id="f1">
    <unit id="u1">
      <segment id="s1">
        <source>First</source>
        <target>Erste</target>
      </segment>
      <segment id="s2">
        <source>Second</source>
        <target>Zweite</target>
      </segment>
    </unit>
  </file>
</xliff>`
	path := writeFile(t, "sample.xlf", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	require.Equal(t, 2, doc.SegmentCount())
	assert.Equal(t, "u1:s1", doc.Segments[0].ID)
	assert.Equal(t, "Erste", doc.Segments[0].Target)
	assert.Equal(t, "u1:s2", doc.Segments[1].ID)
}

func TestSdlXliffParser(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2" xmlns:sdl="http://sdl.com/FileTypes/SdlXliff/1.0">
  <file source-language="en-US" target-language="fr-FR" original="demo.docx" datatype="x-sdlfilterframework2">
    <body>
      <trans-unit id="unit1">
        <source>Hello &amp; welcome. How are you?</source>
        <seg-source>
          <mrk mtype="seg" mid="1">Hello &amp; welcome.</mrk>
          <mrk mtype="seg" mid="2">How are you?</mrk>
        </seg-source>
        <target>
          <mrk mtype="seg" mid="1">Bonjour et bienvenue.</mrk>
          <mrk mtype="seg" mid="2">Comment allez-vous ?</mrk>
        </target>
        <sdl:seg-defs>
          <sdl:seg id="1" conf="Translated" origin="interactive"/>
          <sdl:seg id="2" conf="Draft" origin="tm" percent="98"/>
        </sdl:seg-defs>
      </trans-unit>
    </body>
  </file>
</xliff>`
	path := writeFile(t, "sample.sdlxliff", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "SDLXLIFF", doc.FormatName)
	require.Equal(t, 2, doc.SegmentCount())

	first := doc.Segments[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Hello & welcome.", first.Source)
	assert.Equal(t, "Bonjour et bienvenue.", first.Target)
	assert.Equal(t, "Translated", first.Metadata["conf"].String())

	second := doc.Segments[1]
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "Comment allez-vous ?", second.Target)
	assert.Equal(t, "Draft", second.Metadata["conf"].String())
	assert.Equal(t, "98", second.Metadata["percent"].String())
}

func TestSdlXliffMissingTargetSegment(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<xliff version="1.2">
  <file>
    <body>
      <trans-unit id="unit1">
        <seg-source><mrk mtype="seg" mid="1">Untranslated text</mrk></seg-source>
      </trans-unit>
    </body>
  </file>
</xliff>`
	path := writeFile(t, "partial.sdlxliff", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	require.Equal(t, 1, doc.SegmentCount())
	assert.Equal(t, "Untranslated text", doc.Segments[0].Source)
	assert.Empty(t, doc.Segments[0].Target)
}

func TestMemoQParser(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2" xmlns:mq="MQXliff">
  <file source-language="en" target-language="ru" original="demo.docx" datatype="x-memoq">
    <body>
      <trans-unit id="1" mq:status="Confirmed" mq:segmentguid="abc-123">
        <source>Press the button.</source>
        <target>Нажмите кнопку.</target>
        <context-group>
          <context context-type="x-mmq-structural-context">Heading 1</context>
        </context-group>
        <note>Reviewed by linguist</note>
      </trans-unit>
    </body>
  </file>
</xliff>`
	path := writeFile(t, "sample.mqxliff", content)

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "MemoQ XLIFF", doc.FormatName)
	require.Equal(t, 1, doc.SegmentCount())

	seg := doc.Segments[0]
	assert.Equal(t, "1", seg.ID)
	assert.Equal(t, "Press the button.", seg.Source)
	assert.Equal(t, "Нажмите кнопку.", seg.Target)
	assert.Equal(t, "Confirmed", seg.Metadata["status"].String())
	assert.Equal(t, "abc-123", seg.Metadata["segmentguid"].String())
	assert.Equal(t, "Heading 1", seg.Metadata["context"].String())
	assert.Equal(t, "Reviewed by linguist", seg.Metadata["note"].String())
}

func TestXlsxParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetCellValue("Sheet1", "A1", "Header"))
	require.NoError(t, workbook.SetCellValue("Sheet1", "B2", "Cell text"))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	doc, err := ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Excel Workbook", doc.FormatName)
	require.Equal(t, 2, doc.SegmentCount())
	assert.Equal(t, "Sheet1!A1", doc.Segments[0].ID)
	assert.Equal(t, "Header", doc.Segments[0].Target)
	assert.Equal(t, "Sheet1!B2", doc.Segments[1].ID)
	assert.Equal(t, "Sheet1", doc.Segments[1].Context.Group)
	assert.Equal(t, "2", doc.Segments[1].Metadata["row"].String())
}

func TestXliffParseErrorOnBrokenXML(t *testing.T) {
	path := writeFile(t, "broken.xliff", "<xliff><unclosed>")

	_, err := ParseFile(path)

	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestXliffValidateWrongRoot(t *testing.T) {
	path := writeFile(t, "notxliff.xliff", "<html><body/></html>")

	problems := (&XliffParser{}).Validate(path)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "root element is not xliff")
}
