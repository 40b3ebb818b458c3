package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

func reconstruct(chunks []model.DiffChunk) (before, after string) {
	for _, chunk := range chunks {
		switch chunk.Type {
		case model.ChunkEqual:
			before += chunk.Text
			after += chunk.Text
		case model.ChunkDelete:
			before += chunk.Text
		case model.ChunkInsert:
			after += chunk.Text
		}
	}
	return before, after
}

func assertCoalesced(t *testing.T, chunks []model.DiffChunk) {
	t.Helper()
	for i := 1; i < len(chunks); i++ {
		assert.NotEqual(t, chunks[i-1].Type, chunks[i].Type,
			"consecutive chunks %d and %d share type %s", i-1, i, chunks[i].Type)
	}
}

func TestDiffWordsEqualText(t *testing.T) {
	chunks := DiffWords("same text", "same text")
	require.Len(t, chunks, 1)
	assert.Equal(t, model.ChunkEqual, chunks[0].Type)
	assert.Equal(t, "same text", chunks[0].Text)
}

func TestDiffWordsCaseOnlyWordUsesCharDiff(t *testing.T) {
	chunks := DiffWords("Hello world", "hello world")

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkDelete, Text: "H"},
		{Type: model.ChunkInsert, Text: "h"},
		{Type: model.ChunkEqual, Text: "ello world"},
	}, chunks)
}

func TestDiffWordsDifferentWordIsWholeTokenReplace(t *testing.T) {
	chunks := DiffWords("молоко", "болото")

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkDelete, Text: "молоко"},
		{Type: model.ChunkInsert, Text: "болото"},
	}, chunks)
}

func TestDiffWordsAddedWhitespaceIsOwnInsert(t *testing.T) {
	chunks := DiffWords("Hello world", "Hello  world")

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkEqual, Text: "Hello "},
		{Type: model.ChunkInsert, Text: " "},
		{Type: model.ChunkEqual, Text: "world"},
	}, chunks)
}

func TestDiffWordsPunctuationSwap(t *testing.T) {
	chunks := DiffWords("Hello, world", "Hello! world")

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkEqual, Text: "Hello"},
		{Type: model.ChunkDelete, Text: ","},
		{Type: model.ChunkInsert, Text: "!"},
		{Type: model.ChunkEqual, Text: " world"},
	}, chunks)
}

func TestDiffWordsRoundTrip(t *testing.T) {
	cases := []struct{ a, b string }{
		{"the quick brown fox", "the slow brown fox"},
		{"Hello, world", "hello world!"},
		{"", "brand new"},
		{"gone now", ""},
		{"une pomme verte", "une pomme rouge"},
	}
	for _, tc := range cases {
		chunks := DiffWords(tc.a, tc.b)
		before, after := reconstruct(chunks)
		assert.Equal(t, tc.a, before, "before reconstruction for %q -> %q", tc.a, tc.b)
		assert.Equal(t, tc.b, after, "after reconstruction for %q -> %q", tc.a, tc.b)
		assertCoalesced(t, chunks)
	}
}

func TestDiffAutoMultiLineDescendsToWords(t *testing.T) {
	a := "line one\nline two\nline three"
	b := "line one\nline 2\nline three"

	chunks := DiffAuto(a, b)

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkEqual, Text: "line one\nline "},
		{Type: model.ChunkDelete, Text: "two"},
		{Type: model.ChunkInsert, Text: "2"},
		{Type: model.ChunkEqual, Text: "\nline three\n"},
	}, chunks)
}

func TestDiffAutoSingleLineMatchesDiffWords(t *testing.T) {
	a, b := "short sentence here", "short phrase here"
	assert.Equal(t, DiffWords(a, b), DiffAuto(a, b))
}

func TestDiffCharsSimple(t *testing.T) {
	chunks := DiffChars("Hello", "hello")

	require.Equal(t, []model.DiffChunk{
		{Type: model.ChunkDelete, Text: "H"},
		{Type: model.ChunkInsert, Text: "h"},
		{Type: model.ChunkEqual, Text: "ello"},
	}, chunks)
}

func TestHasOnlyNonWordOrCaseChanges(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Hello, world", "hello world", true},
		{"one two three", "one  two   three!", true},
		{"cat", "dog", false},
		{"a b", "a b c", false},
		{"", "", true},
		{"...", "!!!", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasOnlyNonWordOrCaseChanges(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityRatio("same", "same"))
	assert.Equal(t, 1.0, SimilarityRatio("", ""))
	assert.Equal(t, 0.0, SimilarityRatio("text", ""))
	assert.InDelta(t, 1.0-3.0/7.0, SimilarityRatio("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 1.0-1.0/6.0, SimilarityRatio("молоко", "молока"), 1e-9)
}
