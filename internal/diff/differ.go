// Package diff implements the segment matching and token diff engine:
// word/character-level text diffs, fuzzy segment correspondence and the
// comparison orchestration that turns two parsed documents into a
// reviewable change list.
package diff

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// tokenPattern splits text into word runs, single non-word non-space
// characters and single whitespace characters. Whitespace stays its own
// diffable unit so an added space surfaces as its own INSERT.
var (
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]|\s`)
	wordPattern  = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)
)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

func isWord(token string) bool {
	return wordPattern.MatchString(token)
}

// appendChunk adds text to the chunk list, merging into the previous chunk
// when the type repeats. The emitted list never contains two consecutive
// chunks of the same type.
func appendChunk(chunks []model.DiffChunk, chunkType model.ChunkType, text string) []model.DiffChunk {
	if text == "" {
		return chunks
	}
	if n := len(chunks); n > 0 && chunks[n-1].Type == chunkType {
		chunks[n-1].Text += text
		return chunks
	}
	return append(chunks, model.DiffChunk{Type: chunkType, Text: text})
}

// DiffWords produces a word-level diff of a and b.
func DiffWords(a, b string) []model.DiffChunk {
	aTokens := tokenize(a)
	bTokens := tokenize(b)
	matcher := difflib.NewMatcher(aTokens, bTokens)

	var chunks []model.DiffChunk
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			chunks = appendChunk(chunks, model.ChunkEqual, strings.Join(aTokens[op.I1:op.I2], ""))
		case 'd':
			chunks = appendChunk(chunks, model.ChunkDelete, strings.Join(aTokens[op.I1:op.I2], ""))
		case 'i':
			chunks = appendChunk(chunks, model.ChunkInsert, strings.Join(bTokens[op.J1:op.J2], ""))
		case 'r':
			chunks = appendReplaceChunks(chunks, aTokens[op.I1:op.I2], bTokens[op.J1:op.J2])
		}
	}
	return chunks
}

// appendReplaceChunks resolves a replace opcode token by token. Same-word
// case changes recurse into a character diff; everything else is a whole
// token delete plus insert, so a replaced word never renders as a
// character scramble.
func appendReplaceChunks(chunks []model.DiffChunk, tokensA, tokensB []string) []model.DiffChunk {
	common := len(tokensA)
	if len(tokensB) < common {
		common = len(tokensB)
	}
	for i := 0; i < common; i++ {
		tokenA, tokenB := tokensA[i], tokensB[i]
		if tokenA == tokenB {
			chunks = appendChunk(chunks, model.ChunkEqual, tokenA)
			continue
		}
		if isWord(tokenA) && isWord(tokenB) && strings.EqualFold(tokenA, tokenB) {
			for _, chunk := range DiffChars(tokenA, tokenB) {
				chunks = appendChunk(chunks, chunk.Type, chunk.Text)
			}
			continue
		}
		chunks = appendChunk(chunks, model.ChunkDelete, tokenA)
		chunks = appendChunk(chunks, model.ChunkInsert, tokenB)
	}
	for _, token := range tokensA[common:] {
		chunks = appendChunk(chunks, model.ChunkDelete, token)
	}
	for _, token := range tokensB[common:] {
		chunks = appendChunk(chunks, model.ChunkInsert, token)
	}
	return chunks
}

// DiffChars produces a character-level diff with semantic cleanup.
func DiffChars(a, b string) []model.DiffChunk {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var chunks []model.DiffChunk
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			chunks = appendChunk(chunks, model.ChunkEqual, d.Text)
		case diffmatchpatch.DiffDelete:
			chunks = appendChunk(chunks, model.ChunkDelete, d.Text)
		case diffmatchpatch.DiffInsert:
			chunks = appendChunk(chunks, model.ChunkInsert, d.Text)
		}
	}
	return chunks
}

// DiffAuto diffs multi-line text line by line before descending to words,
// so a one-word edit inside a large block does not render as a full
// delete plus insert of every line. Single-line text goes straight to the
// word diff.
func DiffAuto(a, b string) []model.DiffChunk {
	if strings.Contains(a, "\n") || strings.Contains(b, "\n") {
		return diffLinesThenWords(a, b)
	}
	return DiffWords(a, b)
}

func diffLinesThenWords(a, b string) []model.DiffChunk {
	aLines := splitLines(a)
	bLines := splitLines(b)
	matcher := difflib.NewMatcher(aLines, bLines)

	var chunks []model.DiffChunk
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			chunks = appendChunk(chunks, model.ChunkEqual, strings.Join(aLines[op.I1:op.I2], ""))
		case 'd':
			chunks = appendChunk(chunks, model.ChunkDelete, strings.Join(aLines[op.I1:op.I2], ""))
		case 'i':
			chunks = appendChunk(chunks, model.ChunkInsert, strings.Join(bLines[op.J1:op.J2], ""))
		case 'r':
			chunks = diffReplaceLines(chunks, aLines[op.I1:op.I2], bLines[op.J1:op.J2])
		}
	}
	return chunks
}

// diffReplaceLines pairs replaced lines index by index and word-diffs each
// pair; leftover lines on either side become straight deletes or inserts.
func diffReplaceLines(chunks []model.DiffChunk, oldLines, newLines []string) []model.DiffChunk {
	common := len(oldLines)
	if len(newLines) < common {
		common = len(newLines)
	}
	for i := 0; i < common; i++ {
		for _, chunk := range DiffWords(oldLines[i], newLines[i]) {
			chunks = appendChunk(chunks, chunk.Type, chunk.Text)
		}
	}
	for _, line := range oldLines[common:] {
		chunks = appendChunk(chunks, model.ChunkDelete, line)
	}
	for _, line := range newLines[common:] {
		chunks = appendChunk(chunks, model.ChunkInsert, line)
	}
	return chunks
}

// splitLines splits normalized text into lines, each keeping its trailing
// newline. The final line gets one too, so equal last lines compare equal
// regardless of a trailing newline in the input.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if last := parts[len(parts)-1]; !strings.HasSuffix(last, "\n") {
		parts[len(parts)-1] = last + "\n"
	}
	return parts
}

// HasOnlyNonWordOrCaseChanges reports whether a and b differ only in
// whitespace, punctuation and/or letter case: their case-folded word-token
// projections are identical.
func HasOnlyNonWordOrCaseChanges(a, b string) bool {
	wordsA := lowerWordTokens(a)
	wordsB := lowerWordTokens(b)
	if len(wordsA) != len(wordsB) {
		return false
	}
	for i := range wordsA {
		if wordsA[i] != wordsB[i] {
			return false
		}
	}
	return true
}

func lowerWordTokens(text string) []string {
	var words []string
	for _, token := range tokenize(text) {
		if isWord(token) {
			words = append(words, strings.ToLower(token))
		}
	}
	return words
}
