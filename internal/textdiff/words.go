package textdiff

import "unicode"

// TokenizeWords splits text into alternating runs of non-whitespace and
// whitespace so a word diff can reconstruct the original spacing.
func TokenizeWords(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	runes := []rune(text)
	start := 0
	inSpace := unicode.IsSpace(runes[0])

	for i := 1; i < len(runes); i++ {
		isSpace := unicode.IsSpace(runes[i])
		if isSpace != inSpace {
			tokens = append(tokens, string(runes[start:i]))
			start = i
			inSpace = isSpace
		}
	}
	tokens = append(tokens, string(runes[start:]))
	return tokens
}

// DiffWords diffs two prose strings at word granularity.
func (td *TextDiffer) DiffWords(text1, text2 string) *LineDiffResult {
	return td.DiffLines(TokenizeWords(text1), TokenizeWords(text2))
}
