package analyze

import (
	"strings"
	"unicode"
)

// Baseline Russian stop words merged into whatever the config supplies.
// Short grammatical words that dominate every vacancy description.
var baselineStopWords = []string{
	"это", "как", "так", "для", "или", "все", "что", "быть",
	"мочь", "год", "его", "весь", "наш", "свой", "один",
	"который", "если", "может", "также", "более",
	"чтобы", "можно", "либо", "рамках", "должен",
}

// tokenLetter reports whether r may start or end a token: Cyrillic or
// Latin lowercase letter (input is lower-cased before scanning).
func tokenLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'а' && r <= 'я') || r == 'ё'
}

// wordRune mirrors the \w class the original word pattern was built on:
// any letter or digit, plus underscore.
func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize lower-cases text and extracts candidate words: runs of word
// characters and hyphens that start and end with a Cyrillic/Latin letter,
// or a single standalone letter. A rune scanner is used instead of a
// regexp because regexp's \b is ASCII-only and misfires on Cyrillic.
// Tokens shorter than the configured minimum, purely numeric tokens and
// stop words are dropped. Order and duplicates are preserved.
func (a *Analyzer) Tokenize(text string) []string {
	runes := []rune(strings.ToLower(text))

	var tokens []string
	for i := 0; i < len(runes); i++ {
		if !tokenLetter(runes[i]) {
			continue
		}
		// Token may only start at a word boundary.
		if i > 0 && wordRune(runes[i-1]) {
			continue
		}

		// Extend over the maximal run of word chars and hyphens, then
		// trim back to the last letter that sits on a word boundary.
		j := i
		for j < len(runes) && (wordRune(runes[j]) || runes[j] == '-') {
			j++
		}
		end := -1
		for k := j - 1; k >= i; k-- {
			if !tokenLetter(runes[k]) {
				continue
			}
			if k+1 < len(runes) && wordRune(runes[k+1]) {
				continue
			}
			end = k
			break
		}
		if end < 0 {
			// No valid end inside this run; resume the boundary scan
			// from the next position (a later hyphen may open one).
			continue
		}

		tok := string(runes[i : end+1])
		if a.keepToken(tok) {
			tokens = append(tokens, tok)
		}
		i = end
	}
	return tokens
}

func (a *Analyzer) keepToken(tok string) bool {
	if len([]rune(tok)) < a.minWordLength {
		return false
	}
	if _, stop := a.stopWords[tok]; stop {
		return false
	}
	return !numeric(tok)
}

func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
