package services

import (
	"strings"
	"unicode"

	"novalink-bot/config"
)

// Normalize lowercases and trims a raw message. It never fails; empty or
// whitespace-only input yields the empty string.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Tokenize normalizes text, strips every rune that is not a Unicode letter
// or digit, splits on whitespace and drops empty tokens.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, Normalize(text))

	return strings.Fields(cleaned)
}

// FilterStopwords drops the stopwords of lang from tokens.
func FilterStopwords(tokens []string, lang string, kw *config.KeywordConfig) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if kw.IsStopword(t, lang) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// containsAny reports whether the normalized text contains any of the
// normalized keywords as a substring.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, Normalize(k)) {
			return true
		}
	}
	return false
}
