package services

import (
	"strings"

	"novalink-bot/config"
)

// maximum concepts reported per reply
const maxConcepts = 8

// FormatReply converts raw newlines to the <br> marker the chat widget
// renders. Everything else passes through unchanged.
func FormatReply(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

// ExtractConcepts pulls the distinct stopword-filtered tokens out of a reply,
// in order of first appearance.
func ExtractConcepts(text, lang string, kw *config.KeywordConfig) []string {
	tokens := FilterStopwords(Tokenize(text), lang, kw)

	seen := make(map[string]struct{}, len(tokens))
	concepts := make([]string, 0, maxConcepts)
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		concepts = append(concepts, t)
		if len(concepts) == maxConcepts {
			break
		}
	}
	return concepts
}
