package services

import (
	"novalink-bot/config"
	"novalink-bot/models"
)

// Analyze runs language detection, intent classification, sentiment and the
// domain scan over one raw message. The result is produced fresh per call and
// is never mutated afterwards.
func Analyze(message, primaryLanguage string, kw *config.KeywordConfig) models.AnalysisResult {
	return models.AnalysisResult{
		Language:  DetectLanguage(message, primaryLanguage),
		Intent:    ClassifyIntent(message, kw),
		Sentiment: ClassifySentiment(message, kw),
		Domain:    DetectDomain(message, kw),
	}
}
