package services

import (
	"novalink-bot/config"
	"novalink-bot/models"
)

// ClassifySentiment scores the message against the positive and negative
// keyword lists with the same formula the intent fallback uses. Both scores
// zero means NEUTRAL; ties favor POSITIVE.
func ClassifySentiment(message string, kw *config.KeywordConfig) models.SentimentResult {
	text := Normalize(message)

	posScore := GroupScore(text, kw.PositiveKeywords)
	negScore := GroupScore(text, kw.NegativeKeywords)

	if posScore == 0 && negScore == 0 {
		return models.SentimentResult{Label: models.SentimentNeutral, Score: 0}
	}

	if posScore >= negScore {
		return models.SentimentResult{Label: models.SentimentPositive, Score: posScore}
	}
	return models.SentimentResult{Label: models.SentimentNegative, Score: negScore}
}
