package services

import (
	"strings"

	"novalink-bot/config"
	"novalink-bot/models"
)

// Intent IDs produced by the priority rules. The fallback groups carry their
// own IDs in the keyword configuration.
const (
	IntentCollaboration = "collaboration"
	IntentConsulting    = "consulting_purchase"
	IntentServices      = "services_pricing"
	IntentSubscribe     = "subscribe_interest"
	IntentGeneral       = "general"
	IntentOutOfScope    = "out_of_scope"
	IntentAIBusiness    = "ai_business"
)

// minimum denominator for group scoring, so a single hit on a tiny list
// cannot dominate
const groupScoreFloor = 5

// fallback threshold below which the generic intent wins
const intentScoreThreshold = 0.15

// ClassifyIntent assigns an intent to a message. High-priority hand rules are
// evaluated first in fixed order; ordering matters, a message carrying both a
// partnership keyword and a services keyword classifies as partnership. When
// no rule fires, every configured intent group is scored and the best group
// wins unless it stays below the threshold.
func ClassifyIntent(message string, kw *config.KeywordConfig) models.IntentResult {
	text := Normalize(message)
	if text == "" {
		return genericIntent()
	}

	if containsAny(text, kw.PartnershipKeywords) {
		return models.IntentResult{ID: IntentCollaboration, Description: "طلب شراكة", Score: 1}
	}

	if containsAny(text, kw.BotRequestKeywords) ||
		(containsAny(text, kw.ConsultKeywords) && containsAny(text, kw.ProjectKeywords)) {
		return models.IntentResult{ID: IntentConsulting, Description: "طلب استشارة أو بوت", Score: 1}
	}

	if containsAny(text, kw.ServicesKeywords) {
		return models.IntentResult{ID: IntentServices, Description: "سؤال عن الخدمات والأسعار", Score: 1}
	}

	if containsAny(text, kw.NewsletterKeywords) {
		return models.IntentResult{ID: IntentSubscribe, Description: "اهتمام بالنشرة البريدية", Score: 0.9}
	}

	best := genericIntent()
	bestScore := 0.0
	for _, group := range kw.IntentGroups {
		score := GroupScore(text, group.Keywords)
		if score > bestScore {
			bestScore = score
			best = models.IntentResult{ID: group.ID, Description: group.Description, Score: score}
		}
	}

	if bestScore < intentScoreThreshold {
		return genericIntent()
	}
	return best
}

// GroupScore computes distinct keyword hits over the list length, with a
// floored denominator.
func GroupScore(text string, keywords []string) float64 {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(text, Normalize(k)) {
			hits++
		}
	}

	den := len(keywords)
	if den < groupScoreFloor {
		den = groupScoreFloor
	}
	return float64(hits) / float64(den)
}

// DetectDomain scans the message against the AI/business domain groups and
// reports which keywords matched per group.
func DetectDomain(message string, kw *config.KeywordConfig) models.DomainFlags {
	text := Normalize(message)
	tokens := Tokenize(message)
	flags := models.DomainFlags{Hits: make(map[string][]string)}

	for group, keywords := range kw.DomainGroups {
		for _, k := range keywords {
			if matchDomainKeyword(text, tokens, k) {
				flags.Hits[group] = append(flags.Hits[group], k)
				flags.TotalHits++
			}
		}
	}

	flags.IsAIDomain = flags.TotalHits > 0
	return flags
}

// matchDomainKeyword matches one domain keyword against a message. A keyword
// carrying boundary padding (like "ai ") matches whole tokens only, so it
// cannot fire inside "rain" or "again". Unpadded keywords keep substring
// containment, which lets Arabic prefixed forms like "التسويق" hit "تسويق".
func matchDomainKeyword(text string, tokens []string, keyword string) bool {
	k := strings.ToLower(keyword)
	if trimmed := strings.TrimSpace(k); trimmed != k {
		for _, t := range tokens {
			if t == trimmed {
				return true
			}
		}
		return false
	}
	return strings.Contains(text, k)
}

func genericIntent() models.IntentResult {
	return models.IntentResult{ID: IntentGeneral, Description: "سؤال عام", Score: 0}
}
