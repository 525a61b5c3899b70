package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"novalink-bot/config"
	"novalink-bot/models"
)

// Knowledge match tier boundaries. 0.65 exactly is strong, 0.40 exactly is
// medium.
const (
	strongMatchThreshold = 0.65
	mediumMatchThreshold = 0.40
)

// KnowledgeFetcher provides the knowledge list on demand. Implementations
// may fail; the cache treats a failure as "keep what we have".
type KnowledgeFetcher interface {
	FetchKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error)
}

// KnowledgeCache holds the knowledge list behind a TTL. Refreshes swap the
// whole list; concurrent refreshes are idempotent and last writer wins.
type KnowledgeCache struct {
	mu        sync.RWMutex
	fetcher   KnowledgeFetcher
	ttl       time.Duration
	now       func() time.Time
	items     []models.KnowledgeItem
	fetchedAt time.Time
}

// NewKnowledgeCache builds a cache around fetcher with the given TTL.
func NewKnowledgeCache(fetcher KnowledgeFetcher, ttl time.Duration) *KnowledgeCache {
	return &KnowledgeCache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (c *KnowledgeCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Items returns the current knowledge list, refreshing it first when stale.
// A fetch failure degrades to the previously cached list (possibly empty)
// rather than propagating.
func (c *KnowledgeCache) Items(ctx context.Context) []models.KnowledgeItem {
	c.mu.RLock()
	fresh := !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl
	items := c.items
	c.mu.RUnlock()

	if fresh {
		return items
	}

	if err := c.Refresh(ctx); err != nil {
		slog.Warn("Knowledge refresh failed, serving stale list",
			"error", err,
			"cachedItems", len(items),
		)
		return items
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Refresh fetches the knowledge list unconditionally and swaps it in.
func (c *KnowledgeCache) Refresh(ctx context.Context) error {
	if c.fetcher == nil {
		return nil
	}

	items, err := c.fetcher.FetchKnowledgeItems(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.fetchedAt = c.now()
	c.mu.Unlock()

	slog.Info("Knowledge list refreshed", "items", len(items))
	return nil
}

// MatchKnowledge scores the message against every knowledge item and buckets
// the best score into a tier. Scoring is a Jaccard overlap between the
// stopword-filtered token sets of the message and of the item's title,
// summary and keywords. The scan is linear and ties keep the first item
// found, so identical inputs always produce identical matches.
func MatchKnowledge(message, lang string, items []models.KnowledgeItem, kw *config.KeywordConfig) models.KnowledgeMatch {
	msgTokens := tokenSet(FilterStopwords(Tokenize(message), lang, kw))

	match := models.KnowledgeMatch{Type: models.MatchNone}
	if len(items) == 0 {
		return match
	}

	bestScore := 0.0
	var bestItem *models.KnowledgeItem

	for i := range items {
		item := &items[i]
		itemText := item.Title + " " + item.Summary
		for _, k := range item.Keywords {
			itemText += " " + k
		}
		itemTokens := tokenSet(FilterStopwords(Tokenize(itemText), lang, kw))

		score := jaccard(msgTokens, itemTokens)
		if score > bestScore {
			bestScore = score
			bestItem = item
		}
	}

	match.Score = bestScore
	match.Type = TierForScore(bestScore)
	if match.Type != models.MatchNone {
		match.Item = bestItem
	}

	return match
}

// TierForScore buckets a raw overlap score into a match tier.
func TierForScore(score float64) models.MatchType {
	switch {
	case score >= strongMatchThreshold:
		return models.MatchStrong
	case score >= mediumMatchThreshold:
		return models.MatchMedium
	default:
		return models.MatchNone
	}
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|, 0 when the union is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
