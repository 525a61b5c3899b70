package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalink-bot/config"
	"novalink-bot/models"
)

type staticFetcher struct {
	items []models.KnowledgeItem
	err   error
	calls int
}

func (f *staticFetcher) FetchKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func TestTierForScore(t *testing.T) {
	assert.Equal(t, models.MatchStrong, TierForScore(1.0))
	assert.Equal(t, models.MatchStrong, TierForScore(0.65))
	assert.Equal(t, models.MatchMedium, TierForScore(0.649999))
	assert.Equal(t, models.MatchMedium, TierForScore(0.40))
	assert.Equal(t, models.MatchNone, TierForScore(0.399999))
	assert.Equal(t, models.MatchNone, TierForScore(0))
}

func TestMatchKnowledgeStrong(t *testing.T) {
	kw := config.DefaultKeywords()
	items := []models.KnowledgeItem{
		{
			Title:    "chatbot packages",
			URL:      "https://example.com/packages",
			Summary:  "enterprise automation bundle",
			Keywords: []string{"pricing"},
		},
	}

	// Message tokens exactly equal the item tokens: Jaccard 1.0.
	match := MatchKnowledge("chatbot packages enterprise automation bundle pricing", "en", items, kw)
	assert.Equal(t, models.MatchStrong, match.Type)
	require.NotNil(t, match.Item)
	assert.Equal(t, "https://example.com/packages", match.Item.URL)
	assert.InDelta(t, 1.0, match.Score, 1e-9)
}

func TestMatchKnowledgeMedium(t *testing.T) {
	kw := config.DefaultKeywords()
	items := []models.KnowledgeItem{
		{Title: "alpha beta", Summary: "delta"},
	}

	// message {alpha, beta, gamma} vs item {alpha, beta, delta}:
	// intersection 2, union 4, score 0.5.
	match := MatchKnowledge("alpha beta gamma", "en", items, kw)
	assert.Equal(t, models.MatchMedium, match.Type)
	require.NotNil(t, match.Item)
	assert.InDelta(t, 0.5, match.Score, 1e-9)
}

func TestMatchKnowledgeNone(t *testing.T) {
	kw := config.DefaultKeywords()
	items := []models.KnowledgeItem{
		{Title: "alpha beta", Summary: "delta"},
	}

	match := MatchKnowledge("completely unrelated words", "en", items, kw)
	assert.Equal(t, models.MatchNone, match.Type)
	assert.Nil(t, match.Item)

	// empty list
	match = MatchKnowledge("alpha beta", "en", nil, kw)
	assert.Equal(t, models.MatchNone, match.Type)
	assert.Zero(t, match.Score)
}

func TestMatchKnowledgeIdempotent(t *testing.T) {
	kw := config.DefaultKeywords()
	items := []models.KnowledgeItem{
		{Title: "alpha beta", Summary: "delta"},
		{Title: "alpha gamma", Summary: "epsilon"},
	}

	first := MatchKnowledge("alpha beta gamma", "en", items, kw)
	second := MatchKnowledge("alpha beta gamma", "en", items, kw)
	assert.Equal(t, first, second)
}

func TestKnowledgeCacheTTL(t *testing.T) {
	fetcher := &staticFetcher{items: []models.KnowledgeItem{{Title: "one"}}}
	cache := NewKnowledgeCache(fetcher, 5*time.Minute)

	now := time.Now()
	cache.SetClock(func() time.Time { return now })

	ctx := context.Background()

	items := cache.Items(ctx)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, fetcher.calls)

	// Within the TTL nothing refetches.
	cache.Items(ctx)
	assert.Equal(t, 1, fetcher.calls)

	// Past the TTL the list is refetched.
	now = now.Add(6 * time.Minute)
	cache.Items(ctx)
	assert.Equal(t, 2, fetcher.calls)
}

func TestKnowledgeCacheServesStaleOnError(t *testing.T) {
	fetcher := &staticFetcher{items: []models.KnowledgeItem{{Title: "one"}}}
	cache := NewKnowledgeCache(fetcher, 5*time.Minute)

	now := time.Now()
	cache.SetClock(func() time.Time { return now })

	ctx := context.Background()
	assert.Len(t, cache.Items(ctx), 1)

	// The source starts failing; the stale list keeps being served.
	fetcher.err = errors.New("source down")
	now = now.Add(10 * time.Minute)

	items := cache.Items(ctx)
	assert.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Title)
}
