package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"novalink-bot/config"
)

func TestClassifyIntentPriorityOrdering(t *testing.T) {
	kw := config.DefaultKeywords()

	// A message carrying both a partnership keyword and a services keyword
	// must classify as partnership: first matching rule wins.
	res := ClassifyIntent("نريد شراكة معكم وما هي الأسعار؟", kw)
	assert.Equal(t, IntentCollaboration, res.ID)
	assert.Equal(t, 1.0, res.Score)
}

func TestClassifyIntentConsultation(t *testing.T) {
	kw := config.DefaultKeywords()

	// bot request alone
	res := ClassifyIntent("أريد بوت لمتجري", kw)
	assert.Equal(t, IntentConsulting, res.ID)

	// consult words AND project words
	res = ClassifyIntent("محتاج استشارة حول مشروعي الجديد", kw)
	assert.Equal(t, IntentConsulting, res.ID)

	// consult words alone do not fire the rule
	res = ClassifyIntent("نصيحة لو سمحت", kw)
	assert.NotEqual(t, IntentConsulting, res.ID)
}

func TestClassifyIntentNewsletter(t *testing.T) {
	kw := config.DefaultKeywords()

	res := ClassifyIntent("هل يمكنني الاشتراك بالنشرة البريدية؟", kw)
	assert.Equal(t, IntentSubscribe, res.ID)
	assert.Equal(t, 0.9, res.Score)
}

func TestClassifyIntentServices(t *testing.T) {
	kw := config.DefaultKeywords()

	res := ClassifyIntent("كم تكلفة الخدمات عندكم؟", kw)
	assert.Equal(t, IntentServices, res.ID)
	assert.Equal(t, 1.0, res.Score)
}

func TestClassifyIntentFallbackGroups(t *testing.T) {
	kw := config.DefaultKeywords()

	res := ClassifyIntent("السلام عليكم", kw)
	assert.Equal(t, "greeting", res.ID)
	assert.Greater(t, res.Score, 0.0)

	res = ClassifyIntent("حدثني عن الذكاء الاصطناعي في التسويق", kw)
	assert.Equal(t, IntentAIBusiness, res.ID)
}

func TestClassifyIntentGenericBelowThreshold(t *testing.T) {
	kw := config.DefaultKeywords()

	res := ClassifyIntent("znxqv wplrt", kw)
	assert.Equal(t, IntentGeneral, res.ID)
	assert.Equal(t, 0.0, res.Score)

	res = ClassifyIntent("", kw)
	assert.Equal(t, IntentGeneral, res.ID)
}

func TestGroupScoreDenominatorFloor(t *testing.T) {
	// Two keywords only, one hit: the floor of 5 keeps the score at 0.2
	// instead of 0.5.
	score := GroupScore("alpha something", []string{"alpha", "beta"})
	assert.InDelta(t, 0.2, score, 1e-9)

	// Longer lists divide by their real length.
	score = GroupScore("alpha", []string{"alpha", "b", "c", "d", "e", "f", "g", "h", "i", "j"})
	assert.InDelta(t, 0.1, score, 1e-9)
}

func TestDetectDomain(t *testing.T) {
	kw := config.DefaultKeywords()

	flags := DetectDomain("كيف أستخدم الذكاء الاصطناعي في التسويق لمتجري؟", kw)
	assert.True(t, flags.IsAIDomain)
	assert.Greater(t, flags.TotalHits, 0)
	assert.NotEmpty(t, flags.Hits)

	flags = DetectDomain("I love cooking pasta", kw)
	assert.False(t, flags.IsAIDomain)
	assert.Zero(t, flags.TotalHits)
}

func TestDetectDomainWordBoundaries(t *testing.T) {
	kw := config.DefaultKeywords()

	// "ai" embedded in ordinary English words must not flag the domain.
	for _, msg := range []string{
		"it might rain tomorrow",
		"will it rain again today",
		"wait, what did you say",
		"is that available on fridays",
	} {
		flags := DetectDomain(msg, kw)
		assert.False(t, flags.IsAIDomain, "message %q should not flag the domain", msg)
	}

	// "ai" as its own word still hits.
	flags := DetectDomain("what can AI do for my bakery?", kw)
	assert.True(t, flags.IsAIDomain)

	// Unpadded Arabic keywords keep matching their prefixed forms.
	flags = DetectDomain("وش فايدة التسويق الرقمي؟", kw)
	assert.True(t, flags.IsAIDomain)
}
