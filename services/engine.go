package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"novalink-bot/config"
	"novalink-bot/models"
)

// Token budgets for the generative attempts.
const (
	microTokenBudget  = 80
	mediumTokenBudget = 100
	fullTokenBudget   = 200
)

// strike scan looks at most this many recent user turns
const maxStrikeLookback = 3

// strikes at which the engine stops engaging with an off-topic thread
const strikeLimit = 2

// Fixed intents answered with canned replies, with no AI or knowledge lookup.
var intentAliases = map[string]string{
	"novabot_info": "novalink_info",
}

// Engine is the response decision engine. It holds no per-request state;
// every Respond call is a pure function of its inputs plus the injected
// collaborators, so concurrent requests never interfere.
type Engine struct {
	Generator       TextGenerator
	Knowledge       *KnowledgeCache
	Keywords        *config.KeywordConfig
	PrimaryLanguage string

	randMu sync.Mutex
	rng    *rand.Rand
}

// DecisionInput is the normalized input of one decision.
type DecisionInput struct {
	Message        string
	Language       string
	IntentID       string
	SessionHistory []models.HistoryTurn
	AllowGemini    bool
	DialectHint    string
}

// NewEngine wires the engine with its collaborators. A nil generator means
// generative replies are unavailable and every AI branch degrades.
func NewEngine(generator TextGenerator, knowledge *KnowledgeCache, kw *config.KeywordConfig, primaryLanguage string, rng *rand.Rand) *Engine {
	if kw == nil {
		kw = config.DefaultKeywords()
	}
	return &Engine{
		Generator:       generator,
		Knowledge:       knowledge,
		Keywords:        kw,
		PrimaryLanguage: primaryLanguage,
		rng:             rng,
	}
}

// Respond selects and sequences the response strategies for one message.
// It never returns an error: provider and knowledge failures fall through to
// the next strategy, and anything unexpected is caught and converted into a
// safe fallback envelope.
func (e *Engine) Respond(ctx context.Context, in DecisionInput) (env models.ResponseEnvelope) {
	lang := in.Language
	if lang != "ar" && lang != "en" {
		lang = DetectLanguage(in.Message, e.PrimaryLanguage)
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Decision engine panic recovered", "panic", r)
			env = e.safeFallback(lang)
		}
	}()

	firstTurn := isFirstTurn(in.SessionHistory)
	aiAllowed := in.AllowGemini && e.Generator != nil

	// 1. Empty message: welcome, no knowledge or AI.
	if Normalize(in.Message) == "" {
		pool := e.Keywords.ReturningWelcome
		if firstTurn {
			pool = e.Keywords.Welcome
		}
		return e.newEnvelope(e.pick(pool.ForLanguage(lang)), models.ModeMotivation)
	}

	intentID := in.IntentID
	if intentID == "" {
		intentID = ClassifyIntent(in.Message, e.Keywords).ID
	}
	if alias, ok := intentAliases[intentID]; ok {
		intentID = alias
	}

	// 2. Fixed-intent shortcut: canned reply, terminal.
	if fixed, ok := e.Keywords.FixedReplies[intentID]; ok {
		env := e.newEnvelope(e.pick(fixed.Pool.ForLanguage(lang)), models.ModeMotivation)
		if fixed.Mode == string(models.ModeKnowledge) {
			env.Mode = models.ModeKnowledge
		}
		env.ActionCard = fixed.ActionCard
		return env
	}

	switch intentID {
	case IntentAIBusiness:
		return e.respondAIBusiness(ctx, in, lang, firstTurn, aiAllowed)
	case IntentOutOfScope:
		return e.respondOutOfScope(ctx, in, lang, aiAllowed)
	default:
		return e.respondGeneral(ctx, in, lang, firstTurn, aiAllowed)
	}
}

// respondAIBusiness handles the on-domain intent: fresh sessions get a short
// generative opener, then the knowledge base is consulted and the match tier
// drives the rest of the ladder.
func (e *Engine) respondAIBusiness(ctx context.Context, in DecisionInput, lang string, firstTurn, aiAllowed bool) models.ResponseEnvelope {
	if firstTurn && aiAllowed {
		if env, ok := e.tryAI(ctx, in, lang, microTokenBudget, nil, false, true); ok {
			return env
		}
	}

	match := e.matchKnowledge(ctx, in.Message, lang)

	if match.Type == models.MatchStrong {
		env := e.knowledgeReply(match.Item, lang)
		env.MatchType = matchTypePtr(match.Type)
		return env
	}

	if match.Type == models.MatchMedium {
		if aiAllowed {
			if env, ok := e.tryAI(ctx, in, lang, mediumTokenBudget, match.Item, false, false); ok {
				env.MatchType = matchTypePtr(match.Type)
				return env
			}
		}
		env := e.knowledgeReply(match.Item, lang)
		env.MatchType = matchTypePtr(match.Type)
		return env
	}

	if aiAllowed {
		if env, ok := e.tryAI(ctx, in, lang, fullTokenBudget, nil, false, false); ok {
			env.MatchType = matchTypePtr(match.Type)
			return env
		}
	}

	// All AI attempts failed; no non-none knowledge item exists at this
	// point, so fall back to motivation.
	env := e.motivationReply(lang)
	env.MatchType = matchTypePtr(match.Type)
	return env
}

// respondOutOfScope counts the recent off-topic strikes and either stops
// engaging, pivots the visitor back via a short generative reply, or falls
// back to knowledge and motivation.
func (e *Engine) respondOutOfScope(ctx context.Context, in DecisionInput, lang string, aiAllowed bool) models.ResponseEnvelope {
	strikes := e.countStrikes(in.SessionHistory)

	if strikes >= strikeLimit {
		env := e.motivationReply(lang)
		env.OOSStrike = strikes
		return env
	}

	if aiAllowed {
		if env, ok := e.tryAI(ctx, in, lang, microTokenBudget, nil, true, true); ok {
			env.OOSStrike = strikes
			return env
		}
	}

	match := e.matchKnowledge(ctx, in.Message, lang)
	if match.Type != models.MatchNone {
		env := e.knowledgeReply(match.Item, lang)
		env.MatchType = matchTypePtr(match.Type)
		env.OOSStrike = strikes
		return env
	}

	env := e.motivationReply(lang)
	env.MatchType = matchTypePtr(match.Type)
	env.OOSStrike = strikes
	return env
}

// respondGeneral handles every remaining intent: generative first, then
// knowledge, then motivation, then the static updating message.
func (e *Engine) respondGeneral(ctx context.Context, in DecisionInput, lang string, firstTurn, aiAllowed bool) models.ResponseEnvelope {
	if aiAllowed {
		budget := fullTokenBudget
		if firstTurn {
			budget = microTokenBudget
		}
		if env, ok := e.tryAI(ctx, in, lang, budget, nil, false, firstTurn); ok {
			return env
		}
	}

	match := e.matchKnowledge(ctx, in.Message, lang)
	if match.Type != models.MatchNone {
		env := e.knowledgeReply(match.Item, lang)
		env.MatchType = matchTypePtr(match.Type)
		return env
	}

	pool := e.Keywords.Motivation.ForLanguage(lang)
	if len(pool) > 0 {
		env := e.newEnvelope(e.pick(pool), models.ModeMotivation)
		env.MatchType = matchTypePtr(match.Type)
		return env
	}

	env := e.newEnvelope(e.pick(e.Keywords.Updating.ForLanguage(lang)), models.ModeFallback)
	env.MatchType = matchTypePtr(match.Type)
	return env
}

// tryAI runs one guarded generative attempt. A provider error, an empty
// completion or a provider panic all report failure so the caller can fall
// through to the next strategy.
func (e *Engine) tryAI(ctx context.Context, in DecisionInput, lang string, budget int, grounding *models.KnowledgeItem, pivot, brief bool) (env models.ResponseEnvelope, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Provider call panicked", "panic", r)
			env, ok = models.ResponseEnvelope{}, false
		}
	}()

	prompt := BuildPrompt(PromptInput{
		Message:     in.Message,
		Language:    lang,
		DialectHint: in.DialectHint,
		History:     in.SessionHistory,
		Grounding:   grounding,
		Pivot:       pivot,
		Brief:       brief,
	})

	text, err := e.Generator.GenerateText(ctx, prompt, budget)
	if err != nil || Normalize(text) == "" {
		slog.Warn("Generative attempt failed, falling through",
			"error", err,
			"budget", budget,
			"grounded", grounding != nil,
		)
		return models.ResponseEnvelope{}, false
	}

	env = e.newEnvelope(text, models.ModeAI)
	env.UsedAI = true
	env.MaxTokens = intPtr(budget)
	env.ExtractedConcepts = ExtractConcepts(text, lang, e.Keywords)
	return env, true
}

// matchKnowledge runs the guarded knowledge lookup. A missing cache or a
// failed fetch degrades to an empty list, which scores as an explicit "none"
// tier rather than aborting the decision.
func (e *Engine) matchKnowledge(ctx context.Context, message, lang string) models.KnowledgeMatch {
	var items []models.KnowledgeItem
	if e.Knowledge != nil {
		items = e.Knowledge.Items(ctx)
	}
	return MatchKnowledge(message, lang, items, e.Keywords)
}

// countStrikes scans the session history backward over user turns only,
// counting consecutive off-topic turns up to the lookback cap. A turn that
// touches the AI/business domain ends the scan without being counted.
func (e *Engine) countStrikes(history []models.HistoryTurn) int {
	strikes := 0
	for i := len(history) - 1; i >= 0 && strikes < maxStrikeLookback; i-- {
		if history[i].Role != "user" {
			continue
		}
		if DetectDomain(history[i].Content, e.Keywords).IsAIDomain {
			break
		}
		strikes++
	}
	return strikes
}

func (e *Engine) knowledgeReply(item *models.KnowledgeItem, lang string) models.ResponseEnvelope {
	if item == nil {
		return e.motivationReply(lang)
	}

	var reply string
	if lang == "ar" {
		reply = fmt.Sprintf("%s\n%s", item.Title, item.Summary)
		if item.URL != "" {
			reply += fmt.Sprintf("\nالتفاصيل كاملة هنا: %s", item.URL)
		}
	} else {
		reply = fmt.Sprintf("%s\n%s", item.Title, item.Summary)
		if item.URL != "" {
			reply += fmt.Sprintf("\nFull details here: %s", item.URL)
		}
	}

	env := e.newEnvelope(reply, models.ModeKnowledge)
	env.ActionCard = item.URL
	return env
}

func (e *Engine) motivationReply(lang string) models.ResponseEnvelope {
	pool := e.Keywords.Motivation.ForLanguage(lang)
	if len(pool) == 0 {
		// empty motivational pool degrades to the welcome text
		pool = e.Keywords.Welcome.ForLanguage(lang)
	}
	if len(pool) == 0 {
		return e.safeFallback(lang)
	}
	return e.newEnvelope(e.pick(pool), models.ModeMotivation)
}

// safeFallback is the catch-all envelope: still ok, still a real reply.
func (e *Engine) safeFallback(lang string) models.ResponseEnvelope {
	reply := "نقوم حالياً بتحديث المساعد. جرب مرة أخرى بعد قليل 🙏"
	if pool := e.Keywords.Updating.ForLanguage(lang); len(pool) > 0 {
		reply = pool[0]
	}
	return models.ResponseEnvelope{
		OK:    true,
		Reply: FormatReply(reply),
		Mode:  models.ModeFallback,
	}
}

func (e *Engine) newEnvelope(reply string, mode models.ReplyMode) models.ResponseEnvelope {
	return models.ResponseEnvelope{
		OK:    true,
		Reply: FormatReply(reply),
		Mode:  mode,
	}
}

// pick selects uniformly from pool with the injected random source.
func (e *Engine) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	if len(pool) == 1 {
		return pool[0]
	}

	e.randMu.Lock()
	defer e.randMu.Unlock()
	if e.rng == nil {
		return pool[0]
	}
	return pool[e.rng.Intn(len(pool))]
}

func isFirstTurn(history []models.HistoryTurn) bool {
	for _, h := range history {
		if h.Role == "user" {
			return false
		}
	}
	return true
}

func matchTypePtr(t models.MatchType) *models.MatchType {
	return &t
}

func intPtr(v int) *int {
	return &v
}
