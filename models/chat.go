package models

// MatchType is the strong/medium/none bucket assigned to a knowledge lookup.
type MatchType string

const (
	MatchStrong MatchType = "strong"
	MatchMedium MatchType = "medium"
	MatchNone   MatchType = "none"
)

// ReplyMode identifies which response strategy produced the reply.
type ReplyMode string

const (
	ModeMotivation ReplyMode = "motivation"
	ModeKnowledge  ReplyMode = "knowledge"
	ModeAI         ReplyMode = "ai"
	ModeFallback   ReplyMode = "fallback"
)

// Sentiment labels.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// IntentResult is the intent assigned to a message.
type IntentResult struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// SentimentResult is the sentiment assigned to a message.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DomainFlags reports how strongly a message touches the AI/business domain.
type DomainFlags struct {
	IsAIDomain bool                `json:"isAIDomain"`
	Hits       map[string][]string `json:"hits"`
	TotalHits  int                 `json:"totalHits"`
}

// AnalysisResult is produced fresh per incoming message and never mutated
// after it is returned.
type AnalysisResult struct {
	Language  string          `json:"language"`
	Intent    IntentResult    `json:"intent"`
	Sentiment SentimentResult `json:"sentiment"`
	Domain    DomainFlags     `json:"domain"`
}

// KnowledgeItem is one curated knowledge-base entry.
type KnowledgeItem struct {
	Title    string   `json:"title" bson:"title"`
	URL      string   `json:"url" bson:"url"`
	Summary  string   `json:"summary" bson:"summary"`
	Keywords []string `json:"keywords" bson:"keywords"`
}

// KnowledgeMatch is the per-request outcome of matching a message against
// the knowledge list.
type KnowledgeMatch struct {
	Type  MatchType      `json:"matchType"`
	Item  *KnowledgeItem `json:"item,omitempty"`
	Score float64        `json:"score"`
}

// HistoryTurn is one turn of the caller-owned session history.
type HistoryTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the inbound contract of the chat endpoint.
type ChatRequest struct {
	Message        string        `json:"message"`
	Language       string        `json:"language,omitempty"` // "ar" or "en", inferred if absent
	IntentID       string        `json:"intentId,omitempty"`
	SessionID      string        `json:"sessionId,omitempty"`
	SessionHistory []HistoryTurn `json:"sessionHistory,omitempty"`
	AllowGemini    bool          `json:"allowGemini"`
	DialectHint    string        `json:"dialectHint,omitempty"`
}

// ResponseEnvelope is the sole output contract; every strategy branch of the
// decision engine produces one. MatchType stays nil unless a knowledge lookup
// was actually attempted; "none" is an explicit attempted-but-below-threshold
// tier. UsedAI is true only when a generative call succeeded.
type ResponseEnvelope struct {
	OK                bool       `json:"ok"`
	Reply             string     `json:"reply"`
	ActionCard        string     `json:"actionCard,omitempty"`
	MatchType         *MatchType `json:"matchType"`
	UsedAI            bool       `json:"usedAI"`
	MaxTokens         *int       `json:"maxTokens"`
	Mode              ReplyMode  `json:"mode"`
	ExtractedConcepts []string   `json:"extractedConcepts,omitempty"`
	OOSStrike         int        `json:"oosStrike,omitempty"`
}
