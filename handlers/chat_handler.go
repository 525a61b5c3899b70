package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"novalink-bot/config"
	"novalink-bot/models"
	"novalink-bot/services"
)

// ChatResponse is the chat endpoint's JSON body: the decision engine's
// envelope plus the session identifier the caller should carry forward.
type ChatResponse struct {
	models.ResponseEnvelope
	SessionID string                 `json:"sessionId"`
	Analysis  *models.AnalysisResult `json:"analysis,omitempty"`
}

// ChatHandler serves the chat endpoint.
type ChatHandler struct {
	Engine   *services.Engine
	Keywords *config.KeywordConfig
	Cfg      *config.Config
}

func NewChatHandler(engine *services.Engine, kw *config.KeywordConfig, cfg *config.Config) *ChatHandler {
	return &ChatHandler{Engine: engine, Keywords: kw, Cfg: cfg}
}

// Handle runs the full pipeline for one message: analysis, decision,
// persistence and lead capture.
func (h *ChatHandler) Handle(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error("Failed to parse chat request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := req.SessionHistory
	if len(history) == 0 {
		stored, err := services.RecentHistory(c.Context(), sessionID, 0)
		if err != nil {
			slog.Warn("Failed to load stored history", "error", err, "sessionID", sessionID)
		} else {
			history = stored
		}
	}

	analysis := services.Analyze(req.Message, h.Cfg.PrimaryLanguage, h.Keywords)

	language := req.Language
	if language == "" {
		language = analysis.Language
	}
	intentID := req.IntentID
	if intentID == "" {
		intentID = analysis.Intent.ID
	}

	allowGemini := req.AllowGemini && h.Cfg.AllowGemini

	env := h.Engine.Respond(c.Context(), services.DecisionInput{
		Message:        req.Message,
		Language:       language,
		IntentID:       intentID,
		SessionHistory: history,
		AllowGemini:    allowGemini,
		DialectHint:    req.DialectHint,
	})

	slog.Info("Chat reply decided",
		"sessionID", sessionID,
		"intent", intentID,
		"language", language,
		"mode", env.Mode,
		"usedAI", env.UsedAI,
		"actionCard", env.ActionCard,
	)

	// Persist turns and leads off the request path.
	go persistExchange(sessionID, req.Message, intentID, language, env)

	return c.JSON(ChatResponse{
		ResponseEnvelope: env,
		SessionID:        sessionID,
		Analysis:         &analysis,
	})
}

func persistExchange(sessionID, message, intentID, language string, env models.ResponseEnvelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if message != "" {
		if err := services.SaveTurn(ctx, models.ConversationMessage{
			SessionID: sessionID,
			Role:      "user",
			Content:   message,
			Language:  language,
			Intent:    intentID,
		}); err != nil {
			slog.Warn("Failed to save user turn", "error", err, "sessionID", sessionID)
		}
	}

	if err := services.SaveTurn(ctx, models.ConversationMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   env.Reply,
		Language:  language,
		Mode:      string(env.Mode),
	}); err != nil {
		slog.Warn("Failed to save assistant turn", "error", err, "sessionID", sessionID)
	}

	switch env.ActionCard {
	case "subscribe", "consult", "contact", "pricing":
		if err := services.SaveLead(ctx, models.Lead{
			SessionID: sessionID,
			Action:    env.ActionCard,
			Message:   message,
			Language:  language,
			Intent:    intentID,
		}); err != nil {
			slog.Warn("Failed to save lead", "error", err, "sessionID", sessionID)
		}
	}
}
