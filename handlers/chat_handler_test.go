package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalink-bot/config"
	"novalink-bot/services"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{
		PrimaryLanguage: "ar",
		AllowGemini:     false,
	}
	kw := config.DefaultKeywords()
	engine := services.NewEngine(nil, nil, kw, cfg.PrimaryLanguage, rand.New(rand.NewSource(1)))

	app := fiber.New()
	handler := NewChatHandler(engine, kw, cfg)
	app.Post("/api/chat", handler.Handle)
	return app
}

func postChat(t *testing.T, app *fiber.App, body any) (int, ChatResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out ChatResponse
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestChatHandlerRejectsBadBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestChatHandlerGeneratesSessionID(t *testing.T) {
	app := newTestApp()

	status, out := postChat(t, app, map[string]any{
		"message": "مرحبا",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.OK)
	assert.NotEmpty(t, out.SessionID)
	assert.NotEmpty(t, out.Reply)
}

func TestChatHandlerEchoesSessionID(t *testing.T) {
	app := newTestApp()

	status, out := postChat(t, app, map[string]any{
		"message":   "hello",
		"sessionId": "session-123",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "session-123", out.SessionID)
}

func TestChatHandlerNewsletterFlow(t *testing.T) {
	app := newTestApp()

	status, out := postChat(t, app, map[string]any{
		"message": "هل يمكنني الاشتراك بالنشرة البريدية؟",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "subscribe", out.ActionCard)
	assert.False(t, out.UsedAI)

	require.NotNil(t, out.Analysis)
	assert.Equal(t, "ar", out.Analysis.Language)
	assert.Equal(t, "subscribe_interest", out.Analysis.Intent.ID)
}

func TestChatHandlerEmptyMessageWelcomes(t *testing.T) {
	app := newTestApp()

	status, out := postChat(t, app, map[string]any{
		"message": "",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.OK)
	assert.Contains(t, out.Reply, "نوفالينك")
}

func TestChatHandlerHonorsGeminiKillSwitch(t *testing.T) {
	// allowGemini in the request cannot override a server-side disable
	app := newTestApp()

	status, out := postChat(t, app, map[string]any{
		"message":     "tell me about automation for my store",
		"language":    "en",
		"allowGemini": true,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.False(t, out.UsedAI)
	assert.NotEmpty(t, out.Reply)
}
