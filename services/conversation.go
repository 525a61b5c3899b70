package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novalink-bot/models"
)

// default number of turns loaded when the caller supplies no history
const defaultHistoryLimit = 10

// SaveTurn persists one chat turn of a session.
func SaveTurn(ctx context.Context, msg models.ConversationMessage) error {
	if database == nil {
		return nil
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	collection := database.Collection("conversations")
	if _, err := collection.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save conversation turn: %w", err)
	}
	return nil
}

// RecentHistory returns the most recent turns of a session in chronological
// order, for callers that do not carry their own history.
func RecentHistory(ctx context.Context, sessionID string, limit int) ([]models.HistoryTurn, error) {
	if database == nil || sessionID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	collection := database.Collection("conversations")
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.ConversationMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	// newest-first from Mongo, the engine wants oldest-first
	turns := make([]models.HistoryTurn, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		turns = append(turns, models.HistoryTurn{
			Role:    messages[i].Role,
			Content: messages[i].Content,
		})
	}
	return turns, nil
}
