package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novalink-bot/models"
)

// SaveLead records a business action the visitor triggered so the team can
// follow up.
func SaveLead(ctx context.Context, lead models.Lead) error {
	if database == nil {
		return nil
	}

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	collection := database.Collection("leads")
	if _, err := collection.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	slog.Info("Lead captured",
		"sessionID", lead.SessionID,
		"action", lead.Action,
	)
	return nil
}

// ListLeads returns the most recent leads, optionally filtered by action.
func ListLeads(ctx context.Context, action string, limit int) ([]models.Lead, error) {
	if database == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}

	collection := database.Collection("leads")
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}
