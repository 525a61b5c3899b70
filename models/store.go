package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationMessage is one persisted chat turn.
type ConversationMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Role      string             `bson:"role" json:"role"` // "user" or "assistant"
	Content   string             `bson:"content" json:"content"`
	Language  string             `bson:"language,omitempty" json:"language,omitempty"`
	Intent    string             `bson:"intent,omitempty" json:"intent,omitempty"`
	Mode      string             `bson:"mode,omitempty" json:"mode,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Lead records a business action a visitor triggered (subscribe, consult,
// contact, pricing) so the team can follow up.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Action    string             `bson:"action" json:"action"`
	Message   string             `bson:"message" json:"message"`
	Language  string             `bson:"language" json:"language"`
	Intent    string             `bson:"intent,omitempty" json:"intent,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
