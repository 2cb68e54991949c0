package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder schedules recurring notifications for a habit. The progress engine
// never calls the scheduler; it only supplies habit data as read-only input.
type Reminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	Time      string             `bson:"time" json:"time"` // "HH:MM", user-local clock
	Days      []int              `bson:"days" json:"days"` // weekdays the reminder fires, Sunday=0
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	LastFired *time.Time         `bson:"last_fired,omitempty" json:"last_fired,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
