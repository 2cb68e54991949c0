package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit statuses.
const (
	HabitStatusActive    = "active"
	HabitStatusArchived  = "archived"
	HabitStatusCompleted = "completed"
)

// AllowedTimesOfDay enumerates the valid time-of-day tags for a habit.
var AllowedTimesOfDay = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
	"anytime":   true,
}

// Habit represents a recurring habit owned by a single user.
//
// Streak, LongestStreak, TotalCompletions and LastCompletedDate are mutated
// only through the completion-recording path; regular habit edits must never
// touch them.
type Habit struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty"`
	TimeOfDay         string             `bson:"time_of_day,omitempty" json:"time_of_day,omitempty"` // "morning", "afternoon", "evening"
	Color             string             `bson:"color,omitempty" json:"color,omitempty"`
	Frequency         FrequencySpec      `bson:"frequency" json:"frequency"`
	Status            string             `bson:"status" json:"status"`
	Streak            int                `bson:"streak" json:"streak"`
	LongestStreak     int                `bson:"longest_streak" json:"longest_streak"`
	TotalCompletions  int                `bson:"total_completions" json:"total_completions"`
	LastCompletedDate *time.Time         `bson:"last_completed_date,omitempty" json:"last_completed_date,omitempty"`
	LastCompletedDay  string             `bson:"last_completed_day,omitempty" json:"last_completed_day,omitempty"` // YYYY-MM-DD in the owner's zone; the instant above loses it in storage
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// CompletionRecord is an append-only log entry for a single habit completion.
// Records are never mutated; they are deleted only when their habit is deleted.
type CompletionRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Date      time.Time          `bson:"date" json:"date"`
	DateKey   string             `bson:"date_key" json:"date_key"` // YYYY-MM-DD for calendar-day lookups
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
