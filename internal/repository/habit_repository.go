package repository

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HabitRepository struct handles database operations related to habits
type HabitRepository struct {
	collection *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

// CreateHabit creates a new habit in the database
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, err
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to find habit by ID")
		return nil, err
	}

	return &habit, nil
}

// GetHabits fetches habits for a specific user with optional status and category filters
func (r *HabitRepository) GetHabits(ctx context.Context, userID primitive.ObjectID, status, category string) ([]models.Habit, error) {
	var habits []models.Habit

	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &habits); err != nil {
		logger.Log.WithError(err).Error("Failed to decode habits")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(habits),
	}).Info("Habits fetched successfully")

	return habits, nil
}

// GetRecentHabits fetches the user's most recently created active habits
func (r *HabitRepository) GetRecentHabits(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Habit, error) {
	var habits []models.Habit

	filter := bson.M{"user_id": userID, "status": models.HabitStatusActive}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch recent habits")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// UpdateHabit applies a partial update to a habit's editable fields
func (r *HabitRepository) UpdateHabit(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Habit, error) {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit")
		return nil, err
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit updated successfully")
	return r.GetHabitByID(ctx, id)
}

// UpdateStreakFields persists the streak counters after a recorded completion.
// This is the only write path that touches streak state.
func (r *HabitRepository) UpdateStreakFields(ctx context.Context, id primitive.ObjectID, streak, longestStreak int, lastCompleted time.Time, lastCompletedDay string) (*models.Habit, error) {
	update := bson.M{
		"$set": bson.M{
			"streak":              streak,
			"longest_streak":      longestStreak,
			"last_completed_date": lastCompleted,
			"last_completed_day":  lastCompletedDay,
			"updated_at":          time.Now(),
		},
		"$inc": bson.M{"total_completions": 1},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit streak")
		return nil, err
	}

	return r.GetHabitByID(ctx, id)
}

// DeleteHabit deletes a habit from the database by its ID
func (r *HabitRepository) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return err
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return nil
}
