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

// CompletionRepository handles the append-only completion log. Records are
// inserted once per successful completion and removed only when their habit
// is deleted.
type CompletionRepository struct {
	collection *mongo.Collection
}

// NewCompletionRepository creates a new instance of CompletionRepository
func NewCompletionRepository(db *mongo.Database) *CompletionRepository {
	return &CompletionRepository{
		collection: db.Collection("completions"),
	}
}

// CreateCompletion appends one completion record
func (r *CompletionRepository) CreateCompletion(ctx context.Context, record *models.CompletionRecord) error {
	record.CreatedAt = time.Now()
	record.DateKey = record.Date.Format("2006-01-02")

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", record.HabitID.Hex()).Error("Failed to insert completion record")
		return err
	}
	return nil
}

// GetCompletionsSince fetches a habit's completions on or after the given date
func (r *CompletionRepository) GetCompletionsSince(ctx context.Context, habitID primitive.ObjectID, since time.Time) ([]models.CompletionRecord, error) {
	filter := bson.M{
		"habit_id": habitID,
		"date":     bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to fetch completions")
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CompletionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetUserCompletionsSince fetches completions across all of a user's habits
// on or after the given date, for aggregation views.
func (r *CompletionRepository) GetUserCompletionsSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]models.CompletionRecord, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch user completions")
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CompletionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByHabit removes all completion records of a habit (cascade on habit deletion)
func (r *CompletionRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to delete completion records")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": habitID.Hex(),
		"count":    result.DeletedCount,
	}).Info("Completion records deleted")
	return nil
}
