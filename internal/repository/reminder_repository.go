package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReminderRepository struct {
	collection *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		collection: db.Collection("reminders"),
	}
}

// CreateReminder inserts a new reminder
func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert reminder")
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		reminder.ID = insertedID
	}
	return reminder, nil
}

// GetReminderByID fetches a single reminder
func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to find reminder: %v", err)
	}
	return &reminder, nil
}

// GetUserReminders returns all reminders for a user
func (r *ReminderRepository) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// GetEnabledReminders returns every enabled reminder across all users,
// used by the cron scheduler.
func (r *ReminderRepository) GetEnabledReminders(ctx context.Context) ([]models.Reminder, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"enabled": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enabled reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// UpdateReminder applies a partial update to a reminder
func (r *ReminderRepository) UpdateReminder(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Reminder, error) {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}
	return r.GetReminderByID(ctx, id)
}

// MarkFired records the last time a reminder produced a notification
func (r *ReminderRepository) MarkFired(ctx context.Context, id primitive.ObjectID, firedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_fired": firedAt}})
	return err
}

// DeleteReminder deletes a reminder
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByHabit removes all reminders attached to a habit (cascade on habit deletion)
func (r *ReminderRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	return err
}
