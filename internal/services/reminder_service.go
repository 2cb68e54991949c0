package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/internal/repository"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var reminderTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ReminderService manages per-habit reminders and fires the ones that are
// due, turning them into notifications.
type ReminderService struct {
	repo                *repository.ReminderRepository
	habitRepo           *repository.HabitRepository
	NotificationService *NotificationService
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(repo *repository.ReminderRepository, habitRepo *repository.HabitRepository, notificationService *NotificationService) *ReminderService {
	return &ReminderService{
		repo:                repo,
		habitRepo:           habitRepo,
		NotificationService: notificationService,
	}
}

// CreateReminder validates and stores a reminder for one of the user's habits.
func (s *ReminderService) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if !reminderTimeRegex.MatchString(reminder.Time) {
		return nil, fmt.Errorf("invalid reminder time %q, expected HH:MM", reminder.Time)
	}
	if len(reminder.Days) == 0 {
		return nil, fmt.Errorf("reminder needs at least one weekday")
	}
	for _, d := range reminder.Days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %d, expected 0 (Sunday) through 6 (Saturday)", d)
		}
	}

	h, err := s.habitRepo.GetHabitByID(ctx, reminder.HabitID)
	if err != nil {
		return nil, fmt.Errorf("habit not found: %v", err)
	}
	if h.UserID != reminder.UserID {
		return nil, fmt.Errorf("habit does not belong to user")
	}

	reminder.Enabled = true

	created, err := s.repo.CreateReminder(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create reminder")
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}

	logger.Log.WithField("reminder_id", created.ID.Hex()).Info("Reminder created in service layer")
	return created, nil
}

// GetUserReminders lists all reminders belonging to a user.
func (s *ReminderService) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return s.repo.GetUserReminders(ctx, userID)
}

// UpdateReminder applies a partial update after ownership and format checks.
func (s *ReminderService) UpdateReminder(ctx context.Context, id string, userID primitive.ObjectID, update map[string]interface{}) (*models.Reminder, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder ID: %v", err)
	}

	existing, err := s.repo.GetReminderByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("reminder not found: %v", err)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("reminder does not belong to user")
	}

	allowed := map[string]bool{"time": true, "days": true, "message": true, "enabled": true}
	for field := range update {
		if !allowed[field] {
			delete(update, field)
		}
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	if t, ok := update["time"].(string); ok && !reminderTimeRegex.MatchString(t) {
		return nil, fmt.Errorf("invalid reminder time %q, expected HH:MM", t)
	}

	update["updated_at"] = time.Now()
	return s.repo.UpdateReminder(ctx, objID, update)
}

// DeleteReminder removes a reminder owned by the user.
func (s *ReminderService) DeleteReminder(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reminder ID: %v", err)
	}

	existing, err := s.repo.GetReminderByID(ctx, objID)
	if err != nil {
		return fmt.Errorf("reminder not found: %v", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("reminder does not belong to user")
	}

	return s.repo.DeleteReminder(ctx, objID)
}

// FireDueReminders sends a notification for every enabled reminder whose
// weekday and HH:MM match now. A reminder fires at most once per day.
// Called by the scheduler every minute.
func (s *ReminderService) FireDueReminders(ctx context.Context, now time.Time) error {
	reminders, err := s.repo.GetEnabledReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reminders: %v", err)
	}

	weekday := int(now.Weekday())
	clock := now.Format("15:04")

	for i := range reminders {
		rem := &reminders[i]

		if rem.Time != clock {
			continue
		}
		dayMatch := false
		for _, d := range rem.Days {
			if d == weekday {
				dayMatch = true
				break
			}
		}
		if !dayMatch {
			continue
		}
		if rem.LastFired != nil && now.Sub(*rem.LastFired) < 23*time.Hour {
			continue
		}

		h, err := s.habitRepo.GetHabitByID(ctx, rem.HabitID)
		if err != nil || h.Status != models.HabitStatusActive {
			continue
		}

		message := rem.Message
		if message == "" {
			message = fmt.Sprintf("Time for your habit \"%s\"!", h.Name)
		}

		err = s.NotificationService.CreateNotification(ctx, rem.UserID, "habit_reminder",
			"⏰ Habit Reminder", message, &rem.HabitID)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send reminder notification for habit %s", rem.HabitID.Hex())
			continue
		}

		if err := s.repo.MarkFired(ctx, rem.ID, now); err != nil {
			logrus.WithError(err).Warnf("Failed to mark reminder %s as fired", rem.ID.Hex())
		}
	}

	return nil
}
