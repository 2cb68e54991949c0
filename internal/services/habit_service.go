package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/habit"
	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/internal/repository"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitService encapsulates the business logic for habits, including the
// completion flow that drives streaks.
type HabitService struct {
	repo                *repository.HabitRepository
	completionRepo      *repository.CompletionRepository
	reminderRepo        *repository.ReminderRepository
	NotificationService *NotificationService
	ActivityService     *ActivityService

	// One lock per habit so two concurrent completions of the same habit
	// are applied one after the other. Different habits never contend.
	mu         sync.Mutex
	habitLocks map[string]*sync.Mutex
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(repo *repository.HabitRepository, completionRepo *repository.CompletionRepository, reminderRepo *repository.ReminderRepository, notificationService *NotificationService, activityService *ActivityService) *HabitService {
	return &HabitService{
		repo:                repo,
		completionRepo:      completionRepo,
		reminderRepo:        reminderRepo,
		NotificationService: notificationService,
		ActivityService:     activityService,
		habitLocks:          make(map[string]*sync.Mutex),
	}
}

func (s *HabitService) lockForHabit(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.habitLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.habitLocks[id] = lock
	}
	return lock
}

func (s *HabitService) releaseLock(id string) {
	s.mu.Lock()
	delete(s.habitLocks, id)
	s.mu.Unlock()
}

// CreateHabit validates a new habit and stores it. The frequency string is
// parsed once here; an unrecognized value is kept but contributes no targets.
func (s *HabitService) CreateHabit(ctx context.Context, h *models.Habit) (*models.Habit, error) {
	if h.Name == "" {
		logger.Log.Warn("Habit name is empty during creation")
		return nil, fmt.Errorf("habit name is required")
	}

	if h.TimeOfDay != "" && !models.AllowedTimesOfDay[h.TimeOfDay] {
		logger.Log.WithField("time_of_day", h.TimeOfDay).Warn("Invalid time of day during habit creation")
		return nil, fmt.Errorf("invalid time of day: %q", h.TimeOfDay)
	}

	h.Frequency = models.ParseFrequency(h.Frequency.Raw)
	if !h.Frequency.IsRecognized() {
		logger.Log.WithField("frequency", h.Frequency.Raw).Warn("Unrecognized frequency kept as-is")
	}

	h.Status = models.HabitStatusActive
	h.Streak = 0
	h.LongestStreak = 0
	h.TotalCompletions = 0
	h.LastCompletedDate = nil
	h.LastCompletedDay = ""

	created, err := s.repo.CreateHabit(ctx, h)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, fmt.Errorf("failed to create habit: %v", err)
	}

	logger.Log.WithField("habit_id", created.ID.Hex()).Info("Habit created in service layer")
	return created, nil
}

// GetHabit retrieves a habit by its ID.
func (s *HabitService) GetHabit(ctx context.Context, id string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Warn("Invalid habit ID in GetHabit")
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	h, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to get habit from repository")
		return nil, fmt.Errorf("failed to get habit: %v", err)
	}

	return h, nil
}

// GetHabits returns a user's habits, optionally filtered by status and category.
func (s *HabitService) GetHabits(ctx context.Context, userID primitive.ObjectID, status, category string) ([]models.Habit, error) {
	habits, err := s.repo.GetHabits(ctx, userID, status, category)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":  userID.Hex(),
			"status":   status,
			"category": category,
		}).WithError(err).Error("Failed to get filtered habits in service")
		return nil, err
	}

	return habits, nil
}

// GetRecentHabits returns the user's most recently created habits.
func (s *HabitService) GetRecentHabits(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Habit, error) {
	return s.repo.GetRecentHabits(ctx, userID, limit)
}

// UpdateHabit applies edits to a habit's descriptive fields. Streak state is
// untouched: editing name, frequency or schedule never rewrites history.
func (s *HabitService) UpdateHabit(ctx context.Context, id string, update map[string]interface{}) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Warn("Invalid habit ID in UpdateHabit")
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	// Only descriptive fields may be edited here; streak state, ownership
	// and status have their own write paths.
	allowed := map[string]bool{
		"name": true, "description": true, "category": true,
		"time_of_day": true, "color": true, "frequency": true,
	}
	for field := range update {
		if !allowed[field] {
			delete(update, field)
		}
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}

	if raw, ok := update["frequency"]; ok {
		s, isString := raw.(string)
		if !isString {
			return nil, fmt.Errorf("frequency must be a string")
		}
		update["frequency"] = models.ParseFrequency(s)
	}
	if tod, ok := update["time_of_day"].(string); ok && tod != "" && !models.AllowedTimesOfDay[tod] {
		return nil, fmt.Errorf("invalid time of day: %q", tod)
	}

	update["updated_at"] = time.Now()

	h, err := s.repo.UpdateHabit(ctx, objID, update)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to update habit")
		return nil, fmt.Errorf("failed to update habit: %v", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit updated successfully in service layer")
	return h, nil
}

// ArchiveHabit moves a habit out of the active set. Streak state is frozen
// in place so a later restore picks up where the habit left off.
func (s *HabitService) ArchiveHabit(ctx context.Context, id string) (*models.Habit, error) {
	return s.setStatus(ctx, id, models.HabitStatusArchived)
}

// RestoreHabit returns an archived habit to the active set.
func (s *HabitService) RestoreHabit(ctx context.Context, id string) (*models.Habit, error) {
	return s.setStatus(ctx, id, models.HabitStatusActive)
}

func (s *HabitService) setStatus(ctx context.Context, id string, status string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	h, err := s.repo.UpdateHabit(ctx, objID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set habit status: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": id,
		"status":   status,
	}).Info("Habit status changed")
	return h, nil
}

// DeleteHabit removes a habit along with its completion log and reminders.
func (s *HabitService) DeleteHabit(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Warn("Invalid habit ID in DeleteHabit")
		return fmt.Errorf("invalid habit ID: %v", err)
	}

	if err := s.repo.DeleteHabit(ctx, objID); err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Error("Failed to delete habit")
		return fmt.Errorf("failed to delete habit: %v", err)
	}

	if err := s.completionRepo.DeleteByHabit(ctx, objID); err != nil {
		logrus.WithError(err).Warnf("Failed to delete completions for habit %s", id)
	}
	if err := s.reminderRepo.DeleteByHabit(ctx, objID); err != nil {
		logrus.WithError(err).Warnf("Failed to delete reminders for habit %s", id)
	}

	s.releaseLock(id)

	logger.Log.WithField("habit_id", id).Info("Habit deleted successfully in service layer")
	return nil
}

// RecordCompletion marks a habit done for the calendar day of now. The
// streak rules live in the habit package; this method serializes writes per
// habit, persists the new streak state and appends to the completion log.
//
// A second completion on the same day returns habit.ErrAlreadyCompleted and
// leaves every stored field unchanged.
func (s *HabitService) RecordCompletion(ctx context.Context, habitID string, userID primitive.ObjectID, now time.Time) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	lock := s.lockForHabit(habitID)
	lock.Lock()
	defer lock.Unlock()

	h, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("habit not found: %v", err)
	}

	if h.UserID != userID {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": habitID,
			"user_id":  userID.Hex(),
		}).Warn("Completion attempt on foreign habit")
		return nil, fmt.Errorf("habit does not belong to user")
	}

	if h.Status != models.HabitStatusActive {
		return nil, fmt.Errorf("habit is not active")
	}

	update, err := habit.ApplyCompletion(h, now)
	if err != nil {
		return nil, err
	}

	longest := h.LongestStreak
	if update.Streak > longest {
		longest = update.Streak
	}

	updated, err := s.repo.UpdateStreakFields(ctx, objID, update.Streak, longest, now, habit.DayKey(now))
	if err != nil {
		return nil, fmt.Errorf("failed to persist completion: %v", err)
	}

	record := &models.CompletionRecord{
		HabitID: objID,
		UserID:  userID,
		Date:    now,
	}
	if err := s.completionRepo.CreateCompletion(ctx, record); err != nil {
		logrus.WithError(err).Warnf("Failed to append completion record for habit %s", habitID)
	}

	s.notifyMilestones(ctx, updated)

	if s.ActivityService != nil {
		_ = s.ActivityService.LogActivity(ctx, userID, "habit_completed", objID,
			fmt.Sprintf("Completed habit %q (streak %d)", updated.Name, updated.Streak))
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id":  habitID,
		"streak":    updated.Streak,
		"continued": update.Continued,
	}).Info("Habit completion recorded")
	return updated, nil
}

// streak milestones worth celebrating with a notification
var streakMilestones = []int{7, 21, 30, 100}

func (s *HabitService) notifyMilestones(ctx context.Context, h *models.Habit) {
	if s.NotificationService == nil {
		return
	}
	for _, m := range streakMilestones {
		if h.Streak == m {
			go func(m int) {
				err := s.NotificationService.CreateNotification(
					context.Background(),
					h.UserID,
					fmt.Sprintf("streak_%d", m),
					"🔥 Streak Milestone",
					fmt.Sprintf("Your habit \"%s\" just hit a %d-day streak!", h.Name, m),
					&h.ID,
				)
				if err != nil {
					logrus.WithError(err).Warn("Failed to send streak milestone notification")
				}
			}(m)
			return
		}
	}
}
