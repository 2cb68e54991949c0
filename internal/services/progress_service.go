package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/habit"
	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/internal/repository"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressService assembles progress views. It loads one snapshot of habits
// and completions per request and hands it to the pure aggregation functions
// in the habit package; nothing here writes to storage.
type ProgressService struct {
	habitRepo      *repository.HabitRepository
	completionRepo *repository.CompletionRepository
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(habitRepo *repository.HabitRepository, completionRepo *repository.CompletionRepository) *ProgressService {
	return &ProgressService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

// snapshot loads the user's habits plus all completions since the given
// time, grouped by habit.
func (s *ProgressService) snapshot(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]models.Habit, habit.CompletionSet, error) {
	habits, err := s.habitRepo.GetHabits(ctx, userID, "", "")
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to load habits for progress snapshot")
		return nil, nil, fmt.Errorf("failed to load habits: %v", err)
	}

	records, err := s.completionRepo.GetUserCompletionsSince(ctx, userID, since)
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to load completions for progress snapshot")
		return nil, nil, fmt.Errorf("failed to load completions: %v", err)
	}

	set := make(habit.CompletionSet, len(habits))
	for _, rec := range records {
		key := rec.HabitID.Hex()
		set[key] = append(set[key], rec)
	}
	return habits, set, nil
}

// WeeklyCompletionData returns weekday buckets of completions vs targets
// over the trailing weeksBack weeks.
func (s *ProgressService) WeeklyCompletionData(ctx context.Context, userID primitive.ObjectID, now time.Time, weeksBack int) (models.WeeklyReport, error) {
	if weeksBack <= 0 {
		weeksBack = 1
	}
	since := now.AddDate(0, 0, -weeksBack*7)
	habits, set, err := s.snapshot(ctx, userID, since)
	if err != nil {
		return models.WeeklyReport{}, err
	}
	return habit.WeeklyView(habits, set, now, weeksBack), nil
}

// MonthlyCompletionData returns per-month buckets of completions vs targets
// for the trailing monthsBack calendar months.
func (s *ProgressService) MonthlyCompletionData(ctx context.Context, userID primitive.ObjectID, now time.Time, monthsBack int) (models.MonthlyReport, error) {
	if monthsBack <= 0 {
		monthsBack = 6
	}
	since := now.AddDate(0, -monthsBack, 0)
	habits, set, err := s.snapshot(ctx, userID, since)
	if err != nil {
		return models.MonthlyReport{}, err
	}
	return habit.MonthlyView(habits, set, now, monthsBack), nil
}

// HabitDistributionData ranks habits by completion rate over the trailing
// daysBack days.
func (s *ProgressService) HabitDistributionData(ctx context.Context, userID primitive.ObjectID, now time.Time, daysBack int) ([]models.DistributionEntry, error) {
	if daysBack <= 0 {
		daysBack = 30
	}
	since := now.AddDate(0, 0, -daysBack)
	habits, set, err := s.snapshot(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return habit.HabitDistribution(habits, set, now, daysBack), nil
}

// CurrentStreaks returns the user's top streaks.
func (s *ProgressService) CurrentStreaks(ctx context.Context, userID primitive.ObjectID) ([]models.StreakEntry, error) {
	habits, err := s.habitRepo.GetHabits(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %v", err)
	}
	return habit.CurrentStreaks(habits), nil
}

// Achievements evaluates the achievement set against the user's habits.
func (s *ProgressService) Achievements(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	habits, err := s.habitRepo.GetHabits(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %v", err)
	}
	return habit.Evaluate(habits), nil
}

// HabitStats summarizes the user's habit collection.
func (s *ProgressService) HabitStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (models.HabitStats, error) {
	habits, err := s.habitRepo.GetHabits(ctx, userID, "", "")
	if err != nil {
		return models.HabitStats{}, fmt.Errorf("failed to load habits: %v", err)
	}
	return habit.Stats(habits, now), nil
}

// CompletionHistory returns one habit's completion log since the given time.
// The habit must belong to the requesting user.
func (s *ProgressService) CompletionHistory(ctx context.Context, habitID string, userID primitive.ObjectID, since time.Time) ([]models.CompletionRecord, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	h, err := s.habitRepo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("habit not found: %v", err)
	}
	if h.UserID != userID {
		return nil, fmt.Errorf("habit does not belong to user")
	}

	return s.completionRepo.GetCompletionsSince(ctx, objID, since)
}

// HabitsNeedingAttention lists active habits untouched for minGapDays or
// more calendar days.
func (s *ProgressService) HabitsNeedingAttention(ctx context.Context, userID primitive.ObjectID, now time.Time, minGapDays int) ([]models.Habit, error) {
	habits, err := s.habitRepo.GetHabits(ctx, userID, models.HabitStatusActive, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %v", err)
	}

	var stale []models.Habit
	for i := range habits {
		if habit.NeedsAttention(&habits[i], now, minGapDays) {
			stale = append(stale, habits[i])
		}
	}
	return stale, nil
}
