package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/habit"
	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/internal/repository"
	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/sirupsen/logrus"
)

// Habits untouched for this many calendar days trigger a nudge.
const attentionGapDays = 3

type AttentionNotifier struct {
	UserRepo            *repository.UserRepository
	HabitRepo           *repository.HabitRepository
	NotificationService *services.NotificationService
}

// NewAttentionNotifier creates a new instance of AttentionNotifier.
func NewAttentionNotifier(userRepo *repository.UserRepository, habitRepo *repository.HabitRepository, notifService *services.NotificationService) *AttentionNotifier {
	return &AttentionNotifier{
		UserRepo:            userRepo,
		HabitRepo:           habitRepo,
		NotificationService: notifService,
	}
}

// RunDailyScan nudges users about active habits that have gone stale. At
// most one nudge per habit per day.
func (a *AttentionNotifier) RunDailyScan(ctx context.Context) error {
	users, err := a.UserRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %v", err)
	}

	now := time.Now()
	nudged := 0

	for _, user := range users {
		habits, err := a.HabitRepo.GetHabits(ctx, user.ID, models.HabitStatusActive, "")
		if err != nil {
			logrus.WithError(err).Warnf("Failed to fetch habits for user %s", user.ID.Hex())
			continue
		}

		for i := range habits {
			h := &habits[i]
			if !habit.NeedsAttention(h, now, attentionGapDays) {
				continue
			}

			notifType := fmt.Sprintf("habit_attention_%s", h.ID.Hex())
			existing, err := a.NotificationService.GetLatestNotificationByType(ctx, user.ID, notifType)
			if err == nil && existing != nil && now.Sub(existing.CreatedAt) < 24*time.Hour {
				continue
			}

			message := fmt.Sprintf("Your habit \"%s\" hasn't been completed in a while. A quick win today keeps it alive!", h.Name)
			if err := a.NotificationService.CreateNotification(ctx, user.ID, notifType, "Habit Needs Attention", message, &h.ID); err != nil {
				logrus.WithError(err).Warnf("Failed to send attention notification for habit %s", h.ID.Hex())
				continue
			}
			nudged++
		}
	}

	logrus.Infof("Attention scan completed: %d habits nudged", nudged)
	return nil
}
