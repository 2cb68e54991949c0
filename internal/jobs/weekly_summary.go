package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/repository"
	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/Dias221467/Habit_Manager/pkg/email"
	"github.com/sirupsen/logrus"
)

// WeeklySummary mails each user a recap of their past week.
type WeeklySummary struct {
	UserRepo        *repository.UserRepository
	ProgressService *services.ProgressService
}

// NewWeeklySummary creates a new instance of WeeklySummary.
func NewWeeklySummary(userRepo *repository.UserRepository, progressService *services.ProgressService) *WeeklySummary {
	return &WeeklySummary{
		UserRepo:        userRepo,
		ProgressService: progressService,
	}
}

// Run builds and sends the weekly recap email for every verified user.
func (j *WeeklySummary) Run(ctx context.Context) error {
	users, err := j.UserRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %v", err)
	}

	now := time.Now()
	sent := 0

	for _, user := range users {
		if !user.IsVerified {
			continue
		}

		report, err := j.ProgressService.WeeklyCompletionData(ctx, user.ID, now, 1)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to build weekly summary for user %s", user.ID.Hex())
			continue
		}

		if report.TotalCompleted == 0 && report.TotalTarget == 0 {
			continue
		}

		streaks, err := j.ProgressService.CurrentStreaks(ctx, user.ID)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to fetch streaks for user %s", user.ID.Hex())
			streaks = nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Hi %s,\n\nHere is your week in habits:\n\n", user.Username)
		fmt.Fprintf(&sb, "Completions: %d of %d planned (%d%%)\n", report.TotalCompleted, report.TotalTarget, report.CompletionRate)
		if len(streaks) > 0 {
			sb.WriteString("\nTop streaks:\n")
			for _, s := range streaks {
				fmt.Fprintf(&sb, "  %s: %d days\n", s.HabitName, s.Current)
			}
		}
		sb.WriteString("\nKeep it up!\n")

		if err := email.SendEmail(user.Email, "Your Weekly Habit Summary", sb.String()); err != nil {
			logrus.WithError(err).Warnf("Failed to send weekly summary to %s", user.Email)
			continue
		}
		sent++
	}

	logrus.Infof("Weekly summary completed: %d emails sent", sent)
	return nil
}
