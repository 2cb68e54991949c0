package cron

import (
	"context"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/jobs"
	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func StartHabitCronJobs(
	notificationService *services.NotificationService,
	reminderService *services.ReminderService,
	attentionNotifier *jobs.AttentionNotifier,
	weeklySummary *jobs.WeeklySummary,
) {
	c := cron.New()

	// Fire due habit reminders
	c.AddFunc("* * * * *", func() {
		err := reminderService.FireDueReminders(context.Background(), time.Now())
		if err != nil {
			logrus.WithError(err).Error("FireDueReminders failed")
		}
	})

	// Inactive user reminders
	c.AddFunc("0 0 * * *", func() {
		err := notificationService.CheckInactiveUsers(context.Background())
		if err != nil {
			logrus.WithError(err).Error("CheckInactiveUsers failed")
		}
	})

	// Stale habit nudges every morning
	c.AddFunc("0 9 * * *", func() {
		err := attentionNotifier.RunDailyScan(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Attention scan failed")
		}
	})

	// Purge notifications older than their retention window
	c.AddFunc("30 0 * * *", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	// Weekly recap email on Monday mornings
	c.AddFunc("0 8 * * 1", func() {
		err := weeklySummary.Run(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Weekly summary failed")
		}
	})

	c.Start()
}
