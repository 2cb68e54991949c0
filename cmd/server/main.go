package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Dias221467/Habit_Manager/internal/config"
	"github.com/Dias221467/Habit_Manager/internal/database"
	"github.com/Dias221467/Habit_Manager/internal/handlers"
	"github.com/Dias221467/Habit_Manager/internal/jobs"
	"github.com/Dias221467/Habit_Manager/internal/repository"
	cron "github.com/Dias221467/Habit_Manager/internal/scheduler"
	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"github.com/Dias221467/Habit_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	activityService := services.NewActivityService(activityRepo)
	habitService := services.NewHabitService(habitRepo, completionRepo, reminderRepo, notificationService, activityService)
	progressService := services.NewProgressService(habitRepo, completionRepo)
	reminderService := services.NewReminderService(reminderRepo, habitRepo, notificationService)

	// --- Handlers ---
	feedHandler := handlers.NewFeedHandler(cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userService, cfg)
	habitHandler := handlers.NewHabitHandler(habitService, feedHandler)
	progressHandler := handlers.NewProgressHandler(progressService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Habit routes
	protectedHabitRoutes := router.PathPrefix("/habits").Subrouter()
	protectedHabitRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedHabitRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedHabitRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("", habitHandler.GetHabitsHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.GetHabitHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PUT")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	protectedHabitRoutes.HandleFunc("/{id}/complete", habitHandler.CompleteHabitHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("/{id}/archive", habitHandler.ArchiveHabitHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("/{id}/restore", habitHandler.RestoreHabitHandler).Methods("POST")

	// Progress routes
	protectedProgressRoutes := router.PathPrefix("/progress").Subrouter()
	protectedProgressRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedProgressRoutes.HandleFunc("/weekly", progressHandler.WeeklyHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/monthly", progressHandler.MonthlyHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/distribution", progressHandler.DistributionHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/streaks", progressHandler.StreaksHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/achievements", progressHandler.AchievementsHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/stats", progressHandler.StatsHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/attention", progressHandler.AttentionHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("/habits/{id}/history", progressHandler.CompletionHistoryHandler).Methods("GET")

	// Register User routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")

	// Password reset routes
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// Protected user routes (only authenticated users can access)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")

	// Notification routes
	protectedNotifRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotifRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotifRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	protectedNotifRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protectedNotifRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Reminder routes
	protectedReminderRoutes := router.PathPrefix("/reminders").Subrouter()
	protectedReminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	protectedReminderRoutes.HandleFunc("", reminderHandler.GetUserRemindersHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.UpdateReminderHandler).Methods("PUT")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.DeleteReminderHandler).Methods("DELETE")

	// Activity routes
	protectedActivityRoutes := router.PathPrefix("/activity").Subrouter()
	protectedActivityRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedActivityRoutes.HandleFunc("", activityHandler.GetRecentActivitiesHandler).Methods("GET")

	// Live habit feed (token authenticated via query param)
	router.HandleFunc("/ws/feed", feedHandler.FeedWebSocketHandler)

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background jobs
	attentionNotifier := jobs.NewAttentionNotifier(userRepo, habitRepo, notificationService)
	weeklySummary := jobs.NewWeeklySummary(userRepo, progressService)
	cron.StartHabitCronJobs(notificationService, reminderService, attentionNotifier, weeklySummary)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
