package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/habit"
	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/Dias221467/Habit_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitHandler handles HTTP requests related to habits.
type HabitHandler struct {
	Service *services.HabitService
	Feed    *FeedHandler
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(habitService *services.HabitService, feed *FeedHandler) *HabitHandler {
	return &HabitHandler{
		Service: habitService,
		Feed:    feed,
	}
}

// habitView is a habit plus its computed done-today flag. The flag is never
// stored; it is derived from the last completion date at response time.
type habitView struct {
	models.Habit
	CompletedToday bool `json:"completed_today"`
}

func viewOf(h *models.Habit, now time.Time) habitView {
	return habitView{Habit: *h, CompletedToday: habit.IsCompletedToday(h, now)}
}

// requestTime resolves "now" for the request. Clients pass their IANA zone
// in the tz query parameter so calendar-day boundaries follow the user's
// clock, not the server's.
func requestTime(r *http.Request) time.Time {
	if tz := r.URL.Query().Get("tz"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return time.Now().In(loc)
		}
	}
	return time.Now()
}

// CreateHabitHandler handles the creation of a new habit.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during habit creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		TimeOfDay   string `json:"time_of_day"`
		Color       string `json:"color"`
		Frequency   string `json:"frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	newHabit := models.Habit{
		UserID:      userID,
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		TimeOfDay:   payload.TimeOfDay,
		Color:       payload.Color,
		Frequency:   models.FrequencySpec{Raw: payload.Frequency},
	}

	created, err := h.Service.CreateHabit(r.Context(), &newHabit)
	if err != nil {
		logrus.WithError(err).Error("Failed to create habit")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": created.ID.Hex(),
	}).Info("Habit successfully created")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(created, requestTime(r)))
}

// GetHabitHandler handles fetching a single habit by its ID.
func (h *HabitHandler) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	found, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}

	if found.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only access your own habits", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(found, requestTime(r)))
}

// GetHabitsHandler lists the user's habits, filtered by optional status and
// category query parameters.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")

	habits, err := h.Service.GetHabits(r.Context(), userID, status, category)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch habits")
		http.Error(w, "Failed to fetch habits", http.StatusInternalServerError)
		return
	}

	now := requestTime(r)
	views := make([]habitView, 0, len(habits))
	for i := range habits {
		views = append(views, viewOf(&habits[i], now))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// UpdateHabitHandler applies edits to a habit's descriptive fields.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}
	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own habits", http.StatusForbidden)
		return
	}

	var update map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateHabit(r.Context(), habitID, update)
	if err != nil {
		logrus.WithError(err).Error("Failed to update habit")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(updated, requestTime(r)))
}

// ArchiveHabitHandler freezes a habit without losing its history.
func (h *HabitHandler) ArchiveHabitHandler(w http.ResponseWriter, r *http.Request) {
	h.setStatusHandler(w, r, true)
}

// RestoreHabitHandler brings an archived habit back into the active set.
func (h *HabitHandler) RestoreHabitHandler(w http.ResponseWriter, r *http.Request) {
	h.setStatusHandler(w, r, false)
}

func (h *HabitHandler) setStatusHandler(w http.ResponseWriter, r *http.Request, archive bool) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}
	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var updated *models.Habit
	if archive {
		updated, err = h.Service.ArchiveHabit(r.Context(), habitID)
	} else {
		updated, err = h.Service.RestoreHabit(r.Context(), habitID)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(updated, requestTime(r)))
}

// DeleteHabitHandler removes a habit and everything attached to it.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}
	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only delete your own habits", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), habitID); err != nil {
		logrus.WithError(err).Error("Failed to delete habit")
		http.Error(w, "Failed to delete habit", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Habit deleted"})
}

// CompleteHabitHandler marks a habit done for today. Completing the same
// habit twice on one calendar day returns 409 Conflict.
func (h *HabitHandler) CompleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	now := requestTime(r)
	updated, err := h.Service.RecordCompletion(r.Context(), habitID, userID, now)
	if err != nil {
		if errors.Is(err, habit.ErrAlreadyCompleted) {
			http.Error(w, "Habit already completed today", http.StatusConflict)
			return
		}
		logrus.WithError(err).Error("Failed to record habit completion")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.Feed != nil {
		h.Feed.Publish(claims.UserID, FeedEvent{
			Type:    "habit_completed",
			HabitID: updated.ID.Hex(),
			Name:    updated.Name,
			Streak:  updated.Streak,
		})
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": habitID,
		"streak":  updated.Streak,
	}).Info("Habit completion recorded")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(updated, now))
}
