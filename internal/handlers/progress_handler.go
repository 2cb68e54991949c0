package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dias221467/Habit_Manager/internal/services"
	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"github.com/Dias221467/Habit_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler serves the dashboard's aggregated views.
type ProgressHandler struct {
	Service *services.ProgressService
}

// NewProgressHandler creates a new instance of ProgressHandler.
func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: service}
}

func (h *ProgressHandler) userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// GET /progress/weekly?weeks=1&tz=...
func (h *ProgressHandler) WeeklyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	report, err := h.Service.WeeklyCompletionData(r.Context(), userID, requestTime(r), queryInt(r, "weeks", 1))
	if err != nil {
		logger.Log.Errorf("Failed to build weekly progress: %v", err)
		http.Error(w, "Failed to build weekly progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GET /progress/monthly?months=6&tz=...
func (h *ProgressHandler) MonthlyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	report, err := h.Service.MonthlyCompletionData(r.Context(), userID, requestTime(r), queryInt(r, "months", 6))
	if err != nil {
		logger.Log.Errorf("Failed to build monthly progress: %v", err)
		http.Error(w, "Failed to build monthly progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GET /progress/distribution?days=30&tz=...
func (h *ProgressHandler) DistributionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.HabitDistributionData(r.Context(), userID, requestTime(r), queryInt(r, "days", 30))
	if err != nil {
		logger.Log.Errorf("Failed to build habit distribution: %v", err)
		http.Error(w, "Failed to build habit distribution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// GET /progress/streaks
func (h *ProgressHandler) StreaksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	streaks, err := h.Service.CurrentStreaks(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch streaks: %v", err)
		http.Error(w, "Failed to fetch streaks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(streaks)
}

// GET /progress/achievements
func (h *ProgressHandler) AchievementsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	achievements, err := h.Service.Achievements(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to evaluate achievements: %v", err)
		http.Error(w, "Failed to evaluate achievements", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(achievements)
}

// GET /progress/stats?tz=...
func (h *ProgressHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.HabitStats(r.Context(), userID, requestTime(r))
	if err != nil {
		logger.Log.Errorf("Failed to compute habit stats: %v", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GET /progress/habits/{id}/history?days=90
func (h *ProgressHandler) CompletionHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	habitID := mux.Vars(r)["id"]
	days := queryInt(r, "days", 90)
	since := requestTime(r).AddDate(0, 0, -days)

	records, err := h.Service.CompletionHistory(r.Context(), habitID, userID, since)
	if err != nil {
		logger.Log.Errorf("Failed to fetch completion history: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// GET /progress/attention?min_gap=3&tz=...
func (h *ProgressHandler) AttentionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	now := requestTime(r)
	stale, err := h.Service.HabitsNeedingAttention(r.Context(), userID, now, queryInt(r, "min_gap", 3))
	if err != nil {
		logger.Log.Errorf("Failed to fetch habits needing attention: %v", err)
		http.Error(w, "Failed to fetch habits needing attention", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stale)
}
