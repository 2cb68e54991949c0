package services

import (
	"context"
	"os"
	"testing"

	"github.com/Dias221467/Habit_Manager/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	os.Exit(m.Run())
}

func newTestHabitService() *HabitService {
	return NewHabitService(nil, nil, nil, nil, nil)
}

func TestUpdateHabit_RejectsNonStringFrequency(t *testing.T) {
	svc := newTestHabitService()
	id := primitive.NewObjectID().Hex()

	// A numeric frequency must never reach the document, or every later
	// decode of the habit fails.
	_, err := svc.UpdateHabit(context.Background(), id, map[string]interface{}{
		"frequency": float64(5),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency must be a string")

	_, err = svc.UpdateHabit(context.Background(), id, map[string]interface{}{
		"frequency": map[string]interface{}{"kind": "daily"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency must be a string")
}

func TestUpdateHabit_StripsProtectedFields(t *testing.T) {
	svc := newTestHabitService()
	id := primitive.NewObjectID().Hex()

	// Streak state and ownership are not editable; with nothing else in
	// the payload the update is rejected outright.
	_, err := svc.UpdateHabit(context.Background(), id, map[string]interface{}{
		"streak":         99,
		"longest_streak": 99,
		"user_id":        primitive.NewObjectID().Hex(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestUpdateHabit_InvalidID(t *testing.T) {
	svc := newTestHabitService()

	_, err := svc.UpdateHabit(context.Background(), "not-an-id", map[string]interface{}{
		"name": "Read",
	})
	assert.Error(t, err)
}

func TestHabitLocks_SerializeAndRelease(t *testing.T) {
	svc := newTestHabitService()
	id := primitive.NewObjectID().Hex()

	first := svc.lockForHabit(id)
	assert.Same(t, first, svc.lockForHabit(id))

	// Deleting the habit drops its lock so the map cannot grow forever.
	svc.releaseLock(id)
	assert.NotSame(t, first, svc.lockForHabit(id))
}
