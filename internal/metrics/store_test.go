package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/database"
	"meal-planner/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db.SQL)
	now := time.Now().UTC()

	require.NoError(t, store.Record(ctx, RunMetric{Passes: 1, DaysPlanned: 5, Latency: 40 * time.Millisecond, Timestamp: now}))
	require.NoError(t, store.Record(ctx, RunMetric{Passes: 3, DaysPlanned: 5, Latency: 80 * time.Millisecond, Timestamp: now}))
	require.NoError(t, store.Record(ctx, RunMetric{Failed: true, Timestamp: now}))
	require.NoError(t, store.Record(ctx, RunMetric{Passes: 2, DaysPlanned: 4, Timestamp: now.AddDate(0, 0, -40)}))

	t.Run("GetDailyRuns", func(t *testing.T) {
		runs, err := store.GetDailyRuns(ctx, 7)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, now.Format("2006-01-02"), runs[0].Date)
		assert.Equal(t, 3, runs[0].Runs)
		assert.Equal(t, 1, runs[0].Failed)
		assert.InDelta(t, 4.0/3, runs[0].AvgPasses, 0.001)
		assert.InDelta(t, 40.0, runs[0].AvgLatencyMS, 0.001)
	})

	t.Run("Cleanup", func(t *testing.T) {
		removed, err := store.Cleanup(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		removed, err = store.Cleanup(ctx, 30)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestGetStorageUsage(t *testing.T) {
	recipes := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(recipes, "a.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(recipes, "notes.txt"), []byte("ignored"), 0o644))

	u := GetStorageUsage(recipes, filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, u.RecipeFiles)
	assert.Equal(t, int64(2), u.RecipeBytes)
	assert.Zero(t, u.DataBytes)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", HumanBytes(512))
	assert.Equal(t, "1.5 KB", HumanBytes(1536))
	assert.Equal(t, "2.0 MB", HumanBytes(2*1024*1024))
}
