package manager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, a, b int, winner string) MatchRecord {
	return MatchRecord{
		ID:     id,
		Names:  [2]string{"Red Snake", "Blue Snake"},
		Scores: [2]int{a, b},
		Winner: winner,
		Reason: "time",
	}
}

func TestRecordAndSummary(t *testing.T) {
	sm := NewStateManager("")
	assert.Equal(t, 0, sm.Summary().Games)

	require.NoError(t, sm.Record(record("1", 4, 2, "Red Snake")))
	require.NoError(t, sm.Record(record("2", 1, 1, Tie)))
	require.NoError(t, sm.Record(record("3", 0, 7, "Blue Snake")))

	sum := sm.Summary()
	assert.Equal(t, 3, sum.Games)
	assert.Equal(t, 7, sum.MaxScore)
	assert.InDelta(t, 15.0/6.0, sum.AverageScore, 1e-9)
	assert.Equal(t, 1.5, sum.MedianScore)
	assert.Equal(t, map[string]int{"Red Snake": 1, "Blue Snake": 1, Tie: 1}, sum.Wins)
	assert.Equal(t, 7, sm.GetHighScore())
	assert.Len(t, sm.GetHistory(), 3)
}

func TestHistoryIsCapped(t *testing.T) {
	sm := NewStateManager("")
	for i := 0; i < maxHistory+10; i++ {
		require.NoError(t, sm.Record(record("x", i, 0, "Red Snake")))
	}
	hist := sm.GetHistory()
	assert.Len(t, hist, maxHistory)
	assert.Equal(t, 10, hist[0].Scores[0])
	assert.Equal(t, maxHistory+9, sm.Summary().MaxScore)
}

func TestStatsPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.json")

	sm := NewStateManager(path)
	require.NoError(t, sm.LoadStats())
	require.NoError(t, sm.Record(record("1", 3, 5, "Blue Snake")))

	reloaded := NewStateManager(path)
	require.NoError(t, reloaded.LoadStats())
	assert.Equal(t, 5, reloaded.GetHighScore())
	require.Len(t, reloaded.GetHistory(), 1)
	assert.Equal(t, "1", reloaded.GetHistory()[0].ID)
}

func TestLoadStatsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	assert.Error(t, NewStateManager(path).LoadStats())
}
