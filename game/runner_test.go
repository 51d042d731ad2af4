package game

import (
	"sync"
	"testing"
	"time"

	"snake-battle/game/manager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerPlaysRequestedMatches(t *testing.T) {
	stats := manager.NewStateManager("")
	g := newTestGame(t, testConfig(21), stats)

	var mu sync.Mutex
	endings := 0
	r := NewRunner(g, 0, 3, nil)
	r.OnFrame(func(s Snapshot) {
		if s.Phase == GameOver {
			mu.Lock()
			endings++
			mu.Unlock()
		}
	})
	r.Start()

	select {
	case <-r.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not finish")
	}

	assert.Equal(t, 3, r.Played())
	assert.Len(t, stats.GetHistory(), 3)
	mu.Lock()
	assert.Equal(t, 3, endings)
	mu.Unlock()

	// stopping a finished runner is a no-op
	r.Stop()
}

func TestRunnerStop(t *testing.T) {
	g := newTestGame(t, testConfig(22), nil)
	r := NewRunner(g, time.Millisecond, 0, nil)
	r.Start()
	r.Start()

	select {
	case snap := <-r.Snapshots():
		assert.NotEmpty(t, snap.MatchID)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot published")
	}

	r.Stop()
	select {
	case <-r.Done():
	default:
		t.Fatal("done not closed after Stop")
	}
}

func TestPublishKeepsNewestFrame(t *testing.T) {
	g := newTestGame(t, testConfig(23), nil)
	r := NewRunner(g, 0, 1, nil)

	r.publish(Snapshot{Tick: 1})
	r.publish(Snapshot{Tick: 2})
	r.publish(Snapshot{Tick: 3})

	snap := <-r.Snapshots()
	require.Equal(t, 3, snap.Tick)
	select {
	case <-r.Snapshots():
		t.Fatal("stale frame kept")
	default:
	}
}
