package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// maxHistory caps the number of match records kept on disk.
const maxHistory = 500

const Tie = "tie"

// MatchRecord is the persisted outcome of one match.
type MatchRecord struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Ticks     int       `json:"ticks"`
	Names     [2]string `json:"names"`
	Scores    [2]int    `json:"scores"`
	Winner    string    `json:"winner"`
	Reason    string    `json:"reason"`
}

type GameStats struct {
	HighScore int            `json:"highScore"`
	Wins      map[string]int `json:"wins"`
	History   []MatchRecord  `json:"history"`
}

// Summary aggregates the recorded history.
type Summary struct {
	Games        int
	AverageScore float64
	MedianScore  float64
	MaxScore     int
	Wins         map[string]int
}

// StateManager keeps match statistics and mirrors them to a JSON file. An
// empty filename keeps everything in memory.
type StateManager struct {
	filename string
	mutex    sync.RWMutex
	stats    GameStats
}

func NewStateManager(filename string) *StateManager {
	return &StateManager{
		filename: filename,
		stats: GameStats{
			Wins:    make(map[string]int),
			History: make([]MatchRecord, 0),
		},
	}
}

// LoadStats reads the stats file. A missing file is not an error.
func (sm *StateManager) LoadStats() error {
	if sm.filename == "" {
		return nil
	}
	data, err := os.ReadFile(sm.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading stats: %w", err)
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("parsing stats %s: %w", sm.filename, err)
	}
	if stats.Wins == nil {
		stats.Wins = make(map[string]int)
	}

	sm.mutex.Lock()
	sm.stats = stats
	sm.mutex.Unlock()
	return nil
}

func (sm *StateManager) SaveStats() error {
	if sm.filename == "" {
		return nil
	}
	sm.mutex.RLock()
	data, err := json.MarshalIndent(sm.stats, "", "  ")
	sm.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sm.filename), 0755); err != nil {
		return fmt.Errorf("creating stats directory: %w", err)
	}
	if err := os.WriteFile(sm.filename, data, 0644); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Record appends a finished match and saves the file.
func (sm *StateManager) Record(rec MatchRecord) error {
	sm.mutex.Lock()
	if len(sm.stats.History) >= maxHistory {
		sm.stats.History = sm.stats.History[1:]
	}
	sm.stats.History = append(sm.stats.History, rec)
	for _, s := range rec.Scores {
		if s > sm.stats.HighScore {
			sm.stats.HighScore = s
		}
	}
	sm.stats.Wins[rec.Winner]++
	sm.mutex.Unlock()

	return sm.SaveStats()
}

func (sm *StateManager) GetHighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stats.HighScore
}

func (sm *StateManager) GetHistory() []MatchRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	out := make([]MatchRecord, len(sm.stats.History))
	copy(out, sm.stats.History)
	return out
}

// Summary computes averages over every score of every recorded match.
// MaxScore is the all-time high score, which survives history trimming.
func (sm *StateManager) Summary() Summary {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	sum := Summary{
		Games:    len(sm.stats.History),
		MaxScore: sm.stats.HighScore,
		Wins:     make(map[string]int, len(sm.stats.Wins)),
	}
	for k, v := range sm.stats.Wins {
		sum.Wins[k] = v
	}
	if sum.Games == 0 {
		return sum
	}

	scores := make([]float64, 0, 2*sum.Games)
	total := 0.0
	for _, rec := range sm.stats.History {
		for _, s := range rec.Scores {
			scores = append(scores, float64(s))
			total += float64(s)
			if s > sum.MaxScore {
				sum.MaxScore = s
			}
		}
	}
	sum.AverageScore = total / float64(len(scores))

	sort.Float64s(scores)
	if len(scores)%2 == 0 {
		sum.MedianScore = (scores[len(scores)/2-1] + scores[len(scores)/2]) / 2
	} else {
		sum.MedianScore = scores[len(scores)/2]
	}
	return sum
}
