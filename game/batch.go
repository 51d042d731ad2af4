package game

import "snake-battle/game/manager"

// Batch tallies the results of consecutive matches.
type Batch struct {
	Matches    int
	Ties       int
	BestScore  int
	TotalScore int
}

// Add counts a final snapshot.
func (b *Batch) Add(snap Snapshot) {
	b.Matches++
	if snap.Winner == manager.Tie {
		b.Ties++
	}
	for _, s := range snap.Snakes {
		b.TotalScore += s.Score
		if s.Score > b.BestScore {
			b.BestScore = s.Score
		}
	}
}

// AverageScore is the mean score per snake.
func (b *Batch) AverageScore() float64 {
	if b.Matches == 0 {
		return 0
	}
	return float64(b.TotalScore) / float64(b.Matches*len(Snapshot{}.Snakes))
}
