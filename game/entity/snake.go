package entity

import (
	"snake-battle/game/types"

	"github.com/google/uuid"
)

type Color struct {
	R, G, B uint8
}

var (
	Red  = Color{R: 255, G: 0, B: 0}
	Blue = Color{R: 0, G: 0, B: 255}
)

// Snake is the state of one agent on the grid. Body is head first.
type Snake struct {
	ID           string
	Name         string
	Color        Color
	IsAI         bool
	Body         []types.Point
	Direction    types.Direction // heading of the last applied move
	Requested    types.Direction // player input waiting for the next move
	Alive        bool
	Score        int
	History      *History
	StuckCounter int
}

func NewSnake(startPos types.Point, isAI bool, name string, color Color, historySize int) *Snake {
	return &Snake{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		IsAI:      isAI,
		Body:      []types.Point{startPos},
		Direction: types.Right,
		Requested: types.Right,
		Alive:     true,
		History:   NewHistory(historySize),
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

// BodyCopy returns a copy of the body safe to hand to readers.
func (s *Snake) BodyCopy() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}

// Advance moves the head one cell in dir. The tail stays when the new head
// lands on food, so the body grows by one. Returns whether food was eaten.
func (s *Snake) Advance(dir types.Direction, food types.Point) bool {
	newHead := s.GetHead().Add(dir.ToPoint())
	s.Direction = dir
	s.Requested = dir
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = newHead

	if newHead == food {
		s.Score++
		return true
	}
	s.Body = s.Body[:len(s.Body)-1]
	return false
}

// SetDirection records dir as the heading for the next move. A 180 degree
// reversal of the last applied move is refused, however many requests
// arrive between two moves.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if len(s.Body) > 1 && dir == s.Direction.Opposite() {
		return false
	}
	s.Requested = dir
	return true
}

// Face sets both the heading and the pending request, for spawning.
func (s *Snake) Face(dir types.Direction) {
	s.Direction = dir
	s.Requested = dir
}

// Kill marks the snake terminal. The body stays where it died.
func (s *Snake) Kill() {
	s.Alive = false
}

// AddPoints adds n to the score, never going below zero.
func (s *Snake) AddPoints(n int) {
	s.Score += n
	if s.Score < 0 {
		s.Score = 0
	}
}
