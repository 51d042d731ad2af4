package ui

import (
	"fmt"

	"snake-battle/game"
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10
	hudLines      = 2
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	hudHeight       int32
	fontSize        int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	tickMS int
	stats  *manager.StateManager
}

// NewRenderer must be called after the window is open. stats may be nil.
func NewRenderer(tickMS int, stats *manager.StateManager) *Renderer {
	r := &Renderer{tickMS: tickMS, stats: stats}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
	r.fontSize = max32(r.screenHeight/32, 12)
	r.hudHeight = (r.fontSize + 6) * hudLines
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func (r *Renderer) layout(grid types.Grid) {
	availableWidth := r.screenWidth - borderPadding*2
	availableHeight := r.screenHeight - r.hudHeight - borderPadding*2

	r.cellSize = max32(min32(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height)), 1)
	r.totalGridWidth = r.cellSize * int32(grid.Width)
	r.totalGridHeight = r.cellSize * int32(grid.Height)
	r.offsetX = (r.screenWidth - r.totalGridWidth) / 2
	r.offsetY = r.hudHeight + (r.screenHeight-r.hudHeight-r.totalGridHeight)/2
}

// Draw renders one frame.
func (r *Renderer) Draw(snap game.Snapshot) {
	r.UpdateDimensions()
	r.layout(snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	r.drawGrid(snap.Grid)
	if snap.HasFood {
		r.fillCell(snap.Food, rl.Red)
	}
	for _, p := range snap.PowerUps {
		r.drawPowerUp(p)
	}
	for _, s := range snap.Snakes {
		r.drawSnake(s)
	}
	r.drawHUD(snap)

	switch snap.Phase {
	case game.Start:
		r.drawBanner("Snake Battle", "Press ENTER to start, arrows to steer, Q to quit")
	case game.GameOver:
		title := "Tie!"
		if snap.Winner != manager.Tie {
			title = snap.Winner + " wins!"
		}
		r.drawBanner(title, "Press ENTER to play again, Q to quit")
	}

	rl.EndDrawing()
}

func (r *Renderer) drawGrid(grid types.Grid) {
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Black)
	if r.cellSize < 4 {
		return
	}
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			rl.DrawRectangleLines(
				r.offsetX+int32(x)*r.cellSize,
				r.offsetY+int32(y)*r.cellSize,
				r.cellSize, r.cellSize, rl.Color{R: 40, G: 40, B: 40, A: 255})
		}
	}
}

func (r *Renderer) fillCell(p types.Point, color rl.Color) {
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize,
		r.offsetY+int32(p.Y)*r.cellSize,
		r.cellSize, r.cellSize, color)
}

func toRL(c entity.Color, alpha uint8) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

func brighten(c entity.Color) rl.Color {
	scale := func(v uint8) uint8 {
		s := int(v) + 80
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return rl.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

func (r *Renderer) drawSnake(s game.SnakeView) {
	if len(s.Body) == 0 {
		return
	}
	alpha := uint8(255)
	if !s.Alive {
		alpha = 90
	}
	body := toRL(s.Color, alpha)
	for i := len(s.Body) - 1; i >= 1; i-- {
		r.fillCell(s.Body[i], body)
	}
	head := s.Head()
	if s.Alive {
		r.fillCell(head, brighten(s.Color))
		r.drawHeadIndicator(head, s.Direction)
	} else {
		r.fillCell(head, rl.Gray)
	}
}

func (r *Renderer) drawHeadIndicator(p types.Point, dir types.Direction) {
	headX := r.offsetX + int32(p.X)*r.cellSize
	headY := r.offsetY + int32(p.Y)*r.cellSize
	cell := r.cellSize
	half := cell / 2
	v := func(x, y int32) rl.Vector2 { return rl.Vector2{X: float32(x), Y: float32(y)} }

	// raylib expects counter-clockwise vertices
	switch dir {
	case types.Right:
		rl.DrawTriangle(v(headX+cell, headY+half), v(headX+half, headY), v(headX+half, headY+cell), rl.Yellow)
	case types.Left:
		rl.DrawTriangle(v(headX, headY+half), v(headX+half, headY+cell), v(headX+half, headY), rl.Yellow)
	case types.Down:
		rl.DrawTriangle(v(headX+half, headY+cell), v(headX+cell, headY+half), v(headX, headY+half), rl.Yellow)
	default:
		rl.DrawTriangle(v(headX+half, headY), v(headX, headY+half), v(headX+cell, headY+half), rl.Yellow)
	}
}

func (r *Renderer) drawPowerUp(p manager.PowerUp) {
	var color rl.Color
	switch p.Kind {
	case manager.Speed:
		color = rl.Color{R: 0, G: 220, B: 220, A: 255}
	case manager.Shield:
		color = rl.Color{R: 160, G: 160, B: 255, A: 255}
	default:
		color = rl.Color{R: 255, G: 200, B: 0, A: 255}
	}
	inset := r.cellSize / 4
	rl.DrawRectangle(
		r.offsetX+int32(p.Pos.X)*r.cellSize+inset,
		r.offsetY+int32(p.Pos.Y)*r.cellSize+inset,
		r.cellSize-2*inset, r.cellSize-2*inset, color)
}

func (r *Renderer) drawHUD(snap game.Snapshot) {
	lineHeight := r.fontSize + 6
	y := int32(borderPadding / 2)

	first, second := snap.Snakes[0], snap.Snakes[1]
	left := fmt.Sprintf("%s: %d", first.Name, first.Score)
	rl.DrawText(left, borderPadding, y, r.fontSize, toRL(first.Color, 255))

	right := fmt.Sprintf("%s: %d", second.Name, second.Score)
	w := rl.MeasureText(right, r.fontSize)
	rl.DrawText(right, r.screenWidth-borderPadding-w, y, r.fontSize, toRL(second.Color, 255))

	timer := fmt.Sprintf("%ds", snap.RemainingSeconds(r.tickMS))
	tw := rl.MeasureText(timer, r.fontSize)
	rl.DrawText(timer, (r.screenWidth-tw)/2, y, r.fontSize, rl.White)

	if r.stats == nil {
		return
	}
	sum := r.stats.Summary()
	info := fmt.Sprintf("Games: %d  Best: %d  Avg: %.1f", sum.Games, sum.MaxScore, sum.AverageScore)
	iw := rl.MeasureText(info, r.fontSize*3/4)
	rl.DrawText(info, (r.screenWidth-iw)/2, y+lineHeight, r.fontSize*3/4, rl.Gray)
}

func (r *Renderer) drawBanner(title, hint string) {
	boxH := r.fontSize * 5
	boxY := r.offsetY + (r.totalGridHeight-boxH)/2
	rl.DrawRectangle(r.offsetX, boxY, r.totalGridWidth, boxH, rl.Color{R: 0, G: 0, B: 0, A: 200})

	titleSize := r.fontSize * 2
	tw := rl.MeasureText(title, titleSize)
	rl.DrawText(title, r.offsetX+(r.totalGridWidth-tw)/2, boxY+r.fontSize/2, titleSize, rl.White)

	hintSize := max32(r.fontSize*2/3, 10)
	hw := rl.MeasureText(hint, hintSize)
	rl.DrawText(hint, r.offsetX+(r.totalGridWidth-hw)/2, boxY+r.fontSize*3, hintSize, rl.Gray)
}
