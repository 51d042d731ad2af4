package ui

import (
	"snake-battle/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var directionKeys = []struct {
	keys []int32
	dir  types.Direction
}{
	{[]int32{rl.KeyUp, rl.KeyW}, types.Up},
	{[]int32{rl.KeyDown, rl.KeyS}, types.Down},
	{[]int32{rl.KeyLeft, rl.KeyA}, types.Left},
	{[]int32{rl.KeyRight, rl.KeyD}, types.Right},
}

// DirectionPressed returns the direction of the first steering key pressed
// this frame.
func DirectionPressed() (types.Direction, bool) {
	for _, dk := range directionKeys {
		for _, k := range dk.keys {
			if rl.IsKeyPressed(k) {
				return dk.dir, true
			}
		}
	}
	return types.Up, false
}

func StartPressed() bool {
	return rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace)
}

func QuitPressed() bool {
	return rl.IsKeyPressed(rl.KeyQ)
}
