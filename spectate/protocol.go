package spectate

import (
	"fmt"

	"snake-battle/game"
	"snake-battle/game/entity"
)

// The feed uses short JSON keys to keep per-tick frames small.
//
//	"w" welcome {"t":"w","i":"conn-id","g":[20,20]}
//	"s" state   {"t":"s","m":"match-id","ph":"playing","k":12,"r":988,"g":[20,20],
//	             "f":[3,4],"u":[{"x":1,"y":2,"k":"speed"}],"s":[snakes],"w":"winner"}
//
// SnakeDTO: {"i":"id","n":"name","s":[[x,y],...],"c":"#ff0000","p":score,"a":1}
const (
	MsgWelcome = "w"
	MsgState   = "s"
)

type WelcomeMsg struct {
	Type string `json:"t"`
	ID   string `json:"i"`
	Grid [2]int `json:"g"`
}

type SnakeDTO struct {
	ID       string   `json:"i"`
	Name     string   `json:"n"`
	Segments [][2]int `json:"s"`
	Color    string   `json:"c"`
	Score    int      `json:"p"`
	Alive    int      `json:"a"` // 0 or 1
}

type PowerUpDTO struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"k"`
}

type StateMsg struct {
	Type      string       `json:"t"`
	Match     string       `json:"m"`
	Phase     string       `json:"ph"`
	Tick      int          `json:"k"`
	Remaining int          `json:"r"`
	Grid      [2]int       `json:"g"`
	Food      *[2]int      `json:"f,omitempty"`
	PowerUps  []PowerUpDTO `json:"u,omitempty"`
	Snakes    []SnakeDTO   `json:"s"`
	Winner    string       `json:"w,omitempty"`
	Reason    string       `json:"e,omitempty"`
}

// NewStateMsg converts a game snapshot to its wire form.
func NewStateMsg(snap game.Snapshot) StateMsg {
	msg := StateMsg{
		Type:      MsgState,
		Match:     snap.MatchID,
		Phase:     snap.Phase.String(),
		Tick:      snap.Tick,
		Remaining: snap.Remaining,
		Grid:      [2]int{snap.Grid.Width, snap.Grid.Height},
		Snakes:    make([]SnakeDTO, 0, len(snap.Snakes)),
		Winner:    snap.Winner,
		Reason:    snap.Reason,
	}
	if snap.HasFood {
		msg.Food = &[2]int{snap.Food.X, snap.Food.Y}
	}
	for _, p := range snap.PowerUps {
		msg.PowerUps = append(msg.PowerUps, PowerUpDTO{X: p.Pos.X, Y: p.Pos.Y, Kind: p.Kind.String()})
	}
	for _, s := range snap.Snakes {
		dto := SnakeDTO{
			ID:       s.ID,
			Name:     s.Name,
			Segments: make([][2]int, len(s.Body)),
			Color:    hexColor(s.Color),
			Score:    s.Score,
		}
		for i, p := range s.Body {
			dto.Segments[i] = [2]int{p.X, p.Y}
		}
		if s.Alive {
			dto.Alive = 1
		}
		msg.Snakes = append(msg.Snakes, dto)
	}
	return msg
}

func hexColor(c entity.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
