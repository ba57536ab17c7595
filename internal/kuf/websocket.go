package kuf

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Player is one connected rendering client. The renderer only reads state
// snapshots and feeds back tap/toolbar input events.
type Player struct {
	ID      string
	PilotID string
	Conn    *websocket.Conn
	Send    chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewWebsocketHandler upgrades connections and attaches them to the game.
func NewWebsocketHandler(g *Game) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			g.log.Warn().Err(err).Msg("websocket upgrade")
			return
		}

		pilotID := r.URL.Query().Get("pilotID")
		if pilotID == "" {
			pilotID = "guest"
		}

		p := &Player{
			ID:      "p_" + uuid.NewString()[:8],
			PilotID: pilotID,
			Conn:    conn,
			Send:    make(chan []byte, 256),
		}

		g.Register <- p
		go writePump(p)
		go readPump(p, g)
	}
}

type inputMessage struct {
	Type      string  `json:"type"`
	ID        int64   `json:"id,omitempty"`
	Slot      int     `json:"slot,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Encounter string  `json:"encounter,omitempty"`
}

func readPump(p *Player, g *Game) {
	defer func() {
		g.Unregister <- p
		p.Conn.Close()
	}()

	for {
		_, message, err := p.Conn.ReadMessage()
		if err != nil {
			break
		}
		var in inputMessage
		if err := json.Unmarshal(message, &in); err != nil {
			continue
		}

		switch in.Type {
		case "select":
			g.SelectTarget(in.ID)
		case "clear_select":
			g.SelectTarget(0)
		case "move":
			g.CommandMove(in.X, in.Y)
		case "camera":
			g.SetCamera(in.X, in.Y)
		case "train":
			res := g.StartTraining(in.Slot)
			out, _ := json.Marshal(map[string]any{"type": "train_result", "slot": in.Slot, "result": res})
			select {
			case p.Send <- out:
			default:
			}
		case "cycle":
			g.CycleSlot(in.Slot)
		case "restart":
			g.Restart(in.Encounter, p.PilotID)
		}
	}
}

func writePump(p *Player) {
	defer p.Conn.Close()
	for msg := range p.Send {
		if err := p.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// Restart begins a fresh run once the current one has finished.
func (g *Game) Restart(encounter string, pilotID string) {
	loadout := LoadoutFor(g.store, pilotID)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.runActive {
		return
	}
	g.startRun(encounter, g.anchor, loadout)
}

// SetAnchor feeds the HUD base point the core ship and spawns hang off.
func (g *Game) SetAnchor(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !isFinite(x) || !isFinite(y) {
		return
	}
	g.anchor = Vec2{X: x, Y: y}
}

type stateMessage struct {
	Type       string          `json:"type"`
	Time       float64         `json:"time"`
	RunActive  bool            `json:"runActive"`
	Gold       int             `json:"gold"`
	Kills      int             `json:"kills"`
	Workers    int             `json:"workers"`
	KillBonus  int             `json:"killBonus"`
	Selected   int64           `json:"selected,omitempty"`
	Core       *CoreShip       `json:"core"`
	Marines    []*Marine       `json:"marines"`
	Turrets    []*Turret       `json:"turrets"`
	Drones     []*Drone        `json:"drones"`
	Bullets    []*Bullet       `json:"bullets"`
	Explosions []*Explosion    `json:"explosions"`
	Slots      []*TrainingSlot `json:"slots"`
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	defer g.mu.Unlock()

	msg := stateMessage{
		Type:       "state",
		Time:       g.gameTime,
		RunActive:  g.runActive,
		Gold:       g.gold,
		Kills:      g.kills,
		Workers:    g.workers,
		KillBonus:  g.killBonus,
		Selected:   g.targetOverride,
		Core:       g.core,
		Marines:    g.marines,
		Turrets:    g.turrets,
		Drones:     g.drones,
		Bullets:    g.bullets,
		Explosions: g.explosions,
		Slots:      g.slots,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for p := range g.players {
		select {
		case p.Send <- data:
		default:
			close(p.Send)
			delete(g.players, p)
		}
	}
}

func (g *Game) broadcastJSONLocked(v any) {
	data, _ := json.Marshal(v)
	for p := range g.players {
		select {
		case p.Send <- data:
		default:
		}
	}
}
