package kuf

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kuf/internal/data"
	"kuf/internal/meta"
)

const (
	TickRate = 30

	maxDelta = 0.25 // Clamp pathological frame gaps

	// Movement
	steerAccel   = 240.0 // units/s^2, per axis
	arriveRadius = 5.0
	holdBuffer   = 12.0
	velDecayRate = 6.0     // 1/s exponential deceleration
	laneEndY     = -1600.0 // Marines past this have left the lane

	// Projectiles
	homingTurnRate = 3.0 // rad/s
	bulletRadius   = 3.0
	bulletLife     = 3.0
	viewWidth      = 480.0
	viewHeight     = 840.0
	cullMargin     = 120.0

	// Firing patterns
	splayerShots        = 8
	splayerDamageFactor = 0.25
	splayerSpinBoost    = 0.75 // Seconds
	laserPierce         = 3
	cannonSpread        = 0.35 // Radians across the full fan

	// Core ship
	coreCadence      = 0.1 // Repair/heal aura internal tick
	droneSpawnRadius = 60.0

	explosionLife = 0.45

	slowFloor = 0.2

	// Economy
	startingGold        = 10
	workerCostIncrement = 2
	killBonusPerWorker  = 1
	spawnJitter         = 18.0
)

// Loadout is the precomputed stat input for a run, derived from a pilot's
// shard allocation before the engine ever sees it.
type Loadout struct {
	Units map[string]meta.UnitStats
	Core  meta.CoreShipStats
}

// DefaultLoadout is the zero-allocation stat set.
func DefaultLoadout() Loadout {
	units := make(map[string]meta.UnitStats)
	for _, id := range meta.UnitIDs() {
		units[id] = meta.CalculateKufUnitStats(id, nil)
	}
	return Loadout{Units: units, Core: meta.CalculateCoreShipStats(nil)}
}

// LoadoutFor derives a loadout from a pilot's stored allocation.
func LoadoutFor(store *data.Store, pilotID string) Loadout {
	alloc := meta.LoadAllocation(store, pilotID)
	units := make(map[string]meta.UnitStats)
	for _, id := range meta.UnitIDs() {
		units[id] = meta.CalculateKufUnitStats(id, alloc)
	}
	return Loadout{Units: units, Core: meta.CalculateCoreShipStats(alloc)}
}

// Game owns all live simulation state for one Kuf encounter. Collections are
// mutated only inside the tick under mu; clients read snapshots.
type Game struct {
	mu    sync.Mutex
	log   zerolog.Logger
	store *data.Store

	players    map[*Player]bool
	Register   chan *Player
	Unregister chan *Player

	nextID     int64
	marines    []*Marine
	turrets    []*Turret
	drones     []*Drone
	bullets    []*Bullet
	explosions []*Explosion
	core       *CoreShip

	gold      int
	kills     int
	workers   int
	killBonus int

	targetOverride int64 // Pinned enemy id, 0 = none
	camera         Vec2
	anchor         Vec2

	slots   []*TrainingSlot
	loadout Loadout

	// DefaultEncounter is the layout used when a run auto-starts; set once
	// at wiring time, before StartLoop.
	DefaultEncounter string

	encounter  string
	runID      string
	runActive  bool
	gameTime   float64
	structures int // Structure objectives placed at run start
}

func NewGame(log zerolog.Logger, store *data.Store) *Game {
	return &Game{
		log:        log,
		store:      store,
		players:    make(map[*Player]bool),
		Register:   make(chan *Player),
		Unregister: make(chan *Player),
	}
}

// StartRun resets all collections and places the encounter. The anchor is the
// externally supplied HUD base point the core ship and spawns hang off.
func (g *Game) StartRun(encounter string, anchor Vec2, loadout Loadout) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startRun(encounter, anchor, loadout)
}

func (g *Game) startRun(encounter string, anchor Vec2, loadout Loadout) {
	layout, ok := Encounters[encounter]
	if !ok {
		encounter = "kuf"
		layout = Encounters[encounter]
	}

	g.nextID = 0
	g.marines = g.marines[:0]
	g.turrets = g.turrets[:0]
	g.drones = g.drones[:0]
	g.bullets = g.bullets[:0]
	g.explosions = g.explosions[:0]
	g.gold = startingGold
	g.kills = 0
	g.workers = 0
	g.killBonus = 0
	g.targetOverride = 0
	g.camera = Vec2{}
	g.anchor = anchor
	g.loadout = loadout
	g.encounter = encounter
	g.gameTime = 0
	g.structures = 0

	c := loadout.Core
	g.core = &CoreShip{
		Pos:              anchor,
		Health:           c.Health,
		MaxHealth:        c.Health,
		Cannons:          c.Cannons,
		Attack:           c.Attack,
		AttackSpeed:      c.AttackSpeed,
		Range:            c.Range,
		HullRepair:       c.HullRepair,
		HealingAuraRange: c.HealingAuraRange,
		HealingAuraRate:  c.HealingAuraRate,
		Shield:           c.Shield,
		MaxShield:        c.Shield,
		ShieldRegenRate:  c.ShieldRegenRate,
		ShieldRegenDelay: c.ShieldRegenDelay,
		DroneInterval:    c.DroneInterval,
		DroneTimer:       c.DroneInterval,
		Level:            1,
		Scale:            1,
	}

	for _, p := range layout {
		t := g.spawnTurret(p.Archetype, Vec2{X: anchor.X + p.X, Y: anchor.Y + p.Y}, p.Level)
		if t != nil && t.IsStructure {
			g.structures++
		}
	}

	g.initSlots()
	g.runID = "run_" + uuid.NewString()[:8]
	g.runActive = true
	g.log.Info().Str("run", g.runID).Str("encounter", encounter).Msg("run started")
}

// StartLoop drives the simulation at TickRate until the process exits.
func (g *Game) StartLoop() {
	go g.handleConnections()
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	lastTime := time.Now()
	for range ticker.C {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		g.Update(dt)
		g.broadcastState()
	}
}

func (g *Game) handleConnections() {
	for {
		select {
		case p := <-g.Register:
			g.mu.Lock()
			g.players[p] = true
			if !g.runActive {
				g.startRun(g.DefaultEncounter, Vec2{X: 0, Y: 0}, LoadoutFor(g.store, p.PilotID))
			}
			g.mu.Unlock()
			g.log.Info().Str("player", p.ID).Msg("player joined")
		case p := <-g.Unregister:
			g.mu.Lock()
			if _, ok := g.players[p]; ok {
				delete(g.players, p)
				close(p.Send)
			}
			g.mu.Unlock()
			g.log.Info().Str("player", p.ID).Msg("player left")
		}
	}
}

// Update advances the simulation by dt seconds. Invoked once per frame.
func (g *Game) Update(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.update(dt)
}

func (g *Game) update(dt float64) {
	if !isFinite(dt) || dt <= 0 {
		return
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	if !g.runActive {
		return
	}
	g.gameTime += dt

	g.updateMarines(dt)
	g.updateTurrets(dt)
	g.updateDrones(dt)
	g.updateCoreShip(dt)
	g.updateBullets(dt)
	g.updateExplosions(dt)
	g.advanceTraining(dt)

	g.removeDead()
	g.checkRunEnd()
}

func (g *Game) checkRunEnd() {
	if g.core != nil && g.core.Health <= 0 {
		g.endRun(false)
		return
	}
	if g.structures == 0 {
		return
	}
	for _, t := range g.turrets {
		if t.IsStructure {
			return
		}
	}
	g.endRun(true)
}

func (g *Game) endRun(victory bool) {
	g.runActive = false
	g.log.Info().
		Str("run", g.runID).
		Bool("victory", victory).
		Int("gold", g.gold).
		Int("kills", g.kills).
		Float64("duration", g.gameTime).
		Msg("run over")

	shards := meta.ShardReward(g.gold, g.kills, victory)
	for p := range g.players {
		if p.PilotID == "" || p.PilotID == "guest" {
			continue
		}
		alloc := meta.LoadAllocation(g.store, p.PilotID)
		alloc.Shards += shards
		alloc.TotalRuns++
		alloc.TotalKills += g.kills
		if g.gold > alloc.BestGold {
			alloc.BestGold = g.gold
		}
		meta.SaveAllocation(g.store, p.PilotID, alloc)
		if g.store != nil {
			g.store.AdjustShards(p.PilotID, shards)
			if err := g.store.InsertRunResult(p.PilotID, g.encounter, g.gold, g.kills, victory, g.gameTime); err != nil {
				g.log.Error().Err(err).Str("pilot", p.PilotID).Msg("record run result")
			}
		}
	}

	g.broadcastJSONLocked(map[string]any{
		"type":    "run_over",
		"victory": victory,
		"gold":    g.gold,
		"kills":   g.kills,
		"shards":  shards,
		"time":    g.gameTime,
	})
}

// Gold returns the current in-run gold balance.
func (g *Game) Gold() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gold
}

// Kills returns the in-run kill counter.
func (g *Game) Kills() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.kills
}

// SelectTarget pins the enemy every marine prioritizes while it lives and
// stays in range. Unknown ids clear the pin.
func (g *Game) SelectTarget(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.turretByID(id) == nil {
		g.targetOverride = 0
		return
	}
	g.targetOverride = id
}

// CommandMove issues an attack-move waypoint to every marine.
func (g *Game) CommandMove(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !isFinite(x) || !isFinite(y) {
		return
	}
	for _, m := range g.marines {
		wp := Vec2{X: x, Y: y}
		m.Waypoint = &wp
	}
}

// SetCamera records the renderer's pan offset; consumed by bullet culling.
func (g *Game) SetCamera(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !isFinite(x) || !isFinite(y) {
		return
	}
	g.camera = Vec2{X: x, Y: y}
}
