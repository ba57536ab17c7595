package kuf

import "math"

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func distSq(ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	return dx*dx + dy*dy
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type UnitType string

const (
	UnitMarine       UnitType = "marine"
	UnitSniper       UnitType = "sniper"
	UnitSplayer      UnitType = "splayer"
	UnitLaser        UnitType = "laser"
	UnitWorker       UnitType = "worker"
	UnitDroneSupport UnitType = "drone-support"
)

type EffectKind string

const (
	EffectBurn EffectKind = "burn"
	EffectSlow EffectKind = "slow"
)

// StatusEffect is one timed modifier on a marine. For burn, Magnitude is
// damage per second; for slow it is the speed multiplier (0.6 = 40% slow).
type StatusEffect struct {
	Kind      EffectKind `json:"kind"`
	Remaining float64    `json:"remaining"`
	Magnitude float64    `json:"magnitude"`
}

// Marine is any player-trained combat unit in the lane.
type Marine struct {
	ID            int64          `json:"id"`
	Type          UnitType       `json:"type"`
	Pos           Vec2           `json:"pos"`
	Vel           Vec2           `json:"-"`
	Radius        float64        `json:"radius"`
	Health        float64        `json:"health"`
	MaxHealth     float64        `json:"maxHealth"`
	Attack        float64        `json:"-"`
	AttackSpeed   float64        `json:"-"`
	Cooldown      float64        `json:"-"`
	Range         float64        `json:"-"`
	BaseMoveSpeed float64        `json:"-"`
	MoveSpeed     float64        `json:"-"`
	BulletSpeed   float64        `json:"-"`
	Effects       []StatusEffect `json:"effects,omitempty"`
	Waypoint      *Vec2          `json:"waypoint,omitempty"`
	Rotation      float64        `json:"rotation"` // Splayer visual spin
	RotationBoost float64        `json:"-"`        // Seconds of boosted spin left
}

// Turret is the umbrella enemy type: emplacements, mobile raiders, structures
// and barracks, distinguished by capability flags.
type Turret struct {
	ID          int64   `json:"id"`
	Archetype   string  `json:"archetype"`
	Pos         Vec2    `json:"pos"`
	Radius      float64 `json:"radius"`
	Health      float64 `json:"health"`
	MaxHealth   float64 `json:"maxHealth"`
	Attack      float64 `json:"-"`
	AttackSpeed float64 `json:"-"`
	Range       float64 `json:"-"`
	Level       int     `json:"level"`
	GoldValue   int     `json:"-"`
	Cooldown    float64 `json:"-"`
	MultiShot   int     `json:"-"`
	SpreadAngle float64 `json:"-"`

	IsWall      bool `json:"isWall,omitempty"`
	IsStructure bool `json:"isStructure,omitempty"` // Non-combat objective

	IsMine          bool    `json:"isMine,omitempty"`
	ExplosionRadius float64 `json:"-"`
	exploded        bool

	IsBarracks    bool    `json:"isBarracks,omitempty"`
	SpawnType     string  `json:"-"`
	SpawnRange    float64 `json:"-"`
	SpawnCooldown float64 `json:"-"`
	SpawnTimer    float64 `json:"-"`
	MaxSpawns     int     `json:"-"`
	CurrentSpawns int     `json:"-"`

	IsSupport       bool    `json:"isSupport,omitempty"`
	HealRange       float64 `json:"-"`
	HealPerSecond   float64 `json:"-"`
	HealVisualTimer float64 `json:"healPulse,omitempty"`
	HealTarget      int64   `json:"healTarget,omitempty"` // 0 = no active link

	IsMobile   bool    `json:"isMobile,omitempty"`
	MoveSpeed  float64 `json:"-"`
	SightRange float64 `json:"-"`

	IsStasisField bool    `json:"isStasisField,omitempty"`
	SlowRadius    float64 `json:"slowRadius,omitempty"`
	SlowAmount    float64 `json:"-"`
	FieldPulse    float64 `json:"fieldPulse,omitempty"`

	IsBuffNode      bool    `json:"isBuffNode,omitempty"`
	BuffRadius      float64 `json:"buffRadius,omitempty"`
	AttackSpeedMult float64 `json:"-"`
	DamageMult      float64 `json:"-"`

	// Bullet payload carried by this turret's shots, nil for plain damage.
	Effect *BulletEffect `json:"-"`
}

// Drone is a core-ship escort fighter.
type Drone struct {
	ID          int64   `json:"id"`
	Pos         Vec2    `json:"pos"`
	Vel         Vec2    `json:"-"`
	Radius      float64 `json:"radius"`
	Health      float64 `json:"health"`
	MaxHealth   float64 `json:"maxHealth"`
	Attack      float64 `json:"-"`
	AttackSpeed float64 `json:"-"`
	Cooldown    float64 `json:"-"`
	MoveSpeed   float64 `json:"-"`
	Range       float64 `json:"-"`
	BulletSpeed float64 `json:"-"`
}

type BulletOwner string

const (
	OwnerMarine BulletOwner = "marine"
	OwnerTurret BulletOwner = "turret"
	OwnerCore   BulletOwner = "coreShip"
)

// BulletEffect is the optional status payload a bullet applies on hit.
type BulletEffect struct {
	Kind      EffectKind `json:"kind"`
	Magnitude float64    `json:"magnitude"`
	Duration  float64    `json:"duration"`
}

type Bullet struct {
	ID     int64         `json:"id"`
	Owner  BulletOwner   `json:"owner"`
	Type   string        `json:"type"`
	Pos    Vec2          `json:"pos"`
	Vel    Vec2          `json:"-"`
	Speed  float64       `json:"-"`
	Damage float64       `json:"-"`
	Life   float64       `json:"-"` // Seconds remaining
	Homing bool          `json:"homing,omitempty"`
	Target int64         `json:"-"` // Homing target id, 0 = none
	Pierce int           `json:"-"` // Remaining distinct hits after the first
	Effect *BulletEffect `json:"-"`

	// Allocated only for piercing bullets; ids already damaged by this bullet.
	hits map[int64]struct{}
}

// Explosion is the visual/temporal record of a mine detonation; the damage is
// applied once at the moment of death, the radius only animates outward.
type Explosion struct {
	ID        int64   `json:"id"`
	Pos       Vec2    `json:"pos"`
	Radius    float64 `json:"radius"`
	MaxRadius float64 `json:"maxRadius"`
	Life      float64 `json:"life"`
	MaxLife   float64 `json:"maxLife"`
}

// CoreShip is the HUD-anchored player base entity.
type CoreShip struct {
	Pos       Vec2    `json:"pos"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`

	Cannons        int     `json:"cannons"`
	Attack         float64 `json:"-"`
	AttackSpeed    float64 `json:"-"`
	Range          float64 `json:"-"`
	CannonCooldown float64 `json:"-"`

	HullRepair float64 `json:"-"`
	repairTick float64

	HealingAuraRange float64 `json:"healingAuraRange"`
	HealingAuraRate  float64 `json:"-"`
	auraTick         float64

	Shield           float64 `json:"shield"`
	MaxShield        float64 `json:"maxShield"`
	ShieldRegenRate  float64 `json:"-"`
	ShieldRegenDelay float64 `json:"-"`
	ShieldTimer      float64 `json:"-"` // Seconds since last point of damage
	ShieldBroken     bool    `json:"shieldBroken"`

	DroneInterval float64 `json:"-"`
	DroneTimer    float64 `json:"-"`

	Level int     `json:"level"`
	Scale float64 `json:"scale"`
}

func (g *Game) allocID() int64 {
	g.nextID++
	return g.nextID
}

func (g *Game) turretByID(id int64) *Turret {
	if id == 0 {
		return nil
	}
	for _, t := range g.turrets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (g *Game) addMarine(m *Marine) *Marine {
	m.ID = g.allocID()
	if m.MoveSpeed == 0 {
		m.MoveSpeed = m.BaseMoveSpeed
	}
	g.marines = append(g.marines, m)
	return m
}

func (g *Game) addTurret(t *Turret) *Turret {
	t.ID = g.allocID()
	g.turrets = append(g.turrets, t)
	return t
}

func (g *Game) addDrone(d *Drone) *Drone {
	d.ID = g.allocID()
	g.drones = append(g.drones, d)
	return d
}

// removeDead is the pure filter pass run after all update logic, so no
// component ever mutates a collection it is iterating.
func (g *Game) removeDead() {
	marines := g.marines[:0]
	for _, m := range g.marines {
		if m.Health > 0 && m.Pos.Y > laneEndY {
			marines = append(marines, m)
		}
	}
	g.marines = marines

	turrets := g.turrets[:0]
	for _, t := range g.turrets {
		if t.Health > 0 {
			turrets = append(turrets, t)
		} else if g.targetOverride == t.ID {
			g.targetOverride = 0
		}
	}
	g.turrets = turrets

	drones := g.drones[:0]
	for _, d := range g.drones {
		if d.Health > 0 {
			drones = append(drones, d)
		}
	}
	g.drones = drones
}
