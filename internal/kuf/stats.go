package kuf

// Turret archetypes and encounter layouts. The level/map loader hands the
// engine a Placement list; everything else about an enemy is derived here.

type turretArchetype struct {
	Health      float64
	Attack      float64
	AttackSpeed float64
	Range       float64
	Radius      float64
	GoldValue   int
	MultiShot   int
	SpreadAngle float64

	Wall      bool
	Structure bool

	Mine            bool
	ExplosionRadius float64

	Barracks      bool
	SpawnType     string
	SpawnRange    float64
	SpawnCooldown float64
	MaxSpawns     int

	Support       bool
	HealRange     float64
	HealPerSecond float64

	Mobile     bool
	MoveSpeed  float64
	SightRange float64

	StasisField bool
	SlowRadius  float64
	SlowAmount  float64

	BuffNode        bool
	BuffRadius      float64
	AttackSpeedMult float64
	DamageMult      float64

	Effect *BulletEffect
}

var turretArchetypes = map[string]turretArchetype{
	"pulse": {
		Health: 60, Attack: 4, AttackSpeed: 1.0, Range: 220, Radius: 14,
		GoldValue: 4, MultiShot: 1,
	},
	"splitter": {
		Health: 80, Attack: 3, AttackSpeed: 0.7, Range: 200, Radius: 16,
		GoldValue: 7, MultiShot: 3, SpreadAngle: 0.5,
	},
	"flame": {
		Health: 70, Attack: 2, AttackSpeed: 1.4, Range: 160, Radius: 14,
		GoldValue: 6, MultiShot: 1,
		Effect: &BulletEffect{Kind: EffectBurn, Magnitude: 3, Duration: 2},
	},
	"frost": {
		Health: 70, Attack: 2, AttackSpeed: 0.9, Range: 190, Radius: 14,
		GoldValue: 6, MultiShot: 1,
		Effect: &BulletEffect{Kind: EffectSlow, Magnitude: 0.6, Duration: 1.5},
	},
	"wall": {
		Health: 200, Radius: 18, GoldValue: 1, Wall: true,
	},
	"mine": {
		Health: 10, Attack: 5, Radius: 10, GoldValue: 2,
		Mine: true, ExplosionRadius: 60,
	},
	"barracks": {
		Health: 160, Radius: 22, GoldValue: 12,
		Barracks: true, SpawnType: "raider", SpawnRange: 260,
		SpawnCooldown: 8, MaxSpawns: 6,
	},
	"raider": {
		Health: 35, Attack: 3, AttackSpeed: 1.2, Range: 120, Radius: 10,
		GoldValue: 3, MultiShot: 1,
		Mobile: true, MoveSpeed: 55, SightRange: 400,
	},
	"support": {
		Health: 50, Radius: 12, GoldValue: 8,
		Support: true, HealRange: 90, HealPerSecond: 6,
		Mobile: true, MoveSpeed: 45, SightRange: 300,
	},
	"stasis": {
		Health: 90, Radius: 16, GoldValue: 9,
		StasisField: true, SlowRadius: 140, SlowAmount: 0.35,
	},
	"buff": {
		Health: 90, Radius: 16, GoldValue: 10,
		BuffNode: true, BuffRadius: 150, AttackSpeedMult: 1.3, DamageMult: 1.25,
	},
	"spire": {
		Health: 300, Radius: 26, GoldValue: 25, Structure: true,
	},
}

// levelScale grows turret health/attack with level; level 1 is the baseline.
func levelScale(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 1.0 + 0.5*float64(level-1)
}

func (g *Game) spawnTurret(archetype string, pos Vec2, level int) *Turret {
	a, ok := turretArchetypes[archetype]
	if !ok {
		return nil
	}
	if level < 1 {
		level = 1
	}
	scale := levelScale(level)
	attack := a.Attack * scale
	if a.Mine {
		// Mine damage already multiplies by level at detonation.
		attack = a.Attack
	}
	t := &Turret{
		Archetype:   archetype,
		Pos:         pos,
		Radius:      a.Radius,
		Health:      a.Health * scale,
		MaxHealth:   a.Health * scale,
		Attack:      attack,
		AttackSpeed: a.AttackSpeed,
		Range:       a.Range,
		Level:       level,
		GoldValue:   a.GoldValue * level,
		MultiShot:   a.MultiShot,
		SpreadAngle: a.SpreadAngle,

		IsWall:      a.Wall,
		IsStructure: a.Structure,

		IsMine:          a.Mine,
		ExplosionRadius: a.ExplosionRadius,

		IsBarracks:    a.Barracks,
		SpawnType:     a.SpawnType,
		SpawnRange:    a.SpawnRange,
		SpawnCooldown: a.SpawnCooldown,
		SpawnTimer:    a.SpawnCooldown,
		MaxSpawns:     a.MaxSpawns,

		IsSupport:     a.Support,
		HealRange:     a.HealRange,
		HealPerSecond: a.HealPerSecond,

		IsMobile:   a.Mobile,
		MoveSpeed:  a.MoveSpeed,
		SightRange: a.SightRange,

		IsStasisField: a.StasisField,
		SlowRadius:    a.SlowRadius,
		SlowAmount:    a.SlowAmount,

		IsBuffNode:      a.BuffNode,
		BuffRadius:      a.BuffRadius,
		AttackSpeedMult: a.AttackSpeedMult,
		DamageMult:      a.DamageMult,

		Effect: a.Effect,
	}
	return g.addTurret(t)
}

// Placement is one entry of the level-setup input.
type Placement struct {
	Archetype string  `json:"archetype"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Level     int     `json:"level"`
}

// Encounters are the built-in layouts, keyed by encounter id. Coordinates are
// lane-space: x across the lane, y toward the enemy side (negative).
var Encounters = map[string][]Placement{
	"kuf": {
		{Archetype: "spire", X: 0, Y: -1400, Level: 2},
		{Archetype: "barracks", X: -140, Y: -1200, Level: 1},
		{Archetype: "buff", X: 120, Y: -1150, Level: 1},
		{Archetype: "pulse", X: -80, Y: -1000, Level: 2},
		{Archetype: "pulse", X: 90, Y: -980, Level: 2},
		{Archetype: "splitter", X: 0, Y: -860, Level: 1},
		{Archetype: "stasis", X: -60, Y: -720, Level: 1},
		{Archetype: "frost", X: 140, Y: -700, Level: 1},
		{Archetype: "wall", X: -40, Y: -560, Level: 1},
		{Archetype: "wall", X: 40, Y: -560, Level: 1},
		{Archetype: "mine", X: -110, Y: -480, Level: 2},
		{Archetype: "mine", X: 0, Y: -440, Level: 2},
		{Archetype: "mine", X: 110, Y: -480, Level: 2},
		{Archetype: "flame", X: -150, Y: -380, Level: 1},
		{Archetype: "support", X: 60, Y: -900, Level: 1},
		{Archetype: "raider", X: 0, Y: -650, Level: 1},
	},
	"kuf-siege": {
		{Archetype: "spire", X: 0, Y: -1500, Level: 3},
		{Archetype: "barracks", X: -160, Y: -1300, Level: 2},
		{Archetype: "barracks", X: 160, Y: -1300, Level: 2},
		{Archetype: "buff", X: 0, Y: -1100, Level: 2},
		{Archetype: "splitter", X: -100, Y: -950, Level: 2},
		{Archetype: "splitter", X: 100, Y: -950, Level: 2},
		{Archetype: "stasis", X: 0, Y: -800, Level: 2},
		{Archetype: "wall", X: -60, Y: -600, Level: 2},
		{Archetype: "wall", X: 0, Y: -600, Level: 2},
		{Archetype: "wall", X: 60, Y: -600, Level: 2},
		{Archetype: "mine", X: -80, Y: -500, Level: 3},
		{Archetype: "mine", X: 80, Y: -500, Level: 3},
		{Archetype: "support", X: 0, Y: -1000, Level: 2},
	},
}
