package kuf

import (
	"github.com/rs/zerolog"
)

// newTestGame builds an engine with the baseline loadout and a live run but no
// placed encounter, so tests spawn exactly what they need.
func newTestGame() *Game {
	g := NewGame(zerolog.Nop(), nil)
	g.loadout = DefaultLoadout()
	g.gold = startingGold
	g.runActive = true

	c := g.loadout.Core
	g.core = &CoreShip{
		Pos:              g.anchor,
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
	g.initSlots()
	return g
}

func (g *Game) spawnTestMarine(unitID string, x, y float64) *Marine {
	m := g.spawnMarine(unitID)
	m.Pos = Vec2{X: x, Y: y}
	return m
}
