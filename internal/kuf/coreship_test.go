package kuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShieldRegenWaitsOutDelay(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.Shield = 50
	c.ShieldTimer = 0

	// Inside the delay window nothing recharges.
	g.updateCoreShip(1.0)
	assert.InDelta(t, 50, c.Shield, 1e-9)

	// Push past the delay: regen at the configured rate.
	c.ShieldTimer = c.ShieldRegenDelay
	g.updateCoreShip(1.0)
	assert.InDelta(t, 50+c.ShieldRegenRate, c.Shield, 1e-9)
}

func TestBrokenShieldClearsOnlyAtFullCharge(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.Shield = c.MaxShield - 5
	c.ShieldBroken = true
	c.ShieldTimer = c.ShieldRegenDelay

	g.updateCoreShip(0.1)
	assert.True(t, c.ShieldBroken) // Still charging

	g.updateCoreShip(1.0)
	assert.Equal(t, c.MaxShield, c.Shield)
	assert.False(t, c.ShieldBroken)
}

func TestHullRepairTicks(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.Health = c.MaxHealth - 50

	g.updateCoreShip(0.2)
	assert.InDelta(t, c.MaxHealth-50+c.HullRepair*0.2, c.Health, 1e-9)
}

func TestHullRepairClampsAtMax(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.Health = c.MaxHealth - 0.01

	g.updateCoreShip(1.0)
	assert.Equal(t, c.MaxHealth, c.Health)
}

func TestHealingAuraAffectsNearbyMarines(t *testing.T) {
	g := newTestGame()
	c := g.core
	near := g.spawnTestMarine("marines", 0, c.Pos.Y-c.HealingAuraRange/2)
	far := g.spawnTestMarine("marines", 0, c.Pos.Y-c.HealingAuraRange-100)
	near.Health = 10
	far.Health = 10

	g.updateCoreShip(0.2)
	assert.InDelta(t, 10+c.HealingAuraRate*0.2, near.Health, 1e-9)
	assert.InDelta(t, 10, far.Health, 1e-9)
}

func TestDroneBaySpawnsOnInterval(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.DroneTimer = 0.05

	g.updateCoreShip(0.1)
	require.Len(t, g.drones, 1)
	assert.InDelta(t, c.DroneInterval, c.DroneTimer, 1e-9)

	d := g.drones[0]
	tmpl := g.loadout.Core.Drone
	assert.Equal(t, tmpl.Health, d.MaxHealth)
	assert.InDelta(t, droneSpawnRadius, dist(c.Pos, d.Pos), 1e-6)
}

func TestCannonsFireAtTurretInRange(t *testing.T) {
	g := newTestGame()
	c := g.core
	g.spawnTurret("pulse", Vec2{X: 0, Y: c.Pos.Y - 200}, 1)

	g.updateCoreShip(1.0 / TickRate)
	require.Len(t, g.bullets, c.Cannons)
	for _, b := range g.bullets {
		assert.Equal(t, OwnerCore, b.Owner)
		assert.Equal(t, c.Attack, b.Damage)
	}
	assert.InDelta(t, 1.0/c.AttackSpeed, c.CannonCooldown, 1e-9)
}

func TestCannonsHoldFireOutOfRange(t *testing.T) {
	g := newTestGame()
	c := g.core
	g.spawnTurret("pulse", Vec2{X: 0, Y: c.Pos.Y - c.Range - 200}, 1)

	g.updateCoreShip(1.0 / TickRate)
	assert.Empty(t, g.bullets)
	assert.Zero(t, c.CannonCooldown)
}

func dist(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
