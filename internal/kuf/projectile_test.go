package kuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulletDamagesTurretAndExpires(t *testing.T) {
	g := newTestGame()
	turret := g.spawnTurret("pulse", Vec2{X: 0, Y: -100}, 1)
	b := g.spawnBulletAngle(OwnerMarine, "marine", Vec2{X: 0, Y: -100}, 0, 400, 10, bulletOptions{})

	g.collideWithTurrets(b)
	assert.InDelta(t, turret.MaxHealth-10, turret.Health, 1e-9)
	assert.LessOrEqual(t, b.Life, 0.0)
}

func TestTurretKillAwardsGoldAndBounty(t *testing.T) {
	g := newTestGame()
	turret := g.spawnTurret("pulse", Vec2{X: 0, Y: -100}, 1)
	turret.Health = 5
	g.killBonus = 3
	goldBefore := g.gold

	b := g.spawnBulletAngle(OwnerMarine, "marine", turret.Pos, 0, 400, 10, bulletOptions{})
	g.collideWithTurrets(b)

	assert.Equal(t, goldBefore+turret.GoldValue+3, g.gold)
	assert.Equal(t, 1, g.kills)
	assert.Zero(t, turret.Health)
}

func TestPierceHitsExactlyThreeOfFour(t *testing.T) {
	g := newTestGame()
	var turrets []*Turret
	for i := 0; i < 4; i++ {
		turrets = append(turrets, g.spawnTurret("pulse", Vec2{X: 0, Y: -100}, 1))
	}

	b := g.spawnBulletAngle(OwnerMarine, "laser", Vec2{X: 0, Y: -100}, 0, 400, 10, bulletOptions{pierce: laserPierce})
	g.collideWithTurrets(b)

	damaged := 0
	for _, tr := range turrets {
		if tr.Health < tr.MaxHealth {
			damaged++
		}
	}
	assert.Equal(t, laserPierce, damaged)
	assert.LessOrEqual(t, b.Life, 0.0)
	assert.Zero(t, b.Pierce)
}

func TestPierceNeverDoubleHitsOneTurret(t *testing.T) {
	g := newTestGame()
	turret := g.spawnTurret("pulse", Vec2{X: 0, Y: -100}, 1)

	b := g.spawnBulletAngle(OwnerMarine, "laser", turret.Pos, 0, 400, 10, bulletOptions{pierce: laserPierce})
	g.collideWithTurrets(b)
	g.collideWithTurrets(b)

	assert.InDelta(t, turret.MaxHealth-10, turret.Health, 1e-9)
}

func TestHomingTurnIsBounded(t *testing.T) {
	g := newTestGame()
	target := g.spawnTurret("pulse", Vec2{X: -200, Y: 0}, 1)
	b := g.spawnBulletAngle(OwnerMarine, "splayer", Vec2{X: 0, Y: 0}, 0, 300, 1, bulletOptions{
		homing: true,
		target: target.ID,
	})

	dt := 1.0 / TickRate
	g.updateBullets(dt)

	heading := math.Atan2(b.Vel.Y, b.Vel.X)
	// Target sits directly behind; only one tick of turn is allowed.
	assert.InDelta(t, homingTurnRate*dt, math.Abs(heading), 1e-6)
	assert.InDelta(t, 300, math.Hypot(b.Vel.X, b.Vel.Y), 1e-6)
}

func TestHomingDeadTargetKeepsHeading(t *testing.T) {
	g := newTestGame()
	target := g.spawnTurret("pulse", Vec2{X: 0, Y: -300}, 1)
	b := g.spawnBulletAngle(OwnerMarine, "splayer", Vec2{X: 0, Y: 0}, 0, 300, 1, bulletOptions{
		homing: true,
		target: target.ID,
	})
	target.Health = 0

	g.updateBullets(1.0 / TickRate)
	assert.InDelta(t, 0, math.Atan2(b.Vel.Y, b.Vel.X), 1e-9)
}

func TestTurretBulletHitsMarineAndAppliesEffect(t *testing.T) {
	g := newTestGame()
	m := g.spawnTestMarine("marines", 0, -100)
	b := g.spawnBulletAngle(OwnerTurret, "flame", m.Pos, 0, 300, 4, bulletOptions{
		effect: &BulletEffect{Kind: EffectBurn, Magnitude: 3, Duration: 2},
	})

	g.collideWithPlayerSide(b)
	assert.InDelta(t, m.MaxHealth-4, m.Health, 1e-9)
	require.Len(t, m.Effects, 1)
	assert.Equal(t, EffectBurn, m.Effects[0].Kind)
	assert.Equal(t, 2.0, m.Effects[0].Remaining)
	assert.LessOrEqual(t, b.Life, 0.0)
}

func TestShieldAbsorbsUntilBroken(t *testing.T) {
	g := newTestGame()
	c := g.core
	c.Pos = Vec2{X: 0, Y: 0}
	c.ShieldTimer = 3

	b := g.spawnBulletAngle(OwnerTurret, "pulse", c.Pos, 0, 300, 30, bulletOptions{})
	g.collideWithPlayerSide(b)
	assert.InDelta(t, c.MaxShield-30, c.Shield, 1e-9)
	assert.Equal(t, c.MaxHealth, c.Health) // Hull untouched
	assert.False(t, c.ShieldBroken)
	assert.Zero(t, c.ShieldTimer) // Damage resets the regen delay

	// Overkill the remaining charge: the shield breaks, hull still protected
	// on this hit.
	b = g.spawnBulletAngle(OwnerTurret, "pulse", c.Pos, 0, 300, 1000, bulletOptions{})
	g.collideWithPlayerSide(b)
	assert.Zero(t, c.Shield)
	assert.True(t, c.ShieldBroken)
	assert.Equal(t, c.MaxHealth, c.Health)

	// Broken shield: damage lands on the hull.
	b = g.spawnBulletAngle(OwnerTurret, "pulse", c.Pos, 0, 300, 40, bulletOptions{})
	g.collideWithPlayerSide(b)
	assert.InDelta(t, c.MaxHealth-40, c.Health, 1e-9)
}

func TestMarinesShieldDronesThenCore(t *testing.T) {
	g := newTestGame()
	g.core.Pos = Vec2{X: 0, Y: 0}
	m := g.spawnTestMarine("marines", 0, 0)

	b := g.spawnBulletAngle(OwnerTurret, "pulse", Vec2{X: 0, Y: 0}, 0, 300, 4, bulletOptions{})
	g.collideWithPlayerSide(b)
	assert.Less(t, m.Health, m.MaxHealth)
	assert.Equal(t, g.core.MaxShield, g.core.Shield)
}

func TestBulletsCulledOutsideViewport(t *testing.T) {
	g := newTestGame()
	g.camera = Vec2{X: 0, Y: 0}
	inside := g.spawnBulletAngle(OwnerMarine, "marine", Vec2{X: 0, Y: 0}, 0, 1, 1, bulletOptions{})
	g.spawnBulletAngle(OwnerMarine, "marine", Vec2{X: 0, Y: -(viewHeight/2 + cullMargin + 50)}, 0, 1, 1, bulletOptions{})

	g.updateBullets(1.0 / TickRate)
	require.Len(t, g.bullets, 1)
	assert.Equal(t, inside.ID, g.bullets[0].ID)
}

func TestBulletsCullingFollowsCamera(t *testing.T) {
	g := newTestGame()
	pos := Vec2{X: 0, Y: -(viewHeight/2 + cullMargin + 50)}
	g.spawnBulletAngle(OwnerMarine, "marine", pos, 0, 1, 1, bulletOptions{})

	g.SetCamera(0, pos.Y)
	g.updateBullets(1.0 / TickRate)
	assert.Len(t, g.bullets, 1)
}

func TestExplosionsExpandThenExpire(t *testing.T) {
	g := newTestGame()
	g.explosions = append(g.explosions, &Explosion{
		ID: g.allocID(), MaxRadius: 60, Life: explosionLife, MaxLife: explosionLife,
	})

	g.updateExplosions(explosionLife / 2)
	require.Len(t, g.explosions, 1)
	assert.InDelta(t, 30, g.explosions[0].Radius, 1e-9)

	g.updateExplosions(explosionLife)
	assert.Empty(t, g.explosions)
}
