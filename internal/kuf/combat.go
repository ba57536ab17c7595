package kuf

import (
	"math"
	"math/rand"
)

const (
	splayerSpinRate      = 4.0  // rad/s baseline visual spin
	splayerSpinRateBoost = 14.0 // rad/s while the boost timer runs
	supportHealPerAttack = 1.0  // Heal per point of attack per second
)

func (g *Game) updateMarines(dt float64) {
	for _, m := range g.marines {
		if m.Health <= 0 {
			continue
		}
		g.updateStatusEffects(m, dt)
		g.updateMarineMovement(m, dt)
		g.updateMarineCombat(m, dt)

		if m.Type == UnitSplayer {
			rate := splayerSpinRate
			if m.RotationBoost > 0 {
				m.RotationBoost -= dt
				rate = splayerSpinRateBoost
			}
			m.Rotation += rate * dt
		}
	}
}

func (g *Game) updateMarineCombat(m *Marine, dt float64) {
	m.Cooldown -= dt
	if m.Cooldown < 0 {
		m.Cooldown = 0
	}

	if m.Type == UnitDroneSupport {
		g.updateSupportMarine(m, dt)
		return
	}

	target := g.findClosestTurret(m.Pos.X, m.Pos.Y, m.Range)
	if target == nil || m.Cooldown > 0 {
		return
	}

	switch m.Type {
	case UnitSplayer:
		// A ring of independently aimed homing shots.
		for i := 0; i < splayerShots; i++ {
			angle := rand.Float64() * 2 * math.Pi
			g.spawnBulletAngle(OwnerMarine, string(m.Type), m.Pos, angle, m.BulletSpeed, m.Attack*splayerDamageFactor, bulletOptions{
				homing: true,
				target: target.ID,
			})
		}
		m.RotationBoost = splayerSpinBoost
	case UnitLaser:
		g.spawnBulletAt(OwnerMarine, string(m.Type), m.Pos, target.Pos, m.BulletSpeed, m.Attack, bulletOptions{
			pierce: laserPierce,
		})
	default:
		g.spawnBulletAt(OwnerMarine, string(m.Type), m.Pos, target.Pos, m.BulletSpeed, m.Attack, bulletOptions{})
	}

	if m.AttackSpeed > 0 {
		m.Cooldown = 1.0 / m.AttackSpeed
	} else {
		m.Cooldown = 1.0
	}
}

// updateSupportMarine channels repairs into the most damaged-adjacent ally
// instead of firing.
func (g *Game) updateSupportMarine(m *Marine, dt float64) {
	var best *Marine
	bestD := m.Range * m.Range
	for _, other := range g.marines {
		if other == m || other.Health <= 0 || other.Health >= other.MaxHealth {
			continue
		}
		d := distSq(m.Pos.X, m.Pos.Y, other.Pos.X, other.Pos.Y)
		if d > m.Range*m.Range {
			continue
		}
		if best == nil || d < bestD {
			best = other
			bestD = d
		}
	}
	if best == nil {
		return
	}
	best.Health += m.Attack * supportHealPerAttack * dt
	if best.Health > best.MaxHealth {
		best.Health = best.MaxHealth
	}
}

func (g *Game) updateTurrets(dt float64) {
	for _, t := range g.turrets {
		if t.Health <= 0 {
			continue
		}
		switch {
		case t.IsWall, t.IsMine, t.IsStructure:
			// Passive until destroyed.
		case t.IsBarracks:
			g.updateBarracks(t, dt)
		case t.IsSupport:
			g.updateSupportTurret(t, dt)
		case t.IsStasisField:
			t.FieldPulse += dt // Presentation only; the slow is an aura.
		case t.IsBuffNode:
			// Passive; contributions are read by turretAttackModifier.
		case t.IsMobile:
			g.updateMobileTurret(t, dt)
		default:
			g.updateStationaryTurret(t, dt)
		}
	}
}

func (g *Game) updateStationaryTurret(t *Turret, dt float64) {
	t.Cooldown -= dt
	if t.Cooldown < 0 {
		t.Cooldown = 0
	}
	pos, ok := g.findClosestPlayerTarget(t.Pos.X, t.Pos.Y, t.Range)
	if !ok || t.Cooldown > 0 {
		return
	}
	g.fireTurret(t, pos)
}

// updateMobileTurret pursues the nearest player target regardless of
// distance, closing to firing range.
func (g *Game) updateMobileTurret(t *Turret, dt float64) {
	t.Cooldown -= dt
	if t.Cooldown < 0 {
		t.Cooldown = 0
	}
	pos, ok := g.findClosestPlayerTarget(t.Pos.X, t.Pos.Y, math.MaxFloat64)
	if !ok {
		return
	}
	d := distSq(t.Pos.X, t.Pos.Y, pos.X, pos.Y)
	if d > t.Range*t.Range {
		moveTowards(&t.Pos, pos.X, pos.Y, t.MoveSpeed, dt)
		return
	}
	if t.Cooldown <= 0 {
		g.fireTurret(t, pos)
	}
}

// fireTurret fans multiShot projectiles across spreadAngle, with attack and
// attack-speed multipliers gathered from nearby buff nodes.
func (g *Game) fireTurret(t *Turret, target Vec2) {
	speedMult, dmgMult := g.turretAttackModifier(t)
	base := math.Atan2(target.Y-t.Pos.Y, target.X-t.Pos.X)

	shots := t.MultiShot
	if shots < 1 {
		shots = 1
	}
	for i := 0; i < shots; i++ {
		angle := base
		if shots > 1 {
			angle = base - t.SpreadAngle/2 + t.SpreadAngle*float64(i)/float64(shots-1)
		}
		g.spawnBulletAngle(OwnerTurret, t.Archetype, t.Pos, angle, turretBulletSpeed, t.Attack*dmgMult, bulletOptions{
			effect: t.Effect,
		})
	}

	as := t.AttackSpeed * speedMult
	if as <= 0 {
		as = 1
	}
	t.Cooldown = 1.0 / as
}

func (g *Game) updateDrones(dt float64) {
	for _, d := range g.drones {
		if d.Health <= 0 {
			continue
		}
		d.Cooldown -= dt
		if d.Cooldown < 0 {
			d.Cooldown = 0
		}

		target := g.findClosestTurret(d.Pos.X, d.Pos.Y, droneSightRange)
		if target == nil {
			// Drift back to escort distance from the core.
			if g.core != nil {
				moveTowards(&d.Pos, g.core.Pos.X, g.core.Pos.Y-droneSpawnRadius, d.MoveSpeed, dt)
			}
			continue
		}

		if distSq(d.Pos.X, d.Pos.Y, target.Pos.X, target.Pos.Y) > d.Range*d.Range {
			moveTowards(&d.Pos, target.Pos.X, target.Pos.Y, d.MoveSpeed, dt)
			continue
		}
		if d.Cooldown > 0 {
			continue
		}
		g.spawnBulletAt(OwnerMarine, "drone", d.Pos, target.Pos, d.BulletSpeed, d.Attack, bulletOptions{})
		if d.AttackSpeed > 0 {
			d.Cooldown = 1.0 / d.AttackSpeed
		} else {
			d.Cooldown = 1.0
		}
	}
}
