package kuf

import "math/rand"

const barracksSpawnOffset = 34.0

// killTurret runs the death side effects for a turret that just hit zero
// health. Removal itself happens in the filter pass, so every reader in the
// same tick sees the death first.
func (g *Game) killTurret(t *Turret) {
	if t.IsMine && !t.exploded {
		t.exploded = true
		g.explodeMine(t)
	}
	if t.IsStructure {
		g.log.Info().Str("run", g.runID).Int64("id", t.ID).Msg("structure destroyed")
	}
}

// explodeMine damages every marine and turret inside the blast once, by
// attack × level, and emits the expanding explosion record.
func (g *Game) explodeMine(t *Turret) {
	dmg := t.Attack * float64(t.Level)
	r2 := t.ExplosionRadius * t.ExplosionRadius

	for _, m := range g.marines {
		if m.Health <= 0 {
			continue
		}
		if distSq(t.Pos.X, t.Pos.Y, m.Pos.X, m.Pos.Y) <= r2 {
			m.Health -= dmg
			if m.Health < 0 {
				m.Health = 0
			}
		}
	}
	for _, other := range g.turrets {
		if other == t || other.Health <= 0 {
			continue
		}
		if distSq(t.Pos.X, t.Pos.Y, other.Pos.X, other.Pos.Y) <= r2 {
			other.Health -= dmg
			if other.Health <= 0 {
				other.Health = 0
				g.killTurret(other) // Mines chain, without kill bounty
			}
		}
	}

	g.explosions = append(g.explosions, &Explosion{
		ID:        g.allocID(),
		Pos:       t.Pos,
		MaxRadius: t.ExplosionRadius,
		Life:      explosionLife,
		MaxLife:   explosionLife,
	})
}

// updateBarracks counts down the spawn timer and releases a unit when the
// barracks is provoked: either damaged, or a player target sits inside its
// spawn range.
func (g *Game) updateBarracks(t *Turret, dt float64) {
	t.SpawnTimer -= dt
	if t.SpawnTimer > 0 {
		return
	}
	t.SpawnTimer = t.SpawnCooldown

	if t.CurrentSpawns >= t.MaxSpawns {
		return
	}
	_, provoked := g.findClosestPlayerTarget(t.Pos.X, t.Pos.Y, t.SpawnRange)
	if !provoked && t.Health >= t.MaxHealth {
		return
	}

	pos := Vec2{
		X: t.Pos.X + (rand.Float64()*2-1)*barracksSpawnOffset,
		Y: t.Pos.Y + t.Radius + barracksSpawnOffset/2,
	}
	if g.spawnTurret(t.SpawnType, pos, t.Level) != nil {
		t.CurrentSpawns++
	}
}

// updateSupportTurret seeks the nearest damaged turret in sight, closes to
// heal range, and channels repairs while recording the active link for the
// renderer.
func (g *Game) updateSupportTurret(t *Turret, dt float64) {
	var best *Turret
	bestD := t.SightRange * t.SightRange
	for _, other := range g.turrets {
		if other == t || other.Health <= 0 || other.Health >= other.MaxHealth {
			continue
		}
		d := distSq(t.Pos.X, t.Pos.Y, other.Pos.X, other.Pos.Y)
		if d > t.SightRange*t.SightRange {
			continue
		}
		if best == nil || d < bestD {
			best = other
			bestD = d
		}
	}

	if best == nil {
		t.HealTarget = 0
		t.HealVisualTimer = 0
		return
	}

	if bestD > t.HealRange*t.HealRange {
		t.HealTarget = 0
		t.HealVisualTimer = 0
		moveTowards(&t.Pos, best.Pos.X, best.Pos.Y, t.MoveSpeed, dt)
		return
	}

	best.Health += t.HealPerSecond * dt
	if best.Health > best.MaxHealth {
		best.Health = best.MaxHealth
	}
	t.HealTarget = best.ID
	t.HealVisualTimer += dt
}
