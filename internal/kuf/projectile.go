package kuf

import "math"

const (
	turretBulletSpeed = 300.0
	droneSightRange   = 420.0
	coreRadius        = 30.0
)

type bulletOptions struct {
	homing bool
	target int64
	pierce int
	effect *BulletEffect
	life   float64
}

// spawnBulletAngle launches a bullet along an explicit angle. The hit set is
// allocated only for piercing bullets.
func (g *Game) spawnBulletAngle(owner BulletOwner, typ string, pos Vec2, angle, speed, damage float64, opt bulletOptions) *Bullet {
	if !isFinite(speed) || speed <= 0 {
		speed = turretBulletSpeed
	}
	if !isFinite(damage) || damage < 0 {
		damage = 0
	}
	life := opt.life
	if life <= 0 {
		life = bulletLife
	}
	b := &Bullet{
		ID:     g.allocID(),
		Owner:  owner,
		Type:   typ,
		Pos:    pos,
		Vel:    Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
		Speed:  speed,
		Damage: damage,
		Life:   life,
		Homing: opt.homing,
		Target: opt.target,
		Pierce: opt.pierce,
		Effect: opt.effect,
	}
	if b.Pierce > 0 {
		b.hits = make(map[int64]struct{})
	}
	g.bullets = append(g.bullets, b)
	return b
}

// spawnBulletAt launches a bullet on the bearing to target.
func (g *Game) spawnBulletAt(owner BulletOwner, typ string, pos, target Vec2, speed, damage float64, opt bulletOptions) *Bullet {
	angle := math.Atan2(target.Y-pos.Y, target.X-pos.X)
	return g.spawnBulletAngle(owner, typ, pos, angle, speed, damage, opt)
}

// shortestAngle wraps a into (-π, π].
func shortestAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func (g *Game) updateBullets(dt float64) {
	for _, b := range g.bullets {
		// Homing guidance: bounded turn toward a still-living target. A dead
		// target just means no correction this tick.
		if b.Homing && b.Target != 0 {
			if t := g.turretByID(b.Target); t != nil && t.Health > 0 {
				desired := math.Atan2(t.Pos.Y-b.Pos.Y, t.Pos.X-b.Pos.X)
				current := math.Atan2(b.Vel.Y, b.Vel.X)
				delta := shortestAngle(desired - current)
				maxTurn := homingTurnRate * dt
				if delta > maxTurn {
					delta = maxTurn
				} else if delta < -maxTurn {
					delta = -maxTurn
				}
				heading := current + delta
				b.Vel.X = math.Cos(heading) * b.Speed
				b.Vel.Y = math.Sin(heading) * b.Speed
			}
		}

		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
		b.Life -= dt
		if b.Life <= 0 {
			continue
		}

		switch b.Owner {
		case OwnerMarine, OwnerCore:
			g.collideWithTurrets(b)
		case OwnerTurret:
			g.collideWithPlayerSide(b)
		}
	}

	alive := g.bullets[:0]
	for _, b := range g.bullets {
		if b.Life > 0 && g.inCullBounds(b.Pos) {
			alive = append(alive, b)
		}
	}
	g.bullets = alive
}

func (g *Game) collideWithTurrets(b *Bullet) {
	for _, t := range g.turrets {
		if t.Health <= 0 {
			continue
		}
		r := t.Radius + bulletRadius
		if distSq(b.Pos.X, b.Pos.Y, t.Pos.X, t.Pos.Y) > r*r {
			continue
		}
		if b.hits != nil {
			if _, seen := b.hits[t.ID]; seen {
				continue
			}
		}

		t.Health -= b.Damage
		if t.Health <= 0 {
			t.Health = 0
			g.gold += t.GoldValue + g.killBonus
			g.kills++
			g.killTurret(t)
		}

		if b.Pierce > 0 {
			b.hits[t.ID] = struct{}{}
			b.Pierce--
			if b.Pierce == 0 {
				b.Life = 0
			}
		} else {
			b.Life = 0
		}
		if b.Life <= 0 {
			return
		}
	}
}

// collideWithPlayerSide resolves turret bullets against marines first, then
// drones, then the core-ship hull.
func (g *Game) collideWithPlayerSide(b *Bullet) {
	for _, m := range g.marines {
		if m.Health <= 0 {
			continue
		}
		r := m.Radius + bulletRadius
		if distSq(b.Pos.X, b.Pos.Y, m.Pos.X, m.Pos.Y) > r*r {
			continue
		}
		m.Health -= b.Damage
		if m.Health < 0 {
			m.Health = 0
		}
		if b.Effect != nil {
			m.Effects = append(m.Effects, StatusEffect{
				Kind:      b.Effect.Kind,
				Remaining: b.Effect.Duration,
				Magnitude: b.Effect.Magnitude,
			})
		}
		b.Life = 0
		return
	}

	for _, d := range g.drones {
		if d.Health <= 0 {
			continue
		}
		r := d.Radius + bulletRadius
		if distSq(b.Pos.X, b.Pos.Y, d.Pos.X, d.Pos.Y) > r*r {
			continue
		}
		d.Health -= b.Damage
		if d.Health < 0 {
			d.Health = 0
		}
		b.Life = 0
		return
	}

	c := g.core
	if c == nil || c.Health <= 0 {
		return
	}
	r := coreRadius + bulletRadius
	if distSq(b.Pos.X, b.Pos.Y, c.Pos.X, c.Pos.Y) > r*r {
		return
	}
	if c.Shield > 0 && !c.ShieldBroken {
		c.Shield -= b.Damage
		if c.Shield <= 0 {
			c.Shield = 0
			c.ShieldBroken = true
		}
	} else {
		c.Health -= b.Damage
		if c.Health < 0 {
			c.Health = 0
		}
	}
	c.ShieldTimer = 0
	b.Life = 0
}

// inCullBounds keeps bullets inside the camera-relative viewport expanded by
// cullMargin, so shots over a panned camera survive going off-screen briefly.
func (g *Game) inCullBounds(p Vec2) bool {
	return math.Abs(p.X-g.camera.X) <= viewWidth/2+cullMargin &&
		math.Abs(p.Y-g.camera.Y) <= viewHeight/2+cullMargin
}

func (g *Game) updateExplosions(dt float64) {
	alive := g.explosions[:0]
	for _, e := range g.explosions {
		e.Life -= dt
		if e.Life <= 0 {
			continue
		}
		e.Radius = e.MaxRadius * (1 - e.Life/e.MaxLife)
		alive = append(alive, e)
	}
	g.explosions = alive
}
