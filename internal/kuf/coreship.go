package kuf

import (
	"math"
	"math/rand"
)

func (g *Game) updateCoreShip(dt float64) {
	c := g.core
	if c == nil || c.Health <= 0 {
		return
	}
	c.Pos = g.anchor // Anchored to the externally supplied HUD base point

	// Hull repair runs on a coarse internal cadence, healing for the whole
	// accumulated window.
	c.repairTick += dt
	if c.repairTick >= coreCadence {
		if c.Health < c.MaxHealth {
			c.Health += c.HullRepair * c.repairTick
			if c.Health > c.MaxHealth {
				c.Health = c.MaxHealth
			}
		}
		c.repairTick = 0
	}

	// Healing aura, same cadence.
	c.auraTick += dt
	if c.auraTick >= coreCadence {
		r2 := c.HealingAuraRange * c.HealingAuraRange
		for _, m := range g.marines {
			if m.Health <= 0 || m.Health >= m.MaxHealth {
				continue
			}
			if distSq(c.Pos.X, c.Pos.Y, m.Pos.X, m.Pos.Y) <= r2 {
				m.Health += c.HealingAuraRate * c.auraTick
				if m.Health > m.MaxHealth {
					m.Health = m.MaxHealth
				}
			}
		}
		c.auraTick = 0
	}

	// Shield: whether broken or merely damaged, regen waits out the delay
	// since the last point of damage, then fills at the regen rate. Broken
	// clears only at full charge.
	c.ShieldTimer += dt
	if c.Shield < c.MaxShield && c.ShieldTimer >= c.ShieldRegenDelay {
		c.Shield += c.ShieldRegenRate * dt
		if c.Shield >= c.MaxShield {
			c.Shield = c.MaxShield
			c.ShieldBroken = false
		}
	}

	// Drone bay.
	c.DroneTimer -= dt
	if c.DroneTimer <= 0 {
		g.spawnCoreDrone()
		c.DroneTimer = c.DroneInterval
	}

	// Cannons.
	c.CannonCooldown -= dt
	if c.CannonCooldown < 0 {
		c.CannonCooldown = 0
	}
	if c.CannonCooldown <= 0 {
		if target := g.findClosestTurret(c.Pos.X, c.Pos.Y, c.Range); target != nil {
			g.fireCannons(target.Pos)
			if c.AttackSpeed > 0 {
				c.CannonCooldown = 1.0 / c.AttackSpeed
			} else {
				c.CannonCooldown = 1.0
			}
		}
	}
}

func (g *Game) spawnCoreDrone() {
	tmpl := g.loadout.Core.Drone
	angle := rand.Float64() * 2 * math.Pi
	g.addDrone(&Drone{
		Pos: Vec2{
			X: g.core.Pos.X + math.Cos(angle)*droneSpawnRadius,
			Y: g.core.Pos.Y + math.Sin(angle)*droneSpawnRadius,
		},
		Radius:      tmpl.Radius,
		Health:      tmpl.Health,
		MaxHealth:   tmpl.Health,
		Attack:      tmpl.Attack,
		AttackSpeed: tmpl.AttackSpeed,
		MoveSpeed:   tmpl.MoveSpeed,
		Range:       tmpl.Range,
		BulletSpeed: tmpl.BulletSpeed,
	})
}

// fireCannons fans one projectile per cannon across a fixed spread.
func (g *Game) fireCannons(target Vec2) {
	c := g.core
	base := math.Atan2(target.Y-c.Pos.Y, target.X-c.Pos.X)
	for i := 0; i < c.Cannons; i++ {
		angle := base
		if c.Cannons > 1 {
			angle = base - cannonSpread/2 + cannonSpread*float64(i)/float64(c.Cannons-1)
		}
		g.spawnBulletAngle(OwnerCore, "cannon", c.Pos, angle, turretBulletSpeed*1.4, c.Attack, bulletOptions{})
	}
}
