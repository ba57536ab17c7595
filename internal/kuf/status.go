package kuf

// Status effects and aura modifiers. Slow sources stack multiplicatively —
// status effects and stasis fields together — floored at slowFloor of the
// base move speed.

func (g *Game) updateStatusEffects(m *Marine, dt float64) {
	slow := 1.0
	kept := m.Effects[:0]
	for i := range m.Effects {
		ef := m.Effects[i]
		ef.Remaining -= dt
		switch ef.Kind {
		case EffectBurn:
			m.Health -= ef.Magnitude * dt
		case EffectSlow:
			slow *= ef.Magnitude
		}
		if ef.Remaining > 0 {
			kept = append(kept, ef)
		}
	}
	m.Effects = kept

	slow *= g.fieldSlowMultiplier(m)
	if slow < slowFloor {
		slow = slowFloor
	}
	m.MoveSpeed = m.BaseMoveSpeed * slow
}

// turretAttackModifier multiplies the contributions of every buff node within
// its radius of the turret. No nodes in range yields (1, 1).
func (g *Game) turretAttackModifier(t *Turret) (attackSpeed, damage float64) {
	attackSpeed, damage = 1.0, 1.0
	for _, b := range g.turrets {
		if !b.IsBuffNode || b.Health <= 0 || b.ID == t.ID {
			continue
		}
		if distSq(t.Pos.X, t.Pos.Y, b.Pos.X, b.Pos.Y) <= b.BuffRadius*b.BuffRadius {
			attackSpeed *= b.AttackSpeedMult
			damage *= b.DamageMult
		}
	}
	return attackSpeed, damage
}

// fieldSlowMultiplier multiplies (1 − slowAmount) over every stasis field the
// marine stands inside, floored at slowFloor.
func (g *Game) fieldSlowMultiplier(m *Marine) float64 {
	mult := 1.0
	for _, f := range g.turrets {
		if !f.IsStasisField || f.Health <= 0 {
			continue
		}
		if distSq(m.Pos.X, m.Pos.Y, f.Pos.X, f.Pos.Y) <= f.SlowRadius*f.SlowRadius {
			mult *= 1.0 - f.SlowAmount
		}
	}
	if mult < slowFloor {
		mult = slowFloor
	}
	return mult
}
