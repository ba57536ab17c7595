package kuf

// Target queries. All scans run in slice order with a strict < comparison;
// slices are append-ordered by id, so equal-distance candidates resolve to the
// lowest id deterministically.

// findClosestTurret returns the nearest living turret within rng of (x,y).
// A pinned selected enemy wins unconditionally while it lives and is in range.
func (g *Game) findClosestTurret(x, y, rng float64) *Turret {
	if g.targetOverride != 0 {
		if t := g.turretByID(g.targetOverride); t != nil && t.Health > 0 {
			if distSq(x, y, t.Pos.X, t.Pos.Y) <= rng*rng {
				return t
			}
		} else {
			g.targetOverride = 0
		}
	}

	var best *Turret
	bestD := rng * rng
	for _, t := range g.turrets {
		if t.Health <= 0 {
			continue
		}
		d := distSq(x, y, t.Pos.X, t.Pos.Y)
		if d > rng*rng {
			continue
		}
		if best == nil || d < bestD {
			best = t
			bestD = d
		}
	}
	return best
}

func (g *Game) findClosestMarine(x, y, rng float64) *Marine {
	var best *Marine
	bestD := rng * rng
	for _, m := range g.marines {
		if m.Health <= 0 {
			continue
		}
		d := distSq(x, y, m.Pos.X, m.Pos.Y)
		if d > rng*rng {
			continue
		}
		if best == nil || d < bestD {
			best = m
			bestD = d
		}
	}
	return best
}

// findClosestPlayerTarget scans marines, drones and the core-ship hull and
// returns the position of the global minimum across all three pools.
func (g *Game) findClosestPlayerTarget(x, y, rng float64) (Vec2, bool) {
	var pos Vec2
	found := false
	bestD := rng * rng

	for _, m := range g.marines {
		if m.Health <= 0 {
			continue
		}
		if d := distSq(x, y, m.Pos.X, m.Pos.Y); d <= rng*rng && (!found || d < bestD) {
			pos, bestD, found = m.Pos, d, true
		}
	}
	for _, dr := range g.drones {
		if dr.Health <= 0 {
			continue
		}
		if d := distSq(x, y, dr.Pos.X, dr.Pos.Y); d <= rng*rng && (!found || d < bestD) {
			pos, bestD, found = dr.Pos, d, true
		}
	}
	if g.core != nil && g.core.Health > 0 {
		if d := distSq(x, y, g.core.Pos.X, g.core.Pos.Y); d <= rng*rng && (!found || d < bestD) {
			pos, found = g.core.Pos, true
		}
	}
	return pos, found
}
