package kuf

import "math"

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	if v < target {
		v += step
		if v > target {
			v = target
		}
	} else {
		v -= step
		if v < target {
			v = target
		}
	}
	return v
}

// steerUnitToward accelerates the marine's velocity toward (tx,ty), each axis
// independently. Reports arrival (and zeroes velocity) within arriveRadius.
func steerUnitToward(m *Marine, tx, ty, dt float64) bool {
	dx := tx - m.Pos.X
	dy := ty - m.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist < arriveRadius {
		m.Vel = Vec2{}
		return true
	}
	d := dist
	if d == 0 {
		d = 1
	}
	step := steerAccel * dt
	m.Vel.X = approach(m.Vel.X, dx/d*m.MoveSpeed, step)
	m.Vel.Y = approach(m.Vel.Y, dy/d*m.MoveSpeed, step)
	return false
}

// decelerateUnit bleeds velocity off exponentially.
func decelerateUnit(m *Marine, dt float64) {
	decay := math.Exp(-velDecayRate * dt)
	m.Vel.X *= decay
	m.Vel.Y *= decay
}

// updateMarineMovement re-derives the 3-state behavior every tick: hold at
// stand-off range against a pinned enemy, follow an attack-move waypoint, or
// advance up the lane.
func (g *Game) updateMarineMovement(m *Marine, dt float64) {
	focused := g.turretByID(g.targetOverride)
	if focused != nil && focused.Health <= 0 {
		focused = nil
	}

	switch {
	case focused != nil && m.Waypoint == nil:
		// Navigate to a stand-off point short of the target's range.
		standoff := m.Range - holdBuffer
		if standoff < 0 {
			standoff = 0
		}
		dx := m.Pos.X - focused.Pos.X
		dy := m.Pos.Y - focused.Pos.Y
		dist := math.Hypot(dx, dy)
		if math.Abs(dist-standoff) <= holdBuffer {
			decelerateUnit(m, dt)
			break
		}
		d := dist
		if d == 0 {
			d = 1
		}
		steerUnitToward(m, focused.Pos.X+dx/d*standoff, focused.Pos.Y+dy/d*standoff, dt)

	case m.Waypoint != nil:
		if steerUnitToward(m, m.Waypoint.X, m.Waypoint.Y, dt) {
			m.Waypoint = nil
		}

	default:
		// Idle advance up the lane; lateral drift decays to zero.
		step := steerAccel * dt
		m.Vel.Y = approach(m.Vel.Y, -m.MoveSpeed, step)
		m.Vel.X = approach(m.Vel.X, 0, step)
	}

	m.Pos.X += m.Vel.X * dt
	m.Pos.Y += m.Vel.Y * dt
}

// moveTowards is the plain constant-speed steering used by mobile turrets and
// drones.
func moveTowards(pos *Vec2, tx, ty, speed, dt float64) {
	dx := tx - pos.X
	dy := ty - pos.Y
	dist := math.Hypot(dx, dy)
	if dist < 0.1 {
		return
	}
	step := speed * dt
	pos.X += dx / dist * step
	pos.Y += dy / dist * step
}
