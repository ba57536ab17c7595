package kuf

import "math/rand"

// TrainingSlot is one toolbar entry. Cyclable slots carry an equippable
// roster the pilot can page through between trainings.
type TrainingSlot struct {
	ID       int      `json:"id"`
	UnitID   string   `json:"unit"`
	Training bool     `json:"training"`
	Progress float64  `json:"progress"` // Seconds elapsed toward Duration
	Duration float64  `json:"duration"`
	Cost     int      `json:"cost"`
	roster   []string // nil for fixed slots
}

// TrainResult reports a training purchase back to the toolbar.
type TrainResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Cost    int    `json:"cost,omitempty"`
}

func (g *Game) initSlots() {
	g.slots = []*TrainingSlot{
		{ID: 0, UnitID: "marines"},
		{ID: 1, UnitID: "snipers"},
		{ID: 2, UnitID: "splayers", roster: []string{"splayers", "lasers", "drone-support"}},
		{ID: 3, UnitID: "workers"},
	}
	for _, s := range g.slots {
		g.refreshSlot(s)
	}
}

func (g *Game) refreshSlot(s *TrainingSlot) {
	stats := g.loadout.Units[s.UnitID]
	s.Duration = stats.TrainTime
	if s.UnitID == "workers" {
		s.Cost = g.workerCost()
	} else {
		s.Cost = stats.Cost
	}
}

// workerCost escalates linearly with the workers already hired.
func (g *Game) workerCost() int {
	return g.loadout.Units["workers"].Cost + g.workers*workerCostIncrement
}

// StartTraining deducts gold and begins the slot's timer. The check and the
// deduction happen atomically under the engine lock.
func (g *Game) StartTraining(slotID int) TrainResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startTraining(slotID)
}

func (g *Game) startTraining(slotID int) TrainResult {
	if slotID < 0 || slotID >= len(g.slots) {
		return TrainResult{Reason: "no such slot"}
	}
	s := g.slots[slotID]
	if s.Training {
		return TrainResult{Reason: "already training"}
	}
	g.refreshSlot(s)
	if s.Duration <= 0 || s.Cost < 0 {
		return TrainResult{Reason: "unit unavailable"}
	}
	if g.gold < s.Cost {
		return TrainResult{Reason: "not enough gold"}
	}
	g.gold -= s.Cost
	s.Training = true
	s.Progress = 0
	return TrainResult{Success: true, Cost: s.Cost}
}

// CycleSlot pages an equippable slot to its next roster entry.
func (g *Game) CycleSlot(slotID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slotID < 0 || slotID >= len(g.slots) {
		return
	}
	s := g.slots[slotID]
	if s.Training || len(s.roster) == 0 {
		return
	}
	for i, id := range s.roster {
		if id == s.UnitID {
			s.UnitID = s.roster[(i+1)%len(s.roster)]
			break
		}
	}
	g.refreshSlot(s)
}

func (g *Game) advanceTraining(dt float64) {
	for _, s := range g.slots {
		if !s.Training {
			continue
		}
		s.Progress += dt
		if s.Progress < s.Duration {
			continue
		}
		s.Training = false
		s.Progress = 0
		g.completeTraining(s.UnitID)
		g.refreshSlot(s)
	}
}

func (g *Game) completeTraining(unitID string) {
	if unitID == "workers" {
		// Workers never enter the lane; they raise the per-kill gold bounty.
		g.workers++
		g.killBonus = g.workers * killBonusPerWorker
		return
	}
	g.spawnMarine(unitID)
}

// spawnMarine places a freshly trained unit near the core anchor with a
// little positional jitter.
func (g *Game) spawnMarine(unitID string) *Marine {
	stats, ok := g.loadout.Units[unitID]
	if !ok {
		return nil
	}
	typ := marineType(unitID)
	return g.addMarine(&Marine{
		Type: typ,
		Pos: Vec2{
			X: g.anchor.X + (rand.Float64()*2-1)*spawnJitter,
			Y: g.anchor.Y - coreRadius - rand.Float64()*spawnJitter,
		},
		Radius:        stats.Radius,
		Health:        stats.Health,
		MaxHealth:     stats.Health,
		Attack:        stats.Attack,
		AttackSpeed:   stats.AttackSpeed,
		Range:         stats.Range,
		BaseMoveSpeed: stats.MoveSpeed,
		MoveSpeed:     stats.MoveSpeed,
		BulletSpeed:   stats.BulletSpeed,
	})
}

func marineType(unitID string) UnitType {
	switch unitID {
	case "snipers":
		return UnitSniper
	case "splayers":
		return UnitSplayer
	case "lasers":
		return UnitLaser
	case "workers":
		return UnitWorker
	case "drone-support":
		return UnitDroneSupport
	default:
		return UnitMarine
	}
}
