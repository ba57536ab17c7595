package meta

// Shard allocation and stat derivation for the Kuf encounter.
// Shards are the permanent currency earned across runs; before a run they are
// allocated into per-unit and core-ship upgrade levels, and the engine consumes
// the derived stat blocks as opaque numbers.

import (
	"encoding/json"

	"kuf/internal/data"
)

type UpgradeKey string

const (
	UpgradeHealth      UpgradeKey = "health"
	UpgradeAttack      UpgradeKey = "attack"
	UpgradeAttackSpeed UpgradeKey = "attack_speed"
	UpgradeMoveSpeed   UpgradeKey = "move_speed"

	// Core-ship only.
	UpgradeHull        UpgradeKey = "hull"
	UpgradeShield      UpgradeKey = "shield"
	UpgradeCannons     UpgradeKey = "cannons"
	UpgradeShieldRegen UpgradeKey = "shield_regen"
	UpgradeDroneRate   UpgradeKey = "drone_rate"
)

type Upgrade struct {
	Key         UpgradeKey `json:"key"`
	Name        string     `json:"name"`
	MaxLevel    int        `json:"maxLevel"`
	BaseCost    int        `json:"baseCost"`    // Shards per level
	BonusPerLvl float64    `json:"bonusPerLvl"` // Percentage bonus per level
}

// UnitUpgrades applies to every trainable unit id.
var UnitUpgrades = map[UpgradeKey]Upgrade{
	UpgradeHealth:      {Key: UpgradeHealth, Name: "Plating", MaxLevel: 10, BaseCost: 40, BonusPerLvl: 10.0},
	UpgradeAttack:      {Key: UpgradeAttack, Name: "Munitions", MaxLevel: 10, BaseCost: 50, BonusPerLvl: 10.0},
	UpgradeAttackSpeed: {Key: UpgradeAttackSpeed, Name: "Autoloaders", MaxLevel: 5, BaseCost: 60, BonusPerLvl: 8.0},
	UpgradeMoveSpeed:   {Key: UpgradeMoveSpeed, Name: "Thrusters", MaxLevel: 5, BaseCost: 45, BonusPerLvl: 6.0},
}

var CoreUpgrades = map[UpgradeKey]Upgrade{
	UpgradeHull:        {Key: UpgradeHull, Name: "Reinforced Hull", MaxLevel: 10, BaseCost: 60, BonusPerLvl: 10.0},
	UpgradeShield:      {Key: UpgradeShield, Name: "Barrier Capacity", MaxLevel: 10, BaseCost: 60, BonusPerLvl: 10.0},
	UpgradeCannons:     {Key: UpgradeCannons, Name: "Cannon Battery", MaxLevel: 4, BaseCost: 150, BonusPerLvl: 1.0}, // +1 cannon per level
	UpgradeShieldRegen: {Key: UpgradeShieldRegen, Name: "Barrier Recycler", MaxLevel: 5, BaseCost: 80, BonusPerLvl: 15.0},
	UpgradeDroneRate:   {Key: UpgradeDroneRate, Name: "Drone Bay", MaxLevel: 5, BaseCost: 90, BonusPerLvl: 10.0},
}

// UnitStats is the stat block the engine consumes for one trainable unit type.
type UnitStats struct {
	Health      float64 `json:"health"`
	Attack      float64 `json:"attack"`
	AttackSpeed float64 `json:"attackSpeed"` // Shots per second
	MoveSpeed   float64 `json:"moveSpeed"`
	Range       float64 `json:"range"`
	Radius      float64 `json:"radius"`
	BulletSpeed float64 `json:"bulletSpeed"`
	Cost        int     `json:"cost"`
	TrainTime   float64 `json:"trainTime"` // Seconds
}

// CoreShipStats is the derived core-ship loadout.
type CoreShipStats struct {
	Health           float64   `json:"health"`
	Cannons          int       `json:"cannons"`
	Attack           float64   `json:"attack"`
	AttackSpeed      float64   `json:"attackSpeed"`
	Range            float64   `json:"range"`
	HullRepair       float64   `json:"hullRepair"` // HP per second
	HealingAuraRange float64   `json:"healingAuraRange"`
	HealingAuraRate  float64   `json:"healingAuraRate"`
	Shield           float64   `json:"shield"`
	ShieldRegenRate  float64   `json:"shieldRegenRate"`
	ShieldRegenDelay float64   `json:"shieldRegenDelay"` // Seconds of no damage before regen
	DroneInterval    float64   `json:"droneInterval"`    // Seconds between drone spawns
	Drone            UnitStats `json:"drone"`
}

var baseUnits = map[string]UnitStats{
	"marines":  {Health: 30, Attack: 5, AttackSpeed: 2.0, MoveSpeed: 60, Range: 150, Radius: 8, BulletSpeed: 420, Cost: 3, TrainTime: 3},
	"snipers":  {Health: 20, Attack: 18, AttackSpeed: 0.6, MoveSpeed: 50, Range: 320, Radius: 8, BulletSpeed: 720, Cost: 6, TrainTime: 5},
	"splayers": {Health: 26, Attack: 12, AttackSpeed: 0.8, MoveSpeed: 55, Range: 180, Radius: 9, BulletSpeed: 300, Cost: 8, TrainTime: 6},
	"lasers":   {Health: 24, Attack: 10, AttackSpeed: 0.9, MoveSpeed: 52, Range: 260, Radius: 8, BulletSpeed: 560, Cost: 9, TrainTime: 6},
	// Workers never enter the lane; cost here is the base of the escalating
	// price, the increment lives with the engine's economy.
	"workers":       {Health: 10, Attack: 0, AttackSpeed: 0, MoveSpeed: 0, Range: 0, Radius: 6, Cost: 2, TrainTime: 2},
	"drone-support": {Health: 22, Attack: 4, AttackSpeed: 1.0, MoveSpeed: 58, Range: 130, Radius: 8, Cost: 7, TrainTime: 5},
}

var baseCore = CoreShipStats{
	Health:           500,
	Cannons:          2,
	Attack:           8,
	AttackSpeed:      1.2,
	Range:            300,
	HullRepair:       2,
	HealingAuraRange: 120,
	HealingAuraRate:  3,
	Shield:           100,
	ShieldRegenRate:  10,
	ShieldRegenDelay: 4,
	DroneInterval:    12,
	Drone:            UnitStats{Health: 15, Attack: 3, AttackSpeed: 1.5, MoveSpeed: 80, Range: 140, Radius: 6, BulletSpeed: 420},
}

// Allocation is a pilot's persistent shard spending.
type Allocation struct {
	Shards     int                           `json:"shards"` // Unspent balance
	Units      map[string]map[UpgradeKey]int `json:"units"`  // Unit id -> upgrade -> level
	Core       map[UpgradeKey]int            `json:"core"`
	TotalRuns  int                           `json:"totalRuns"`
	TotalKills int                           `json:"totalKills"`
	BestGold   int                           `json:"bestGold"`
}

func NewAllocation() *Allocation {
	return &Allocation{
		Units: make(map[string]map[UpgradeKey]int),
		Core:  make(map[UpgradeKey]int),
	}
}

func (a *Allocation) unitLevel(unitID string, key UpgradeKey) int {
	if a == nil {
		return 0
	}
	return a.Units[unitID][key]
}

func (a *Allocation) unitBonus(unitID string, key UpgradeKey) float64 {
	return float64(a.unitLevel(unitID, key)) * UnitUpgrades[key].BonusPerLvl / 100.0
}

func (a *Allocation) coreBonus(key UpgradeKey) float64 {
	if a == nil {
		return 0
	}
	return float64(a.Core[key]) * CoreUpgrades[key].BonusPerLvl / 100.0
}

// UpgradeCost returns the shard price of the next level of a unit upgrade.
func (a *Allocation) UpgradeCost(unitID string, key UpgradeKey) int {
	return UnitUpgrades[key].BaseCost * (a.unitLevel(unitID, key) + 1)
}

// PurchaseUnitUpgrade spends shards on one level; returns false when capped or
// unaffordable.
func (a *Allocation) PurchaseUnitUpgrade(unitID string, key UpgradeKey) bool {
	up, ok := UnitUpgrades[key]
	if !ok {
		return false
	}
	if _, ok := baseUnits[unitID]; !ok {
		return false
	}
	level := a.unitLevel(unitID, key)
	if level >= up.MaxLevel {
		return false
	}
	cost := a.UpgradeCost(unitID, key)
	if a.Shards < cost {
		return false
	}
	a.Shards -= cost
	if a.Units[unitID] == nil {
		a.Units[unitID] = make(map[UpgradeKey]int)
	}
	a.Units[unitID][key] = level + 1
	return true
}

// PurchaseCoreUpgrade is the core-ship counterpart.
func (a *Allocation) PurchaseCoreUpgrade(key UpgradeKey) bool {
	up, ok := CoreUpgrades[key]
	if !ok {
		return false
	}
	level := a.Core[key]
	if level >= up.MaxLevel {
		return false
	}
	cost := up.BaseCost * (level + 1)
	if a.Shards < cost {
		return false
	}
	a.Shards -= cost
	a.Core[key] = level + 1
	return true
}

// CalculateKufUnitStats derives a unit's starting stat block from the shard
// allocation. A nil or empty allocation yields the declared base block exactly.
func CalculateKufUnitStats(unitID string, alloc *Allocation) UnitStats {
	s, ok := baseUnits[unitID]
	if !ok {
		return UnitStats{}
	}
	s.Health *= 1.0 + alloc.unitBonus(unitID, UpgradeHealth)
	s.Attack *= 1.0 + alloc.unitBonus(unitID, UpgradeAttack)
	s.AttackSpeed *= 1.0 + alloc.unitBonus(unitID, UpgradeAttackSpeed)
	s.MoveSpeed *= 1.0 + alloc.unitBonus(unitID, UpgradeMoveSpeed)
	return s
}

// CalculateCoreShipStats derives the core-ship loadout from the allocation.
func CalculateCoreShipStats(alloc *Allocation) CoreShipStats {
	c := baseCore
	c.Health *= 1.0 + alloc.coreBonus(UpgradeHull)
	c.Shield *= 1.0 + alloc.coreBonus(UpgradeShield)
	c.ShieldRegenRate *= 1.0 + alloc.coreBonus(UpgradeShieldRegen)
	c.DroneInterval /= 1.0 + alloc.coreBonus(UpgradeDroneRate)
	if alloc != nil {
		c.Cannons += alloc.Core[UpgradeCannons]
	}
	return c
}

// UnitIDs lists the trainable unit ids in toolbar order.
func UnitIDs() []string {
	return []string{"marines", "snipers", "splayers", "lasers", "workers", "drone-support"}
}

// ShardReward converts a run result into shards earned.
func ShardReward(gold, kills int, victory bool) int {
	reward := gold/4 + kills*2
	if victory {
		reward *= 2
	}
	return reward
}

// ToJSON serializes the allocation for the pilot's meta column.
func (a *Allocation) ToJSON() string {
	b, _ := json.Marshal(a)
	return string(b)
}

func AllocationFromJSON(raw string) *Allocation {
	a := NewAllocation()
	if raw == "" {
		return a
	}
	json.Unmarshal([]byte(raw), a)
	if a.Units == nil {
		a.Units = make(map[string]map[UpgradeKey]int)
	}
	if a.Core == nil {
		a.Core = make(map[UpgradeKey]int)
	}
	return a
}

// Store integration helpers, same shape as the rest of the pilot metadata.

func LoadAllocation(store *data.Store, pilotID string) *Allocation {
	if store == nil || pilotID == "" || pilotID == "guest" {
		return NewAllocation()
	}
	p, ok := store.GetPilot(pilotID)
	if !ok {
		return NewAllocation()
	}
	return AllocationFromJSON(p.KufMeta)
}

func SaveAllocation(store *data.Store, pilotID string, a *Allocation) {
	if store == nil || pilotID == "" || pilotID == "guest" {
		return
	}
	store.UpdateKufMeta(pilotID, a.ToJSON())
}
