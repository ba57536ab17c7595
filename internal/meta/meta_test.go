package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroAllocationYieldsBaseStats(t *testing.T) {
	for _, id := range UnitIDs() {
		got := CalculateKufUnitStats(id, nil)
		assert.Equal(t, baseUnits[id], got, id)

		got = CalculateKufUnitStats(id, NewAllocation())
		assert.Equal(t, baseUnits[id], got, id)
	}
}

func TestUnknownUnitYieldsZeroStats(t *testing.T) {
	assert.Equal(t, UnitStats{}, CalculateKufUnitStats("grenadiers", nil))
}

func TestUnitUpgradesScaleStats(t *testing.T) {
	a := NewAllocation()
	a.Shards = 10000
	require.True(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth))
	require.True(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth))
	require.True(t, a.PurchaseUnitUpgrade("marines", UpgradeAttack))

	got := CalculateKufUnitStats("marines", a)
	base := baseUnits["marines"]
	assert.InDelta(t, base.Health*1.20, got.Health, 1e-9)
	assert.InDelta(t, base.Attack*1.10, got.Attack, 1e-9)
	assert.InDelta(t, base.AttackSpeed, got.AttackSpeed, 1e-9)

	// Upgrades are per unit id.
	assert.Equal(t, baseUnits["snipers"], CalculateKufUnitStats("snipers", a))
}

func TestUpgradeCostRisesPerLevel(t *testing.T) {
	a := NewAllocation()
	a.Shards = 10000
	first := a.UpgradeCost("marines", UpgradeHealth)
	require.True(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth))
	second := a.UpgradeCost("marines", UpgradeHealth)
	assert.Equal(t, first*2, second)
}

func TestPurchaseRespectsCapAndBalance(t *testing.T) {
	a := NewAllocation()
	assert.False(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth)) // No shards

	a.Shards = 1 << 30
	up := UnitUpgrades[UpgradeHealth]
	for i := 0; i < up.MaxLevel; i++ {
		require.True(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth))
	}
	assert.False(t, a.PurchaseUnitUpgrade("marines", UpgradeHealth)) // Capped

	assert.False(t, a.PurchaseUnitUpgrade("marines", "warp_drive"))
	assert.False(t, a.PurchaseUnitUpgrade("grenadiers", UpgradeHealth))
}

func TestCoreUpgrades(t *testing.T) {
	a := NewAllocation()
	a.Shards = 10000
	require.True(t, a.PurchaseCoreUpgrade(UpgradeHull))
	require.True(t, a.PurchaseCoreUpgrade(UpgradeCannons))
	require.True(t, a.PurchaseCoreUpgrade(UpgradeDroneRate))

	got := CalculateCoreShipStats(a)
	assert.InDelta(t, baseCore.Health*1.10, got.Health, 1e-9)
	assert.Equal(t, baseCore.Cannons+1, got.Cannons)
	assert.InDelta(t, baseCore.DroneInterval/1.10, got.DroneInterval, 1e-9)
	assert.InDelta(t, baseCore.Shield, got.Shield, 1e-9)
}

func TestCoreStatsNilAllocation(t *testing.T) {
	assert.Equal(t, baseCore, CalculateCoreShipStats(nil))
}

func TestShardReward(t *testing.T) {
	assert.Equal(t, 20, ShardReward(40, 5, false)) // 10 + 10
	assert.Equal(t, 40, ShardReward(40, 5, true))
	assert.Equal(t, 0, ShardReward(0, 0, false))
}

func TestAllocationJSONRoundTrip(t *testing.T) {
	a := NewAllocation()
	a.Shards = 120
	a.TotalRuns = 4
	a.Core[UpgradeShield] = 2
	a.Units["marines"] = map[UpgradeKey]int{UpgradeAttack: 3}

	got := AllocationFromJSON(a.ToJSON())
	assert.Equal(t, a, got)
}

func TestAllocationFromJSONTolerantOfGarbage(t *testing.T) {
	for _, raw := range []string{"", "{", `{"units":null,"core":null}`} {
		got := AllocationFromJSON(raw)
		require.NotNil(t, got, raw)
		assert.NotNil(t, got.Units, raw)
		assert.NotNil(t, got.Core, raw)
	}
}
