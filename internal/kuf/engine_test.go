package kuf

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRunPlacesEncounter(t *testing.T) {
	g := NewGame(zerolog.Nop(), nil)
	g.StartRun("kuf", Vec2{X: 0, Y: 0}, DefaultLoadout())

	assert.True(t, g.runActive)
	assert.Equal(t, startingGold, g.gold)
	assert.Len(t, g.turrets, len(Encounters["kuf"]))
	assert.Equal(t, 1, g.structures) // One spire objective
	require.NotNil(t, g.core)
	assert.Equal(t, g.core.MaxHealth, g.core.Health)
	assert.Len(t, g.slots, 4)
}

func TestStartRunUnknownEncounterFallsBack(t *testing.T) {
	g := NewGame(zerolog.Nop(), nil)
	g.StartRun("no-such-layout", Vec2{}, DefaultLoadout())
	assert.Equal(t, "kuf", g.encounter)
	assert.NotEmpty(t, g.turrets)
}

func TestStartRunResetsPreviousState(t *testing.T) {
	g := newTestGame()
	g.spawnTestMarine("marines", 0, -100)
	g.gold = 999
	g.kills = 7
	g.workers = 3

	g.StartRun("kuf", Vec2{}, DefaultLoadout())
	assert.Empty(t, g.marines)
	assert.Equal(t, startingGold, g.gold)
	assert.Zero(t, g.kills)
	assert.Zero(t, g.workers)
	assert.Zero(t, g.killBonus)
	assert.Zero(t, g.targetOverride)
}

func TestUpdateRejectsBadDelta(t *testing.T) {
	g := newTestGame()
	g.Update(math.NaN())
	g.Update(-1)
	g.Update(0)
	assert.Zero(t, g.gameTime)
}

func TestUpdateClampsLargeDelta(t *testing.T) {
	g := newTestGame()
	g.Update(10)
	assert.InDelta(t, maxDelta, g.gameTime, 1e-9)
}

func TestUpdateIdleWhenRunOver(t *testing.T) {
	g := newTestGame()
	g.runActive = false
	g.Update(1.0 / TickRate)
	assert.Zero(t, g.gameTime)
}

func TestCommandMoveIssuesWaypoints(t *testing.T) {
	g := newTestGame()
	a := g.spawnTestMarine("marines", 0, 0)
	b := g.spawnTestMarine("snipers", 20, 0)

	g.CommandMove(50, -300)
	require.NotNil(t, a.Waypoint)
	require.NotNil(t, b.Waypoint)
	assert.Equal(t, Vec2{X: 50, Y: -300}, *a.Waypoint)

	// Each marine owns its waypoint copy.
	a.Waypoint.X = 0
	assert.Equal(t, 50.0, b.Waypoint.X)
}

func TestCommandMoveRejectsNonFinite(t *testing.T) {
	g := newTestGame()
	m := g.spawnTestMarine("marines", 0, 0)
	g.CommandMove(math.Inf(1), 0)
	assert.Nil(t, m.Waypoint)
}

func TestRestartOnlyAfterRunEnds(t *testing.T) {
	g := newTestGame()
	g.Restart("kuf-siege", "guest")
	assert.NotEqual(t, "kuf-siege", g.encounter) // Run still live

	g.runActive = false
	g.Restart("kuf-siege", "guest")
	assert.True(t, g.runActive)
	assert.Equal(t, "kuf-siege", g.encounter)
	assert.Len(t, g.turrets, len(Encounters["kuf-siege"]))
}

func TestLoadoutForNilStoreIsBaseline(t *testing.T) {
	got := LoadoutFor(nil, "guest")
	want := DefaultLoadout()
	assert.Equal(t, want.Units, got.Units)
	assert.Equal(t, want.Core, got.Core)
}
