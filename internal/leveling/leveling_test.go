package leveling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/internal/leveling"
)

func TestLevelOf_Basics(t *testing.T) {
	c := leveling.Default()

	assert.Equal(t, 0, c.LevelOf(-5))
	assert.Equal(t, 0, c.LevelOf(0))
	assert.Equal(t, 0, c.LevelOf(99))
	assert.Equal(t, 1, c.LevelOf(100))
	assert.Equal(t, 10, c.LevelOf(1000))
	assert.Equal(t, 20, c.LevelOf(2500))
	assert.Equal(t, 30, c.LevelOf(4500))
	assert.Equal(t, 40, c.LevelOf(7500))
	assert.Equal(t, 50, c.LevelOf(10500))
}

func TestLevelOf_MilestoneBoundaries(t *testing.T) {
	c := leveling.Default()
	for _, boundary := range []int{1000, 2500, 4500, 7500} {
		assert.Equal(t, c.LevelOf(boundary-1)+1, c.LevelOf(boundary), "boundary %d", boundary)
	}
}

func TestRoundTrip(t *testing.T) {
	c := leveling.Default()
	for points := 0; points <= 12000; points++ {
		level := c.LevelOf(points)
		require.LessOrEqual(t, c.TotalCostForLevel(level), points, "points %d", points)
		require.Less(t, points, c.TotalCostForLevel(level+1), "points %d", points)
	}
}

func TestProgress(t *testing.T) {
	c := leveling.Default()

	assert.Equal(t, leveling.Progress{Level: 10, PointsIntoLevel: 75, NextLevelCost: 150, PointsToNext: 75}, c.Progress(1075))
	assert.Equal(t, leveling.Progress{Level: 0, PointsIntoLevel: 0, NextLevelCost: 100, PointsToNext: 100}, c.Progress(0))
	assert.Equal(t, leveling.Progress{Level: 40, PointsIntoLevel: 0, NextLevelCost: 300, PointsToNext: 300}, c.Progress(7500))
}

func TestNew_Validation(t *testing.T) {
	_, err := leveling.New(nil)
	assert.ErrorIs(t, err, leveling.ErrInvalidBands)

	_, err = leveling.New([]leveling.Band{{Floor: 1, Cost: 100}})
	assert.ErrorIs(t, err, leveling.ErrInvalidBands)

	_, err = leveling.New([]leveling.Band{{Floor: 0, Cost: 100}, {Floor: 0, Cost: 200}})
	assert.ErrorIs(t, err, leveling.ErrInvalidBands)

	_, err = leveling.New([]leveling.Band{{Floor: 0, Cost: 0}})
	assert.ErrorIs(t, err, leveling.ErrInvalidBands)
}

func TestCustomBands_CheaperLaterBand(t *testing.T) {
	c, err := leveling.New([]leveling.Band{{Floor: 0, Cost: 200}, {Floor: 2, Cost: 50}})
	require.NoError(t, err)

	assert.Equal(t, 2, c.LevelOf(449))
	assert.Equal(t, 3, c.LevelOf(450))
	assert.Equal(t, 450, c.TotalCostForLevel(3))
}
