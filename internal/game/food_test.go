package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodField_TestRadius(t *testing.T) {
	f := NewFoodField(10)
	f.Add(Vec2{X: 100, Y: 100})

	assert.Equal(t, 0, f.Test(Vec2{X: 100, Y: 100}))
	assert.Equal(t, 0, f.Test(Vec2{X: 106, Y: 108}), "distance exactly 10 is a hit")
	assert.Equal(t, NoFood, f.Test(Vec2{X: 106, Y: 108.1}))
	assert.Equal(t, NoFood, f.Test(Vec2{X: 0, Y: 0}))
}

func TestFoodField_FirstMatchWins(t *testing.T) {
	f := NewFoodField(10)
	f.Add(Vec2{X: 8, Y: 0})
	f.Add(Vec2{X: 0, Y: 0}) // closer, but added later

	assert.Equal(t, 0, f.Test(Vec2{}))
}

func TestFoodField_RemovePreservesOrder(t *testing.T) {
	f := NewFoodField(10)
	a := f.Add(Vec2{X: 0})
	b := f.Add(Vec2{X: 100})
	c := f.Add(Vec2{X: 200})

	got, ok := f.Remove(1)
	require.True(t, ok)
	assert.Equal(t, b, got)
	assert.Equal(t, []Food{a, c}, f.Items())
	assert.Equal(t, NoFood, f.Test(Vec2{X: 100}), "removed food is gone")
	assert.Equal(t, 1, f.Test(Vec2{X: 200}))
}

func TestFoodField_RemoveOutOfRangeIsNoop(t *testing.T) {
	f := NewFoodField(10)
	f.Add(Vec2{})

	for _, i := range []int{NoFood, -5, 1, 99} {
		_, ok := f.Remove(i)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, f.Len())
}

func TestFoodField_UniqueIDs(t *testing.T) {
	f := NewFoodField(10)
	a := f.Add(Vec2{})
	f.Remove(0)
	b := f.Add(Vec2{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFoodField_ItemsIsCopy(t *testing.T) {
	f := NewFoodField(10)
	f.Add(Vec2{X: 1})
	items := f.Items()
	items[0].Position.X = 500
	assert.Equal(t, 1.0, f.Items()[0].Position.X)
}

func TestFoodField_Scatter(t *testing.T) {
	f := NewFoodField(10)
	exclude := []Cell{{0, 0}, {1, 0}, {2, 0}}
	placed := f.Scatter(NewRand(1), 50, 10, 10, 20, exclude)
	require.Equal(t, 50, placed)
	require.Equal(t, 50, f.Len())

	seen := map[Vec2]bool{}
	for _, item := range f.Items() {
		p := item.Position
		assert.False(t, seen[p], "cells are distinct")
		seen[p] = true
		assert.Zero(t, int(p.X)%20, "grid aligned")
		assert.Zero(t, int(p.Y)%20, "grid aligned")
		assert.True(t, p.X >= 0 && p.X < 200 && p.Y >= 0 && p.Y < 200, "inside the area")
		for _, c := range exclude {
			assert.NotEqual(t, c.World(20), p, "excluded cell used")
		}
	}
}

func TestFoodField_ScatterCapsAtFreeCells(t *testing.T) {
	f := NewFoodField(10)
	assert.Equal(t, 3, f.Scatter(NewRand(1), 10, 2, 2, 20, []Cell{{0, 0}}))
	assert.Equal(t, 1, f.Scatter(NewRand(2), 10, 2, 2, 20, nil), "only the previously excluded cell is free")
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 0, f.Scatter(NewRand(3), 10, 2, 2, 20, nil))
}

func TestFoodField_ScatterDeterministic(t *testing.T) {
	a := NewFoodField(10)
	b := NewFoodField(10)
	a.Scatter(NewRand(99), 20, 30, 30, 20, nil)
	b.Scatter(NewRand(99), 20, 30, 30, 20, nil)
	assert.Equal(t, a.Items(), b.Items())
}
