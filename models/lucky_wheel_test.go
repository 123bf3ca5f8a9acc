package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumeSpinPrefersFreeQuota(t *testing.T) {
	state := &UserSpinState{PurchasedSpins: 1}

	free, ok := state.ConsumeSpin(2)
	assert.True(t, ok)
	assert.True(t, free)

	free, ok = state.ConsumeSpin(2)
	assert.True(t, ok)
	assert.True(t, free)
	assert.Equal(t, 2, state.FreeSpinsUsed)
	assert.Equal(t, 1, state.PurchasedSpins)

	// Quota exhausted, the purchased spin is consumed next
	free, ok = state.ConsumeSpin(2)
	assert.True(t, ok)
	assert.False(t, free)
	assert.Equal(t, 0, state.PurchasedSpins)

	_, ok = state.ConsumeSpin(2)
	assert.False(t, ok)
}

func TestConsumeSpinZeroQuota(t *testing.T) {
	state := &UserSpinState{}

	_, ok := state.ConsumeSpin(0)
	assert.False(t, ok)

	state.PurchasedSpins = 1
	free, ok := state.ConsumeSpin(0)
	assert.True(t, ok)
	assert.False(t, free)
}
