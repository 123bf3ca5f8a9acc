package utils

import (
	"testing"

	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wheelPrizes() []models.LuckyWheelPrize {
	return []models.LuckyWheelPrize{
		{Label: "Chúc bạn may mắn lần sau", Amount: 0, Probability: 50},
		{Label: "1.000đ", Amount: 1000, Probability: 30},
		{Label: "5.000đ", Amount: 5000, Probability: 15},
		{Label: "20.000đ", Amount: 20000, Probability: 5},
	}
}

func TestPickPrizeCumulative(t *testing.T) {
	prizes := wheelPrizes()

	tests := []struct {
		u    float64
		want string
	}{
		{0.0, "Chúc bạn may mắn lần sau"},
		{0.49, "Chúc bạn may mắn lần sau"},
		{0.5, "1.000đ"},
		{0.79, "1.000đ"},
		{0.8, "5.000đ"},
		{0.94, "5.000đ"},
		{0.95, "20.000đ"},
		{0.999, "20.000đ"},
	}

	for _, tt := range tests {
		prize, err := PickPrize(prizes, tt.u)
		require.NoError(t, err)
		assert.Equal(t, tt.want, prize.Label, "u=%v", tt.u)
	}
}

func TestPickPrizeNormalizesWeights(t *testing.T) {
	// Weights sum to 10, not 100. Each prize still wins weight/sum of the time.
	prizes := []models.LuckyWheelPrize{
		{Label: "a", Probability: 7},
		{Label: "b", Probability: 3},
	}

	prize, err := PickPrize(prizes, 0.69)
	require.NoError(t, err)
	assert.Equal(t, "a", prize.Label)

	prize, err = PickPrize(prizes, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "b", prize.Label)
}

func TestPickPrizeSkipsZeroWeights(t *testing.T) {
	prizes := []models.LuckyWheelPrize{
		{Label: "disabled", Probability: 0},
		{Label: "negative", Probability: -5},
		{Label: "only", Probability: 20},
	}

	for _, u := range []float64{0, 0.5, 0.999} {
		prize, err := PickPrize(prizes, u)
		require.NoError(t, err)
		assert.Equal(t, "only", prize.Label)
	}
}

func TestPickPrizeNoPrizes(t *testing.T) {
	_, err := PickPrize(nil, 0.5)
	assert.ErrorIs(t, err, ErrNoPrizes)

	_, err = PickPrize([]models.LuckyWheelPrize{{Label: "off", Probability: 0}}, 0.5)
	assert.ErrorIs(t, err, ErrNoPrizes)
}

func TestDrawPrizeDistribution(t *testing.T) {
	prizes := wheelPrizes()
	counts := make(map[string]int)

	const draws = 100000
	for i := 0; i < draws; i++ {
		prize, err := DrawPrize(prizes)
		require.NoError(t, err)
		counts[prize.Label]++
	}

	// Each slot should land within a few points of its configured weight.
	assert.InDelta(t, 0.50, float64(counts["Chúc bạn may mắn lần sau"])/draws, 0.02)
	assert.InDelta(t, 0.30, float64(counts["1.000đ"])/draws, 0.02)
	assert.InDelta(t, 0.15, float64(counts["5.000đ"])/draws, 0.02)
	assert.InDelta(t, 0.05, float64(counts["20.000đ"])/draws, 0.02)
}
