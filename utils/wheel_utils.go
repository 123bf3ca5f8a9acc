package utils

import (
	"errors"
	"math/rand"

	"github.com/hieudt-ng/SMMPanel/models"
)

// ErrNoPrizes is returned when a wheel config has no drawable prizes.
var ErrNoPrizes = errors.New("no prizes configured")

// PickPrize selects a prize by cumulative probability. u must lie in [0, 1).
// Weights are normalized over their sum, so configs whose probabilities do
// not add up to exactly 100 still select each prize with weight/sum odds.
func PickPrize(prizes []models.LuckyWheelPrize, u float64) (*models.LuckyWheelPrize, error) {
	var total float64
	for i := range prizes {
		if prizes[i].Probability > 0 {
			total += prizes[i].Probability
		}
	}
	if len(prizes) == 0 || total <= 0 {
		return nil, ErrNoPrizes
	}

	target := u * total
	var cumulative float64
	for i := range prizes {
		if prizes[i].Probability <= 0 {
			continue
		}
		cumulative += prizes[i].Probability
		if cumulative > target {
			return &prizes[i], nil
		}
	}

	// Floating point slack on the last slot.
	for i := len(prizes) - 1; i >= 0; i-- {
		if prizes[i].Probability > 0 {
			return &prizes[i], nil
		}
	}
	return nil, ErrNoPrizes
}

// DrawPrize runs one weighted random draw over the prize list.
func DrawPrize(prizes []models.LuckyWheelPrize) (*models.LuckyWheelPrize, error) {
	return PickPrize(prizes, rand.Float64())
}
