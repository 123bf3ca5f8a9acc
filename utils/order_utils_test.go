package utils

import (
	"testing"

	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOrderPrice(t *testing.T) {
	tests := []struct {
		name             string
		pricePerThousand float64
		quantity         int
		want             float64
	}{
		{"exact thousand", 10000, 1000, 10000},
		{"half thousand", 10000, 500, 5000},
		{"small quantity rounds", 15000, 100, 1500},
		{"rounds up to nearest unit", 999, 1500, 1499}, // 1498.5 rounds half away from zero
		{"rounds down", 1000, 1501, 1501},
		{"single unit", 50000, 1, 50},
		{"large order", 2500, 100000, 250000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOrderPrice(tt.pricePerThousand, tt.quantity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateOrderQuantity(t *testing.T) {
	server := &models.ServiceServer{MinQuantity: 100, MaxQuantity: 10000}

	assert.NoError(t, ValidateOrderQuantity(server, 100))
	assert.NoError(t, ValidateOrderQuantity(server, 10000))
	assert.NoError(t, ValidateOrderQuantity(server, 5000))

	err := ValidateOrderQuantity(server, 99)
	assert.ErrorIs(t, err, ErrQuantityOutOfRange)

	err = ValidateOrderQuantity(server, 10001)
	assert.ErrorIs(t, err, ErrQuantityOutOfRange)

	err = ValidateOrderQuantity(server, 0)
	assert.ErrorIs(t, err, ErrQuantityOutOfRange)
}
