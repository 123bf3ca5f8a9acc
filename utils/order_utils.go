package utils

import (
	"errors"
	"fmt"
	"math"

	"github.com/hieudt-ng/SMMPanel/models"
)

// ErrQuantityOutOfRange is returned when an order quantity falls outside the
// server's min/max bounds.
var ErrQuantityOutOfRange = errors.New("quantity out of range")

// CalculateOrderPrice computes the charge for quantity units on a server
// priced per 1000 units, rounded to the nearest unit of currency.
func CalculateOrderPrice(pricePerThousand float64, quantity int) float64 {
	return math.Round(pricePerThousand * float64(quantity) / 1000)
}

// ValidateOrderQuantity checks quantity against the server's bounds.
func ValidateOrderQuantity(server *models.ServiceServer, quantity int) error {
	if quantity < server.MinQuantity || quantity > server.MaxQuantity {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrQuantityOutOfRange,
			quantity, server.MinQuantity, server.MaxQuantity)
	}
	return nil
}
