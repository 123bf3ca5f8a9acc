package models

import (
	"time"

	"gorm.io/gorm"
)

// LuckyWheelConfig holds the active wheel setup: the daily free-spin quota,
// the price of an extra spin, and the ordered prize list.
type LuckyWheelConfig struct {
	gorm.Model
	Name        string            `json:"name"`
	SpinsPerDay int               `json:"spins_per_day" gorm:"default:1"`
	SpinCost    float64           `json:"spin_cost"`
	IsActive    bool              `json:"is_active" gorm:"default:false"`
	Prizes      []LuckyWheelPrize `json:"prizes" gorm:"foreignKey:ConfigID"`
}

// LuckyWheelPrize is one wheel slot. Probability is a weight; weights are
// normalized over their sum at draw time, so a config whose weights total 80
// or 120 still behaves as weight/sum.
type LuckyWheelPrize struct {
	gorm.Model
	ConfigID    uint    `json:"config_id" gorm:"index"`
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	Probability float64 `json:"probability"`
	SortOrder   int     `json:"sort_order" gorm:"default:0"`
}

// LuckyWheelSpin is the audit row for one executed spin.
type LuckyWheelSpin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ConfigID  uint      `json:"config_id"`
	PrizeID   uint      `json:"prize_id"`
	Label     string    `json:"label"`
	Amount    float64   `json:"amount"`
	Free      bool      `json:"free"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSpinState tracks the per-user daily free quota and the purchased spin
// balance. FreeSpinsUsed applies to FreeSpinsDate only; a spin on a later
// calendar day resets the counter.
type UserSpinState struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex"`
	FreeSpinsUsed  int       `json:"free_spins_used" gorm:"default:0"`
	FreeSpinsDate  string    `json:"free_spins_date"`
	PurchasedSpins int       `json:"purchased_spins" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ConsumeSpin takes one spin, preferring the daily free quota over purchased
// spins. Reports whether the consumed spin was free and whether any spin was
// available at all.
func (s *UserSpinState) ConsumeSpin(dailyQuota int) (free, ok bool) {
	if s.FreeSpinsUsed < dailyQuota {
		s.FreeSpinsUsed++
		return true, true
	}
	if s.PurchasedSpins > 0 {
		s.PurchasedSpins--
		return false, true
	}
	return false, false
}
