package controllers

import (
	"fmt"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func activeWheelConfig() (*models.LuckyWheelConfig, error) {
	var wheelConfig models.LuckyWheelConfig
	err := config.DB.Preload("Prizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("is_active = ?", true).First(&wheelConfig).Error
	if err != nil {
		return nil, err
	}
	return &wheelConfig, nil
}

// lockSpinState loads the user's spin state row FOR UPDATE, creating it on
// first use, and rolls the daily free quota over when the calendar day
// changed since the last spin. Callers that also move money must take the
// wallet row lock before calling this.
func lockSpinState(tx *gorm.DB, userID uint) (*models.UserSpinState, error) {
	today := time.Now().Format("2006-01-02")

	var state models.UserSpinState
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		state = models.UserSpinState{UserID: userID, FreeSpinsDate: today}
		if err := tx.Create(&state).Error; err != nil {
			return nil, err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&state).Error; err != nil {
			return nil, err
		}
	}

	if state.FreeSpinsDate != today {
		state.FreeSpinsDate = today
		state.FreeSpinsUsed = 0
	}
	return &state, nil
}

// GetLuckyWheel returns the active wheel and the user's remaining spins
func GetLuckyWheel(c *gin.Context) {
	utils.LogInfo("GetLuckyWheel called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	wheelConfig, err := activeWheelConfig()
	if err != nil {
		utils.LogError("No active lucky wheel config: %v", err)
		utils.NotFound(c, utils.MsgWheelNotConfigured)
		return
	}

	today := time.Now().Format("2006-01-02")
	var state models.UserSpinState
	freeLeft := wheelConfig.SpinsPerDay
	purchased := 0
	if err := config.DB.Where("user_id = ?", user.ID).First(&state).Error; err == nil {
		purchased = state.PurchasedSpins
		if state.FreeSpinsDate == today {
			freeLeft = wheelConfig.SpinsPerDay - state.FreeSpinsUsed
			if freeLeft < 0 {
				freeLeft = 0
			}
		}
	}

	utils.Success(c, "Vòng quay may mắn", gin.H{
		"wheel": gin.H{
			"name":          wheelConfig.Name,
			"spins_per_day": wheelConfig.SpinsPerDay,
			"spin_cost":     wheelConfig.SpinCost,
			"prizes":        wheelConfig.Prizes,
		},
		"free_spins_left": freeLeft,
		"purchased_spins": purchased,
	})
}

// SpinLuckyWheel consumes one spin (daily free quota first, then purchased
// spins), draws a prize and credits it as a BONUS ledger entry, all in one
// atomic unit.
func SpinLuckyWheel(c *gin.Context) {
	utils.LogInfo("SpinLuckyWheel called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	wheelConfig, err := activeWheelConfig()
	if err != nil {
		utils.LogError("No active lucky wheel config: %v", err)
		utils.NotFound(c, utils.MsgWheelNotConfigured)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	// Lock order: wallet row first, then spin state, matching BuySpins
	wallet, err := utils.LockWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	state, err := lockSpinState(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock spin state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	free, ok := state.ConsumeSpin(wheelConfig.SpinsPerDay)
	if !ok {
		tx.Rollback()
		utils.LogInfo("User ID: %d has no spins left", user.ID)
		utils.BadRequest(c, utils.MsgNoSpinsLeft)
		return
	}

	if err := tx.Save(state).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to save spin state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	prize, err := utils.DrawPrize(wheelConfig.Prizes)
	if err != nil {
		tx.Rollback()
		utils.LogError("Lucky wheel draw failed for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgWheelNotConfigured)
		return
	}
	utils.LogDebug("User ID: %d drew prize %q worth %.2f", user.ID, prize.Label, prize.Amount)

	var balanceAfter float64
	if prize.Amount > 0 {
		description := fmt.Sprintf("Thưởng vòng quay may mắn - %s", prize.Label)
		reference := fmt.Sprintf("BONUS-%s", uuid.New().String())
		transaction, err := utils.CreditWallet(tx, wallet, prize.Amount, models.TransactionTypeBonus,
			description, reference, false)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit bonus for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, utils.MsgInternalError)
			return
		}
		balanceAfter = transaction.BalanceAfter
	}

	spin := models.LuckyWheelSpin{
		UserID:   user.ID,
		ConfigID: wheelConfig.ID,
		PrizeID:  prize.ID,
		Label:    prize.Label,
		Amount:   prize.Amount,
		Free:     free,
	}
	if err := tx.Create(&spin).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to record spin for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit spin for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("User ID: %d spun the wheel - prize: %s, amount: %.2f, free: %t",
		user.ID, prize.Label, prize.Amount, free)

	freeLeft := wheelConfig.SpinsPerDay - state.FreeSpinsUsed
	if freeLeft < 0 {
		freeLeft = 0
	}

	utils.Success(c, "Chúc mừng! Bạn đã quay trúng "+prize.Label, gin.H{
		"prize": gin.H{
			"label":  prize.Label,
			"amount": prize.Amount,
		},
		"balance_after":   balanceAfter,
		"free_spins_left": freeLeft,
		"purchased_spins": state.PurchasedSpins,
	})
}

// BuySpinsRequest represents the spin purchase request body
type BuySpinsRequest struct {
	Amount int `json:"amount" binding:"required,min=1,max=100"`
}

// BuySpins debits the spin cost from the wallet and adds purchased spins.
// The charge is recorded as an ORDER-typed ledger entry with a negative
// amount, the same as any other spend.
func BuySpins(c *gin.Context) {
	utils.LogInfo("BuySpins called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	var req BuySpinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid buy-spins request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, utils.MsgInvalidInput)
		return
	}

	wheelConfig, err := activeWheelConfig()
	if err != nil {
		utils.LogError("No active lucky wheel config: %v", err)
		utils.NotFound(c, utils.MsgWheelNotConfigured)
		return
	}
	if wheelConfig.SpinCost <= 0 {
		utils.LogError("Wheel config ID: %d does not sell spins", wheelConfig.ID)
		utils.BadRequest(c, "Vòng quay hiện không bán lượt quay")
		return
	}

	cost := wheelConfig.SpinCost * float64(req.Amount)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	wallet, err := utils.LockWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	description := fmt.Sprintf("Mua %d lượt quay may mắn", req.Amount)
	reference := fmt.Sprintf("SPINS-%s", uuid.New().String())
	transaction, err := utils.DebitWallet(tx, wallet, cost, models.TransactionTypeOrder,
		description, reference, nil)
	if err != nil {
		tx.Rollback()
		if err == utils.ErrInsufficientBalance {
			utils.LogError("Insufficient balance for spin purchase, user ID: %d. Required: %.2f, Available: %.2f",
				user.ID, cost, wallet.Balance)
			utils.BadRequest(c, utils.MsgInsufficientBalance)
			return
		}
		utils.LogError("Failed to debit spin purchase for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	state, err := lockSpinState(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to lock spin state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	state.PurchasedSpins += req.Amount
	if err := tx.Save(state).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to save spin state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit spin purchase for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("User ID: %d bought %d spins for %.2f", user.ID, req.Amount, cost)

	utils.Success(c, fmt.Sprintf("Đã mua %d lượt quay", req.Amount), gin.H{
		"purchased_spins": state.PurchasedSpins,
		"transaction": gin.H{
			"id":            transaction.ID,
			"amount":        transaction.Amount,
			"balance_after": transaction.BalanceAfter,
		},
	})
}
