package controllers

import (
	"fmt"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadWalletStatement renders the user's transaction history as a PDF
func DownloadWalletStatement(c *gin.Context) {
	utils.LogInfo("DownloadWalletStatement called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, utils.MsgUnauthorized)
		return
	}
	user := userVal.(models.User)

	// Optional date range, defaults to the last 30 days
	now := time.Now()
	endDate := now
	startDate := now.AddDate(0, 0, -30)
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			startDate = parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			endDate = parsed.Add(24*time.Hour - time.Nanosecond)
		}
	}
	utils.LogDebug("Statement range for user ID: %d: %s to %s", user.ID,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	var transactions []models.Transaction
	if err := config.DB.Where("user_id = ? AND created_at >= ? AND created_at <= ?",
		user.ID, startDate, endDate).
		Order("created_at ASC").Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Retrieved %d transactions for statement", len(transactions))

	var totalIn, totalOut float64
	for _, txn := range transactions {
		if txn.Status != models.TransactionStatusCompleted {
			continue
		}
		if txn.Amount >= 0 {
			totalIn += txn.Amount
		} else {
			totalOut += -txn.Amount
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, utils.AppName+" - Wallet Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Account: %s (#%d)", user.Username, user.ID))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Generated: "+now.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	headers := []string{"ID", "Date", "Type", "Status", "Reference", "Amount", "Balance After"}
	colWidths := []float64{18, 34, 24, 26, 70, 30, 32}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, txn := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", txn.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, txn.Type, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, txn.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, txn.Reference, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", txn.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", txn.BalanceAfter), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(50, 8, "Total In", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", totalIn), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Total Out", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", totalOut), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(50, 8, "Current Balance", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", wallet.Balance), "1", 0, "R", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=wallet_statement_%s.pdf", now.Format("20060102")))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write statement PDF for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Generated wallet statement for user ID: %d", user.ID)
}
