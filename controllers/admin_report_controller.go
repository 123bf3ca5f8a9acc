package controllers

import (
	"fmt"
	"time"

	"github.com/hieudt-ng/SMMPanel/config"
	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// reportRange resolves the day/week/month query into a concrete window
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()

	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now, true
	case "week":
		end := now
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
		return start, end, true
	case "month":
		return now.AddDate(0, 0, -30), now, true
	}
	utils.LogError("Invalid report period: %s", period)
	utils.BadRequest(c, "Khoảng thời gian phải là day, week hoặc month")
	return time.Time{}, time.Time{}, false
}

func boldHeaderRow(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		cell := row.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}
}

// DownloadTransactionsReport exports the ledger for a period as Excel
func DownloadTransactionsReport(c *gin.Context) {
	utils.LogInfo("DownloadTransactionsReport called")
	if !requireAdmin(c) {
		return
	}

	startDate, endDate, ok := reportRange(c)
	if !ok {
		return
	}
	utils.LogDebug("Transactions report range: %s to %s",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var transactions []models.Transaction
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").Order("created_at DESC").Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions for report: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Retrieved %d transactions for report", len(transactions))

	var totalDeposits, totalSpend, totalRefunds float64
	for _, txn := range transactions {
		if txn.Status != models.TransactionStatusCompleted {
			continue
		}
		switch txn.Type {
		case models.TransactionTypeDeposit:
			totalDeposits += txn.Amount
		case models.TransactionTypeOrder:
			totalSpend += -txn.Amount
		case models.TransactionTypeRefund:
			totalRefunds += txn.Amount
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		utils.LogError("Failed to create report sheet: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Transactions Report")
	rangeRow := sheet.AddRow()
	rangeRow.AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow()

	boldHeaderRow(sheet, []string{"ID", "User", "Type", "Status", "Amount", "Balance After", "Reference", "Date"})
	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetString(txn.User.Username)
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetString(txn.Status)
		row.AddCell().SetFloat(txn.Amount)
		row.AddCell().SetFloat(txn.BalanceAfter)
		row.AddCell().SetString(txn.Reference)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
	}

	sheet.AddRow()
	summary := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", len(transactions))},
		{"Total Deposits", fmt.Sprintf("%.2f", totalDeposits)},
		{"Total Order Spend", fmt.Sprintf("%.2f", totalSpend)},
		{"Total Refunds", fmt.Sprintf("%.2f", totalRefunds)},
	}
	for _, line := range summary {
		row := sheet.AddRow()
		row.AddCell().SetString(line[0])
		row.AddCell().SetString(line[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.xlsx", c.DefaultQuery("period", "day")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write transactions report: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Generated transactions report")
}

// DownloadOrdersReport exports orders for a period as Excel
func DownloadOrdersReport(c *gin.Context) {
	utils.LogInfo("DownloadOrdersReport called")
	if !requireAdmin(c) {
		return
	}

	startDate, endDate, ok := reportRange(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").Preload("Service").Preload("Server").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogDebug("Retrieved %d orders for report", len(orders))

	var totalRevenue, totalRefunded float64
	statusCounts := make(map[string]int)
	for _, order := range orders {
		totalRevenue += order.TotalPrice
		totalRefunded += order.RefundAmount
		statusCounts[order.Status]++
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		utils.LogError("Failed to create report sheet: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Orders Report")
	rangeRow := sheet.AddRow()
	rangeRow.AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow()

	boldHeaderRow(sheet, []string{"ID", "User", "Service", "Server", "Quantity", "Price", "Status", "Refunded", "Date"})
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(order.User.Username)
		row.AddCell().SetString(order.Service.Name)
		row.AddCell().SetString(order.Server.Name)
		row.AddCell().SetInt(order.Quantity)
		row.AddCell().SetFloat(order.TotalPrice)
		row.AddCell().SetString(order.Status)
		row.AddCell().SetFloat(order.RefundAmount)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
	}

	sheet.AddRow()
	summaryRows := [][]string{
		{"Total Orders", fmt.Sprintf("%d", len(orders))},
		{"Total Revenue", fmt.Sprintf("%.2f", totalRevenue)},
		{"Total Refunded", fmt.Sprintf("%.2f", totalRefunded)},
	}
	for _, status := range models.ValidOrderStatuses {
		if count := statusCounts[status]; count > 0 {
			summaryRows = append(summaryRows, []string{status, fmt.Sprintf("%d", count)})
		}
	}
	for _, line := range summaryRows {
		row := sheet.AddRow()
		row.AddCell().SetString(line[0])
		row.AddCell().SetString(line[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", c.DefaultQuery("period", "day")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write orders report: %v", err)
		utils.InternalServerError(c, utils.MsgInternalError)
		return
	}
	utils.LogInfo("Generated orders report")
}
