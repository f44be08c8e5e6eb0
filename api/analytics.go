package api

import (
	"strconv"
	"time"

	"moneybook/database"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计分析处理器
type AnalyticsHandler struct{}

// NewAnalyticsHandler 创建统计分析处理器
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

// Monthly 月度统计
// @Summary 月度收支统计
// @Description 统计指定月份的收入、支出、结余、储蓄率和支出类别明细
// @Tags 统计
// @Produce json
// @Param year query int true "年份" example(2024)
// @Param month query int true "月份（1-12）" example(6)
// @Success 200 {object} Response{data=service.MonthlyReport} "获取成功"
// @Failure 400 {object} Response "年份或月份参数错误"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/analytics/monthly [get]
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		BadRequest(c, "年份参数错误")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		BadRequest(c, "月份必须在 1-12 之间")
		return
	}

	start, end := service.MonthRange(year, month)
	var txs []models.Transaction
	if err := database.DB.Where("date >= ? AND date < ?", start, end).
		Limit(1000).Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, service.BuildMonthlyReport(year, month, txs))
}

// LastSixMonths 近六个月趋势
// @Summary 近六个月收支趋势
// @Description 以当前月为终点返回最近六个自然月的收入支出汇总，最早的月份在前
// @Tags 统计
// @Produce json
// @Success 200 {object} Response{data=[]service.MonthTrend} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/analytics/last-six-months [get]
func (h *AnalyticsHandler) LastSixMonths(c *gin.Context) {
	trends := make([]service.MonthTrend, 0, 6)

	for _, ref := range service.LastMonths(time.Now(), 6) {
		start, end := service.MonthRange(ref.Year, ref.Month)
		var txs []models.Transaction
		if err := database.DB.Where("date >= ? AND date < ?", start, end).
			Limit(1000).Find(&txs).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}

		income, expense := service.SumByType(txs)
		trends = append(trends, service.MonthTrend{
			Month:   service.MonthLabel(ref.Month),
			Year:    ref.Year,
			Income:  income,
			Expense: expense,
		})
	}

	Success(c, trends)
}
