package service

import (
	"math"
	"time"

	"moneybook/models"
)

// OtherCategory 缺失类别名称时的兜底分组
const OtherCategory = "Other"

// MonthlyReport 月度统计结果
type MonthlyReport struct {
	Year              int                `json:"year"`
	Month             int                `json:"month"`
	TotalIncome       float64            `json:"total_income"`
	TotalExpense      float64            `json:"total_expense"`
	NetBalance        float64            `json:"net_balance"`
	SavingsPercentage float64            `json:"savings_percentage"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	TransactionCount  int                `json:"transaction_count"`
}

// MonthTrend 近六个月趋势中的单月数据
type MonthTrend struct {
	Month   string  `json:"month"`
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthRef 某个自然月（年 + 月）
type MonthRef struct {
	Year  int
	Month int
}

// MonthRange 计算自然月的半开时间窗口 [当月1日, 次月1日)
// 12 月滚动到次年 1 月
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var end time.Time
	if month == 12 {
		end = time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		end = time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	}
	return start, end
}

// LastMonths 以 now 所在月份为终点，返回最近 n 个自然月，最早的在前
// 月份回退跨年时按 +12/年-1 处理
func LastMonths(now time.Time, n int) []MonthRef {
	refs := make([]MonthRef, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := int(now.Month()) - i
		year := now.Year()
		for month <= 0 {
			month += 12
			year--
		}
		refs = append(refs, MonthRef{Year: year, Month: month})
	}
	return refs
}

// MonthLabel 返回月份的三字母英文缩写（Jan…Dec）
func MonthLabel(month int) string {
	return time.Month(month).String()[:3]
}

// BuildMonthlyReport 汇总一个月内的交易记录
// savings_percentage 保留一位小数；总收入为 0 时定义为 0，而非错误
func BuildMonthlyReport(year, month int, txs []models.Transaction) MonthlyReport {
	report := MonthlyReport{
		Year:              year,
		Month:             month,
		CategoryBreakdown: make(map[string]float64),
		TransactionCount:  len(txs),
	}

	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			report.TotalIncome += t.Amount
		case models.TypeExpense:
			report.TotalExpense += t.Amount
			// 类别明细只统计支出
			name := t.CategoryName
			if name == "" {
				name = OtherCategory
			}
			report.CategoryBreakdown[name] += t.Amount
		}
	}

	report.NetBalance = report.TotalIncome - report.TotalExpense
	if report.TotalIncome > 0 {
		report.SavingsPercentage = round1(report.NetBalance / report.TotalIncome * 100)
	}
	return report
}

// SumByType 分别累加收入和支出总额
func SumByType(txs []models.Transaction) (income, expense float64) {
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			income += t.Amount
		case models.TypeExpense:
			expense += t.Amount
		}
	}
	return income, expense
}

// round1 四舍五入保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
