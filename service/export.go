package service

import (
	"fmt"
	"strings"
	"time"

	"moneybook/models"
)

// CSVHeader 导出文件表头
const CSVHeader = "Date,Type,Category,Amount,Notes"

// BuildCSV 将交易记录渲染为 CSV 文本
//
// 不使用 encoding/csv：备注列的转义规则（引号双写、逗号替换为空格、
// 整列固定加引号）是既有导出格式，与 RFC 4180 不兼容，消费方按此解析。
func BuildCSV(txs []models.Transaction) string {
	rows := make([]string, 0, len(txs)+1)
	rows = append(rows, CSVHeader)

	for _, t := range txs {
		category := t.CategoryName
		if category == "" {
			category = OtherCategory
		}
		note := strings.ReplaceAll(t.Note, `"`, `""`)
		note = strings.ReplaceAll(note, ",", " ")
		rows = append(rows, fmt.Sprintf(`%s,%s,%s,%.2f,"%s"`,
			t.Date.Format("2006-01-02"), t.Type, category, t.Amount, note))
	}

	return strings.Join(rows, "\n")
}

// ExportFilename 生成导出文件名，如 expense_report_20240615.csv
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("expense_report_%s.csv", now.Format("20060102"))
}
