package api

import (
	"fmt"
	"net/http"
	"time"

	"moneybook/database"
	"moneybook/models"
	"moneybook/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 数据导出处理器
type ExportHandler struct{}

// NewExportHandler 创建数据导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// queryTransactionsForExport 按可选日期区间读取待导出的交易，按日期倒序
func queryTransactionsForExport(c *gin.Context) ([]models.Transaction, bool) {
	query := database.DB.Model(&models.Transaction{})

	if startDate := c.Query("start_date"); startDate != "" {
		t, err := parseQueryDate(startDate)
		if err != nil {
			BadRequest(c, "起始日期格式错误")
			return nil, false
		}
		query = query.Where("date >= ?", t)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		t, err := parseQueryDate(endDate)
		if err != nil {
			BadRequest(c, "结束日期格式错误")
			return nil, false
		}
		query = query.Where("date <= ?", t)
	}

	var txs []models.Transaction
	if err := query.Order("date DESC").Limit(10000).Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return nil, false
	}
	return txs, true
}

// ExportCSV 导出 CSV
// @Summary 导出交易记录为 CSV
// @Description 将交易记录渲染为 CSV 文本返回，支持按日期区间过滤，最多导出 10000 条
// @Tags 导出
// @Produce json
// @Param start_date query string false "起始日期（含）"
// @Param end_date query string false "结束日期（含）"
// @Success 200 {object} Response "导出成功，data 含 csv_content 与 filename"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txs, ok := queryTransactionsForExport(c)
	if !ok {
		return
	}

	Success(c, gin.H{
		"csv_content": service.BuildCSV(txs),
		"filename":    service.ExportFilename(time.Now()),
	})
}

// ExportExcel 导出 Excel
// @Summary 导出交易记录为 Excel
// @Description 生成 xlsx 文件并以附件形式返回，支持按日期区间过滤
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string false "起始日期（含）"
// @Param end_date query string false "结束日期（含）"
// @Success 200 {file} binary "xlsx 文件"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 500 {object} Response "生成文件失败"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	txs, ok := queryTransactionsForExport(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "交易记录"
	index, err := f.NewSheet(sheet)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成文件失败"))
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"日期", "类型", "类别", "金额", "备注", "周期性"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, t := range txs {
		category := t.CategoryName
		if category == "" {
			category = service.OtherCategory
		}
		recurring := "否"
		if t.IsRecurring {
			recurring = "是"
		}
		values := []interface{}{
			t.Date.Format("2006-01-02"),
			t.Type,
			category,
			t.Amount,
			t.Note,
			recurring,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "C", "C", 15)
	f.SetColWidth(sheet, "E", "E", 30)

	filename := fmt.Sprintf("expense_report_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, SafeErrorMessage(err, "生成文件失败"))
		return
	}
	c.Status(http.StatusOK)
}
