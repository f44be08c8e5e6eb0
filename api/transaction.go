package api

import (
	"time"

	"moneybook/database"
	"moneybook/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionCreateRequest 创建交易请求
type TransactionCreateRequest struct {
	Amount       float64   `json:"amount" binding:"required,gt=0" example:"58.5"`
	CategoryID   string    `json:"category_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	CategoryName string    `json:"category_name" binding:"omitempty,max=50" example:"Food"` // 类别名称快照，删除类别后历史记录仍可读
	Type         string    `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Date         time.Time `json:"date" binding:"required" example:"2024-06-15T00:00:00Z"`
	Note         string    `json:"note" binding:"omitempty,max=255" example:"午饭"`
	IsRecurring  bool      `json:"is_recurring"`
}

// TransactionUpdateRequest 更新交易请求（仅更新非空字段）
type TransactionUpdateRequest struct {
	Amount       *float64   `json:"amount" binding:"omitempty,gt=0"`
	CategoryID   *string    `json:"category_id"`
	CategoryName *string    `json:"category_name" binding:"omitempty,max=50"`
	Type         *string    `json:"type" binding:"omitempty,oneof=income expense"`
	Date         *time.Time `json:"date"`
	Note         *string    `json:"note" binding:"omitempty,max=255"`
	IsRecurring  *bool      `json:"is_recurring"`
}

// 列表查询接受的日期格式，依次尝试
var queryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseQueryDate 解析查询参数中的日期，无法识别时返回错误而非静默忽略
func parseQueryDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range queryDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 创建一条收入或支出记录，类别名称随交易快照保存
// @Tags 交易
// @Accept json
// @Produce json
// @Param request body TransactionCreateRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	tx := models.Transaction{
		ID:           uuid.NewString(),
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Type:         req.Type,
		Date:         req.Date,
		Note:         req.Note,
		IsRecurring:  req.IsRecurring,
		CreatedAt:    time.Now(),
	}
	if err := database.DB.Create(&tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建交易失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", tx)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 按日期倒序返回交易记录，支持按类型、类别和日期区间过滤，最多返回 1000 条
// @Tags 交易
// @Produce json
// @Param type query string false "交易类型（income/expense）"
// @Param category_id query string false "类别ID"
// @Param start_date query string false "起始日期（含），支持 RFC3339 或 2006-01-02"
// @Param end_date query string false "结束日期（含）"
// @Success 200 {object} Response{data=[]models.Transaction} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Transaction{})

	if typ := c.Query("type"); typ != "" {
		if typ != models.TypeIncome && typ != models.TypeExpense {
			BadRequest(c, "交易类型必须是 income 或 expense")
			return
		}
		query = query.Where("type = ?", typ)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		t, err := parseQueryDate(startDate)
		if err != nil {
			BadRequest(c, "起始日期格式错误")
			return
		}
		query = query.Where("date >= ?", t)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		t, err := parseQueryDate(endDate)
		if err != nil {
			BadRequest(c, "结束日期格式错误")
			return
		}
		query = query.Where("date <= ?", t)
	}

	var list []models.Transaction
	if err := query.Order("date DESC").Limit(1000).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}

// Update 更新交易记录
// @Summary 更新交易记录
// @Description 更新指定交易，仅合并请求中出现的字段；空更新返回 400
// @Tags 交易
// @Accept json
// @Produce json
// @Param id path string true "交易ID"
// @Param request body TransactionUpdateRequest true "更新的交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误或无可更新字段"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 空更新先于存在性检查：无论目标是否存在都返回 400
	updates := make(map[string]interface{})
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.CategoryName != nil {
		updates["category_name"] = *req.CategoryName
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if req.IsRecurring != nil {
		updates["is_recurring"] = *req.IsRecurring
	}
	if len(updates) == 0 {
		BadRequest(c, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Transaction{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "更新失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "交易不存在")
		return
	}

	var tx models.Transaction
	database.DB.Where("id = ?", id).First(&tx)
	SuccessWithMessage(c, "更新成功", tx)
}

// Delete 删除交易记录
// @Summary 删除交易记录
// @Tags 交易
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "交易不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// ResetAll 清空所有数据
// @Summary 清空所有数据
// @Description 按交易、类别、提醒的顺序删除全部数据，用于重新开始记账
// @Tags 交易
// @Produce json
// @Success 200 {object} Response "清空成功"
// @Failure 500 {object} Response "清空失败"
// @Router /api/v1/reset-all [delete]
func (h *TransactionHandler) ResetAll(c *gin.Context) {
	// 固定删除顺序：交易 → 类别 → 提醒。中途失败时直接返回，
	// 已删除的表不回滚，下一次调用可继续清理
	session := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := session.Delete(&models.Transaction{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "清空交易失败"))
		return
	}
	if err := session.Delete(&models.Category{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "清空类别失败"))
		return
	}
	if err := session.Delete(&models.Reminder{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "清空提醒失败"))
		return
	}

	SuccessWithMessage(c, "所有数据已清空", nil)
}
