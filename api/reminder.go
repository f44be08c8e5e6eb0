package api

import (
	"time"

	"moneybook/database"
	"moneybook/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReminderHandler 记账提醒处理器
type ReminderHandler struct{}

// NewReminderHandler 创建记账提醒处理器
func NewReminderHandler() *ReminderHandler {
	return &ReminderHandler{}
}

// ReminderCreateRequest 创建提醒请求
type ReminderCreateRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=100" example:"房租"`
	Message     string    `json:"message" binding:"omitempty,max=255" example:"别忘了交房租"`
	Date        time.Time `json:"date" binding:"required" example:"2024-07-01T00:00:00Z"`
	Time        string    `json:"time" binding:"omitempty,len=5" example:"09:00"` // HH:MM
	IsRecurring bool      `json:"is_recurring"`
	IsEnabled   *bool     `json:"is_enabled"` // 缺省启用
}

// ReminderUpdateRequest 更新提醒请求（仅更新非空字段）
type ReminderUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=100"`
	Message     *string    `json:"message" binding:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
	Time        *string    `json:"time" binding:"omitempty,len=5"`
	IsRecurring *bool      `json:"is_recurring"`
	IsEnabled   *bool      `json:"is_enabled"`
}

// List 获取提醒列表
// @Summary 获取提醒列表
// @Description 按提醒日期升序返回，最多 100 条
// @Tags 提醒
// @Produce json
// @Success 200 {object} Response{data=[]models.Reminder} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	var list []models.Reminder
	if err := database.DB.Order("date ASC").Limit(100).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}

// Create 创建提醒
// @Summary 创建记账提醒
// @Tags 提醒
// @Accept json
// @Produce json
// @Param request body ReminderCreateRequest true "提醒信息"
// @Success 200 {object} Response{data=models.Reminder} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	var req ReminderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	reminder := models.Reminder{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Message:     req.Message,
		Date:        req.Date,
		Time:        req.Time,
		IsRecurring: req.IsRecurring,
		IsEnabled:   enabled,
		CreatedAt:   time.Now(),
	}
	if err := database.DB.Create(&reminder).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建提醒失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", reminder)
}

// Update 更新提醒
// @Summary 更新记账提醒
// @Description 更新指定提醒，仅合并请求中出现的字段；空更新返回 400
// @Tags 提醒
// @Accept json
// @Produce json
// @Param id path string true "提醒ID"
// @Param request body ReminderUpdateRequest true "更新的提醒信息"
// @Success 200 {object} Response{data=models.Reminder} "更新成功"
// @Failure 400 {object} Response "请求参数错误或无可更新字段"
// @Failure 404 {object} Response "提醒不存在"
// @Router /api/v1/reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req ReminderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 空更新先于存在性检查：无论目标是否存在都返回 400
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Time != nil {
		updates["time"] = *req.Time
	}
	if req.IsRecurring != nil {
		updates["is_recurring"] = *req.IsRecurring
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}
	if len(updates) == 0 {
		BadRequest(c, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Reminder{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "更新失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "提醒不存在")
		return
	}

	var reminder models.Reminder
	database.DB.Where("id = ?", id).First(&reminder)
	SuccessWithMessage(c, "更新成功", reminder)
}

// Delete 删除提醒
// @Summary 删除记账提醒
// @Tags 提醒
// @Produce json
// @Param id path string true "提醒ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "提醒不存在"
// @Router /api/v1/reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Where("id = ?", id).Delete(&models.Reminder{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "提醒不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
