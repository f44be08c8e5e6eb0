package api

import (
	"strings"
	"time"

	"moneybook/database"
	"moneybook/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler 消费类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建消费类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryCreateRequest 创建类别请求
type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50" example:"Food"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#EF4444"` // 颜色代码，缺省 #6366F1
	Icon  string `json:"icon" binding:"omitempty,max=20" example:"🍔"`        // 图标，缺省 💰
}

// CategoryUpdateRequest 更新类别请求（仅更新非空字段）
type CategoryUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color" binding:"omitempty,max=20"`
	Icon  *string `json:"icon" binding:"omitempty,max=20"`
}

// List 获取类别列表
// @Summary 获取消费类别列表
// @Description 获取所有消费类别。类别表为空时自动写入八个默认类别后返回。
// @Tags 类别
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Limit(100).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 类别表为空时补种默认类别后重读（count 守卫保证不会重复写入）
	if len(list) == 0 {
		if err := database.SeedDefaultCategories(database.DB); err != nil {
			InternalError(c, SafeErrorMessage(err, "初始化默认类别失败"))
			return
		}
		if err := database.DB.Limit(100).Find(&list).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
	}

	Success(c, list)
}

// Create 创建类别
// @Summary 创建消费类别
// @Description 创建新的消费类别，颜色和图标可省略，省略时使用默认值
// @Tags 类别
// @Accept json
// @Produce json
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}
	if req.Color == "" {
		req.Color = models.DefaultCategoryColor
	}
	if req.Icon == "" {
		req.Icon = models.DefaultCategoryIcon
	}

	cat := models.Category{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: time.Now(),
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", cat)
}

// Update 更新类别
// @Summary 更新消费类别
// @Description 更新指定类别，仅合并请求中出现的字段；空更新返回 400
// @Tags 类别
// @Accept json
// @Produce json
// @Param id path string true "类别ID"
// @Param request body CategoryUpdateRequest true "更新的类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "请求参数错误或无可更新字段"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 空更新先于存在性检查：无论目标是否存在都返回 400
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			BadRequest(c, "名称不能为空")
			return
		}
		updates["name"] = name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if len(updates) == 0 {
		BadRequest(c, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "更新失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "类别不存在")
		return
	}

	var cat models.Category
	database.DB.Where("id = ?", id).First(&cat)
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除类别
// @Summary 删除消费类别
// @Description 删除指定类别。引用该类别的交易记录不受影响（弱引用，不做级联）。
// @Tags 类别
// @Produce json
// @Param id path string true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "类别不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
