package api

import (
	"errors"
	"net/http"
	"strconv"

	"EditorialSync/internal/model"
	"EditorialSync/internal/repository"
	"EditorialSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminHandler 管理端触发面：批量补齐、页面级生成、发布开关、配置与排程维护、精选生命周期
type AdminHandler struct {
	reconcile      *service.ReconcileService
	pageGen        *service.PageGenService
	content        *service.ContentService
	completionRepo repository.CompletionRepository
	scheduleRepo   repository.ScheduleRepository
	valueFindRepo  repository.ValueFindRepository
	pickRepo       repository.PickRepository
	logger         *logrus.Logger
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(
	reconcile *service.ReconcileService,
	pageGen *service.PageGenService,
	content *service.ContentService,
	completionRepo repository.CompletionRepository,
	scheduleRepo repository.ScheduleRepository,
	valueFindRepo repository.ValueFindRepository,
	pickRepo repository.PickRepository,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		reconcile:      reconcile,
		pageGen:        pageGen,
		content:        content,
		completionRepo: completionRepo,
		scheduleRepo:   scheduleRepo,
		valueFindRepo:  valueFindRepo,
		pickRepo:       pickRepo,
		logger:         logger,
	}
}

// BulkGenerate 批量补齐缺失槽位文本
// @Summary 补齐窗口内缺失的槽位文本
// @Param sport query string false "运动类型（缺省=全部四项）"
// @Success 200 {object} service.ReconcileResult
// @Router /admin/generate/completions [post]
func (h *AdminHandler) BulkGenerate(c *gin.Context) {
	var sport *model.SportType
	if raw := c.Query("sport"); raw != "" {
		s := model.SportType(raw)
		if !model.ValidSport(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + raw})
			return
		}
		sport = &s
	}

	result, err := h.reconcile.Reconcile(c.Request.Context(), sport)
	if err != nil {
		h.logger.Errorf("批量补齐失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GeneratePage 手动触发页面级价值发现生成
// @Summary 为指定运动生成页面级分析（未发布状态落库）
// @Param sport path string true "运动类型"
// @Router /admin/generate/page/{sport} [post]
func (h *AdminHandler) GeneratePage(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}

	bundle, err := h.pageGen.GeneratePage(c.Request.Context(), sport)
	if err != nil {
		h.logger.Errorf("%s页面级生成失败: %v", sport, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// ToggleValueFind 价值发现发布开关（可逆）
// @Router /admin/valuefinds/{id}/publish [post]
func (h *AdminHandler) ToggleValueFind(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法id"})
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published字段必填"})
		return
	}

	if err := h.valueFindRepo.SetPublished(c.Request.Context(), id, *req.Published); err != nil {
		h.respondMutationError(c, err, "切换价值发现发布状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "published": *req.Published})
}

// DeleteValueFind 删除价值发现产物（终态）
// @Router /admin/valuefinds/{id} [delete]
func (h *AdminHandler) DeleteValueFind(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法id"})
		return
	}
	if err := h.valueFindRepo.Delete(c.Request.Context(), id); err != nil {
		h.respondMutationError(c, err, "删除价值发现产物失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type updateConfigRequest struct {
	Enabled *bool   `json:"enabled"`
	Prompt  *string `json:"prompt"`
}

// UpdateCompletionConfig 槽位配置局部更新（enabled即每运动每槽位的总开关）
// @Router /admin/completion-configs/{id} [put]
func (h *AdminHandler) UpdateCompletionConfig(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法id"})
		return
	}
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}

	updates := map[string]interface{}{}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.Prompt != nil {
		updates["prompt"] = *req.Prompt
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled/prompt至少提供一项"})
		return
	}

	if err := h.completionRepo.UpdateConfig(c.Request.Context(), id, updates); err != nil {
		h.respondMutationError(c, err, "更新槽位配置失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type updateScheduleRequest struct {
	Enabled       *bool   `json:"enabled"`
	Prompt        *string `json:"prompt"`
	ScheduledTime *string `json:"scheduled_time"`
}

// UpdateSchedule 页面级排程局部更新
// @Router /admin/schedules/{sport} [put]
func (h *AdminHandler) UpdateSchedule(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}

	updates := map[string]interface{}{}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.Prompt != nil {
		updates["prompt"] = *req.Prompt
	}
	if req.ScheduledTime != nil {
		updates["scheduled_time"] = *req.ScheduledTime
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled/prompt/scheduled_time至少提供一项"})
		return
	}

	if err := h.scheduleRepo.Update(c.Request.Context(), sport, updates); err != nil {
		h.respondMutationError(c, err, "更新排程失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sport": sport})
}

type createPickRequest struct {
	GameID          string `json:"game_id" binding:"required"`
	SportType       string `json:"sport_type" binding:"required"`
	SelectedBetType string `json:"selected_bet_type" binding:"required"`
	Notes           string `json:"notes"`
}

// CreatePick 创建编辑精选（一律草稿状态，发布走显式切换）
// @Router /admin/picks [post]
func (h *AdminHandler) CreatePick(c *gin.Context) {
	var req createPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id/sport_type/selected_bet_type必填"})
		return
	}
	sport := model.SportType(req.SportType)
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + req.SportType})
		return
	}

	pick := &model.EditorPick{
		GameID:          req.GameID,
		SportType:       sport,
		SelectedBetType: req.SelectedBetType,
		Notes:           req.Notes,
	}
	if err := h.pickRepo.Create(c.Request.Context(), pick); err != nil {
		h.logger.Errorf("创建精选失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pick)
}

// TogglePick 精选草稿↔发布切换（可逆）
// @Router /admin/picks/{id}/publish [put]
func (h *AdminHandler) TogglePick(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法id"})
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published字段必填"})
		return
	}

	if err := h.pickRepo.SetPublished(c.Request.Context(), id, *req.Published); err != nil {
		h.respondMutationError(c, err, "切换精选发布状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "published": *req.Published})
}

// DeletePick 删除精选（先删投票再删精选，同一事务）
// @Router /admin/picks/{id} [delete]
func (h *AdminHandler) DeletePick(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法id"})
		return
	}
	if err := h.pickRepo.Delete(c.Request.Context(), id); err != nil {
		h.respondMutationError(c, err, "删除精选失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListPicksAdmin 管理员分桶视图（含草稿与完整历史）
// @Router /admin/picks/{sport} [get]
func (h *AdminHandler) ListPicksAdmin(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}
	buckets, err := h.content.GetClassifiedPicks(c.Request.Context(), sport, true)
	if err != nil {
		h.logger.Errorf("管理员精选视图失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// respondMutationError 变更类操作统一错误映射：目标不存在→404，其余→500（操作失败、无半状态）
func (h *AdminHandler) respondMutationError(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "目标不存在"})
		return
	}
	h.logger.Errorf("%s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
