package api

import (
	"net/http"

	"EditorialSync/internal/model"
	"EditorialSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContentHandler 面向终端用户的读取面。前端按间隔轮询（约定≤60秒），
// 发布开关切换对读者是最终一致——下一次轮询必然观测到
type ContentHandler struct {
	content    *service.ContentService
	adminToken string
	logger     *logrus.Logger
}

// NewContentHandler 创建读取面处理器
func NewContentHandler(content *service.ContentService, adminToken string, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		content:    content,
		adminToken: adminToken,
		logger:     logger,
	}
}

// GetGameCompletions 一场比赛的槽位文本
// GET /api/games/:sport/:game_id/completions
func (h *ContentHandler) GetGameCompletions(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}
	gameID := c.Param("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id必填"})
		return
	}

	views, err := h.content.GetGameCompletions(c.Request.Context(), sport, gameID)
	if err != nil {
		h.logger.WithError(err).Error("读取槽位文本失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": gameID, "sport_type": sport, "slots": views})
}

// GetValueFind 当前已发布的价值发现产物
// GET /api/valuefinds/:sport
func (h *ContentHandler) GetValueFind(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}

	bundle, err := h.content.GetPublishedValueFind(c.Request.Context(), sport)
	if err != nil {
		h.logger.WithError(err).Error("读取价值发现失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取失败"})
		return
	}
	if bundle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该运动暂无已发布的价值发现"})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// GetPicks 分桶精选。带有效管理凭证时按管理员视图（含草稿、无宽限截断）
// GET /api/picks/:sport
func (h *ContentHandler) GetPicks(c *gin.Context) {
	sport := model.SportType(c.Param("sport"))
	if !model.ValidSport(sport) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法运动类型: " + string(sport)})
		return
	}

	isAdmin := IsAdminCaller(c, h.adminToken)
	buckets, err := h.content.GetClassifiedPicks(c.Request.Context(), sport, isAdmin)
	if err != nil {
		h.logger.WithError(err).Error("读取精选失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取失败"})
		return
	}
	c.JSON(http.StatusOK, buckets)
}
