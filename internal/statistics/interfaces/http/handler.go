package http

import (
	"github.com/gin-gonic/gin"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/statistics/application"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

// Handler 统计 HTTP 接口
type Handler struct {
	service *application.StatisticsService
}

func NewHandler(service *application.StatisticsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/statistics")
	g.Use(middleware.RequireRoles(
		string(identitydomain.RoleAdmin),
		string(identitydomain.RoleAuditor),
		string(identitydomain.RoleOperator),
	))
	{
		g.GET("/overview", h.Overview)
		g.GET("/severity", h.BySeverity)
		g.GET("/industry", h.ByIndustry)
		g.GET("/region", h.ByRegion)
	}
}

func (h *Handler) Overview(c *gin.Context) {
	stats, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) BySeverity(c *gin.Context) {
	stats, err := h.service.BySeverity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) ByIndustry(c *gin.Context) {
	stats, err := h.service.ByIndustry(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) ByRegion(c *gin.Context) {
	stats, err := h.service.ByRegion(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
