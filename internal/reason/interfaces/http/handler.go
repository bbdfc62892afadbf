package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/reason/application"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

type Handler struct {
	service *application.ReasonService
}

func NewHandler(service *application.ReasonService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	adminOnly := middleware.RequireRoles(string(identitydomain.RoleAdmin))

	dg := r.Group("/default-reasons")
	{
		dg.GET("", h.ListDefaultReasons)
		dg.POST("", adminOnly, h.CreateDefaultReason)
		dg.PUT("/:id", adminOnly, h.UpdateDefaultReason)
		dg.DELETE("/:id", adminOnly, h.DeleteDefaultReason)
	}

	rg := r.Group("/renewal-reasons")
	{
		rg.GET("", h.ListRenewalReasons)
		rg.POST("", adminOnly, h.CreateRenewalReason)
		rg.PUT("/:id", adminOnly, h.UpdateRenewalReason)
		rg.DELETE("/:id", adminOnly, h.DeleteRenewalReason)
	}
}

type reasonReq struct {
	Reason    string `json:"reason" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type reasonUpdateReq struct {
	Reason    string `json:"reason"`
	Enabled   *bool  `json:"enabled"`
	SortOrder *int   `json:"sort_order"`
}

func (h *Handler) ListDefaultReasons(c *gin.Context) {
	enabledOnly := c.DefaultQuery("enabled_only", "false") == "true"
	dtos, err := h.service.ListDefaultReasons(c.Request.Context(), enabledOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dtos)
}

func (h *Handler) CreateDefaultReason(c *gin.Context) {
	var req reasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.service.CreateDefaultReason(c.Request.Context(), application.CreateReasonCommand{
		Reason:    req.Reason,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *Handler) UpdateDefaultReason(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid reason id")
		return
	}
	var req reasonUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.service.UpdateDefaultReason(c.Request.Context(), application.UpdateReasonCommand{
		ID:        uint(id),
		Reason:    req.Reason,
		Enabled:   req.Enabled,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto)
}

func (h *Handler) DeleteDefaultReason(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid reason id")
		return
	}
	if err := h.service.DeleteDefaultReason(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *Handler) ListRenewalReasons(c *gin.Context) {
	dtos, err := h.service.ListRenewalReasons(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dtos)
}

func (h *Handler) CreateRenewalReason(c *gin.Context) {
	var req reasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.service.CreateRenewalReason(c.Request.Context(), application.CreateReasonCommand{
		Reason:    req.Reason,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *Handler) UpdateRenewalReason(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid reason id")
		return
	}
	var req reasonUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.service.UpdateRenewalReason(c.Request.Context(), application.UpdateReasonCommand{
		ID:        uint(id),
		Reason:    req.Reason,
		Enabled:   req.Enabled,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto)
}

func (h *Handler) DeleteRenewalReason(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid reason id")
		return
	}
	if err := h.service.DeleteRenewalReason(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}
