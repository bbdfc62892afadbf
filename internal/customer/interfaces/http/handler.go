package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/defaultmanagement/internal/customer/application"
	"github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

type Handler struct {
	service *application.CustomerQueryService
}

func NewHandler(service *application.CustomerQueryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/customers")
	g.Use(middleware.RequireRoles(
		string(identitydomain.RoleAdmin),
		string(identitydomain.RoleAuditor),
		string(identitydomain.RoleOperator),
	))
	{
		g.GET("", h.List)
		g.GET("/:id", h.Detail)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.service.List(c.Request.Context(), domain.ListQuery{
		Page:         page,
		PageSize:     size,
		Status:       domain.CustomerStatus(c.Query("status")),
		CustomerName: c.Query("customer_name"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto)
}
