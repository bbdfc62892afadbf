package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/application"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

// Handler 重生申请 HTTP 接口
type Handler struct {
	service *application.RenewalService
}

func NewHandler(service *application.RenewalService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/renewals")
	{
		g.POST("", middleware.RequireRoles(
			string(identitydomain.RoleAdmin),
			string(identitydomain.RoleOperator),
		), h.Create)
		g.GET("", h.List)
		g.GET("/:renewalId", h.Detail)

		approvers := middleware.RequireRoles(
			string(identitydomain.RoleAdmin),
			string(identitydomain.RoleAuditor),
		)
		g.POST("/:renewalId/approve", approvers, h.Approve)
		g.POST("/batch-approve", approvers, h.BatchApprove)
	}
}

type createRequest struct {
	CustomerID      uint   `json:"customer_id" binding:"required"`
	RenewalReasonID uint   `json:"renewal_reason_id" binding:"required"`
	Remark          string `json:"remark"`
}

type approveRequest struct {
	Approved bool   `json:"approved"`
	Remark   string `json:"remark"`
}

type batchApproveRequest struct {
	Items []struct {
		RenewalID string `json:"renewal_id" binding:"required"`
		Approved  bool   `json:"approved"`
		Remark    string `json:"remark"`
	} `json:"items" binding:"required,min=1"`
}

// Create 创建重生申请
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateRenewal(c.Request.Context(), application.CreateRenewalCommand{
		CustomerID:      req.CustomerID,
		RenewalReasonID: req.RenewalReasonID,
		Remark:          req.Remark,
		Applicant:       callerIdentity(c).Username,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// List 分页查询重生申请
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	q := domain.ListQuery{
		Page:         page,
		PageSize:     size,
		Status:       domain.RenewalStatus(c.Query("status")),
		CustomerName: c.Query("customer_name"),
		Applicant:    c.Query("applicant"),
	}
	if t, ok := parseTime(c.Query("created_from")); ok {
		q.CreatedFrom = &t
	}
	if t, ok := parseTime(c.Query("created_to")); ok {
		q.CreatedTo = &t
	}

	result, err := h.service.List(c.Request.Context(), q, callerIdentity(c).Scope())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Detail 查询重生申请详情
func (h *Handler) Detail(c *gin.Context) {
	dto, err := h.service.Detail(c.Request.Context(), c.Param("renewalId"), callerIdentity(c).Scope())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto)
}

// Approve 审批单条重生申请
func (h *Handler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.ApproveRenewal(c.Request.Context(), application.ApproveCommand{
		ApproveItem: application.ApproveItem{
			RenewalID: c.Param("renewalId"),
			Approved:  req.Approved,
			Remark:    req.Remark,
		},
		Approver: callerIdentity(c).Username,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"renewal_id": c.Param("renewalId")})
}

// BatchApprove 批量审批，逐条独立处理
func (h *Handler) BatchApprove(c *gin.Context) {
	var req batchApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cmd := application.BatchApproveCommand{Approver: callerIdentity(c).Username}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, application.ApproveItem{
			RenewalID: item.RenewalID,
			Approved:  item.Approved,
			Remark:    item.Remark,
		})
	}
	response.OK(c, h.service.BatchApprove(c.Request.Context(), cmd))
}

// callerIdentity 从认证中间件写入的上下文键还原调用方身份
func callerIdentity(c *gin.Context) identitydomain.Identity {
	return identitydomain.Identity{
		Username: c.GetString(middleware.AuthUsernameKey),
		Role:     identitydomain.Role(c.GetString(middleware.AuthRoleKey)),
	}
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
