package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/application"
	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

// Handler 违约申请 HTTP 接口
type Handler struct {
	service *application.DefaultApplicationService
}

func NewHandler(service *application.DefaultApplicationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/default-applications")
	{
		g.POST("", middleware.RequireRoles(
			string(identitydomain.RoleAdmin),
			string(identitydomain.RoleOperator),
		), h.Create)
		g.GET("", h.List)
		g.GET("/:applicationId", h.Detail)

		approvers := middleware.RequireRoles(
			string(identitydomain.RoleAdmin),
			string(identitydomain.RoleAuditor),
		)
		g.POST("/:applicationId/approve", approvers, h.Approve)
		g.POST("/batch-approve", approvers, h.BatchApprove)
	}
}

type attachmentRequest struct {
	FileName string `json:"file_name" binding:"required"`
	FileURL  string `json:"file_url" binding:"required"`
}

type createRequest struct {
	CustomerName         string              `json:"customer_name" binding:"required"`
	Severity             string              `json:"severity" binding:"required"`
	DefaultReasons       []uint              `json:"default_reasons" binding:"required"`
	LatestExternalRating string              `json:"latest_external_rating"`
	Remark               string              `json:"remark"`
	Attachments          []attachmentRequest `json:"attachments"`
}

type approveRequest struct {
	Approved bool   `json:"approved"`
	Remark   string `json:"remark"`
}

type batchApproveRequest struct {
	Items []struct {
		ApplicationID string `json:"application_id" binding:"required"`
		Approved      bool   `json:"approved"`
		Remark        string `json:"remark"`
	} `json:"items" binding:"required,min=1"`
}

// Create 创建违约认定申请
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cmd := application.CreateApplicationCommand{
		CustomerName:         req.CustomerName,
		Severity:             domain.Severity(req.Severity),
		DefaultReasons:       req.DefaultReasons,
		LatestExternalRating: req.LatestExternalRating,
		Remark:               req.Remark,
		Applicant:            callerIdentity(c).Username,
	}
	for _, a := range req.Attachments {
		cmd.Attachments = append(cmd.Attachments, application.AttachmentInput{
			FileName: a.FileName,
			FileURL:  a.FileURL,
		})
	}

	detail, err := h.service.CreateApplication(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// List 分页查询违约申请
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	q := domain.ListQuery{
		Page:         page,
		PageSize:     size,
		Status:       domain.ApplicationStatus(c.Query("status")),
		CustomerName: c.Query("customer_name"),
		Applicant:    c.Query("applicant"),
		Severity:     domain.Severity(c.Query("severity")),
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

// Detail 查询违约申请详情
func (h *Handler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("applicationId"), callerIdentity(c).Scope())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Approve 审批单条违约申请
func (h *Handler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.ApproveApplication(c.Request.Context(), application.ApproveCommand{
		ApproveItem: application.ApproveItem{
			ApplicationID: c.Param("applicationId"),
			Approved:      req.Approved,
			Remark:        req.Remark,
		},
		Approver: callerIdentity(c).Username,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"application_id": c.Param("applicationId")})
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
			ApplicationID: item.ApplicationID,
			Approved:      item.Approved,
			Remark:        item.Remark,
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
