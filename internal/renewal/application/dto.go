package application

import (
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// CreateRenewalCommand 创建重生申请命令
type CreateRenewalCommand struct {
	CustomerID      uint
	RenewalReasonID uint
	Remark          string
	Applicant       string
}

// ApproveItem 单条审批指令
type ApproveItem struct {
	RenewalID string
	Approved  bool
	Remark    string
}

// ApproveCommand 审批命令
type ApproveCommand struct {
	ApproveItem
	Approver string
}

// BatchApproveCommand 批量审批命令
type BatchApproveCommand struct {
	Items    []ApproveItem
	Approver string
}

// RenewalDTO 重生申请视图
type RenewalDTO struct {
	RenewalID       string `json:"renewal_id"`
	CustomerID      uint   `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	RenewalReasonID uint   `json:"renewal_reason_id"`
	Status          string `json:"status"`
	Applicant       string `json:"applicant,omitempty"`
	Remark          string `json:"remark,omitempty"`
	Approver        string `json:"approver,omitempty"`
	ApproveTime     int64  `json:"approve_time,omitempty"`
	ApproveRemark   string `json:"approve_remark,omitempty"`
	CreateTime      int64  `json:"create_time"`
}

// ListResult 分页结果
type ListResult struct {
	Items      []RenewalDTO      `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

// BatchItemResult 批量审批单项结果
type BatchItemResult struct {
	RenewalID string `json:"renewal_id"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
}

// BatchResultDTO 批量审批结果
type BatchResultDTO struct {
	SuccessCount int               `json:"success_count"`
	FailCount    int               `json:"fail_count"`
	Details      []BatchItemResult `json:"details"`
}

func toDTO(app *domain.RenewalApplication) RenewalDTO {
	dto := RenewalDTO{
		RenewalID:       app.RenewalID,
		CustomerID:      app.CustomerID,
		CustomerName:    app.CustomerName,
		RenewalReasonID: app.RenewalReasonID,
		Status:          string(app.Status),
		Applicant:       app.Applicant,
		Remark:          app.Remark,
		Approver:        app.Approver,
		ApproveRemark:   app.ApproveRemark,
		CreateTime:      app.CreatedAt.Unix(),
	}
	if app.ApproveTime != nil {
		dto.ApproveTime = app.ApproveTime.Unix()
	}
	return dto
}

// sanitize 清除 basic 范围不可见的敏感字段
func (d *RenewalDTO) sanitize() {
	d.Applicant = ""
	d.Remark = ""
	d.ApproveRemark = ""
}
