package application

import (
	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// AttachmentInput 附件入参
type AttachmentInput struct {
	FileName string
	FileURL  string
}

// CreateApplicationCommand 创建违约申请命令
type CreateApplicationCommand struct {
	CustomerName         string
	Severity             domain.Severity
	DefaultReasons       []uint
	LatestExternalRating string
	Remark               string
	Attachments          []AttachmentInput
	Applicant            string
}

// ApproveItem 单条审批指令
type ApproveItem struct {
	ApplicationID string
	Approved      bool
	Remark        string
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

// ApplicationDTO 申请视图
type ApplicationDTO struct {
	ApplicationID        string `json:"application_id"`
	CustomerID           uint   `json:"customer_id"`
	CustomerName         string `json:"customer_name"`
	LatestExternalRating string `json:"latest_external_rating,omitempty"`
	Severity             string `json:"severity"`
	Status               string `json:"status"`
	Applicant            string `json:"applicant,omitempty"`
	Remark               string `json:"remark,omitempty"`
	Approver             string `json:"approver,omitempty"`
	ApproveTime          int64  `json:"approve_time,omitempty"`
	ApproveRemark        string `json:"approve_remark,omitempty"`
	CreateTime           int64  `json:"create_time"`
}

// AttachmentDTO 附件视图
type AttachmentDTO struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// ApplicationDetailDTO 申请详情视图
type ApplicationDetailDTO struct {
	ApplicationDTO
	DefaultReasons []uint          `json:"default_reasons"`
	Attachments    []AttachmentDTO `json:"attachments"`
}

// ListResult 分页结果
type ListResult struct {
	Items      []ApplicationDTO  `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

// BatchItemResult 批量审批单项结果
type BatchItemResult struct {
	ApplicationID string `json:"application_id"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
}

// BatchResultDTO 批量审批结果
type BatchResultDTO struct {
	SuccessCount int               `json:"success_count"`
	FailCount    int               `json:"fail_count"`
	Details      []BatchItemResult `json:"details"`
}

func toDTO(app *domain.DefaultApplication) ApplicationDTO {
	dto := ApplicationDTO{
		ApplicationID:        app.ApplicationID,
		CustomerID:           app.CustomerID,
		CustomerName:         app.CustomerName,
		LatestExternalRating: app.LatestExternalRating,
		Severity:             string(app.Severity),
		Status:               string(app.Status),
		Applicant:            app.Applicant,
		Remark:               app.Remark,
		Approver:             app.Approver,
		ApproveRemark:        app.ApproveRemark,
		CreateTime:           app.CreatedAt.Unix(),
	}
	if app.ApproveTime != nil {
		dto.ApproveTime = app.ApproveTime.Unix()
	}
	return dto
}

// sanitize 清除 basic 范围不可见的敏感字段
func (d *ApplicationDTO) sanitize() {
	d.Applicant = ""
	d.Remark = ""
	d.ApproveRemark = ""
	d.LatestExternalRating = ""
}
