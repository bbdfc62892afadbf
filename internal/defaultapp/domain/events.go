package domain

import "time"

// ApplicationSubmittedEvent 违约申请提交事件
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"application_id"`
	CustomerID    uint      `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	Severity      Severity  `json:"severity"`
	Applicant     string    `json:"applicant"`
	Timestamp     time.Time `json:"timestamp"`
}

// ApplicationDecidedEvent 违约申请审批事件
type ApplicationDecidedEvent struct {
	ApplicationID string            `json:"application_id"`
	CustomerID    uint              `json:"customer_id"`
	Status        ApplicationStatus `json:"status"`
	Approver      string            `json:"approver"`
	Timestamp     time.Time         `json:"timestamp"`
}
