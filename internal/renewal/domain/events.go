package domain

import "time"

// RenewalSubmittedEvent 重生申请提交事件
type RenewalSubmittedEvent struct {
	RenewalID    string    `json:"renewal_id"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Applicant    string    `json:"applicant"`
	Timestamp    time.Time `json:"timestamp"`
}

// RenewalDecidedEvent 重生申请审批事件
type RenewalDecidedEvent struct {
	RenewalID  string        `json:"renewal_id"`
	CustomerID uint          `json:"customer_id"`
	Status     RenewalStatus `json:"status"`
	Approver   string        `json:"approver"`
	Timestamp  time.Time     `json:"timestamp"`
}
