package domain

import "time"

// UserLoggedInEvent 用户登录事件
type UserLoggedInEvent struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// LoginFailedEvent 登录失败事件，供安全审计消费
type LoginFailedEvent struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
