package domain

import "github.com/wyfcoding/defaultmanagement/pkg/apperrors"

var (
	// ErrApplicationNotFound 申请不存在，或被数据权限过滤（两者对调用方不可区分）
	ErrApplicationNotFound = apperrors.NotFound("application not found")
	// ErrAlreadyDecided 申请已进入终态，不可重复审批
	ErrAlreadyDecided = apperrors.Conflict("application has already been decided")
	// ErrCustomerNameRequired 客户名不能为空
	ErrCustomerNameRequired = apperrors.Validation("customer name is required")
	// ErrInvalidSeverity 严重程度取值非法
	ErrInvalidSeverity = apperrors.Validation("invalid severity")
	// ErrNoReasons 至少需要一个违约原因
	ErrNoReasons = apperrors.Validation("at least one default reason is required")
	// ErrReasonNotAvailable 违约原因不存在或已停用
	ErrReasonNotAvailable = apperrors.Validation("default reason does not exist or is disabled")
)
