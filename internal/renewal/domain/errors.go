package domain

import "github.com/wyfcoding/defaultmanagement/pkg/apperrors"

var (
	// ErrRenewalNotFound 重生申请不存在
	ErrRenewalNotFound = apperrors.NotFound("renewal application not found")
	// ErrAlreadyDecided 申请已进入终态，不可重复审批
	ErrAlreadyDecided = apperrors.Conflict("renewal application has already been decided")
	// ErrCustomerNotInDefault 客户不存在或当前不处于违约状态
	ErrCustomerNotInDefault = apperrors.Conflict("customer does not exist or is not in default status")
	// ErrPendingRenewalExists 同一客户已有待审批的重生申请
	ErrPendingRenewalExists = apperrors.Conflict("customer already has a pending renewal application")
	// ErrReasonNotAvailable 重生原因不存在或已停用
	ErrReasonNotAvailable = apperrors.Validation("renewal reason does not exist or is disabled")
	// ErrNoPermission 调用方无权查看该申请
	ErrNoPermission = apperrors.PermissionDenied("no permission to view this renewal application")
)
