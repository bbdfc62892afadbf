package mysql

import (
	"context"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	reasondomain "github.com/wyfcoding/defaultmanagement/internal/reason/domain"
)

// defaultReasonGateway 违约原因目录的防腐层，委托给原因上下文的仓储
type defaultReasonGateway struct {
	reasons reasondomain.DefaultReasonRepository
}

func NewDefaultReasonGateway(reasons reasondomain.DefaultReasonRepository) domain.ReasonGateway {
	return &defaultReasonGateway{reasons: reasons}
}

func (g *defaultReasonGateway) AvailableReasonIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return g.reasons.EnabledIDs(ctx, ids)
}
