package contract

import (
	"context"

	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/specification"
)

type ToolAuditRepository interface {
	Create(ctx context.Context, audit *entity.ToolAudit) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ToolAudit, error)
}
