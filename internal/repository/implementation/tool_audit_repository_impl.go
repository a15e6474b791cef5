package implementation

import (
	"context"

	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/mapper"
	"clinic-assist-be/internal/model"
	"clinic-assist-be/internal/repository/contract"
	"clinic-assist-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ToolAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ToolAuditMapper
}

func NewToolAuditRepository(db *gorm.DB) contract.ToolAuditRepository {
	return &ToolAuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewToolAuditMapper(),
	}
}

func (r *ToolAuditRepositoryImpl) Create(ctx context.Context, audit *entity.ToolAudit) error {
	m := r.mapper.ToModel(audit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*audit = *r.mapper.ToEntity(m)
	return nil
}

func (r *ToolAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ToolAudit, error) {
	var models []*model.ToolAudit
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
