package mapper

import (
	"encoding/json"

	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/model"

	"gorm.io/datatypes"
)

type ToolAuditMapper struct{}

func NewToolAuditMapper() *ToolAuditMapper {
	return &ToolAuditMapper{}
}

func (m *ToolAuditMapper) ToEntity(a *model.ToolAudit) *entity.ToolAudit {
	if a == nil {
		return nil
	}

	params := map[string]interface{}{}
	if len(a.Parameters) > 0 {
		// Ignore malformed rows rather than failing the read path
		_ = json.Unmarshal(a.Parameters, &params)
	}

	return &entity.ToolAudit{
		Id:         a.Id,
		Operation:  a.Operation,
		Parameters: params,
		Status:     a.Status,
		Reason:     a.Reason,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ToolAuditMapper) ToModel(a *entity.ToolAudit) *model.ToolAudit {
	if a == nil {
		return nil
	}

	var params datatypes.JSON
	if a.Parameters != nil {
		if raw, err := json.Marshal(a.Parameters); err == nil {
			params = raw
		}
	}

	return &model.ToolAudit{
		Id:         a.Id,
		Operation:  a.Operation,
		Parameters: params,
		Status:     a.Status,
		Reason:     a.Reason,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ToolAuditMapper) ToEntities(audits []*model.ToolAudit) []*entity.ToolAudit {
	entities := make([]*entity.ToolAudit, len(audits))
	for i, a := range audits {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
