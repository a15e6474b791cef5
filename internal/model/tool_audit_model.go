package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ToolAudit struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operation  string         `gorm:"type:varchar(100);not null;index"`
	Parameters datatypes.JSON `gorm:"type:jsonb"`
	Status     string         `gorm:"type:varchar(20);not null"`
	Reason     string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (ToolAudit) TableName() string {
	return "tool_audits"
}
