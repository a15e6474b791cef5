package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientName string         `gorm:"type:varchar(255);not null;index"`
	DoctorName  string         `gorm:"type:varchar(255);index"`
	Date        string         `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Time        string         `gorm:"type:varchar(5);not null"`        // HH:MM
	Reason      string         `gorm:"type:text"`
	Status      string         `gorm:"type:varchar(20);default:'SCHEDULED'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Appointment) TableName() string {
	return "appointments"
}
