package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentStatusScheduled = "SCHEDULED"
	AppointmentStatusCancelled = "CANCELLED"
)

type Appointment struct {
	Id          uuid.UUID
	PatientName string
	DoctorName  string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Reason      string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
