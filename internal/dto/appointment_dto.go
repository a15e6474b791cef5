package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientName string `json:"patient_name" validate:"required"`
	DoctorName  string `json:"doctor_name" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Reason      string `json:"reason"`
}

type CancelAppointmentRequest struct {
	PatientName string `json:"patient_name" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

type AppointmentResponse struct {
	Id          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
