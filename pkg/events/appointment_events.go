package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAppointmentCreated   = "APPOINTMENT_CREATED"
	TypeAppointmentCancelled = "APPOINTMENT_CANCELLED"
)

func NewAppointmentCreated(id uuid.UUID, patientName, date, timeSlot string) Event {
	return BaseEvent{
		Type: TypeAppointmentCreated,
		Data: map[string]interface{}{
			"appointment_id": id.String(),
			"patient_name":   patientName,
			"date":           date,
			"time":           timeSlot,
		},
		OccurredAt: time.Now(),
	}
}

func NewAppointmentCancelled(id uuid.UUID) Event {
	return BaseEvent{
		Type: TypeAppointmentCancelled,
		Data: map[string]interface{}{
			"appointment_id": id.String(),
		},
		OccurredAt: time.Now(),
	}
}
