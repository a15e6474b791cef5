package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/specification"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/events"
	pktNats "clinic-assist-be/pkg/nats"

	"github.com/google/uuid"
)

// ErrSlotTaken is returned when the requested doctor/date/time is already
// booked. Callers narrate it; it is not a transport failure.
var ErrSlotTaken = fmt.Errorf("the requested slot is already taken")

type IAppointmentService interface {
	CreateAppointment(ctx context.Context, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointments(ctx context.Context, patientName string, date string) ([]*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewAppointmentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IAppointmentService {
	return &appointmentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (as *appointmentService) CreateAppointment(ctx context.Context, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByDate{Date: request.Date},
		specification.Filter("time", request.Time),
		specification.Filter("doctor_name", request.DoctorName),
		specification.ByStatus{Status: entity.AppointmentStatusScheduled},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		Id:          uuid.New(),
		PatientName: request.PatientName,
		DoctorName:  request.DoctorName,
		Date:        request.Date,
		Time:        request.Time,
		Reason:      request.Reason,
		Status:      entity.AppointmentStatusScheduled,
		CreatedAt:   time.Now(),
	}
	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if as.eventPublisher != nil {
		evt := events.NewAppointmentCreated(appointment.Id, appointment.PatientName, appointment.Date, appointment.Time)
		if err := as.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish appointment created event: %v", err)
		}
	}

	return toAppointmentResponse(appointment), nil
}

func (as *appointmentService) GetAppointments(ctx context.Context, patientName string, date string) ([]*dto.AppointmentResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByStatus{Status: entity.AppointmentStatusScheduled},
		specification.OrderBy{Field: "date"},
	}
	if patientName != "" {
		specs = append(specs, specification.ByPatientName{Name: patientName})
	}
	if date != "" {
		specs = append(specs, specification.ByDate{Date: date})
	}

	appointments, err := uow.AppointmentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	responses := make([]*dto.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, toAppointmentResponse(appointment))
	}
	return responses, nil
}

func (as *appointmentService) CancelAppointment(ctx context.Context, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByPatientName{Name: request.PatientName},
		specification.ByDate{Date: request.Date},
		specification.ByStatus{Status: entity.AppointmentStatusScheduled},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("no scheduled appointment found for %s on %s", request.PatientName, request.Date)
	}

	appointment.Status = entity.AppointmentStatusCancelled
	now := time.Now()
	appointment.UpdatedAt = &now
	if err := uow.AppointmentRepository().Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if as.eventPublisher != nil {
		evt := events.NewAppointmentCancelled(appointment.Id)
		if err := as.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish appointment cancelled event: %v", err)
		}
	}

	return toAppointmentResponse(appointment), nil
}

func toAppointmentResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		Id:          appointment.Id,
		PatientName: appointment.PatientName,
		DoctorName:  appointment.DoctorName,
		Date:        appointment.Date,
		Time:        appointment.Time,
		Reason:      appointment.Reason,
		Status:      appointment.Status,
		CreatedAt:   appointment.CreatedAt,
	}
}
