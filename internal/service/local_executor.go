package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/tools"

	"github.com/google/uuid"
)

// LocalExecutor serves the tool operations in-process, backed by the
// appointment service. Every invocation leaves an audit row regardless of
// outcome. Business rejections become FAILURE outcomes; only infrastructure
// errors are returned as errors.
type LocalExecutor struct {
	appointments IAppointmentService
	uowFactory   unitofwork.RepositoryFactory
	logger       *log.Logger
}

func NewLocalExecutor(appointments IAppointmentService, uowFactory unitofwork.RepositoryFactory, logger *log.Logger) *LocalExecutor {
	return &LocalExecutor{
		appointments: appointments,
		uowFactory:   uowFactory,
		logger:       logger,
	}
}

func (e *LocalExecutor) Invoke(ctx context.Context, operation string, params map[string]interface{}) (tools.Outcome, error) {
	outcome, err := e.dispatch(ctx, operation, params)
	e.audit(ctx, operation, params, outcome, err)
	return outcome, err
}

func (e *LocalExecutor) dispatch(ctx context.Context, operation string, params map[string]interface{}) (tools.Outcome, error) {
	switch operation {
	case "create_appointment":
		return e.createAppointment(ctx, params)
	case "list_appointments":
		return e.listAppointments(ctx, params)
	case "cancel_appointment":
		return e.cancelAppointment(ctx, params)
	}
	return tools.Outcome{}, fmt.Errorf("unknown operation: %s", operation)
}

func (e *LocalExecutor) createAppointment(ctx context.Context, params map[string]interface{}) (tools.Outcome, error) {
	request := &dto.CreateAppointmentRequest{
		PatientName: asString(params["patient_name"]),
		DoctorName:  asString(params["doctor_name"]),
		Date:        asString(params["date"]),
		Time:        asString(params["time"]),
		Reason:      asString(params["reason"]),
	}
	response, err := e.appointments.CreateAppointment(ctx, request)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return tools.Failure("that slot is already taken"), nil
		}
		return tools.Outcome{}, err
	}
	return tools.Success(map[string]interface{}{"id": response.Id.String()}), nil
}

func (e *LocalExecutor) listAppointments(ctx context.Context, params map[string]interface{}) (tools.Outcome, error) {
	responses, err := e.appointments.GetAppointments(ctx, asString(params["patient_name"]), asString(params["date"]))
	if err != nil {
		return tools.Outcome{}, err
	}
	items := make([]interface{}, 0, len(responses))
	for _, r := range responses {
		items = append(items, map[string]interface{}{
			"date":        r.Date,
			"time":        r.Time,
			"doctor_name": r.DoctorName,
			"status":      r.Status,
		})
	}
	return tools.Success(map[string]interface{}{"appointments": items}), nil
}

func (e *LocalExecutor) cancelAppointment(ctx context.Context, params map[string]interface{}) (tools.Outcome, error) {
	request := &dto.CancelAppointmentRequest{
		PatientName: asString(params["patient_name"]),
		Date:        asString(params["date"]),
	}
	response, err := e.appointments.CancelAppointment(ctx, request)
	if err != nil {
		// "not found" is a business outcome the user can act on
		return tools.Failure(err.Error()), nil
	}
	return tools.Success(map[string]interface{}{"id": response.Id.String()}), nil
}

func (e *LocalExecutor) audit(ctx context.Context, operation string, params map[string]interface{}, outcome tools.Outcome, invokeErr error) {
	status := string(outcome.Status)
	reason := outcome.Reason
	if invokeErr != nil {
		status = string(tools.StatusFailure)
		reason = invokeErr.Error()
	}

	uow := e.uowFactory.NewUnitOfWork(ctx)
	err := uow.ToolAuditRepository().Create(ctx, &entity.ToolAudit{
		Id:         uuid.New(),
		Operation:  operation,
		Parameters: params,
		Status:     status,
		Reason:     reason,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		e.logger.Printf("[TOOLS] failed to write audit row for %s: %v", operation, err)
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
