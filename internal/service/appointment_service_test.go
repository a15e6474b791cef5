package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/contract"
	"clinic-assist-be/internal/repository/specification"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/tools"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAppointmentRepo keeps appointments in memory and interprets the
// specifications the service actually uses.
type fakeAppointmentRepo struct {
	rows []*entity.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.rows = append(r.rows, appointment)
	return nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	for i, row := range r.rows {
		if row.Id == appointment.Id {
			r.rows[i] = appointment
			return nil
		}
	}
	return errors.New("appointment not found")
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeAppointmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error) {
	matches := r.filter(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeAppointmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error) {
	return r.filter(specs), nil
}

func (r *fakeAppointmentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeAppointmentRepo) filter(specs []specification.Specification) []*entity.Appointment {
	var out []*entity.Appointment
	for _, row := range r.rows {
		if matchesSpecs(row, specs) {
			out = append(out, row)
		}
	}
	return out
}

func matchesSpecs(row *entity.Appointment, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByDate:
			if row.Date != s.Date {
				return false
			}
		case specification.ByPatientName:
			if !strings.EqualFold(row.PatientName, s.Name) {
				return false
			}
		case specification.ByStatus:
			if row.Status != s.Status {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "time":
				if row.Time != s.Value {
					return false
				}
			case "doctor_name":
				if row.DoctorName != s.Value {
					return false
				}
			}
		}
	}
	return true
}

type fakeAuditRepo struct {
	rows []*entity.ToolAudit
}

func (r *fakeAuditRepo) Create(ctx context.Context, audit *entity.ToolAudit) error {
	r.rows = append(r.rows, audit)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ToolAudit, error) {
	return r.rows, nil
}

type serviceFakeUow struct {
	appointments *fakeAppointmentRepo
	audits       *fakeAuditRepo
}

func (u *serviceFakeUow) Begin(ctx context.Context) error { return nil }
func (u *serviceFakeUow) Commit() error                   { return nil }
func (u *serviceFakeUow) Rollback() error                 { return nil }
func (u *serviceFakeUow) AppointmentRepository() contract.AppointmentRepository {
	return u.appointments
}
func (u *serviceFakeUow) DocumentRepository() contract.DocumentRepository { return nil }
func (u *serviceFakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return nil
}
func (u *serviceFakeUow) ToolAuditRepository() contract.ToolAuditRepository {
	return u.audits
}

type serviceFakeUowFactory struct {
	uow *serviceFakeUow
}

func (f *serviceFakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory() *serviceFakeUowFactory {
	return &serviceFakeUowFactory{uow: &serviceFakeUow{
		appointments: &fakeAppointmentRepo{},
		audits:       &fakeAuditRepo{},
	}}
}

func TestAppointmentRoundTrip(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil)
	ctx := context.Background()

	created, err := svc.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientName: "Jane Doe",
		DoctorName:  "Dr. Smith",
		Date:        "2026-09-01",
		Time:        "10:00",
		Reason:      "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusScheduled, created.Status)

	listed, err := svc.GetAppointments(ctx, "jane doe", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Id, listed[0].Id)
	assert.Equal(t, "Dr. Smith", listed[0].DoctorName)
}

func TestCreateAppointmentRejectsTakenSlot(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil)
	ctx := context.Background()

	request := &dto.CreateAppointmentRequest{
		PatientName: "Jane Doe",
		DoctorName:  "Dr. Smith",
		Date:        "2026-09-01",
		Time:        "10:00",
	}
	_, err := svc.CreateAppointment(ctx, request)
	require.NoError(t, err)

	request.PatientName = "John Roe"
	_, err = svc.CreateAppointment(ctx, request)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCancelAppointmentHidesItFromListing(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil)
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientName: "Jane Doe",
		DoctorName:  "Dr. Smith",
		Date:        "2026-09-01",
		Time:        "10:00",
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelAppointment(ctx, &dto.CancelAppointmentRequest{
		PatientName: "Jane Doe",
		Date:        "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, cancelled.Status)

	listed, err := svc.GetAppointments(ctx, "Jane Doe", "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLocalExecutorWritesAuditRows(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil)
	executor := NewLocalExecutor(svc, factory, log.New(io.Discard, "", 0))
	ctx := context.Background()

	outcome, err := executor.Invoke(ctx, "create_appointment", map[string]interface{}{
		"patient_name": "Jane Doe",
		"doctor_name":  "Dr. Smith",
		"date":         "2026-09-01",
		"time":         "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, tools.StatusSuccess, outcome.Status)

	// Same slot again: business failure, still audited
	outcome, err = executor.Invoke(ctx, "create_appointment", map[string]interface{}{
		"patient_name": "John Roe",
		"doctor_name":  "Dr. Smith",
		"date":         "2026-09-01",
		"time":         "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, tools.StatusFailure, outcome.Status)

	audits := factory.uow.audits.rows
	require.Len(t, audits, 2)
	assert.Equal(t, string(tools.StatusSuccess), audits[0].Status)
	assert.Equal(t, string(tools.StatusFailure), audits[1].Status)
	assert.Equal(t, "create_appointment", audits[0].Operation)
}

func TestLocalExecutorListNarrowsByPatient(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil)
	executor := NewLocalExecutor(svc, factory, log.New(io.Discard, "", 0))
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientName: "Jane Doe",
		DoctorName:  "Dr. Smith",
		Date:        "2026-09-01",
		Time:        "10:00",
	})
	require.NoError(t, err)

	outcome, err := executor.Invoke(ctx, "list_appointments", map[string]interface{}{
		"patient_name": "Jane Doe",
	})
	require.NoError(t, err)
	require.Equal(t, tools.StatusSuccess, outcome.Status)

	items, ok := outcome.Payload["appointments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}
