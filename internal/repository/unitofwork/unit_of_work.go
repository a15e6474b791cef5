package unitofwork

import (
	"context"

	"clinic-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AppointmentRepository() contract.AppointmentRepository
	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	ToolAuditRepository() contract.ToolAuditRepository
}
