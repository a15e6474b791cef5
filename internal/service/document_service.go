package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/specification"
	"clinic-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// PublishEmbedDocumentMessage is the payload carried on the embed topic.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type IDocumentService interface {
	IngestDocument(ctx context.Context, request *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	GetAllDocuments(ctx context.Context) ([]*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

// IngestDocument stores the raw document and hands embedding off to the
// consumer. Ingestion returns as soon as the document row is durable; the
// chunks become searchable when the consumer catches up.
func (ds *documentService) IngestDocument(ctx context.Context, request *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	document := &entity.Document{
		Id:        uuid.New(),
		Title:     request.Title,
		FileName:  request.FileName,
		FileType:  request.FileType,
		Content:   request.Content,
		CreatedAt: time.Now(),
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	payload := PublishEmbedDocumentMessage{DocumentId: document.Id}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed message: %w", err)
	}
	if err := ds.publisherService.Publish(ctx, payloadJson); err != nil {
		log.Printf("[WARN] Failed to publish embed message for document %s: %v", document.Id, err)
	}

	return &dto.IngestDocumentResponse{Id: document.Id}, nil
}

func (ds *documentService) GetAllDocuments(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	responses := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, &dto.DocumentResponse{
			Id:        document.Id,
			Title:     document.Title,
			FileName:  document.FileName,
			FileType:  document.FileType,
			CreatedAt: document.CreatedAt,
		})
	}
	return responses, nil
}

// DeleteDocument removes the document and all of its embeddings so deleted
// knowledge stops surfacing in answers immediately.
func (ds *documentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document embeddings: %w", err)
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
