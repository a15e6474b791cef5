package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one ingested corpus file (clinic services, policies, FAQs).
type Document struct {
	Id        uuid.UUID
	Title     string
	FileName  string
	FileType  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
