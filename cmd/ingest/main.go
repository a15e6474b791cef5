package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clinic-assist-be/internal/config"
	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/database"
	"clinic-assist-be/pkg/embedding"
	"clinic-assist-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const (
	chunkSize    = 800
	chunkOverlap = 100
)

// ingest loads plain-text corpus files from a directory, stores them as
// documents and embeds their chunks synchronously. Meant for seeding a fresh
// environment; the running server embeds through the consumer instead.
func main() {
	dir := flag.String("dir", "./corpus", "directory containing .txt/.md corpus files")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read corpus directory %s: %v", *dir, err)
	}

	color.Cyan("🚀 Ingesting corpus from %s\n", *dir)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		color.Yellow("\n[INGEST] %s", entry.Name())

		content, err := os.ReadFile(filepath.Join(*dir, entry.Name()))
		if err != nil {
			color.Red("Failed to read: %v", err)
			continue
		}

		document := &entity.Document{
			Id:        uuid.New(),
			Title:     strings.TrimSuffix(entry.Name(), ext),
			FileName:  entry.Name(),
			FileType:  strings.TrimPrefix(ext, "."),
			Content:   string(content),
			CreatedAt: time.Now(),
		}
		if err := uow.DocumentRepository().Create(ctx, document); err != nil {
			color.Red("Failed to store document: %v", err)
			continue
		}

		chunks := utils.SplitText(document.Content, chunkSize, chunkOverlap)
		for i, chunk := range chunks {
			response, err := embeddingProvider.Generate(chunk, "retrieval_document")
			if err != nil {
				color.Red("Failed to embed chunk %d: %v", i, err)
				continue
			}
			err = uow.DocumentEmbeddingRepository().Create(ctx, &entity.DocumentEmbedding{
				Id:             uuid.New(),
				Chunk:          chunk,
				EmbeddingValue: response.Values,
				DocumentId:     document.Id,
				ChunkIndex:     i,
				CreatedAt:      time.Now(),
			})
			if err != nil {
				color.Red("Failed to store embedding %d: %v", i, err)
			}
		}

		color.Green("Stored %d chunks", len(chunks))
		ingested++
	}

	color.Cyan("\n✅ Done: %d documents ingested", ingested)
}
