package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/pkg/flow"
)

// IConversationService is the inbound boundary of the assistant. One request
// carries the full conversation; the server keeps no session state.
type IConversationService interface {
	Converse(ctx context.Context, request *dto.ConverseRequest) (*dto.ConverseResponse, error)
}

type conversationService struct {
	graph  *flow.Graph
	logger *log.Logger
}

func NewConversationService(graph *flow.Graph) IConversationService {
	return &conversationService{
		graph:  graph,
		logger: initFlowLogger(),
	}
}

// Converse runs one graph pass. A degraded run still yields a usable reply;
// only total provider unavailability surfaces as an error so the transport
// layer can report the outage.
func (cs *conversationService) Converse(ctx context.Context, request *dto.ConverseRequest) (*dto.ConverseResponse, error) {
	state := flow.ConversationState{
		Query:   request.Query,
		History: toTurns(request.History),
	}

	reply, err := cs.graph.Run(ctx, state)
	if err != nil {
		if errors.Is(err, flow.ErrProviderUnavailable) {
			cs.logger.Printf("[CONVERSATION] provider outage: %v", err)
			return nil, fmt.Errorf("converse: %w", err)
		}
		return nil, fmt.Errorf("converse: %w", err)
	}

	return &dto.ConverseResponse{Type: reply.Type, Data: reply.Data}, nil
}

func toTurns(history []dto.ConversationTurn) []flow.Turn {
	turns := make([]flow.Turn, 0, len(history))
	for _, h := range history {
		role := flow.RoleUser
		if h.Role == "assistant" {
			role = flow.RoleAssistant
		}
		turns = append(turns, flow.Turn{Role: role, Content: h.Content})
	}
	return turns
}

func initFlowLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_flow.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-FLOW] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
