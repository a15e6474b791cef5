package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"clinic-assist-be/internal/config"
	"clinic-assist-be/internal/controller"
	"clinic-assist-be/internal/pkg/logger"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/internal/service"
	"clinic-assist-be/pkg/embedding"
	"clinic-assist-be/pkg/flow"
	"clinic-assist-be/pkg/llm/factory"
	"clinic-assist-be/pkg/retrieval"
	"clinic-assist-be/pkg/tools"

	pktNats "clinic-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	AppointmentController  controller.IAppointmentController
	DocumentController     controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	flowLogger := initFlowLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedDocumentTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedDocumentTopic,
		uowFactory,
		embeddingProvider,
	)

	appointmentService := service.NewAppointmentService(uowFactory, natsPub)
	documentService := service.NewDocumentService(uowFactory, publisherService)

	// 6. Answer Flow
	registry := clinicToolRegistry()
	var executor tools.Executor
	if cfg.Clinic.ServiceURL != "" {
		executor = tools.NewHTTPExecutor(cfg.Clinic.ServiceURL, registry, flowLogger)
		log.Printf("[INFO] Using external scheduling service at %s", cfg.Clinic.ServiceURL)
	} else {
		executor = service.NewLocalExecutor(appointmentService, uowFactory, flowLogger)
		log.Printf("[INFO] Using in-process scheduling executor")
	}

	searchOrchestrator := retrieval.NewOrchestrator(
		embeddingProvider,
		uowFactory,
		retrievalConfig(cfg),
		flowLogger,
	)

	supervisor := flow.NewSupervisor(llmProvider, flowLogger)
	vectorAgent := flow.NewVectorDBAgent(searchOrchestrator, llmProvider, cfg.Flow.TopK, flowLogger)
	toolsAgent := flow.NewToolsAgent(llmProvider, registry, executor, flowLogger)
	fallbackAgent := flow.NewFallbackAgent(flowLogger)

	graph := flow.NewGraph(supervisor, vectorAgent, toolsAgent, fallbackAgent, flow.Config{
		RerouteNoGrounding: cfg.Flow.RerouteNoGrounding,
		MaxHops:            flow.DefaultConfig().MaxHops,
	}, flowLogger)

	conversationService := service.NewConversationService(graph)

	sysLogger.Info("bootstrap", "container wired", nil)

	// 7. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		AppointmentController:  controller.NewAppointmentController(appointmentService),
		DocumentController:     controller.NewDocumentController(documentService),
		ConsumerService:        consumerService,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}

func retrievalConfig(cfg *config.Config) retrieval.Config {
	c := retrieval.DefaultConfig()
	c.TopK = cfg.Flow.TopK
	return c
}

// clinicToolRegistry declares the operations the tools agent may invoke.
// Only create_appointment mutates state and is therefore never retried.
func clinicToolRegistry() *tools.Registry {
	return tools.NewRegistry(
		tools.Operation{
			Name:          "create_appointment",
			Description:   "Book a new appointment with a doctor",
			Method:        "POST",
			Endpoint:      "/appointments",
			SideEffecting: true,
			Params: []tools.ParamSpec{
				{Name: "patient_name", Type: tools.ParamString, Required: true, Description: "Full name of the patient"},
				{Name: "doctor_name", Type: tools.ParamString, Required: true, Description: "Name of the doctor"},
				{Name: "date", Type: tools.ParamDate, Required: true, Description: "Appointment date (YYYY-MM-DD)"},
				{Name: "time", Type: tools.ParamTime, Required: true, Description: "Appointment time (HH:MM, 24h)"},
				{Name: "reason", Type: tools.ParamString, Required: false, Description: "Reason for the visit"},
			},
		},
		tools.Operation{
			Name:        "list_appointments",
			Description: "List scheduled appointments for a patient",
			Method:      "GET",
			Endpoint:    "/appointments",
			Params: []tools.ParamSpec{
				{Name: "patient_name", Type: tools.ParamString, Required: true, Description: "Full name of the patient"},
				{Name: "date", Type: tools.ParamDate, Required: false, Description: "Filter by date (YYYY-MM-DD)"},
			},
		},
		tools.Operation{
			Name:          "cancel_appointment",
			Description:   "Cancel a scheduled appointment",
			Method:        "POST",
			Endpoint:      "/appointments/cancel",
			SideEffecting: true,
			Params: []tools.ParamSpec{
				{Name: "patient_name", Type: tools.ParamString, Required: true, Description: "Full name of the patient"},
				{Name: "date", Type: tools.ParamDate, Required: true, Description: "Date of the appointment (YYYY-MM-DD)"},
			},
		},
	)
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
