package embedding

// Provider defines the interface for generating text embeddings
type Provider interface {
	Generate(text string, taskType string) (*Response, error)
}

// Response wraps the generated embedding values.
type Response struct {
	Values []float32
}
