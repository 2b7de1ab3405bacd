package ollama

import "context"

// IOllama defines the interface for the local Ollama client
type IOllama interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
	Available(ctx context.Context) bool
	Model() string
}
