package ollama

// Config holds Ollama client configuration
type Config struct {
	Model   string
	BaseURL string
}

// Request represents a generate request against /api/generate
type Request struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options,omitempty"`
}

// Options are model sampling parameters
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// Response represents a non-streaming generate response
type Response struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`

	PromptEvalCount int `json:"prompt_eval_count"`
	EvalCount       int `json:"eval_count"`
}

// tagsResponse is the /api/tags payload listing locally pulled models
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
