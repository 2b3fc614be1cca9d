package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionParams holds optional parameters for chat completion requests.
type CompletionParams struct {
	// MaxTokens limits the reply length. Zero means the provider default.
	MaxTokens int

	// Temperature controls the randomness of the output.
	// Zero means the provider default.
	Temperature float32
}
