package llm

// NewCustomProvider targets any OpenAI-compatible endpoint. The API key is
// optional.
func NewCustomProvider(baseURL, apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("custom", "Custom endpoint", baseURL, apiKey, model)
}
