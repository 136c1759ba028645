package llm

func NewOpenRouterProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "meta-llama/llama-3.1-70b-instruct"
	}
	return newOpenAICompatible("openrouter", "OpenRouter", "https://openrouter.ai/api/v1", apiKey, model)
}
